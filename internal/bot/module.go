package bot

import (
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/sglre6355/basebot/internal/command"
)

// EventHandler is a generic handler for any Discord event.
// It should be a function matching one of discordgo's handler signatures,
// e.g., func(s *discordgo.Session, m *discordgo.MessageCreate), optionally
// returning an error.
type EventHandler any

// Info exposes read-only bot state to modules.
type Info interface {
	// Prefix returns the prefix to advertise outside of a message.
	Prefix() string
	// Commands returns the registered commands ordered by module and name.
	Commands() []*command.Command
	// Extensions returns the names of the loaded modules in load order.
	Extensions() []string
	// AvailableExtensions returns the registered modules that are not loaded.
	AvailableExtensions() []string
	// StartedAt returns the time the bot was created.
	StartedAt() time.Time
	// IsOwner reports whether userID belongs to a bot owner.
	IsOwner(userID string) bool
}

// ModuleDependencies provides dependencies that modules may need during initialization.
type ModuleDependencies struct {
	Session *discordgo.Session
	Config  *Config
	Bot     Info
}

// Module defines the interface that all bot modules must implement.
type Module interface {
	// Name returns the unique identifier for this module.
	Name() string

	// Commands returns the prefix commands that this module provides.
	Commands() []*command.Command

	// EventHandlers returns event handlers for this module.
	// Each handler should match a discordgo handler signature.
	EventHandlers() []EventHandler

	// Init initializes the module with the provided dependencies.
	Init(deps ModuleDependencies) error

	// Shutdown gracefully shuts down the module.
	Shutdown() error
}

// ConfigurableModule is an optional interface for modules that need configuration.
// Modules implementing this interface will have LoadConfig called before Init.
type ConfigurableModule interface {
	// LoadConfig loads and validates module-specific configuration.
	// Should return an error if required configuration is missing or invalid.
	LoadConfig() error
}
