package core

import (
	"github.com/sglre6355/basebot/internal/bot"
	"github.com/sglre6355/basebot/internal/command"
	"github.com/sglre6355/basebot/internal/modules/core/application"
	"github.com/sglre6355/basebot/internal/modules/core/presentation"
)

func init() {
	bot.Register(&CoreModule{})
}

// CoreModule provides the basic commands every bot has.
type CoreModule struct {
	pingHandler   *presentation.PingHandler
	uptimeHandler *presentation.UptimeHandler
	prefixHandler *presentation.PrefixHandler
}

// Name returns the module name.
func (m *CoreModule) Name() string {
	return "core"
}

// Commands returns the prefix commands for this module.
func (m *CoreModule) Commands() []*command.Command {
	return []*command.Command{
		{
			Name:        "ping",
			Aliases:     []string{"latency"},
			Description: "Shows the gateway heartbeat latency.",
			Run:         m.pingHandler.Handle,
		},
		{
			Name:        "prefix",
			Description: "Shows the prefix the bot listens to.",
			Run:         m.prefixHandler.Handle,
		},
		{
			Name:        "uptime",
			Description: "Shows how long the bot has been running.",
			Run:         m.uptimeHandler.Handle,
		},
	}
}

// EventHandlers returns the event handlers for this module.
func (m *CoreModule) EventHandlers() []bot.EventHandler {
	return nil
}

// Init initializes the module.
func (m *CoreModule) Init(deps bot.ModuleDependencies) error {
	m.pingHandler = presentation.NewPingHandler(application.NewPingInteractor(deps.Session.HeartbeatLatency))
	m.uptimeHandler = presentation.NewUptimeHandler(application.NewUptimeInteractor(deps.Bot.StartedAt))
	m.prefixHandler = presentation.NewPrefixHandler(deps.Bot.Prefix)
	return nil
}

// Shutdown cleans up module resources.
func (m *CoreModule) Shutdown() error {
	return nil
}
