package presentation

import (
	"fmt"

	"github.com/sglre6355/basebot/internal/command"
	"github.com/sglre6355/basebot/internal/modules/core/application"
)

// PingHandler handles the ping command.
type PingHandler struct {
	interactor *application.PingInteractor
}

// NewPingHandler creates a new PingHandler.
func NewPingHandler(interactor *application.PingInteractor) *PingHandler {
	return &PingHandler{interactor: interactor}
}

// Handle processes the ping command and sends the response.
func (h *PingHandler) Handle(ctx *command.Context) error {
	result := h.interactor.Execute()
	return ctx.Reply(result.Message())
}

// UptimeHandler handles the uptime command.
type UptimeHandler struct {
	interactor *application.UptimeInteractor
}

// NewUptimeHandler creates a new UptimeHandler.
func NewUptimeHandler(interactor *application.UptimeInteractor) *UptimeHandler {
	return &UptimeHandler{interactor: interactor}
}

// Handle processes the uptime command and sends the response.
func (h *UptimeHandler) Handle(ctx *command.Context) error {
	result := h.interactor.Execute()
	return ctx.Reply(result.Message())
}

// PrefixHandler handles the prefix command.
type PrefixHandler struct {
	current func() string
}

// NewPrefixHandler creates a new PrefixHandler advertising current.
func NewPrefixHandler(current func() string) *PrefixHandler {
	return &PrefixHandler{current: current}
}

// Handle replies with the prefix the bot listens to.
func (h *PrefixHandler) Handle(ctx *command.Context) error {
	return ctx.Reply(fmt.Sprintf("My prefix here is `%s`", h.current()))
}
