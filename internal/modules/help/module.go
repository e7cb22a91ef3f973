package help

import (
	"github.com/sglre6355/basebot/internal/bot"
	"github.com/sglre6355/basebot/internal/command"
)

func init() {
	bot.Register(&HelpModule{})
}

// HelpModule provides the help command.
type HelpModule struct {
	info bot.Info
}

// Name returns the module name.
func (m *HelpModule) Name() string {
	return "help"
}

// Commands returns the prefix commands for this module.
func (m *HelpModule) Commands() []*command.Command {
	return []*command.Command{
		{
			Name:        "help",
			Aliases:     []string{"h"},
			Usage:       "[command]",
			Description: "Lists the available commands, or shows how to use one.",
			Run:         m.handle,
		},
	}
}

// EventHandlers returns the event handlers for this module.
func (m *HelpModule) EventHandlers() []bot.EventHandler {
	return nil
}

// Init initializes the module.
func (m *HelpModule) Init(deps bot.ModuleDependencies) error {
	m.info = deps.Bot
	return nil
}

// Shutdown cleans up module resources.
func (m *HelpModule) Shutdown() error {
	return nil
}

func (m *HelpModule) handle(ctx *command.Context) error {
	cmds := m.info.Commands()
	if len(ctx.Args) == 0 {
		return ctx.SendEmbed(Overview(ctx.Prefix, cmds))
	}

	name := ctx.Args[0]
	cmd := find(cmds, name)
	if cmd == nil || cmd.Hidden {
		return command.BadArgument("No command called %q found.", name)
	}
	return ctx.SendEmbed(Detail(ctx.Prefix, cmd))
}
