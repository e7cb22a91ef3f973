// Package debug provides owner-only commands for inspecting a running bot.
package debug

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/sglre6355/basebot/internal/bot"
	"github.com/sglre6355/basebot/internal/command"
)

func init() {
	bot.Register(&DebugModule{})
}

// DebugModule provides the debug command.
type DebugModule struct {
	session *discordgo.Session
	info    bot.Info
}

// Name returns the module name.
func (m *DebugModule) Name() string {
	return "debug"
}

// Commands returns the prefix commands for this module.
func (m *DebugModule) Commands() []*command.Command {
	return []*command.Command{
		{
			Name:        "debug",
			Aliases:     []string{"dbg"},
			Usage:       "[extensions|panic]",
			Description: "Shows runtime diagnostics.",
			Hidden:      true,
			Checks:      []command.Check{m.isOwner},
			Run:         m.handle,
		},
	}
}

// EventHandlers returns the event handlers for this module.
func (m *DebugModule) EventHandlers() []bot.EventHandler {
	return nil
}

// Init initializes the module.
func (m *DebugModule) Init(deps bot.ModuleDependencies) error {
	m.session = deps.Session
	m.info = deps.Bot
	return nil
}

// Shutdown cleans up module resources.
func (m *DebugModule) Shutdown() error {
	return nil
}

func (m *DebugModule) isOwner(ctx *command.Context) error {
	if ctx.Author == nil || !m.info.IsOwner(ctx.Author.ID) {
		return command.Errorf(command.KindNotOwner, "You do not own this bot.")
	}
	return nil
}

func (m *DebugModule) handle(ctx *command.Context) error {
	if len(ctx.Args) == 0 {
		return ctx.SendEmbed(collectStats(m.session, m.info.StartedAt()).Embed())
	}

	switch strings.ToLower(ctx.Args[0]) {
	case "extensions", "ext":
		return ctx.Reply(formatExtensions(m.info.Extensions(), m.info.AvailableExtensions()))
	case "panic":
		panic(fmt.Sprintf("debug panic requested by %s", ctx.Author.ID))
	default:
		return command.BadArgument("Unknown debug subcommand %q.", ctx.Args[0])
	}
}

func formatExtensions(loaded, available []string) string {
	var b strings.Builder
	if len(loaded) == 0 {
		b.WriteString("No extensions are loaded.")
	} else {
		fmt.Fprintf(&b, "Loaded extensions (%d): %s", len(loaded), codeList(loaded))
	}
	if len(available) > 0 {
		fmt.Fprintf(&b, "\nNot loaded (%d): %s", len(available), codeList(available))
	}
	return b.String()
}

func codeList(names []string) string {
	return "`" + strings.Join(names, "`, `") + "`"
}
