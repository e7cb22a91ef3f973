package bot

import (
	"log/slog"
	"runtime/debug"

	"github.com/bwmarrin/discordgo"

	"github.com/sglre6355/basebot/internal/command"
)

// guardEvent runs an event handler and reports a returned error or a panic
// as an unhandled event error.
func (b *Bot) guardEvent(event string, run func() error) {
	defer func() {
		if rc := recover(); rc != nil {
			err := command.NewPanicError(rc, debug.Stack())
			slog.Error("recovered from panic in event handler", "event", event, "error", err)
			b.reporter.ReportUnhandledEvent(event, err)
		}
	}()

	if err := run(); err != nil {
		slog.Error("failed to handle event", "event", event, "error", err)
		b.reporter.ReportUnhandledEvent(event, err)
	}
}

func guarded[E any](b *Bot, event string, fn func(*discordgo.Session, E) error) func(*discordgo.Session, E) {
	return func(s *discordgo.Session, e E) {
		b.guardEvent(event, func() error { return fn(s, e) })
	}
}

func noError[E any](fn func(*discordgo.Session, E)) func(*discordgo.Session, E) error {
	return func(s *discordgo.Session, e E) error {
		fn(s, e)
		return nil
	}
}

// guard wraps a module event handler with guardEvent. It returns false for
// handler signatures it does not know.
func (b *Bot) guard(h EventHandler) (EventHandler, bool) {
	switch fn := h.(type) {
	case func(*discordgo.Session, *discordgo.MessageCreate):
		return guarded(b, "MessageCreate", noError(fn)), true
	case func(*discordgo.Session, *discordgo.MessageCreate) error:
		return guarded(b, "MessageCreate", fn), true
	case func(*discordgo.Session, *discordgo.MessageUpdate):
		return guarded(b, "MessageUpdate", noError(fn)), true
	case func(*discordgo.Session, *discordgo.MessageUpdate) error:
		return guarded(b, "MessageUpdate", fn), true
	case func(*discordgo.Session, *discordgo.MessageDelete):
		return guarded(b, "MessageDelete", noError(fn)), true
	case func(*discordgo.Session, *discordgo.MessageDelete) error:
		return guarded(b, "MessageDelete", fn), true
	case func(*discordgo.Session, *discordgo.Ready):
		return guarded(b, "Ready", noError(fn)), true
	case func(*discordgo.Session, *discordgo.Ready) error:
		return guarded(b, "Ready", fn), true
	case func(*discordgo.Session, *discordgo.GuildCreate):
		return guarded(b, "GuildCreate", noError(fn)), true
	case func(*discordgo.Session, *discordgo.GuildCreate) error:
		return guarded(b, "GuildCreate", fn), true
	case func(*discordgo.Session, *discordgo.GuildDelete):
		return guarded(b, "GuildDelete", noError(fn)), true
	case func(*discordgo.Session, *discordgo.GuildDelete) error:
		return guarded(b, "GuildDelete", fn), true
	case func(*discordgo.Session, *discordgo.InteractionCreate):
		return guarded(b, "InteractionCreate", noError(fn)), true
	case func(*discordgo.Session, *discordgo.InteractionCreate) error:
		return guarded(b, "InteractionCreate", fn), true
	default:
		return nil, false
	}
}
