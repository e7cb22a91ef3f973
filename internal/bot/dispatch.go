package bot

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/sglre6355/basebot/internal/command"
)

type messageRoute int

const (
	routeIgnore messageRoute = iota
	routeAnnounce
	routeCommand
)

// routeMessage decides what to do with a message. A bare mention of the bot
// is answered with the prefix and never dispatched as a command.
func routeMessage(p *PrefixResolver, content string) (route messageRoute, prefix, rest string) {
	if p.IsBareMention(content) {
		return routeAnnounce, p.Resolve(content), ""
	}
	if prefix, rest, ok := p.Strip(content); ok {
		return routeCommand, prefix, rest
	}
	return routeIgnore, "", ""
}

// prefixResolver returns the resolver for the current prefix and bot user. It
// is rebuilt only when either of them changes.
func (b *Bot) prefixResolver() *PrefixResolver {
	var selfID string
	if b.session.State != nil && b.session.State.User != nil {
		selfID = b.session.State.User.ID
	}

	b.resolverMu.Lock()
	defer b.resolverMu.Unlock()
	if b.resolver == nil || b.resolver.static != b.config.Prefix || b.resolver.selfID != selfID {
		b.resolver = NewPrefixResolver(b.config.Prefix, selfID)
	}
	return b.resolver
}

func (b *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) error {
	if m.Author == nil || m.Author.Bot {
		return nil
	}

	route, prefix, rest := routeMessage(b.prefixResolver(), m.Content)
	switch route {
	case routeAnnounce:
		ctx := b.newContext(s, m.Message, prefix)
		if err := ctx.Reply(fmt.Sprintf("My prefix here is `%s`", prefix)); err != nil {
			return fmt.Errorf("failed to announce prefix: %w", err)
		}
		return nil
	case routeCommand:
		return b.invoke(b.newContext(s, m.Message, prefix), rest)
	default:
		return nil
	}
}

// invoke runs the command named by the first word of rest and hands any
// failure to the reporter.
func (b *Bot) invoke(ctx *command.Context, rest string) error {
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return nil
	}
	ctx.InvokedWith, ctx.Args = fields[0], fields[1:]

	cmd, ok := b.command(ctx.InvokedWith)
	if !ok {
		return b.reporter.ReportCommandError(ctx, command.NotFound(ctx.InvokedWith))
	}
	ctx.Command = cmd

	if err := runCommand(cmd, ctx); err != nil {
		slog.Debug("command failed", "command", cmd.Name, "error", err)
		return b.reporter.ReportCommandError(ctx, err)
	}
	return nil
}

// runCommand runs the checks and the handler of cmd. Expected errors are
// returned as they are; anything else, panics included, is wrapped in an
// InvokeError.
func runCommand(cmd *command.Command, ctx *command.Context) (err error) {
	defer func() {
		if rc := recover(); rc != nil {
			err = command.NewInvokeError(cmd.Name, command.NewPanicError(rc, debug.Stack()))
		}
	}()

	for _, check := range cmd.Checks {
		if err := check(ctx); err != nil {
			return classify(cmd, err)
		}
	}
	return classify(cmd, cmd.Run(ctx))
}

func classify(cmd *command.Command, err error) error {
	if err == nil {
		return nil
	}
	var cmdErr *command.Error
	if errors.As(err, &cmdErr) {
		return err
	}
	return command.NewInvokeError(cmd.Name, err)
}
