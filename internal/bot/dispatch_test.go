package bot

import (
	"errors"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/sglre6355/basebot/internal/command"
)

func TestRouteMessage(t *testing.T) {
	p := NewPrefixResolver("!", testSelfID)

	tests := []struct {
		name       string
		content    string
		wantRoute  messageRoute
		wantPrefix string
		wantRest   string
	}{
		{name: "bare mention", content: "<@42>", wantRoute: routeAnnounce, wantPrefix: "!"},
		{name: "bare nickname mention", content: "<@!42>", wantRoute: routeAnnounce, wantPrefix: "!"},
		{name: "static prefix", content: "!ping a", wantRoute: routeCommand, wantPrefix: "!", wantRest: "ping a"},
		{name: "mention prefix", content: "<@42> ping", wantRoute: routeCommand, wantPrefix: "<@42> ", wantRest: "ping"},
		{name: "plain text", content: "hello", wantRoute: routeIgnore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			route, prefix, rest := routeMessage(p, tt.content)
			if route != tt.wantRoute || prefix != tt.wantPrefix || rest != tt.wantRest {
				t.Errorf("expected (%d, %q, %q), got (%d, %q, %q)",
					tt.wantRoute, tt.wantPrefix, tt.wantRest, route, prefix, rest)
			}
		})
	}
}

func TestBot_HandleMessage_RunsCommand(t *testing.T) {
	var gotArgs []string
	mod := &stubModule{name: "core", commands: []*command.Command{{
		Name:    "ping",
		Aliases: []string{"p"},
		Run: func(ctx *command.Context) error {
			gotArgs = ctx.Args
			return ctx.Reply("Pong!")
		},
	}}}
	b, sink, responder := newTestBot(t, mod)
	b.LoadExtensions("core")

	for _, content := range []string{"!ping a b", "!   p a b", "<@42> ping a b", "<@!42> ping a b"} {
		responder.Messages = nil
		gotArgs = nil

		if err := b.handleMessage(b.session, dm(content)); err != nil {
			t.Fatalf("%q: unexpected error: %v", content, err)
		}
		if msg := responder.LastMessage(); msg == nil || msg.Content != "Pong!" {
			t.Errorf("%q: expected Pong! reply, got %+v", content, msg)
		}
		if len(gotArgs) != 2 || gotArgs[0] != "a" || gotArgs[1] != "b" {
			t.Errorf("%q: expected args [a b], got %v", content, gotArgs)
		}
	}

	if len(sink.batches) != 0 {
		t.Errorf("expected no reports, got %d", len(sink.batches))
	}
}

func TestBot_HandleMessage_IgnoresBotsAndPlainText(t *testing.T) {
	called := false
	mod := &stubModule{name: "core", commands: []*command.Command{{
		Name: "ping",
		Run:  func(ctx *command.Context) error { called = true; return nil },
	}}}
	b, _, responder := newTestBot(t, mod)
	b.LoadExtensions("core")

	fromBot := dm("!ping")
	fromBot.Author.Bot = true
	for _, m := range []*discordgo.MessageCreate{fromBot, dm("ping"), dm("!"), dm("!   ")} {
		if err := b.handleMessage(b.session, m); err != nil {
			t.Fatalf("%q: unexpected error: %v", m.Content, err)
		}
	}

	if called {
		t.Error("expected command not to run")
	}
	if len(responder.Messages) != 0 {
		t.Errorf("expected no replies, got %d", len(responder.Messages))
	}
}

func TestBot_HandleMessage_BareMentionAnnouncesPrefixInsteadOfDispatch(t *testing.T) {
	called := false
	// With prefix "<@" the mention "<@42>" also reads as the command "42>".
	mod := &stubModule{name: "core", commands: []*command.Command{{
		Name: "42>",
		Run:  func(ctx *command.Context) error { called = true; return nil },
	}}}
	b, sink, responder := newTestBot(t, mod)
	b.config.Prefix = "<@"
	b.LoadExtensions("core")

	if err := b.handleMessage(b.session, dm("<@42>")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if called {
		t.Error("expected command dispatch to be skipped for a bare mention")
	}
	if len(responder.Messages) != 1 {
		t.Fatalf("expected 1 reply, got %d", len(responder.Messages))
	}
	if got := responder.Messages[0].Content; got != "My prefix here is `<@`" {
		t.Errorf("unexpected announcement %q", got)
	}
	if len(sink.batches) != 0 {
		t.Errorf("expected no reports, got %d", len(sink.batches))
	}
}

func TestBot_HandleMessage_UnknownCommandIsSilent(t *testing.T) {
	b, sink, responder := newTestBot(t)

	if err := b.handleMessage(b.session, dm("!nope")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(responder.Messages) != 0 {
		t.Errorf("expected no replies, got %d", len(responder.Messages))
	}
	if len(sink.batches) != 0 {
		t.Errorf("expected no reports, got %d", len(sink.batches))
	}
}

func TestBot_HandleMessage_ExpectedErrorIsShownToUser(t *testing.T) {
	mod := &stubModule{name: "core", commands: []*command.Command{{
		Name: "sqrt",
		Run: func(ctx *command.Context) error {
			return command.Errorf("BadArgumentValue", "x must be positive")
		},
	}}}
	b, sink, responder := newTestBot(t, mod)
	b.LoadExtensions("core")

	if err := b.handleMessage(b.session, dm("!sqrt -1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msg := responder.LastMessage()
	if msg == nil || len(msg.Embeds) != 1 {
		t.Fatalf("expected an embed reply, got %+v", msg)
	}
	if msg.Embeds[0].Title != "Bad Argument Value" || msg.Embeds[0].Description != "x must be positive" {
		t.Errorf("unexpected reply %q / %q", msg.Embeds[0].Title, msg.Embeds[0].Description)
	}
	if len(sink.batches) != 0 {
		t.Errorf("expected no reports, got %d", len(sink.batches))
	}
}

func TestBot_HandleMessage_FailingCheck(t *testing.T) {
	ran := false
	mod := &stubModule{name: "debug", commands: []*command.Command{{
		Name: "secret",
		Checks: []command.Check{func(ctx *command.Context) error {
			return command.Errorf(command.KindNotOwner, "You do not own this bot.")
		}},
		Run: func(ctx *command.Context) error { ran = true; return nil },
	}}}
	b, _, responder := newTestBot(t, mod)
	b.LoadExtensions("debug")

	if err := b.handleMessage(b.session, dm("!secret")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ran {
		t.Error("expected handler not to run after a failing check")
	}
	if msg := responder.LastMessage(); msg == nil || msg.Embeds[0].Title != "Not Owner" {
		t.Errorf("expected Not Owner reply, got %+v", msg)
	}
}

func TestBot_HandleMessage_UnexpectedErrorsAreReported(t *testing.T) {
	tests := []struct {
		name string
		run  command.Handler
		want string
	}{
		{
			name: "returned error",
			run:  func(ctx *command.Context) error { return errors.New("database is gone") },
			want: "database is gone",
		},
		{
			name: "panic",
			run:  func(ctx *command.Context) error { panic("kaboom") },
			want: "kaboom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mod := &stubModule{name: "core", commands: []*command.Command{{Name: "boom", Run: tt.run}}}
			b, sink, responder := newTestBot(t, mod)
			b.LoadExtensions("core")

			if err := b.handleMessage(b.session, dm("!boom")); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(responder.Messages) != 1 {
				t.Fatalf("expected 1 reply attempt, got %d", len(responder.Messages))
			}
			if responder.Messages[0].Embeds[0].Title != "Error" {
				t.Errorf("expected generic error notice, got %q", responder.Messages[0].Embeds[0].Title)
			}

			if len(sink.batches) != 1 {
				t.Fatalf("expected 1 report, got %d", len(sink.batches))
			}
			blocks := sink.batches[0]
			if !strings.Contains(blocks[0].Description, tt.want) {
				t.Errorf("expected traceback to mention %q, got %q", tt.want, blocks[0].Description)
			}
			if !strings.Contains(blocks[0].Description, "command boom raised an error") {
				t.Errorf("expected traceback to name the command, got %q", blocks[0].Description)
			}
			if got := blocks[len(blocks)-2].Description; !strings.Contains(got, "**Type**: DM") {
				t.Errorf("expected DM channel block, got %q", got)
			}
		})
	}
}

func TestBot_HandleMessage_ReplyFailureIsReturned(t *testing.T) {
	b, _, responder := newTestBot(t)
	responder.Err = errors.New("connection closed")

	err := b.handleMessage(b.session, dm("<@42>"))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, responder.Err) {
		t.Errorf("expected error %v, got %v", responder.Err, err)
	}
}

func TestBot_HandleMessage_ReportIncludesGuildContext(t *testing.T) {
	mod := &stubModule{name: "core", commands: []*command.Command{{
		Name: "boom",
		Run:  func(ctx *command.Context) error { return errors.New("kaboom") },
	}}}
	b, sink, _ := newTestBot(t, mod)
	b.LoadExtensions("core")

	const guildID, channelID = "500", "600"
	guild := &discordgo.Guild{
		ID:          guildID,
		Name:        "Test Guild",
		OwnerID:     "1",
		MemberCount: 5,
		Roles: []*discordgo.Role{
			{ID: guildID, Permissions: discordgo.PermissionViewChannel | discordgo.PermissionSendMessages},
		},
		Channels: []*discordgo.Channel{{
			ID:      channelID,
			GuildID: guildID,
			Name:    "general",
			Type:    discordgo.ChannelTypeGuildText,
			PermissionOverwrites: []*discordgo.PermissionOverwrite{
				{ID: guildID, Type: discordgo.PermissionOverwriteTypeRole, Allow: discordgo.PermissionManageMessages},
			},
		}},
		Members: []*discordgo.Member{{GuildID: guildID, User: &discordgo.User{ID: testSelfID}}},
	}
	if err := b.session.State.GuildAdd(guild); err != nil {
		t.Fatalf("failed to seed state: %v", err)
	}

	m := dm("!boom")
	m.ChannelID = channelID
	m.GuildID = guildID
	if err := b.handleMessage(b.session, m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sink.batches) != 1 {
		t.Fatalf("expected 1 report, got %d", len(sink.batches))
	}
	blocks := sink.batches[0]
	guildBlock := blocks[len(blocks)-3].Description
	channelBlock := blocks[len(blocks)-2].Description

	for _, want := range []string{"**Name**: Test Guild", "**Member count**: 5", "**Permission integer**: 3072"} {
		if !strings.Contains(guildBlock, want) {
			t.Errorf("expected guild block to contain %q, got %q", want, guildBlock)
		}
	}
	for _, want := range []string{"**Type**: TextChannel", "**Name**: general", "**Permission integer**: 11264"} {
		if !strings.Contains(channelBlock, want) {
			t.Errorf("expected channel block to contain %q, got %q", want, channelBlock)
		}
	}
}
