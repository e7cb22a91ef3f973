package help

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/sglre6355/basebot/internal/bot"
	"github.com/sglre6355/basebot/internal/command"
)

type fakeInfo struct {
	commands []*command.Command
}

func (f fakeInfo) Prefix() string                { return "!" }
func (f fakeInfo) Commands() []*command.Command  { return f.commands }
func (f fakeInfo) AvailableExtensions() []string { return nil }
func (f fakeInfo) Extensions() []string          { return nil }
func (f fakeInfo) StartedAt() time.Time          { return time.Time{} }
func (f fakeInfo) IsOwner(userID string) bool    { return false }

func testCommands() []*command.Command {
	return []*command.Command{
		{Name: "ping", Aliases: []string{"latency"}, Description: "Shows latency.", Module: "core"},
		{Name: "uptime", Module: "core"},
		{Name: "debug", Module: "debug", Hidden: true},
		{Name: "help", Usage: "[command]", Description: "Shows help.", Module: "help"},
	}
}

func newHelp(t *testing.T) *HelpModule {
	t.Helper()
	m := &HelpModule{}
	if err := m.Init(bot.ModuleDependencies{Bot: fakeInfo{commands: testCommands()}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return m
}

func invoke(t *testing.T, m *HelpModule, args ...string) (*command.MockResponder, error) {
	t.Helper()
	responder := &command.MockResponder{}
	ctx := &command.Context{
		Message:   &discordgo.Message{ID: "1"},
		Prefix:    "!",
		Args:      args,
		Responder: responder,
	}
	return responder, m.Commands()[0].Run(ctx)
}

func TestHelp_Overview(t *testing.T) {
	responder, err := invoke(t, newHelp(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	embed := responder.LastMessage().Embeds[0]
	if len(embed.Fields) != 2 {
		t.Fatalf("expected 2 module fields, got %d", len(embed.Fields))
	}
	if embed.Fields[0].Name != "core" || embed.Fields[1].Name != "help" {
		t.Errorf("unexpected field names %q, %q", embed.Fields[0].Name, embed.Fields[1].Name)
	}

	want := "`!ping` Shows latency.\n`!uptime`"
	if embed.Fields[0].Value != want {
		t.Errorf("expected %q, got %q", want, embed.Fields[0].Value)
	}
	if strings.Contains(embed.Fields[1].Value, "debug") {
		t.Error("expected hidden commands to be left out")
	}
}

func TestHelp_DetailByAlias(t *testing.T) {
	responder, err := invoke(t, newHelp(t), "latency")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	embed := responder.LastMessage().Embeds[0]
	if embed.Title != "!ping" {
		t.Errorf("expected title %q, got %q", "!ping", embed.Title)
	}
	if len(embed.Fields) != 1 || embed.Fields[0].Value != "latency" {
		t.Errorf("expected aliases field, got %+v", embed.Fields)
	}
}

func TestHelp_UnknownCommand(t *testing.T) {
	for _, name := range []string{"nope", "debug"} {
		responder, err := invoke(t, newHelp(t), name)

		var cmdErr *command.Error
		if !errors.As(err, &cmdErr) {
			t.Fatalf("%s: expected command error, got %v", name, err)
		}
		if cmdErr.Kind != command.KindBadArgument {
			t.Errorf("%s: expected kind %q, got %q", name, command.KindBadArgument, cmdErr.Kind)
		}
		if want := `No command called "` + name + `" found.`; cmdErr.Message != want {
			t.Errorf("%s: expected message %q, got %q", name, want, cmdErr.Message)
		}
		if len(responder.Messages) != 0 {
			t.Errorf("%s: expected no reply from the handler itself", name)
		}
	}
}

func TestOverview_NoCommands(t *testing.T) {
	embed := Overview("!", nil)
	if embed.Description != "No commands are available." {
		t.Errorf("unexpected description %q", embed.Description)
	}
}
