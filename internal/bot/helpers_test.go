package bot

import (
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/sglre6355/basebot/internal/command"
	"github.com/sglre6355/basebot/internal/reporting"
)

const (
	testSelfID    = "42"
	testChannelID = "100"
)

// recordingSink is a test double for reporting.Sink.
type recordingSink struct {
	batches [][]*discordgo.MessageEmbed
}

func (s *recordingSink) Send(blocks []*discordgo.MessageEmbed) error {
	s.batches = append(s.batches, blocks)
	return nil
}

// newTestBot creates a bot with a private registry, a recording sink and a
// mock responder. Its state knows the bot user and one DM channel.
func newTestBot(t *testing.T, modules ...Module) (*Bot, *recordingSink, *command.MockResponder) {
	t.Helper()

	b, err := NewBot(&Config{
		BotToken:   "test-token",
		LogWebhook: testWebhook,
		Prefix:     "!",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sink := &recordingSink{}
	responder := &command.MockResponder{}
	b.reporter = reporting.NewReporter(sink)
	b.newResponder = func(*discordgo.Session, string) command.Responder { return responder }

	b.registry = NewRegistry()
	for _, mod := range modules {
		b.registry.Register(mod)
	}

	b.session.State.User = &discordgo.User{ID: testSelfID, Username: "basebot"}
	if err := b.session.State.ChannelAdd(&discordgo.Channel{ID: testChannelID, Type: discordgo.ChannelTypeDM}); err != nil {
		t.Fatalf("failed to seed state: %v", err)
	}

	return b, sink, responder
}

func dm(content string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{Message: &discordgo.Message{
		ID:        "1",
		ChannelID: testChannelID,
		Content:   content,
		Author:    &discordgo.User{ID: "7", Username: "alice"},
	}}
}
