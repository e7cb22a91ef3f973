package command

import "github.com/bwmarrin/discordgo"

// Responder provides an abstraction for sending messages to the channel a
// command was invoked in.
// This interface enables testing handlers without a live Discord connection.
type Responder interface {
	// Send posts a message to the invoking channel.
	Send(message *discordgo.MessageSend) error
}

// DefaultAllowedMentions returns the mention policy applied to every outgoing
// message: users and the replied user may be pinged, roles and
// @everyone/@here may not.
func DefaultAllowedMentions() *discordgo.MessageAllowedMentions {
	return &discordgo.MessageAllowedMentions{
		Parse:       []discordgo.AllowedMentionType{discordgo.AllowedMentionTypeUsers},
		RepliedUser: true,
	}
}

// DiscordResponder implements Responder using a live Discord session.
type DiscordResponder struct {
	session   *discordgo.Session
	channelID string
	mentions  *discordgo.MessageAllowedMentions
}

// NewDiscordResponder creates a new DiscordResponder for a channel.
func NewDiscordResponder(
	s *discordgo.Session,
	channelID string,
	mentions *discordgo.MessageAllowedMentions,
) *DiscordResponder {
	return &DiscordResponder{
		session:   s,
		channelID: channelID,
		mentions:  mentions,
	}
}

// Send posts the message via Discord API. Messages without an explicit
// mention policy get the responder's policy.
func (r *DiscordResponder) Send(message *discordgo.MessageSend) error {
	if message.AllowedMentions == nil {
		message.AllowedMentions = r.mentions
	}
	_, err := r.session.ChannelMessageSendComplex(r.channelID, message)
	return err
}

// MockResponder is a test double for Responder.
type MockResponder struct {
	Messages []*discordgo.MessageSend
	Err      error
}

// Send records the message for testing.
func (m *MockResponder) Send(message *discordgo.MessageSend) error {
	m.Messages = append(m.Messages, message)
	return m.Err
}

// LastMessage returns the most recently recorded message, or nil.
func (m *MockResponder) LastMessage() *discordgo.MessageSend {
	if len(m.Messages) == 0 {
		return nil
	}
	return m.Messages[len(m.Messages)-1]
}
