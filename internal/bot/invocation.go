package bot

import (
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/sglre6355/basebot/internal/command"
)

// newContext collects what a command invocation needs to know about its
// message. Lookups prefer the state cache and fall back to the REST API.
func (b *Bot) newContext(s *discordgo.Session, m *discordgo.Message, prefix string) *command.Context {
	ctx := &command.Context{
		Session:   s,
		Message:   m,
		Author:    m.Author,
		Prefix:    prefix,
		Responder: b.newResponder(s, m.ChannelID),
	}

	ctx.Channel = lookupChannel(s, m.ChannelID)
	if m.GuildID == "" {
		return ctx
	}

	selfID := s.State.User.ID
	ctx.Guild = lookupGuild(s, m.GuildID)
	ctx.Me = lookupMember(s, m.GuildID, selfID)
	ctx.GuildPermissions = guildPermissions(ctx.Guild, ctx.Me)

	perms, err := s.State.UserChannelPermissions(selfID, m.ChannelID)
	if err != nil {
		slog.Debug("failed to compute channel permissions", "channel_id", m.ChannelID, "error", err)
	}
	ctx.ChannelPermissions = perms

	return ctx
}

func lookupChannel(s *discordgo.Session, channelID string) *discordgo.Channel {
	if c, err := s.State.Channel(channelID); err == nil {
		return c
	}
	c, err := s.Channel(channelID)
	if err != nil {
		slog.Debug("failed to look up channel", "channel_id", channelID, "error", err)
		return nil
	}
	return c
}

func lookupGuild(s *discordgo.Session, guildID string) *discordgo.Guild {
	if g, err := s.State.Guild(guildID); err == nil {
		return g
	}
	g, err := s.Guild(guildID)
	if err != nil {
		slog.Debug("failed to look up guild", "guild_id", guildID, "error", err)
		return nil
	}
	return g
}

func lookupMember(s *discordgo.Session, guildID, userID string) *discordgo.Member {
	if m, err := s.State.Member(guildID, userID); err == nil {
		return m
	}
	m, err := s.GuildMember(guildID, userID)
	if err != nil {
		slog.Debug("failed to look up member", "guild_id", guildID, "user_id", userID, "error", err)
		return nil
	}
	return m
}
