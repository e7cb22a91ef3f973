package reporting

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"

	"github.com/sglre6355/basebot/internal/command"
)

const (
	timeLayout = "2006-01-02 15:04:05 MST"

	// maxMessageContentLength keeps the message block small enough to leave
	// most of the batch to the traceback.
	maxMessageContentLength = 1024
)

// ContextBlocks describes the invocation a command error happened in: the
// message content, the guild, the channel and the author.
func ContextBlocks(ctx *command.Context) []*discordgo.MessageEmbed {
	return []*discordgo.MessageEmbed{
		messageBlock(ctx),
		guildBlock(ctx),
		channelBlock(ctx),
		userBlock(ctx),
	}
}

func messageBlock(ctx *command.Context) *discordgo.MessageEmbed {
	content := truncate(EscapeMarkdown(ctx.Content()), maxMessageContentLength)
	return newBlock("Message content", "```\n"+content+"\n```")
}

func guildBlock(ctx *command.Context) *discordgo.MessageEmbed {
	if ctx.Guild == nil {
		return newBlock("Guild", "None")
	}

	var joined time.Time
	if ctx.Me != nil {
		joined = ctx.Me.JoinedAt
	}

	return newBlock("Guild", lines(
		field("Name", ctx.Guild.Name),
		field("ID", ctx.Guild.ID),
		field("Created", createdAt(ctx.Guild.ID)),
		field("Joined", formatTime(joined)),
		field("Member count", fmt.Sprint(ctx.Guild.MemberCount)),
		field("Permission integer", fmt.Sprint(ctx.GuildPermissions)),
	))
}

func channelBlock(ctx *command.Context) *discordgo.MessageEmbed {
	// A guild message keeps its guild fields even when the guild lookup failed.
	inGuild := ctx.InGuild() || (ctx.Message != nil && ctx.Message.GuildID != "")

	channel := ctx.Channel
	if channel == nil {
		channel = &discordgo.Channel{Type: discordgo.ChannelTypeDM}
		if ctx.Message != nil {
			channel.ID = ctx.Message.ChannelID
		}
		if inGuild {
			channel.Type = discordgo.ChannelTypeGuildText
		}
	}

	if !inGuild {
		return newBlock("Channel", lines(
			field("Type", channelTypeName(channel.Type)),
			field("ID", channel.ID),
			field("Created", createdAt(channel.ID)),
		))
	}

	return newBlock("Channel", lines(
		field("Type", channelTypeName(channel.Type)),
		field("Name", channel.Name),
		field("ID", channel.ID),
		field("Created", createdAt(channel.ID)),
		field("Permission integer", fmt.Sprint(ctx.ChannelPermissions)),
	))
}

func userBlock(ctx *command.Context) *discordgo.MessageEmbed {
	author := ctx.Author
	if author == nil && ctx.Message != nil {
		author = ctx.Message.Author
	}
	if author == nil {
		return newBlock("User", "None")
	}

	return newBlock("User", lines(
		field("Name", author.String()),
		field("ID", author.ID),
		field("Created", createdAt(author.ID)),
	))
}

func channelTypeName(t discordgo.ChannelType) string {
	switch t {
	case discordgo.ChannelTypeDM:
		return "DM"
	case discordgo.ChannelTypeGroupDM:
		return "GroupDM"
	case discordgo.ChannelTypeGuildText:
		return "TextChannel"
	case discordgo.ChannelTypeGuildNews:
		return "NewsChannel"
	case discordgo.ChannelTypeGuildVoice:
		return "VoiceChannel"
	case discordgo.ChannelTypeGuildStageVoice:
		return "StageChannel"
	case discordgo.ChannelTypeGuildForum:
		return "ForumChannel"
	case discordgo.ChannelTypeGuildPublicThread,
		discordgo.ChannelTypeGuildPrivateThread,
		discordgo.ChannelTypeGuildNewsThread:
		return "Thread"
	default:
		return "Channel"
	}
}

// createdAt decodes the creation time embedded in a Discord ID.
func createdAt(id string) string {
	sf, err := snowflake.Parse(id)
	if err != nil {
		return "unknown"
	}
	return formatTime(sf.Time())
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.UTC().Format(timeLayout)
}

func field(name, value string) string {
	return "**" + name + "**: " + value
}

func lines(fields ...string) string {
	return strings.Join(fields, "\n")
}
