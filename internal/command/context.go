package command

import "github.com/bwmarrin/discordgo"

// Context describes a single command invocation.
type Context struct {
	Session *discordgo.Session
	Message *discordgo.Message
	Author  *discordgo.User
	Channel *discordgo.Channel
	// Guild is nil when the command was invoked in a direct message.
	Guild *discordgo.Guild
	// Me is the bot's own member in Guild, nil in direct messages.
	Me *discordgo.Member

	// GuildPermissions and ChannelPermissions are the bot's permission
	// integers in the guild and in the invoking channel.
	GuildPermissions   int64
	ChannelPermissions int64

	Prefix      string
	InvokedWith string
	Args        []string
	Command     *Command

	Responder Responder
}

// InGuild reports whether the invocation happened in a guild.
func (c *Context) InGuild() bool {
	return c.Guild != nil
}

// Content returns the raw message content, or "" without a message.
func (c *Context) Content() string {
	if c.Message == nil {
		return ""
	}
	return c.Message.Content
}

// Reply sends a plain text reply to the invoking message.
func (c *Context) Reply(content string) error {
	return c.Responder.Send(&discordgo.MessageSend{
		Content:   content,
		Reference: c.reference(),
	})
}

// SendEmbed sends an embed to the invoking channel.
func (c *Context) SendEmbed(embed *discordgo.MessageEmbed) error {
	return c.Responder.Send(&discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
	})
}

func (c *Context) reference() *discordgo.MessageReference {
	if c.Message == nil {
		return nil
	}
	return c.Message.Reference()
}
