package help

import (
	"slices"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/sglre6355/basebot/internal/command"
)

// colorHelp is Discord's blurple.
const colorHelp = 0x5865F2

// Overview lists the visible commands grouped by module. cmds is expected in
// module order, as returned by bot.Info.
func Overview(prefix string, cmds []*command.Command) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "Help",
		Description: "Type `" + prefix + "help [command]` for more info on a command.",
		Color:       colorHelp,
	}

	var field *discordgo.MessageEmbedField
	for _, cmd := range cmds {
		if cmd.Hidden {
			continue
		}
		if field == nil || field.Name != cmd.Module {
			field = &discordgo.MessageEmbedField{Name: cmd.Module}
			embed.Fields = append(embed.Fields, field)
		}
		line := "`" + prefix + cmd.Signature() + "`"
		if cmd.Description != "" {
			line += " " + cmd.Description
		}
		if field.Value != "" {
			field.Value += "\n"
		}
		field.Value += line
	}

	if len(embed.Fields) == 0 {
		embed.Description = "No commands are available."
	}
	return embed
}

// Detail describes a single command.
func Detail(prefix string, cmd *command.Command) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       prefix + cmd.Signature(),
		Description: cmd.Description,
		Color:       colorHelp,
	}
	if len(cmd.Aliases) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Aliases",
			Value: strings.Join(cmd.Aliases, ", "),
		})
	}
	embed.Footer = &discordgo.MessageEmbedFooter{Text: "Module: " + cmd.Module}
	return embed
}

func find(cmds []*command.Command, name string) *command.Command {
	for _, cmd := range cmds {
		if slices.Contains(cmd.Names(), name) {
			return cmd
		}
	}
	return nil
}
