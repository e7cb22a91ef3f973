package bot

import (
	"slices"

	"github.com/bwmarrin/discordgo"
)

// guildPermissions computes the guild-wide permission integer of member from
// the @everyone role and the member's roles.
func guildPermissions(guild *discordgo.Guild, member *discordgo.Member) int64 {
	if guild == nil || member == nil {
		return 0
	}
	if member.User != nil && member.User.ID == guild.OwnerID {
		return discordgo.PermissionAll
	}

	var perms int64
	for _, role := range guild.Roles {
		if role.ID == guild.ID || slices.Contains(member.Roles, role.ID) {
			perms |= role.Permissions
		}
	}

	if perms&discordgo.PermissionAdministrator != 0 {
		return discordgo.PermissionAll
	}
	return perms
}
