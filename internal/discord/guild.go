package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// nicknameLimit is Discord's maximum nickname length.
const nicknameLimit = 32

// FindRole looks up a role by name across the guilds the bot is in.
func FindRole(s *discordgo.Session, roleName string) (string, *discordgo.Role, bool) {
	for _, guild := range s.State.Guilds {
		for _, role := range guild.Roles {
			if strings.EqualFold(role.Name, roleName) {
				return guild.ID, role, true
			}
		}
	}
	return "", nil, false
}

// FindChannel resolves a "#name" or bare channel name to its ID across the
// guilds the bot is in.
func FindChannel(s *discordgo.Session, name string) (string, bool) {
	name = strings.TrimPrefix(name, "#")
	for _, guild := range s.State.Guilds {
		for _, channel := range guild.Channels {
			if channel.Type == discordgo.ChannelTypeGuildText && strings.EqualFold(channel.Name, name) {
				return channel.ID, true
			}
		}
	}
	return "", false
}

// FindMember resolves a user tag to its guild membership.
func FindMember(s *discordgo.Session, tag string) (string, *discordgo.Member, bool) {
	username, _, _ := strings.Cut(tag, "#")
	for _, guild := range s.State.Guilds {
		for _, member := range guild.Members {
			if UserTag(member.User) == tag {
				return guild.ID, member, true
			}
		}
		members, err := s.GuildMembersSearch(guild.ID, username, 10)
		if err != nil {
			continue
		}
		for _, member := range members {
			if UserTag(member.User) == tag {
				return guild.ID, member, true
			}
		}
	}
	return "", nil, false
}

// MemberHasRole reports whether the member carries the named role.
func MemberHasRole(s *discordgo.Session, guildID string, member *discordgo.Member, roleName string) bool {
	guild, err := s.State.Guild(guildID)
	if err != nil {
		return false
	}
	for _, roleID := range member.Roles {
		for _, role := range guild.Roles {
			if role.ID == roleID && strings.EqualFold(role.Name, roleName) {
				return true
			}
		}
	}
	return false
}

// CaptainNickname builds the tagged nickname shown for linked captains,
// truncating the team name so the result fits Discord's 32-rune limit.
func CaptainNickname(nick, teamName string) string {
	base := []rune(nick)
	team := []rune(teamName)
	maxTeam := nicknameLimit - (len(base) + 4)
	if maxTeam < 0 {
		// The nickname alone leaves no room for the tag, shorten it too.
		base = base[:nicknameLimit-4]
		maxTeam = 0
	}
	if len(team) > maxTeam {
		team = append(team[:maxTeam], '.', '.')
	}
	return fmt.Sprintf("%s[%s]", string(base), string(team))
}

// GrantCaptain tags the member's nickname with the team name and assigns
// the tournament captain role when one is set.
func GrantCaptain(s *discordgo.Session, tag, teamName, captainRole string) error {
	guildID, member, ok := FindMember(s, tag)
	if !ok {
		return fmt.Errorf("member %q not found in any guild", tag)
	}

	nick := member.Nick
	if nick == "" {
		nick = member.User.Username
	}
	if err := s.GuildMemberNickname(guildID, member.User.ID, CaptainNickname(nick, teamName)); err != nil {
		return fmt.Errorf("failed to set nickname for %q: %w", tag, err)
	}

	if captainRole != "" && !MemberHasRole(s, guildID, member, captainRole) {
		_, role, ok := FindRole(s, captainRole)
		if !ok {
			return fmt.Errorf("captain role %q not found", captainRole)
		}
		if err := s.GuildMemberRoleAdd(guildID, member.User.ID, role.ID); err != nil {
			return fmt.Errorf("failed to add captain role to %q: %w", tag, err)
		}
	}
	return nil
}

// RevokeCaptain restores the member's nickname and removes the tournament
// captain role when one is set.
func RevokeCaptain(s *discordgo.Session, tag, captainRole string) error {
	guildID, member, ok := FindMember(s, tag)
	if !ok {
		return fmt.Errorf("member %q not found in any guild", tag)
	}

	if err := s.GuildMemberNickname(guildID, member.User.ID, member.User.Username); err != nil {
		return fmt.Errorf("failed to reset nickname for %q: %w", tag, err)
	}

	if captainRole != "" && MemberHasRole(s, guildID, member, captainRole) {
		_, role, ok := FindRole(s, captainRole)
		if !ok {
			return fmt.Errorf("captain role %q not found", captainRole)
		}
		if err := s.GuildMemberRoleRemove(guildID, member.User.ID, role.ID); err != nil {
			return fmt.Errorf("failed to remove captain role from %q: %w", tag, err)
		}
	}
	return nil
}
