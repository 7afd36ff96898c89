package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/tourneybot/tourneybot/internal/model"
)

// Embed colors.
const (
	ColorGrey  = 0x95a5a6
	ColorGreen = 0x2ecc71
)

func field(name, value string) *discordgo.MessageEmbedField {
	if value == "" {
		value = "-"
	}
	return &discordgo.MessageEmbedField{Name: name, Value: value, Inline: true}
}

// TournamentEmbed builds the tournament card. viewerTeam is the viewer's
// linked team in this tournament, nil when they have none.
func TournamentEmbed(t *model.Tournament, viewerTeam *model.Team) *discordgo.MessageEmbed {
	teamStatus := "*You are not the captain of a team in this tournament*"
	color := ColorGrey
	if viewerTeam != nil {
		players := make([]string, 0, len(viewerTeam.Lineup))
		for _, p := range viewerTeam.Lineup {
			players = append(players, p.Name)
		}
		teamStatus = fmt.Sprintf("**Team Name:** %s\n**Team Players:** %s",
			viewerTeam.Name, strings.Join(players, ", "))
		color = ColorGreen
	}

	captainRole := ""
	if t.CaptainRole != "" {
		captainRole = "@" + t.CaptainRole
	}
	adminRoles := make([]string, 0, len(t.AdministratorRoles))
	for _, r := range t.AdministratorRoles {
		adminRoles = append(adminRoles, "@"+r)
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s (%s)", t.Alias, t.Info.Name),
		URL:         t.URL,
		Description: fmt.Sprintf("%s\n\n%s", t.URL, teamStatus),
		Color:       color,
		Fields: []*discordgo.MessageEmbedField{
			field("Tournament Alias", t.Alias),
			field("Toornament ID", t.ID),
			field("Game", t.Info.Discipline),
			field("Linked Teams", fmt.Sprintf("%d", t.LinkedTeamCount())),
			field("Registered Teams", fmt.Sprintf("%d", len(t.Teams))),
			field("Bot Channels", strings.Join(t.Channels, "\n")),
			field("Captain Role", captainRole),
			field("Tournament Administrator Roles", strings.Join(adminRoles, ", ")),
		},
	}
}

// TeamEmbed builds the team card.
func TeamEmbed(t *model.Tournament, team *model.Team) *discordgo.MessageEmbed {
	players := make([]string, 0, len(team.Lineup))
	for _, p := range team.Lineup {
		players = append(players, p.Name)
	}
	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s @ %s", team.Name, t.Info.Name),
		Color: ColorGrey,
		Fields: []*discordgo.MessageEmbedField{
			field("Team Name", team.Name),
			field("Team ID", team.ID),
			field("Team Captain", team.Captain),
			field("Team Players", strings.Join(players, "\n")),
		},
	}
}

// MatchEmbed builds the match card. The password is only revealed when the
// viewer's team has joined the match.
func MatchEmbed(t *model.Tournament, match *model.Match, viewerTeam *model.Team) *discordgo.MessageEmbed {
	joined := viewerTeam != nil && match.HasJoined(viewerTeam.ID)

	fields := []*discordgo.MessageEmbedField{
		field("Status", match.Status.String()),
		field("Teams Joined", fmt.Sprintf("%d/%d", len(match.TeamsJoined), len(match.TeamsRegistered))),
		field("Created by", match.CreatedBy),
		field("Match ID", match.ID),
		field("Group", match.GroupName),
	}
	if joined {
		fields = append(fields, field("Password", match.Password))
	}

	color := ColorGrey
	if joined {
		color = ColorGreen
	}
	return &discordgo.MessageEmbed{
		Title:  fmt.Sprintf("%s @ %s", match.Name, t.Alias),
		Color:  color,
		Fields: fields,
	}
}

// MatchSummary renders a match as text for list views. joined marks the
// viewer's own matches.
func MatchSummary(match *model.Match, joined bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "```ldif\nStatus: %s\nTeams Joined: %d\nCreated by: %s\nCreated at: %s\n```",
		match.Status, len(match.TeamsJoined), match.CreatedBy,
		match.CreatedAt.Format("01/02/2006 15:04:05"))
	if joined {
		b.WriteString("*You have joined this match*")
	}
	return b.String()
}

// ScoreSummary renders a score submission as text for embed fields.
func ScoreSummary(score *model.ScoreSubmission) string {
	var b strings.Builder
	fmt.Fprintf(&b, "```Position:      %d\nEliminations:  %d\nLast update:   %s```",
		score.Position, score.Eliminations,
		score.UpdatedAt.Format("01/02/2006 15:04:05"))
	b.WriteString(strings.Join(score.ScreenshotURLs, "\n"))
	return b.String()
}

// ScoresEmbed builds a card listing score submissions, one field per entry.
func ScoresEmbed(title string, scores []*model.ScoreSubmission, nameOf func(*model.ScoreSubmission) string) *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(scores))
	for _, score := range scores {
		fields = append(fields, field(nameOf(score), ScoreSummary(score)))
	}
	return &discordgo.MessageEmbed{
		Title:  title,
		Color:  ColorGrey,
		Fields: fields,
	}
}
