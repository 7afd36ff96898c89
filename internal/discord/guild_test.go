package discord_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tourneybot/tourneybot/internal/discord"
)

// discordNicknameLimit is Discord's maximum nickname length in runes.
const discordNicknameLimit = 32

func TestCaptainNickname(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		nick     string
		teamName string
		want     string
	}{
		{
			name:     "short team fits",
			nick:     "Player",
			teamName: "TeamX",
			want:     "Player[TeamX]",
		},
		{
			name:     "long team truncated",
			nick:     "Player",
			teamName: strings.Repeat("A", 30),
			want:     "Player[" + strings.Repeat("A", 22) + "..]",
		},
		{
			name:     "long nick truncated with team",
			nick:     strings.Repeat("N", 30),
			teamName: "Alpha",
			want:     strings.Repeat("N", 28) + "[..]",
		},
		{
			name:     "nick exactly at limit",
			nick:     strings.Repeat("N", 28),
			teamName: "Alpha",
			want:     strings.Repeat("N", 28) + "[..]",
		},
		{
			name:     "multibyte team name",
			nick:     "Player",
			teamName: "ÉquipeÀ",
			want:     "Player[ÉquipeÀ]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := discord.CaptainNickname(tt.nick, tt.teamName)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len([]rune(got)), discordNicknameLimit)
		})
	}
}

func TestCaptainNicknameLength(t *testing.T) {
	t.Parallel()

	// Any nickname and team name combination stays within Discord's limit.
	tests := []struct {
		name     string
		nick     string
		teamName string
	}{
		{name: "long team", nick: "Player", teamName: strings.Repeat("VeryLongTeamName", 5)},
		{name: "long nick", nick: strings.Repeat("N", 30), teamName: "Alpha"},
		{name: "long both", nick: strings.Repeat("N", 40), teamName: strings.Repeat("A", 40)},
		{name: "multibyte nick", nick: strings.Repeat("Ä", 31), teamName: "Équipe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := discord.CaptainNickname(tt.nick, tt.teamName)
			assert.LessOrEqual(t, len([]rune(got)), discordNicknameLimit)
		})
	}
}
