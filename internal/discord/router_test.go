package discord_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourneybot/tourneybot/internal/config"
	"github.com/tourneybot/tourneybot/internal/discord"
)

func newTestRouter(t *testing.T, phrases ...string) *discord.Router {
	t.Helper()

	cfg := &config.DiscordConfig{
		CommandPrefix: "!",
		AltPrefixes:   []string{"?"},
	}
	router := discord.NewRouter(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	for _, phrase := range phrases {
		router.Register(discord.Command{Name: phrase})
	}
	return router
}

func TestResolvePrefix(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, "show tournaments", "link")

	tests := []struct {
		name    string
		content string
		wantCmd string
		ok      bool
	}{
		{name: "primary prefix", content: "!show tournaments", wantCmd: "show tournaments", ok: true},
		{name: "alt prefix", content: "?show tournaments", wantCmd: "show tournaments", ok: true},
		{name: "prefix with extra spaces", content: "!  link Alpha", wantCmd: "link", ok: true},
		{name: "no prefix", content: "show tournaments", ok: false},
		{name: "empty", content: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd, _, ok := router.Resolve(tt.content)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.wantCmd, cmd.Name)
			}
		})
	}
}

func TestResolveLongestPhraseWins(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t,
		"link",
		"link team captain",
		"show team",
		"show team by id",
		"show teams",
		"show teams missing",
		"show tournament",
		"show tournament refresh status",
	)

	tests := []struct {
		name     string
		content  string
		wantCmd  string
		wantArgs []string
		ok       bool
	}{
		{name: "exact phrase", content: "!show team", wantCmd: "show team", ok: true},
		{name: "phrase with args", content: "!show team summer Alpha", wantCmd: "show team", wantArgs: []string{"summer", "Alpha"}, ok: true},
		{name: "longer phrase beats shorter", content: "!show team by id summer t-1", wantCmd: "show team by id", wantArgs: []string{"summer", "t-1"}, ok: true},
		{name: "plural is its own command", content: "!show teams summer", wantCmd: "show teams", wantArgs: []string{"summer"}, ok: true},
		{name: "missing variant", content: "!show teams missing summer", wantCmd: "show teams missing", wantArgs: []string{"summer"}, ok: true},
		{name: "refresh status", content: "!show tournament refresh status summer", wantCmd: "show tournament refresh status", wantArgs: []string{"summer"}, ok: true},
		{name: "link with team name", content: "!link Alpha", wantCmd: "link", wantArgs: []string{"Alpha"}, ok: true},
		{name: "link team captain", content: "!link team captain summer t-1 user#0001", wantCmd: "link team captain", wantArgs: []string{"summer", "t-1", "user#0001"}, ok: true},
		{name: "quoted team name", content: `!show team summer "Team Alpha"`, wantCmd: "show team", wantArgs: []string{"summer", "Team Alpha"}, ok: true},
		{name: "case insensitive", content: "!SHOW Team By ID summer t-1", wantCmd: "show team by id", wantArgs: []string{"summer", "t-1"}, ok: true},
		{name: "unknown command", content: "!frobnicate", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd, args, ok := router.Resolve(tt.content)
			require.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			assert.Equal(t, tt.wantCmd, cmd.Name)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestSplitArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "single word", input: "summer", want: []string{"summer"}},
		{name: "multiple words", input: "summer Alpha 3", want: []string{"summer", "Alpha", "3"}},
		{name: "double quoted team name", input: `summer "Team Alpha"`, want: []string{"summer", "Team Alpha"}},
		{name: "single quoted team name", input: "summer 'Team Alpha'", want: []string{"summer", "Team Alpha"}},
		{name: "escaped quote inside quotes", input: `"Team \"A\""`, want: []string{`Team "A"`}},
		{name: "extra whitespace", input: "  summer \t Alpha  ", want: []string{"summer", "Alpha"}},
		{name: "empty quotes dropped", input: `summer ""`, want: []string{"summer"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, discord.SplitArgs(tt.input))
		})
	}
}

func TestCommandsSorted(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, "show teams", "link", "add tournament")

	cmds := router.Commands()
	require.Len(t, cmds, 3)
	assert.Equal(t, "add tournament", cmds[0].Name)
	assert.Equal(t, "link", cmds[1].Name)
	assert.Equal(t, "show teams", cmds[2].Name)
}
