package model_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourneybot/tourneybot/internal/model"
)

func TestParseMatchStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    model.MatchStatus
		wantErr bool
	}{
		{name: "pending uppercase", input: "PENDING", want: model.MatchPending},
		{name: "ongoing lowercase", input: "ongoing", want: model.MatchOngoing},
		{name: "completed mixed case", input: "Completed", want: model.MatchCompleted},
		{name: "unknown status", input: "PAUSED", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := model.ParseMatchStatus(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchStatusJSON(t *testing.T) {
	t.Parallel()

	match := model.Match{Name: "scrim-1", Status: model.MatchOngoing}

	data, err := json.Marshal(match)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status":"ONGOING"`)

	var decoded model.Match
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, model.MatchOngoing, decoded.Status)
}

func TestMatchHasRegistered(t *testing.T) {
	t.Parallel()

	unbound := model.Match{Name: "open-lobby"}
	assert.True(t, unbound.HasRegistered("any-team"), "unbound matches accept every team")

	bound := model.Match{
		ID:              "m-1",
		Name:            "group-a",
		TeamsRegistered: []string{"t-1", "t-2"},
	}
	assert.True(t, bound.HasRegistered("t-1"))
	assert.False(t, bound.HasRegistered("t-3"))
}

func TestMatchHasJoined(t *testing.T) {
	t.Parallel()

	match := model.Match{Name: "scrim-1", TeamsJoined: []string{"t-1"}}
	assert.True(t, match.HasJoined("t-1"))
	assert.False(t, match.HasJoined("t-2"))
}

func TestTournamentLookups(t *testing.T) {
	t.Parallel()

	tournament := &model.Tournament{
		ID:    "100",
		Alias: "summer",
		Teams: []*model.Team{
			{ID: "t-1", Name: "Alpha", Captain: "cap#0001"},
			{ID: "t-2", Name: "Bravo"},
		},
		Matches: []*model.Match{
			{Name: "scrim-1", Status: model.MatchPending},
		},
	}

	assert.Equal(t, "Alpha", tournament.FindTeamByID("t-1").Name)
	assert.Nil(t, tournament.FindTeamByID("t-9"))

	assert.Equal(t, "t-2", tournament.FindTeamByName("Bravo").ID)
	assert.Nil(t, tournament.FindTeamByName("Charlie"))

	assert.Equal(t, "Alpha", tournament.FindTeamByCaptain("cap#0001").Name)
	assert.Nil(t, tournament.FindTeamByCaptain(""))
	assert.Nil(t, tournament.FindTeamByCaptain("nobody#0000"))

	assert.NotNil(t, tournament.FindMatchByName("scrim-1"))
	assert.Nil(t, tournament.FindMatchByName("scrim-2"))

	assert.Equal(t, 1, tournament.LinkedTeamCount())
}

func TestMatchScores(t *testing.T) {
	t.Parallel()

	tournament := &model.Tournament{
		Teams: []*model.Team{
			{
				ID:   "t-1",
				Name: "Alpha",
				ScoreSubmissions: []*model.ScoreSubmission{
					model.NewScoreSubmission("scrim-1", "Alpha", 1, 12, nil),
					model.NewScoreSubmission("scrim-2", "Alpha", 4, 3, nil),
				},
			},
			{ID: "t-2", Name: "Bravo"},
			{
				ID:   "t-3",
				Name: "Charlie",
				ScoreSubmissions: []*model.ScoreSubmission{
					model.NewScoreSubmission("scrim-1", "Charlie", 2, 9, nil),
				},
			},
		},
	}

	scores := tournament.MatchScores("scrim-1")
	require.Len(t, scores, 2)
	assert.Equal(t, "Alpha", scores[0].TeamName)
	assert.Equal(t, "Charlie", scores[1].TeamName)

	assert.Empty(t, tournament.MatchScores("scrim-9"))
}

func TestNewScoreSubmission(t *testing.T) {
	t.Parallel()

	score := model.NewScoreSubmission("scrim-1", "Alpha", 3, 7, []string{"https://example.com/shot.png"})

	assert.NotEmpty(t, score.ID)
	assert.Equal(t, "scrim-1", score.MatchName)
	assert.Equal(t, "Alpha", score.TeamName)
	assert.Equal(t, 3, score.Position)
	assert.Equal(t, 7, score.Eliminations)
	assert.False(t, score.UpdatedAt.IsZero())

	before := score.UpdatedAt
	score.Touch()
	assert.False(t, score.UpdatedAt.Before(before))
}
