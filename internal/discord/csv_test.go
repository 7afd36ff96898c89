package discord_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourneybot/tourneybot/internal/discord"
	"github.com/tourneybot/tourneybot/internal/model"
)

func TestWriteMatchScoresCSV(t *testing.T) {
	t.Parallel()

	updatedAt := time.Date(2026, 7, 4, 18, 30, 0, 0, time.UTC)
	scores := []*model.ScoreSubmission{
		{
			MatchName:      "scrim-1",
			TeamName:       "Alpha",
			Position:       1,
			Eliminations:   12,
			ScreenshotURLs: []string{"https://cdn.example.com/a.png", "https://cdn.example.com/b.png"},
			UpdatedAt:      updatedAt,
		},
		{
			MatchName:    "scrim-1",
			TeamName:     "Bravo",
			Position:     5,
			Eliminations: 2,
			UpdatedAt:    updatedAt,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, discord.WriteMatchScoresCSV(&buf, scores))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"Team Name", "Updated at", "Position", "Eliminations", "Screenshots"}, records[0])
	assert.Equal(t, []string{
		"Alpha", "07/04/2026 18:30:00", "1", "12",
		"https://cdn.example.com/a.png https://cdn.example.com/b.png",
	}, records[1])
	assert.Equal(t, []string{"Bravo", "07/04/2026 18:30:00", "5", "2", ""}, records[2])
}

func TestWriteMatchScoresCSVEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, discord.WriteMatchScoresCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
}
