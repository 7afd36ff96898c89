package database

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tourneybot/tourneybot/internal/model"
)

// tournamentRow is the persisted form of a tournament aggregate. The whole
// aggregate (teams, matches, submissions) is stored as one JSON document
// keyed by alias; alias and tournament_id are lifted into columns for
// lookups.
type tournamentRow struct {
	Alias        string    `db:"alias"`
	TournamentID string    `db:"tournament_id"`
	Document     string    `db:"document"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func newTournamentRow(tournament *model.Tournament) (*tournamentRow, error) {
	doc, err := json.Marshal(tournament)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tournament %q: %w", tournament.Alias, err)
	}
	return &tournamentRow{
		Alias:        tournament.Alias,
		TournamentID: tournament.ID,
		Document:     string(doc),
	}, nil
}

func (r *tournamentRow) tournament() (*model.Tournament, error) {
	var tournament model.Tournament
	if err := json.Unmarshal([]byte(r.Document), &tournament); err != nil {
		return nil, fmt.Errorf("failed to decode tournament %q: %w", r.Alias, err)
	}
	return &tournament, nil
}
