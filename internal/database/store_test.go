package database_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourneybot/tourneybot/internal/database"
	"github.com/tourneybot/tourneybot/internal/model"
)

func newTestStore(t *testing.T) database.Store {
	t.Helper()

	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.CloseDB(db) })

	return database.NewStore(db, nil)
}

func testTournament(alias string) *model.Tournament {
	checkedIn := true
	return &model.Tournament{
		ID:    "100",
		Alias: alias,
		URL:   "https://www.toornament.com/en_US/tournaments/100/information",
		Info: model.TournamentInfo{
			ID:         "100",
			Name:       "Summer Cup",
			Discipline: "fortnite",
			Status:     "running",
		},
		AdministratorRoles: []string{"Staff"},
		CaptainRole:        "Captains",
		Channels:           []string{"#tournament"},
		Teams: []*model.Team{
			{
				ID:        "t-1",
				Name:      "Alpha",
				Captain:   "cap#0001",
				CheckedIn: &checkedIn,
				Lineup:    []model.Player{{Name: "p1"}, {Name: "p2"}},
				ScoreSubmissions: []*model.ScoreSubmission{
					model.NewScoreSubmission("scrim-1", "Alpha", 1, 12, []string{"https://cdn.example.com/a.png"}),
				},
			},
			{ID: "t-2", Name: "Bravo"},
		},
		Matches: []*model.Match{
			{
				Name:        "scrim-1",
				Status:      model.MatchOngoing,
				CreatedBy:   "admin#0001",
				Password:    "hunter2",
				TeamsJoined: []string{"t-1"},
			},
		},
	}
}

func TestStorePing(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	assert.NoError(t, store.Ping(context.Background()))
}

func TestSaveAndGetTournament(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveTournament(ctx, testTournament("summer")))

	got, err := store.GetTournament(ctx, "summer")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "100", got.ID)
	assert.Equal(t, "Summer Cup", got.Info.Name)
	assert.Equal(t, []string{"Staff"}, got.AdministratorRoles)
	assert.Equal(t, "Captains", got.CaptainRole)
	require.Len(t, got.Teams, 2)
	assert.Equal(t, "cap#0001", got.Teams[0].Captain)
	require.Len(t, got.Teams[0].ScoreSubmissions, 1)
	assert.Equal(t, 12, got.Teams[0].ScoreSubmissions[0].Eliminations)
	require.Len(t, got.Matches, 1)
	assert.Equal(t, model.MatchOngoing, got.Matches[0].Status)
	assert.Equal(t, []string{"t-1"}, got.Matches[0].TeamsJoined)
}

func TestGetTournamentNotFound(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	got, err := store.GetTournament(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaveTournamentUpdates(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	tournament := testTournament("summer")
	require.NoError(t, store.SaveTournament(ctx, tournament))

	tournament.Teams[0].Captain = ""
	tournament.Matches[0].Status = model.MatchCompleted
	require.NoError(t, store.SaveTournament(ctx, tournament))

	got, err := store.GetTournament(ctx, "summer")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.Teams[0].Captain)
	assert.Equal(t, model.MatchCompleted, got.Matches[0].Status)
}

func TestSaveTournamentValidation(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	assert.Error(t, store.SaveTournament(ctx, nil))
	assert.Error(t, store.SaveTournament(ctx, &model.Tournament{ID: "100"}))
	assert.Error(t, store.SaveTournament(ctx, &model.Tournament{Alias: "summer"}))
}

func TestListTournaments(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveTournament(ctx, testTournament("winter")))
	require.NoError(t, store.SaveTournament(ctx, testTournament("autumn")))

	tournaments, err := store.ListTournaments(ctx)
	require.NoError(t, err)
	require.Len(t, tournaments, 2)
	assert.Equal(t, "autumn", tournaments[0].Alias)
	assert.Equal(t, "winter", tournaments[1].Alias)
}

func TestDeleteTournament(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveTournament(ctx, testTournament("summer")))
	require.NoError(t, store.DeleteTournament(ctx, "summer"))

	got, err := store.GetTournament(ctx, "summer")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deleting an unknown alias is not an error.
	assert.NoError(t, store.DeleteTournament(ctx, "ghost"))
}

func TestRunSQLMaintenance(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	assert.NoError(t, store.RunSQLMaintenance(context.Background()))
}
