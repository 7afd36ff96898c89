package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourneybot/tourneybot/internal/config"
	"github.com/tourneybot/tourneybot/internal/model"
	"github.com/tourneybot/tourneybot/internal/server"
)

// fakeStore is a canned database.Store for handler tests.
type fakeStore struct {
	pingErr     error
	tournaments []*model.Tournament
	listErr     error
}

func (f *fakeStore) Ping(context.Context) error { return f.pingErr }

func (f *fakeStore) GetTournament(context.Context, string) (*model.Tournament, error) {
	return nil, nil
}

func (f *fakeStore) ListTournaments(context.Context) ([]*model.Tournament, error) {
	return f.tournaments, f.listErr
}

func (f *fakeStore) SaveTournament(context.Context, *model.Tournament) error { return nil }
func (f *fakeStore) DeleteTournament(context.Context, string) error          { return nil }
func (f *fakeStore) RunSQLMaintenance(context.Context) error                 { return nil }

func newTestServer(t *testing.T, store *fakeStore) *httptest.Server {
	t.Helper()

	srv := server.NewServer(
		&config.ServerConfig{Enabled: true, Addr: ":0"},
		store,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, &fakeStore{})

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}

func TestHealthzUnavailable(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, &fakeStore{pingErr: errors.New("connection lost")})

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestListTournaments(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, &fakeStore{
		tournaments: []*model.Tournament{
			{
				ID:    "100",
				Alias: "summer",
				Info:  model.TournamentInfo{Name: "Summer Cup"},
				Teams: []*model.Team{
					{ID: "t-1", Name: "Alpha", Captain: "cap#0001"},
					{ID: "t-2", Name: "Bravo"},
				},
				Matches: []*model.Match{{Name: "scrim-1", Status: model.MatchPending}},
			},
		},
	})

	resp, err := http.Get(ts.URL + "/api/v1/tournaments")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var summaries []struct {
		Alias   string `json:"alias"`
		ID      string `json:"id"`
		Name    string `json:"name"`
		Teams   int    `json:"teams"`
		Linked  int    `json:"linked_teams"`
		Matches int    `json:"matches"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summaries))

	require.Len(t, summaries, 1)
	assert.Equal(t, "summer", summaries[0].Alias)
	assert.Equal(t, "Summer Cup", summaries[0].Name)
	assert.Equal(t, 2, summaries[0].Teams)
	assert.Equal(t, 1, summaries[0].Linked)
	assert.Equal(t, 1, summaries[0].Matches)
}

func TestListTournamentsEmpty(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, &fakeStore{})

	resp, err := http.Get(ts.URL + "/api/v1/tournaments")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(body))
}

func TestListTournamentsFailure(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, &fakeStore{listErr: errors.New("disk on fire")})

	resp, err := http.Get(ts.URL + "/api/v1/tournaments")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestMethodNotAllowed(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, &fakeStore{})

	resp, err := http.Post(ts.URL+"/api/v1/tournaments", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
