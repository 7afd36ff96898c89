package toornament_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourneybot/tourneybot/internal/toornament"
)

func newClient(t *testing.T, baseURL string) *toornament.HTTPClient {
	t.Helper()

	client, err := toornament.NewHTTPClient(toornament.Config{
		BaseURL:      baseURL,
		APIKey:       "test-api-key",
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		Timeout:      5 * time.Second,
		MaxRetries:   2,
		RetryDelay:   time.Millisecond,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return client
}

func serveToken(t *testing.T, w http.ResponseWriter, r *http.Request) {
	t.Helper()

	require.NoError(t, r.ParseForm())
	assert.Equal(t, "client_credentials", r.Form.Get("grant_type"))
	assert.Equal(t, "test-client", r.Form.Get("client_id"))
	assert.Equal(t, "test-secret", r.Form.Get("client_secret"))

	json.NewEncoder(w).Encode(map[string]any{
		"access_token": "tok-" + r.Form.Get("scope"),
		"token_type":   "Bearer",
		"expires_in":   3600,
	})
}

func TestTournament(t *testing.T) {
	t.Parallel()

	var tokenCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/oauth/v2/token":
			tokenCalls.Add(1)
			serveToken(t, w, r)
		case "/organizer/v2/tournaments/100":
			assert.Equal(t, "test-api-key", r.Header.Get("X-Api-Key"))
			assert.Equal(t, "Bearer tok-organizer:view", r.Header.Get("Authorization"))
			fmt.Fprint(w, `{"id":"100","name":"Summer Cup","discipline":"fortnite","status":"running"}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := newClient(t, srv.URL)

	info, err := client.Tournament(context.Background(), "100")
	require.NoError(t, err)
	assert.Equal(t, "Summer Cup", info.Name)
	assert.Equal(t, "fortnite", info.Discipline)

	// Second call reuses the cached token.
	_, err = client.Tournament(context.Background(), "100")
	require.NoError(t, err)
	assert.Equal(t, int32(1), tokenCalls.Load())
}

func TestTournamentNotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/oauth/v2/token" {
			serveToken(t, w, r)
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := newClient(t, srv.URL).Tournament(context.Background(), "999")
	assert.ErrorIs(t, err, toornament.ErrNotFound)
}

func TestParticipantsPagination(t *testing.T) {
	t.Parallel()

	const total = 60
	var ranges []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/viewer/v2/tournaments/100/participants", r.URL.Path)

		rangeHeader := r.Header.Get("Range")
		ranges = append(ranges, rangeHeader)

		var lo, hi int
		_, err := fmt.Sscanf(rangeHeader, "participants=%d-%d", &lo, &hi)
		require.NoError(t, err)
		if hi > total-1 {
			hi = total - 1
		}

		page := make([]map[string]string, 0, hi-lo+1)
		for i := lo; i <= hi; i++ {
			page = append(page, map[string]string{
				"id":   fmt.Sprintf("t-%d", i),
				"name": fmt.Sprintf("Team %d", i),
			})
		}

		w.Header().Set("Content-Range", fmt.Sprintf("participants %d-%d/%d", lo, hi, total))
		w.WriteHeader(http.StatusPartialContent)
		json.NewEncoder(w).Encode(page)
	}))
	defer srv.Close()

	participants, err := newClient(t, srv.URL).Participants(context.Background(), "100")
	require.NoError(t, err)

	require.Len(t, participants, total)
	assert.Equal(t, "t-0", participants[0].ID)
	assert.Equal(t, "t-59", participants[59].ID)
	assert.Equal(t, []string{"participants=0-49", "participants=50-59"}, ranges)
}

func TestRetryOnServerError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "upstream hiccup", http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"id":"m-1","public_notes":"Group A"}`)
	}))
	defer srv.Close()

	match, err := newClient(t, srv.URL).Match(context.Background(), "100", "m-1")
	require.NoError(t, err)
	assert.Equal(t, "Group A", match.PublicNotes)
	assert.Equal(t, int32(2), calls.Load())
}

func TestNoRetryOnClientError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := newClient(t, srv.URL).Match(context.Background(), "100", "m-1")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestNewHTTPClientValidation(t *testing.T) {
	t.Parallel()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := toornament.NewHTTPClient(toornament.Config{}, log)
	assert.Error(t, err)

	_, err = toornament.NewHTTPClient(toornament.Config{BaseURL: "https://api.example.com"}, log)
	assert.Error(t, err)
}
