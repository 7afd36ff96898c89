// Package server exposes a small read-only HTTP API for operators, with a
// health check and a tournament listing.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/tourneybot/tourneybot/internal/config"
	"github.com/tourneybot/tourneybot/internal/database"
	"github.com/tourneybot/tourneybot/internal/model"
)

const shutdownTimeout = 10 * time.Second

// Server wraps the HTTP server serving the operator API.
type Server struct {
	httpServer *http.Server
	store      database.Store
	logger     *slog.Logger
}

// NewServer creates the operator API server bound to the configured address.
func NewServer(cfg *config.ServerConfig, store database.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		store:  store,
		logger: logger.With("component", "server"),
	}

	router := mux.NewRouter()
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/tournaments", s.handleListTournaments).Methods(http.MethodGet)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	return s
}

// Handler returns the server's root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run starts the HTTP server and blocks until the context is cancelled or
// the server fails. Shutdown waits for in-flight requests up to a timeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("Starting HTTP server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server failed: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown failed", "error", err)
		return fmt.Errorf("http server shutdown failed: %w", err)
	}

	s.logger.Info("HTTP server stopped gracefully.")
	return <-errCh
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.logger.ErrorContext(r.Context(), "Health check failed", "error", err)
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// tournamentSummary is the wire representation of a stored tournament. The
// full aggregate stays internal.
type tournamentSummary struct {
	Alias   string `json:"alias"`
	ID      string `json:"id"`
	Name    string `json:"name"`
	Teams   int    `json:"teams"`
	Linked  int    `json:"linked_teams"`
	Matches int    `json:"matches"`
}

func (s *Server) handleListTournaments(w http.ResponseWriter, r *http.Request) {
	tournaments, err := s.store.ListTournaments(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to list tournaments", "error", err)
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	summaries := make([]tournamentSummary, 0, len(tournaments))
	for _, t := range tournaments {
		summaries = append(summaries, summarize(t))
	}
	s.writeJSON(w, http.StatusOK, summaries)
}

func summarize(t *model.Tournament) tournamentSummary {
	return tournamentSummary{
		Alias:   t.Alias,
		ID:      t.ID,
		Name:    t.Info.Name,
		Teams:   len(t.Teams),
		Linked:  t.LinkedTeamCount(),
		Matches: len(t.Matches),
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", "error", err)
	}
}
