package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/tourneybot/tourneybot/internal/model"
)

// Store defines the interface for database operations.
// Methods should accept context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// GetTournament retrieves a tournament by alias. Returns nil, nil if not found.
	GetTournament(ctx context.Context, alias string) (*model.Tournament, error)

	// ListTournaments retrieves all stored tournaments, ordered by alias.
	ListTournaments(ctx context.Context) ([]*model.Tournament, error)

	// SaveTournament inserts or updates a tournament aggregate.
	SaveTournament(ctx context.Context, tournament *model.Tournament) error

	// DeleteTournament removes a tournament by alias. Returns nil even if
	// the alias was not stored.
	DeleteTournament(ctx context.Context, alias string) error

	// RunSQLMaintenance performs database maintenance tasks like VACUUM.
	RunSQLMaintenance(ctx context.Context) error
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store implementation backed by sqlx.
// It requires a connected sqlx.DB instance and a logger.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

// Ping checks the database connection.
func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// GetTournament retrieves a tournament by alias. Returns nil, nil if not found.
func (s *sqlxStore) GetTournament(ctx context.Context, alias string) (*model.Tournament, error) {
	if alias == "" {
		return nil, fmt.Errorf("alias cannot be empty")
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var row tournamentRow
	query := `SELECT alias, tournament_id, document, created_at, updated_at
	          FROM tournaments WHERE alias = ?`

	err := s.db.GetContext(ctx, &row, query, alias)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		// Not found is expected in some cases, not an error
		s.logger.DebugContext(ctx, "No tournament found", "alias", alias)
		return nil, nil

	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "Context timeout or cancellation while fetching tournament",
			"alias", alias, "error", err)
		return nil, err

	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting tournament by alias", "alias", alias, "error", err)
		return nil, fmt.Errorf("failed to get tournament %q: %w", alias, err)
	}

	return row.tournament()
}

// ListTournaments retrieves all stored tournaments, ordered by alias.
func (s *sqlxStore) ListTournaments(ctx context.Context) ([]*model.Tournament, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var rows []tournamentRow
	query := `SELECT alias, tournament_id, document, created_at, updated_at
	          FROM tournaments ORDER BY alias ASC`

	err := s.db.SelectContext(ctx, &rows, query)

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "Context timeout or cancellation while listing tournaments", "error", err)
		return nil, err

	case err != nil:
		s.logger.ErrorContext(ctx, "Error listing tournaments", "error", err)
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}

	tournaments := make([]*model.Tournament, 0, len(rows))
	for i := range rows {
		tournament, err := rows[i].tournament()
		if err != nil {
			return nil, err
		}
		tournaments = append(tournaments, tournament)
	}

	s.logger.DebugContext(ctx, "Fetched tournaments successfully", "count", len(tournaments))
	return tournaments, nil
}

// SaveTournament inserts or updates a tournament aggregate in a transaction.
func (s *sqlxStore) SaveTournament(ctx context.Context, tournament *model.Tournament) error {
	if tournament == nil {
		return fmt.Errorf("cannot save nil tournament")
	}
	if tournament.Alias == "" {
		return fmt.Errorf("tournament must have a non-empty alias")
	}
	if tournament.ID == "" {
		return fmt.Errorf("tournament must have a non-empty ID")
	}

	row, err := newTournamentRow(tournament)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	row.CreatedAt = now
	row.UpdatedAt = now

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to begin transaction for saving tournament",
			"alias", tournament.Alias, "error", err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if tx != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				if !errors.Is(rollbackErr, sql.ErrTxDone) {
					s.logger.WarnContext(ctx, "Error rolling back transaction", "error", rollbackErr)
				}
			}
		}
	}()

	var exists bool
	err = tx.GetContext(ctx, &exists,
		`SELECT 1 FROM tournaments WHERE alias = ? LIMIT 1`, tournament.Alias)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		s.logger.ErrorContext(ctx, "Error checking if tournament exists",
			"alias", tournament.Alias, "error", err)
		return fmt.Errorf("failed to check if tournament %q exists: %w", tournament.Alias, err)
	}

	if exists {
		query := `
			UPDATE tournaments SET
				tournament_id = :tournament_id,
				document = :document,
				updated_at = :updated_at
			WHERE alias = :alias
		`
		_, err = tx.NamedExecContext(ctx, query, row)
	} else {
		query := `
			INSERT INTO tournaments (alias, tournament_id, document, created_at, updated_at)
			VALUES (:alias, :tournament_id, :document, :created_at, :updated_at)
		`
		_, err = tx.NamedExecContext(ctx, query, row)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving tournament",
			"alias", tournament.Alias, "error", err)
		return fmt.Errorf("failed to save tournament %q: %w", tournament.Alias, err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.ErrorContext(ctx, "Failed to commit transaction",
			"alias", tournament.Alias, "error", err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	// Successfully committed, set tx to nil to avoid rollback
	tx = nil

	operation := "updated"
	if !exists {
		operation = "created"
	}
	s.logger.DebugContext(ctx, "Tournament saved successfully",
		"operation", operation, "alias", tournament.Alias)

	return nil
}

// DeleteTournament removes a tournament by alias.
func (s *sqlxStore) DeleteTournament(ctx context.Context, alias string) error {
	if alias == "" {
		return fmt.Errorf("alias cannot be empty")
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM tournaments WHERE alias = ?`, alias)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error deleting tournament", "alias", alias, "error", err)
		return fmt.Errorf("failed to delete tournament %q: %w", alias, err)
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		s.logger.WarnContext(ctx, "No tournament deleted, alias not stored", "alias", alias)
	}

	s.logger.InfoContext(ctx, "Tournament deleted", "alias", alias)
	return nil
}

// RunSQLMaintenance executes a VACUUM command on the SQLite database.
func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	if ctx.Err() != nil {
		s.logger.WarnContext(ctx, "Context cancelled or timed out before starting VACUUM", "error", ctx.Err())
		return ctx.Err()
	}

	s.logger.InfoContext(ctx, "Starting database maintenance (VACUUM)...")

	// VACUUM must run outside a transaction in SQLite
	_, err := s.db.ExecContext(ctx, "VACUUM;")

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "VACUUM operation timed out or was cancelled", "error", err)
		return fmt.Errorf("database maintenance (VACUUM) timed out: %w", err)

	case err != nil:
		s.logger.ErrorContext(ctx, "Database maintenance (VACUUM) failed", "error", err)
		return fmt.Errorf("failed to execute VACUUM: %w", err)

	default:
		s.logger.InfoContext(ctx, "Database maintenance (VACUUM) completed successfully")
	}

	return nil
}
