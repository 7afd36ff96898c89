package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/tourneybot/tourneybot/internal/model"
	"github.com/tourneybot/tourneybot/internal/toornament"
)

// MatchService manages custom matches within a tournament.
type MatchService struct {
	client toornament.Client
	logger *slog.Logger
}

// NewMatchService creates a match service backed by the given Toornament
// client.
func NewMatchService(client toornament.Client, logger *slog.Logger) *MatchService {
	return &MatchService{
		client: client,
		logger: logger.With("component", "match_service"),
	}
}

// Create adds a new match to the tournament. When matchID is non-empty the
// match is bound to a Toornament match: its group name is taken from the
// organizer's public notes and only the registered opponents may join.
func (s *MatchService) Create(ctx context.Context, tournament *model.Tournament, matchID, matchName, createdBy, password string) (*model.Match, error) {
	if tournament.FindMatchByName(matchName) != nil {
		return nil, fmt.Errorf("%w: %s", ErrMatchExists, matchName)
	}

	match := &model.Match{
		ID:        matchID,
		Name:      matchName,
		Password:  password,
		Status:    model.MatchPending,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
	}

	if matchID != "" {
		info, err := s.client.Match(ctx, tournament.ID, matchID)
		if err != nil {
			if errors.Is(err, toornament.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
			}
			return nil, fmt.Errorf("fetching match %s: %w", matchID, err)
		}
		match.GroupName = info.PublicNotes
		match.TeamsRegistered = info.RegisteredTeamIDs()
	}

	tournament.Matches = append(tournament.Matches, match)

	s.logger.Info("match created",
		"tournament", tournament.Alias,
		"match", matchName,
		"bound", matchID != "")

	return match, nil
}

// Join marks a team as ready for a pending match.
func (s *MatchService) Join(tournament *model.Tournament, matchName string, team *model.Team) (*model.Match, error) {
	match := tournament.FindMatchByName(matchName)
	if match == nil {
		return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, matchName)
	}
	if !match.HasRegistered(team.ID) {
		return nil, fmt.Errorf("%w: %s", ErrTeamNotRegistered, match.GroupName)
	}
	if match.HasJoined(team.ID) {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyJoined, team.Name)
	}
	if match.Status != model.MatchPending {
		return nil, fmt.Errorf("%w: can't join a %s match", ErrWrongMatchStatus, match.Status)
	}

	match.TeamsJoined = append(match.TeamsJoined, team.ID)
	return match, nil
}

// Leave withdraws a team from a match it joined. Only allowed while the
// match is still pending.
func (s *MatchService) Leave(tournament *model.Tournament, matchName string, team *model.Team) (*model.Match, error) {
	match := tournament.FindMatchByName(matchName)
	if match == nil {
		return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, matchName)
	}
	if !match.HasJoined(team.ID) {
		return nil, fmt.Errorf("%w: %s", ErrNotJoined, team.Name)
	}
	if match.Status != model.MatchPending {
		return nil, fmt.Errorf("%w: can't leave a %s match", ErrWrongMatchStatus, match.Status)
	}

	match.TeamsJoined = slices.DeleteFunc(match.TeamsJoined, func(id string) bool {
		return id == team.ID
	})
	return match, nil
}

// Start moves a pending match to ONGOING.
func (s *MatchService) Start(tournament *model.Tournament, matchName string) (*model.Match, error) {
	match := tournament.FindMatchByName(matchName)
	if match == nil {
		return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, matchName)
	}
	if match.Status != model.MatchPending {
		return nil, fmt.Errorf("%w: can't start a %s match", ErrWrongMatchStatus, match.Status)
	}
	match.Status = model.MatchOngoing
	return match, nil
}

// End moves an ongoing match to COMPLETED, locking score submissions.
// With force set, the transition is allowed from any status.
func (s *MatchService) End(tournament *model.Tournament, matchName string, force bool) (*model.Match, error) {
	match := tournament.FindMatchByName(matchName)
	if match == nil {
		return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, matchName)
	}
	if match.Status != model.MatchOngoing && !force {
		return nil, fmt.Errorf("%w: can't end a %s match", ErrWrongMatchStatus, match.Status)
	}
	match.Status = model.MatchCompleted
	return match, nil
}

// SetStatus forces a match into the named status.
func (s *MatchService) SetStatus(tournament *model.Tournament, matchName, statusName string) (*model.Match, error) {
	match := tournament.FindMatchByName(matchName)
	if match == nil {
		return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, matchName)
	}
	status, err := model.ParseMatchStatus(statusName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWrongMatchStatus, err)
	}
	match.Status = status
	return match, nil
}

// Remove deletes a match from the tournament.
func (s *MatchService) Remove(tournament *model.Tournament, matchName string) (*model.Match, error) {
	match := tournament.FindMatchByName(matchName)
	if match == nil {
		return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, matchName)
	}
	tournament.Matches = slices.DeleteFunc(tournament.Matches, func(m *model.Match) bool {
		return m.Name == matchName
	})
	return match, nil
}
