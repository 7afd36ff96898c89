// Package service implements the tournament management rules: registering
// tournaments from Toornament, linking captains, running matches and
// collecting score submissions. Services mutate the in-memory aggregate;
// persistence is the caller's concern.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/tourneybot/tourneybot/internal/model"
	"github.com/tourneybot/tourneybot/internal/toornament"
)

// TournamentService manages tournament aggregates and their teams.
type TournamentService struct {
	client toornament.Client
	logger *slog.Logger
}

// NewTournamentService creates a tournament service backed by the given
// Toornament client.
func NewTournamentService(client toornament.Client, logger *slog.Logger) *TournamentService {
	return &TournamentService{
		client: client,
		logger: logger.With("component", "tournament_service"),
	}
}

// Create registers a new tournament aggregate from its Toornament ID,
// loading its metadata and current participant list.
func (s *TournamentService) Create(ctx context.Context, tournamentID, alias string) (*model.Tournament, error) {
	info, err := s.client.Tournament(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, toornament.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrTournamentNotFound, tournamentID)
		}
		return nil, fmt.Errorf("fetching tournament %s: %w", tournamentID, err)
	}

	tournament := &model.Tournament{
		ID:    tournamentID,
		Alias: alias,
		URL:   fmt.Sprintf("https://www.toornament.com/en_US/tournaments/%s/information", tournamentID),
		Info:  *info,
	}

	participants, err := s.client.Participants(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("fetching participants of %s: %w", tournamentID, err)
	}
	for _, p := range participants {
		tournament.Teams = append(tournament.Teams, p.Team())
	}

	s.logger.Info("tournament registered",
		"alias", alias,
		"tournament_id", tournamentID,
		"teams", len(tournament.Teams))

	return tournament, nil
}

// Refresh re-fetches the tournament metadata and participant list from
// Toornament. Known teams keep their captain link and score submissions;
// their name, lineup and check-in state are overwritten. New participants
// are appended.
func (s *TournamentService) Refresh(ctx context.Context, tournament *model.Tournament) error {
	info, err := s.client.Tournament(ctx, tournament.ID)
	if err != nil {
		if errors.Is(err, toornament.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrTournamentNotFound, tournament.ID)
		}
		return fmt.Errorf("fetching tournament %s: %w", tournament.ID, err)
	}
	tournament.Info = *info

	participants, err := s.client.Participants(ctx, tournament.ID)
	if err != nil {
		return fmt.Errorf("fetching participants of %s: %w", tournament.ID, err)
	}
	for _, p := range participants {
		if team := tournament.FindTeamByID(p.ID); team != nil {
			team.Name = p.Name
			team.Lineup = p.Lineup
			team.CheckedIn = p.CheckedIn
		} else {
			tournament.Teams = append(tournament.Teams, p.Team())
		}
	}

	s.logger.Info("tournament refreshed",
		"alias", tournament.Alias,
		"teams", len(tournament.Teams))

	return nil
}

// RefreshDiff compares the stored team list against the current Toornament
// participant list and returns the IDs that would be added and the IDs that
// no longer exist upstream. The aggregate is not modified.
func (s *TournamentService) RefreshDiff(ctx context.Context, tournament *model.Tournament) (added, removed []string, err error) {
	participants, err := s.client.Participants(ctx, tournament.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching participants of %s: %w", tournament.ID, err)
	}

	upstream := make(map[string]bool, len(participants))
	for _, p := range participants {
		upstream[p.ID] = true
		if tournament.FindTeamByID(p.ID) == nil {
			added = append(added, p.ID)
		}
	}
	for _, team := range tournament.Teams {
		if !upstream[team.ID] {
			removed = append(removed, team.ID)
		}
	}
	return added, removed, nil
}

// ResetTeam unlinks the team's captain and restores its lineup, custom
// fields and check-in state from Toornament.
func (s *TournamentService) ResetTeam(ctx context.Context, tournament *model.Tournament, teamID string) (*model.Team, error) {
	team := tournament.FindTeamByID(teamID)
	if team == nil {
		return nil, fmt.Errorf("%w: %s", ErrTeamNotFound, teamID)
	}

	participant, err := s.client.Participant(ctx, tournament.ID, team.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: team %s in %s: %v", ErrParticipantFetch, teamID, tournament.Alias, err)
	}

	team.Captain = ""
	team.Lineup = participant.Lineup
	team.CustomFields = participant.CustomFields
	team.CheckedIn = participant.CheckedIn

	return team, nil
}

// LinkCaptain links a Discord user as the captain of the named team. A team
// keeps at most one captain.
func (s *TournamentService) LinkCaptain(tournament *model.Tournament, teamName, captain string) (*model.Team, error) {
	team := tournament.FindTeamByName(teamName)
	if team == nil {
		return nil, fmt.Errorf("%w: %s", ErrTeamNotFound, teamName)
	}
	if team.Captain != "" {
		return nil, fmt.Errorf("%w: %s is linked to %s", ErrCaptainTaken, teamName, team.Captain)
	}
	team.Captain = captain
	return team, nil
}

// UnlinkCaptain removes the captain link of the caller's team. The team name
// must match the linked team, as a confirmation step.
func (s *TournamentService) UnlinkCaptain(tournament *model.Tournament, captain, teamName string) (*model.Team, error) {
	team := tournament.FindTeamByCaptain(captain)
	if team == nil {
		return nil, ErrNotTeamCaptain
	}
	if team.Name != teamName {
		return nil, fmt.Errorf("%w: linked team is %q, not %q", ErrTeamNotFound, team.Name, teamName)
	}
	team.Captain = ""
	return team, nil
}

// CaptainTeam returns the team the Discord user is the captain of.
func (s *TournamentService) CaptainTeam(tournament *model.Tournament, captain string) (*model.Team, error) {
	team := tournament.FindTeamByCaptain(captain)
	if team == nil {
		return nil, ErrNotTeamCaptain
	}
	return team, nil
}

// FindCaptainTeam searches every tournament for a team linked to the given
// Discord user. It returns nils when the user is not a captain anywhere.
func (s *TournamentService) FindCaptainTeam(tournaments []*model.Tournament, captain string) (*model.Tournament, *model.Team) {
	for _, tournament := range tournaments {
		if team := tournament.FindTeamByCaptain(captain); team != nil {
			return tournament, team
		}
	}
	return nil, nil
}

// RemoveTeam deletes a team from the tournament.
func (s *TournamentService) RemoveTeam(tournament *model.Tournament, teamID string) (*model.Team, error) {
	team := tournament.FindTeamByID(teamID)
	if team == nil {
		return nil, fmt.Errorf("%w: %s", ErrTeamNotFound, teamID)
	}
	tournament.Teams = slices.DeleteFunc(tournament.Teams, func(t *model.Team) bool {
		return t.ID == teamID
	})
	return team, nil
}

// AddChannel links a Discord channel to the tournament. Tournaments with
// linked channels only accept commands from those channels.
func (s *TournamentService) AddChannel(tournament *model.Tournament, channel string) error {
	if slices.Contains(tournament.Channels, channel) {
		return fmt.Errorf("%w: %s", ErrChannelExists, channel)
	}
	tournament.Channels = append(tournament.Channels, channel)
	return nil
}

// RemoveChannel unlinks a Discord channel from the tournament.
func (s *TournamentService) RemoveChannel(tournament *model.Tournament, channel string) error {
	if !slices.Contains(tournament.Channels, channel) {
		return fmt.Errorf("%w: %s", ErrChannelNotFound, channel)
	}
	tournament.Channels = slices.DeleteFunc(tournament.Channels, func(c string) bool {
		return c == channel
	})
	return nil
}

// AddAdminRole grants a Discord role administrator rights on the tournament.
func (s *TournamentService) AddAdminRole(tournament *model.Tournament, role string) error {
	if slices.Contains(tournament.AdministratorRoles, role) {
		return fmt.Errorf("%w: %s", ErrRoleExists, role)
	}
	tournament.AdministratorRoles = append(tournament.AdministratorRoles, role)
	return nil
}

// RemoveAdminRole revokes a Discord role's administrator rights.
func (s *TournamentService) RemoveAdminRole(tournament *model.Tournament, role string) error {
	if !slices.Contains(tournament.AdministratorRoles, role) {
		return fmt.Errorf("%w: %s", ErrRoleNotFound, role)
	}
	tournament.AdministratorRoles = slices.DeleteFunc(tournament.AdministratorRoles, func(r string) bool {
		return r == role
	})
	return nil
}

// SetCaptainRole sets the Discord role granted to linked captains.
func (s *TournamentService) SetCaptainRole(tournament *model.Tournament, role string) {
	tournament.CaptainRole = role
}

// RemoveCaptainRole clears the tournament's captain role.
func (s *TournamentService) RemoveCaptainRole(tournament *model.Tournament) {
	tournament.CaptainRole = ""
}

// SubmitScore records a team's result for a match. Submissions are rejected
// when the team is not registered in the match group, when the match is
// completed, or when the team already submitted for this match.
func (s *TournamentService) SubmitScore(tournament *model.Tournament, matchName, teamID string, position, eliminations int, screenshotURLs []string) (*model.ScoreSubmission, error) {
	match := tournament.FindMatchByName(matchName)
	if match == nil {
		return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, matchName)
	}
	team := tournament.FindTeamByID(teamID)
	if team == nil {
		return nil, fmt.Errorf("%w: %s", ErrTeamNotFound, teamID)
	}

	if !match.HasRegistered(team.ID) {
		return nil, fmt.Errorf("%w: %s", ErrTeamNotRegistered, match.GroupName)
	}
	if match.Status == model.MatchCompleted {
		return nil, fmt.Errorf("%w: %s", ErrSubmissionsLocked, match.Name)
	}
	if team.FindSubmissionByMatch(match.Name) != nil {
		return nil, fmt.Errorf("%w: %s", ErrScoreExists, match.Name)
	}

	score := model.NewScoreSubmission(match.Name, team.Name, position, eliminations, screenshotURLs)
	team.ScoreSubmissions = append(team.ScoreSubmissions, score)

	return score, nil
}

// AddScreenshot appends screenshot evidence to an existing submission.
func (s *TournamentService) AddScreenshot(tournament *model.Tournament, matchName, teamID string, urls []string) (*model.ScoreSubmission, error) {
	match := tournament.FindMatchByName(matchName)
	if match == nil {
		return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, matchName)
	}
	team := tournament.FindTeamByID(teamID)
	if team == nil {
		return nil, fmt.Errorf("%w: %s", ErrTeamNotFound, teamID)
	}

	if match.Status == model.MatchCompleted {
		return nil, fmt.Errorf("%w: %s", ErrSubmissionsLocked, match.Name)
	}
	score := team.FindSubmissionByMatch(match.Name)
	if score == nil {
		return nil, fmt.Errorf("%w: %s", ErrScoreNotFound, match.Name)
	}

	score.ScreenshotURLs = append(score.ScreenshotURLs, urls...)
	score.Touch()

	return score, nil
}

// RemoveScore deletes a team's submission for a match. Locked once the
// match is completed.
func (s *TournamentService) RemoveScore(tournament *model.Tournament, matchName string, team *model.Team) error {
	match := tournament.FindMatchByName(matchName)
	if match == nil {
		return fmt.Errorf("%w: %s", ErrMatchNotFound, matchName)
	}
	if match.Status == model.MatchCompleted {
		return fmt.Errorf("%w: %s", ErrSubmissionsLocked, match.Name)
	}
	score := team.FindSubmissionByMatch(matchName)
	if score == nil {
		return fmt.Errorf("%w: %s", ErrScoreNotFound, matchName)
	}
	team.ScoreSubmissions = slices.DeleteFunc(team.ScoreSubmissions, func(s *model.ScoreSubmission) bool {
		return s.ID == score.ID
	})
	return nil
}
