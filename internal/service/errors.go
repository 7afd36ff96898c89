package service

import "errors"

// Sentinel errors for every rule the services enforce. Handlers match
// these with errors.Is to turn them into user-facing replies.
var (
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrMatchExists        = errors.New("match name already exists")
	ErrNotTeamCaptain     = errors.New("not a team captain")
	ErrCaptainTaken       = errors.New("team already has a linked captain")
	ErrTeamNotRegistered  = errors.New("team is not registered in this match group")
	ErrAlreadyJoined      = errors.New("team has already joined this match")
	ErrNotJoined          = errors.New("team has not joined this match")
	ErrWrongMatchStatus   = errors.New("operation not allowed for current match status")
	ErrSubmissionsLocked  = errors.New("match is completed, submissions are locked")
	ErrScoreExists        = errors.New("score already submitted for this match")
	ErrScoreNotFound      = errors.New("no score submission found for this match")
	ErrChannelExists      = errors.New("channel is already linked to this tournament")
	ErrChannelNotFound    = errors.New("channel is not linked to this tournament")
	ErrRoleExists         = errors.New("role is already an administrator role of this tournament")
	ErrRoleNotFound       = errors.New("role is not an administrator role of this tournament")
	ErrParticipantFetch   = errors.New("could not fetch participant data from Toornament")
)
