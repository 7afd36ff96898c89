package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourneybot/tourneybot/internal/model"
	"github.com/tourneybot/tourneybot/internal/service"
	"github.com/tourneybot/tourneybot/internal/toornament"
)

func newMatchService(client toornament.Client) *service.MatchService {
	return service.NewMatchService(client, testLogger())
}

func TestCreateMatchUnbound(t *testing.T) {
	t.Parallel()

	svc := newMatchService(&fakeClient{})
	tournament := &model.Tournament{ID: "100", Alias: "summer"}

	match, err := svc.Create(context.Background(), tournament, "", "open-lobby", "admin#0001", "hunter2")
	require.NoError(t, err)

	assert.Empty(t, match.ID)
	assert.Equal(t, "open-lobby", match.Name)
	assert.Equal(t, "hunter2", match.Password)
	assert.Equal(t, model.MatchPending, match.Status)
	assert.Equal(t, "admin#0001", match.CreatedBy)
	assert.True(t, match.HasRegistered("any-team"))
	require.Len(t, tournament.Matches, 1)
}

func TestCreateMatchBound(t *testing.T) {
	t.Parallel()

	client := &fakeClient{
		match: &toornament.MatchInfo{
			ID:          "m-1",
			PublicNotes: "Group A",
			Opponents: []toornament.Opponent{
				{Participant: toornament.OpponentParticipant{ID: "t-1", Name: "Alpha"}},
				{Participant: toornament.OpponentParticipant{ID: "t-2", Name: "Bravo"}},
			},
		},
	}
	svc := newMatchService(client)
	tournament := &model.Tournament{ID: "100", Alias: "summer"}

	match, err := svc.Create(context.Background(), tournament, "m-1", "group-a", "admin#0001", "")
	require.NoError(t, err)

	assert.Equal(t, "Group A", match.GroupName)
	assert.Equal(t, []string{"t-1", "t-2"}, match.TeamsRegistered)
	assert.True(t, match.HasRegistered("t-1"))
	assert.False(t, match.HasRegistered("t-3"))
}

func TestCreateMatchErrors(t *testing.T) {
	t.Parallel()

	svc := newMatchService(&fakeClient{matchErr: toornament.ErrNotFound})
	tournament := &model.Tournament{
		ID:      "100",
		Matches: []*model.Match{{Name: "existing"}},
	}

	_, err := svc.Create(context.Background(), tournament, "", "existing", "admin#0001", "")
	assert.ErrorIs(t, err, service.ErrMatchExists)

	_, err = svc.Create(context.Background(), tournament, "m-404", "group-x", "admin#0001", "")
	assert.ErrorIs(t, err, service.ErrMatchNotFound)
}

func TestJoinMatch(t *testing.T) {
	t.Parallel()

	svc := newMatchService(&fakeClient{})
	team := &model.Team{ID: "t-1", Name: "Alpha"}
	tournament := &model.Tournament{
		Teams: []*model.Team{team},
		Matches: []*model.Match{
			{Name: "scrim-1", Status: model.MatchPending},
			{ID: "m-1", Name: "group-a", Status: model.MatchPending, TeamsRegistered: []string{"t-9"}},
			{Name: "running", Status: model.MatchOngoing},
		},
	}

	_, err := svc.Join(tournament, "ghost", team)
	assert.ErrorIs(t, err, service.ErrMatchNotFound)

	_, err = svc.Join(tournament, "group-a", team)
	assert.ErrorIs(t, err, service.ErrTeamNotRegistered)

	_, err = svc.Join(tournament, "running", team)
	assert.ErrorIs(t, err, service.ErrWrongMatchStatus)

	match, err := svc.Join(tournament, "scrim-1", team)
	require.NoError(t, err)
	assert.True(t, match.HasJoined("t-1"))

	_, err = svc.Join(tournament, "scrim-1", team)
	assert.ErrorIs(t, err, service.ErrAlreadyJoined)
}

func TestLeaveMatch(t *testing.T) {
	t.Parallel()

	svc := newMatchService(&fakeClient{})
	team := &model.Team{ID: "t-1", Name: "Alpha"}
	tournament := &model.Tournament{
		Teams: []*model.Team{team},
		Matches: []*model.Match{
			{Name: "scrim-1", Status: model.MatchPending, TeamsJoined: []string{"t-1"}},
		},
	}

	_, err := svc.Leave(tournament, "scrim-1", &model.Team{ID: "t-2", Name: "Bravo"})
	assert.ErrorIs(t, err, service.ErrNotJoined)

	match, err := svc.Leave(tournament, "scrim-1", team)
	require.NoError(t, err)
	assert.False(t, match.HasJoined("t-1"))

	match.TeamsJoined = []string{"t-1"}
	match.Status = model.MatchOngoing
	_, err = svc.Leave(tournament, "scrim-1", team)
	assert.ErrorIs(t, err, service.ErrWrongMatchStatus)
}

func TestStartMatch(t *testing.T) {
	t.Parallel()

	svc := newMatchService(&fakeClient{})
	tournament := &model.Tournament{
		Matches: []*model.Match{{Name: "scrim-1", Status: model.MatchPending}},
	}

	match, err := svc.Start(tournament, "scrim-1")
	require.NoError(t, err)
	assert.Equal(t, model.MatchOngoing, match.Status)

	_, err = svc.Start(tournament, "scrim-1")
	assert.ErrorIs(t, err, service.ErrWrongMatchStatus)
}

func TestEndMatch(t *testing.T) {
	t.Parallel()

	svc := newMatchService(&fakeClient{})
	tournament := &model.Tournament{
		Matches: []*model.Match{
			{Name: "running", Status: model.MatchOngoing},
			{Name: "fresh", Status: model.MatchPending},
		},
	}

	match, err := svc.End(tournament, "running", false)
	require.NoError(t, err)
	assert.Equal(t, model.MatchCompleted, match.Status)

	_, err = svc.End(tournament, "fresh", false)
	assert.ErrorIs(t, err, service.ErrWrongMatchStatus)

	match, err = svc.End(tournament, "fresh", true)
	require.NoError(t, err)
	assert.Equal(t, model.MatchCompleted, match.Status)
}

func TestSetMatchStatus(t *testing.T) {
	t.Parallel()

	svc := newMatchService(&fakeClient{})
	tournament := &model.Tournament{
		Matches: []*model.Match{{Name: "scrim-1", Status: model.MatchCompleted}},
	}

	match, err := svc.SetStatus(tournament, "scrim-1", "pending")
	require.NoError(t, err)
	assert.Equal(t, model.MatchPending, match.Status)

	_, err = svc.SetStatus(tournament, "scrim-1", "PAUSED")
	assert.ErrorIs(t, err, service.ErrWrongMatchStatus)
}

func TestRemoveMatch(t *testing.T) {
	t.Parallel()

	svc := newMatchService(&fakeClient{})
	tournament := &model.Tournament{
		Matches: []*model.Match{{Name: "scrim-1"}, {Name: "scrim-2"}},
	}

	match, err := svc.Remove(tournament, "scrim-1")
	require.NoError(t, err)
	assert.Equal(t, "scrim-1", match.Name)
	assert.Len(t, tournament.Matches, 1)

	_, err = svc.Remove(tournament, "scrim-1")
	assert.ErrorIs(t, err, service.ErrMatchNotFound)
}
