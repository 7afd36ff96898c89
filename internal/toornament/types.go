package toornament

import "github.com/tourneybot/tourneybot/internal/model"

// Participant is a tournament participant as returned by the Toornament
// participants endpoints.
type Participant struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	CheckedIn    *bool          `json:"checked_in,omitempty"`
	CustomFields map[string]any `json:"custom_fields,omitempty"`
	Lineup       []model.Player `json:"lineup,omitempty"`
}

// Team converts the API participant into the bot's team model.
func (p Participant) Team() *model.Team {
	return &model.Team{
		ID:           p.ID,
		Name:         p.Name,
		CheckedIn:    p.CheckedIn,
		CustomFields: p.CustomFields,
		Lineup:       p.Lineup,
	}
}

// MatchInfo is a Toornament match with its opponents. PublicNotes carries
// the group name organizers set on the match.
type MatchInfo struct {
	ID          string     `json:"id"`
	Status      string     `json:"status,omitempty"`
	PublicNotes string     `json:"public_notes,omitempty"`
	Opponents   []Opponent `json:"opponents,omitempty"`
}

// Opponent is one side of a Toornament match.
type Opponent struct {
	Participant OpponentParticipant `json:"participant"`
}

// OpponentParticipant identifies the participant on one side of a match.
type OpponentParticipant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RegisteredTeamIDs returns the participant IDs of the match opponents.
func (m MatchInfo) RegisteredTeamIDs() []string {
	ids := make([]string, 0, len(m.Opponents))
	for _, o := range m.Opponents {
		ids = append(ids, o.Participant.ID)
	}
	return ids
}
