package model

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"
)

// MatchStatus represents the lifecycle state of a match.
type MatchStatus int

const (
	MatchPending MatchStatus = iota + 1
	MatchOngoing
	MatchCompleted
)

var statusNames = map[MatchStatus]string{
	MatchPending:   "PENDING",
	MatchOngoing:   "ONGOING",
	MatchCompleted: "COMPLETED",
}

func (s MatchStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("MatchStatus(%d)", int(s))
}

// ParseMatchStatus converts a case-insensitive status name into a MatchStatus.
func ParseMatchStatus(name string) (MatchStatus, error) {
	for status, statusName := range statusNames {
		if statusName == strings.ToUpper(name) {
			return status, nil
		}
	}
	return 0, fmt.Errorf("unknown match status %q (choices: %s)", name, strings.Join(MatchStatusNames(), ", "))
}

// MatchStatusNames returns the valid status names in lifecycle order.
func MatchStatusNames() []string {
	return []string{MatchPending.String(), MatchOngoing.String(), MatchCompleted.String()}
}

// MarshalJSON stores the status by name so the persisted document stays readable.
func (s MatchStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *MatchStatus) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	status, err := ParseMatchStatus(name)
	if err != nil {
		return err
	}
	*s = status
	return nil
}

// Match is a custom game within a tournament. It may be bound to a
// Toornament match (ID non-empty), in which case only the teams registered
// on that match are allowed to join and submit scores.
type Match struct {
	ID        string      `json:"id,omitempty"`
	Name      string      `json:"name"`
	Password  string      `json:"password,omitempty"`
	GroupName string      `json:"group_name,omitempty"`
	Status    MatchStatus `json:"status"`
	CreatedBy string      `json:"created_by"`
	CreatedAt time.Time   `json:"created_at"`

	TeamsRegistered []string `json:"teams_registered,omitempty"`
	TeamsJoined     []string `json:"teams_joined,omitempty"`
}

// HasRegistered reports whether the team is part of this match's group on
// Toornament. Matches without a Toornament binding accept every team.
func (m *Match) HasRegistered(teamID string) bool {
	if m.ID == "" {
		return true
	}
	return slices.Contains(m.TeamsRegistered, teamID)
}

// HasJoined reports whether the team already joined this match.
func (m *Match) HasJoined(teamID string) bool {
	return slices.Contains(m.TeamsJoined, teamID)
}
