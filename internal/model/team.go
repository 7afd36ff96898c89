package model

import (
	"time"

	"github.com/google/uuid"
)

// Player is a member of a team's lineup as registered on Toornament.
type Player struct {
	Name         string         `json:"name"`
	Email        string         `json:"email,omitempty"`
	CustomFields map[string]any `json:"custom_fields,omitempty"`
}

// Team is a tournament participant. Captain holds the Discord user tag of
// the linked captain; it is empty while the team is unlinked.
type Team struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Captain      string         `json:"captain,omitempty"`
	CheckedIn    *bool          `json:"checked_in,omitempty"`
	CustomFields map[string]any `json:"custom_fields,omitempty"`
	Lineup       []Player       `json:"lineup,omitempty"`

	ScoreSubmissions []*ScoreSubmission `json:"score_submissions,omitempty"`
}

// FindSubmissionByMatch returns the team's score submission for the named
// match, or nil if none was submitted.
func (t *Team) FindSubmissionByMatch(matchName string) *ScoreSubmission {
	for _, s := range t.ScoreSubmissions {
		if s.MatchName == matchName {
			return s
		}
	}
	return nil
}

// ScoreSubmission is a captain-reported result for one match: final
// position, eliminations, and screenshot evidence.
type ScoreSubmission struct {
	ID             string    `json:"id"`
	MatchName      string    `json:"match_name"`
	TeamName       string    `json:"team_name"`
	Position       int       `json:"position"`
	Eliminations   int       `json:"eliminations"`
	ScreenshotURLs []string  `json:"screenshot_urls,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Touch bumps the submission timestamp after an update.
func (s *ScoreSubmission) Touch() {
	s.UpdatedAt = time.Now().UTC()
}

// NewScoreSubmission builds a submission with a fresh ID and timestamp.
func NewScoreSubmission(matchName, teamName string, position, eliminations int, screenshotURLs []string) *ScoreSubmission {
	return &ScoreSubmission{
		ID:             uuid.NewString(),
		MatchName:      matchName,
		TeamName:       teamName,
		Position:       position,
		Eliminations:   eliminations,
		ScreenshotURLs: screenshotURLs,
		UpdatedAt:      time.Now().UTC(),
	}
}
