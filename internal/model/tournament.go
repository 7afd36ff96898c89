// Package model defines the tournament aggregate managed by the bot:
// tournaments registered by alias, their Toornament metadata, participant
// teams with linked Discord captains, custom matches, and score submissions.
package model

// TournamentInfo mirrors the tournament metadata returned by the
// Toornament organizer API.
type TournamentInfo struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Discipline         string   `json:"discipline"`
	Status             string   `json:"status"`
	ScheduledDateStart string   `json:"scheduled_date_start,omitempty"`
	ScheduledDateEnd   string   `json:"scheduled_date_end,omitempty"`
	Size               int      `json:"size,omitempty"`
	TeamMinSize        int      `json:"team_min_size,omitempty"`
	TeamMaxSize        int      `json:"team_max_size,omitempty"`
	Country            string   `json:"country,omitempty"`
	Location           string   `json:"location,omitempty"`
	Platforms          []string `json:"platforms,omitempty"`
	Rule               string   `json:"rule,omitempty"`
	Prize              string   `json:"prize,omitempty"`
}

// Tournament is the aggregate root: one Toornament tournament registered
// under a short alias, plus everything the bot tracks for it on Discord.
type Tournament struct {
	ID    string         `json:"id"`
	Alias string         `json:"alias"`
	URL   string         `json:"url,omitempty"`
	Info  TournamentInfo `json:"info"`

	AdministratorRoles []string `json:"administrator_roles,omitempty"`
	CaptainRole        string   `json:"captain_role,omitempty"`
	Channels           []string `json:"channels,omitempty"`

	Teams   []*Team  `json:"teams,omitempty"`
	Matches []*Match `json:"matches,omitempty"`
}

// FindMatchByName returns the match with the given name, or nil.
func (t *Tournament) FindMatchByName(name string) *Match {
	for _, m := range t.Matches {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// FindTeamByID returns the team with the given Toornament participant ID, or nil.
func (t *Tournament) FindTeamByID(id string) *Team {
	for _, team := range t.Teams {
		if team.ID == id {
			return team
		}
	}
	return nil
}

// FindTeamByName returns the team with the given name, or nil.
func (t *Tournament) FindTeamByName(name string) *Team {
	for _, team := range t.Teams {
		if team.Name == name {
			return team
		}
	}
	return nil
}

// FindTeamByCaptain returns the team linked to the given Discord user, or nil.
func (t *Tournament) FindTeamByCaptain(captain string) *Team {
	if captain == "" {
		return nil
	}
	for _, team := range t.Teams {
		if team.Captain == captain {
			return team
		}
	}
	return nil
}

// LinkedTeamCount counts teams that have a linked captain.
func (t *Tournament) LinkedTeamCount() int {
	count := 0
	for _, team := range t.Teams {
		if team.Captain != "" {
			count++
		}
	}
	return count
}

// MatchScores collects every team's submission for the named match.
func (t *Tournament) MatchScores(matchName string) []*ScoreSubmission {
	var scores []*ScoreSubmission
	for _, team := range t.Teams {
		if s := team.FindSubmissionByMatch(matchName); s != nil {
			scores = append(scores, s)
		}
	}
	return scores
}
