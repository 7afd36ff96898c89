package discord

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/tourneybot/tourneybot/internal/model"
)

// WriteMatchScoresCSV writes a match's score submissions as CSV, one row
// per team.
func WriteMatchScoresCSV(w io.Writer, scores []*model.ScoreSubmission) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Team Name", "Updated at", "Position", "Eliminations", "Screenshots"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, score := range scores {
		row := []string{
			score.TeamName,
			score.UpdatedAt.Format("01/02/2006 15:04:05"),
			fmt.Sprintf("%d", score.Position),
			fmt.Sprintf("%d", score.Eliminations),
			strings.Join(score.ScreenshotURLs, " "),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row for %q: %w", score.TeamName, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
