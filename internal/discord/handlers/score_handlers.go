package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tourneybot/tourneybot/internal/discord"
	"github.com/tourneybot/tourneybot/internal/model"
	"github.com/tourneybot/tourneybot/internal/service"
)

// scoresPerCard bounds the fields per embed when listing submissions.
const scoresPerCard = 25

// NewSubmitHandler records a score submission. The command must be sent in
// private with a screenshot attached:
// `!submit [match_name] position [number] eliminations [number]`.
func NewSubmitHandler(deps HandlerDeps) discord.HandlerFunc {
	return func(ctx context.Context, ev *discord.Event) {
		if len(ev.Message.Attachments) == 0 {
			ev.Reply("A screenshot of your match result must be attached to your submission.")
			return
		}
		if len(ev.Args) != 5 || !strings.EqualFold(ev.Args[1], "position") || !strings.EqualFold(ev.Args[3], "eliminations") {
			ev.Reply("Looks like you're trying to submit your score!\n\n" +
				"Your screenshot must be followed with the following information: " +
				"`!submit [match_name] position [number] eliminations [number]`")
			return
		}
		matchName := ev.Args[0]

		position, errPos := strconv.Atoi(ev.Args[2])
		eliminations, errElim := strconv.Atoi(ev.Args[4])
		if errPos != nil || errElim != nil {
			ev.Reply("Invalid entry for position or eliminations. A number was expected.")
			return
		}

		defer deps.lockStore()()

		tournament, team := deps.captainTeam(ctx, ev)
		if team == nil {
			ev.Reply("You are not the captain of a team.")
			return
		}

		_, err := deps.Tournaments.SubmitScore(tournament, matchName, team.ID, position, eliminations, ev.AttachmentURLs())
		if err != nil {
			replyScoreError(ev, tournament, matchName, err)
			return
		}

		if !deps.saveTournament(ctx, ev, tournament) {
			return
		}
		ev.Reply("Score successfully added! Type `!show scores` to see your score submissions history.")
	}
}

// NewAddScreenshotHandler appends screenshots to a previous submission:
// `!add screenshot [match_name]` sent in private with attachments.
func NewAddScreenshotHandler(deps HandlerDeps) discord.HandlerFunc {
	return func(ctx context.Context, ev *discord.Event) {
		if len(ev.Message.Attachments) == 0 {
			ev.Reply("A screenshot must be attached to this command.")
			return
		}
		if len(ev.Args) != 1 {
			ev.Reply("Invalid command format. Use `!add screenshot [match_name]`")
			return
		}
		matchName := ev.Args[0]

		defer deps.lockStore()()

		tournament, team := deps.captainTeam(ctx, ev)
		if team == nil {
			ev.Reply("You are not the captain of a team.")
			return
		}

		_, err := deps.Tournaments.AddScreenshot(tournament, matchName, team.ID, ev.AttachmentURLs())
		if err != nil {
			replyScoreError(ev, tournament, matchName, err)
			return
		}

		if !deps.saveTournament(ctx, ev, tournament) {
			return
		}
		ev.Reply("Score successfully updated! Type `!show scores` to see your score submissions history.")
	}
}

// NewRemoveScoreHandler deletes the sender's submission for a match.
func NewRemoveScoreHandler(deps HandlerDeps) discord.HandlerFunc {
	return func(ctx context.Context, ev *discord.Event) {
		if len(ev.Args) != 1 {
			ev.Reply("Usage: `!remove score [match_name]`")
			return
		}
		matchName := ev.Args[0]
		defer deps.lockStore()()

		tournament, team := deps.captainTeam(ctx, ev)
		if team == nil {
			ev.Reply("You are not a team captain.")
			return
		}

		if err := deps.Tournaments.RemoveScore(tournament, matchName, team); err != nil {
			switch {
			case errors.Is(err, service.ErrMatchNotFound):
				ev.Reply(fmt.Sprintf("Match `%s` not found in `%s`", matchName, tournament.Alias))
			case errors.Is(err, service.ErrSubmissionsLocked):
				ev.Reply(fmt.Sprintf("Can't delete score for match `%s`. Match status is set to COMPLETED.", matchName))
			default:
				ev.Reply(fmt.Sprintf("No score found for the match `%s`", matchName))
			}
			return
		}

		if !deps.saveTournament(ctx, ev, tournament) {
			return
		}
		ev.Reply(fmt.Sprintf("Score for match `%s` successfully deleted.", matchName))
	}
}

// NewShowScoresHandler lists the sender's submission history.
func NewShowScoresHandler(deps HandlerDeps) discord.HandlerFunc {
	return func(ctx context.Context, ev *discord.Event) {
		tournament, team := deps.captainTeam(ctx, ev)
		if team == nil {
			ev.Reply("You are not linked to a team.")
			return
		}

		embed := discord.ScoresEmbed(
			fmt.Sprintf("%s @ %s Score Submissions", team.Name, tournament.Alias),
			team.ScoreSubmissions,
			func(s *model.ScoreSubmission) string { return s.MatchName },
		)
		ev.ReplyEmbed(embed)
	}
}

// NewShowMatchScoresHandler lists every submission for a match, sorted by
// position.
func NewShowMatchScoresHandler(deps HandlerDeps) discord.HandlerFunc {
	return func(ctx context.Context, ev *discord.Event) {
		if len(ev.Args) != 2 {
			ev.Reply("Usage: `!show match scores [alias] [match_name]`")
			return
		}
		tournament, ok := deps.loadTournament(ctx, ev, ev.Args[0])
		if !ok {
			return
		}
		match := tournament.FindMatchByName(ev.Args[1])
		if match == nil {
			ev.Reply(fmt.Sprintf("Match `%s` not found.", ev.Args[1]))
			return
		}

		scores := tournament.MatchScores(match.Name)
		if len(scores) == 0 {
			ev.Reply("No score submissions found for this match.")
			return
		}
		sort.Slice(scores, func(i, j int) bool { return scores[i].Position < scores[j].Position })

		pages := (len(scores) + scoresPerCard - 1) / scoresPerCard
		for page := 0; page < pages; page++ {
			lo := page * scoresPerCard
			hi := min(lo+scoresPerCard, len(scores))
			embed := discord.ScoresEmbed(
				fmt.Sprintf("%s @ %s Score Submissions (%d/%d)", match.Name, tournament.Alias, page+1, pages),
				scores[lo:hi],
				func(s *model.ScoreSubmission) string { return s.TeamName },
			)
			ev.ReplyEmbed(embed)
		}
	}
}

// NewDownloadMatchScoresHandler sends a match's submissions as a CSV file.
func NewDownloadMatchScoresHandler(deps HandlerDeps) discord.HandlerFunc {
	log := deps.Logger.With("handler", "download_match_scores")

	return func(ctx context.Context, ev *discord.Event) {
		if len(ev.Args) != 2 {
			ev.Reply("Usage: `!download match scores [alias] [match_name]`")
			return
		}
		tournament, ok := deps.loadTournament(ctx, ev, ev.Args[0])
		if !ok {
			return
		}
		match := tournament.FindMatchByName(ev.Args[1])
		if match == nil {
			ev.Reply(fmt.Sprintf("Match `%s` not found.", ev.Args[1]))
			return
		}

		scores := tournament.MatchScores(match.Name)
		if len(scores) == 0 {
			ev.Reply("No score submissions found for this match.")
			return
		}

		var buf bytes.Buffer
		if err := discord.WriteMatchScoresCSV(&buf, scores); err != nil {
			log.ErrorContext(ctx, "Failed to build scores CSV", "match", match.Name, "error", err)
			ev.Reply("Something went wrong, please try again later.")
			return
		}

		filename := fmt.Sprintf("%s_scores_%s.csv", match.Name, time.Now().Format("01-02-2006_15-04-05"))
		ev.DMFile(filename, &buf)
	}
}

func replyScoreError(ev *discord.Event, tournament *model.Tournament, matchName string, err error) {
	switch {
	case errors.Is(err, service.ErrMatchNotFound):
		ev.Reply(fmt.Sprintf(
			"There is no match with the name `%s` for the `%s` tournament. Can't submit score.",
			matchName, tournament.Alias))
	case errors.Is(err, service.ErrTeamNotRegistered):
		match := tournament.FindMatchByName(matchName)
		ev.Reply(fmt.Sprintf(
			"You are not authorized to submit a score for this match, "+
				"your team is not registered in this match group `%s`", match.GroupName))
	case errors.Is(err, service.ErrSubmissionsLocked):
		ev.Reply(fmt.Sprintf(
			"Can't submit score for the match `%s`. Match status is set to COMPLETED. "+
				"Submissions are now locked. Please contact your Tournament Administrator.", matchName))
	case errors.Is(err, service.ErrScoreExists):
		ev.Reply(fmt.Sprintf(
			"Score for the match `%s` already submitted.\n"+
				"Use `!remove score [match_name]` if you want to submit a different score, "+
				"or `!add screenshot [match_name]` to add a screenshot to your submission.", matchName))
	case errors.Is(err, service.ErrScoreNotFound):
		ev.Reply(fmt.Sprintf(
			"No score submission found for the match `%s`. "+
				"Use `!submit [match_name] position [number] eliminations [number]` to submit your score.", matchName))
	default:
		ev.Reply("Something went wrong, please try again later.")
	}
}
