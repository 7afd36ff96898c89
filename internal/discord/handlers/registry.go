package handlers

import (
	"github.com/tourneybot/tourneybot/internal/discord"
)

// RegisterAllCommands wires every bot command into the router with its
// middleware chain.
func RegisterAllCommands(router *discord.Router, deps HandlerDeps) {
	adminOnly := []discord.Middleware{AdminOnly(deps)}
	privateOnly := []discord.Middleware{PrivateMessageOnly(deps)}
	channelOnly := []discord.Middleware{TournamentChannelOnly(deps)}

	// General commands
	router.Register(discord.Command{
		Name:        "help",
		Description: "Display bot commands.",
		Handler:     NewHelpHandler(deps, router),
		Middleware:  privateOnly,
	})
	router.Register(discord.Command{
		Name:        "show tournament",
		Args:        "[alias]",
		Description: "Show a tournament. E.g. `!show tournament fortnite`",
		Handler:     NewShowTournamentHandler(deps),
	})
	router.Register(discord.Command{
		Name:        "show tournaments",
		Description: "Show available tournaments. E.g. `!show tournaments`",
		Handler:     NewShowTournamentsHandler(deps),
	})
	router.Register(discord.Command{
		Name:        "show match",
		Args:        "[alias] [match_name]",
		Description: "Show a tournament's match. E.g. `!show match fortnite match_1`",
		Handler:     NewShowMatchHandler(deps),
		Middleware:  privateOnly,
	})
	router.Register(discord.Command{
		Name:        "show matches",
		Args:        "[alias]",
		Description: "Show the matches of a tournament. E.g. `!show matches fortnite`",
		Handler:     NewShowMatchesHandler(deps),
		Middleware:  channelOnly,
	})
	router.Register(discord.Command{
		Name:        "show team",
		Args:        "[alias] [team_name]",
		Description: "Show a team information. E.g. `!show team fortnite Team Liquid`",
		Handler:     NewShowTeamHandler(deps),
		Middleware:  channelOnly,
	})
	router.Register(discord.Command{
		Name:        "show team by id",
		Args:        "[alias] [team_id]",
		Description: "Show a team information. E.g. `!show team by id fortnite 123456789`",
		Handler:     NewShowTeamByIDHandler(deps),
		Middleware:  channelOnly,
	})
	router.Register(discord.Command{
		Name:        "show teams",
		Args:        "[alias]",
		Description: "Show teams linked on Discord. E.g. `!show teams fortnite`",
		Handler:     NewShowTeamsHandler(deps),
		Middleware:  privateOnly,
	})
	router.Register(discord.Command{
		Name:        "show teams missing",
		Args:        "[alias]",
		Description: "Show teams not linked on Discord. E.g. `!show teams missing fortnite`",
		Handler:     NewShowTeamsMissingHandler(deps),
		Middleware:  privateOnly,
	})
	router.Register(discord.Command{
		Name: "link",
		Args: "[alias] [team_name]",
		Description: "Link your Discord account with a team to become the captain of this team. " +
			"E.g. `!link fortnite Team Liquid`",
		Handler:    NewLinkHandler(deps),
		Middleware: channelOnly,
	})

	// Linked captain commands
	router.Register(discord.Command{
		Name:        "unlink",
		Args:        "[team_name]",
		Description: "[Linked] Unlink your current team with your Discord account. E.g. `!unlink Team SoloMid`",
		Section:     discord.SectionLinked,
		Handler:     NewUnlinkHandler(deps),
		Middleware:  channelOnly,
	})
	router.Register(discord.Command{
		Name:        "join",
		Args:        "[match_name]",
		Description: "[Linked] Join a match. E.g. `!join match_1`",
		Section:     discord.SectionLinked,
		Handler:     NewJoinHandler(deps),
		Middleware:  channelOnly,
	})
	router.Register(discord.Command{
		Name: "leave",
		Args: "[match_name]",
		Description: "[Linked] Leave a joined match (if joined by mistake). " +
			"Available when the match status is set to PENDING. E.g. `!leave match_1`",
		Section:    discord.SectionLinked,
		Handler:    NewLeaveHandler(deps),
		Middleware: channelOnly,
	})
	router.Register(discord.Command{
		Name:        "show status",
		Description: "[Linked] Show your currently linked team and joined matches.",
		Section:     discord.SectionLinked,
		Handler:     NewShowStatusHandler(deps),
		Middleware:  privateOnly,
	})
	router.Register(discord.Command{
		Name:        "show scores",
		Description: "[Linked] Show your team match score submissions history. E.g. `!show scores`",
		Section:     discord.SectionLinked,
		Handler:     NewShowScoresHandler(deps),
		Middleware:  privateOnly,
	})
	router.Register(discord.Command{
		Name: "submit",
		Args: "[match_name] position [number] eliminations [number]",
		Description: "[Linked] Submit your team score for a match, in private with a screenshot attached. " +
			"Score submission is disabled when a match status is set to COMPLETED.",
		Section:    discord.SectionLinked,
		Handler:    NewSubmitHandler(deps),
		Middleware: privateOnly,
	})
	router.Register(discord.Command{
		Name:        "add screenshot",
		Args:        "[match_name]",
		Description: "[Linked] Add a screenshot to your previous score submission, in private.",
		Section:     discord.SectionLinked,
		Handler:     NewAddScreenshotHandler(deps),
		Middleware:  privateOnly,
	})
	router.Register(discord.Command{
		Name:        "remove score",
		Args:        "[match_name]",
		Description: "[Linked] Remove a submitted match score. E.g. `!remove score match_1`",
		Section:     discord.SectionLinked,
		Handler:     NewRemoveScoreHandler(deps),
		Middleware:  channelOnly,
	})

	// Admin commands
	router.Register(discord.Command{
		Name:        "add tournament",
		Args:        "[alias] [tournament_id]",
		Description: "[Admin] Register a Toornament tournament. E.g. `!add tournament fortnite 123456789`",
		Section:     discord.SectionAdmin,
		Handler:     NewAddTournamentHandler(deps),
		Middleware:  adminOnly,
	})
	router.Register(discord.Command{
		Name:        "remove tournament",
		Args:        "[alias]",
		Description: "[Admin] Remove a tournament. E.g. `!remove tournament fortnite`",
		Section:     discord.SectionAdmin,
		Handler:     NewRemoveTournamentHandler(deps),
		Middleware:  adminOnly,
	})
	router.Register(discord.Command{
		Name:        "refresh tournament",
		Args:        "[alias]",
		Description: "[Admin] Refresh a tournament's information. E.g. `!refresh tournament fortnite`",
		Section:     discord.SectionAdmin,
		Handler:     NewRefreshTournamentHandler(deps),
		Middleware:  adminOnly,
	})
	router.Register(discord.Command{
		Name:        "show tournament refresh status",
		Args:        "[alias]",
		Description: "[Admin] Show difference between current tournament and Toornament participants list.",
		Section:     discord.SectionAdmin,
		Handler:     NewRefreshStatusHandler(deps),
		Middleware:  adminOnly,
	})
	router.Register(discord.Command{
		Name:        "add admin role",
		Args:        "[alias] [role]",
		Description: "[Admin] Link a Discord admin role to a tournament. E.g. `!add admin role fortnite Fortnite Admin`",
		Section:     discord.SectionAdmin,
		Handler:     NewAddAdminRoleHandler(deps),
		Middleware:  adminOnly,
	})
	router.Register(discord.Command{
		Name:        "remove admin role",
		Args:        "[alias] [role]",
		Description: "[Admin] Remove a Discord admin role from a tournament. E.g. `!remove admin role fortnite Fortnite Admin`",
		Section:     discord.SectionAdmin,
		Handler:     NewRemoveAdminRoleHandler(deps),
		Middleware:  adminOnly,
	})
	router.Register(discord.Command{
		Name: "add captain role",
		Args: "[alias] [role]",
		Description: "[Admin] Link a Discord role as a tournament Captain role. " +
			"Players that link their Discord account with their team will be assigned this role. " +
			"E.g. `!add captain role fortnite Fortnite Captain`",
		Section:    discord.SectionAdmin,
		Handler:    NewAddCaptainRoleHandler(deps),
		Middleware: adminOnly,
	})
	router.Register(discord.Command{
		Name:        "remove captain role",
		Args:        "[alias]",
		Description: "[Admin] Remove a tournament Discord Captain role.",
		Section:     discord.SectionAdmin,
		Handler:     NewRemoveCaptainRoleHandler(deps),
		Middleware:  adminOnly,
	})
	router.Register(discord.Command{
		Name:        "add channel",
		Args:        "[alias] [#channel]",
		Description: "[Admin] Link a Discord channel to a tournament. E.g. `!add channel fortnite #fortnite-tournament`",
		Section:     discord.SectionAdmin,
		Handler:     NewAddChannelHandler(deps),
		Middleware:  adminOnly,
	})
	router.Register(discord.Command{
		Name:        "remove channel",
		Args:        "[alias] [#channel]",
		Description: "[Admin] Unlink a Discord channel from a tournament. E.g. `!remove channel fortnite #fortnite-tournament`",
		Section:     discord.SectionAdmin,
		Handler:     NewRemoveChannelHandler(deps),
		Middleware:  adminOnly,
	})
	router.Register(discord.Command{
		Name: "create match",
		Args: "[alias] [match_name] [password] [match_id]",
		Description: "[Admin] Create a tournament match. " +
			"E.g. `!create match fortnite match_1 secretPassword 123456789`",
		Section:    discord.SectionAdmin,
		Handler:    NewCreateMatchHandler(deps),
		Middleware: adminOnly,
	})
	router.Register(discord.Command{
		Name:        "remove match",
		Args:        "[alias] [match_name]",
		Description: "[Admin] Remove a tournament match. E.g. `!remove match fortnite match_1`",
		Section:     discord.SectionAdmin,
		Handler:     NewRemoveMatchHandler(deps),
		Middleware:  adminOnly,
	})
	router.Register(discord.Command{
		Name: "start match",
		Args: "[alias] [match_name]",
		Description: "[Admin] Start a tournament match and notify the tournament channels " +
			"and joined captains. E.g. `!start match fortnite match_1`",
		Section:    discord.SectionAdmin,
		Handler:    NewStartMatchHandler(deps),
		Middleware: adminOnly,
	})
	router.Register(discord.Command{
		Name: "end match",
		Args: "[alias] [match_name] [--force]",
		Description: "[Admin] Set a tournament match status as completed, locking score submissions. " +
			"E.g. `!end match fortnite match_1` or `!end match fortnite match_1 --force`",
		Section:    discord.SectionAdmin,
		Handler:    NewEndMatchHandler(deps),
		Middleware: adminOnly,
	})
	router.Register(discord.Command{
		Name:        "set match status",
		Args:        "[alias] [match_name] [status]",
		Description: "[Admin] Force the match status state. E.g. `!set match status fortnite match_1 completed`",
		Section:     discord.SectionAdmin,
		Handler:     NewSetMatchStatusHandler(deps),
		Middleware:  adminOnly,
	})
	router.Register(discord.Command{
		Name:        "show match scores",
		Args:        "[alias] [match_name]",
		Description: "[Admin] Show a tournament match score submissions. E.g. `!show match scores fortnite match_1`",
		Section:     discord.SectionAdmin,
		Handler:     NewShowMatchScoresHandler(deps),
		Middleware:  adminOnly,
	})
	router.Register(discord.Command{
		Name:        "download match scores",
		Args:        "[alias] [match_name]",
		Description: "[Admin] Download a match score submissions as CSV. E.g. `!download match scores fortnite match_1`",
		Section:     discord.SectionAdmin,
		Handler:     NewDownloadMatchScoresHandler(deps),
		Middleware:  adminOnly,
	})
	router.Register(discord.Command{
		Name:        "link team captain",
		Args:        "[alias] [team_id] [discord_user]",
		Description: "[Admin] Set a Discord user as a team linked captain. E.g. `!link team captain fortnite 123456789 user#1234`",
		Section:     discord.SectionAdmin,
		Handler:     NewLinkTeamCaptainHandler(deps),
		Middleware:  adminOnly,
	})
	router.Register(discord.Command{
		Name:        "remove team",
		Args:        "[alias] [team_id]",
		Description: "[Admin] Remove a team from a tournament. E.g. `!remove team fortnite 123456789`",
		Section:     discord.SectionAdmin,
		Handler:     NewRemoveTeamHandler(deps),
		Middleware:  adminOnly,
	})
	router.Register(discord.Command{
		Name:        "reset team",
		Args:        "[alias] [team_id]",
		Description: "[Admin] Reset a team information and linked captain. E.g. `!reset team fortnite 123456789`",
		Section:     discord.SectionAdmin,
		Handler:     NewResetTeamHandler(deps),
		Middleware:  adminOnly,
	})
}
