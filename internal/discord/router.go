package discord

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/tourneybot/tourneybot/internal/config"
)

// Section groups commands for the help listing.
type Section int

const (
	SectionGeneral Section = iota
	SectionLinked
	SectionAdmin
)

// HandlerFunc processes one command invocation.
type HandlerFunc func(ctx context.Context, ev *Event)

// Middleware wraps a HandlerFunc with a cross-cutting check.
type Middleware func(next HandlerFunc) HandlerFunc

// Command is a chat command registered on the router. Name is a phrase of
// one or more words ("add tournament"); the router matches the longest
// registered phrase at the start of the message.
type Command struct {
	Name        string
	Args        string
	Description string
	Section     Section
	Handler     HandlerFunc
	Middleware  []Middleware
}

const handlerTimeout = 2 * time.Minute

// Router dispatches prefix commands from message events to handlers.
type Router struct {
	logger   *slog.Logger
	prefixes []string
	commands map[string]Command
	phrases  []string
}

// NewRouter creates a router that accepts the configured command prefix and
// its alternatives.
func NewRouter(cfg *config.DiscordConfig, logger *slog.Logger) *Router {
	prefixes := append([]string{cfg.CommandPrefix}, cfg.AltPrefixes...)
	return &Router{
		logger:   logger.With("component", "router"),
		prefixes: prefixes,
		commands: make(map[string]Command),
	}
}

// Register adds a command. Phrases are matched case-insensitively.
func (r *Router) Register(cmd Command) {
	phrase := strings.ToLower(cmd.Name)
	r.commands[phrase] = cmd
	r.phrases = append(r.phrases, phrase)
	// longest phrase wins, so "show match scores" beats "show match"
	sort.Slice(r.phrases, func(i, j int) bool {
		return len(r.phrases[i]) > len(r.phrases[j])
	})
}

// Commands returns every registered command, for the help listing.
func (r *Router) Commands() []Command {
	cmds := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	return cmds
}

// Attach registers the router's message handler on the session.
func (r *Router) Attach(session *discordgo.Session) {
	session.AddHandler(r.onMessageCreate)
}

func (r *Router) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	cmd, args, ok := r.Resolve(m.Content)
	if !ok {
		return
	}

	ev := &Event{
		Session: s,
		Message: m,
		Args:    args,
		logger:  r.logger,
	}

	handler := cmd.Handler
	for i := len(cmd.Middleware) - 1; i >= 0; i-- {
		handler = cmd.Middleware[i](handler)
	}

	log := r.logger.With("command", cmd.Name, "user", ev.AuthorTag())
	log.Info("Dispatching command", "args", len(ev.Args))

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
		defer cancel()
		start := time.Now()
		handler(ctx, ev)
		log.Debug("Command finished", "duration", time.Since(start))
	}()
}

// Resolve matches raw message content against the registered commands and
// returns the winning command with its parsed arguments.
func (r *Router) Resolve(content string) (Command, []string, bool) {
	body, ok := r.stripPrefix(strings.TrimSpace(content))
	if !ok {
		return Command{}, nil, false
	}
	cmd, rest, ok := r.match(body)
	if !ok {
		return Command{}, nil, false
	}
	return cmd, SplitArgs(rest), true
}

func (r *Router) stripPrefix(content string) (string, bool) {
	for _, prefix := range r.prefixes {
		if prefix != "" && strings.HasPrefix(content, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(content, prefix)), true
		}
	}
	return "", false
}

func (r *Router) match(body string) (Command, string, bool) {
	lower := strings.ToLower(body)
	for _, phrase := range r.phrases {
		if lower == phrase {
			return r.commands[phrase], "", true
		}
		if strings.HasPrefix(lower, phrase+" ") {
			return r.commands[phrase], strings.TrimSpace(body[len(phrase):]), true
		}
	}
	return Command{}, "", false
}

// SplitArgs splits a command tail into arguments. Double or single quotes
// group words, so multi-word team names survive; a backslash escapes the
// next rune inside quotes.
func SplitArgs(s string) []string {
	var args []string
	var current strings.Builder
	var quote rune
	escaped := false
	flush := func() {
		if current.Len() > 0 {
			args = append(args, current.String())
			current.Reset()
		}
	}
	for _, r := range s {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
		case r == ' ' || r == '\t':
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return args
}
