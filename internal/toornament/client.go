// Package toornament implements a client for the Toornament organizer and
// viewer APIs: OAuth2 client-credentials authentication, Range-header
// pagination, and the handful of endpoints the bot needs.
package toornament

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tourneybot/tourneybot/internal/model"
)

// ErrNotFound is returned when the requested resource does not exist on
// Toornament.
var ErrNotFound = errors.New("toornament: resource not found")

const (
	participantsPageSize = 50
	matchesPageSize      = 100

	scopeOrganizerView        = "organizer:view"
	scopeOrganizerParticipant = "organizer:participant"
)

// Client is the surface of the Toornament API used by the bot.
type Client interface {
	Tournament(ctx context.Context, id string) (*model.TournamentInfo, error)
	Participants(ctx context.Context, tournamentID string) ([]Participant, error)
	Participant(ctx context.Context, tournamentID, participantID string) (*Participant, error)
	Match(ctx context.Context, tournamentID, matchID string) (*MatchInfo, error)
	Matches(ctx context.Context, tournamentID string) ([]MatchInfo, error)
}

// Config holds the connection settings and credentials for the API.
type Config struct {
	BaseURL      string
	APIKey       string
	ClientID     string
	ClientSecret string

	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration

	// InsecureSkipVerify disables TLS certificate verification for API
	// calls. Off by default; only for environments with intercepting
	// proxies.
	InsecureSkipVerify bool
}

// HTTPClient talks to the Toornament API over HTTP.
type HTTPClient struct {
	cfg  Config
	http *http.Client
	log  *slog.Logger

	mu     sync.Mutex
	tokens map[string]accessToken
}

type accessToken struct {
	value     string
	tokenType string
	expiresAt time.Time
}

// NewHTTPClient creates a Toornament API client from the given config.
func NewHTTPClient(cfg Config, log *slog.Logger) (*HTTPClient, error) {
	if cfg.BaseURL == "" || cfg.APIKey == "" {
		return nil, fmt.Errorf("toornament: base URL and API key are required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}

	transport := http.DefaultTransport
	if cfg.InsecureSkipVerify {
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // explicit opt-in via config
		transport = t
		log.Warn("TLS certificate verification disabled for Toornament API calls")
	}

	return &HTTPClient{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout, Transport: transport},
		log:    log.With("component", "toornament_client"),
		tokens: make(map[string]accessToken),
	}, nil
}

// Tournament fetches tournament metadata from the organizer API.
func (c *HTTPClient) Tournament(ctx context.Context, id string) (*model.TournamentInfo, error) {
	var info model.TournamentInfo
	u := fmt.Sprintf("%s/organizer/v2/tournaments/%s", c.cfg.BaseURL, url.PathEscape(id))
	if err := c.getObject(ctx, u, scopeOrganizerView, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Participants fetches the full participant list of a tournament,
// following pagination.
func (c *HTTPClient) Participants(ctx context.Context, tournamentID string) ([]Participant, error) {
	u := fmt.Sprintf("%s/viewer/v2/tournaments/%s/participants?sort=alphabetic", c.cfg.BaseURL, url.PathEscape(tournamentID))
	return pagedGet[Participant](ctx, c, u, "participants", participantsPageSize, "")
}

// Participant fetches a single participant from the organizer API.
func (c *HTTPClient) Participant(ctx context.Context, tournamentID, participantID string) (*Participant, error) {
	var p Participant
	u := fmt.Sprintf("%s/organizer/v2/tournaments/%s/participants/%s",
		c.cfg.BaseURL, url.PathEscape(tournamentID), url.PathEscape(participantID))
	if err := c.getObject(ctx, u, scopeOrganizerParticipant, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Match fetches a single match from the viewer API.
func (c *HTTPClient) Match(ctx context.Context, tournamentID, matchID string) (*MatchInfo, error) {
	var m MatchInfo
	u := fmt.Sprintf("%s/viewer/v2/tournaments/%s/matches/%s",
		c.cfg.BaseURL, url.PathEscape(tournamentID), url.PathEscape(matchID))
	if err := c.getObject(ctx, u, "", &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Matches fetches all matches of a tournament, following pagination.
func (c *HTTPClient) Matches(ctx context.Context, tournamentID string) ([]MatchInfo, error) {
	u := fmt.Sprintf("%s/viewer/v2/tournaments/%s/matches", c.cfg.BaseURL, url.PathEscape(tournamentID))
	return pagedGet[MatchInfo](ctx, c, u, "matches", matchesPageSize, "")
}

// getObject performs an authenticated GET and decodes a single JSON object.
func (c *HTTPClient) getObject(ctx context.Context, rawURL, scope string, out any) error {
	body, _, err := c.get(ctx, rawURL, scope, "")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("toornament: decoding response from %s: %w", rawURL, err)
	}
	return nil
}

// pagedGet collects every page of a list endpoint. Toornament list
// endpoints answer 206 with a Content-Range header ("unit lo-hi/total");
// the next page is requested by advancing the Range header until the
// upper bound reaches the total.
func pagedGet[T any](ctx context.Context, c *HTTPClient, rawURL, unit string, pageSize int, scope string) ([]T, error) {
	var results []T
	lo, hi := 0, pageSize-1

	for {
		rangeHeader := fmt.Sprintf("%s=%d-%d", unit, lo, hi)
		body, contentRange, err := c.get(ctx, rawURL, scope, rangeHeader)
		if err != nil {
			return nil, err
		}

		var page []T
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("toornament: decoding page %s from %s: %w", rangeHeader, rawURL, err)
		}
		results = append(results, page...)

		next, ok := nextRange(contentRange, pageSize)
		if !ok {
			return results, nil
		}
		lo, hi = next.lo, next.hi
	}
}

type pageRange struct{ lo, hi int }

// nextRange parses a Content-Range header ("participants 0-49/120") and
// returns the next page bounds, or ok=false when the listing is complete.
func nextRange(contentRange string, pageSize int) (pageRange, bool) {
	_, bounds, found := strings.Cut(contentRange, " ")
	if !found {
		return pageRange{}, false
	}
	span, totalStr, found := strings.Cut(bounds, "/")
	if !found {
		return pageRange{}, false
	}
	_, hiStr, found := strings.Cut(span, "-")
	if !found {
		return pageRange{}, false
	}
	hi, err := strconv.Atoi(hiStr)
	if err != nil {
		return pageRange{}, false
	}
	total, err := strconv.Atoi(totalStr)
	if err != nil || hi >= total-1 {
		return pageRange{}, false
	}

	lo := hi + 1
	next := hi + pageSize
	if next > total-1 {
		next = total - 1
	}
	return pageRange{lo: lo, hi: next}, true
}

// get performs a GET with API key, optional OAuth token and optional Range
// header, retrying transient failures. It returns the body and the
// Content-Range header of the final response.
func (c *HTTPClient) get(ctx context.Context, rawURL, scope, rangeHeader string) ([]byte, string, error) {
	var lastErr error

	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, "", ctx.Err()
			case <-time.After(c.cfg.RetryDelay):
			}
			c.log.WarnContext(ctx, "retrying Toornament request", "url", rawURL, "attempt", attempt, "error", lastErr)
		}

		body, contentRange, retryable, err := c.doGet(ctx, rawURL, scope, rangeHeader)
		if err == nil {
			return body, contentRange, nil
		}
		if !retryable {
			return nil, "", err
		}
		lastErr = err
	}
	return nil, "", fmt.Errorf("toornament: request to %s failed after %d attempts: %w", rawURL, c.cfg.MaxRetries+1, lastErr)
}

func (c *HTTPClient) doGet(ctx context.Context, rawURL, scope, rangeHeader string) (body []byte, contentRange string, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", false, fmt.Errorf("toornament: building request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.cfg.APIKey)
	if rangeHeader != "" {
		req.Header.Set("Range", rangeHeader)
	}
	if scope != "" {
		token, err := c.token(ctx, scope)
		if err != nil {
			return nil, "", false, err
		}
		req.Header.Set("Authorization", token.tokenType+" "+token.value)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", true, fmt.Errorf("toornament: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", true, fmt.Errorf("toornament: reading response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusPartialContent:
		return body, resp.Header.Get("Content-Range"), false, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, "", false, ErrNotFound
	case resp.StatusCode >= 500:
		return nil, "", true, fmt.Errorf("toornament: server error %d: %s", resp.StatusCode, body)
	default:
		return nil, "", false, fmt.Errorf("toornament: unexpected status %d: %s", resp.StatusCode, body)
	}
}

// token returns a cached OAuth2 access token for the scope, fetching a new
// one through the client-credentials grant when missing or expired.
func (c *HTTPClient) token(ctx context.Context, scope string) (accessToken, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if tok, ok := c.tokens[scope]; ok && time.Now().Before(tok.expiresAt) {
		return tok, nil
	}

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {c.cfg.ClientID},
		"client_secret": {c.cfg.ClientSecret},
		"scope":         {scope},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/oauth/v2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return accessToken{}, fmt.Errorf("toornament: building token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return accessToken{}, fmt.Errorf("toornament: token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return accessToken{}, fmt.Errorf("toornament: reading token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return accessToken{}, fmt.Errorf("toornament: token request returned %d: %s", resp.StatusCode, body)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return accessToken{}, fmt.Errorf("toornament: decoding token response: %w", err)
	}

	tok := accessToken{
		value:     payload.AccessToken,
		tokenType: payload.TokenType,
		// Renew a minute early to avoid using a token at its expiry edge.
		expiresAt: time.Now().Add(time.Duration(payload.ExpiresIn)*time.Second - time.Minute),
	}
	c.tokens[scope] = tok
	c.log.DebugContext(ctx, "fetched Toornament access token", "scope", scope, "expires_in", payload.ExpiresIn)
	return tok, nil
}
