package sleeper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/sleeperstats/leaguecrawl/internal/model"
)

// defaultInterval is the minimum spacing between requests when no
// interval is configured. Matches the documented ~1000 calls/min limit
// with headroom.
const defaultInterval = 50 * time.Millisecond

// playersCacheFile is the file name of the cached player directory.
const playersCacheFile = "players.json"

// Client is a rate-limited Sleeper API client.
//
// The throttle state (time of the last request) is owned by the client
// instance and is not safe for concurrent use; the collector drives all
// requests from a single goroutine.
type Client struct {
	// httpClient performs the actual requests.
	httpClient *http.Client

	// baseURL is the API endpoint prefix, without trailing slash.
	baseURL string

	// interval is the minimum spacing between requests. Zero disables
	// throttling, which tests against local fixtures rely on.
	interval time.Duration

	// cacheDir is where the player directory cache lives.
	cacheDir string

	// lastCall is when the previous request fired.
	lastCall time.Time

	// now and sleep are indirected for deterministic throttle tests.
	now   func() time.Time
	sleep func(time.Duration)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client, e.g. with a specific timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithInterval sets the minimum spacing between requests.
// Zero disables throttling.
func WithInterval(d time.Duration) Option {
	return func(c *Client) {
		c.interval = d
	}
}

// WithCacheDir sets the directory for the player directory cache.
func WithCacheDir(dir string) Option {
	return func(c *Client) {
		c.cacheDir = dir
	}
}

// NewClient creates a Client for the API at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		interval:   defaultInterval,
		now:        time.Now,
		sleep:      time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// throttle blocks until at least the configured interval has elapsed
// since the previous request, then records the current request time.
func (c *Client) throttle() {
	if c.interval > 0 && !c.lastCall.IsZero() {
		if elapsed := c.now().Sub(c.lastCall); elapsed < c.interval {
			c.sleep(c.interval - elapsed)
		}
	}
	c.lastCall = c.now()
}

// get performs a throttled GET and returns the body and status code.
// Transport failures and HTTP 429 are returned as errors; all other
// statuses are left for the caller to interpret.
func (c *Client) get(ctx context.Context, endpoint string) ([]byte, int, error) {
	c.throttle()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build request for %s: %w", endpoint, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed for %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, resp.StatusCode, fmt.Errorf("%s: %w", endpoint, ErrRateLimited)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response for %s: %w", endpoint, err)
	}
	return body, resp.StatusCode, nil
}

// getEntity fetches a single-entity endpoint into v.
// Returns found=false without error on 404 or a JSON null body; any
// other non-200 status is an error.
func (c *Client) getEntity(ctx context.Context, endpoint string, v any) (found bool, err error) {
	body, status, err := c.get(ctx, endpoint)
	if err != nil {
		return false, err
	}
	if status == http.StatusNotFound {
		return false, nil
	}
	if status != http.StatusOK {
		return false, fmt.Errorf("unexpected status %d for %s", status, endpoint)
	}
	// Sleeper answers some unknown lookups with 200 and a null body.
	if len(bytes.TrimSpace(body)) == 0 || bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return false, nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return false, fmt.Errorf("failed to decode response for %s: %w", endpoint, err)
	}
	return true, nil
}

// getList fetches a list-returning endpoint into v.
// Any non-200 status short of a rate limit leaves v untouched so the
// caller sees an empty list; a single broken league must not stop a crawl.
func (c *Client) getList(ctx context.Context, endpoint string, v any) error {
	body, status, err := c.get(ctx, endpoint)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return nil
	}
	if len(bytes.TrimSpace(body)) == 0 || bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode response for %s: %w", endpoint, err)
	}
	return nil
}

// User looks up an account by username. Returns (nil, nil) when the
// username does not exist.
func (c *Client) User(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	found, err := c.getEntity(ctx, "/user/"+username, &u)
	if err != nil || !found {
		return nil, err
	}
	return &u, nil
}

// League looks up league details by ID. Returns (nil, nil) when the
// league does not exist.
func (c *Client) League(ctx context.Context, leagueID string) (*model.League, error) {
	var l model.League
	found, err := c.getEntity(ctx, "/league/"+leagueID, &l)
	if err != nil || !found {
		return nil, err
	}
	return &l, nil
}

// UserLeagues returns the NFL leagues a user belongs to in the given season.
func (c *Client) UserLeagues(ctx context.Context, userID string, season int) ([]model.League, error) {
	var leagues []model.League
	endpoint := fmt.Sprintf("/user/%s/leagues/nfl/%d", userID, season)
	if err := c.getList(ctx, endpoint, &leagues); err != nil {
		return nil, err
	}
	return leagues, nil
}

// LeagueUsers returns the members of a league.
func (c *Client) LeagueUsers(ctx context.Context, leagueID string) ([]model.User, error) {
	var users []model.User
	if err := c.getList(ctx, "/league/"+leagueID+"/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// LeagueRosters returns the rosters of a league.
func (c *Client) LeagueRosters(ctx context.Context, leagueID string) ([]model.Roster, error) {
	var rosters []model.Roster
	if err := c.getList(ctx, "/league/"+leagueID+"/rosters", &rosters); err != nil {
		return nil, err
	}
	return rosters, nil
}

// WinnersBracket returns the playoff bracket matchups of a league.
// An empty slice means the league published no bracket data.
func (c *Client) WinnersBracket(ctx context.Context, leagueID string) ([]model.Matchup, error) {
	var bracket []model.Matchup
	if err := c.getList(ctx, "/league/"+leagueID+"/winners_bracket", &bracket); err != nil {
		return nil, err
	}
	return bracket, nil
}

// AllPlayers returns the full player directory keyed by player ID.
//
// The payload is around 5MB, so it is cached on disk indefinitely and
// only refetched when force is true or no cache exists yet.
func (c *Client) AllPlayers(ctx context.Context, force bool) (map[string]model.DirectoryEntry, error) {
	cachePath := filepath.Join(c.cacheDir, playersCacheFile)

	if !force {
		if cached, err := c.readPlayersCache(cachePath); err == nil {
			return cached, nil
		}
		// Cache miss or unreadable cache falls through to a fetch.
	}

	body, status, err := c.get(ctx, "/players/nfl")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d for /players/nfl", status)
	}

	var players map[string]model.DirectoryEntry
	if err := json.Unmarshal(body, &players); err != nil {
		return nil, fmt.Errorf("failed to decode player directory: %w", err)
	}

	if err := c.writePlayersCache(cachePath, body); err != nil {
		return nil, err
	}
	return players, nil
}

// readPlayersCache loads the cached directory from disk.
func (c *Client) readPlayersCache(path string) (map[string]model.DirectoryEntry, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Cache path is derived from config
	if err != nil {
		return nil, err
	}
	var players map[string]model.DirectoryEntry
	if err := json.Unmarshal(data, &players); err != nil {
		return nil, fmt.Errorf("failed to decode player cache %s: %w", path, err)
	}
	return players, nil
}

// writePlayersCache stores the raw directory payload on disk.
func (c *Client) writePlayersCache(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write player cache: %w", err)
	}
	return nil
}
