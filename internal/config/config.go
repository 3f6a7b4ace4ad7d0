package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values. These mirror Sleeper's published rate
// limits and the traversal bounds that keep a crawl session to a
// manageable size.
const (
	// DefaultBaseURL is the public Sleeper API endpoint. All lookups are
	// plain HTTPS GET requests under this prefix.
	DefaultBaseURL = "https://api.sleeper.app/v1"

	// DefaultRequestInterval is the minimum spacing between API requests.
	// Sleeper allows ~1000 calls/min; 50ms keeps us safely under that
	// while real throughput stays lower due to response latency.
	DefaultRequestInterval = 50 * time.Millisecond

	// DefaultTimeout is the per-request HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultSeason is the NFL season year to crawl when none is given.
	DefaultSeason = 2025

	// DefaultTargetLeagues is the number of new leagues a crawl run
	// collects before stopping.
	DefaultTargetLeagues = 100

	// DefaultMaxUsers is the hard ceiling on users visited in a single
	// run. This bounds runs on densely connected regions of the graph
	// even when the league target is never reached.
	DefaultMaxUsers = 20000

	// DefaultMaxLeaguesPerUser caps how many leagues are processed from
	// a single user, so heavy multi-league accounts cannot dominate the
	// sample.
	DefaultMaxLeaguesPerUser = 5

	// DefaultMinRosterPct is the minimum share of all classified rosters
	// a player must appear on to be included in exports. Filters out
	// players with sample sizes too small to be meaningful.
	DefaultMinRosterPct = 1.0

	// AppName is the application name used for XDG directory paths.
	AppName = "leaguecrawl"
)

// Config holds all runtime options for leaguecrawl. It is populated from
// defaults, the optional config file, and CLI flags, then passed through
// the application by dependency injection rather than global state.
type Config struct {
	// BaseURL is the Sleeper API endpoint prefix.
	BaseURL string

	// RequestInterval is the minimum spacing between API requests.
	// Every request through the client blocks until this much time has
	// elapsed since the previous one.
	RequestInterval time.Duration

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration

	// Season is the NFL season year to crawl.
	Season int

	// TargetLeagues is the number of new leagues to process before the
	// crawl stops.
	TargetLeagues int

	// MaxUsers is the hard ceiling on users visited in one run.
	MaxUsers int

	// MaxLeaguesPerUser caps leagues processed per visited user.
	MaxLeaguesPerUser int

	// ShuffleFrontier randomizes traversal order by rotating the pending
	// queue before each pop. Spreads requests across communities instead
	// of exhausting one league's social cluster at a time.
	ShuffleFrontier bool

	// SkipExisting leaves leagues already in the database untouched.
	// Their members are still enqueued for discovery. Disabled by the
	// crawl command's --force flag.
	SkipExisting bool

	// Seeds are the usernames a fresh crawl starts from. Ignored when a
	// saved checkpoint provides a frontier.
	Seeds []string

	// MinRosterPct is the export sample-size threshold, as a percentage
	// of all classified rosters.
	MinRosterPct float64

	// Verbose enables slog.LevelDebug output.
	Verbose bool

	// DBDir is the directory holding the SQLite database file.
	// Defaults to the XDG data directory.
	DBDir string

	// CacheDir is the directory holding the player-directory cache.
	// Defaults to the XDG cache directory.
	CacheDir string

	// StatePath is the path of the crawl checkpoint file.
	// Defaults to crawl_state.json inside DBDir.
	StatePath string

	// ConfigFilePath is an explicit config file path. If empty, the tool
	// searches for .leaguecrawl in the current directory and then in the
	// user's home directory.
	ConfigFilePath string
}

// NewConfig creates a Config with default values. Many defaults are
// non-zero, so relying on zero values would be wrong; this constructor
// also documents what the defaults are.
func NewConfig() *Config {
	dataDir := XDGDataDir()
	return &Config{
		BaseURL:           DefaultBaseURL,
		RequestInterval:   DefaultRequestInterval,
		Timeout:           DefaultTimeout,
		Season:            DefaultSeason,
		TargetLeagues:     DefaultTargetLeagues,
		MaxUsers:          DefaultMaxUsers,
		MaxLeaguesPerUser: DefaultMaxLeaguesPerUser,
		ShuffleFrontier:   true,
		SkipExisting:      true,
		MinRosterPct:      DefaultMinRosterPct,
		DBDir:             dataDir,
		CacheDir:          XDGCacheDir(),
		StatePath:         filepath.Join(dataDir, "crawl_state.json"),
	}
}

// XDGDataDir returns the XDG data directory for leaguecrawl.
// On Linux: ~/.local/share/leaguecrawl
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for leaguecrawl.
// On Linux: ~/.cache/leaguecrawl
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// Validate checks the configuration and returns the first problem found
// as a sentinel error usable with errors.Is. Called once after flag and
// file merging, before any network or database work begins.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrNoBaseURL
	}
	if c.RequestInterval < 0 {
		return ErrInvalidInterval
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.Season < 2017 {
		// Sleeper launched for the 2017 season; earlier years have no data.
		return ErrInvalidSeason
	}
	if c.TargetLeagues <= 0 {
		return ErrInvalidTarget
	}
	if c.MaxUsers <= 0 {
		return ErrInvalidVisitCeiling
	}
	if c.MaxLeaguesPerUser <= 0 {
		return ErrInvalidLeagueCap
	}
	if c.MinRosterPct < 0 || c.MinRosterPct > 100 {
		return ErrInvalidMinRosterPct
	}
	return nil
}
