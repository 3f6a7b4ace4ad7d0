package config

import "errors"

// Configuration validation errors returned by Config.Validate().
//
// Package-level sentinel errors let callers use errors.Is() for
// programmatic handling while still carrying human-readable messages.
var (
	// ErrNoBaseURL is returned when the API base URL is empty.
	ErrNoBaseURL = errors.New("no API base URL configured")

	// ErrInvalidInterval is returned when the request interval is negative.
	// Zero disables rate limiting, which is valid for tests against local
	// fixtures.
	ErrInvalidInterval = errors.New("invalid request interval: must be non-negative")

	// ErrInvalidTimeout is returned when the HTTP timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidSeason is returned for season years before Sleeper existed.
	ErrInvalidSeason = errors.New("invalid season: must be 2017 or later")

	// ErrInvalidTarget is returned when the league target is not positive.
	// A target of zero would mean the crawl stops before visiting anyone.
	ErrInvalidTarget = errors.New("invalid league target: must be positive")

	// ErrInvalidVisitCeiling is returned when the visit ceiling is not positive.
	ErrInvalidVisitCeiling = errors.New("invalid max users: must be positive")

	// ErrInvalidLeagueCap is returned when the per-user league cap is not positive.
	ErrInvalidLeagueCap = errors.New("invalid per-user league cap: must be positive")

	// ErrInvalidMinRosterPct is returned when the export threshold is
	// outside the 0-100 percent range.
	ErrInvalidMinRosterPct = errors.New("invalid minimum roster percentage: must be between 0 and 100")
)
