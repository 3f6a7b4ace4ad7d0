package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".leaguecrawl"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the YAML shape of the optional .leaguecrawl configuration file.
// Every field is optional; unset fields leave the corresponding Config
// value untouched, so the file only needs to list overrides.
type File struct {
	// Season is the NFL season year to crawl.
	Season int `yaml:"season"`

	// TargetLeagues is the per-run league collection target.
	TargetLeagues int `yaml:"target_leagues"`

	// MaxUsers is the per-run visit ceiling.
	MaxUsers int `yaml:"max_users"`

	// MaxLeaguesPerUser caps leagues processed per visited user.
	MaxLeaguesPerUser int `yaml:"max_leagues_per_user"`

	// RequestInterval is the minimum request spacing as a Go duration
	// string, e.g. "50ms".
	RequestInterval string `yaml:"request_interval"`

	// Shuffle toggles randomized traversal order. A pointer so that an
	// absent key is distinguishable from an explicit false.
	Shuffle *bool `yaml:"shuffle"`

	// Seeds are default seed usernames for fresh crawls.
	Seeds []string `yaml:"seeds"`

	// MinRosterPct is the export sample-size threshold.
	MinRosterPct *float64 `yaml:"min_roster_pct"`
}

// LoadConfigFile loads overrides from a YAML file. If the file does not
// exist it returns ErrConfigNotFound; callers decide whether that is an
// error based on whether the path was explicitly specified.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// Apply merges the file's overrides into cfg. Zero values and nil
// pointers are treated as "not set".
func (f *File) Apply(cfg *Config) error {
	if f.Season != 0 {
		cfg.Season = f.Season
	}
	if f.TargetLeagues != 0 {
		cfg.TargetLeagues = f.TargetLeagues
	}
	if f.MaxUsers != 0 {
		cfg.MaxUsers = f.MaxUsers
	}
	if f.MaxLeaguesPerUser != 0 {
		cfg.MaxLeaguesPerUser = f.MaxLeaguesPerUser
	}
	if f.RequestInterval != "" {
		d, err := time.ParseDuration(f.RequestInterval)
		if err != nil {
			return fmt.Errorf("invalid request_interval %q: %w", f.RequestInterval, err)
		}
		cfg.RequestInterval = d
	}
	if f.Shuffle != nil {
		cfg.ShuffleFrontier = *f.Shuffle
	}
	if len(f.Seeds) > 0 {
		cfg.Seeds = append([]string(nil), f.Seeds...)
	}
	if f.MinRosterPct != nil {
		cfg.MinRosterPct = *f.MinRosterPct
	}
	return nil
}

// FindConfigFile searches for the configuration file in the following order:
//  1. If configPath is specified, use it directly
//  2. Look for .leaguecrawl in the current directory
//  3. Look for .leaguecrawl in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if
// not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
