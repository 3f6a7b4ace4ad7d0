package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sleeperstats/leaguecrawl/internal/collector"
	"github.com/sleeperstats/leaguecrawl/internal/config"
	"github.com/sleeperstats/leaguecrawl/internal/database"
	"github.com/sleeperstats/leaguecrawl/internal/sleeper"
	"github.com/spf13/cobra"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl [username]...",
		Short: "Crawl the Sleeper league graph starting from seed usernames",
		Long: `Crawl walks the Sleeper social graph outward from seed usernames,
discovering leagues through shared memberships. Each qualifying league's
rosters and playoff results are stored in the local database.

Traversal state is checkpointed continuously. An interrupted crawl
resumes from its checkpoint on the next run, in which case seed
usernames are ignored.

Examples:
  # Crawl starting from a username
  leaguecrawl crawl someusername

  # Collect 500 leagues from the 2024 season
  leaguecrawl crawl --season 2024 --target 500 someusername

  # Reprocess leagues already in the database
  leaguecrawl crawl --force someusername

  # Discard the saved checkpoint and start fresh
  leaguecrawl crawl --reset someusername`,
		Args: cobra.ArbitraryArgs,
		RunE: runCrawlCmd,
	}

	cmd.Flags().IntP("season", "s", config.DefaultSeason,
		"NFL season year to crawl")
	cmd.Flags().IntP("target", "t", config.DefaultTargetLeagues,
		"Number of new leagues to collect before stopping")
	cmd.Flags().Int("max-users", config.DefaultMaxUsers,
		"Maximum users visited in one run")
	cmd.Flags().Int("max-leagues-per-user", config.DefaultMaxLeaguesPerUser,
		"Maximum leagues processed per visited user")
	cmd.Flags().Duration("interval", config.DefaultRequestInterval,
		"Minimum spacing between API requests")
	cmd.Flags().Bool("no-shuffle", false,
		"Disable randomized traversal order")
	cmd.Flags().BoolP("force", "f", false,
		"Reprocess leagues already in the database")
	cmd.Flags().Bool("reset", false,
		"Discard the saved checkpoint before crawling")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .leaguecrawl in current or home directory)")

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildCrawlConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	// Signal handling for graceful shutdown: cancellation lands the
	// crawler on its final-checkpoint path, so an interrupted run can
	// resume later.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, checkpointing and stopping...")
		cancel()
	}()

	return runCrawl(ctx, cmd, cfg, logger)
}

// buildCrawlConfig creates a Config from defaults, the optional config
// file, and command flags. Flags override file values only when set
// explicitly.
func buildCrawlConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	configPathFlag, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If the user explicitly specified a config file path, error when it
	// is missing. An absent default file is fine.
	configPath := config.FindConfigFile(configPathFlag)
	if configPath != "" {
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		if err := cf.Apply(cfg); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
		}
	} else if configPathFlag != "" {
		return nil, fmt.Errorf("configuration file not found: %s", configPathFlag)
	}

	if cmd.Flags().Changed("season") {
		if cfg.Season, err = cmd.Flags().GetInt("season"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("target") {
		if cfg.TargetLeagues, err = cmd.Flags().GetInt("target"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("max-users") {
		if cfg.MaxUsers, err = cmd.Flags().GetInt("max-users"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("max-leagues-per-user") {
		if cfg.MaxLeaguesPerUser, err = cmd.Flags().GetInt("max-leagues-per-user"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("interval") {
		if cfg.RequestInterval, err = cmd.Flags().GetDuration("interval"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("no-shuffle") {
		noShuffle, err := cmd.Flags().GetBool("no-shuffle")
		if err != nil {
			return nil, err
		}
		cfg.ShuffleFrontier = !noShuffle
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return nil, err
	}
	cfg.SkipExisting = !force

	// Seeds from arguments take precedence over the config file.
	if len(args) > 0 {
		cfg.Seeds = args
	}

	return cfg, nil
}

// runCrawl wires the client, database, and crawler, then runs one
// crawl session.
func runCrawl(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	reset, err := cmd.Flags().GetBool("reset")
	if err != nil {
		return err
	}

	state := collector.NewStateStore(cfg.StatePath)
	if reset {
		if err := state.Clear(); err != nil {
			return err
		}
		logger.Info("crawl checkpoint cleared")
	}

	// A fresh crawl needs somewhere to start. Without seeds and without
	// a saved frontier the walk would finish immediately as a no-op.
	if len(cfg.Seeds) == 0 {
		_, queue, err := state.Load()
		if err != nil {
			return err
		}
		if len(queue) == 0 {
			return errors.New("no seed usernames provided and no saved crawl state to resume (pass at least one username)")
		}
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()
	logger.Info("database opened", "path", db.Path())

	client := sleeper.NewClient(cfg.BaseURL,
		sleeper.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		sleeper.WithInterval(cfg.RequestInterval),
		sleeper.WithCacheDir(cfg.CacheDir),
	)

	// The player directory backs name resolution for the odds commands.
	// Load it up front so a crawl-then-odds session works end to end.
	n, err := collector.LoadPlayers(ctx, client, db, false)
	if err != nil {
		return fmt.Errorf("failed to load player directory: %w", err)
	}
	logger.Info("player directory loaded", "players", n)

	crawler := collector.NewCrawler(client, db, state,
		collector.WithSeason(cfg.Season),
		collector.WithTarget(cfg.TargetLeagues),
		collector.WithMaxUsers(cfg.MaxUsers),
		collector.WithMaxLeaguesPerUser(cfg.MaxLeaguesPerUser),
		collector.WithShuffle(cfg.ShuffleFrontier),
		collector.WithSkipExisting(cfg.SkipExisting),
		collector.WithOutput(cmd.OutOrStdout()),
		collector.WithLogger(logger),
	)

	processed, err := crawler.Run(ctx, cfg.Seeds)
	if err != nil {
		return fmt.Errorf("crawl aborted after %d leagues: %w", processed, err)
	}
	return nil
}
