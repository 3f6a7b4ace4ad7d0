package main

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sleeperstats/leaguecrawl/internal/collector"
	"github.com/sleeperstats/leaguecrawl/internal/config"
	"github.com/sleeperstats/leaguecrawl/internal/database"
	"github.com/sleeperstats/leaguecrawl/internal/sleeper"
	"github.com/spf13/cobra"
)

// NewLoadPlayersCmd creates the load-players command.
func NewLoadPlayersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load-players",
		Short: "Load the Sleeper player directory into the database",
		Long: `Load-players fetches the full Sleeper player directory and stores it in
the local database. The directory response is large, so it is cached on
disk and refreshed only when --force is given.

The crawl command loads the directory automatically; this command exists
to refresh it independently, for example after NFL roster moves.`,
		RunE: runLoadPlayersCmd,
	}

	cmd.Flags().BoolP("force", "f", false,
		"Refetch the directory even when a cached copy exists")

	return cmd
}

// runLoadPlayersCmd executes the load-players command.
func runLoadPlayersCmd(cmd *cobra.Command, _ []string) error {
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	cfg := config.NewConfig()
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	client := sleeper.NewClient(cfg.BaseURL,
		sleeper.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		sleeper.WithInterval(cfg.RequestInterval),
		sleeper.WithCacheDir(cfg.CacheDir),
	)

	n, err := collector.LoadPlayers(cmd.Context(), client, db, force)
	if err != nil {
		return fmt.Errorf("failed to load player directory: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d players into the database.\n", n)
	return nil
}
