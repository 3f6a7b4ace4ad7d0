package main

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sleeperstats/leaguecrawl/internal/config"
	"github.com/sleeperstats/leaguecrawl/internal/database"
	"github.com/spf13/cobra"
)

// NewStatsCmd creates the stats command.
func NewStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show summary statistics for the collected data",
		Long: `Stats prints how much data the local database currently holds: the
number of leagues collected, the number of rosters with a known playoff
result, and the baseline playoff rate across all classified rosters.`,
		RunE: runStatsCmd,
	}
}

// runStatsCmd executes the stats command.
func runStatsCmd(cmd *cobra.Command, _ []string) error {
	cfg := config.NewConfig()

	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false
	db, err := database.Open(cfg.DBDir, opts)
	if err != nil {
		return errors.New("no database found, run 'leaguecrawl crawl' first")
	}
	defer db.Close()

	ctx := cmd.Context()
	stats, err := db.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to read stats: %w", err)
	}
	baseline, err := db.BaselinePlayoffRate(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute baseline rate: %w", err)
	}

	p := message.NewPrinter(language.English)
	p.Fprintf(cmd.OutOrStdout(), "Leagues collected:    %d\n", stats.Leagues)
	p.Fprintf(cmd.OutOrStdout(), "Classified rosters:   %d\n", stats.ClassifiedRosters)
	fmt.Fprintf(cmd.OutOrStdout(), "Baseline playoff rate: %.2f%%\n", baseline)
	return nil
}
