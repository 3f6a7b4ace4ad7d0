package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sleeperstats/leaguecrawl/internal/config"
	"github.com/sleeperstats/leaguecrawl/internal/database"
	"github.com/sleeperstats/leaguecrawl/internal/model"
	"github.com/sleeperstats/leaguecrawl/internal/report"
	"github.com/spf13/cobra"
)

// NewExportCmd creates the export command.
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the full playoff-odds table",
		Long: `Export computes playoff odds for every player clearing the ownership
threshold and writes the ranked table to stdout or a file.

The default format is human-readable text; --json and --markdown select
machine-readable and documentation formats.

Examples:
  # Print the odds table
  leaguecrawl export

  # Write a JSON report to a file
  leaguecrawl export --json -o odds.json

  # Markdown with a lower sample-size threshold
  leaguecrawl export --markdown --min-roster-pct 0.5 -o odds.md`,
		RunE: runExportCmd,
	}

	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Float64("min-roster-pct", config.DefaultMinRosterPct,
		"Minimum share of classified rosters a player must appear on, in percent")

	return cmd
}

// runExportCmd executes the export command.
func runExportCmd(cmd *cobra.Command, _ []string) error {
	jsonOut, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	markdownOut, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	if jsonOut && markdownOut {
		return errors.New("--json and --markdown are mutually exclusive")
	}

	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	minRosterPct, err := cmd.Flags().GetFloat64("min-roster-pct")
	if err != nil {
		return err
	}
	if minRosterPct < 0 || minRosterPct > 100 {
		return fmt.Errorf("configuration error: %w", config.ErrInvalidMinRosterPct)
	}

	cfg := config.NewConfig()
	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false
	db, err := database.Open(cfg.DBDir, opts)
	if err != nil {
		return errors.New("no database found, run 'leaguecrawl crawl' first")
	}
	defer db.Close()

	oddsReport, err := buildOddsReport(cmd, db, minRosterPct)
	if err != nil {
		return err
	}

	dest := cmd.OutOrStdout()
	if outputPath != "" {
		f, err := createReportFile(outputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		dest = f
	}

	var w report.Writer
	switch {
	case jsonOut:
		w = report.NewJSONWriter(dest, report.WithPrettyPrint())
	case markdownOut:
		w = report.NewMarkdownWriter(dest)
	default:
		w = report.NewTextWriter(dest)
	}

	if _, err := w.Write(oddsReport); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if outputPath != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", outputPath)
	}
	return nil
}

// buildOddsReport assembles the exportable aggregate from the database.
func buildOddsReport(cmd *cobra.Command, db *database.OddsDB, minRosterPct float64) (*model.OddsReport, error) {
	ctx := cmd.Context()

	stats, err := db.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read stats: %w", err)
	}
	baseline, err := db.BaselinePlayoffRate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute baseline rate: %w", err)
	}
	players, err := db.ExportPlayerOdds(ctx, minRosterPct)
	if err != nil {
		return nil, fmt.Errorf("failed to compute player odds: %w", err)
	}

	return &model.OddsReport{
		Stats:        stats,
		BaselineRate: baseline,
		Players:      players,
	}, nil
}

// createReportFile opens the report destination, creating parent
// directories as needed.
func createReportFile(path string) (io.WriteCloser, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	f, err := os.Create(path) //nolint:gosec // User-provided report path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to create report file: %w", err)
	}
	return f, nil
}
