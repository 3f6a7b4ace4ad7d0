package main

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sleeperstats/leaguecrawl/internal/config"
	"github.com/sleeperstats/leaguecrawl/internal/database"
	"github.com/spf13/cobra"
)

// searchResultLimit caps how many name matches are listed when a query
// is ambiguous.
const searchResultLimit = 20

// NewOddsCmd creates the odds command.
func NewOddsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "odds <player name or ID>",
		Short: "Show playoff odds for a player",
		Long: `Odds shows how often rosters carrying a player made the playoffs,
relative to the baseline rate across all classified rosters.

The argument is either a numeric Sleeper player ID or a partial player
name. A name matching several players lists the candidates instead.

Examples:
  # Look up by name
  leaguecrawl odds "patrick mahomes"

  # Look up by Sleeper player ID
  leaguecrawl odds 4046`,
		Args: cobra.MinimumNArgs(1),
		RunE: runOddsCmd,
	}
}

// runOddsCmd executes the odds command.
func runOddsCmd(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	cfg := config.NewConfig()
	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false
	db, err := database.Open(cfg.DBDir, opts)
	if err != nil {
		return errors.New("no database found, run 'leaguecrawl crawl' first")
	}
	defer db.Close()

	ctx := cmd.Context()

	// Numeric queries are Sleeper player IDs and skip the name search.
	if isNumeric(query) {
		return printOdds(cmd, db, query)
	}

	players, err := db.SearchPlayers(ctx, query, searchResultLimit)
	if err != nil {
		return err
	}
	switch len(players) {
	case 0:
		return fmt.Errorf("no player found matching %q (is the player directory loaded?)", query)
	case 1:
		return printOdds(cmd, db, players[0].PlayerID)
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "Multiple players match %q:\n", query)
		for _, p := range players {
			team := p.Team
			if team == "" {
				team = "FA"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  %-8s %-28s %-4s %s\n", p.PlayerID, p.FullName, p.Position, team)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "\nRe-run with a player ID to disambiguate.")
		return nil
	}
}

// printOdds prints the playoff statistic for one player alongside the
// dataset baseline.
func printOdds(cmd *cobra.Command, db *database.OddsDB, playerID string) error {
	ctx := cmd.Context()

	odds, err := db.PlayerOdds(ctx, playerID)
	if err != nil {
		return err
	}
	baseline, err := db.BaselinePlayoffRate(ctx)
	if err != nil {
		return err
	}

	name := odds.FullName
	if name == "" {
		name = odds.PlayerID
	}
	header := name
	if odds.Position != "" {
		team := odds.Team
		if team == "" {
			team = "FA"
		}
		header = fmt.Sprintf("%s (%s, %s)", name, odds.Position, team)
	}

	out := cmd.OutOrStdout()
	p := message.NewPrinter(language.English)
	fmt.Fprintf(out, "%s\n", header)
	if odds.TotalRosters == 0 {
		fmt.Fprintln(out, "  No classified rosters carry this player yet.")
		return nil
	}
	p.Fprintf(out, "  Rostered on:   %d classified rosters\n", odds.TotalRosters)
	p.Fprintf(out, "  Made playoffs: %d rosters\n", odds.PlayoffRosters)
	fmt.Fprintf(out, "  Playoff rate:  %.2f%% (baseline %.2f%%, %+.2f)\n",
		odds.PlayoffPct, baseline, odds.PlayoffPct-baseline)
	return nil
}

// isNumeric reports whether s consists solely of digits.
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
