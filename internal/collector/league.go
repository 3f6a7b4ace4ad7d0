package collector

import (
	"context"
	"strconv"

	"github.com/sleeperstats/leaguecrawl/internal/model"
	"github.com/sleeperstats/leaguecrawl/internal/sleeper"
)

// maxPlayoffFraction is the largest acceptable share of rosters reaching
// the playoffs. Leagues sending more than two thirds of their teams to
// the playoffs have unusual settings that would skew the playoff-rate
// statistic, so they are filtered out.
const maxPlayoffFraction = 2.0 / 3.0

// processLeague fetches, filters, and persists a single league.
//
// Each step is a hard gate: the first failing gate aborts with
// processed=false and nothing before the league upsert is written. A
// business-rule rejection (not started, playoff fraction out of bounds,
// no rosters) is not an error; storage failures and rate-limit aborts
// propagate as errors.
//
// Once the league row is upserted the league counts as processed and is
// never re-fetched in skip-existing mode, even when it contributed no
// roster rows.
func (c *Crawler) processLeague(ctx context.Context, leagueID string) (processed bool, err error) {
	league, err := c.api.League(ctx, leagueID)
	if err != nil {
		return false, err
	}
	if league == nil {
		return false, nil
	}

	if !league.Started() {
		return false, nil
	}

	if fraction, ok := league.PlayoffFraction(); ok && fraction > maxPlayoffFraction {
		return false, nil
	}

	// Processed marker: from here on the league is committed regardless
	// of what the roster and bracket fetches yield.
	league.Season = strconv.Itoa(c.season)
	if err := c.store.UpsertLeague(ctx, league); err != nil {
		return false, err
	}

	rosters, err := c.api.LeagueRosters(ctx, leagueID)
	if err != nil {
		return false, err
	}
	if len(rosters) == 0 {
		// The league stays marked processed but contributes no rosters
		// and does not count toward the target.
		return false, nil
	}

	bracket, err := c.api.WinnersBracket(ctx, leagueID)
	if err != nil {
		return false, err
	}
	qualifiers := sleeper.ExtractPlayoffRosterIDs(bracket)

	for _, roster := range rosters {
		if roster.RosterID == 0 {
			continue
		}

		// Tri-state classification: membership in the qualifier set only
		// means anything when a bracket existed at all.
		result := model.PlayoffUnknown
		if len(qualifiers) > 0 {
			if _, made := qualifiers[roster.RosterID]; made {
				result = model.PlayoffMade
			} else {
				result = model.PlayoffMissed
			}
		}

		rec := model.RosterRecord{
			LeagueID: leagueID,
			RosterID: roster.RosterID,
			OwnerID:  roster.OwnerID,
			Playoffs: result,
		}
		if err := c.store.UpsertRoster(ctx, rec); err != nil {
			return false, err
		}
		if err := c.store.InsertRosterPlayers(ctx, leagueID, roster.RosterID, roster.Players); err != nil {
			return false, err
		}
	}

	return true, nil
}
