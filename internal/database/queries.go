package database

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/sleeperstats/leaguecrawl/internal/model"
)

// exportPositions are the fantasy-relevant positions included in export
// queries. Depth players at other positions (long snappers, offensive
// linemen in IDP leagues) are excluded from the exported table.
var exportPositions = []string{"QB", "RB", "WR", "TE", "K", "DEF"}

// PlayerOdds returns the playoff appearance statistic for one player.
// Only rosters with a known playoff result contribute to the counts.
// A player with no classified rosters returns zero counts, not an error.
func (odb *OddsDB) PlayerOdds(ctx context.Context, playerID string) (*model.PlayerOdds, error) {
	odds := &model.PlayerOdds{PlayerID: playerID}

	var fullName, position, team sql.NullString
	err := odb.db.QueryRowContext(ctx,
		"SELECT full_name, position, team FROM players WHERE player_id = ?", playerID,
	).Scan(&fullName, &position, &team)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to look up player %s: %w", playerID, err)
	}
	odds.FullName = fullName.String
	odds.Position = position.String
	odds.Team = team.String

	query := `
	SELECT
		COUNT(*) AS total_rosters,
		COALESCE(SUM(CASE WHEN r.made_playoffs = 1 THEN 1 ELSE 0 END), 0) AS playoff_rosters
	FROM roster_players rp
	JOIN rosters r ON rp.league_id = r.league_id AND rp.roster_id = r.roster_id
	WHERE rp.player_id = ?
	  AND r.made_playoffs IS NOT NULL
	`
	if err := odb.db.QueryRowContext(ctx, query, playerID).Scan(&odds.TotalRosters, &odds.PlayoffRosters); err != nil {
		return nil, fmt.Errorf("failed to compute odds for %s: %w", playerID, err)
	}

	if odds.TotalRosters > 0 {
		odds.PlayoffPct = round2(float64(odds.PlayoffRosters) / float64(odds.TotalRosters) * 100)
	}
	return odds, nil
}

// SearchPlayers finds players by case-insensitive partial name match,
// ordered by name.
func (odb *OddsDB) SearchPlayers(ctx context.Context, query string, limit int) ([]model.Player, error) {
	rows, err := odb.db.QueryContext(ctx, `
	SELECT player_id, full_name, position, team
	FROM players
	WHERE full_name LIKE ?
	ORDER BY full_name
	LIMIT ?
	`, "%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search players: %w", err)
	}
	defer rows.Close()

	var players []model.Player
	for rows.Next() {
		var p model.Player
		var fullName, position, team sql.NullString
		if err := rows.Scan(&p.PlayerID, &fullName, &position, &team); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		p.FullName = fullName.String
		p.Position = position.String
		p.Team = team.String
		players = append(players, p)
	}
	return players, rows.Err()
}

// ExportPlayerOdds computes playoff odds for every player whose
// classified-roster count clears the sample-size threshold, ordered by
// playoff rate descending.
//
// minRosterPct is the threshold as a percentage of all classified
// rosters: at 1.0, a player must appear on at least 1% of them.
func (odb *OddsDB) ExportPlayerOdds(ctx context.Context, minRosterPct float64) ([]model.PlayerOdds, error) {
	totalRosters, err := odb.ClassifiedRosterCount(ctx)
	if err != nil {
		return nil, err
	}
	minRosters := int(float64(totalRosters) * minRosterPct / 100)

	query := `
	SELECT
		p.player_id,
		p.full_name,
		p.position,
		p.team,
		COUNT(*) AS total_rosters,
		SUM(CASE WHEN r.made_playoffs = 1 THEN 1 ELSE 0 END) AS playoff_rosters
	FROM players p
	JOIN roster_players rp ON p.player_id = rp.player_id
	JOIN rosters r ON rp.league_id = r.league_id AND rp.roster_id = r.roster_id
	WHERE r.made_playoffs IS NOT NULL
	  AND p.position IN (?, ?, ?, ?, ?, ?)
	GROUP BY p.player_id
	HAVING COUNT(*) >= ?
	ORDER BY playoff_rosters * 1.0 / COUNT(*) DESC
	`

	args := make([]any, 0, len(exportPositions)+1)
	for _, pos := range exportPositions {
		args = append(args, pos)
	}
	args = append(args, minRosters)

	rows, err := odb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to export player odds: %w", err)
	}
	defer rows.Close()

	var results []model.PlayerOdds
	for rows.Next() {
		var odds model.PlayerOdds
		var fullName, position, team sql.NullString
		if err := rows.Scan(&odds.PlayerID, &fullName, &position, &team, &odds.TotalRosters, &odds.PlayoffRosters); err != nil {
			return nil, fmt.Errorf("failed to scan odds row: %w", err)
		}
		odds.FullName = fullName.String
		if odds.FullName == "" {
			odds.FullName = odds.PlayerID
		}
		odds.Position = position.String
		odds.Team = team.String
		if odds.Team == "" {
			odds.Team = "FA"
		}
		if odds.TotalRosters > 0 {
			odds.PlayoffPct = round2(float64(odds.PlayoffRosters) / float64(odds.TotalRosters) * 100)
		}
		if totalRosters > 0 {
			odds.OwnershipPct = round1(float64(odds.TotalRosters) / float64(totalRosters) * 100)
		}
		results = append(results, odds)
	}
	return results, rows.Err()
}

// BaselinePlayoffRate returns the overall playoff rate across all
// classified rosters as a percentage. This is the number player-specific
// rates should be compared against: a roster picked at random makes the
// playoffs this often.
func (odb *OddsDB) BaselinePlayoffRate(ctx context.Context) (float64, error) {
	query := `
	SELECT COALESCE(SUM(CASE WHEN made_playoffs = 1 THEN 1 ELSE 0 END) * 100.0 / COUNT(*), 0)
	FROM rosters WHERE made_playoffs IS NOT NULL
	`

	var rate float64
	err := odb.db.QueryRowContext(ctx, query).Scan(&rate)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to compute baseline rate: %w", err)
	}
	return round2(rate), nil
}

// Stats returns the summary counts for reporting.
func (odb *OddsDB) Stats(ctx context.Context) (model.Stats, error) {
	leagues, err := odb.LeagueCount(ctx)
	if err != nil {
		return model.Stats{}, err
	}
	rosters, err := odb.ClassifiedRosterCount(ctx)
	if err != nil {
		return model.Stats{}, err
	}
	return model.Stats{Leagues: leagues, ClassifiedRosters: rosters}, nil
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
