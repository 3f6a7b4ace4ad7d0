package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/sleeperstats/leaguecrawl/internal/model"
)

// dbFileName is the SQLite database file name inside the data directory.
const dbFileName = "leaguecrawl.db"

// OddsDB provides SQLite-based storage for collected league, roster, and
// player data. It manages connection pooling and provides methods for
// the CRUD operations the collector needs plus the aggregate queries
// used by reporting.
type OddsDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures OddsDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging so reporting reads don't
	// block collector writes.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates an OddsDB at the specified directory.
// If CreateIfNotExists is true, the directory and database file are
// created; otherwise a missing database is an error.
func Open(dbDir string, opts Options) (*OddsDB, error) {
	dbPath := filepath.Join(dbDir, dbFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection strings: mode=rw prevents creating
	// new files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; a single connection keeps the
	// collector's write path serialized.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	odb := &OddsDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := odb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return odb, nil
}

// Close closes the database connection.
func (odb *OddsDB) Close() error {
	return odb.db.Close()
}

// Path returns the path of the database file.
func (odb *OddsDB) Path() string {
	return odb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (odb *OddsDB) createTables() error {
	schema := `
	-- Leagues, one row per collected league. Presence of a row is the
	-- "processed" marker the collector checks before re-fetching.
	CREATE TABLE IF NOT EXISTS leagues (
		league_id TEXT PRIMARY KEY,
		season TEXT NOT NULL,
		name TEXT,
		total_rosters INTEGER,
		playoff_teams INTEGER,
		status TEXT
	);

	-- Rosters, composite identity (league_id, roster_id).
	-- made_playoffs is NULL (unknown), 0 (missed), or 1 (made).
	CREATE TABLE IF NOT EXISTS rosters (
		league_id TEXT NOT NULL,
		roster_id INTEGER NOT NULL,
		owner_id TEXT,
		made_playoffs INTEGER,
		PRIMARY KEY (league_id, roster_id),
		FOREIGN KEY (league_id) REFERENCES leagues(league_id)
	);

	-- Roster membership triples, insert-if-absent, never updated.
	CREATE TABLE IF NOT EXISTS roster_players (
		league_id TEXT NOT NULL,
		roster_id INTEGER NOT NULL,
		player_id TEXT NOT NULL,
		PRIMARY KEY (league_id, roster_id, player_id),
		FOREIGN KEY (league_id, roster_id) REFERENCES rosters(league_id, roster_id)
	);

	-- Player directory for name/position lookups.
	CREATE TABLE IF NOT EXISTS players (
		player_id TEXT PRIMARY KEY,
		full_name TEXT,
		position TEXT,
		team TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_roster_players_player ON roster_players(player_id);
	CREATE INDEX IF NOT EXISTS idx_rosters_made_playoffs ON rosters(made_playoffs);
	`

	_, err := odb.db.ExecContext(context.Background(), schema)
	return err
}

// playoffToNull maps the tri-state classification to its stored form.
func playoffToNull(p model.PlayoffResult) sql.NullInt64 {
	switch p {
	case model.PlayoffMade:
		return sql.NullInt64{Int64: 1, Valid: true}
	case model.PlayoffMissed:
		return sql.NullInt64{Int64: 0, Valid: true}
	default:
		return sql.NullInt64{}
	}
}

// UpsertLeague inserts or replaces a league record. Latest write wins.
func (odb *OddsDB) UpsertLeague(ctx context.Context, league *model.League) error {
	query := `
	INSERT INTO leagues (league_id, season, name, total_rosters, playoff_teams, status)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(league_id) DO UPDATE SET
		season = excluded.season,
		name = excluded.name,
		total_rosters = excluded.total_rosters,
		playoff_teams = excluded.playoff_teams,
		status = excluded.status
	`

	_, err := odb.db.ExecContext(ctx, query,
		league.LeagueID,
		league.Season,
		league.Name,
		league.TotalRosters,
		league.Settings.PlayoffTeams,
		league.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert league %s: %w", league.LeagueID, err)
	}
	return nil
}

// UpsertRoster inserts or replaces a roster record.
func (odb *OddsDB) UpsertRoster(ctx context.Context, rec model.RosterRecord) error {
	query := `
	INSERT INTO rosters (league_id, roster_id, owner_id, made_playoffs)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(league_id, roster_id) DO UPDATE SET
		owner_id = excluded.owner_id,
		made_playoffs = excluded.made_playoffs
	`

	_, err := odb.db.ExecContext(ctx, query,
		rec.LeagueID,
		rec.RosterID,
		rec.OwnerID,
		playoffToNull(rec.Playoffs),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert roster %s/%d: %w", rec.LeagueID, rec.RosterID, err)
	}
	return nil
}

// InsertRosterPlayers records which players sat on a roster.
// Duplicate triples are ignored, so reprocessing a league never doubles
// membership rows.
func (odb *OddsDB) InsertRosterPlayers(ctx context.Context, leagueID string, rosterID int, playerIDs []string) error {
	if len(playerIDs) == 0 {
		return nil
	}

	tx, err := odb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback after commit is a no-op

	stmt, err := tx.PrepareContext(ctx, `
	INSERT OR IGNORE INTO roster_players (league_id, roster_id, player_id)
	VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, playerID := range playerIDs {
		if _, err := stmt.ExecContext(ctx, leagueID, rosterID, playerID); err != nil {
			return fmt.Errorf("failed to insert roster player %s: %w", playerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit roster players: %w", err)
	}
	return nil
}

// BulkUpsertPlayers inserts or replaces player directory records in a
// single transaction.
func (odb *OddsDB) BulkUpsertPlayers(ctx context.Context, players []model.Player) error {
	tx, err := odb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback after commit is a no-op

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO players (player_id, full_name, position, team)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(player_id) DO UPDATE SET
		full_name = excluded.full_name,
		position = excluded.position,
		team = excluded.team
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, p := range players {
		if _, err := stmt.ExecContext(ctx, p.PlayerID, p.FullName, p.Position, p.Team); err != nil {
			return fmt.Errorf("failed to upsert player %s: %w", p.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit players: %w", err)
	}
	return nil
}

// LeagueExists reports whether a league has already been processed.
func (odb *OddsDB) LeagueExists(ctx context.Context, leagueID string) (bool, error) {
	var one int
	err := odb.db.QueryRowContext(ctx, "SELECT 1 FROM leagues WHERE league_id = ?", leagueID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check league %s: %w", leagueID, err)
	}
	return true, nil
}

// LeagueCount returns the number of leagues in the database.
func (odb *OddsDB) LeagueCount(ctx context.Context) (int, error) {
	var count int
	if err := odb.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM leagues").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count leagues: %w", err)
	}
	return count, nil
}

// ClassifiedRosterCount returns the number of rosters with a known
// playoff result.
func (odb *OddsDB) ClassifiedRosterCount(ctx context.Context) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM rosters WHERE made_playoffs IS NOT NULL"
	if err := odb.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rosters: %w", err)
	}
	return count, nil
}
