// Package database provides SQLite-based storage for leaguecrawl.
//
// This package implements the OddsDB, which stores:
//   - League records with playoff structure and status
//   - Rosters with their tri-state playoff classification
//   - Roster membership (which players sat on which roster)
//   - The player directory for name and position lookups
//
// SQLite (via modernc.org/sqlite) keeps the whole data set in a single
// file, needs no CGO, and is fast enough for a single-writer collector.
// WAL mode gives reporting queries good read performance while a crawl
// is writing.
//
// The playoff classification is stored as a nullable integer: NULL for
// unknown (no bracket data), 0 for missed, 1 for made. Reporting queries
// filter on made_playoffs IS NOT NULL so leagues without bracket data
// never enter playoff-rate denominators.
package database
