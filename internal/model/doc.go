// Package model defines the domain types shared across leaguecrawl.
//
// The types in this package mirror the JSON payloads returned by the
// Sleeper public API (leagues, rosters, brackets, users, the player
// directory) plus the derived types produced by the database layer
// (per-player playoff odds, export reports).
//
// API payload types and derived report types live in one package because
// the collector, database, and report packages all consume both, and
// splitting them would create import cycles between those consumers.
package model
