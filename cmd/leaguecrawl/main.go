// Package main provides the entry point for the leaguecrawl CLI.
//
// leaguecrawl walks the Sleeper fantasy-football social graph, collects
// league rosters and playoff results into a local SQLite database, and
// computes per-player playoff appearance rates from the sample.
//
// Usage:
//
//	leaguecrawl crawl <username>...
//	leaguecrawl odds <player name or ID>
//
// See --help for all available options.
package main

// main is the entry point for leaguecrawl.
func main() {
	Execute()
}
