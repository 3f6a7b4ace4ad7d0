package model

import "strings"

// DirectoryEntry is one entry of the full player directory returned by
// the /players/nfl endpoint, keyed by player ID. The payload carries many
// more fields; only the ones used to build Player records are decoded.
type DirectoryEntry struct {
	// FirstName and LastName form the display name. Either may be blank,
	// notably for team defenses.
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	// FantasyPositions lists the fantasy-relevant positions, primary first.
	FantasyPositions []string `json:"fantasy_positions"`

	// Position is the single listed position, used when FantasyPositions
	// is absent.
	Position string `json:"position"`

	// Team is the current NFL team code, empty for free agents.
	Team string `json:"team"`
}

// FullName derives the display name from first and last name, trimmed.
// Returns the empty string when both parts are blank.
func (e *DirectoryEntry) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// PrimaryPosition returns the first fantasy position, falling back to the
// single position field when the list is empty.
func (e *DirectoryEntry) PrimaryPosition() string {
	if len(e.FantasyPositions) > 0 {
		return e.FantasyPositions[0]
	}
	return e.Position
}

// Player is a player record as persisted in the players table.
type Player struct {
	PlayerID string
	FullName string
	Position string
	Team     string
}
