package model

// PlayoffResult is the tri-state playoff classification of a roster.
//
// Unknown is distinct from Missed: a league whose bracket endpoint
// returned no data gives every roster an Unknown result, which excludes
// those rosters from playoff-rate denominators. Missed means the bracket
// existed and the roster was not in it.
type PlayoffResult int

const (
	// PlayoffUnknown means no bracket data was available for the league.
	PlayoffUnknown PlayoffResult = iota

	// PlayoffMissed means the league had a bracket and the roster did not appear in it.
	PlayoffMissed

	// PlayoffMade means the roster appeared in the league's winners bracket.
	PlayoffMade
)

// String returns a human-readable name for the result.
func (p PlayoffResult) String() string {
	switch p {
	case PlayoffMade:
		return "made"
	case PlayoffMissed:
		return "missed"
	default:
		return "unknown"
	}
}

// Known reports whether the result carries bracket information.
func (p PlayoffResult) Known() bool {
	return p != PlayoffUnknown
}

// Roster represents one team within a league as returned by the
// /league/{id}/rosters endpoint.
type Roster struct {
	// RosterID identifies the roster within its league. IDs are only
	// unique per league; the composite (league_id, roster_id) is the
	// real identity.
	RosterID int `json:"roster_id"`

	// OwnerID is the user ID of the roster's owner. May be empty for
	// orphaned rosters.
	OwnerID string `json:"owner_id"`

	// Players lists the player IDs currently on the roster.
	Players []string `json:"players"`
}

// RosterRecord is a roster as persisted, carrying its league association
// and playoff classification.
type RosterRecord struct {
	LeagueID string
	RosterID int
	OwnerID  string
	Playoffs PlayoffResult
}
