package model

// Matchup is one pairing in a league's winners (playoff) bracket as
// returned by the /league/{id}/winners_bracket endpoint.
//
// Team slots are pointers because early bracket rounds publish matchups
// before both participants are decided; an unset slot is null in the
// JSON payload.
type Matchup struct {
	// Round is the playoff round number, starting at 1.
	Round int `json:"r"`

	// MatchupID identifies the matchup within the bracket.
	MatchupID int `json:"m"`

	// Team1 is the roster ID in the first slot, if decided.
	Team1 *int `json:"t1"`

	// Team2 is the roster ID in the second slot, if decided.
	Team2 *int `json:"t2"`

	// Winner is the roster ID of the winner, once the matchup resolves.
	Winner *int `json:"w"`

	// Loser is the roster ID of the loser, once the matchup resolves.
	Loser *int `json:"l"`
}
