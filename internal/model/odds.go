package model

// PlayerOdds is the per-player playoff appearance statistic computed
// from the collected rosters.
//
// Only rosters with a known playoff classification contribute to the
// counts; rosters from leagues without bracket data are excluded from
// both numerator and denominator.
type PlayerOdds struct {
	// PlayerID identifies the player.
	PlayerID string `json:"player_id"`

	// FullName is the player's display name, empty when the player
	// directory has not been loaded.
	FullName string `json:"name"`

	// Position is the player's primary fantasy position.
	Position string `json:"position"`

	// Team is the player's NFL team code, empty for free agents.
	Team string `json:"team"`

	// TotalRosters is the number of classified rosters carrying the player.
	TotalRosters int `json:"total_rosters"`

	// PlayoffRosters is how many of those rosters made the playoffs.
	PlayoffRosters int `json:"playoff_rosters"`

	// PlayoffPct is PlayoffRosters over TotalRosters as a percentage,
	// rounded to two decimals.
	PlayoffPct float64 `json:"playoff_pct"`

	// OwnershipPct is TotalRosters over all classified rosters as a
	// percentage, rounded to one decimal. Only populated by export
	// queries, where the denominator is known.
	OwnershipPct float64 `json:"ownership_pct,omitempty"`
}

// Stats summarizes the collected data set.
type Stats struct {
	// Leagues is the number of leagues in the database.
	Leagues int `json:"leagues"`

	// ClassifiedRosters is the number of rosters with a known playoff
	// result.
	ClassifiedRosters int `json:"rosters"`
}

// OddsReport is the exportable aggregate: overall stats, the baseline
// playoff rate across all classified rosters, and the per-player odds
// that survived the sample-size threshold.
type OddsReport struct {
	Stats        Stats        `json:"stats"`
	BaselineRate float64      `json:"baseline_rate"`
	Players      []PlayerOdds `json:"players"`
}
