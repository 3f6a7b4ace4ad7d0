package model

// League statuses reported by the Sleeper API.
// A league in pre_draft or drafting has not started competing yet and
// carries no playoff information worth collecting.
const (
	StatusPreDraft   = "pre_draft"
	StatusDrafting   = "drafting"
	StatusInSeason   = "in_season"
	StatusComplete   = "complete"
	StatusPostSeason = "post_season"
)

// SportNFL is the only sport the collector processes.
const SportNFL = "nfl"

// LeagueSettings holds the subset of league settings the collector reads.
// The API returns dozens of settings keys; only the playoff structure
// matters for classification.
type LeagueSettings struct {
	// PlayoffTeams is the number of roster slots in the playoff bracket.
	PlayoffTeams int `json:"playoff_teams"`
}

// League represents a single fantasy league as returned by the
// /league/{id} endpoint. The same shape (minus settings detail) is
// returned by the per-user league listing, so one type serves both.
type League struct {
	// LeagueID uniquely identifies the league.
	LeagueID string `json:"league_id"`

	// Name is the league's display name chosen by its commissioner.
	Name string `json:"name"`

	// Sport is the sport code, e.g. "nfl".
	Sport string `json:"sport"`

	// Season is the season year as a string, e.g. "2025".
	Season string `json:"season"`

	// Status is one of the Status* constants.
	Status string `json:"status"`

	// TotalRosters is the number of rosters in the league.
	TotalRosters int `json:"total_rosters"`

	// Settings holds the playoff structure settings.
	Settings LeagueSettings `json:"settings"`
}

// Started reports whether the league has progressed past its draft.
// Leagues that have not started carry no roster or bracket data.
func (l *League) Started() bool {
	return l.Status != StatusPreDraft && l.Status != StatusDrafting
}

// PlayoffFraction returns the share of rosters that reach the playoffs.
// When TotalRosters is zero or negative the fraction cannot be computed
// and ok is false; callers must skip fraction-based filtering in that case.
func (l *League) PlayoffFraction() (fraction float64, ok bool) {
	if l.TotalRosters <= 0 {
		return 0, false
	}
	return float64(l.Settings.PlayoffTeams) / float64(l.TotalRosters), true
}
