package model

import "testing"

// TestLeagueStarted tests the pre-competitive status check.
func TestLeagueStarted(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status string
		want   bool
	}{
		{name: "pre_draft has not started", status: StatusPreDraft, want: false},
		{name: "drafting has not started", status: StatusDrafting, want: false},
		{name: "in_season has started", status: StatusInSeason, want: true},
		{name: "complete has started", status: StatusComplete, want: true},
		{name: "post_season has started", status: StatusPostSeason, want: true},
		{name: "unrecognized status counts as started", status: "something_new", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l := &League{Status: tt.status}
			if got := l.Started(); got != tt.want {
				t.Errorf("Started() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestLeaguePlayoffFraction tests fraction computation including the
// divide-by-zero guard.
func TestLeaguePlayoffFraction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		totalRosters int
		playoffTeams int
		wantFraction float64
		wantOK       bool
	}{
		{name: "standard 6 of 12", totalRosters: 12, playoffTeams: 6, wantFraction: 0.5, wantOK: true},
		{name: "8 of 12 at the boundary", totalRosters: 12, playoffTeams: 8, wantFraction: 2.0 / 3.0, wantOK: true},
		{name: "zero rosters cannot be classified", totalRosters: 0, playoffTeams: 6, wantOK: false},
		{name: "negative rosters cannot be classified", totalRosters: -1, playoffTeams: 6, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l := &League{
				TotalRosters: tt.totalRosters,
				Settings:     LeagueSettings{PlayoffTeams: tt.playoffTeams},
			}
			got, ok := l.PlayoffFraction()
			if ok != tt.wantOK {
				t.Fatalf("PlayoffFraction() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.wantFraction {
				t.Errorf("PlayoffFraction() = %v, want %v", got, tt.wantFraction)
			}
		})
	}
}
