package collector

import (
	"context"
	"testing"

	"github.com/sleeperstats/leaguecrawl/internal/model"
)

// TestLoadPlayers tests that directory entries are flattened into
// player rows with derived names and positions.
func TestLoadPlayers(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	api.directory = map[string]model.DirectoryEntry{
		"4046": {
			FirstName:        "Patrick",
			LastName:         "Mahomes",
			FantasyPositions: []string{"QB"},
			Position:         "QB",
			Team:             "KC",
		},
		"SF": {
			FirstName: "San Francisco",
			LastName:  "49ers",
			Position:  "DEF",
			Team:      "SF",
		},
	}

	store := newFakeStore()
	n, err := LoadPlayers(context.Background(), api, store, false)
	if err != nil {
		t.Fatalf("LoadPlayers() error: %v", err)
	}
	if n != 2 {
		t.Errorf("LoadPlayers() = %d, want 2", n)
	}
	if len(store.players) != 2 {
		t.Fatalf("stored players = %d, want 2", len(store.players))
	}

	byID := make(map[string]model.Player, len(store.players))
	for _, p := range store.players {
		byID[p.PlayerID] = p
	}

	qb, ok := byID["4046"]
	if !ok {
		t.Fatal("player 4046 missing")
	}
	if qb.FullName != "Patrick Mahomes" {
		t.Errorf("FullName = %q, want %q", qb.FullName, "Patrick Mahomes")
	}
	if qb.Position != "QB" {
		t.Errorf("Position = %q, want QB", qb.Position)
	}
	if qb.Team != "KC" {
		t.Errorf("Team = %q, want KC", qb.Team)
	}

	def, ok := byID["SF"]
	if !ok {
		t.Fatal("team defense SF missing")
	}
	if def.Position != "DEF" {
		t.Errorf("defense Position = %q, want DEF", def.Position)
	}
}

// TestLoadPlayersEmptyDirectory tests the degenerate empty directory.
func TestLoadPlayersEmptyDirectory(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	store := newFakeStore()

	n, err := LoadPlayers(context.Background(), api, store, true)
	if err != nil {
		t.Fatalf("LoadPlayers() error: %v", err)
	}
	if n != 0 {
		t.Errorf("LoadPlayers() = %d, want 0", n)
	}
}
