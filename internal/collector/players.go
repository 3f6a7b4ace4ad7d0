package collector

import (
	"context"

	"github.com/sleeperstats/leaguecrawl/internal/model"
)

// LoadPlayers imports the full player directory into storage and
// returns the number of players loaded.
//
// The directory fetch is served from the on-disk cache unless force is
// true. The transform is pure: derive a display name and a primary
// position per entry, then bulk-upsert.
func LoadPlayers(ctx context.Context, api API, store Storage, force bool) (int, error) {
	directory, err := api.AllPlayers(ctx, force)
	if err != nil {
		return 0, err
	}

	players := make([]model.Player, 0, len(directory))
	for playerID, entry := range directory {
		players = append(players, model.Player{
			PlayerID: playerID,
			FullName: entry.FullName(),
			Position: entry.PrimaryPosition(),
			Team:     entry.Team,
		})
	}

	if err := store.BulkUpsertPlayers(ctx, players); err != nil {
		return 0, err
	}
	return len(players), nil
}
