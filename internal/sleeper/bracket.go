package sleeper

import "github.com/sleeperstats/leaguecrawl/internal/model"

// ExtractPlayoffRosterIDs returns the set of roster IDs appearing
// anywhere in a winners bracket. Appearing in any matchup slot, in any
// round, means the roster made the playoffs.
//
// An empty or nil bracket yields an empty set. Callers must treat that
// as "no bracket data" (qualification unknown for every roster), not as
// "nobody qualified".
func ExtractPlayoffRosterIDs(bracket []model.Matchup) map[int]struct{} {
	ids := make(map[int]struct{})
	for _, m := range bracket {
		if m.Team1 != nil {
			ids[*m.Team1] = struct{}{}
		}
		if m.Team2 != nil {
			ids[*m.Team2] = struct{}{}
		}
	}
	return ids
}
