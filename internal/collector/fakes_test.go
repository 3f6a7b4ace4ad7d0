package collector

import (
	"context"
	"fmt"

	"github.com/sleeperstats/leaguecrawl/internal/model"
)

// fakeAPI is an in-memory API implementation backed by fixture maps.
// Missing keys behave like the real client's degraded responses: absent
// entities are nil, absent lists are empty.
type fakeAPI struct {
	users       map[string]*model.User
	userLeagues map[string][]model.League
	leagues     map[string]*model.League
	leagueUsers map[string][]model.User
	rosters     map[string][]model.Roster
	brackets    map[string][]model.Matchup
	directory   map[string]model.DirectoryEntry

	// userLeagueCalls and leagueCalls record lookups for assertions.
	userLeagueCalls []string
	leagueCalls     []string

	// userLeaguesErr, when set, is returned by every UserLeagues call,
	// simulating a fatal condition such as a rate limit.
	userLeaguesErr error

	// onUserLeagues, when set, runs after each UserLeagues lookup is
	// recorded, letting tests observe mid-run state.
	onUserLeagues func(userID string)
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		users:       make(map[string]*model.User),
		userLeagues: make(map[string][]model.League),
		leagues:     make(map[string]*model.League),
		leagueUsers: make(map[string][]model.User),
		rosters:     make(map[string][]model.Roster),
		brackets:    make(map[string][]model.Matchup),
		directory:   make(map[string]model.DirectoryEntry),
	}
}

func (f *fakeAPI) User(_ context.Context, username string) (*model.User, error) {
	return f.users[username], nil
}

func (f *fakeAPI) UserLeagues(_ context.Context, userID string, _ int) ([]model.League, error) {
	if f.userLeaguesErr != nil {
		return nil, f.userLeaguesErr
	}
	f.userLeagueCalls = append(f.userLeagueCalls, userID)
	if f.onUserLeagues != nil {
		f.onUserLeagues(userID)
	}
	return f.userLeagues[userID], nil
}

func (f *fakeAPI) League(_ context.Context, leagueID string) (*model.League, error) {
	f.leagueCalls = append(f.leagueCalls, leagueID)
	if league, ok := f.leagues[leagueID]; ok {
		cp := *league
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeAPI) LeagueUsers(_ context.Context, leagueID string) ([]model.User, error) {
	return f.leagueUsers[leagueID], nil
}

func (f *fakeAPI) LeagueRosters(_ context.Context, leagueID string) ([]model.Roster, error) {
	return f.rosters[leagueID], nil
}

func (f *fakeAPI) WinnersBracket(_ context.Context, leagueID string) ([]model.Matchup, error) {
	return f.brackets[leagueID], nil
}

func (f *fakeAPI) AllPlayers(_ context.Context, _ bool) (map[string]model.DirectoryEntry, error) {
	return f.directory, nil
}

// addLeague installs a processable league fixture: nfl, in season,
// standard 6-of-12 playoff structure, one roster, no bracket.
func (f *fakeAPI) addLeague(id string, memberIDs ...string) {
	f.leagues[id] = &model.League{
		LeagueID:     id,
		Name:         "League " + id,
		Sport:        model.SportNFL,
		Season:       "2025",
		Status:       model.StatusInSeason,
		TotalRosters: 12,
		Settings:     model.LeagueSettings{PlayoffTeams: 6},
	}
	f.rosters[id] = []model.Roster{{RosterID: 1, OwnerID: "owner-" + id, Players: []string{"p1"}}}
	users := make([]model.User, 0, len(memberIDs))
	for _, uid := range memberIDs {
		users = append(users, model.User{UserID: uid})
	}
	f.leagueUsers[id] = users
}

// fakeStore is an in-memory Storage implementation.
type fakeStore struct {
	leagues       map[string]*model.League
	leagueUpserts map[string]int
	rosters       map[string]model.RosterRecord
	members       map[string]map[string]struct{}
	players       []model.Player
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		leagues:       make(map[string]*model.League),
		leagueUpserts: make(map[string]int),
		rosters:       make(map[string]model.RosterRecord),
		members:       make(map[string]map[string]struct{}),
	}
}

func rosterKey(leagueID string, rosterID int) string {
	return fmt.Sprintf("%s/%d", leagueID, rosterID)
}

func (s *fakeStore) UpsertLeague(_ context.Context, league *model.League) error {
	cp := *league
	s.leagues[league.LeagueID] = &cp
	s.leagueUpserts[league.LeagueID]++
	return nil
}

func (s *fakeStore) UpsertRoster(_ context.Context, rec model.RosterRecord) error {
	s.rosters[rosterKey(rec.LeagueID, rec.RosterID)] = rec
	return nil
}

func (s *fakeStore) InsertRosterPlayers(_ context.Context, leagueID string, rosterID int, playerIDs []string) error {
	key := rosterKey(leagueID, rosterID)
	if s.members[key] == nil {
		s.members[key] = make(map[string]struct{})
	}
	for _, pid := range playerIDs {
		s.members[key][pid] = struct{}{}
	}
	return nil
}

func (s *fakeStore) BulkUpsertPlayers(_ context.Context, players []model.Player) error {
	s.players = append(s.players[:0], players...)
	return nil
}

func (s *fakeStore) LeagueExists(_ context.Context, leagueID string) (bool, error) {
	_, ok := s.leagues[leagueID]
	return ok, nil
}

var _ API = (*fakeAPI)(nil)
var _ Storage = (*fakeStore)(nil)
