package collector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"testing"

	"github.com/sleeperstats/leaguecrawl/internal/model"
	"github.com/sleeperstats/leaguecrawl/internal/sleeper"
)

// newTestCrawler wires a Crawler with deterministic traversal and
// silenced progress output.
func newTestCrawler(t *testing.T, api API, store Storage, state *StateStore, opts ...CrawlerOption) *Crawler {
	t.Helper()

	base := []CrawlerOption{
		WithShuffle(false),
		WithOutput(io.Discard),
	}
	return NewCrawler(api, store, state, append(base, opts...)...)
}

func tempState(t *testing.T) *StateStore {
	t.Helper()
	return NewStateStore(filepath.Join(t.TempDir(), "crawl_state.json"))
}

// seedUser installs a resolvable seed username.
func seedUser(api *fakeAPI, username, userID string) {
	api.users[username] = &model.User{UserID: userID, Username: username}
}

// leaguesOf returns copies of installed league fixtures, as the real
// client would return them from the user-leagues listing.
func leaguesOf(t *testing.T, api *fakeAPI, ids ...string) []model.League {
	t.Helper()

	leagues := make([]model.League, 0, len(ids))
	for _, id := range ids {
		league, ok := api.leagues[id]
		if !ok {
			t.Fatalf("league fixture %s not installed", id)
		}
		leagues = append(leagues, *league)
	}
	return leagues
}

func intPtr(n int) *int { return &n }

// TestCrawlerSeedResolution tests that seeds are resolved only when no
// checkpoint frontier exists, and unknown seed usernames are skipped.
func TestCrawlerSeedResolution(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	seedUser(api, "alice", "u1")
	api.addLeague("l1")
	api.userLeagues["u1"] = leaguesOf(t, api, "l1")

	store := newFakeStore()
	state := tempState(t)
	c := newTestCrawler(t, api, store, state)

	processed, err := c.Run(context.Background(), []string{"alice", "nosuchuser"})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if processed != 1 {
		t.Errorf("Run() processed = %d, want 1", processed)
	}

	visited, _, err := state.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if _, ok := visited["u1"]; !ok {
		t.Error("u1 should be visited")
	}
	if len(visited) != 1 {
		t.Errorf("visited = %v, want only u1", visited)
	}
}

// TestCrawlerVisitedNodeIsNoOp tests that popping an already-visited
// node issues no fetch and grows nothing.
func TestCrawlerVisitedNodeIsNoOp(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	store := newFakeStore()
	state := tempState(t)

	// Checkpoint with u2 both visited and still pending.
	if err := state.Save(map[string]struct{}{"u2": {}}, []string{"u2"}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	c := newTestCrawler(t, api, store, state)
	processed, err := c.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if processed != 0 {
		t.Errorf("processed = %d, want 0", processed)
	}
	if len(api.userLeagueCalls) != 0 {
		t.Errorf("league list fetches = %v, want none", api.userLeagueCalls)
	}

	visited, queue, err := state.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(visited) != 1 {
		t.Errorf("visited cardinality = %d, want 1", len(visited))
	}
	if len(queue) != 0 {
		t.Errorf("queue = %v, want drained", queue)
	}
}

// TestCrawlerPerUserLeagueCap tests that at most the capped number of
// leagues is processed per user, while members of every processed
// league are still enqueued.
func TestCrawlerPerUserLeagueCap(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	seedUser(api, "alice", "u1")

	ids := make([]string, 0, 10)
	for i := 1; i <= 10; i++ {
		id := fmt.Sprintf("l%d", i)
		api.addLeague(id, fmt.Sprintf("m%d", i))
		ids = append(ids, id)
	}
	api.userLeagues["u1"] = leaguesOf(t, api, ids...)

	store := newFakeStore()
	state := tempState(t)
	c := newTestCrawler(t, api, store, state,
		WithMaxLeaguesPerUser(5),
		WithTarget(100),
	)

	processed, err := c.Run(context.Background(), []string{"alice"})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if processed != 5 {
		t.Errorf("processed = %d, want 5", processed)
	}
	if len(store.leagues) != 5 {
		t.Errorf("stored leagues = %d, want 5", len(store.leagues))
	}

	// Members of the five processed leagues were discovered and later
	// visited themselves, so they end up in the visited set. Members of
	// the capped-off leagues were never seen.
	visited, _, err := state.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	for i := 1; i <= 5; i++ {
		if _, ok := visited[fmt.Sprintf("m%d", i)]; !ok {
			t.Errorf("member m%d of processed league was never enqueued", i)
		}
	}
	for i := 6; i <= 10; i++ {
		if _, ok := visited[fmt.Sprintf("m%d", i)]; ok {
			t.Errorf("member m%d of unprocessed league should not be known", i)
		}
	}
}

// TestCrawlerGlobalTarget tests the processed-league stopping condition.
func TestCrawlerGlobalTarget(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	seedUser(api, "alice", "u1")
	for i := 1; i <= 4; i++ {
		api.addLeague(fmt.Sprintf("l%d", i))
	}
	api.userLeagues["u1"] = leaguesOf(t, api, "l1", "l2", "l3", "l4")

	store := newFakeStore()
	c := newTestCrawler(t, api, store, tempState(t),
		WithTarget(2),
		WithMaxLeaguesPerUser(10),
	)

	processed, err := c.Run(context.Background(), []string{"alice"})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if processed != 2 {
		t.Errorf("processed = %d, want 2", processed)
	}
}

// TestCrawlerSkipExisting tests that already-stored leagues are not
// reprocessed but still contribute graph edges.
func TestCrawlerSkipExisting(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	seedUser(api, "alice", "u1")
	api.addLeague("known", "u9")
	api.userLeagues["u1"] = leaguesOf(t, api, "known")

	store := newFakeStore()
	// The league is already in the database from a previous run.
	if err := store.UpsertLeague(context.Background(), api.leagues["known"]); err != nil {
		t.Fatalf("UpsertLeague() error: %v", err)
	}
	delete(store.leagueUpserts, "known")

	state := tempState(t)
	c := newTestCrawler(t, api, store, state)

	processed, err := c.Run(context.Background(), []string{"alice"})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if processed != 0 {
		t.Errorf("processed = %d, want 0", processed)
	}
	if len(api.leagueCalls) != 0 {
		t.Errorf("league detail fetches = %v, want none", api.leagueCalls)
	}
	if store.leagueUpserts["known"] != 0 {
		t.Error("existing league should not be rewritten")
	}

	// u9 was discovered through the existing league and visited.
	visited, _, err := state.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if _, ok := visited["u9"]; !ok {
		t.Error("member of existing league should still be enqueued")
	}
}

// TestCrawlerForceReprocessIdempotent tests that reprocessing a league
// with skip-existing disabled neither duplicates membership rows nor
// flips classifications.
func TestCrawlerForceReprocessIdempotent(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	seedUser(api, "alice", "u1")
	api.addLeague("l1")
	api.rosters["l1"] = []model.Roster{
		{RosterID: 1, OwnerID: "o1", Players: []string{"p1", "p2"}},
		{RosterID: 2, OwnerID: "o2", Players: []string{"p3"}},
	}
	api.brackets["l1"] = []model.Matchup{{Round: 1, MatchupID: 1, Team1: intPtr(1)}}
	api.userLeagues["u1"] = leaguesOf(t, api, "l1")

	store := newFakeStore()

	run := func(state *StateStore) {
		t.Helper()
		c := newTestCrawler(t, api, store, state, WithSkipExisting(false))
		if _, err := c.Run(context.Background(), []string{"alice"}); err != nil {
			t.Fatalf("Run() error: %v", err)
		}
	}

	run(tempState(t))
	firstRosters := len(store.rosters)
	firstMembers := len(store.members[rosterKey("l1", 1)])
	firstResult := store.rosters[rosterKey("l1", 1)].Playoffs

	run(tempState(t))
	if len(store.rosters) != firstRosters {
		t.Errorf("roster rows = %d after reprocess, want %d", len(store.rosters), firstRosters)
	}
	if got := len(store.members[rosterKey("l1", 1)]); got != firstMembers {
		t.Errorf("membership rows = %d after reprocess, want %d", got, firstMembers)
	}
	if got := store.rosters[rosterKey("l1", 1)].Playoffs; got != firstResult {
		t.Errorf("classification changed on reprocess: %v -> %v", firstResult, got)
	}
}

// TestCrawlerResumeMatchesUninterrupted tests that a checkpoint-split
// crawl covers the same node set as one uninterrupted run, with no
// league processed twice.
func TestCrawlerResumeMatchesUninterrupted(t *testing.T) {
	t.Parallel()

	// Chain graph: u1 -(A)-> u2 -(B)-> u3 -(C).
	buildAPI := func(t *testing.T) *fakeAPI {
		t.Helper()
		api := newFakeAPI()
		seedUser(api, "alice", "u1")
		api.addLeague("A", "u1", "u2")
		api.addLeague("B", "u2", "u3")
		api.addLeague("C", "u3")
		api.userLeagues["u1"] = leaguesOf(t, api, "A")
		api.userLeagues["u2"] = leaguesOf(t, api, "B")
		api.userLeagues["u3"] = leaguesOf(t, api, "C")
		return api
	}

	// Uninterrupted reference run.
	refStore := newFakeStore()
	refState := tempState(t)
	ref := newTestCrawler(t, buildAPI(t), refStore, refState)
	if _, err := ref.Run(context.Background(), []string{"alice"}); err != nil {
		t.Fatalf("reference Run() error: %v", err)
	}
	refVisited, _, err := refState.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// Interrupted run: the visit ceiling stops the first session after
	// one user; the second session resumes from the checkpoint. Its
	// seeds differ on purpose - a saved frontier overrides seeds.
	store := newFakeStore()
	state := tempState(t)

	first := newTestCrawler(t, buildAPI(t), store, state, WithMaxUsers(1))
	if _, err := first.Run(context.Background(), []string{"alice"}); err != nil {
		t.Fatalf("first Run() error: %v", err)
	}

	second := newTestCrawler(t, buildAPI(t), store, state)
	if _, err := second.Run(context.Background(), []string{"differentseed"}); err != nil {
		t.Fatalf("second Run() error: %v", err)
	}

	visited, _, err := state.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(visited) != len(refVisited) {
		t.Errorf("split run visited %d users, reference visited %d", len(visited), len(refVisited))
	}
	for id := range refVisited {
		if _, ok := visited[id]; !ok {
			t.Errorf("split run never visited %s", id)
		}
	}

	// No league was stored twice across the two sessions.
	for id, n := range store.leagueUpserts {
		if n != 1 {
			t.Errorf("league %s upserted %d times, want 1", id, n)
		}
	}
}

// TestCrawlerPeriodicCheckpoint tests that traversal state is saved
// every ten visited users, not only on exit, so an interruption loses
// at most ten users of progress.
func TestCrawlerPeriodicCheckpoint(t *testing.T) {
	t.Parallel()

	// Chain graph: each user's single league contains the next user.
	api := newFakeAPI()
	seedUser(api, "alice", "u01")
	for i := 1; i < 20; i++ {
		id := fmt.Sprintf("l%02d", i)
		api.addLeague(id, fmt.Sprintf("u%02d", i+1))
		api.userLeagues[fmt.Sprintf("u%02d", i)] = leaguesOf(t, api, id)
	}

	state := tempState(t)

	// Snapshot the checkpoint file from inside the twelfth user's league
	// fetch, while the run is still going.
	var midRunVisited map[string]struct{}
	api.onUserLeagues = func(string) {
		if len(api.userLeagueCalls) != 12 {
			return
		}
		visited, _, err := state.Load()
		if err != nil {
			t.Errorf("Load() during run: %v", err)
			return
		}
		midRunVisited = visited
	}

	c := newTestCrawler(t, api, newFakeStore(), state)
	if _, err := c.Run(context.Background(), []string{"alice"}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if midRunVisited == nil {
		t.Fatal("mid-run snapshot never taken")
	}
	if len(midRunVisited) != 10 {
		t.Fatalf("checkpoint held %d visited ids mid-run, want the first 10", len(midRunVisited))
	}
	for i := 1; i <= 10; i++ {
		id := fmt.Sprintf("u%02d", i)
		if _, ok := midRunVisited[id]; !ok {
			t.Errorf("checkpoint missing %s after the tenth visit", id)
		}
	}
}

// TestCrawlerRateLimitIsFatal tests that a rate-limit error aborts the
// run while still checkpointing final state.
func TestCrawlerRateLimitIsFatal(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	seedUser(api, "alice", "u1")
	api.userLeaguesErr = fmt.Errorf("/user/u1/leagues/nfl/2025: %w", sleeper.ErrRateLimited)

	state := tempState(t)
	c := newTestCrawler(t, api, newFakeStore(), state)

	_, err := c.Run(context.Background(), []string{"alice"})
	if !errors.Is(err, sleeper.ErrRateLimited) {
		t.Fatalf("Run() = %v, want ErrRateLimited", err)
	}

	// The aborted run still saved its state.
	visited, _, err := state.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if _, ok := visited["u1"]; !ok {
		t.Error("final checkpoint missing after fatal abort")
	}
}

// TestCrawlerContextCancellation tests that cancelling the context
// exits through the final-checkpoint path.
func TestCrawlerContextCancellation(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	seedUser(api, "alice", "u1")
	api.addLeague("l1")
	api.userLeagues["u1"] = leaguesOf(t, api, "l1")

	state := tempState(t)
	c := newTestCrawler(t, api, newFakeStore(), state)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Run(ctx, []string{"alice"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() = %v, want context.Canceled", err)
	}

	// The frontier still holds the unvisited seed for the next session.
	_, queue, loadErr := state.Load()
	if loadErr != nil {
		t.Fatalf("Load() error: %v", loadErr)
	}
	if len(queue) != 1 || queue[0] != "u1" {
		t.Errorf("queue = %v, want [u1]", queue)
	}
}

// TestCrawlerShuffledRunCoversFrontier tests that randomized rotation
// still visits every reachable node before the frontier drains.
func TestCrawlerShuffledRunCoversFrontier(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	seedUser(api, "alice", "u1")
	api.addLeague("A", "u2", "u3", "u4")
	api.userLeagues["u1"] = leaguesOf(t, api, "A")

	state := tempState(t)
	c := NewCrawler(api, newFakeStore(), state,
		WithOutput(io.Discard),
		WithShuffle(true),
	)

	if _, err := c.Run(context.Background(), []string{"alice"}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	visited, queue, err := state.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(queue) != 0 {
		t.Errorf("queue = %v, want drained", queue)
	}
	for _, id := range []string{"u1", "u2", "u3", "u4"} {
		if _, ok := visited[id]; !ok {
			t.Errorf("node %s never visited under shuffled traversal", id)
		}
	}
}
