package collector

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/sleeperstats/leaguecrawl/internal/model"
)

// checkpointInterval is how many visited users pass between periodic
// checkpoint saves. Interruption between saves loses at most this many
// users of traversal state.
const checkpointInterval = 10

// API is the remote graph client the crawler reads from. All operations
// are idempotent reads; internal/sleeper provides the real
// implementation.
type API interface {
	// User resolves a username to an account; (nil, nil) when absent.
	User(ctx context.Context, username string) (*model.User, error)

	// UserLeagues lists a user's leagues for a season. Remote failures
	// short of a rate limit surface as an empty list.
	UserLeagues(ctx context.Context, userID string, season int) ([]model.League, error)

	// League fetches league detail; (nil, nil) when absent.
	League(ctx context.Context, leagueID string) (*model.League, error)

	// LeagueUsers lists a league's member accounts.
	LeagueUsers(ctx context.Context, leagueID string) ([]model.User, error)

	// LeagueRosters lists a league's rosters.
	LeagueRosters(ctx context.Context, leagueID string) ([]model.Roster, error)

	// WinnersBracket lists a league's playoff matchups.
	WinnersBracket(ctx context.Context, leagueID string) ([]model.Matchup, error)

	// AllPlayers returns the full player directory.
	AllPlayers(ctx context.Context, force bool) (map[string]model.DirectoryEntry, error)
}

// Storage is the persistence collaborator the crawler writes to.
// internal/database provides the real implementation.
type Storage interface {
	UpsertLeague(ctx context.Context, league *model.League) error
	UpsertRoster(ctx context.Context, rec model.RosterRecord) error
	InsertRosterPlayers(ctx context.Context, leagueID string, rosterID int, playerIDs []string) error
	BulkUpsertPlayers(ctx context.Context, players []model.Player) error
	LeagueExists(ctx context.Context, leagueID string) (bool, error)
}

// Crawler drives the frontier walk over the user/league graph.
//
// All state mutation happens inside Run on a single goroutine; the
// crawler is not safe for concurrent use, and the rate-limited API
// client assumes exactly one caller.
type Crawler struct {
	api   API
	store Storage
	state *StateStore

	// season is the NFL season year to crawl.
	season int

	// target stops the run after this many newly processed leagues.
	target int

	// maxUsers is the hard ceiling on visited users per run.
	maxUsers int

	// maxLeaguesPerUser caps leagues processed from one user.
	maxLeaguesPerUser int

	// shuffle randomizes pop order by rotating the frontier before
	// each pop.
	shuffle bool

	// skipExisting leaves already-stored leagues unprocessed while still
	// enqueueing their members for discovery.
	skipExisting bool

	// rng drives frontier rotation. Injectable for deterministic tests.
	rng *rand.Rand

	// out receives operator progress messages.
	out io.Writer

	logger *slog.Logger
}

// CrawlerOption configures a Crawler.
type CrawlerOption func(*Crawler)

// WithSeason sets the season year to crawl.
func WithSeason(season int) CrawlerOption {
	return func(c *Crawler) { c.season = season }
}

// WithTarget sets the per-run league collection target.
func WithTarget(target int) CrawlerOption {
	return func(c *Crawler) { c.target = target }
}

// WithMaxUsers sets the per-run visit ceiling.
func WithMaxUsers(n int) CrawlerOption {
	return func(c *Crawler) { c.maxUsers = n }
}

// WithMaxLeaguesPerUser caps leagues processed per visited user.
func WithMaxLeaguesPerUser(n int) CrawlerOption {
	return func(c *Crawler) { c.maxLeaguesPerUser = n }
}

// WithShuffle toggles randomized traversal order.
func WithShuffle(shuffle bool) CrawlerOption {
	return func(c *Crawler) { c.shuffle = shuffle }
}

// WithSkipExisting toggles skipping of already-stored leagues.
func WithSkipExisting(skip bool) CrawlerOption {
	return func(c *Crawler) { c.skipExisting = skip }
}

// WithRand sets the random source used for frontier rotation.
func WithRand(rng *rand.Rand) CrawlerOption {
	return func(c *Crawler) { c.rng = rng }
}

// WithOutput redirects operator progress messages, mainly for tests.
func WithOutput(w io.Writer) CrawlerOption {
	return func(c *Crawler) { c.out = w }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) CrawlerOption {
	return func(c *Crawler) { c.logger = logger }
}

// NewCrawler creates a Crawler over the given API, storage, and state
// store.
func NewCrawler(api API, store Storage, state *StateStore, opts ...CrawlerOption) *Crawler {
	c := &Crawler{
		api:               api,
		store:             store,
		state:             state,
		season:            2025,
		target:            100,
		maxUsers:          20000,
		maxLeaguesPerUser: 5,
		shuffle:           true,
		skipExisting:      true,
		rng:               rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // Traversal order randomization, not cryptography
		out:               os.Stdout,
		logger:            slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run executes one crawl session and returns the number of leagues
// processed.
//
// If a checkpoint exists its frontier fully overrides the seeds: seed
// usernames are only resolved when no pending frontier was saved. The
// loop stops when the frontier drains, the league target is reached,
// the visit ceiling is reached, or ctx is cancelled - and in every case
// the final state is checkpointed before returning.
func (c *Crawler) Run(ctx context.Context, seeds []string) (int, error) {
	visited, queue, err := c.state.Load()
	if err != nil {
		return 0, err
	}
	frontier := NewFrontier(queue...)

	// Run-scoped league dedup, independent of the persisted visited set.
	seenLeagues := make(map[string]struct{})
	processed := 0

	if frontier.Len() == 0 {
		fmt.Fprintf(c.out, "Resolving %d seed usernames...\n", len(seeds))
		for _, username := range seeds {
			user, err := c.api.User(ctx, username)
			if err != nil {
				return 0, err
			}
			if user == nil || user.UserID == "" {
				c.logger.Warn("seed username not found", "username", username)
				continue
			}
			frontier.PushBack(user.UserID)
		}
	} else {
		fmt.Fprintf(c.out, "Resuming from saved state: %d users visited, %d in queue\n",
			len(visited), frontier.Len())
	}

	fmt.Fprintf(c.out, "Starting crawl targeting %d new leagues...\n", c.target)

	var runErr error

walk:
	for frontier.Len() > 0 && processed < c.target && len(visited) < c.maxUsers {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
			break walk
		default:
		}

		if c.shuffle && frontier.Len() > 1 {
			frontier.Rotate(c.rng.Intn(frontier.Len()))
		}

		userID, ok := frontier.PopFront()
		if !ok {
			break
		}
		// Duplicates are enqueued freely; dedup happens here.
		if _, seen := visited[userID]; seen {
			continue
		}
		visited[userID] = struct{}{}

		leagues, err := c.api.UserLeagues(ctx, userID, c.season)
		if err != nil {
			runErr = err
			break
		}
		fmt.Fprintf(c.out, "  User %d: found %d leagues (queue: %d, processed: %d)\n",
			len(visited), len(leagues), frontier.Len(), processed)

		leaguesFromThisUser := 0
		for i := range leagues {
			league := &leagues[i]
			if league.LeagueID == "" {
				continue
			}
			if _, seen := seenLeagues[league.LeagueID]; seen {
				continue
			}
			if league.Sport != model.SportNFL {
				continue
			}
			seenLeagues[league.LeagueID] = struct{}{}

			if c.skipExisting {
				exists, err := c.store.LeagueExists(ctx, league.LeagueID)
				if err != nil {
					runErr = err
					break walk
				}
				if exists {
					// Existing leagues still contribute graph edges.
					if err := c.enqueueMembers(ctx, frontier, visited, league.LeagueID); err != nil {
						runErr = err
						break walk
					}
					continue
				}
			}

			ok, err := c.processLeague(ctx, league.LeagueID)
			if err != nil {
				runErr = err
				break walk
			}
			if ok {
				processed++
				leaguesFromThisUser++
				if err := c.enqueueMembers(ctx, frontier, visited, league.LeagueID); err != nil {
					runErr = err
					break walk
				}
			}

			if processed >= c.target {
				break
			}
			if leaguesFromThisUser >= c.maxLeaguesPerUser {
				break
			}
		}

		if len(visited)%checkpointInterval == 0 {
			if err := c.state.Save(visited, frontier.Snapshot()); err != nil {
				runErr = err
				break
			}
		}
	}

	// Final save regardless of why the loop ended.
	if err := c.state.Save(visited, frontier.Snapshot()); err != nil && runErr == nil {
		runErr = err
	}

	fmt.Fprintf(c.out, "Crawl complete. Processed %d new leagues, visited %d users.\n",
		processed, len(visited))
	fmt.Fprintf(c.out, "State saved. %d users remaining in queue.\n", frontier.Len())
	return processed, runErr
}

// enqueueMembers appends a league's member users to the frontier,
// skipping those already visited.
func (c *Crawler) enqueueMembers(ctx context.Context, frontier *Frontier, visited map[string]struct{}, leagueID string) error {
	users, err := c.api.LeagueUsers(ctx, leagueID)
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.UserID == "" {
			continue
		}
		if _, seen := visited[u.UserID]; seen {
			continue
		}
		frontier.PushBack(u.UserID)
	}
	return nil
}
