// Package collector implements the crawl over Sleeper's user/league
// social graph.
//
// # Architecture
//
// The package is designed around the Crawler type, which drives a
// breadth-first frontier walk over an implicit, unbounded remote graph:
// users link to leagues, leagues link back to their member users. The
// walk is bounded by three independent stopping conditions (empty
// frontier, league target reached, visit ceiling reached) and is
// resumable: the visited set and pending frontier are checkpointed to
// disk every ten visited users and again when the loop exits, so an
// interrupted run loses at most ten users of traversal state.
//
// We implement the walk directly rather than on a graph library because
// the traversal shape is fixed and small: one frontier, one visited set,
// and a randomized rotation that spreads requests across communities
// instead of exhausting one league's social cluster at a time.
//
// # Components
//
//   - Frontier: FIFO queue of pending users with random rotation
//   - StateStore: durable {visited, frontier} checkpoint
//   - Crawler: the walk loop plus the per-league processing gates
//   - LoadPlayers: bulk import of the player directory
//
// The Crawler depends on the API and Storage interfaces so tests can
// substitute in-memory fakes; internal/sleeper and internal/database
// provide the real implementations.
package collector
