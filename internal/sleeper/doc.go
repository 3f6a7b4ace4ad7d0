// Package sleeper provides a rate-limited client for the public Sleeper
// fantasy-football API.
//
// All lookups are plain HTTPS GET requests returning JSON. The client
// serializes every request through a single-slot throttle: before each
// request it sleeps off the remainder of a fixed minimum interval since
// its own previous request. The throttle state belongs to the client
// instance, so one client means one request stream regardless of caller.
//
// # Error taxonomy
//
// The client maps remote failures the way the collector needs them:
//
//   - HTTP 429 is fatal: every method returns ErrRateLimited and the
//     caller is expected to abort the run. There are no retries; the
//     throttle is the only backpressure mechanism.
//   - HTTP 404 on a single-entity lookup (user, league) means "absent"
//     and returns (nil, nil).
//   - Any other HTTP failure on a list-returning lookup (leagues, users,
//     rosters, bracket) degrades to an empty list so one broken league
//     cannot stop a crawl.
//   - Transport errors (connection refused, timeouts) always propagate.
//
// The full player directory is a multi-megabyte payload, so AllPlayers
// caches it on disk indefinitely and only refetches when forced.
package sleeper
