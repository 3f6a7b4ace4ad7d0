package sleeper

import "errors"

// ErrRateLimited is returned when the API answers with HTTP 429.
//
// The crawl's request pacing is supposed to stay under Sleeper's limits,
// so an explicit 429 means the pacing assumption is broken. Callers must
// treat this as fatal and abort the run rather than retry; check with
// errors.Is since the returned error wraps this sentinel with the
// offending endpoint.
var ErrRateLimited = errors.New("rate limited by sleeper API (429)")
