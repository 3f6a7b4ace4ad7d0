package model

// User represents a Sleeper account as returned by the /user/{username}
// and /league/{id}/users endpoints. The crawl graph treats the UserID as
// an opaque node identifier; no other attribute participates in traversal.
type User struct {
	// UserID is the stable account identifier used throughout the API.
	UserID string `json:"user_id"`

	// Username is the login name the account was looked up by.
	Username string `json:"username"`

	// DisplayName is the public display name, which may differ from Username.
	DisplayName string `json:"display_name"`
}
