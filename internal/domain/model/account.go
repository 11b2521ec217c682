package model

import "time"

// Account links a signed-in user to the GitHub OAuth access token the
// identity collaborator obtained for them. UserID is the opaque subject from
// the session; Login is the GitHub username, kept for display and debugging.
type Account struct {
	ID          int64
	UserID      string
	Login       string
	AccessToken string
	UpdatedAt   time.Time
}
