package model

import "time"

// Report flags a repository for removal from listings. The Valid flag is
// counter-intuitive: valid=false means the report is unresolved and currently
// enforced; valid=true means a moderator dismissed it and the repository may
// appear again.
type Report struct {
	ID           int64
	RepositoryID int64
	Reason       string
	Valid        bool
	CreatedAt    time.Time
}

// Active reports whether this report currently hides its repository.
func (r Report) Active() bool {
	return !r.Valid
}
