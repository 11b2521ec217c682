package model

import "time"

// Repository is one search hit from the repository-search API. Display
// metadata is passed through to the presentation layer; only ID and Archived
// participate in moderation filtering.
type Repository struct {
	ID              int64
	Name            string
	FullName        string
	Owner           string
	OwnerAvatarURL  string
	HTMLURL         string
	Description     string
	Language        string
	Topics          []string
	StargazersCount int
	ForksCount      int
	OpenIssuesCount int
	Archived        bool
	PushedAt        time.Time
}

// SearchResult is one page of repository search hits. TotalCount is the
// API's count across all pages of the unfiltered query; moderation filtering
// never recomputes it, so it can exceed the number of Items.
type SearchResult struct {
	TotalCount        int
	IncompleteResults bool
	Items             []Repository
}
