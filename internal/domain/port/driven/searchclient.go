package driven

import (
	"context"
	"errors"

	"github.com/offbeatjs/hacktoberfest-projects/internal/domain/model"
)

// ErrSearchFailed indicates the search API answered with a non-success HTTP
// status. Rate limiting, bad credentials, and outages all collapse into this
// one sentinel; callers coarsen it to a not-found outcome rather than
// surfacing a fault. Transport and decode failures are returned as ordinary
// errors instead.
var ErrSearchFailed = errors.New("repository search failed")

// SearchClient defines the driven port for the external repository-search
// API. Implementations perform exactly one outbound call per invocation and
// attach the given bearer token when it is non-empty.
type SearchClient interface {
	SearchRepositories(ctx context.Context, token string, query model.SearchQuery) (*model.SearchResult, error)
}
