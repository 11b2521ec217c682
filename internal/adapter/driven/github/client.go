// Package github implements the SearchClient port using the go-github library.
package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"

	"github.com/offbeatjs/hacktoberfest-projects/internal/domain/model"
	"github.com/offbeatjs/hacktoberfest-projects/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.SearchClient = (*Client)(nil)

// searchAccept is the media type sent on search requests. The mercy preview
// opts in to repository topics in search results.
const searchAccept = "application/vnd.github.mercy-preview+json"

// Client implements the driven.SearchClient port using the go-github library.
type Client struct {
	gh *gh.Client
}

// NewClient creates a new GitHub API client with the following transport stack:
//  1. go-github-ratelimit (secondary rate limit middleware, sleeps on 429)
//  2. accept override (mercy preview media type on every request)
//  3. httpcache (ETag-based conditional request caching)
//
// The returned client is unauthenticated. Credentials are applied per call
// in SearchRepositories, so one client serves every visitor.
func NewClient() *Client {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	searchTransport := &acceptTransport{base: cacheTransport}
	rateLimitClient := github_ratelimit.NewClient(searchTransport)

	return &Client{gh: gh.NewClient(rateLimitClient)}
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) (*Client, error) {
	wrapped := &http.Client{
		Transport: &acceptTransport{base: httpClient.Transport},
		Timeout:   httpClient.Timeout,
	}
	client := gh.NewClient(wrapped)

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	client.BaseURL = u

	return &Client{gh: client}, nil
}

// SearchRepositories runs a repository search and maps the response to domain
// model types. A non-empty token authenticates the call as that user; an empty
// token sends the request anonymously. Any non-success answer from the API,
// rate limiting included, is collapsed into driven.ErrSearchFailed so callers
// can treat it uniformly as an empty result.
func (c *Client) SearchRepositories(ctx context.Context, token string, query model.SearchQuery) (*model.SearchResult, error) {
	client := c.gh
	if token != "" {
		client = c.gh.WithAuthToken(token)
	}

	opts := &gh.SearchOptions{
		Sort:  query.Sort,
		Order: query.Order,
		ListOptions: gh.ListOptions{
			Page:    query.Page,
			PerPage: model.ResultsPerPage,
		},
	}

	result, resp, err := client.Search.Repositories(ctx, query.Term, opts)
	if err != nil {
		var rateErr *gh.RateLimitError
		var abuseErr *gh.AbuseRateLimitError
		var respErr *gh.ErrorResponse
		if errors.As(err, &rateErr) || errors.As(err, &abuseErr) || errors.As(err, &respErr) {
			slog.Debug("github search rejected",
				"term", query.Term,
				"page", opts.Page,
				"error", err,
			)
			return nil, driven.ErrSearchFailed
		}
		return nil, fmt.Errorf("searching repositories (page %d): %w", opts.Page, err)
	}

	logRateLimit(resp, "search/repositories", opts.Page, len(result.Repositories))

	items := make([]model.Repository, 0, len(result.Repositories))
	for _, repo := range result.Repositories {
		items = append(items, mapRepository(repo))
	}

	return &model.SearchResult{
		TotalCount:        result.GetTotal(),
		IncompleteResults: result.GetIncompleteResults(),
		Items:             items,
	}, nil
}

// mapRepository converts a go-github Repository to a domain model Repository.
// It uses GetXxx() helper methods exclusively to avoid nil pointer panics.
func mapRepository(repo *gh.Repository) model.Repository {
	topics := make([]string, 0, len(repo.Topics))
	topics = append(topics, repo.Topics...)

	return model.Repository{
		ID:              repo.GetID(),
		Name:            repo.GetName(),
		FullName:        repo.GetFullName(),
		Owner:           repo.GetOwner().GetLogin(),
		OwnerAvatarURL:  repo.GetOwner().GetAvatarURL(),
		HTMLURL:         repo.GetHTMLURL(),
		Description:     repo.GetDescription(),
		Language:        repo.GetLanguage(),
		Topics:          topics,
		StargazersCount: repo.GetStargazersCount(),
		ForksCount:      repo.GetForksCount(),
		OpenIssuesCount: repo.GetOpenIssuesCount(),
		Archived:        repo.GetArchived(),
		PushedAt:        repo.GetPushedAt().Time,
	}
}

// logRateLimit logs the GitHub API rate limit status after each call.
func logRateLimit(resp *gh.Response, endpoint string, page, count int) {
	if resp == nil {
		return
	}

	slog.Debug("github api call",
		"endpoint", endpoint,
		"page", page,
		"count", count,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Remaining < 100 {
		slog.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}

// acceptTransport sets the search media type on every outgoing request.
type acceptTransport struct {
	base http.RoundTripper
}

func (t *acceptTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("Accept", searchAccept)

	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(clone)
}
