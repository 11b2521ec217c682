// Package application contains use-case orchestration services.
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/offbeatjs/hacktoberfest-projects/internal/domain/model"
	"github.com/offbeatjs/hacktoberfest-projects/internal/domain/port/driven"
)

// FilterListing returns result with reported and archived repositories
// removed. TotalCount and IncompleteResults keep the values reported
// upstream, so pagination stays stable even when items are dropped.
func FilterListing(result model.SearchResult, reported map[int64]struct{}) model.SearchResult {
	items := make([]model.Repository, 0, len(result.Items))
	for _, repo := range result.Items {
		if _, ok := reported[repo.ID]; ok {
			continue
		}
		if repo.Archived {
			continue
		}
		items = append(items, repo)
	}

	result.Items = items
	return result
}

// ListingService assembles language listing pages from GitHub search
// results, visitor credentials, and the moderation report set.
type ListingService struct {
	search        driven.SearchClient
	accounts      driven.AccountStore
	reports       driven.ReportStore
	fallbackToken string
	logger        *slog.Logger
}

// NewListingService creates a new ListingService. fallbackToken authenticates
// searches for visitors without a linked account; it may be empty, in which
// case those searches run anonymously.
func NewListingService(search driven.SearchClient, accounts driven.AccountStore, reports driven.ReportStore, fallbackToken string) *ListingService {
	return &ListingService{
		search:        search,
		accounts:      accounts,
		reports:       reports,
		fallbackToken: fallbackToken,
		logger:        slog.Default(),
	}
}

// LanguagePage runs one listing request end to end: resolve the visitor's
// credential, search GitHub, drop flagged repositories, and assemble the
// page. Returns (nil, nil) when there is nothing to show, either because the
// search was rejected upstream or because moderation removed every item.
func (s *ListingService) LanguagePage(ctx context.Context, language, userID string, params model.ListingParams) (*model.ListingPage, error) {
	token, err := s.resolveToken(ctx, userID)
	if err != nil {
		return nil, err
	}

	query := BuildQuery(language, params)

	result, err := s.search.SearchRepositories(ctx, token, query)
	if err != nil {
		if errors.Is(err, driven.ErrSearchFailed) {
			s.logger.Debug("search rejected, listing empty", "language", language, "page", query.Page)
			return nil, nil
		}
		return nil, err
	}

	reported, err := s.reports.ActiveRepositoryIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading report set: %w", err)
	}

	filtered := FilterListing(*result, reported)
	if len(filtered.Items) == 0 {
		return nil, nil
	}

	return &model.ListingPage{
		Page:     query.Page,
		Language: language,
		Result:   filtered,
	}, nil
}

// resolveToken picks the credential for a search call: the visitor's stored
// token when present, the configured fallback otherwise. An unset encryption
// key means no tokens are stored at all, which is not an error here.
func (s *ListingService) resolveToken(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return s.fallbackToken, nil
	}

	token, err := s.accounts.AccessToken(ctx, userID)
	if errors.Is(err, driven.ErrEncryptionKeyNotSet) {
		return s.fallbackToken, nil
	}
	if err != nil {
		return "", fmt.Errorf("resolving token for user %q: %w", userID, err)
	}
	if token == "" {
		return s.fallbackToken, nil
	}
	return token, nil
}
