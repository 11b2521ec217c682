package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offbeatjs/hacktoberfest-projects/internal/application"
	"github.com/offbeatjs/hacktoberfest-projects/internal/domain/model"
	"github.com/offbeatjs/hacktoberfest-projects/internal/domain/port/driven"
)

// --- Mock implementations ---

type searchCall struct {
	Token string
	Query model.SearchQuery
}

type mockSearchClient struct {
	result *model.SearchResult
	err    error
	calls  []searchCall
}

func (m *mockSearchClient) SearchRepositories(_ context.Context, token string, query model.SearchQuery) (*model.SearchResult, error) {
	m.calls = append(m.calls, searchCall{Token: token, Query: query})
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

type mockAccountStore struct {
	tokens map[string]string
	err    error
}

func (m *mockAccountStore) Upsert(_ context.Context, _ model.Account) error {
	return nil
}

func (m *mockAccountStore) AccessToken(_ context.Context, userID string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.tokens[userID], nil
}

type mockReportStore struct {
	ids   map[int64]struct{}
	err   error
	reads int
}

func (m *mockReportStore) Create(_ context.Context, report model.Report) (model.Report, error) {
	return report, nil
}

func (m *mockReportStore) Resolve(_ context.Context, _ int64) error {
	return nil
}

func (m *mockReportStore) ActiveRepositoryIDs(_ context.Context) (map[int64]struct{}, error) {
	m.reads++
	if m.err != nil {
		return nil, m.err
	}
	return m.ids, nil
}

// --- Helpers ---

func searchResult(items ...model.Repository) *model.SearchResult {
	return &model.SearchResult{
		TotalCount:        1234,
		IncompleteResults: true,
		Items:             items,
	}
}

func repo(id int64, archived bool) model.Repository {
	return model.Repository{ID: id, Archived: archived}
}

func TestFilterListing(t *testing.T) {
	result := model.SearchResult{
		TotalCount: 99,
		Items: []model.Repository{
			repo(1, false),
			repo(2, true),
			repo(3, false),
			repo(4, false),
		},
	}
	reported := map[int64]struct{}{3: {}}

	filtered := application.FilterListing(result, reported)

	require.Len(t, filtered.Items, 2)
	assert.Equal(t, int64(1), filtered.Items[0].ID)
	assert.Equal(t, int64(4), filtered.Items[1].ID)
	assert.Equal(t, 99, filtered.TotalCount, "total count keeps the upstream value")

	assert.Len(t, result.Items, 4, "input result is not mutated")
}

func TestLanguagePage_AssemblesPage(t *testing.T) {
	search := &mockSearchClient{result: searchResult(repo(1, false), repo(2, true), repo(3, false))}
	reports := &mockReportStore{ids: map[int64]struct{}{3: {}}}
	accounts := &mockAccountStore{}
	svc := application.NewListingService(search, accounts, reports, "")

	page, err := svc.LanguagePage(context.Background(), "go", "", model.ListingParams{Page: "2"})

	require.NoError(t, err)
	require.NotNil(t, page)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, "go", page.Language)
	require.Len(t, page.Result.Items, 1)
	assert.Equal(t, int64(1), page.Result.Items[0].ID)
	assert.Equal(t, 1234, page.Result.TotalCount, "total count not recomputed after filtering")
	assert.True(t, page.Result.IncompleteResults)
}

func TestLanguagePage_TokenResolution(t *testing.T) {
	t.Run("stored token wins", func(t *testing.T) {
		search := &mockSearchClient{result: searchResult(repo(1, false))}
		accounts := &mockAccountStore{tokens: map[string]string{"42": "gho_stored"}}
		svc := application.NewListingService(search, accounts, &mockReportStore{}, "gho_fallback")

		_, err := svc.LanguagePage(context.Background(), "go", "42", model.ListingParams{})

		require.NoError(t, err)
		require.Len(t, search.calls, 1)
		assert.Equal(t, "gho_stored", search.calls[0].Token)
	})

	t.Run("no stored token falls back to configured token", func(t *testing.T) {
		search := &mockSearchClient{result: searchResult(repo(1, false))}
		svc := application.NewListingService(search, &mockAccountStore{}, &mockReportStore{}, "gho_fallback")

		_, err := svc.LanguagePage(context.Background(), "go", "42", model.ListingParams{})

		require.NoError(t, err)
		require.Len(t, search.calls, 1)
		assert.Equal(t, "gho_fallback", search.calls[0].Token)
	})

	t.Run("anonymous visitor uses fallback token", func(t *testing.T) {
		search := &mockSearchClient{result: searchResult(repo(1, false))}
		svc := application.NewListingService(search, &mockAccountStore{}, &mockReportStore{}, "gho_fallback")

		_, err := svc.LanguagePage(context.Background(), "go", "", model.ListingParams{})

		require.NoError(t, err)
		require.Len(t, search.calls, 1)
		assert.Equal(t, "gho_fallback", search.calls[0].Token)
	})

	t.Run("nothing configured searches anonymously", func(t *testing.T) {
		search := &mockSearchClient{result: searchResult(repo(1, false))}
		svc := application.NewListingService(search, &mockAccountStore{}, &mockReportStore{}, "")

		_, err := svc.LanguagePage(context.Background(), "go", "", model.ListingParams{})

		require.NoError(t, err)
		require.Len(t, search.calls, 1)
		assert.Equal(t, "", search.calls[0].Token)
	})

	t.Run("unset encryption key is treated as no stored token", func(t *testing.T) {
		search := &mockSearchClient{result: searchResult(repo(1, false))}
		accounts := &mockAccountStore{err: driven.ErrEncryptionKeyNotSet}
		svc := application.NewListingService(search, accounts, &mockReportStore{}, "gho_fallback")

		_, err := svc.LanguagePage(context.Background(), "go", "42", model.ListingParams{})

		require.NoError(t, err)
		require.Len(t, search.calls, 1)
		assert.Equal(t, "gho_fallback", search.calls[0].Token)
	})

	t.Run("account store failure propagates", func(t *testing.T) {
		search := &mockSearchClient{result: searchResult(repo(1, false))}
		accounts := &mockAccountStore{err: errors.New("db locked")}
		svc := application.NewListingService(search, accounts, &mockReportStore{}, "gho_fallback")

		page, err := svc.LanguagePage(context.Background(), "go", "42", model.ListingParams{})

		assert.Nil(t, page)
		require.Error(t, err)
		assert.Empty(t, search.calls, "search must not run without a resolved credential")
	})
}

func TestLanguagePage_SearchRejectedMeansEmptyListing(t *testing.T) {
	search := &mockSearchClient{err: driven.ErrSearchFailed}
	reports := &mockReportStore{}
	svc := application.NewListingService(search, &mockAccountStore{}, reports, "")

	page, err := svc.LanguagePage(context.Background(), "go", "", model.ListingParams{})

	require.NoError(t, err)
	assert.Nil(t, page)
	assert.Zero(t, reports.reads, "report set is only read after a successful search")
}

func TestLanguagePage_SearchFailurePropagates(t *testing.T) {
	search := &mockSearchClient{err: errors.New("connection reset")}
	svc := application.NewListingService(search, &mockAccountStore{}, &mockReportStore{}, "")

	page, err := svc.LanguagePage(context.Background(), "go", "", model.ListingParams{})

	assert.Nil(t, page)
	require.Error(t, err)
	assert.NotErrorIs(t, err, driven.ErrSearchFailed)
}

func TestLanguagePage_FilteredToEmptyMeansNoListing(t *testing.T) {
	search := &mockSearchClient{result: searchResult(repo(1, true), repo(2, false))}
	reports := &mockReportStore{ids: map[int64]struct{}{2: {}}}
	svc := application.NewListingService(search, &mockAccountStore{}, reports, "")

	page, err := svc.LanguagePage(context.Background(), "go", "", model.ListingParams{})

	require.NoError(t, err)
	assert.Nil(t, page)
	assert.Equal(t, 1, reports.reads)
}

func TestLanguagePage_NoMatchesMeansNoListing(t *testing.T) {
	search := &mockSearchClient{result: searchResult()}
	svc := application.NewListingService(search, &mockAccountStore{}, &mockReportStore{}, "")

	page, err := svc.LanguagePage(context.Background(), "go", "", model.ListingParams{})

	require.NoError(t, err)
	assert.Nil(t, page)
}

func TestLanguagePage_ReportStoreFailurePropagates(t *testing.T) {
	search := &mockSearchClient{result: searchResult(repo(1, false))}
	reports := &mockReportStore{err: errors.New("db locked")}
	svc := application.NewListingService(search, &mockAccountStore{}, reports, "")

	page, err := svc.LanguagePage(context.Background(), "go", "", model.ListingParams{})

	assert.Nil(t, page)
	require.Error(t, err)
}

func TestLanguagePage_QueryPassedThrough(t *testing.T) {
	search := &mockSearchClient{result: searchResult(repo(1, false))}
	svc := application.NewListingService(search, &mockAccountStore{}, &mockReportStore{}, "")

	_, err := svc.LanguagePage(context.Background(), "python", "", model.ListingParams{
		Page:       "7",
		Sort:       "updated",
		Order:      "asc",
		Query:      "scraper",
		StartStars: "5",
	})

	require.NoError(t, err)
	require.Len(t, search.calls, 1)
	query := search.calls[0].Query
	assert.Equal(t, "topic:hacktoberfest language:python scraper stars:>5", query.Term)
	assert.Equal(t, "updated", query.Sort)
	assert.Equal(t, "asc", query.Order)
	assert.Equal(t, 7, query.Page)
}
