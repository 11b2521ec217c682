package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/offbeatjs/hacktoberfest-projects/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// ListingResponse is the JSON representation of one language listing page.
type ListingResponse struct {
	Title             string               `json:"title"`
	Language          string               `json:"language"`
	Page              int                  `json:"page"`
	TotalCount        int                  `json:"total_count"`
	IncompleteResults bool                 `json:"incomplete_results"`
	Items             []RepositoryResponse `json:"items"`
}

// RepositoryResponse is the JSON representation of a single search result item.
type RepositoryResponse struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	FullName        string   `json:"full_name"`
	Owner           string   `json:"owner"`
	OwnerAvatarURL  string   `json:"owner_avatar_url"`
	HTMLURL         string   `json:"html_url"`
	Description     string   `json:"description"`
	Language        string   `json:"language"`
	Topics          []string `json:"topics"`
	StargazersCount int      `json:"stargazers_count"`
	ForksCount      int      `json:"forks_count"`
	OpenIssuesCount int      `json:"open_issues_count"`
	Archived        bool     `json:"archived"`
	PushedAt        string   `json:"pushed_at"`
}

// ReportRequest is the JSON body for the report endpoint.
type ReportRequest struct {
	RepositoryID int64  `json:"repository_id"`
	Reason       string `json:"reason"`
}

// ReportResponse is the JSON representation of a filed report.
type ReportResponse struct {
	ID           int64  `json:"id"`
	RepositoryID int64  `json:"repository_id"`
	Reason       string `json:"reason"`
	CreatedAt    string `json:"created_at"`
}

// EventResponse describes the event this site lists projects for.
type EventResponse struct {
	Topic    string `json:"topic"`
	BodyHTML string `json:"body_html"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// listingTitle formats the page heading for a language. The language is
// capitalized for display only; the raw value keeps its own field.
func listingTitle(lang string) string {
	return cases.Title(language.Und).String(lang) + " Repositories"
}

// toListingResponse converts an assembled listing page to its JSON representation.
func toListingResponse(page model.ListingPage) ListingResponse {
	items := make([]RepositoryResponse, 0, len(page.Result.Items))
	for _, repo := range page.Result.Items {
		items = append(items, toRepositoryResponse(repo))
	}

	return ListingResponse{
		Title:             listingTitle(page.Language),
		Language:          page.Language,
		Page:              page.Page,
		TotalCount:        page.Result.TotalCount,
		IncompleteResults: page.Result.IncompleteResults,
		Items:             items,
	}
}

// toRepositoryResponse converts a domain Repository to its JSON representation.
// Descriptions come from arbitrary third parties and render into text positions
// client side, so markup is stripped here at the boundary.
func toRepositoryResponse(repo model.Repository) RepositoryResponse {
	topics := repo.Topics
	if topics == nil {
		topics = []string{}
	}

	var pushedAt string
	if !repo.PushedAt.IsZero() {
		pushedAt = repo.PushedAt.UTC().Format(time.RFC3339)
	}

	return RepositoryResponse{
		ID:              repo.ID,
		Name:            repo.Name,
		FullName:        repo.FullName,
		Owner:           repo.Owner,
		OwnerAvatarURL:  repo.OwnerAvatarURL,
		HTMLURL:         repo.HTMLURL,
		Description:     sanitizeText(repo.Description),
		Language:        repo.Language,
		Topics:          topics,
		StargazersCount: repo.StargazersCount,
		ForksCount:      repo.ForksCount,
		OpenIssuesCount: repo.OpenIssuesCount,
		Archived:        repo.Archived,
		PushedAt:        pushedAt,
	}
}

// toReportResponse converts a domain Report to its JSON representation.
func toReportResponse(report model.Report) ReportResponse {
	return ReportResponse{
		ID:           report.ID,
		RepositoryID: report.RepositoryID,
		Reason:       report.Reason,
		CreatedAt:    report.CreatedAt.UTC().Format(time.RFC3339),
	}
}
