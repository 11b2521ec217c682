package httphandler

import (
	_ "embed"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/offbeatjs/hacktoberfest-projects/internal/application"
	"github.com/offbeatjs/hacktoberfest-projects/internal/domain/model"
	"github.com/offbeatjs/hacktoberfest-projects/internal/domain/port/driven"
)

//go:embed content/event.md
var eventMarkdown string

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	listings      *application.ListingService
	reportStore   driven.ReportStore
	sessionSecret string
	logger        *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	listings *application.ListingService,
	reportStore driven.ReportStore,
	sessionSecret string,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		listings:      listings,
		reportStore:   reportStore,
		sessionSecret: sessionSecret,
		logger:        logger,
	}
}

// NewServeMux creates an http.Handler with all routes registered and wrapped
// with CORS, logging, and recovery middleware.
func NewServeMux(h *Handler, logger *slog.Logger, allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/repos/{language}", h.Listing)
	mux.HandleFunc("POST /api/v1/reports", h.CreateReport)
	mux.HandleFunc("GET /api/v1/event", h.Event)
	mux.HandleFunc("GET /api/v1/health", h.Health)

	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, mux)
	wrapped = corsMiddleware(allowedOrigins, wrapped)
	wrapped = loggingMiddleware(logger, wrapped)

	return wrapped
}

// Listing serves one page of repositories for a language. The visitor's
// session cookie, when present and valid, routes the underlying search
// through their own GitHub credential.
func (h *Handler) Listing(w http.ResponseWriter, r *http.Request) {
	lang := r.PathValue("language")

	query := r.URL.Query()
	params := model.ListingParams{
		Page:       query.Get("p"),
		Sort:       query.Get("s"),
		Order:      query.Get("o"),
		Query:      query.Get("q"),
		StartStars: query.Get("startStars"),
		EndStars:   query.Get("endStars"),
	}
	// Defaults apply only to absent parameters. An explicitly empty
	// startStars is meaningful: it lifts the lower bound so an upper-only
	// or unbounded stars filter can be expressed.
	if !query.Has("o") {
		params.Order = "desc"
	}
	if !query.Has("startStars") {
		params.StartStars = "1"
	}

	userID := h.sessionUserID(r)

	page, err := h.listings.LanguagePage(r.Context(), lang, userID, params)
	if err != nil {
		h.logger.Error("failed to assemble listing", "language", lang, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if page == nil {
		writeError(w, http.StatusNotFound, "no repositories found")
		return
	}

	writeJSON(w, http.StatusOK, toListingResponse(*page))
}

// CreateReport files a moderation report against a repository. Reports start
// active and hide the repository from listings until a moderator resolves them.
func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	var req ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.RepositoryID <= 0 {
		writeError(w, http.StatusBadRequest, "repository_id is required")
		return
	}

	report, err := h.reportStore.Create(r.Context(), model.Report{
		RepositoryID: req.RepositoryID,
		Reason:       strings.TrimSpace(req.Reason),
	})
	if err != nil {
		h.logger.Error("failed to create report", "repository_id", req.RepositoryID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, toReportResponse(report))
}

// Event describes the event behind the listings, with participation notes
// rendered from an embedded markdown document.
func (h *Handler) Event(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, EventResponse{
		Topic:    model.EventTopic,
		BodyHTML: RenderMarkdown(eventMarkdown),
	})
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}
