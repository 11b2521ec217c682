package driven

import (
	"context"
	"errors"

	"github.com/offbeatjs/hacktoberfest-projects/internal/domain/model"
)

// ErrReportNotFound indicates the requested moderation report does not exist.
var ErrReportNotFound = errors.New("report not found")

// ReportStore defines the driven port for moderation report persistence.
// Listing pages only ever read; Create and Resolve serve the report-filing
// endpoint and the moderation tooling.
type ReportStore interface {
	// Create files a new report. The stored report is active (valid=false)
	// until a moderator resolves it. Returns the report with ID and
	// CreatedAt populated.
	Create(ctx context.Context, report model.Report) (model.Report, error)

	// Resolve marks a report as dismissed (valid=true), letting the
	// repository appear in listings again. Returns ErrReportNotFound if no
	// report has that ID.
	Resolve(ctx context.Context, id int64) error

	// ActiveRepositoryIDs returns the set of repository IDs with an active
	// report, for O(1) lookup during filtering. The read is capped at 100
	// reports.
	ActiveRepositoryIDs(ctx context.Context) (map[int64]struct{}, error)
}
