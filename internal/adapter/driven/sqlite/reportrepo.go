package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/offbeatjs/hacktoberfest-projects/internal/domain/model"
	"github.com/offbeatjs/hacktoberfest-projects/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ReportStore = (*ReportRepo)(nil)

// maxActiveReports bounds the exclusion set read per listing request.
const maxActiveReports = 100

// ReportRepo is the SQLite implementation of the ReportStore port.
type ReportRepo struct {
	db *DB
}

// NewReportRepo creates a new ReportRepo.
func NewReportRepo(db *DB) *ReportRepo {
	return &ReportRepo{db: db}
}

// Create inserts a new report. New reports are active (valid = 0) until a
// moderator resolves them.
func (r *ReportRepo) Create(ctx context.Context, report model.Report) (model.Report, error) {
	const query = `INSERT INTO reports (repository_id, reason, valid, created_at) VALUES (?, ?, 0, ?)`

	createdAt := report.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	res, err := r.db.Writer.ExecContext(ctx, query, report.RepositoryID, report.Reason, createdAt)
	if err != nil {
		return model.Report{}, fmt.Errorf("insert report for repository %d: %w", report.RepositoryID, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.Report{}, fmt.Errorf("insert report for repository %d: last insert id: %w", report.RepositoryID, err)
	}

	report.ID = id
	report.Valid = false
	report.CreatedAt = createdAt
	return report, nil
}

// Resolve marks a report as reviewed and valid, removing it from the active
// exclusion set.
func (r *ReportRepo) Resolve(ctx context.Context, id int64) error {
	const query = `UPDATE reports SET valid = 1 WHERE id = ?`
	res, err := r.db.Writer.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("resolve report %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("resolve report %d: rows affected: %w", id, err)
	}
	if affected == 0 {
		return driven.ErrReportNotFound
	}
	return nil
}

// ActiveRepositoryIDs returns the repository IDs with at least one active
// report, as a set for O(1) membership checks. The read is capped at
// maxActiveReports rows.
func (r *ReportRepo) ActiveRepositoryIDs(ctx context.Context) (map[int64]struct{}, error) {
	const query = `SELECT repository_id FROM reports WHERE valid = 0 LIMIT ?`

	rows, err := r.db.Reader.QueryContext(ctx, query, maxActiveReports)
	if err != nil {
		return nil, fmt.Errorf("query active reports: %w", err)
	}
	defer rows.Close()

	ids := make(map[int64]struct{})
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		ids[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate report rows: %w", err)
	}
	return ids, nil
}
