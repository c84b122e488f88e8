package moderation

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines report and audit-log data access
type Repository interface {
	CreateReport(ctx context.Context, report *Report) error
	GetReportByID(ctx context.Context, id uuid.UUID) (*Report, error)
	ListReports(ctx context.Context) ([]*Report, error)
	ListReportsByReporter(ctx context.Context, reporterID uuid.UUID) ([]*Report, error)
	UpdateReportStatus(ctx context.Context, id uuid.UUID, status ReportStatus) error

	CreateAction(ctx context.Context, action *ReportAction) error
	ListActionsByReport(ctx context.Context, reportID uuid.UUID) ([]*ReportAction, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates moderation repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateReport(ctx context.Context, report *Report) error {
	query := `
		INSERT INTO reports (id, post_id, reporter_id, category, description, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		report.ID,
		report.PostID,
		report.ReporterID,
		report.Category,
		report.Description,
		report.Status,
		report.CreatedAt,
	)
	return err
}

func (r *repository) GetReportByID(ctx context.Context, id uuid.UUID) (*Report, error) {
	query := `SELECT * FROM reports WHERE id = $1`
	var report Report
	err := r.db.GetContext(ctx, &report, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

func (r *repository) ListReports(ctx context.Context) ([]*Report, error) {
	query := `
		SELECT * FROM reports
		ORDER BY created_at DESC
	`
	var reports []*Report
	err := r.db.SelectContext(ctx, &reports, query)
	return reports, err
}

func (r *repository) ListReportsByReporter(ctx context.Context, reporterID uuid.UUID) ([]*Report, error) {
	query := `
		SELECT * FROM reports
		WHERE reporter_id = $1
		ORDER BY created_at DESC
	`
	var reports []*Report
	err := r.db.SelectContext(ctx, &reports, query, reporterID)
	return reports, err
}

func (r *repository) UpdateReportStatus(ctx context.Context, id uuid.UUID, status ReportStatus) error {
	query := `UPDATE reports SET status = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, status, id)
	return err
}

func (r *repository) CreateAction(ctx context.Context, action *ReportAction) error {
	query := `
		INSERT INTO report_actions (id, report_id, faculty_id, action, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		action.ID,
		action.ReportID,
		action.FacultyID,
		action.Action,
		action.Notes,
		action.CreatedAt,
	)
	return err
}

func (r *repository) ListActionsByReport(ctx context.Context, reportID uuid.UUID) ([]*ReportAction, error) {
	query := `
		SELECT * FROM report_actions
		WHERE report_id = $1
		ORDER BY created_at ASC
	`
	var actions []*ReportAction
	err := r.db.SelectContext(ctx, &actions, query, reportID)
	return actions, err
}
