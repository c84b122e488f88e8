package moderation

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// ReportCategory represents the category of a report
type ReportCategory string

const (
	ReportCategorySpam          ReportCategory = "spam"
	ReportCategoryHarassment    ReportCategory = "harassment"
	ReportCategoryInappropriate ReportCategory = "inappropriate"
	ReportCategoryMisinfo       ReportCategory = "misinformation"
	ReportCategoryOther         ReportCategory = "other"
)

// ReportStatus represents the status of a report
type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "pending"
	ReportStatusDismissed ReportStatus = "dismissed"
	ReportStatusDeleted   ReportStatus = "deleted"
	ReportStatusWarned    ReportStatus = "warned"
)

// IsTerminal reports whether the status is a resolved state.
// Resolved reports do not accept further moderator actions.
func (s ReportStatus) IsTerminal() bool {
	return s == ReportStatusDismissed || s == ReportStatusDeleted || s == ReportStatusWarned
}

// ActionType represents a moderator action recorded in the audit log
type ActionType string

const (
	ActionDismiss    ActionType = "dismiss"
	ActionDeletePost ActionType = "delete_post"
	ActionWarnUser   ActionType = "warn_user"
)

// BannedWord represents a curated banned word (matches banned_words table).
// Entries are created by moderators and never mutated; removal is an
// explicit admin operation.
type BannedWord struct {
	ID        uuid.UUID      `db:"id" json:"id"`
	Word      string         `db:"word" json:"word"`
	Category  sql.NullString `db:"category" json:"category,omitempty"`
	CreatedBy uuid.UUID      `db:"created_by" json:"created_by"`
}

// Report represents a user-submitted report against a post (matches reports table).
// PostID is a weak reference: the post may be deleted out from under it.
type Report struct {
	ID          uuid.UUID      `db:"id" json:"id"`
	PostID      uuid.UUID      `db:"post_id" json:"post_id"`
	ReporterID  uuid.UUID      `db:"reporter_id" json:"reporter_id"`
	Category    ReportCategory `db:"category" json:"category"`
	Description sql.NullString `db:"description" json:"description,omitempty"`
	Status      ReportStatus   `db:"status" json:"status"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}

// ReportAction is an append-only audit record of a moderator action
// (matches report_actions table). A report may accumulate several
// actions over time when it is re-reviewed.
type ReportAction struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	ReportID  uuid.UUID  `db:"report_id" json:"report_id"`
	FacultyID uuid.UUID  `db:"faculty_id" json:"faculty_id"`
	Action    ActionType `db:"action" json:"action"`
	Notes     string     `db:"notes" json:"notes"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}
