package moderation

import (
	"github.com/google/uuid"

	"github.com/campuslink/campuslink-api/internal/domain/post"
	"github.com/campuslink/campuslink-api/internal/domain/profile"
)

// CreateReportRequest represents request to report a post
type CreateReportRequest struct {
	PostID      uuid.UUID      `json:"post_id" validate:"required"`
	Category    ReportCategory `json:"category" validate:"required,report_category"`
	Description string         `json:"description,omitempty" validate:"max=1000"`
}

// ActionRequest represents a dismiss or warn action on a report
type ActionRequest struct {
	Notes string `json:"notes,omitempty" validate:"max=1000"`
}

// DeletePostRequest represents the delete-post action on a report
type DeletePostRequest struct {
	PostID uuid.UUID `json:"post_id" validate:"required"`
	Notes  string    `json:"notes,omitempty" validate:"max=1000"`
}

// AddBannedWordRequest represents request to add a banned word
type AddBannedWordRequest struct {
	Word     string `json:"word" validate:"max=100"`
	Category string `json:"category,omitempty" validate:"max=50"`
}

// ReportDetails is a report enriched with reporter, post and post-author
// summaries. Post is nil when the reported post has been deleted;
// profile fields are nil when the referenced profile no longer exists.
type ReportDetails struct {
	*Report
	Reporter   *profile.Profile `json:"reporter,omitempty"`
	Post       *post.Post       `json:"post,omitempty"`
	PostAuthor *profile.Profile `json:"post_author,omitempty"`
}

// ScanResponse represents the result of scanning a post
type ScanResponse struct {
	PostID  uuid.UUID    `json:"post_id"`
	Flagged bool         `json:"flagged"`
	Matches []BannedWord `json:"matches"`
}
