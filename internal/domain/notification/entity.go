package notification

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Type represents notification type
type Type string

const (
	TypeBannedWordDetected Type = "banned_word_detected" // Author: post content flagged
	TypePostRemoved        Type = "post_removed"         // Author: post deleted by moderator
	TypeWarningIssued      Type = "warning_issued"       // Author: moderator warning
)

// Notification represents a user notification (matches notifications table)
type Notification struct {
	ID        uuid.UUID     `db:"id" json:"id"`
	UserID    uuid.UUID     `db:"user_id" json:"user_id"`
	ActorID   uuid.NullUUID `db:"actor_id" json:"actor_id,omitempty"`
	Type      Type          `db:"type" json:"type"`
	PostID    uuid.NullUUID `db:"post_id" json:"post_id,omitempty"`
	IsRead    bool          `db:"is_read" json:"is_read"`
	ReadAt    sql.NullTime  `db:"read_at" json:"read_at,omitempty"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
}
