package moderation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/campuslink/campuslink-api/internal/domain/notification"
	"github.com/campuslink/campuslink-api/internal/domain/post"
)

// uniqueViolation is the PostgreSQL error code for a unique constraint
// violation. The notifications table carries a unique index on
// (post_id, type), which makes the flagged-content dedup race-free:
// a concurrent insert loses cleanly instead of duplicating.
const uniqueViolation = "23505"

// Notifier creates flagged-content notifications for post authors.
// At most one banned_word_detected notification ever exists per post,
// no matter how often the post is rescanned.
type Notifier struct {
	notifications notification.Repository
}

// NewNotifier creates a moderation notifier
func NewNotifier(notifications notification.Repository) *Notifier {
	return &Notifier{notifications: notifications}
}

// NotifyAuthorIfFlagged notifies the post author that their content was
// flagged. No-op when the post or author is unknown or nothing matched.
// Scans run repeatedly (every dashboard render triggers one), so the
// dedup check runs on every call. All failures are logged, never returned:
// notification delivery must not block the scan.
func (n *Notifier) NotifyAuthorIfFlagged(ctx context.Context, p *post.Post, matches []BannedWord) {
	if p == nil || p.AuthorID == uuid.Nil || len(matches) == 0 {
		return
	}

	existing, err := n.notifications.GetByPostAndType(ctx, p.ID, notification.TypeBannedWordDetected)
	if err != nil {
		log.Error().Err(err).Str("post_id", p.ID.String()).Msg("Failed to check for existing flag notification")
		return
	}
	if existing != nil {
		return
	}

	notif := &notification.Notification{
		ID:        uuid.New(),
		UserID:    p.AuthorID,
		Type:      notification.TypeBannedWordDetected,
		PostID:    uuid.NullUUID{UUID: p.ID, Valid: true},
		CreatedAt: time.Now(),
	}

	if err := n.notifications.Create(ctx, notif); err != nil {
		if isUniqueViolation(err) {
			// A concurrent scan already notified the author
			return
		}
		log.Error().Err(err).
			Str("post_id", p.ID.String()).
			Str("author_id", p.AuthorID.String()).
			Msg("Failed to create flag notification")
	}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
