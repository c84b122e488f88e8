package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Service handles notification logic
type Service struct {
	repo Repository
}

// NewService creates notification service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a notification
func (s *Service) Create(ctx context.Context, userID uuid.UUID, notifType Type, actorID, postID *uuid.UUID) (*Notification, error) {
	n := &Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      notifType,
		IsRead:    false,
		CreatedAt: time.Now(),
	}

	if actorID != nil {
		n.ActorID = uuid.NullUUID{UUID: *actorID, Valid: true}
	}
	if postID != nil {
		n.PostID = uuid.NullUUID{UUID: *postID, Valid: true}
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	return n, nil
}

// List returns notifications for user
func (s *Service) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Notification, error) {
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

// GetUnreadCount returns unread count
func (s *Service) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.CountUnreadByUser(ctx, userID)
}

// MarkAsRead marks single notification as read
func (s *Service) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, id)
}

// MarkAllAsRead marks all notifications as read
func (s *Service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

// --- Helper methods for creating specific notifications ---

// NotifyPostRemoved notifies the author that a moderator removed their post.
// Best effort: a failed insert is logged, the moderation action is not undone.
func (s *Service) NotifyPostRemoved(ctx context.Context, authorID, moderatorID, postID uuid.UUID) {
	if _, err := s.Create(ctx, authorID, TypePostRemoved, &moderatorID, &postID); err != nil {
		log.Error().Err(err).
			Str("author_id", authorID.String()).
			Str("post_id", postID.String()).
			Msg("Failed to create post-removed notification")
	}
}

// NotifyWarningIssued notifies the author about a moderator warning
func (s *Service) NotifyWarningIssued(ctx context.Context, authorID, moderatorID, postID uuid.UUID) {
	if _, err := s.Create(ctx, authorID, TypeWarningIssued, &moderatorID, &postID); err != nil {
		log.Error().Err(err).
			Str("author_id", authorID.String()).
			Str("post_id", postID.String()).
			Msg("Failed to create warning notification")
	}
}
