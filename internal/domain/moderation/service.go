package moderation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/campuslink/campuslink-api/internal/domain/notification"
	"github.com/campuslink/campuslink-api/internal/domain/post"
	"github.com/campuslink/campuslink-api/internal/domain/profile"
)

// ReportBroadcaster pushes newly created reports to live moderator
// dashboards. Implemented by the websocket Hub.
type ReportBroadcaster interface {
	BroadcastReport(report *Report)
}

// Service handles moderation business logic: report intake, the report
// lifecycle, and content scanning.
type Service struct {
	repo          Repository
	words         *WordStore
	postRepo      post.Repository
	profileRepo   profile.Repository
	notifier      *Notifier
	notifications *notification.Service
	feed          ReportBroadcaster
}

// NewService creates moderation service. feed may be nil (no live dashboard).
func NewService(
	repo Repository,
	words *WordStore,
	postRepo post.Repository,
	profileRepo profile.Repository,
	notifier *Notifier,
	notifications *notification.Service,
	feed ReportBroadcaster,
) *Service {
	return &Service{
		repo:          repo,
		words:         words,
		postRepo:      postRepo,
		profileRepo:   profileRepo,
		notifier:      notifier,
		notifications: notifications,
		feed:          feed,
	}
}

// CreateReport creates a new report against a post
func (s *Service) CreateReport(ctx context.Context, reporterID uuid.UUID, req *CreateReportRequest) (*Report, error) {
	p, err := s.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPostNotFound
	}
	if p.AuthorID == reporterID {
		return nil, ErrCannotReportOwnPost
	}

	report := &Report{
		ID:         uuid.New(),
		PostID:     req.PostID,
		ReporterID: reporterID,
		Category:   req.Category,
		Status:     ReportStatusPending,
		CreatedAt:  time.Now(),
	}
	if req.Description != "" {
		report.Description.String = req.Description
		report.Description.Valid = true
	}

	if err := s.repo.CreateReport(ctx, report); err != nil {
		return nil, err
	}

	// Live dashboards receive the bare report; enrichment happens on
	// the next full list refresh.
	if s.feed != nil {
		s.feed.BroadcastReport(report)
	}

	return report, nil
}

// ListMyReports returns reports created by the user
func (s *Service) ListMyReports(ctx context.Context, userID uuid.UUID) ([]*Report, error) {
	return s.repo.ListReportsByReporter(ctx, userID)
}

// ListReports returns all reports newest-first, enriched with reporter,
// post and post-author summaries. Enrichment is a deliberate two-phase
// fetch-then-merge: posts and profiles are batch-fetched and matched by
// id rather than joined at the storage layer. Fetch failures degrade to
// an empty or partially-enriched result with a logged error.
func (s *Service) ListReports(ctx context.Context) []*ReportDetails {
	reports, err := s.repo.ListReports(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list reports")
		return []*ReportDetails{}
	}

	// Phase 1: batch-fetch the referenced posts
	postIDs := make([]uuid.UUID, 0, len(reports))
	seen := make(map[uuid.UUID]bool, len(reports))
	for _, r := range reports {
		if !seen[r.PostID] {
			seen[r.PostID] = true
			postIDs = append(postIDs, r.PostID)
		}
	}

	postsByID := make(map[uuid.UUID]*post.Post, len(postIDs))
	posts, err := s.postRepo.GetByIDs(ctx, postIDs)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch posts for report enrichment")
	}
	for _, p := range posts {
		postsByID[p.ID] = p
	}

	// Phase 2: batch-fetch the distinct reporter and author profiles
	profileIDs := make([]uuid.UUID, 0, len(reports)*2)
	seenProfiles := make(map[uuid.UUID]bool, len(reports)*2)
	collect := func(id uuid.UUID) {
		if id != uuid.Nil && !seenProfiles[id] {
			seenProfiles[id] = true
			profileIDs = append(profileIDs, id)
		}
	}
	for _, r := range reports {
		collect(r.ReporterID)
		if p, ok := postsByID[r.PostID]; ok {
			collect(p.AuthorID)
		}
	}

	profilesByID := make(map[uuid.UUID]*profile.Profile, len(profileIDs))
	profiles, err := s.profileRepo.GetByIDs(ctx, profileIDs)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch profiles for report enrichment")
	}
	for _, p := range profiles {
		profilesByID[p.ID] = p
	}

	// Merge. A deleted post leaves Post nil; the report still appears.
	details := make([]*ReportDetails, 0, len(reports))
	for _, r := range reports {
		d := &ReportDetails{
			Report:   r,
			Reporter: profilesByID[r.ReporterID],
		}
		if p, ok := postsByID[r.PostID]; ok {
			d.Post = p
			d.PostAuthor = profilesByID[p.AuthorID]
		}
		details = append(details, d)
	}

	return details
}

// ListRecentPosts returns the newest posts for the dashboard context panel
func (s *Service) ListRecentPosts(ctx context.Context, limit int) ([]*post.Post, error) {
	return s.postRepo.ListRecent(ctx, limit)
}

// ListActions returns the audit trail for a report
func (s *Service) ListActions(ctx context.Context, reportID uuid.UUID) ([]*ReportAction, error) {
	return s.repo.ListActionsByReport(ctx, reportID)
}

// ScanPost scans a post's content against the current banned-word
// snapshot, notifying the author when something matched. Returns the
// matched words for UI highlighting.
func (s *Service) ScanPost(ctx context.Context, postID uuid.UUID) ([]BannedWord, error) {
	p, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPostNotFound
	}

	matches := Scan(p.Content, s.words.Words())
	s.notifier.NotifyAuthorIfFlagged(ctx, p, matches)

	return matches, nil
}

// Dismiss resolves a report without touching the content. Returns the
// updated report; callers merge it into any cached list rather than
// re-fetching.
func (s *Service) Dismiss(ctx context.Context, moderatorID, reportID uuid.UUID, notes string) (*Report, error) {
	report, err := s.pendingReport(ctx, reportID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateReportStatus(ctx, reportID, ReportStatusDismissed); err != nil {
		return nil, err
	}
	report.Status = ReportStatusDismissed

	s.appendAction(ctx, moderatorID, reportID, ActionDismiss, notes)

	return report, nil
}

// DeletePost hard-deletes the reported post and marks the report
// deleted. Destructive and irreversible: the content is gone while the
// report row remains as the audit trail.
func (s *Service) DeletePost(ctx context.Context, moderatorID, reportID, postID uuid.UUID, notes string) (*Report, error) {
	report, err := s.pendingReport(ctx, reportID)
	if err != nil {
		return nil, err
	}

	// Grab the author before the post disappears
	p, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		log.Error().Err(err).Str("post_id", postID.String()).Msg("Failed to fetch post before deletion")
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		// Already gone is fine; the report still resolves
		if !errors.Is(err, post.ErrPostNotFound) {
			return nil, err
		}
	}

	if err := s.repo.UpdateReportStatus(ctx, reportID, ReportStatusDeleted); err != nil {
		return nil, err
	}
	report.Status = ReportStatusDeleted

	s.appendAction(ctx, moderatorID, reportID, ActionDeletePost, notes)

	if p != nil {
		s.notifications.NotifyPostRemoved(ctx, p.AuthorID, moderatorID, postID)
	}

	return report, nil
}

// Warn marks the report warned and notifies the post author, leaving
// the content in place.
func (s *Service) Warn(ctx context.Context, moderatorID, reportID uuid.UUID, notes string) (*Report, error) {
	report, err := s.pendingReport(ctx, reportID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateReportStatus(ctx, reportID, ReportStatusWarned); err != nil {
		return nil, err
	}
	report.Status = ReportStatusWarned

	s.appendAction(ctx, moderatorID, reportID, ActionWarnUser, notes)

	if p, err := s.postRepo.GetByID(ctx, report.PostID); err == nil && p != nil {
		s.notifications.NotifyWarningIssued(ctx, p.AuthorID, moderatorID, p.ID)
	}

	return report, nil
}

// pendingReport fetches a report and verifies it still accepts actions.
// Status is monotone: once dismissed, deleted or warned, a report
// rejects further transitions.
func (s *Service) pendingReport(ctx context.Context, reportID uuid.UUID) (*Report, error) {
	report, err := s.repo.GetReportByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrReportNotFound
	}
	if report.Status.IsTerminal() {
		return nil, ErrReportAlreadyResolved
	}
	return report, nil
}

// appendAction writes the audit row for a transition. Audit failure
// after a successful status update is logged, not rolled back.
func (s *Service) appendAction(ctx context.Context, moderatorID, reportID uuid.UUID, action ActionType, notes string) {
	a := &ReportAction{
		ID:        uuid.New(),
		ReportID:  reportID,
		FacultyID: moderatorID,
		Action:    action,
		Notes:     notes,
		CreatedAt: time.Now(),
	}
	if err := s.repo.CreateAction(ctx, a); err != nil {
		log.Error().Err(err).
			Str("report_id", reportID.String()).
			Str("action", string(action)).
			Msg("Failed to append report action")
	}
}
