package moderation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/campuslink/campuslink-api/internal/domain/notification"
	"github.com/campuslink/campuslink-api/internal/domain/post"
	"github.com/campuslink/campuslink-api/internal/domain/profile"
)

type fakeReportRepo struct {
	reports   map[uuid.UUID]*Report
	order     []uuid.UUID
	actions   []*ReportAction
	listErr   error
	actionErr error
	updateErr error
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: make(map[uuid.UUID]*Report)}
}

func (f *fakeReportRepo) CreateReport(ctx context.Context, report *Report) error {
	cp := *report
	f.reports[report.ID] = &cp
	f.order = append([]uuid.UUID{report.ID}, f.order...)
	return nil
}

func (f *fakeReportRepo) GetReportByID(ctx context.Context, id uuid.UUID) (*Report, error) {
	r, ok := f.reports[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReportRepo) ListReports(ctx context.Context) ([]*Report, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*Report, 0, len(f.order))
	for _, id := range f.order {
		cp := *f.reports[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeReportRepo) ListReportsByReporter(ctx context.Context, reporterID uuid.UUID) ([]*Report, error) {
	var out []*Report
	for _, id := range f.order {
		if f.reports[id].ReporterID == reporterID {
			cp := *f.reports[id]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeReportRepo) UpdateReportStatus(ctx context.Context, id uuid.UUID, status ReportStatus) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if r, ok := f.reports[id]; ok {
		r.Status = status
	}
	return nil
}

func (f *fakeReportRepo) CreateAction(ctx context.Context, action *ReportAction) error {
	if f.actionErr != nil {
		return f.actionErr
	}
	f.actions = append(f.actions, action)
	return nil
}

func (f *fakeReportRepo) ListActionsByReport(ctx context.Context, reportID uuid.UUID) ([]*ReportAction, error) {
	var out []*ReportAction
	for _, a := range f.actions {
		if a.ReportID == reportID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakePostRepo struct {
	posts   map[uuid.UUID]*post.Post
	getErr  error
	listErr error
}

func newFakePostRepo(posts ...*post.Post) *fakePostRepo {
	f := &fakePostRepo{posts: make(map[uuid.UUID]*post.Post)}
	for _, p := range posts {
		f.posts[p.ID] = p
	}
	return f
}

func (f *fakePostRepo) Create(ctx context.Context, p *post.Post) error {
	f.posts[p.ID] = p
	return nil
}

func (f *fakePostRepo) GetByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.posts[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (f *fakePostRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*post.Post, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*post.Post
	for _, id := range ids {
		if p, ok := f.posts[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.posts[id]; !ok {
		return post.ErrPostNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepo) ListRecent(ctx context.Context, limit int) ([]*post.Post, error) {
	return nil, nil
}

type fakeProfileRepo struct {
	profiles map[uuid.UUID]*profile.Profile
}

func newFakeProfileRepo(profiles ...*profile.Profile) *fakeProfileRepo {
	f := &fakeProfileRepo{profiles: make(map[uuid.UUID]*profile.Profile)}
	for _, p := range profiles {
		f.profiles[p.ID] = p
	}
	return f
}

func (f *fakeProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*profile.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (f *fakeProfileRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*profile.Profile, error) {
	var out []*profile.Profile
	for _, id := range ids {
		if p, ok := f.profiles[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeFeed struct {
	broadcasts []*Report
}

func (f *fakeFeed) BroadcastReport(report *Report) {
	f.broadcasts = append(f.broadcasts, report)
}

type serviceFixture struct {
	svc       *Service
	repo      *fakeReportRepo
	posts     *fakePostRepo
	profiles  *fakeProfileRepo
	notifRepo *fakeNotificationRepo
	feed      *fakeFeed
	words     *WordStore
}

func newServiceFixture(t *testing.T, posts *fakePostRepo, profiles *fakeProfileRepo) *serviceFixture {
	t.Helper()

	repo := newFakeReportRepo()
	notifRepo := &fakeNotificationRepo{}
	feed := &fakeFeed{}
	wordsRepo := &fakeWordRepo{words: words("damn")}
	store := NewWordStore(wordsRepo)
	store.Load(context.Background())

	svc := NewService(
		repo,
		store,
		posts,
		profiles,
		NewNotifier(notifRepo),
		notification.NewService(notifRepo),
		feed,
	)

	return &serviceFixture{
		svc:       svc,
		repo:      repo,
		posts:     posts,
		profiles:  profiles,
		notifRepo: notifRepo,
		feed:      feed,
		words:     store,
	}
}

func seedReport(f *serviceFixture, postID uuid.UUID, status ReportStatus) *Report {
	report := &Report{
		ID:         uuid.New(),
		PostID:     postID,
		ReporterID: uuid.New(),
		Category:   ReportCategorySpam,
		Status:     status,
		CreatedAt:  time.Now(),
	}
	f.repo.CreateReport(context.Background(), report)
	return report
}

func TestDismissSetsStatusAndAppendsAction(t *testing.T) {
	p := flaggedPost()
	f := newServiceFixture(t, newFakePostRepo(p), newFakeProfileRepo())
	report := seedReport(f, p.ID, ReportStatusPending)
	moderatorID := uuid.New()

	updated, err := f.svc.Dismiss(context.Background(), moderatorID, report.ID, "not actionable")
	if err != nil {
		t.Fatalf("dismiss failed: %v", err)
	}
	if updated.Status != ReportStatusDismissed {
		t.Fatalf("expected returned status %q, got %q", ReportStatusDismissed, updated.Status)
	}
	if f.repo.reports[report.ID].Status != ReportStatusDismissed {
		t.Fatalf("expected stored status %q, got %q", ReportStatusDismissed, f.repo.reports[report.ID].Status)
	}

	actions, _ := f.repo.ListActionsByReport(context.Background(), report.ID)
	if len(actions) != 1 {
		t.Fatalf("expected exactly 1 action, got %d", len(actions))
	}
	if actions[0].Action != ActionDismiss {
		t.Fatalf("expected action %q, got %q", ActionDismiss, actions[0].Action)
	}
	if actions[0].FacultyID != moderatorID {
		t.Fatalf("expected moderator %s, got %s", moderatorID, actions[0].FacultyID)
	}
	if actions[0].Notes != "not actionable" {
		t.Fatalf("expected notes to be recorded, got %q", actions[0].Notes)
	}
}

func TestActionsRejectedOnResolvedReport(t *testing.T) {
	p := flaggedPost()
	f := newServiceFixture(t, newFakePostRepo(p), newFakeProfileRepo())
	report := seedReport(f, p.ID, ReportStatusWarned)

	if _, err := f.svc.Dismiss(context.Background(), uuid.New(), report.ID, ""); !errors.Is(err, ErrReportAlreadyResolved) {
		t.Fatalf("expected ErrReportAlreadyResolved, got %v", err)
	}
	if len(f.repo.actions) != 0 {
		t.Fatalf("expected no actions on a resolved report, got %d", len(f.repo.actions))
	}
}

func TestDismissUnknownReport(t *testing.T) {
	f := newServiceFixture(t, newFakePostRepo(), newFakeProfileRepo())

	if _, err := f.svc.Dismiss(context.Background(), uuid.New(), uuid.New(), ""); !errors.Is(err, ErrReportNotFound) {
		t.Fatalf("expected ErrReportNotFound, got %v", err)
	}
}

func TestDismissSurvivesAuditFailure(t *testing.T) {
	p := flaggedPost()
	f := newServiceFixture(t, newFakePostRepo(p), newFakeProfileRepo())
	report := seedReport(f, p.ID, ReportStatusPending)
	f.repo.actionErr = errors.New("audit table unavailable")

	updated, err := f.svc.Dismiss(context.Background(), uuid.New(), report.ID, "")
	if err != nil {
		t.Fatalf("expected audit failure to be tolerated, got %v", err)
	}
	if updated.Status != ReportStatusDismissed {
		t.Fatalf("expected status %q, got %q", ReportStatusDismissed, updated.Status)
	}
}

func TestDeletePostIsDestructiveButKeepsReport(t *testing.T) {
	p := flaggedPost()
	f := newServiceFixture(t, newFakePostRepo(p), newFakeProfileRepo())
	report := seedReport(f, p.ID, ReportStatusPending)
	moderatorID := uuid.New()

	updated, err := f.svc.DeletePost(context.Background(), moderatorID, report.ID, p.ID, "removed")
	if err != nil {
		t.Fatalf("delete-post failed: %v", err)
	}

	if _, ok := f.posts.posts[p.ID]; ok {
		t.Fatal("expected the post to be hard-deleted")
	}
	if updated.Status != ReportStatusDeleted {
		t.Fatalf("expected report status %q, got %q", ReportStatusDeleted, updated.Status)
	}
	if _, ok := f.repo.reports[report.ID]; !ok {
		t.Fatal("expected the report row to persist as audit trail")
	}

	actions, _ := f.repo.ListActionsByReport(context.Background(), report.ID)
	if len(actions) != 1 || actions[0].Action != ActionDeletePost {
		t.Fatalf("expected a single %q action, got %+v", ActionDeletePost, actions)
	}

	// The author learns their post was removed
	removed, _ := f.notifRepo.ListByUser(context.Background(), p.AuthorID, 10, 0)
	found := false
	for _, n := range removed {
		if n.Type == notification.TypePostRemoved {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a post-removed notification for the author")
	}
}

func TestDeletePostToleratesMissingPost(t *testing.T) {
	f := newServiceFixture(t, newFakePostRepo(), newFakeProfileRepo())
	postID := uuid.New()
	report := seedReport(f, postID, ReportStatusPending)

	updated, err := f.svc.DeletePost(context.Background(), uuid.New(), report.ID, postID, "")
	if err != nil {
		t.Fatalf("expected missing post to be tolerated, got %v", err)
	}
	if updated.Status != ReportStatusDeleted {
		t.Fatalf("expected status %q, got %q", ReportStatusDeleted, updated.Status)
	}
}

func TestWarnKeepsContent(t *testing.T) {
	p := flaggedPost()
	f := newServiceFixture(t, newFakePostRepo(p), newFakeProfileRepo())
	report := seedReport(f, p.ID, ReportStatusPending)

	updated, err := f.svc.Warn(context.Background(), uuid.New(), report.ID, "first warning")
	if err != nil {
		t.Fatalf("warn failed: %v", err)
	}
	if updated.Status != ReportStatusWarned {
		t.Fatalf("expected status %q, got %q", ReportStatusWarned, updated.Status)
	}
	if _, ok := f.posts.posts[p.ID]; !ok {
		t.Fatal("warn must not delete the post")
	}

	actions, _ := f.repo.ListActionsByReport(context.Background(), report.ID)
	if len(actions) != 1 || actions[0].Action != ActionWarnUser {
		t.Fatalf("expected a single %q action, got %+v", ActionWarnUser, actions)
	}
}

func TestCreateReportPublishesToFeed(t *testing.T) {
	p := flaggedPost()
	f := newServiceFixture(t, newFakePostRepo(p), newFakeProfileRepo())
	reporterID := uuid.New()

	report, err := f.svc.CreateReport(context.Background(), reporterID, &CreateReportRequest{
		PostID:      p.ID,
		Category:    ReportCategoryHarassment,
		Description: "targets a classmate",
	})
	if err != nil {
		t.Fatalf("create report failed: %v", err)
	}

	if report.Status != ReportStatusPending {
		t.Fatalf("expected initial status %q, got %q", ReportStatusPending, report.Status)
	}
	if !report.Description.Valid || report.Description.String != "targets a classmate" {
		t.Fatalf("expected description to be set, got %+v", report.Description)
	}
	if len(f.feed.broadcasts) != 1 || f.feed.broadcasts[0].ID != report.ID {
		t.Fatalf("expected the new report on the live feed, got %+v", f.feed.broadcasts)
	}
}

func TestCreateReportRejectsOwnPost(t *testing.T) {
	p := flaggedPost()
	f := newServiceFixture(t, newFakePostRepo(p), newFakeProfileRepo())

	_, err := f.svc.CreateReport(context.Background(), p.AuthorID, &CreateReportRequest{
		PostID:   p.ID,
		Category: ReportCategorySpam,
	})
	if !errors.Is(err, ErrCannotReportOwnPost) {
		t.Fatalf("expected ErrCannotReportOwnPost, got %v", err)
	}
}

func TestCreateReportMissingPost(t *testing.T) {
	f := newServiceFixture(t, newFakePostRepo(), newFakeProfileRepo())

	_, err := f.svc.CreateReport(context.Background(), uuid.New(), &CreateReportRequest{
		PostID:   uuid.New(),
		Category: ReportCategorySpam,
	})
	if !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestListReportsEnrichment(t *testing.T) {
	p := flaggedPost()
	author := &profile.Profile{ID: p.AuthorID, Username: "author"}
	reporter := &profile.Profile{ID: uuid.New(), Username: "reporter"}

	f := newServiceFixture(t, newFakePostRepo(p), newFakeProfileRepo(author, reporter))

	live := seedReport(f, p.ID, ReportStatusPending)
	live.ReporterID = reporter.ID
	f.repo.reports[live.ID].ReporterID = reporter.ID

	orphan := seedReport(f, uuid.New(), ReportStatusPending) // post already deleted

	details := f.svc.ListReports(context.Background())
	if len(details) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(details))
	}

	byID := make(map[uuid.UUID]*ReportDetails)
	for _, d := range details {
		byID[d.ID] = d
	}

	enriched := byID[live.ID]
	if enriched.Post == nil || enriched.Post.ID != p.ID {
		t.Fatalf("expected post to be attached, got %+v", enriched.Post)
	}
	if enriched.Reporter == nil || enriched.Reporter.Username != "reporter" {
		t.Fatalf("expected reporter profile, got %+v", enriched.Reporter)
	}
	if enriched.PostAuthor == nil || enriched.PostAuthor.Username != "author" {
		t.Fatalf("expected post author profile, got %+v", enriched.PostAuthor)
	}

	stub := byID[orphan.ID]
	if stub.Post != nil {
		t.Fatalf("expected nil post for deleted content, got %+v", stub.Post)
	}
	if stub.PostAuthor != nil {
		t.Fatalf("expected nil post author for deleted content, got %+v", stub.PostAuthor)
	}
}

func TestListReportsFailSoft(t *testing.T) {
	f := newServiceFixture(t, newFakePostRepo(), newFakeProfileRepo())
	f.repo.listErr = errors.New("connection reset")

	details := f.svc.ListReports(context.Background())
	if len(details) != 0 {
		t.Fatalf("expected empty result on fetch failure, got %d", len(details))
	}
}

func TestListReportsPartialEnrichmentOnPostFetchFailure(t *testing.T) {
	p := flaggedPost()
	posts := newFakePostRepo(p)
	f := newServiceFixture(t, posts, newFakeProfileRepo())
	seedReport(f, p.ID, ReportStatusPending)
	posts.listErr = errors.New("timeout")

	details := f.svc.ListReports(context.Background())
	if len(details) != 1 {
		t.Fatalf("expected the report despite enrichment failure, got %d", len(details))
	}
	if details[0].Post != nil {
		t.Fatalf("expected unenriched post, got %+v", details[0].Post)
	}
}

func TestScanPostNotifiesOnce(t *testing.T) {
	p := flaggedPost() // content contains "damn", the seeded banned word
	f := newServiceFixture(t, newFakePostRepo(p), newFakeProfileRepo())

	matches, err := f.svc.ScanPost(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(matches) != 1 || matches[0].Word != "damn" {
		t.Fatalf("expected a single match for %q, got %+v", "damn", matches)
	}

	// Rescans must not duplicate the notification
	if _, err := f.svc.ScanPost(context.Background(), p.ID); err != nil {
		t.Fatalf("rescan failed: %v", err)
	}

	count := 0
	for _, n := range f.notifRepo.rows {
		if n.Type == notification.TypeBannedWordDetected {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly 1 flag notification, got %d", count)
	}
}

func TestScanPostMissingPost(t *testing.T) {
	f := newServiceFixture(t, newFakePostRepo(), newFakeProfileRepo())

	if _, err := f.svc.ScanPost(context.Background(), uuid.New()); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestScanPostCleanContent(t *testing.T) {
	p := &post.Post{ID: uuid.New(), Content: "have a nice day", AuthorID: uuid.New()}
	f := newServiceFixture(t, newFakePostRepo(p), newFakeProfileRepo())

	matches, err := f.svc.ScanPost(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("expected no matches, got %+v", matches)
	}
	if f.notifRepo.creates != 0 {
		t.Fatalf("expected no notification for clean content, got %d creates", f.notifRepo.creates)
	}
}
