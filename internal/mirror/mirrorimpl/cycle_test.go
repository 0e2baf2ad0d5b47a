package mirrorimpl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/orgball2608/subreddit-archiver/internal/domain"
	"github.com/orgball2608/subreddit-archiver/internal/ledger"
	"github.com/orgball2608/subreddit-archiver/internal/media"
	"github.com/orgball2608/subreddit-archiver/internal/publisher"
	mock_reddit "github.com/orgball2608/subreddit-archiver/internal/reddit/mocks"
	mock_telegram "github.com/orgball2608/subreddit-archiver/internal/telegram/mocks"
	"github.com/orgball2608/subreddit-archiver/pkg/config"
	"github.com/orgball2608/subreddit-archiver/pkg/logger"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeResolver struct {
	calls []string
	dirs  []string
}

func (f *fakeResolver) Resolve(_ context.Context, post *domain.Post, shape domain.Shape, dir string) domain.Resolution {
	f.calls = append(f.calls, post.ID)
	f.dirs = append(f.dirs, dir)
	_ = os.WriteFile(filepath.Join(dir, "media_video.mp4"), []byte("partial"), 0o644)
	return domain.Resolution{Shape: shape}
}

type fakePublisher struct {
	ledger    *ledger.Ledger
	errs      map[string]error
	published []string
	shapes    []domain.Shape
}

func (f *fakePublisher) Publish(_ context.Context, post *domain.Post, res domain.Resolution, _ domain.CategoryMapping) (*publisher.Outcome, error) {
	if err := f.errs[post.ID]; err != nil {
		return nil, err
	}
	f.ledger.Append(post.ID)
	f.published = append(f.published, post.ID)
	f.shapes = append(f.shapes, res.Shape)
	return &publisher.Outcome{DestinationID: "d-" + post.ID, Action: domain.ActionPublished}, nil
}

type fixture struct {
	mirror    *MirrorImpl
	source    *mock_reddit.MockSource
	dest      *mock_reddit.MockDestination
	telegram  *mock_telegram.MockClient
	ledger    *ledger.Ledger
	resolver  *fakeResolver
	publisher *fakePublisher
	workDir   *media.WorkDir
	sleeps    []time.Duration
}

func newFixture(t *testing.T, mirrored ...string) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	l, err := ledger.Open(filepath.Join(t.TempDir(), "processed_posts.txt"), 2000)
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	for _, id := range mirrored {
		l.Append(id)
	}
	if err := l.Save(); err != nil {
		t.Fatalf("save ledger: %v", err)
	}

	f := &fixture{
		source:    mock_reddit.NewMockSource(ctrl),
		dest:      mock_reddit.NewMockDestination(ctrl),
		telegram:  mock_telegram.NewMockClient(ctrl),
		ledger:    l,
		resolver:  &fakeResolver{},
		publisher: &fakePublisher{ledger: l, errs: map[string]error{}},
		workDir:   media.NewWorkDir(filepath.Join(t.TempDir(), "temp_media")),
	}

	cfg := &config.Config{}
	cfg.Mirror.FetchLimit = 100
	cfg.Mirror.PostDelay = 10 * time.Second

	f.mirror = New(Opts{
		Config:      cfg,
		Logger:      logger.New(logger.Opts{Writer: io.Discard}),
		Source:      f.source,
		Destination: f.dest,
		Ledger:      l,
		Resolver:    f.resolver,
		Publisher:   f.publisher,
		WorkDir:     f.workDir,
		Telegram:    f.telegram,
	})
	f.mirror.now = func() time.Time { return testNow }
	f.mirror.sleep = func(_ context.Context, d time.Duration) error {
		f.sleeps = append(f.sleeps, d)
		return nil
	}
	return f
}

func textPost(id string, age time.Duration) domain.Post {
	return domain.Post{ID: id, Title: "post " + id, Author: "alice", IsSelf: true, SelfText: "hello", CreatedAt: testNow.Add(-age)}
}

func (f *fixture) expectListing(posts ...domain.Post) {
	f.dest.EXPECT().CategoryTemplates(gomock.Any()).Return(nil, nil)
	f.source.EXPECT().NewPosts(gomock.Any(), 100).Return(posts, nil)
}

func TestRunCycleIsIdempotent(t *testing.T) {
	f := newFixture(t, "a", "b", "c")
	f.expectListing(textPost("c", time.Minute), textPost("b", 2*time.Minute), textPost("a", 3*time.Minute))

	report, err := f.mirror.RunCycle(testContext(t), 28*time.Minute)
	if err != nil {
		t.Fatalf("RunCycle: %v", err)
	}

	if len(f.resolver.calls) != 0 || len(f.publisher.published) != 0 {
		t.Fatalf("already mirrored posts were processed: %v", f.publisher.published)
	}
	if report.Skipped != 3 || report.Mirrored != 0 {
		t.Fatalf("report = %+v", report)
	}
	if f.ledger.Dirty() || f.ledger.Len() != 3 {
		t.Fatalf("ledger mutated: dirty=%v len=%d", f.ledger.Dirty(), f.ledger.Len())
	}
}

func TestRunCycleStopsAtWindow(t *testing.T) {
	f := newFixture(t, "seen")
	f.expectListing(
		textPost("fresh", time.Minute),
		textPost("seen", 5*time.Minute),
		textPost("old", time.Hour),
		textPost("after-old", 2*time.Minute),
	)

	report, err := f.mirror.RunCycle(testContext(t), 28*time.Minute)
	if err != nil {
		t.Fatalf("RunCycle: %v", err)
	}

	if fmt.Sprint(f.publisher.published) != "[fresh]" {
		t.Fatalf("published = %v", f.publisher.published)
	}
	if f.publisher.shapes[0] != domain.ShapeSelfText {
		t.Fatalf("shape = %s", f.publisher.shapes[0])
	}
	if report.Mirrored != 1 || report.Skipped != 1 || report.Scanned != 1 {
		t.Fatalf("report = %+v", report)
	}
	if len(f.sleeps) != 0 {
		t.Fatalf("sleeps = %v", f.sleeps)
	}
}

func TestRunCycleContinuesAfterPostFailure(t *testing.T) {
	f := newFixture(t)
	f.publisher.errs["p1"] = errors.New("fallback rejected")
	f.expectListing(textPost("p1", time.Minute), textPost("p2", 2*time.Minute))
	f.telegram.EXPECT().SendMessageToUser(gomock.Any())

	report, err := f.mirror.RunCycle(testContext(t), 28*time.Minute)
	if err != nil {
		t.Fatalf("RunCycle: %v", err)
	}

	if report.Failed != 1 || report.Mirrored != 1 || fmt.Sprint(report.FailedIDs) != "[p1]" {
		t.Fatalf("report = %+v", report)
	}
	if len(f.sleeps) != 1 || f.sleeps[0] != 10*time.Second {
		t.Fatalf("sleeps = %v", f.sleeps)
	}
	if f.ledger.Contains("p1") || !f.ledger.Contains("p2") {
		t.Fatalf("ledger = %v", f.ledger.IDs())
	}
}

func TestRunCycleAbortsOnLedgerFailure(t *testing.T) {
	f := newFixture(t)
	f.publisher.errs["p1"] = fmt.Errorf("%w: disk full", publisher.ErrLedgerWrite)
	f.expectListing(textPost("p1", time.Minute), textPost("p2", 2*time.Minute))
	f.telegram.EXPECT().SendMessageToUser(gomock.Any())

	_, err := f.mirror.RunCycle(testContext(t), 28*time.Minute)
	if !errors.Is(err, publisher.ErrLedgerWrite) {
		t.Fatalf("expected ErrLedgerWrite, got %v", err)
	}
	if len(f.resolver.calls) != 1 {
		t.Fatalf("cycle continued after ledger failure: %v", f.resolver.calls)
	}
}

func TestRunCycleRemovesMedia(t *testing.T) {
	f := newFixture(t)

	leftover := filepath.Join(f.workDir.Root(), "stale")
	if err := os.MkdirAll(leftover, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	f.expectListing(textPost("p1", time.Minute))

	if _, err := f.mirror.RunCycle(testContext(t), 28*time.Minute); err != nil {
		t.Fatalf("RunCycle: %v", err)
	}

	entries, err := os.ReadDir(f.workDir.Root())
	if err != nil {
		t.Fatalf("read work dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("work dir not empty: %v", entries)
	}
	if len(f.resolver.dirs) != 1 {
		t.Fatalf("resolver dirs = %v", f.resolver.dirs)
	}
}

func TestCopyPostHonoursLedger(t *testing.T) {
	f := newFixture(t, "abc")

	out, err := f.mirror.CopyPost(testContext(t), "abc", false)
	if err != nil || out != nil {
		t.Fatalf("CopyPost = %+v, %v", out, err)
	}
	if len(f.publisher.published) != 0 {
		t.Fatal("mirrored post was copied again")
	}
}

func TestCopyPostIgnoresWindow(t *testing.T) {
	f := newFixture(t, "abc")

	post := textPost("abc", 30*24*time.Hour)
	f.source.EXPECT().GetPost(gomock.Any(), "abc").Return(&post, nil)
	f.dest.EXPECT().CategoryTemplates(gomock.Any()).Return(nil, errors.New("forbidden"))

	out, err := f.mirror.CopyPost(testContext(t), "abc", true)
	if err != nil {
		t.Fatalf("CopyPost: %v", err)
	}
	if out.DestinationID != "d-abc" || f.publisher.shapes[0] != domain.ShapeSelfText {
		t.Fatalf("outcome = %+v shapes = %v", out, f.publisher.shapes)
	}
}

func TestRunCycleListingFailure(t *testing.T) {
	f := newFixture(t)
	f.dest.EXPECT().CategoryTemplates(gomock.Any()).Return(nil, nil)
	f.source.EXPECT().NewPosts(gomock.Any(), 100).Return(nil, errors.New("unauthorized"))

	if _, err := f.mirror.RunCycle(testContext(t), 28*time.Minute); err == nil {
		t.Fatal("expected an error")
	}
}
