package synchronizer

import (
	"context"
	"fmt"
	"time"

	"github.com/orgball2608/subreddit-archiver/internal/domain"
	"github.com/orgball2608/subreddit-archiver/internal/provenance"
	"github.com/orgball2608/subreddit-archiver/internal/reddit"
	"github.com/orgball2608/subreddit-archiver/internal/repositories/mirrorrecord"
	"github.com/orgball2608/subreddit-archiver/pkg/config"
	"github.com/orgball2608/subreddit-archiver/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config      *config.Config
	Logger      logger.Logger
	Source      reddit.Source
	Destination reddit.Destination
	Journal     mirrorrecord.Repository
}

// Report summarizes one synchronization pass.
type Report struct {
	Scanned int
	Removed int
	// Skipped counts posts already marked, without provenance, or with a
	// live source.
	Skipped int
	Failed  int
}

// Synchronizer marks mirrored posts as removed once their source is gone.
// The transition is one way: nothing is ever unmarked.
type Synchronizer struct {
	source      reddit.Source
	dest        reddit.Destination
	journal     mirrorrecord.Repository
	logger      logger.Logger
	scanLimit   int
	removedText string
	// annotator is the destination account that writes provenance replies.
	annotator   string
	rules       ViolationRules
	now         func() time.Time
}

func New(opts Opts) *Synchronizer {
	return &Synchronizer{
		source:      opts.Source,
		dest:        opts.Destination,
		journal:     opts.Journal,
		logger:      opts.Logger.WithComponent("Synchronizer"),
		scanLimit:   opts.Config.Sync.ScanLimit,
		removedText: opts.Config.Sync.RemovedText,
		annotator:   opts.Config.Destination.Username,
		rules:       NewViolationRules(opts.Config.Sync.RuleViolationTexts, opts.Config.Sync.RuleViolationTemplateIDs),
		now:         time.Now,
	}
}

// Run re-evaluates every destination post created within window. Failures
// on a single post are logged and skipped; only failing to list the
// destination aborts the pass.
func (s *Synchronizer) Run(ctx context.Context, window time.Duration) (*Report, error) {
	marker := s.removedMarker(ctx)

	posts, err := s.dest.NewPosts(ctx, s.scanLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list destination posts: %w", err)
	}

	cutoff := s.now().Add(-window)
	report := &Report{}
	s.logger.Info("Synchronization started", "candidates", len(posts), "window", window.String())

	for i := range posts {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		post := &posts[i]
		if post.CreatedAt.Before(cutoff) {
			break
		}
		report.Scanned++

		switch s.check(ctx, post, marker) {
		case outcomeRemoved:
			report.Removed++
		case outcomeFailed:
			report.Failed++
		default:
			report.Skipped++
		}
	}

	s.logger.Info("Synchronization finished",
		"scanned", report.Scanned,
		"removed", report.Removed,
		"skipped", report.Skipped,
		"failed", report.Failed,
	)
	return report, nil
}

type outcome int

const (
	outcomeSkipped outcome = iota
	outcomeRemoved
	outcomeFailed
)

func (s *Synchronizer) check(ctx context.Context, post *domain.Post, marker domain.CategoryChoice) outcome {
	log := s.logger.With("destination_id", post.ID)

	if s.isMarked(post, marker) {
		log.Debug("Already marked removed")
		return outcomeSkipped
	}

	replies, err := s.dest.Replies(ctx, post.ID)
	if err != nil {
		log.Warn("Failed to read replies", "error", err, "action", "skipped")
		return outcomeFailed
	}

	sourceID, ok := provenance.SourceID(replies, s.annotator)
	if !ok {
		log.Warn("No provenance annotation", "action", "skipped")
		return outcomeSkipped
	}
	log = log.With("source_id", sourceID)

	src, fetchErr := s.source.GetPost(ctx, sourceID)
	reason, removed, err := Evaluate(src, fetchErr, s.rules)
	if err != nil {
		log.Warn("Failed to fetch source post", "error", err, "action", "skipped")
		return outcomeFailed
	}
	if !removed {
		return outcomeSkipped
	}

	if err := s.dest.SetCategory(ctx, post.ID, marker); err != nil {
		log.Error("Failed to mark removed", "reason", string(reason), "error", err, "action", "skipped")
		return outcomeFailed
	}

	if err := s.journal.MarkRemoved(ctx, sourceID, post.ID, string(reason), s.now()); err != nil {
		log.Warn("Failed to journal removal", "error", err)
	}

	log.Info("Marked removed", "reason", string(reason))
	return outcomeRemoved
}

// removedMarker prefers a destination template whose text is the marker and
// falls back to setting the text directly.
func (s *Synchronizer) removedMarker(ctx context.Context) domain.CategoryChoice {
	templates, err := s.dest.CategoryTemplates(ctx)
	if err != nil {
		s.logger.Warn("Failed to list category templates, using marker text", "error", err)
		return domain.CategoryChoice{Text: s.removedText}
	}

	if id, ok := domain.NewCategoryMapping(templates).Lookup(s.removedText); ok {
		return domain.CategoryChoice{TemplateID: id, Text: s.removedText}
	}
	return domain.CategoryChoice{Text: s.removedText}
}

func (s *Synchronizer) isMarked(post *domain.Post, marker domain.CategoryChoice) bool {
	if marker.TemplateID != "" && post.CategoryTemplateID == marker.TemplateID {
		return true
	}
	return post.CategoryText == s.removedText
}
