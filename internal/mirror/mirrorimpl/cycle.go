package mirrorimpl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/orgball2608/subreddit-archiver/internal/classifier"
	"github.com/orgball2608/subreddit-archiver/internal/domain"
	"github.com/orgball2608/subreddit-archiver/internal/mirror"
	"github.com/orgball2608/subreddit-archiver/internal/publisher"
	"github.com/orgball2608/subreddit-archiver/pkg/formatter"
)

// RunCycle processes the newest source posts one at a time, newest first,
// and stops at the first post older than window. Per-post failures are
// logged and counted; only a ledger write failure aborts the cycle.
func (m *MirrorImpl) RunCycle(ctx context.Context, window time.Duration) (*mirror.Report, error) {
	if n, err := m.workDir.Sweep(); err != nil {
		return nil, err
	} else if n > 0 {
		m.logger.Warn("Removed leftovers of an interrupted run", "entries", n, "dir", m.workDir.Root())
	}

	mapping := m.categoryMapping(ctx)

	posts, err := m.source.NewPosts(ctx, m.fetchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list source posts: %w", err)
	}

	cutoff := m.now().Add(-window)
	report := &mirror.Report{}
	m.logger.Info("Cycle started", "candidates", len(posts), "window", window.String(), "cutoff", cutoff.Format(time.RFC3339))

	processed := 0
scan:
	for i := range posts {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		post := &posts[i]
		shape := classifier.Classify(post, cutoff, m.ledger)
		switch shape {
		case domain.ShapeOutOfWindow:
			break scan
		case domain.ShapeAlreadyMirrored:
			report.Skipped++
			continue
		}
		report.Scanned++

		if processed > 0 {
			if err := m.sleep(ctx, m.postDelay); err != nil {
				return report, err
			}
		}
		processed++

		out, err := m.process(ctx, post, shape, mapping)
		if errors.Is(err, publisher.ErrLedgerWrite) {
			m.logger.Error("Ledger write failed", "source_id", post.ID, "error", err, "action", "aborted")
			m.notify(report, err)
			return report, err
		}
		if err != nil {
			m.logger.Error("Failed to mirror post", "source_id", post.ID, "error", err, "action", "skipped")
			report.Failed++
			report.FailedIDs = append(report.FailedIDs, post.ID)
			continue
		}

		report.Mirrored++
		if out.Action == domain.ActionFallback {
			report.Fallbacks++
		}
	}

	m.logger.Info("Cycle finished", "report", report.String())
	if report.Failed > 0 {
		m.notify(report, nil)
	}
	return report, nil
}

// CopyPost mirrors a single post by id, ignoring the scan window.
func (m *MirrorImpl) CopyPost(ctx context.Context, id string, force bool) (*publisher.Outcome, error) {
	if !force && m.ledger.Contains(id) {
		m.logger.Info("Post already mirrored, use --force to mirror again", "source_id", id)
		return nil, nil
	}

	post, err := m.source.GetPost(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch source post %s: %w", id, err)
	}

	shape := classifier.Classify(post, time.Time{}, nil)
	return m.process(ctx, post, shape, m.categoryMapping(ctx))
}

// process runs one mirroring attempt inside its own work directory, which
// is removed whatever the result.
func (m *MirrorImpl) process(ctx context.Context, post *domain.Post, shape domain.Shape, mapping domain.CategoryMapping) (*publisher.Outcome, error) {
	dir, cleanup, err := m.workDir.Attempt()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := cleanup(); err != nil {
			m.logger.Error("Failed to remove attempt media", "source_id", post.ID, "error", err, "action", "left for next sweep")
		}
	}()

	m.logger.Info("Processing post", "source_id", post.ID, "shape", shape.String(), "title", formatter.Truncate(post.Title, 80))

	res := m.resolver.Resolve(ctx, post, shape, dir)
	return m.publisher.Publish(ctx, post, res, mapping)
}

// categoryMapping is rebuilt on every run because templates can change.
func (m *MirrorImpl) categoryMapping(ctx context.Context) domain.CategoryMapping {
	templates, err := m.dest.CategoryTemplates(ctx)
	if err != nil {
		m.logger.Warn("Failed to list destination categories, continuing without mapping", "error", err)
		return domain.CategoryMapping{}
	}
	return domain.NewCategoryMapping(templates)
}

func (m *MirrorImpl) notify(report *mirror.Report, cause error) {
	msg := "Mirror cycle: " + report.String()
	if len(report.FailedIDs) > 0 {
		msg += fmt.Sprintf("\nFailed source posts: %v", report.FailedIDs)
	}
	if cause != nil {
		msg += "\nCycle aborted: " + cause.Error()
	}
	m.telegram.SendMessageToUser(msg)
}
