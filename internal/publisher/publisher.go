package publisher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/orgball2608/subreddit-archiver/internal/domain"
	"github.com/orgball2608/subreddit-archiver/internal/ledger"
	"github.com/orgball2608/subreddit-archiver/internal/provenance"
	"github.com/orgball2608/subreddit-archiver/internal/reddit"
	"github.com/orgball2608/subreddit-archiver/internal/repositories/mirrorrecord"
	"github.com/orgball2608/subreddit-archiver/pkg/config"
	"github.com/orgball2608/subreddit-archiver/pkg/formatter"
	"github.com/orgball2608/subreddit-archiver/pkg/logger"
	"go.uber.org/fx"
)

// ErrLedgerWrite wraps ledger persistence failures. Callers must stop the run.
var ErrLedgerWrite = errors.New("ledger write failed")

// maxFallbackError caps the error text quoted in a fallback post.
const maxFallbackError = 500

type Opts struct {
	fx.In

	Config      *config.Config
	Logger      logger.Logger
	Destination reddit.Destination
	Ledger      *ledger.Ledger
	Journal     mirrorrecord.Repository
}

// Outcome describes the destination post created for a source post.
type Outcome struct {
	DestinationID string
	Action        domain.MirrorAction
	Replies       int
}

type Publisher struct {
	dest       reddit.Destination
	ledger     *ledger.Ledger
	journal    mirrorrecord.Repository
	logger     logger.Logger
	replyLimit int
	replyDelay time.Duration
	sleep      func(ctx context.Context, d time.Duration) error
}

func New(opts Opts) *Publisher {
	return &Publisher{
		dest:       opts.Destination,
		ledger:     opts.Ledger,
		journal:    opts.Journal,
		logger:     opts.Logger.WithComponent("Publisher"),
		replyLimit: opts.Config.Mirror.ReplyLimit,
		replyDelay: opts.Config.Mirror.ReplyDelay,
		sleep:      Sleep,
	}
}

// Publish creates exactly one destination post for post, or none when even
// the text fallback is rejected. The source id enters the ledger only after
// a post was created.
func (p *Publisher) Publish(ctx context.Context, post *domain.Post, res domain.Resolution, mapping domain.CategoryMapping) (*Outcome, error) {
	log := p.logger.With("source_id", post.ID, "shape", res.Shape.String())

	out := &Outcome{Action: domain.ActionPublished}
	resolved := len(res.Degradations)
	id, err := p.submit(ctx, post, &res)
	for _, d := range res.Degradations[resolved:] {
		log.Warn("Media left out", "step", d.Step, "cause", d.Cause, "action", "degraded")
	}
	if err != nil {
		log.Warn("Publish failed, posting text fallback", "error", err, "action", "fallback")
		out.Action = domain.ActionFallback

		id, err = p.dest.SubmitText(ctx, post.Title, fallbackBody(post, err))
		if err != nil {
			return nil, fmt.Errorf("fallback publish of %s failed: %w", post.ID, err)
		}
	}
	out.DestinationID = id
	log = log.With("destination_id", id)

	p.applyCategory(ctx, log, id, post, mapping)
	out.Replies = p.annotate(ctx, log, id, provenance.Render(post, res))

	if err := p.record(post.ID); err != nil {
		return out, err
	}
	p.journalCreate(ctx, log, post, res, out)

	log.Info("Mirrored post", "action", string(out.Action), "replies", out.Replies)
	return out, nil
}

// submit picks the submission call from the resolved shape.
func (p *Publisher) submit(ctx context.Context, post *domain.Post, res *domain.Resolution) (string, error) {
	handler, ok := dispatch[res.Shape]
	if !ok {
		return "", fmt.Errorf("no publisher for shape %s", res.Shape)
	}
	return handler(ctx, p.dest, post, res)
}

func (p *Publisher) applyCategory(ctx context.Context, log logger.Logger, destID string, post *domain.Post, mapping domain.CategoryMapping) {
	if post.CategoryText == "" {
		return
	}

	templateID, ok := mapping.Lookup(post.CategoryText)
	if !ok {
		log.Info("No matching category on destination", "category", post.CategoryText)
		return
	}

	if err := p.dest.SetCategory(ctx, destID, domain.CategoryChoice{TemplateID: templateID}); err != nil {
		log.Warn("Failed to apply category", "category", post.CategoryText, "error", err)
		return
	}
	log.Info("Applied category", "category", post.CategoryText, "template_id", templateID)
}

// annotate posts the provenance text as ordered replies and returns how many
// were created. A failed chunk stops the sequence so order is never broken.
func (p *Publisher) annotate(ctx context.Context, log logger.Logger, destID, body string) int {
	chunks := formatter.SplitText(body, p.replyLimit)
	for i, chunk := range chunks {
		if i > 0 {
			if err := p.sleep(ctx, p.replyDelay); err != nil {
				log.Warn("Provenance interrupted", "error", err, "posted", i)
				return i
			}
		}
		if err := p.dest.Reply(ctx, destID, chunk); err != nil {
			log.Error("Failed to post provenance", "chunk", i+1, "chunks", len(chunks), "error", err)
			return i
		}
	}
	return len(chunks)
}

func (p *Publisher) record(sourceID string) error {
	if !p.ledger.Append(sourceID) {
		return nil
	}
	if err := p.ledger.Save(); err != nil {
		return fmt.Errorf("%w: %w", ErrLedgerWrite, err)
	}
	return nil
}

func (p *Publisher) journalCreate(ctx context.Context, log logger.Logger, post *domain.Post, res domain.Resolution, out *Outcome) {
	steps := make([]string, 0, len(res.Degradations))
	for _, d := range res.Degradations {
		steps = append(steps, d.Step)
	}

	err := p.journal.Create(ctx, domain.MirrorRecord{
		SourceID:      post.ID,
		DestinationID: out.DestinationID,
		Shape:         res.Shape.String(),
		Action:        out.Action,
		Degradations:  steps,
		CreatedAt:     time.Now(),
	})
	if err != nil {
		log.Warn("Failed to journal mirror record", "error", err)
	}
}

func fallbackBody(post *domain.Post, cause error) string {
	link := post.URL
	if link == "" || post.IsSelf {
		link = post.PermalinkURL()
	}
	return fmt.Sprintf("Mirroring this post failed: %s\n\nOriginal link: %s",
		formatter.Truncate(cause.Error(), maxFallbackError), link)
}

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
