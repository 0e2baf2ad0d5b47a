package mirrorimpl

import (
	"context"
	"time"

	"github.com/orgball2608/subreddit-archiver/internal/ledger"
	"github.com/orgball2608/subreddit-archiver/internal/media"
	"github.com/orgball2608/subreddit-archiver/internal/mirror"
	"github.com/orgball2608/subreddit-archiver/internal/publisher"
	"github.com/orgball2608/subreddit-archiver/internal/reddit"
	"github.com/orgball2608/subreddit-archiver/internal/telegram"
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
	Ledger      *ledger.Ledger
	Resolver    mirror.Resolver
	Publisher   mirror.Publisher
	WorkDir     *media.WorkDir
	Telegram    telegram.Client
}

type MirrorImpl struct {
	source     reddit.Source
	dest       reddit.Destination
	ledger     *ledger.Ledger
	resolver   mirror.Resolver
	publisher  mirror.Publisher
	workDir    *media.WorkDir
	telegram   telegram.Client
	logger     logger.Logger
	fetchLimit int
	postDelay  time.Duration
	now        func() time.Time
	sleep      func(ctx context.Context, d time.Duration) error
}

func New(opts Opts) *MirrorImpl {
	return &MirrorImpl{
		source:     opts.Source,
		dest:       opts.Destination,
		ledger:     opts.Ledger,
		resolver:   opts.Resolver,
		publisher:  opts.Publisher,
		workDir:    opts.WorkDir,
		telegram:   opts.Telegram,
		logger:     opts.Logger.WithComponent("Mirror"),
		fetchLimit: opts.Config.Mirror.FetchLimit,
		postDelay:  opts.Config.Mirror.PostDelay,
		now:        time.Now,
		sleep:      publisher.Sleep,
	}
}

var _ mirror.Client = (*MirrorImpl)(nil)
