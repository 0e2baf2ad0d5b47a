package app

import (
	"github.com/orgball2608/subreddit-archiver/internal/ledger"
	"github.com/orgball2608/subreddit-archiver/internal/media"
	"github.com/orgball2608/subreddit-archiver/internal/media/mediaimpl"
	"github.com/orgball2608/subreddit-archiver/internal/mirror"
	"github.com/orgball2608/subreddit-archiver/internal/mirror/mirrorimpl"
	"github.com/orgball2608/subreddit-archiver/internal/publisher"
	"github.com/orgball2608/subreddit-archiver/internal/ratelimit"
	"github.com/orgball2608/subreddit-archiver/internal/reddit"
	"github.com/orgball2608/subreddit-archiver/internal/reddit/redditimpl"
	"github.com/orgball2608/subreddit-archiver/internal/repositories/mirrorrecord"
	"github.com/orgball2608/subreddit-archiver/internal/resolver"
	"github.com/orgball2608/subreddit-archiver/internal/scheduler"
	"github.com/orgball2608/subreddit-archiver/internal/synchronizer"
	"github.com/orgball2608/subreddit-archiver/internal/telegram/telegramimpl"
	"github.com/orgball2608/subreddit-archiver/pkg/config"
	"github.com/orgball2608/subreddit-archiver/pkg/logger"
	"go.uber.org/fx"
)

// Base provides configuration, logging and the request gate shared by
// every outbound client.
var Base = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		ratelimit.FromConfig,
	),
)

// Reddit logs in to both accounts. Construction fails on missing or
// rejected credentials.
var Reddit = fx.Options(
	fx.Provide(
		fx.Annotate(
			redditimpl.NewSource,
			fx.As(new(reddit.Source)),
		),
		fx.Annotate(
			redditimpl.NewDestination,
			fx.As(new(reddit.Destination)),
		),
	),
)

// Module is the whole archiver. Commands pull what they need with
// fx.Populate, so unused parts are never constructed.
var Module = fx.Options(
	Base,
	Reddit,
	ledger.Module,
	mirrorrecord.Module,
	fx.Provide(
		telegramimpl.New,
		func(cfg *config.Config) *media.WorkDir {
			return media.NewWorkDir(cfg.App.WorkDir)
		},
		fx.Annotate(
			mediaimpl.New,
			fx.As(new(media.Fetcher)),
		),
		fx.Annotate(
			resolver.New,
			fx.As(new(mirror.Resolver)),
		),
		fx.Annotate(
			publisher.New,
			fx.As(new(mirror.Publisher)),
		),
		fx.Annotate(
			mirrorimpl.New,
			fx.As(new(mirror.Client)),
		),
		fx.Annotate(
			synchronizer.New,
			fx.As(new(scheduler.Syncer)),
		),
		scheduler.New,
	),
)
