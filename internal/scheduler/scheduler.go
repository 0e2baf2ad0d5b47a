package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/orgball2608/subreddit-archiver/internal/mirror"
	"github.com/orgball2608/subreddit-archiver/internal/synchronizer"
	"github.com/orgball2608/subreddit-archiver/internal/telegram"
	"github.com/orgball2608/subreddit-archiver/pkg/config"
	"github.com/orgball2608/subreddit-archiver/pkg/logger"
	"go.uber.org/fx"
)

// Syncer runs one removal synchronization pass.
type Syncer interface {
	Run(ctx context.Context, window time.Duration) (*synchronizer.Report, error)
}

type Opts struct {
	fx.In

	Config   *config.Config
	Logger   logger.Logger
	Mirror   mirror.Client
	Sync     Syncer
	Telegram telegram.Client
}

type Scheduler struct {
	mirror   mirror.Client
	sync     Syncer
	telegram telegram.Client
	logger   logger.Logger
	config   *config.Config
}

func New(opts Opts) *Scheduler {
	return &Scheduler{
		mirror:   opts.Mirror,
		sync:     opts.Sync,
		telegram: opts.Telegram,
		logger:   opts.Logger.WithComponent("Scheduler"),
		config:   opts.Config,
	}
}

// Start schedules the mirror cycle and the synchronization pass. The caller
// shuts the returned scheduler down. At most one job runs at a time, so the
// two never interleave requests.
func (s *Scheduler) Start(ctx context.Context) (gocron.Scheduler, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLimitConcurrentJobs(1, gocron.LimitModeWait),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.CronJob(s.config.Schedule.Mirror, false),
		gocron.NewTask(s.runMirror, ctx),
		gocron.WithName("mirror"),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return nil, fmt.Errorf("failed to schedule mirror cycle %q: %w", s.config.Schedule.Mirror, err)
	}

	_, err = scheduler.NewJob(
		gocron.CronJob(s.config.Schedule.Sync, false),
		gocron.NewTask(s.runSync, ctx),
		gocron.WithName("sync"),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return nil, fmt.Errorf("failed to schedule synchronization %q: %w", s.config.Schedule.Sync, err)
	}

	scheduler.Start()
	s.logger.Info("Scheduler started", "mirror", s.config.Schedule.Mirror, "sync", s.config.Schedule.Sync)
	return scheduler, nil
}

// Run schedules both jobs and blocks until ctx is done, then waits for a
// running job to finish.
func (s *Scheduler) Run(ctx context.Context) error {
	scheduler, err := s.Start(ctx)
	if err != nil {
		return err
	}

	<-ctx.Done()
	s.logger.Info("Stopping scheduler")
	if err := scheduler.Shutdown(); err != nil {
		return fmt.Errorf("failed to shut down scheduler: %w", err)
	}
	return nil
}

func (s *Scheduler) runMirror(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	report, err := s.mirror.RunCycle(ctx, s.config.Mirror.Window)
	if err != nil {
		s.logger.Error("Mirror cycle failed", "error", err)
		s.telegram.SendMessageToUser("Mirror cycle failed: " + err.Error())
		return
	}
	s.logger.Info("Mirror cycle done", "report", report.String())
}

func (s *Scheduler) runSync(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	report, err := s.sync.Run(ctx, s.config.Sync.Window)
	if err != nil {
		s.logger.Error("Synchronization failed", "error", err)
		s.telegram.SendMessageToUser("Synchronization failed: " + err.Error())
		return
	}
	s.logger.Info("Synchronization done", "removed", report.Removed, "failed", report.Failed)
}
