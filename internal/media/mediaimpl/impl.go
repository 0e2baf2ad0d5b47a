package mediaimpl

import (
	"net/http"

	"github.com/orgball2608/subreddit-archiver/internal/media"
	"github.com/orgball2608/subreddit-archiver/internal/ratelimit"
	"github.com/orgball2608/subreddit-archiver/pkg/config"
	"github.com/orgball2608/subreddit-archiver/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
	Gate   ratelimit.Gate
}

type MediaImpl struct {
	http       *http.Client
	gate       ratelimit.Gate
	logger     logger.Logger
	userAgent  string
	ffmpegPath string
}

func New(opts Opts) *MediaImpl {
	return &MediaImpl{
		http:       &http.Client{Timeout: opts.Config.Media.DownloadTimeout},
		gate:       opts.Gate,
		logger:     opts.Logger.WithComponent("MediaFetcher"),
		userAgent:  opts.Config.Media.UserAgent,
		ffmpegPath: opts.Config.Media.FFmpegPath,
	}
}

var _ media.Fetcher = (*MediaImpl)(nil)
