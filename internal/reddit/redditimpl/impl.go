package redditimpl

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/orgball2608/subreddit-archiver/internal/ratelimit"
	"github.com/orgball2608/subreddit-archiver/internal/reddit"
	"github.com/orgball2608/subreddit-archiver/pkg/config"
	"github.com/orgball2608/subreddit-archiver/pkg/logger"
	"github.com/orgball2608/subreddit-archiver/pkg/retry"
	"go.uber.org/fx"
	"golang.org/x/oauth2"
)

const (
	apiBaseURL     = "https://oauth.reddit.com"
	tokenURL       = "https://www.reddit.com/api/v1/access_token"
	requestTimeout = 60 * time.Second
	// Upper bound for the platform to finish processing an uploaded asset.
	processingTimeout = 3 * time.Minute
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
	Gate   ratelimit.Gate
}

// RedditImpl is an authenticated client bound to one community.
type RedditImpl struct {
	api       *http.Client
	storage   *http.Client
	dialer    *websocket.Dialer
	baseURL   string
	subreddit string
	userAgent string
	gate      ratelimit.Gate
	logger    logger.Logger
	retry     retry.Config
	wsTimeout time.Duration
}

var (
	_ reddit.Source      = (*RedditImpl)(nil)
	_ reddit.Destination = (*RedditImpl)(nil)
)

// NewSource logs in with the source account.
func NewSource(opts Opts) (*RedditImpl, error) {
	return login(opts.Config.Source, "source", opts)
}

// NewDestination logs in with the destination account.
func NewDestination(opts Opts) (*RedditImpl, error) {
	return login(opts.Config.Destination, "destination", opts)
}

func login(acc config.Account, role string, opts Opts) (*RedditImpl, error) {
	if acc.ClientID == "" || acc.ClientSecret == "" || acc.Username == "" || acc.Password == "" {
		return nil, fmt.Errorf("%s account: credentials are not configured", role)
	}
	if acc.Subreddit == "" {
		return nil, fmt.Errorf("%s account: subreddit is not configured", role)
	}

	plain := &http.Client{
		Timeout:   requestTimeout,
		Transport: &userAgentTransport{userAgent: acc.UserAgent, base: http.DefaultTransport},
	}

	oauthCfg := &oauth2.Config{
		ClientID:     acc.ClientID,
		ClientSecret: acc.ClientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  tokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, plain)
	source := oauth2.ReuseTokenSource(nil, &passwordSource{
		ctx:      tokenCtx,
		config:   oauthCfg,
		username: acc.Username,
		password: acc.Password,
	})

	if _, err := source.Token(); err != nil {
		return nil, fmt.Errorf("%s account: login as u/%s failed: %w", role, acc.Username, err)
	}

	api := &http.Client{
		Timeout:   requestTimeout,
		Transport: &oauth2.Transport{Source: source, Base: plain.Transport},
	}

	log := opts.Logger.WithComponent("Reddit").With("role", role, "subreddit", acc.Subreddit)
	log.Info("Logged in", "username", acc.Username)

	storage := newStorageClient(acc.UserAgent, opts.Config.Media.DownloadTimeout)
	return newClient(apiBaseURL, acc.Subreddit, acc.UserAgent, api, storage, opts.Gate, log), nil
}

// newStorageClient talks to the media bucket. Uploads stream whole videos,
// so they get the media timeout, never less than the API one.
func newStorageClient(userAgent string, timeout time.Duration) *http.Client {
	if timeout < requestTimeout {
		timeout = requestTimeout
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: &userAgentTransport{userAgent: userAgent, base: http.DefaultTransport},
	}
}

func newClient(baseURL, subreddit, userAgent string, api, storage *http.Client, gate ratelimit.Gate, log logger.Logger) *RedditImpl {
	return &RedditImpl{
		api:       api,
		storage:   storage,
		dialer:    &websocket.Dialer{HandshakeTimeout: requestTimeout},
		baseURL:   baseURL,
		subreddit: subreddit,
		userAgent: userAgent,
		gate:      gate,
		logger:    log,
		retry:     retry.DefaultConfig(),
		wsTimeout: processingTimeout,
	}
}
