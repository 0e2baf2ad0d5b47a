package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// PathEnv names the environment variable pointing at an optional YAML config file.
const PathEnv = "ARCHIVER_CONFIG"

// Account holds the credentials of one Reddit script app and the community it works on.
type Account struct {
	ClientID     string `yaml:"client_id" env:"CLIENT_ID"`
	ClientSecret string `yaml:"client_secret" env:"CLIENT_SECRET"`
	Username     string `yaml:"username" env:"USERNAME"`
	Password     string `yaml:"password" env:"PASSWORD"`
	UserAgent    string `yaml:"user_agent" env:"USER_AGENT" env-default:"linux:subreddit-archiver:v1.0"`
	Subreddit    string `yaml:"subreddit" env:"SUBREDDIT"`
}

type Config struct {
	App struct {
		Env       string `yaml:"env" env:"APP_ENV" env-default:"development"`
		SentryUrl string `yaml:"sentry_url" env:"SENTRY_URL"`
		WorkDir   string `yaml:"work_dir" env:"APP_WORK_DIR" env-default:"./temp_media"`
	} `yaml:"app"`
	Source      Account `yaml:"source" env-prefix:"SOURCE_"`
	Destination Account `yaml:"destination" env-prefix:"DESTINATION_"`
	Mirror      struct {
		LedgerPath      string        `yaml:"ledger_path" env:"MIRROR_LEDGER_PATH" env-default:"./processed_posts.txt"`
		LedgerMax       int           `yaml:"ledger_max" env:"MIRROR_LEDGER_MAX" env-default:"2000"`
		FetchLimit      int           `yaml:"fetch_limit" env:"MIRROR_FETCH_LIMIT" env-default:"100"`
		Window          time.Duration `yaml:"window" env:"MIRROR_WINDOW" env-default:"28m"`
		PostDelay       time.Duration `yaml:"post_delay" env:"MIRROR_POST_DELAY" env-default:"10s"`
		ReplyDelay      time.Duration `yaml:"reply_delay" env:"MIRROR_REPLY_DELAY" env-default:"5s"`
		ReplyLimit      int           `yaml:"reply_limit" env:"MIRROR_REPLY_LIMIT" env-default:"10000"`
		RequestInterval time.Duration `yaml:"request_interval" env:"MIRROR_REQUEST_INTERVAL" env-default:"2s"`
	} `yaml:"mirror"`
	Media struct {
		FFmpegPath      string        `yaml:"ffmpeg_path" env:"MEDIA_FFMPEG_PATH" env-default:"ffmpeg"`
		DownloadTimeout time.Duration `yaml:"download_timeout" env:"MEDIA_DOWNLOAD_TIMEOUT" env-default:"5m"`
		UserAgent       string        `yaml:"user_agent" env:"MEDIA_USER_AGENT" env-default:"Mozilla/5.0"`
	} `yaml:"media"`
	Sync struct {
		Window                   time.Duration `yaml:"window" env:"SYNC_WINDOW" env-default:"24h"`
		ScanLimit                int           `yaml:"scan_limit" env:"SYNC_SCAN_LIMIT" env-default:"1000"`
		RemovedText              string        `yaml:"removed_text" env:"SYNC_REMOVED_TEXT" env-default:"Removed"`
		RuleViolationTexts       []string      `yaml:"rule_violation_texts" env:"SYNC_RULE_VIOLATION_TEXTS" env-separator:","`
		RuleViolationTemplateIDs []string      `yaml:"rule_violation_template_ids" env:"SYNC_RULE_VIOLATION_TEMPLATE_IDS" env-separator:","`
	} `yaml:"sync"`
	Postgres struct {
		Port    int    `yaml:"port" env:"POSTGRES_PORT" env-default:"5432"`
		Host    string `yaml:"host" env:"POSTGRES_HOST"`
		User    string `yaml:"user" env:"POSTGRES_USER"`
		Pass    string `yaml:"pass" env:"POSTGRES_PASS"`
		Name    string `yaml:"name" env:"POSTGRES_NAME"`
		SslMode string `yaml:"ssl_mode" env:"POSTGRES_SSL_MODE" env-default:"disable"`
	} `yaml:"postgres"`
	Telegram struct {
		User  int64  `yaml:"user" env:"TELEGRAM_USER"`
		Token string `yaml:"token" env:"TELEGRAM_TOKEN"`
	} `yaml:"telegram"`
	Schedule struct {
		Mirror string `yaml:"mirror" env:"SCHEDULE_MIRROR" env-default:"*/15 * * * *"`
		Sync   string `yaml:"sync" env:"SCHEDULE_SYNC" env-default:"0 3 * * *"`
	} `yaml:"schedule"`
}

// New reads the configuration from the file named by ARCHIVER_CONFIG, if any,
// with environment variables taking precedence.
func New() (*Config, error) {
	cfg := &Config{}

	var err error
	if path := os.Getenv(PathEnv); path != "" {
		err = cleanenv.ReadConfig(path, cfg)
	} else {
		err = cleanenv.ReadEnv(cfg)
	}
	if err != nil {
		help, _ := cleanenv.GetDescription(cfg, nil)
		return nil, fmt.Errorf("failed to read configuration: %w\n%s", err, help)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Mirror.LedgerMax <= 0 {
		return fmt.Errorf("MIRROR_LEDGER_MAX must be positive, got %d", c.Mirror.LedgerMax)
	}
	if c.Mirror.ReplyLimit <= 0 {
		return fmt.Errorf("MIRROR_REPLY_LIMIT must be positive, got %d", c.Mirror.ReplyLimit)
	}
	return nil
}

// JournalEnabled reports whether the Postgres mirror-record journal is configured.
func (c *Config) JournalEnabled() bool {
	return c.Postgres.Host != ""
}

// GetDSN returns the lib/pq connection string used by migrations.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("dbname=%s user=%s password=%s host=%s port=%d sslmode=%s",
		c.Postgres.Name, c.Postgres.User, c.Postgres.Pass, c.Postgres.Host, c.Postgres.Port, c.Postgres.SslMode,
	)
}

// GetURL returns the pgx connection URL.
func (c *Config) GetURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Postgres.User, c.Postgres.Pass, c.Postgres.Host, c.Postgres.Port, c.Postgres.Name, c.Postgres.SslMode,
	)
}
