package telegramimpl

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/subreddit-archiver/internal/telegram"
	"github.com/orgball2608/subreddit-archiver/pkg/config"
	"github.com/orgball2608/subreddit-archiver/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type TelegramImpl struct {
	TgBot  *tgbotapi.BotAPI
	Logger logger.Logger
	User   int64
}

var _ telegram.Client = (*TelegramImpl)(nil)

// New connects the bot when a token is configured and returns Noop otherwise.
func New(opts Opts) (telegram.Client, error) {
	log := opts.Logger.WithComponent("Telegram")
	if opts.Config.Telegram.Token == "" || opts.Config.Telegram.User == 0 {
		log.Info("Operator alerts disabled, TELEGRAM_TOKEN or TELEGRAM_USER is not set")
		return Noop{}, nil
	}

	tgBot, err := tgbotapi.NewBotAPI(opts.Config.Telegram.Token)
	if err != nil {
		log.Error("Error creating bot", "error", err)
		return nil, err
	}

	return newWithBot(tgBot, opts.Config.Telegram.User, log), nil
}

func newWithBot(bot *tgbotapi.BotAPI, user int64, log logger.Logger) *TelegramImpl {
	return &TelegramImpl{
		TgBot:  bot,
		Logger: log,
		User:   user,
	}
}

// Noop drops every alert.
type Noop struct{}

var _ telegram.Client = Noop{}

func (Noop) SendMessageToUser(string) {}
