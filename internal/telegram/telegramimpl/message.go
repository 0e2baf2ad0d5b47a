package telegramimpl

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/subreddit-archiver/pkg/formatter"
)

// messageLimit is the longest text a single Telegram message may carry.
const messageLimit = 4096

// SendMessageToUser sends a text message to the configured user, split at
// line boundaries when it does not fit into one message.
func (tg *TelegramImpl) SendMessageToUser(message string) {
	for _, part := range formatter.SplitText(message, messageLimit) {
		msg := tgbotapi.NewMessage(tg.User, part)
		if _, err := tg.TgBot.Send(msg); err != nil {
			tg.Logger.Error("Error sending message to user",
				"userID", tg.User,
				"error", err)
			return
		}
	}

	tg.Logger.Info("Message sent to user",
		"userID", tg.User)
}
