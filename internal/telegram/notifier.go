package telegram

import (
	"fmt"
	"time"

	"gopkg.in/telebot.v3"

	"github.com/terraincognita07/selene/internal/logger"
)

// Sender is the part of *telebot.Bot used for delivery.
type Sender interface {
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

type Translator interface {
	Translatef(language string, key string, args ...any) string
}

type Notifier struct {
	sender Sender
}

func NewBot(token string) (*telebot.Bot, error) {
	bot, err := telebot.NewBot(telebot.Settings{
		Token:  token,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) {
			entry := logger.Log.WithError(err)
			if c != nil && c.Chat() != nil {
				entry = entry.WithField("chat_id", c.Chat().ID)
			}
			entry.Error("telegram: update handling failed")
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return bot, nil
}

func NewNotifier(sender Sender) *Notifier {
	return &Notifier{sender: sender}
}

func (notifier *Notifier) Notify(chatID int64, message string) error {
	_, err := notifier.sender.Send(&telebot.Chat{ID: chatID}, message, &telebot.SendOptions{DisableWebPagePreview: true})
	if err != nil {
		return fmt.Errorf("send telegram message to %d: %w", chatID, err)
	}
	return nil
}

// RegisterHandlers answers /start with the chat id the user has to store in
// their profile to receive reminders.
func RegisterHandlers(bot *telebot.Bot, translator Translator) {
	bot.Handle("/start", func(c telebot.Context) error {
		language := ""
		if sender := c.Sender(); sender != nil {
			language = sender.LanguageCode
		}
		return c.Send(StartReply(translator, language, c.Chat().ID))
	})
}

func StartReply(translator Translator, language string, chatID int64) string {
	return translator.Translatef(language, "bot.start", chatID)
}
