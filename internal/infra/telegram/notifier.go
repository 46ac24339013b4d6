package telegram

import (
	"gopkg.in/telebot.v3"
)

// Notifier implements notify.Notifier using the gopkg.in/telebot.v3 library,
// delivering messages to the configured admin chat.
type Notifier struct {
	bot         *telebot.Bot
	adminChatID int64
}

func NewNotifier(b *telebot.Bot, adminChatID int64) *Notifier {
	return &Notifier{bot: b, adminChatID: adminChatID}
}

// NotifyAdmin sends a text message to the admin chat.
func (n *Notifier) NotifyAdmin(text string) error {
	recipient := &telebot.User{ID: n.adminChatID}
	_, err := n.bot.Send(recipient, text)
	return err
}

// NopNotifier discards all notifications. Used when no telegram token is
// configured.
type NopNotifier struct{}

func (NopNotifier) NotifyAdmin(string) error { return nil }
