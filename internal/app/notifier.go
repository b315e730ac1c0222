// internal/app/notifier.go
package app

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"homework_bot/internal/domain/notification"
	domainTelegram "homework_bot/internal/domain/telegram"

	"github.com/sirupsen/logrus"
)

const (
	// MaxMessageRunes is the Bot API limit for a sendMessage text.
	MaxMessageRunes = 4096

	truncationMark        = "…"
	defaultJournalTimeout = 5 * time.Second
)

// DeliveryError reports a message Telegram did not accept.
type DeliveryError struct {
	ChatID string
	Err    error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("сообщение в чат %s не отправлено: %v", e.ChatID, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// Notifier sends messages to the single configured chat. Delivery failures
// are logged and never returned.
type Notifier struct {
	telegramClient domainTelegram.Client
	journal        notification.Journal
	chatID         string // Numeric id or @channel username
	logger         *logrus.Entry
	journalTimeout time.Duration
}

func NewNotifier(tc domainTelegram.Client, journal notification.Journal, chatID string, logger *logrus.Entry) *Notifier {
	if journal == nil {
		journal = notification.NopJournal{}
	}
	return &Notifier{
		telegramClient: tc,
		journal:        journal,
		chatID:         chatID,
		logger:         logger,
		journalTimeout: defaultJournalTimeout,
	}
}

// Notify attempts a single delivery and reports whether it succeeded.
// Texts longer than MaxMessageRunes are cut so Telegram doesn't reject them.
func (n *Notifier) Notify(ctx context.Context, kind notification.Kind, text string) bool {
	logCtx := n.logger.WithFields(logrus.Fields{"chat_id": n.chatID, "kind": kind})
	logCtx.Info("Sending message to Telegram chat")

	if utf8.RuneCountInString(text) > MaxMessageRunes {
		logCtx.WithField("runes", utf8.RuneCountInString(text)).Warn("Message is too long for Telegram, truncating")
		text = truncateRunes(text, MaxMessageRunes)
	}

	entry := &notification.Entry{ChatID: n.chatID, Kind: kind, Text: text}

	if err := n.telegramClient.SendMessage(n.chatID, text); err != nil {
		derr := &DeliveryError{ChatID: n.chatID, Err: err}
		logCtx.WithError(derr).Error("Message was not delivered")
		entry.Error = derr.Error()
	} else {
		logCtx.Debug("Message delivered")
		entry.Delivered = true
	}

	jctx, cancel := context.WithTimeout(ctx, n.journalTimeout)
	defer cancel()
	if err := n.journal.Record(jctx, entry); err != nil {
		logCtx.WithError(err).Warn("Failed to record notification in journal")
	}
	return entry.Delivered
}

// truncateRunes keeps at most limit runes of s, the last one being the mark.
func truncateRunes(s string, limit int) string {
	keep := limit - utf8.RuneCountInString(truncationMark)
	i := 0
	for pos := range s {
		if i == keep {
			return s[:pos] + truncationMark
		}
		i++
	}
	return s
}
