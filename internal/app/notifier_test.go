package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"homework_bot/internal/domain/notification"

	"github.com/sirupsen/logrus"
)

func TestNotifierNotify(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers to the configured chat and records it", func(t *testing.T) {
		tg := &fakeTelegram{}
		j := &memJournal{}
		logger, _ := newTestLogger()
		n := NewNotifier(tg, j, "42", logger)

		if ok := n.Notify(ctx, notification.KindStatus, "hello"); !ok {
			t.Fatal("expected delivery to succeed")
		}
		if len(tg.chats) != 1 || tg.chats[0] != "42" || tg.texts[0] != "hello" {
			t.Fatalf("unexpected sends: chats=%v texts=%v", tg.chats, tg.texts)
		}
		if len(j.entries) != 1 {
			t.Fatalf("expected one journal entry, got %d", len(j.entries))
		}
		e := j.entries[0]
		if !e.Delivered || e.Error != "" || e.Kind != notification.KindStatus || e.ChatID != "42" {
			t.Fatalf("unexpected entry %+v", e)
		}
	})

	t.Run("delivery failure is swallowed and logged", func(t *testing.T) {
		tg := &fakeTelegram{err: errors.New("chat not found")}
		j := &memJournal{}
		logger, hook := newTestLogger()
		n := NewNotifier(tg, j, "42", logger)

		if ok := n.Notify(ctx, notification.KindError, "boom"); ok {
			t.Fatal("expected delivery to fail")
		}
		if len(tg.texts) != 1 {
			t.Fatalf("expected exactly one attempt, got %d", len(tg.texts))
		}

		var logged bool
		for _, e := range hook.AllEntries() {
			if e.Level != logrus.ErrorLevel {
				continue
			}
			var derr *DeliveryError
			if err, ok := e.Data[logrus.ErrorKey].(error); ok && errors.As(err, &derr) {
				logged = true
			}
		}
		if !logged {
			t.Fatal("expected a DeliveryError to be logged")
		}
		if len(j.entries) != 1 || j.entries[0].Delivered || j.entries[0].Error == "" {
			t.Fatalf("expected a failed journal entry, got %+v", j.entries)
		}
	})

	t.Run("journal failure does not affect delivery", func(t *testing.T) {
		tg := &fakeTelegram{}
		j := &memJournal{err: errors.New("db down")}
		logger, hook := newTestLogger()
		n := NewNotifier(tg, j, "1", logger)

		if ok := n.Notify(ctx, notification.KindNoUpdates, "x"); !ok {
			t.Fatal("expected delivery to succeed")
		}
		if hook.LastEntry() == nil || hook.LastEntry().Level != logrus.WarnLevel {
			t.Fatalf("expected a warning about the journal, got %+v", hook.LastEntry())
		}
	})

	t.Run("nil journal is allowed", func(t *testing.T) {
		tg := &fakeTelegram{}
		logger, _ := newTestLogger()
		n := NewNotifier(tg, nil, "1", logger)
		if ok := n.Notify(ctx, notification.KindStatus, "x"); !ok {
			t.Fatal("expected delivery to succeed")
		}
	})

	t.Run("channel username is passed through", func(t *testing.T) {
		tg := &fakeTelegram{}
		logger, _ := newTestLogger()
		n := NewNotifier(tg, nil, "@homework_channel", logger)

		n.Notify(ctx, notification.KindStatus, "x")
		if len(tg.chats) != 1 || tg.chats[0] != "@homework_channel" {
			t.Fatalf("unexpected chats %v", tg.chats)
		}
	})

	t.Run("long text is cut to the Telegram limit", func(t *testing.T) {
		tg := &fakeTelegram{}
		j := &memJournal{}
		logger, _ := newTestLogger()
		n := NewNotifier(tg, j, "1", logger)

		long := strings.Repeat("ж", MaxMessageRunes+500)
		n.Notify(ctx, notification.KindError, long)

		if len(tg.texts) != 1 {
			t.Fatalf("expected one send, got %d", len(tg.texts))
		}
		got := tg.texts[0]
		if c := utf8.RuneCountInString(got); c != MaxMessageRunes {
			t.Fatalf("sent %d runes, want %d", c, MaxMessageRunes)
		}
		if !utf8.ValidString(got) || !strings.HasSuffix(got, "…") {
			t.Fatalf("expected valid UTF-8 ending with an ellipsis")
		}
		if j.entries[0].Text != got {
			t.Fatal("journal should store the text that was actually sent")
		}
	})

	t.Run("text at the limit is sent unchanged", func(t *testing.T) {
		tg := &fakeTelegram{}
		logger, _ := newTestLogger()
		n := NewNotifier(tg, nil, "1", logger)

		exact := strings.Repeat("x", MaxMessageRunes)
		n.Notify(ctx, notification.KindStatus, exact)
		if tg.texts[0] != exact {
			t.Fatal("text at the limit must not be modified")
		}
	})

	t.Run("stalled journal does not block the caller", func(t *testing.T) {
		tg := &fakeTelegram{}
		j := &stalledJournal{}
		logger, _ := newTestLogger()
		n := NewNotifier(tg, j, "1", logger)
		n.journalTimeout = 20 * time.Millisecond

		done := make(chan bool, 1)
		go func() { done <- n.Notify(ctx, notification.KindStatus, "x") }()

		select {
		case ok := <-done:
			if !ok {
				t.Fatal("delivery succeeded, Notify should report true")
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Notify blocked on the journal")
		}
		if !j.hadDeadline {
			t.Fatal("journal was called without a deadline")
		}
	})
}
