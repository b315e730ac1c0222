package app

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"homework_bot/internal/domain/notification"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func newTestLogger() (*logrus.Entry, *test.Hook) {
	l, hook := test.NewNullLogger()
	l.SetLevel(logrus.DebugLevel)
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l), hook
}

// fetchResult is one scripted answer of fakeFetcher.
type fetchResult struct {
	body string
	err  error
}

type fakeFetcher struct {
	results []fetchResult
	calls   []int64 // from_date of every call
}

func (f *fakeFetcher) Fetch(ctx context.Context, from int64) (json.RawMessage, error) {
	f.calls = append(f.calls, from)
	if len(f.results) == 0 {
		return nil, errors.New("fakeFetcher: no scripted result")
	}
	r := f.results[0]
	if len(f.results) > 1 {
		f.results = f.results[1:]
	}
	if r.err != nil {
		return nil, r.err
	}
	return json.RawMessage(r.body), nil
}

type sentMessage struct {
	kind notification.Kind
	text string
}

type fakeSender struct {
	sent []sentMessage
}

func (f *fakeSender) Notify(ctx context.Context, kind notification.Kind, text string) bool {
	f.sent = append(f.sent, sentMessage{kind: kind, text: text})
	return true
}

// countingWaiter returns immediately and cancels the loop after limit waits.
type countingWaiter struct {
	waits  int
	limit  int
	cancel context.CancelFunc
}

func (w *countingWaiter) Wait(ctx context.Context) error {
	w.waits++
	if w.waits >= w.limit {
		w.cancel()
	}
	return ctx.Err()
}

type fakeTelegram struct {
	err   error
	chats []string
	texts []string
}

func (f *fakeTelegram) SendMessage(chatID string, text string) error {
	f.chats = append(f.chats, chatID)
	f.texts = append(f.texts, text)
	return f.err
}

type memJournal struct {
	entries []notification.Entry
	err     error
}

func (m *memJournal) Record(ctx context.Context, e *notification.Entry) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, *e)
	return nil
}

// stalledJournal blocks until its context ends, like a hung database.
type stalledJournal struct {
	hadDeadline bool
}

func (s *stalledJournal) Record(ctx context.Context, e *notification.Entry) error {
	_, s.hadDeadline = ctx.Deadline()
	<-ctx.Done()
	return ctx.Err()
}
