// internal/app/poller.go
package app

import (
	"context"
	"encoding/json"
	"errors"

	"homework_bot/internal/domain/homework"
	"homework_bot/internal/domain/notification"
	"homework_bot/internal/infra/practicum"

	"github.com/sirupsen/logrus"
)

// FailurePrefix starts every message about a failed cycle.
const FailurePrefix = "Сбой в работе программы: "

// Fetcher returns the raw homework_statuses payload for changes since from.
type Fetcher interface {
	Fetch(ctx context.Context, from int64) (json.RawMessage, error)
}

// MessageSender delivers a chat message. It must not fail the caller.
type MessageSender interface {
	Notify(ctx context.Context, kind notification.Kind, text string) bool
}

// Waiter blocks until the next cycle is due.
type Waiter interface {
	Wait(ctx context.Context) error
}

// Poller runs the fetch, validate, notify and wait cycle. It owns the cursor
// and the last notified message; it is not safe for concurrent use.
type Poller struct {
	fetcher   Fetcher
	formatter *homework.Formatter
	notifier  MessageSender
	waiter    Waiter
	logger    *logrus.Entry

	cursor       int64
	lastNotified string
}

func NewPoller(
	fetcher Fetcher,
	formatter *homework.Formatter,
	notifier MessageSender,
	waiter Waiter,
	cursor int64, // Unix seconds for the first from_date
	logger *logrus.Entry,
) *Poller {
	return &Poller{
		fetcher:   fetcher,
		formatter: formatter,
		notifier:  notifier,
		waiter:    waiter,
		logger:    logger,
		cursor:    cursor,
	}
}

// Cursor returns the from_date that the next cycle will use.
func (p *Poller) Cursor() int64 { return p.cursor }

// LastNotified returns the text of the last message handed to the notifier.
func (p *Poller) LastNotified() string { return p.lastNotified }

// Run repeats Cycle and Wait until ctx is cancelled. The wait happens after
// failed cycles too.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.WithField("cursor", p.cursor).Info("Poll loop started")
	for {
		_ = p.Cycle(ctx)
		if err := p.waiter.Wait(ctx); err != nil {
			p.logger.WithField("cursor", p.cursor).Info("Poll loop stopped")
			return err
		}
	}
}

// Cycle performs one poll. Failures are reported to the chat and logged here;
// the returned error only tells the caller what happened.
func (p *Poller) Cycle(ctx context.Context) error {
	kind, message, currentDate, err := p.check(ctx)
	if err != nil {
		if ctx.Err() != nil {
			// Shutting down, not a failure worth a message.
			return ctx.Err()
		}
		p.reportFailure(ctx, err)
		return err
	}

	p.notifyOnce(ctx, kind, message)

	if currentDate != nil {
		p.cursor = *currentDate
	} else {
		p.logger.WithField("cursor", p.cursor).Debug("Response has no current_date, cursor unchanged")
	}
	return nil
}

func (p *Poller) check(ctx context.Context) (notification.Kind, string, *int64, error) {
	raw, err := p.fetcher.Fetch(ctx, p.cursor)
	if err != nil {
		return "", "", nil, err
	}

	resp, err := homework.ParseResponse(raw)
	if err != nil {
		return "", "", nil, err
	}
	p.logger.WithField("homeworks", len(resp.Homeworks)).Debug("Homework list received")

	if len(resp.Homeworks) == 0 {
		return notification.KindNoUpdates, homework.NoUpdatesMessage, resp.CurrentDate, nil
	}

	message, err := p.formatter.Format(resp.Homeworks[0])
	if err != nil {
		return "", "", nil, err
	}
	return notification.KindStatus, message, resp.CurrentDate, nil
}

func (p *Poller) reportFailure(ctx context.Context, err error) {
	message := FailurePrefix + err.Error()
	p.notifyOnce(ctx, notification.KindError, message)
	p.logger.WithError(err).WithFields(logrus.Fields{
		"error_class": classify(err),
		"cursor":      p.cursor,
	}).Error(message)
}

func (p *Poller) notifyOnce(ctx context.Context, kind notification.Kind, message string) {
	if message == p.lastNotified {
		p.logger.WithField("kind", kind).Debug("Message repeats the last one, not sending")
		return
	}
	p.notifier.Notify(ctx, kind, message)
	p.lastNotified = message
}

func classify(err error) string {
	var (
		connErr    *practicum.ConnectivityError
		respErr    *practicum.ResponseError
		valErr     *homework.ValidationError
		missingErr *homework.MissingFieldError
		statusErr  *homework.UnknownStatusError
	)
	switch {
	case errors.As(err, &connErr):
		return "connectivity"
	case errors.As(err, &respErr):
		return "response"
	case errors.As(err, &valErr):
		return "validation"
	case errors.As(err, &missingErr), errors.As(err, &statusErr):
		return "format"
	default:
		return "unknown"
	}
}
