// internal/domain/notification/journal.go
package notification

import "context"

// Journal is a write-only audit trail of notification attempts.
// Entries are never read back into the poll loop.
type Journal interface {
	Record(ctx context.Context, entry *Entry) error
}

// NopJournal discards entries. Used when no database is configured.
type NopJournal struct{}

func (NopJournal) Record(context.Context, *Entry) error { return nil }
