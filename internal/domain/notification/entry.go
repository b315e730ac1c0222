// internal/domain/notification/entry.go
package notification

import "time"

// Kind classifies what a notification was about.
type Kind string

const (
	KindStatus    Kind = "status"     // Homework status changed
	KindNoUpdates Kind = "no_updates" // API returned an empty homework list
	KindError     Kind = "error"      // Cycle failed
)

// Entry is one notification attempt.
// Corresponds to the 'notification_log' table.
type Entry struct {
	ID        int64
	ChatID    string
	Kind      Kind
	Text      string
	Delivered bool
	Error     string // Delivery error, empty when Delivered
	CreatedAt time.Time
}
