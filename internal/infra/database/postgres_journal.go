// internal/infra/database/postgres_journal.go
package database

import (
	"context"
	"database/sql"
	"fmt"

	"homework_bot/internal/domain/notification"
)

const createNotificationLogTable = `CREATE TABLE IF NOT EXISTS notification_log (
    id          BIGSERIAL PRIMARY KEY,
    chat_id     TEXT        NOT NULL,
    kind        TEXT        NOT NULL,
    text        TEXT        NOT NULL,
    delivered   BOOLEAN     NOT NULL,
    error       TEXT,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PostgresJournal stores notification attempts in the notification_log table.
type PostgresJournal struct {
	db *sql.DB
}

func NewPostgresJournal(db *sql.DB) *PostgresJournal {
	return &PostgresJournal{db: db}
}

// EnsureSchema creates the notification_log table if it doesn't exist.
func (j *PostgresJournal) EnsureSchema(ctx context.Context) error {
	if _, err := j.db.ExecContext(ctx, createNotificationLogTable); err != nil {
		return fmt.Errorf("error creating notification_log table: %w", err)
	}
	return nil
}

func (j *PostgresJournal) Record(ctx context.Context, e *notification.Entry) error {
	query := `INSERT INTO notification_log (chat_id, kind, text, delivered, error)
               VALUES ($1, $2, $3, $4, $5)
               RETURNING id, created_at`

	var deliveryErr sql.NullString
	if e.Error != "" {
		deliveryErr = sql.NullString{String: e.Error, Valid: true}
	}

	err := j.db.QueryRowContext(ctx, query, e.ChatID, e.Kind, e.Text, e.Delivered, deliveryErr).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("error recording notification: %w", err)
	}
	return nil
}
