package notification

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"go-spear/internal/database"
)

type postgresArchive struct {
	db *sql.DB
}

func newPostgresArchive(pg *database.PostgresDB) (Archive, error) {
	a := &postgresArchive{db: pg.DB}
	if err := a.EnsureSchema(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to prepare archive table: %w", err)
	}
	return a, nil
}

// EnsureSchema creates the archive table when missing.
func (a *postgresArchive) EnsureSchema(ctx context.Context) error {
	_, err := a.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS notification_archive (
			session_key TEXT PRIMARY KEY,
			audience    TEXT NOT NULL,
			payload     JSONB NOT NULL,
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	return err
}

func (a *postgresArchive) Load(ctx context.Context, sessionKey string) (Audience, []Notification, error) {
	var audience string
	var payload []byte
	err := a.db.QueryRowContext(ctx,
		`SELECT audience, payload FROM notification_archive WHERE session_key = $1`,
		sessionKey,
	).Scan(&audience, &payload)
	if err == sql.ErrNoRows {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, err
	}

	var items []Notification
	if err := json.Unmarshal(payload, &items); err != nil {
		return "", nil, fmt.Errorf("failed to decode archived feed: %w", err)
	}
	return Audience(audience), items, nil
}

func (a *postgresArchive) Save(ctx context.Context, sessionKey string, audience Audience, items []Notification) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode feed: %w", err)
	}

	_, err = a.db.ExecContext(ctx, `
		INSERT INTO notification_archive (session_key, audience, payload, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (session_key)
		DO UPDATE SET audience = $2, payload = $3, updated_at = now()`,
		sessionKey, string(audience), payload,
	)
	return err
}

func (a *postgresArchive) Delete(ctx context.Context, sessionKey string) error {
	_, err := a.db.ExecContext(ctx,
		`DELETE FROM notification_archive WHERE session_key = $1`, sessionKey)
	return err
}
