package notification

import (
	"context"
	"fmt"

	"go-spear/internal/config"
	"go-spear/internal/database"
)

// Archive is the optional durable store behind the in-memory feed. The
// default implementation keeps nothing, matching the source behavior of
// notifications vanishing with the session.
type Archive interface {
	Load(ctx context.Context, sessionKey string) (Audience, []Notification, error)
	Save(ctx context.Context, sessionKey string, audience Audience, items []Notification) error
	Delete(ctx context.Context, sessionKey string) error
}

// NewArchive selects the archive implementation from config.
func NewArchive(cfg *config.Config, mongodb *database.MongodbDB, pg *database.PostgresDB) (Archive, error) {
	switch cfg.NotifyArchive {
	case "", "memory":
		return noopArchive{}, nil
	case "mongo":
		return newMongoArchive(mongodb), nil
	case "postgres":
		if pg.DB == nil {
			return nil, fmt.Errorf("NOTIFY_ARCHIVE=postgres requires POSTGRES_DSN")
		}
		return newPostgresArchive(pg)
	}
	return nil, fmt.Errorf("unknown notification archive %q", cfg.NotifyArchive)
}

type noopArchive struct{}

func (noopArchive) Load(ctx context.Context, sessionKey string) (Audience, []Notification, error) {
	return "", nil, nil
}

func (noopArchive) Save(ctx context.Context, sessionKey string, audience Audience, items []Notification) error {
	return nil
}

func (noopArchive) Delete(ctx context.Context, sessionKey string) error {
	return nil
}
