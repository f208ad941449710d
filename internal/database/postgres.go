package database

import (
	"context"
	"database/sql"
	"fmt"

	"go-spear/internal/config"

	_ "github.com/lib/pq"
	"go.uber.org/fx"
)

// PostgresDB wraps the optional Postgres handle used by the notification
// archive. It stays nil-connected when no DSN is configured so fx can
// still build the graph.
type PostgresDB struct {
	DB *sql.DB
}

func NewPostgres(lc fx.Lifecycle, cfg *config.Config) (*PostgresDB, error) {
	if cfg.PostgresDSN == "" {
		return &PostgresDB{}, nil
	}

	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return db.PingContext(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return db.Close()
		},
	})

	return &PostgresDB{DB: db}, nil
}
