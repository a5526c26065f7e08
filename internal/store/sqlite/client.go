package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pokedex/internal/store"

	_ "modernc.org/sqlite"
)

var _ store.Store = (*Client)(nil)

// Client is the sqlite implementation of store.Store. The file at the given
// path is the database the display application reads.
type Client struct {
	db *sql.DB
}

// New opens (creating if absent) the sqlite database at dsn, which may be a
// plain filesystem path or a sqlite:// DSN.
func New(ctx context.Context, dsn string) (*Client, error) {
	driverDSN, err := parseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing sqlite DSN: %w", err)
	}

	db, err := sql.Open("sqlite", driverDSN)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Single connection: the pipeline is a single-writer tool, and the
	// session pragmas below must apply to every statement.
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA busy_timeout = 30000;",
		"PRAGMA journal_mode = WAL;",
		"PRAGMA foreign_keys = ON;",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", pragma, err)
		}
	}

	return &Client{db: db}, nil
}

func (c *Client) Close(ctx context.Context) error {
	return c.db.Close()
}
