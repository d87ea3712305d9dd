// Package repomanager opens the storage backend named by a DSN and vends the
// repositories bound to it.
//
// Supported DSNs:
//
//	""                         in-memory store
//	sqlite://path/to/file.db   SQLite via modernc.org/sqlite
//	postgres://... | postgresql://...   PostgreSQL via pgx
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/dmitrijs2005/itemkeeper/internal/server/repositories/items"
	"github.com/pressly/goose/v3"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Items() items.Repository
	Close() error
}

// sqlOpen and gooseUpContext are seams for tests.
var (
	sqlOpen        = sql.Open
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return goose.UpContext(ctx, db, dir, opts...)
	}
)

// New picks the backend from dsn without touching the schema.
func New(dsn string) (RepositoryManager, error) {
	switch {
	case dsn == "":
		return NewMemoryRepositoryManager(), nil

	case strings.HasPrefix(dsn, "sqlite://"):
		return NewSQLiteRepositoryManager(strings.TrimPrefix(dsn, "sqlite://"))

	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return NewPostgresRepositoryManager(dsn)

	default:
		return nil, fmt.Errorf("%w: %q", common.ErrorUnsupportedDSN, dsn)
	}
}

// Open is New followed by migrations and seeding of an empty store.
func Open(ctx context.Context, dsn string, seedCount int) (RepositoryManager, error) {
	m, err := New(dsn)
	if err != nil {
		return nil, err
	}
	if err := m.RunMigrations(ctx); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	if err := items.Seed(ctx, m.Items(), seedCount); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("seed: %w", err)
	}
	return m, nil
}
