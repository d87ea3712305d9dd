package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/itemkeeper/internal/filex"
	"github.com/dmitrijs2005/itemkeeper/internal/server/migrations"
	"github.com/dmitrijs2005/itemkeeper/internal/server/repositories/items"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// goose keeps its base FS and dialect in package state.
var gooseMu sync.Mutex

// SQLRepositoryManager vends repositories bound to one *sql.DB and migrates
// its schema with goose.
type SQLRepositoryManager struct {
	db      *sql.DB
	dialect goose.Dialect
	dir     string
	items   func(db *sql.DB) items.Repository
}

// NewPostgresRepositoryManager connects lazily through the pgx stdlib driver.
func NewPostgresRepositoryManager(dsn string) (*SQLRepositoryManager, error) {
	db, err := sqlOpen("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	return &SQLRepositoryManager{
		db:      db,
		dialect: goose.DialectPostgres,
		dir:     migrations.PostgresDir,
		items:   func(db *sql.DB) items.Repository { return items.NewPostgresRepository(db) },
	}, nil
}

// NewSQLiteRepositoryManager opens the database file at path (":memory:"
// works too). SQLite allows one writer, so the pool is limited to one
// connection.
func NewSQLiteRepositoryManager(path string) (*SQLRepositoryManager, error) {
	if err := filex.EnsureParentDir(path); err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	db, err := sqlOpen("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	db.SetMaxOpenConns(1)
	return &SQLRepositoryManager{
		db:      db,
		dialect: goose.DialectSQLite3,
		dir:     migrations.SQLiteDir,
		items:   func(db *sql.DB) items.Repository { return items.NewSQLiteRepository(db) },
	}, nil
}

// RunMigrations sets up goose with the embedded migrations of the manager's
// dialect and runs them.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(string(m.dialect)); err != nil {
		return err
	}
	return gooseUpContext(ctx, m.db, m.dir)
}

func (m *SQLRepositoryManager) Items() items.Repository {
	return m.items(m.db)
}

func (m *SQLRepositoryManager) Close() error {
	return m.db.Close()
}
