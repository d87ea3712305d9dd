package items

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/dmitrijs2005/itemkeeper/internal/dbx"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
)

// queries differ between dialects only in placeholder syntax.
type queries struct {
	list   string
	get    string
	create string
	update string
	delete string
	count  string
}

var postgresQueries = queries{
	list:   `SELECT id, user_id, title, body FROM items ORDER BY id`,
	get:    `SELECT id, user_id, title, body FROM items WHERE id = $1`,
	create: `INSERT INTO items (user_id, title, body) VALUES ($1, $2, $3) RETURNING id`,
	update: `UPDATE items SET user_id = $1, title = $2, body = $3 WHERE id = $4`,
	delete: `DELETE FROM items WHERE id = $1`,
	count:  `SELECT COUNT(*) FROM items`,
}

var sqliteQueries = queries{
	list:   `SELECT id, user_id, title, body FROM items ORDER BY id`,
	get:    `SELECT id, user_id, title, body FROM items WHERE id = ?`,
	create: `INSERT INTO items (user_id, title, body) VALUES (?, ?, ?) RETURNING id`,
	update: `UPDATE items SET user_id = ?, title = ?, body = ? WHERE id = ?`,
	delete: `DELETE FROM items WHERE id = ?`,
	count:  `SELECT COUNT(*) FROM items`,
}

// SQLRepository stores items in the items table of a SQL database.
type SQLRepository struct {
	db dbx.DBTX
	q  queries
}

// NewPostgresRepository binds a repository to a pgx-backed connection or transaction.
func NewPostgresRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, q: postgresQueries}
}

// NewSQLiteRepository binds a repository to a modernc.org/sqlite connection or transaction.
func NewSQLiteRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, q: sqliteQueries}
}

func (r *SQLRepository) List(ctx context.Context) ([]models.Item, error) {
	rows, err := r.db.QueryContext(ctx, r.q.list)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]models.Item, 0)
	for rows.Next() {
		var it models.Item
		if err := rows.Scan(&it.ID, &it.UserID, &it.Title, &it.Body); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}

func (r *SQLRepository) Get(ctx context.Context, id int64) (*models.Item, error) {
	it := &models.Item{}
	err := r.db.QueryRowContext(ctx, r.q.get, id).Scan(&it.ID, &it.UserID, &it.Title, &it.Body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return it, nil
}

func (r *SQLRepository) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	stored := *item
	err := r.db.QueryRowContext(ctx, r.q.create, stored.UserID, stored.Title, stored.Body).Scan(&stored.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &stored, nil
}

func (r *SQLRepository) Update(ctx context.Context, item *models.Item) (*models.Item, error) {
	res, err := r.db.ExecContext(ctx, r.q.update, item.UserID, item.Title, item.Body, item.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if err := dbx.ExpectOneRow(res); err != nil {
		return nil, err
	}
	stored := *item
	return &stored, nil
}

func (r *SQLRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.q.delete, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectOneRow(res)
}

func (r *SQLRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, r.q.count).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
