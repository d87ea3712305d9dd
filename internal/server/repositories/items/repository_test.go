package items

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE items (
  id      INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id INTEGER NOT NULL DEFAULT 1,
  title   TEXT    NOT NULL,
  body    TEXT    NOT NULL
);`)
	require.NoError(t, err)
	return db
}

// repositories under the shared contract
func implementations(t *testing.T) map[string]func() Repository {
	return map[string]func() Repository{
		"memory": func() Repository { return NewMemoryRepository() },
		"sqlite": func() Repository { return NewSQLiteRepository(setupSQLite(t)) },
	}
}

func TestRepository_CRUD(t *testing.T) {
	for name, newRepo := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			r := newRepo()
			ctx := context.Background()

			a, err := r.Create(ctx, &models.Item{UserID: 1, Title: "a", Body: "x"})
			require.NoError(t, err)
			b, err := r.Create(ctx, &models.Item{UserID: 1, Title: "b", Body: "y"})
			require.NoError(t, err)
			require.Greater(t, b.ID, a.ID)

			got, err := r.Get(ctx, a.ID)
			require.NoError(t, err)
			require.Equal(t, *a, *got)

			upd, err := r.Update(ctx, &models.Item{ID: a.ID, UserID: 2, Title: "a2", Body: "x2"})
			require.NoError(t, err)
			require.Equal(t, "a2", upd.Title)

			list, err := r.List(ctx)
			require.NoError(t, err)
			require.Equal(t, []models.Item{
				{ID: a.ID, UserID: 2, Title: "a2", Body: "x2"},
				*b,
			}, list)

			require.NoError(t, r.Delete(ctx, a.ID))
			n, err := r.Count(ctx)
			require.NoError(t, err)
			require.EqualValues(t, 1, n)

			c, err := r.Create(ctx, &models.Item{Title: "c"})
			require.NoError(t, err)
			require.Greater(t, c.ID, b.ID, "ids are never reused")
		})
	}
}

func TestRepository_NotFound(t *testing.T) {
	for name, newRepo := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			r := newRepo()
			ctx := context.Background()

			_, err := r.Get(ctx, 404)
			require.ErrorIs(t, err, common.ErrorNotFound)

			_, err = r.Update(ctx, &models.Item{ID: 404, Title: "t"})
			require.ErrorIs(t, err, common.ErrorNotFound)

			require.ErrorIs(t, r.Delete(ctx, 404), common.ErrorNotFound)
		})
	}
}

func TestSeed(t *testing.T) {
	for name, newRepo := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			r := newRepo()
			ctx := context.Background()

			require.NoError(t, Seed(ctx, r, 15))
			list, err := r.List(ctx)
			require.NoError(t, err)
			require.Len(t, list, 15)
			require.Equal(t, "item 1", list[0].Title)
			require.EqualValues(t, 2, list[14].UserID)

			// non-empty stores are not seeded again
			require.NoError(t, Seed(ctx, r, 5))
			n, err := r.Count(ctx)
			require.NoError(t, err)
			require.EqualValues(t, 15, n)
		})
	}
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	in := &models.Item{Title: "orig"}
	created, err := r.Create(ctx, in)
	require.NoError(t, err)
	require.Zero(t, in.ID, "input is not modified")

	created.Title = "changed"
	got, err := r.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "orig", got.Title)
}
