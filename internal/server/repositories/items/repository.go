// Package items stores the collection served by the HTTP API. Every
// implementation returns common.ErrorNotFound for unknown ids and keeps ids
// strictly increasing.
package items

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
)

type Repository interface {
	// List returns all items in ascending id order.
	List(ctx context.Context) ([]models.Item, error)
	Get(ctx context.Context, id int64) (*models.Item, error)
	// Create assigns the next id to item and returns it.
	Create(ctx context.Context, item *models.Item) (*models.Item, error)
	Update(ctx context.Context, item *models.Item) (*models.Item, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// Seed fills an empty repository with n generated items.
// A repository that already holds items is left alone.
func Seed(ctx context.Context, r Repository, n int) error {
	count, err := r.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for i := 1; i <= n; i++ {
		it := &models.Item{
			UserID: int64((i-1)/10 + 1),
			Title:  fmt.Sprintf("item %d", i),
			Body:   fmt.Sprintf("body of item %d", i),
		}
		if _, err := r.Create(ctx, it); err != nil {
			return fmt.Errorf("seed item %d: %w", i, err)
		}
	}
	return nil
}
