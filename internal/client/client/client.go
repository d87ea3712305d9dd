package client

import (
	"context"

	"github.com/dmitrijs2005/itemkeeper/internal/client/models"
)

// Client is the set of primitive operations on the remote collection.
type Client interface {
	List(ctx context.Context) ([]models.Item, error)
	Get(ctx context.Context, id int64) (*models.Item, error)
	Create(ctx context.Context, draft models.ItemDraft) (*models.Item, error)
	Update(ctx context.Context, item models.Item) (*models.Item, error)
	// Delete returns the requested id; the response body is not read.
	Delete(ctx context.Context, id int64) (int64, error)
}
