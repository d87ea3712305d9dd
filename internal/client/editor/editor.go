// Package editor drives edits of a single item: it selects an item out of the
// cache, and submits a draft as an update of the selection or as a new item.
package editor

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/itemkeeper/internal/client/models"
	"github.com/dmitrijs2005/itemkeeper/internal/client/services"
	"github.com/dmitrijs2005/itemkeeper/internal/client/store"
	"github.com/dmitrijs2005/itemkeeper/internal/common"
)

type Editor struct {
	store *store.SelectionStore
	items services.ItemService
}

func New(s *store.SelectionStore, items services.ItemService) *Editor {
	return &Editor{store: s, items: items}
}

// Edit selects the cached item with the given id.
func (e *Editor) Edit(id int64) (models.Item, error) {
	for _, it := range e.items.Items().Items {
		if it.ID == id {
			e.store.Set(&it)
			return it, nil
		}
	}
	return models.Item{}, fmt.Errorf("item %d: %w", id, common.ErrorNotFound)
}

func (e *Editor) Cancel() {
	e.store.Clear()
}

func (e *Editor) Current() (models.Item, bool) {
	return e.store.Get()
}

// Submit writes the draft. With a selection the draft is merged into it and
// sent as an update, otherwise it is sent as a create. The selection is
// cleared before the request is issued, whatever its outcome.
func (e *Editor) Submit(ctx context.Context, draft models.ItemDraft) (models.Item, error) {
	selected, ok := e.store.Get()
	e.store.Clear()

	if !ok {
		return e.items.SubmitCreate(ctx, draft)
	}

	merged := selected.Merge(draft)
	return merged, e.items.SubmitUpdate(ctx, merged)
}

// Delete removes the item remotely and drops it from the selection.
func (e *Editor) Delete(ctx context.Context, id int64) error {
	if cur, ok := e.store.Get(); ok && cur.ID == id {
		e.store.Clear()
	}
	return e.items.SubmitDelete(ctx, id)
}
