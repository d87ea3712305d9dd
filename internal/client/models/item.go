// Package models defines the client-side item types shared by the remote
// client, the selection store and the item cache.
package models

import "sort"

// Item is the unit of CRUD. ID is issued by the remote store.
type Item struct {
	ID          int64
	Name        string
	Description string
}

// ItemDraft carries the fields submitted from the editor. A nil field was
// not submitted and leaves the corresponding Item field untouched on Merge.
type ItemDraft struct {
	Name        *string
	Description *string
}

// NewDraft returns a draft with both fields submitted.
func NewDraft(name, description string) ItemDraft {
	return ItemDraft{Name: &name, Description: &description}
}

// Merge returns a copy of i with the submitted draft fields applied.
// The ID is never changed.
func (i Item) Merge(d ItemDraft) Item {
	if d.Name != nil {
		i.Name = *d.Name
	}
	if d.Description != nil {
		i.Description = *d.Description
	}
	return i
}

// SortByIDDesc orders items from the highest to the lowest ID, in place.
func SortByIDDesc(items []Item) {
	sort.SliceStable(items, func(a, b int) bool { return items[a].ID > items[b].ID })
}

// Clone returns an independent copy of items; nil stays nil.
func Clone(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
