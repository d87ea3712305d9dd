// Package store holds client-side UI state that outlives a single command:
// the item currently loaded into the editor.
package store

import (
	"sync"

	"github.com/dmitrijs2005/itemkeeper/internal/client/models"
)

// SelectionStore holds at most one item, by value. It is created once per
// session and passed to whoever needs it.
type SelectionStore struct {
	mu       sync.RWMutex
	selected *models.Item
}

func NewSelectionStore() *SelectionStore {
	return &SelectionStore{}
}

// Get returns a copy of the selected item and whether one is set.
func (s *SelectionStore) Get() (models.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return models.Item{}, false
	}
	return *s.selected, true
}

// Set replaces the selection unconditionally; nil clears it.
func (s *SelectionStore) Set(item *models.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item == nil {
		s.selected = nil
		return
	}
	cp := *item
	s.selected = &cp
}

func (s *SelectionStore) Clear() {
	s.Set(nil)
}
