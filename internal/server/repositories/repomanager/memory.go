package repomanager

import (
	"context"

	"github.com/dmitrijs2005/itemkeeper/internal/server/repositories/items"
)

type MemoryRepositoryManager struct {
	items *items.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{items: items.NewMemoryRepository()}
}

// RunMigrations is a no-op: the in-memory store has no schema.
func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *MemoryRepositoryManager) Items() items.Repository { return m.items }

func (m *MemoryRepositoryManager) Close() error { return nil }
