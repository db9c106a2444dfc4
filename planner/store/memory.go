// Package store provides CatalogStore implementations.
package store

import (
	"context"
	"sync"

	"github.com/nathfher/planificador-evento/planner"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory holds a catalog and quote history in process memory. The allocation
// model is one session at a time, so the catalog pointer is shared rather
// than deep-copied; the mutex only guards the handler goroutines of the API.
type Memory struct {
	mu      sync.RWMutex
	catalog *planner.Catalog
	quotes  []*planner.Quote
}

// NewMemory creates a store seeded with the given catalog.
func NewMemory(c *planner.Catalog) *Memory {
	if c == nil {
		c = &planner.Catalog{}
	}
	return &Memory{catalog: c}
}

func (m *Memory) LoadCatalog(_ context.Context) (*planner.Catalog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.catalog, nil
}

func (m *Memory) SaveCatalog(_ context.Context, c *planner.Catalog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.catalog = c
	return nil
}

func (m *Memory) AppendQuote(_ context.Context, q *planner.Quote) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quotes = append(m.quotes, q)
	return nil
}

func (m *Memory) Quotes(_ context.Context) ([]*planner.Quote, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*planner.Quote, len(m.quotes))
	copy(result, m.quotes)
	return result, nil
}
