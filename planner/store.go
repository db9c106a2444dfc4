/*
store.go - Persistence interface for the master catalogs and quote history

PURPOSE:
  Defines the boundary between the allocation engine and durable storage.
  The engine reads the three master catalogs into memory at session start
  and writes them back after a successful approval; it never knows the
  storage format.

IMPLEMENTATIONS:
  - planner/store/memory.go: In-memory, for tests and development
  - store/sqlite/sqlite.go:  SQLite-backed production store

SEE ALSO:
  - commit.go: The mutations SaveCatalog makes durable
*/
package planner

import "context"

// CatalogStore loads and persists the master catalogs and the quote history.
type CatalogStore interface {
	// LoadCatalog reads the three master catalogs into memory.
	LoadCatalog(ctx context.Context) (*Catalog, error)

	// SaveCatalog writes the catalogs back after a commit or release.
	SaveCatalog(ctx context.Context, c *Catalog) error

	// AppendQuote records a finalized quote in the history.
	AppendQuote(ctx context.Context, q *Quote) error

	// Quotes returns the recorded history, oldest first.
	Quotes(ctx context.Context) ([]*Quote, error)
}
