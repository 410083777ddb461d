package ports

import "smartctx/internal/domain"

// LinkIndex provides cached access to the vault's link graph.
// All query operations should be O(1) or O(log n) via database indexes.
type LinkIndex interface {
	GraphSource

	// Lifecycle
	Open(vaultPath string) error
	Close() error

	// Sync operations
	NeedsFullRebuild() bool
	SyncIncremental() (*domain.SyncStats, error)
	SyncFull() (*domain.SyncStats, error)

	// Edge queries
	LinksTo(target string) ([]domain.Edge, error)
	LinksFrom(sourcePath string) ([]domain.Edge, error)

	// Batch updates
	BeginTx() (IndexTx, error)
}

// IndexTx represents a transaction for atomic index updates.
type IndexTx interface {
	UpsertNode(node *domain.IndexNode) error
	DeleteNode(path string) error

	DeleteEdgesFrom(sourcePath string) error
	InsertEdge(edge *domain.Edge) error

	Commit() error
	Rollback() error
}
