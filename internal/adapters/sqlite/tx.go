package sqlite

import (
	"database/sql"

	"smartctx/internal/domain"
	"smartctx/internal/ports"
)

// indexTx implements ports.IndexTx
type indexTx struct {
	tx *sql.Tx
}

// Ensure indexTx implements IndexTx
var _ ports.IndexTx = (*indexTx)(nil)

// UpsertNode inserts or updates a node
func (t *indexTx) UpsertNode(node *domain.IndexNode) error {
	_, err := t.tx.Exec(`
		INSERT OR REPLACE INTO nodes (path, name, mtime, size)
		VALUES (?, ?, ?, ?)
	`, node.Path, node.Name, node.Mtime, node.Size)
	return err
}

// DeleteNode removes a node by path
func (t *indexTx) DeleteNode(path string) error {
	_, err := t.tx.Exec(`DELETE FROM nodes WHERE path = ?`, path)
	return err
}

// DeleteEdgesFrom removes all edges from a source note
func (t *indexTx) DeleteEdgesFrom(sourcePath string) error {
	_, err := t.tx.Exec(`DELETE FROM edges WHERE source_path = ?`, sourcePath)
	return err
}

// InsertEdge adds a new edge
func (t *indexTx) InsertEdge(edge *domain.Edge) error {
	_, err := t.tx.Exec(`
		INSERT OR REPLACE INTO edges (source_path, target, link_text, is_embed)
		VALUES (?, ?, ?, ?)
	`, edge.SourcePath, edge.Target, edge.LinkText, edge.IsEmbed)
	return err
}

// Commit commits the transaction
func (t *indexTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *indexTx) Rollback() error {
	return t.tx.Rollback()
}
