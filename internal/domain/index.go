package domain

import "time"

// IndexNode represents a cached vault note.
type IndexNode struct {
	Path  string // Relative path from vault root (primary key)
	Name  string // Filename
	Mtime int64  // Unix timestamp for incremental sync
	Size  int64  // File size in bytes
}

// Edge represents a wiki link between notes. Target is the resolved
// vault-relative key, fragment included when the link carries one.
type Edge struct {
	SourcePath string // Note containing the link
	Target     string // Resolved target key
	LinkText   string // Original [[link]] text
	IsEmbed    bool   // Written with embed syntax (![[...]])
}

// SyncStats holds statistics from a sync operation.
type SyncStats struct {
	NodesAdded   int
	NodesUpdated int
	NodesDeleted int
	EdgesAdded   int
	EdgesDeleted int
	FilesScanned int
	Duration     time.Duration
}
