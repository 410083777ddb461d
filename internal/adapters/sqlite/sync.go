package sqlite

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"smartctx/internal/domain"
)

// Wiki link pattern: [[target]], [[target|alias]], ![[embedded]]
var linkPattern = regexp.MustCompile(`(!?)\[\[([^\]|]+)(?:\|[^\]]+)?\]\]`)

// SyncFull performs a complete rebuild of the index.
func (idx *Index) SyncFull() (*domain.SyncStats, error) {
	start := time.Now()
	stats := &domain.SyncStats{}

	// Clear existing data
	if _, err := idx.db.Exec(`DELETE FROM nodes`); err != nil {
		return nil, err
	}
	if _, err := idx.db.Exec(`DELETE FROM edges`); err != nil {
		return nil, err
	}

	tx, err := idx.BeginTx()
	if err != nil {
		return nil, err
	}

	// Walk the vault
	err = filepath.Walk(idx.vaultPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors
		}

		// Skip hidden directories
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") && path != idx.vaultPath {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(strings.ToLower(info.Name()), ".md") {
			return nil
		}

		relPath, _ := filepath.Rel(idx.vaultPath, path)
		relPath = filepath.ToSlash(relPath)
		stats.FilesScanned++

		node := &domain.IndexNode{
			Path:  relPath,
			Name:  info.Name(),
			Mtime: info.ModTime().Unix(),
			Size:  info.Size(),
		}
		if err := tx.UpsertNode(node); err != nil {
			return nil // Continue on error
		}
		stats.NodesAdded++

		// Parse and index links
		edges, err := idx.parseLinksInFile(path, relPath)
		if err == nil {
			for _, edge := range edges {
				if err := tx.InsertEdge(&edge); err == nil {
					stats.EdgesAdded++
				}
			}
		}

		return nil
	})

	if err != nil {
		tx.Rollback()
		return stats, err
	}
	if err := tx.Commit(); err != nil {
		return stats, err
	}

	// Update last sync time
	idx.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('last_sync_time', ?)`,
		time.Now().Unix())

	stats.Duration = time.Since(start)
	return stats, nil
}

// SyncIncremental updates only files that changed since last sync.
func (idx *Index) SyncIncremental() (*domain.SyncStats, error) {
	start := time.Now()
	stats := &domain.SyncStats{}

	// Get last sync time
	var lastSyncUnix int64
	idx.db.QueryRow(`SELECT value FROM meta WHERE key = 'last_sync_time'`).Scan(&lastSyncUnix)

	// Track existing paths to detect deletions
	existingPaths := make(map[string]bool)
	rows, err := idx.db.Query(`SELECT path FROM nodes`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var path string
		rows.Scan(&path)
		existingPaths[path] = true
	}
	rows.Close()

	// Track paths we've seen during this walk
	seenPaths := make(map[string]bool)

	tx, err := idx.BeginTx()
	if err != nil {
		return nil, err
	}

	// Walk the vault
	err = filepath.Walk(idx.vaultPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}

		// Skip hidden directories
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") && path != idx.vaultPath {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(strings.ToLower(info.Name()), ".md") {
			return nil
		}

		relPath, _ := filepath.Rel(idx.vaultPath, path)
		relPath = filepath.ToSlash(relPath)
		seenPaths[relPath] = true
		stats.FilesScanned++

		// Check if file is new or modified
		mtime := info.ModTime().Unix()
		needsUpdate := mtime > lastSyncUnix || !existingPaths[relPath]

		if !needsUpdate {
			return nil
		}

		node := &domain.IndexNode{
			Path:  relPath,
			Name:  info.Name(),
			Mtime: mtime,
			Size:  info.Size(),
		}

		if err := tx.UpsertNode(node); err != nil {
			return nil
		}
		if existingPaths[relPath] {
			stats.NodesUpdated++
			// Drop the stale edges before re-parsing
			tx.DeleteEdgesFrom(relPath)
		} else {
			stats.NodesAdded++
		}

		// Parse and index links
		edges, err := idx.parseLinksInFile(path, relPath)
		if err == nil {
			for _, edge := range edges {
				if err := tx.InsertEdge(&edge); err == nil {
					stats.EdgesAdded++
				}
			}
		}

		return nil
	})

	if err != nil {
		tx.Rollback()
		return stats, err
	}

	// Delete nodes that no longer exist
	for path := range existingPaths {
		if !seenPaths[path] {
			tx.DeleteNode(path)
			tx.DeleteEdgesFrom(path)
			stats.NodesDeleted++
		}
	}

	if err := tx.Commit(); err != nil {
		return stats, err
	}

	// Update last sync time
	idx.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('last_sync_time', ?)`,
		time.Now().Unix())

	stats.Duration = time.Since(start)
	return stats, nil
}

// parseLinksInFile extracts all resolvable wiki links from a markdown
// file. Embed markers are flagged; links pointing at nothing in the vault
// are skipped.
func (idx *Index) parseLinksInFile(fullPath, relPath string) ([]domain.Edge, error) {
	content, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, err
	}

	var edges []domain.Edge
	matches := linkPattern.FindAllStringSubmatch(string(content), -1)

	for _, match := range matches {
		target, ok := idx.resolver.Resolve(strings.TrimSpace(match[2]), relPath)
		if !ok {
			continue
		}
		edges = append(edges, domain.Edge{
			SourcePath: relPath,
			Target:     target,
			LinkText:   match[0],
			IsEmbed:    match[1] == "!",
		})
	}

	return edges, nil
}
