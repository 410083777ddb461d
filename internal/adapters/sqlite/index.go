package sqlite

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"smartctx/internal/domain"
	"smartctx/internal/ports"

	_ "github.com/mattn/go-sqlite3"
)

const schemaVersion = "1"

// Index implements ports.LinkIndex (and thereby ports.GraphSource) using
// SQLite.
type Index struct {
	db        *sql.DB
	vaultPath string
	dbPath    string
	resolver  ports.LinkResolver
}

// Ensure Index implements LinkIndex
var _ ports.LinkIndex = (*Index)(nil)

// NewIndex creates a new SQLite index. Links found during sync are
// resolved to vault keys through the resolver; unresolvable links are not
// indexed.
func NewIndex(resolver ports.LinkResolver) *Index {
	return &Index{resolver: resolver}
}

// Open initializes the index for the given vault path.
func (idx *Index) Open(vaultPath string) error {
	// Expand ~ in path
	if len(vaultPath) > 0 && vaultPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		vaultPath = filepath.Join(home, vaultPath[1:])
	}

	idx.vaultPath = vaultPath
	idx.dbPath = databasePath(vaultPath)

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(idx.dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite3", idx.dbPath+"?_journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	idx.db = db

	// Performance pragmas + schema in single batch (reduces round-trips)
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA cache_size = -64000;
		PRAGMA temp_store = MEMORY;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS nodes (
			path TEXT PRIMARY KEY,
			name TEXT,
			mtime INTEGER NOT NULL,
			size INTEGER NOT NULL DEFAULT 0
		);
		CREATE TABLE IF NOT EXISTS edges (
			source_path TEXT NOT NULL,
			target TEXT NOT NULL,
			link_text TEXT NOT NULL,
			is_embed INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (source_path, link_text)
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_edges_target ON edges(target);
		CREATE INDEX IF NOT EXISTS idx_edges_source ON edges(source_path);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	// Update metadata
	if err := idx.updateMeta(); err != nil {
		db.Close()
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (idx *Index) Close() error {
	if idx.db != nil {
		return idx.db.Close()
	}
	return nil
}

// NeedsFullRebuild returns true if the index should be fully rebuilt.
func (idx *Index) NeedsFullRebuild() bool {
	var version, vaultHash string

	idx.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&version)
	idx.db.QueryRow("SELECT value FROM meta WHERE key = 'vault_path_hash'").Scan(&vaultHash)

	expectedHash := hashVaultPath(idx.vaultPath)

	return version != schemaVersion || vaultHash != expectedHash
}

// databasePath returns the path for the SQLite database.
func databasePath(vaultPath string) string {
	// XDG data directory
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}

	// Hash vault path for unique DB name
	hash := hashVaultPath(vaultPath)

	return filepath.Join(dataHome, "smartctx", hash+".db")
}

// hashVaultPath returns a short hash of the vault path.
func hashVaultPath(vaultPath string) string {
	h := sha256.Sum256([]byte(vaultPath))
	return hex.EncodeToString(h[:8]) // First 8 bytes = 16 hex chars
}

// updateMeta updates the schema version and vault path hash.
func (idx *Index) updateMeta() error {
	_, err := idx.db.Exec(`
		INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?);
		INSERT OR REPLACE INTO meta (key, value) VALUES ('vault_path_hash', ?);
	`, schemaVersion, hashVaultPath(idx.vaultPath))
	return err
}

// Outlinks returns the resolved targets referenced from a note.
func (idx *Index) Outlinks(key string) ([]string, error) {
	rows, err := idx.db.Query(`
		SELECT DISTINCT target FROM edges WHERE source_path = ?
	`, domain.BaseKey(key))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStrings(rows)
}

// Inlinks returns the notes referencing a note, fragment-targeted links
// included.
func (idx *Index) Inlinks(key string) ([]string, error) {
	base := domain.BaseKey(key)
	rows, err := idx.db.Query(`
		SELECT DISTINCT source_path FROM edges WHERE target = ? OR target LIKE ? || '#%'
	`, base, base)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStrings(rows)
}

// Embeds returns the targets a note references with embed syntax.
func (idx *Index) Embeds(key string) (map[string]bool, error) {
	rows, err := idx.db.Query(`
		SELECT DISTINCT target FROM edges WHERE source_path = ? AND is_embed = 1
	`, domain.BaseKey(key))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	targets, err := scanStrings(rows)
	if err != nil {
		return nil, err
	}
	embeds := make(map[string]bool, len(targets))
	for _, t := range targets {
		embeds[t] = true
	}
	return embeds, nil
}

// Stat returns a note's indexed modification time and size.
func (idx *Index) Stat(key string) (int64, int64, error) {
	var mtime, size int64
	err := idx.db.QueryRow(`
		SELECT mtime, size FROM nodes WHERE path = ?
	`, domain.BaseKey(key)).Scan(&mtime, &size)
	if err == sql.ErrNoRows {
		return 0, 0, nil
	}
	return mtime, size, err
}

// LinksTo returns all edges pointing to a target key.
func (idx *Index) LinksTo(target string) ([]domain.Edge, error) {
	rows, err := idx.db.Query(`
		SELECT source_path, target, link_text, is_embed
		FROM edges WHERE target = ?
	`, target)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEdges(rows)
}

// LinksFrom returns all edges from a source note.
func (idx *Index) LinksFrom(sourcePath string) ([]domain.Edge, error) {
	rows, err := idx.db.Query(`
		SELECT source_path, target, link_text, is_embed
		FROM edges WHERE source_path = ?
	`, sourcePath)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEdges(rows)
}

// BeginTx starts a new transaction.
func (idx *Index) BeginTx() (ports.IndexTx, error) {
	tx, err := idx.db.Begin()
	if err != nil {
		return nil, err
	}
	return &indexTx{tx: tx}, nil
}

func scanStrings(rows *sql.Rows) ([]string, error) {
	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func scanEdges(rows *sql.Rows) ([]domain.Edge, error) {
	var edges []domain.Edge
	for rows.Next() {
		var e domain.Edge
		if err := rows.Scan(&e.SourcePath, &e.Target, &e.LinkText, &e.IsEmbed); err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}
