package sqlite

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"
)

// testResolver maps bare note names to vault keys, preserving fragments.
type testResolver struct {
	notes map[string]string
}

func (r testResolver) Resolve(linkText, _ string) (string, bool) {
	base, fragment := linkText, ""
	if i := strings.Index(linkText, "#"); i >= 0 {
		base, fragment = linkText[:i], linkText[i:]
	}
	if key, ok := r.notes[base]; ok {
		return key + fragment, true
	}
	return "", false
}

func newTestIndex(t *testing.T, files map[string]string) (*Index, string) {
	t.Helper()
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	vaultDir := t.TempDir()
	writeVaultFiles(t, vaultDir, files)

	resolver := testResolver{notes: map[string]string{
		"a": "a.md",
		"b": "b.md",
		"c": "c.md",
		"d": "d.md",
	}}

	idx := NewIndex(resolver)
	if err := idx.Open(vaultDir); err != nil {
		t.Fatalf("open index: %v", err)
	}
	t.Cleanup(func() { idx.Close() })
	return idx, vaultDir
}

func writeVaultFiles(t *testing.T, vaultDir string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(vaultDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
}

func TestSyncFull(t *testing.T) {
	idx, _ := newTestIndex(t, map[string]string{
		"a.md": "[[b]]\n![[c]]\n[[ghost]]",
		"b.md": "[[a#Section]]",
		"c.md": "plain",
	})

	stats, err := idx.SyncFull()
	if err != nil {
		t.Fatalf("sync: %v", err)
	}

	if stats.FilesScanned != 3 || stats.NodesAdded != 3 {
		t.Errorf("expected 3 files and 3 nodes, got %d/%d", stats.FilesScanned, stats.NodesAdded)
	}
	if stats.EdgesAdded != 3 {
		t.Errorf("expected 3 edges (unresolvable link skipped), got %d", stats.EdgesAdded)
	}

	out, err := idx.Outlinks("a.md")
	if err != nil {
		t.Fatalf("outlinks: %v", err)
	}
	sort.Strings(out)
	if len(out) != 2 || out[0] != "b.md" || out[1] != "c.md" {
		t.Errorf("expected outlinks [b.md c.md], got %v", out)
	}

	in, err := idx.Inlinks("a.md")
	if err != nil {
		t.Fatalf("inlinks: %v", err)
	}
	if len(in) != 1 || in[0] != "b.md" {
		t.Errorf("expected fragment-targeted inlink from b.md, got %v", in)
	}

	embeds, err := idx.Embeds("a.md")
	if err != nil {
		t.Fatalf("embeds: %v", err)
	}
	if len(embeds) != 1 || !embeds["c.md"] {
		t.Errorf("expected embeds {c.md}, got %v", embeds)
	}

	mtime, size, err := idx.Stat("a.md")
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if mtime == 0 || size == 0 {
		t.Errorf("expected indexed metadata, got mtime=%d size=%d", mtime, size)
	}

	mtime, size, err = idx.Stat("missing.md")
	if err != nil || mtime != 0 || size != 0 {
		t.Errorf("expected zero stat for unindexed note, got %d/%d err=%v", mtime, size, err)
	}
}

func TestSyncFullReplacesPreviousState(t *testing.T) {
	idx, vaultDir := newTestIndex(t, map[string]string{
		"a.md": "[[b]]",
		"b.md": "",
	})

	if _, err := idx.SyncFull(); err != nil {
		t.Fatalf("first sync: %v", err)
	}

	if err := os.Remove(filepath.Join(vaultDir, "b.md")); err != nil {
		t.Fatalf("remove: %v", err)
	}
	stats, err := idx.SyncFull()
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}

	if stats.NodesAdded != 1 {
		t.Errorf("expected single node after rebuild, got %d", stats.NodesAdded)
	}
	if _, size, _ := idx.Stat("b.md"); size != 0 {
		t.Error("expected removed note gone from index")
	}
}

func TestSyncIncremental(t *testing.T) {
	idx, vaultDir := newTestIndex(t, map[string]string{
		"a.md": "[[b]]",
		"b.md": "",
	})

	if _, err := idx.SyncFull(); err != nil {
		t.Fatalf("full sync: %v", err)
	}

	// New file appears.
	writeVaultFiles(t, vaultDir, map[string]string{"c.md": "[[a]]"})
	stats, err := idx.SyncIncremental()
	if err != nil {
		t.Fatalf("incremental sync: %v", err)
	}
	if stats.NodesAdded != 1 {
		t.Errorf("expected 1 node added, got %d", stats.NodesAdded)
	}
	in, _ := idx.Inlinks("a.md")
	if len(in) != 1 || in[0] != "c.md" {
		t.Errorf("expected new inlink from c.md, got %v", in)
	}

	// Existing file changes; push its mtime past the last sync.
	writeVaultFiles(t, vaultDir, map[string]string{"a.md": "[[c]]"})
	future := time.Now().Add(2 * time.Second)
	aPath := filepath.Join(vaultDir, "a.md")
	if err := os.Chtimes(aPath, future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	stats, err = idx.SyncIncremental()
	if err != nil {
		t.Fatalf("incremental sync: %v", err)
	}
	if stats.NodesUpdated != 1 {
		t.Errorf("expected 1 node updated, got %d", stats.NodesUpdated)
	}
	out, _ := idx.Outlinks("a.md")
	if len(out) != 1 || out[0] != "c.md" {
		t.Errorf("expected stale edges replaced, got %v", out)
	}

	// File disappears.
	if err := os.Remove(filepath.Join(vaultDir, "b.md")); err != nil {
		t.Fatalf("remove: %v", err)
	}
	stats, err = idx.SyncIncremental()
	if err != nil {
		t.Fatalf("incremental sync: %v", err)
	}
	if stats.NodesDeleted != 1 {
		t.Errorf("expected 1 node deleted, got %d", stats.NodesDeleted)
	}
}

func TestNeedsFullRebuild(t *testing.T) {
	idx, _ := newTestIndex(t, map[string]string{"a.md": ""})

	if idx.NeedsFullRebuild() {
		t.Error("expected no rebuild needed right after open")
	}
}

func TestHashVaultPath(t *testing.T) {
	h1 := hashVaultPath("/vault/one")
	h2 := hashVaultPath("/vault/two")

	if len(h1) != 16 {
		t.Errorf("expected 16 hex chars, got %d", len(h1))
	}
	if h1 == h2 {
		t.Error("expected distinct hashes for distinct vaults")
	}
	if h1 != hashVaultPath("/vault/one") {
		t.Error("expected deterministic hash")
	}
}
