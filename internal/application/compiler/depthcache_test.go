package compiler

import (
	"context"
	"strings"
	"testing"
)

func TestDepthScan(t *testing.T) {
	vault := &fakeVault{
		notes: map[string]string{
			"a.md": "root note",
			"b.md": "linked note",
			"c.md": "far note",
		},
		out: map[string][]string{
			"a.md": {"b.md"},
			"b.md": {"c.md"},
		},
	}
	engine := New(vault, vault, vault)

	sc := newTestContext(testSettings())
	sc.AddItem("a.md", 0, 0)

	store := NewDepthCacheStore()
	cache, err := engine.DepthScan(context.Background(), sc, store, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cache.Depths) != 3 {
		t.Fatalf("expected 3 depth entries, got %d", len(cache.Depths))
	}
	for i, info := range cache.Depths {
		if info.Depth != i {
			t.Errorf("entry %d: expected depth %d, got %d", i, i, info.Depth)
		}
		if !info.Calculated {
			t.Errorf("entry %d: expected calculated", i)
		}
	}
	if cache.Depths[0].Stats.LinkCount != 0 {
		t.Errorf("expected no links at depth 0, got %d", cache.Depths[0].Stats.LinkCount)
	}
	if cache.Depths[1].Stats.LinkCount != 1 || cache.Depths[2].Stats.LinkCount != 2 {
		t.Errorf("expected 1 then 2 links, got %d/%d",
			cache.Depths[1].Stats.LinkCount, cache.Depths[2].Stats.LinkCount)
	}
	if !strings.HasPrefix(cache.Depths[1].Label, "Depth 1 (") {
		t.Errorf("unexpected label %q", cache.Depths[1].Label)
	}
}

func TestDepthScanReusesCacheWhileFingerprintHolds(t *testing.T) {
	vault := &fakeVault{
		notes: map[string]string{
			"a.md": "root note",
			"b.md": "linked note",
		},
		out: map[string][]string{"a.md": {"b.md"}},
	}
	engine := New(vault, vault, vault)

	sc := newTestContext(testSettings())
	sc.AddItem("a.md", 0, 0)

	store := NewDepthCacheStore()
	first, err := engine.DepthScan(context.Background(), sc, store, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := engine.DepthScan(context.Background(), sc, store, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Error("expected the cached scan returned while the fingerprint holds")
	}

	// Changing the root's content shifts the depth-0 fingerprint.
	vault.notes["a.md"] = "root note grown considerably longer than before"
	third, err := engine.DepthScan(context.Background(), sc, store, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if third == first {
		t.Error("expected a recomputed scan after the fingerprint changed")
	}
}

func TestDepthScanCeiling(t *testing.T) {
	big := strings.Repeat("x", (TokenCeiling+1)*4)
	vault := &fakeVault{
		notes: map[string]string{
			"a.md": "small root",
			"b.md": big,
			"c.md": "beyond the ceiling",
		},
		out: map[string][]string{
			"a.md": {"b.md"},
			"b.md": {"c.md"},
		},
	}
	engine := New(vault, vault, vault)

	sc := newTestContext(testSettings())
	sc.AddItem("a.md", 0, 0)

	store := NewDepthCacheStore()
	cache, err := engine.DepthScan(context.Background(), sc, store, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !cache.Depths[1].Calculated {
		t.Error("expected the depth crossing the ceiling to still be calculated")
	}
	if cache.Depths[1].Tokens <= TokenCeiling {
		t.Fatalf("test setup: expected depth 1 above the ceiling, got %d tokens", cache.Depths[1].Tokens)
	}
	for _, info := range cache.Depths[2:] {
		if info.Calculated {
			t.Errorf("expected depth %d skipped after ceiling", info.Depth)
		}
		want := "not calculated"
		if !strings.Contains(info.Label, want) {
			t.Errorf("expected placeholder label for depth %d, got %q", info.Depth, info.Label)
		}
	}
}

func TestDepthScanRecomputesForDifferentMaxDepth(t *testing.T) {
	vault := &fakeVault{
		notes: map[string]string{
			"a.md": "root note",
			"b.md": "linked note",
			"c.md": "far note",
		},
		out: map[string][]string{
			"a.md": {"b.md"},
			"b.md": {"c.md"},
		},
	}
	engine := New(vault, vault, vault)

	sc := newTestContext(testSettings())
	sc.AddItem("a.md", 0, 0)

	store := NewDepthCacheStore()
	shallow, err := engine.DepthScan(context.Background(), sc, store, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	deep, err := engine.DepthScan(context.Background(), sc, store, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deep == shallow {
		t.Error("expected a deeper scan to recompute, not reuse the shallow cache")
	}
	if len(deep.Depths) != 3 {
		t.Errorf("expected depths 0..2, got %d entries", len(deep.Depths))
	}
}

func TestDepthCacheStoreInvalidate(t *testing.T) {
	store := NewDepthCacheStore()
	vault := &fakeVault{notes: map[string]string{"a.md": "root"}}
	engine := New(vault, vault, vault)

	sc := newTestContext(testSettings())
	sc.AddItem("a.md", 0, 0)

	first, err := engine.DepthScan(context.Background(), sc, store, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store.Invalidate(sc.Key)

	second, err := engine.DepthScan(context.Background(), sc, store, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == second {
		t.Error("expected a fresh scan after invalidation")
	}
}
