package domain

import (
	"reflect"
	"testing"
)

func TestAddItemResetsLinkProvenance(t *testing.T) {
	sc := NewSmartContext("test", Settings{})
	sc.MergeLinked("notes/a.md", 2, true, 10, 20)

	item := sc.AddItem("notes/a.md", 30, 40)

	if item.Depth != 0 {
		t.Errorf("expected depth 0, got %d", item.Depth)
	}
	if item.IsLink || item.IsInlink {
		t.Errorf("expected link provenance cleared, got IsLink=%v IsInlink=%v", item.IsLink, item.IsInlink)
	}
	if item.Mtime != 30 || item.Size != 40 {
		t.Errorf("expected metadata refreshed, got mtime=%d size=%d", item.Mtime, item.Size)
	}
}

func TestAddItemKeepsExclusion(t *testing.T) {
	sc := NewSmartContext("test", Settings{})
	sc.AddItem("notes/a.md", 0, 0)
	sc.SetExcluded("notes/a.md", true)

	sc.AddItem("notes/a.md", 0, 0)

	if !sc.Items["notes/a.md"].Excluded {
		t.Error("expected exclusion flag to survive re-add")
	}
}

func TestMergeLinked(t *testing.T) {
	t.Run("takes minimum depth", func(t *testing.T) {
		sc := NewSmartContext("test", Settings{})
		sc.MergeLinked("notes/a.md", 3, false, 0, 0)
		sc.MergeLinked("notes/a.md", 1, false, 0, 0)
		sc.MergeLinked("notes/a.md", 2, false, 0, 0)

		if got := sc.Items["notes/a.md"].Depth; got != 1 {
			t.Errorf("expected depth 1, got %d", got)
		}
	})

	t.Run("outbound path clears inlink classification", func(t *testing.T) {
		sc := NewSmartContext("test", Settings{})
		sc.MergeLinked("notes/a.md", 1, true, 0, 0)
		sc.MergeLinked("notes/a.md", 2, false, 0, 0)

		if sc.Items["notes/a.md"].IsInlink {
			t.Error("expected inlink classification cleared by outbound discovery")
		}
	})

	t.Run("inlink never overrides outbound", func(t *testing.T) {
		sc := NewSmartContext("test", Settings{})
		sc.MergeLinked("notes/a.md", 1, false, 0, 0)
		sc.MergeLinked("notes/a.md", 1, true, 0, 0)

		if sc.Items["notes/a.md"].IsInlink {
			t.Error("expected item to stay classified as outbound")
		}
	})

	t.Run("excluded items are never overwritten", func(t *testing.T) {
		sc := NewSmartContext("test", Settings{})
		sc.MergeLinked("notes/a.md", 3, true, 0, 0)
		sc.SetExcluded("notes/a.md", true)
		sc.MergeLinked("notes/a.md", 1, false, 0, 0)

		item := sc.Items["notes/a.md"]
		if item.Depth != 3 || !item.IsInlink {
			t.Errorf("expected excluded item untouched, got depth=%d inlink=%v", item.Depth, item.IsInlink)
		}
	})

	t.Run("root is not demoted to link", func(t *testing.T) {
		sc := NewSmartContext("test", Settings{})
		sc.AddItem("notes/a.md", 0, 0)
		sc.MergeLinked("notes/a.md", 2, false, 0, 0)

		item := sc.Items["notes/a.md"]
		if item.IsLink || item.Depth != 0 {
			t.Errorf("expected root kept at depth 0, got IsLink=%v depth=%d", item.IsLink, item.Depth)
		}
	})
}

func TestRemoveItemCascades(t *testing.T) {
	sc := NewSmartContext("test", Settings{})
	for _, key := range []string{
		"foo",
		"foo/bar.md",
		"foo/bar.md#^block",
		"foobar.md",
		"other.md",
	} {
		sc.AddItem(key, 0, 0)
	}

	sc.RemoveItem("foo")

	want := []string{"foobar.md", "other.md"}
	if got := sc.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected keys %v, got %v", want, got)
	}
	if _, ok := sc.Items["foo/bar.md"]; ok {
		t.Error("expected descendant foo/bar.md removed")
	}
}

func TestRemoveItemFragmentCascade(t *testing.T) {
	sc := NewSmartContext("test", Settings{})
	sc.AddItem("notes/a.md", 0, 0)
	sc.AddItem("notes/a.md#Heading", 0, 0)
	sc.AddItem("notes/ab.md", 0, 0)

	sc.RemoveItem("notes/a.md")

	want := []string{"notes/ab.md"}
	if got := sc.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected keys %v, got %v", want, got)
	}
}

func TestRemoveMissingKeyIsNoOp(t *testing.T) {
	sc := NewSmartContext("test", Settings{})
	sc.AddItem("notes/a.md", 0, 0)

	sc.RemoveItem("notes/missing.md")

	if got := sc.Keys(); len(got) != 1 || got[0] != "notes/a.md" {
		t.Errorf("expected keys unchanged, got %v", got)
	}
}

func TestKeysPreserveInsertionOrder(t *testing.T) {
	sc := NewSmartContext("test", Settings{})
	sc.AddItem("c.md", 0, 0)
	sc.MergeLinked("a.md", 1, false, 0, 0)
	sc.AddItem("b.md", 0, 0)

	want := []string{"c.md", "a.md", "b.md"}
	if got := sc.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestRootKeys(t *testing.T) {
	sc := NewSmartContext("test", Settings{})
	sc.AddItem("a.md", 0, 0)
	sc.MergeLinked("b.md", 1, false, 0, 0)
	sc.AddItem("c.md", 0, 0)
	sc.SetExcluded("c.md", true)

	want := []string{"a.md"}
	if got := sc.RootKeys(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected roots %v, got %v", want, got)
	}
}

func TestBaseKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"notes/a.md#Heading", "notes/a.md"},
		{"notes/a.md#^block", "notes/a.md"},
		{"notes/a.md", "notes/a.md"},
		{"a#b#c", "a"},
	}

	for _, tt := range tests {
		if got := BaseKey(tt.key); got != tt.want {
			t.Errorf("BaseKey(%q): expected %q, got %q", tt.key, tt.want, got)
		}
	}
}
