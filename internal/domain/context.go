package domain

import "strings"

// ContextItem is one key tracked by a context: a vault-relative note path,
// optionally suffixed with a heading or block fragment.
type ContextItem struct {
	Key      string
	Depth    int   // minimal graph distance from any root item
	IsLink   bool  // reached via traversal rather than explicitly added
	IsInlink bool  // reached exclusively via inbound edges
	Excluded bool  // user opt-out; traversal never re-adds excluded keys
	Mtime    int64 // provenance metadata at discovery time
	Size     int64
}

// Templates holds the before/after template strings for the three
// compilation scopes.
type Templates struct {
	BeforeContext string
	AfterContext  string
	BeforeItem    string
	AfterItem     string
	BeforeLink    string
	AfterLink     string
}

// Settings are the compilation settings owned by a context.
type Settings struct {
	ExcludedHeadings []string
	LinkDepth        int
	IncludeInlinks   bool
	Templates        Templates
}

// SmartContext owns a keyed item set plus compilation settings.
// Identity is the Key, independent of item order; insertion order is
// preserved so compiled output is deterministic.
type SmartContext struct {
	Key      string
	Items    map[string]*ContextItem
	Settings Settings

	order []string
}

// NewSmartContext creates an empty context with the given identity key.
func NewSmartContext(key string, settings Settings) *SmartContext {
	return &SmartContext{
		Key:      key,
		Items:    make(map[string]*ContextItem),
		Settings: settings,
	}
}

// AddItem adds an explicitly chosen item at depth 0. Adding a key that is
// already present clears its link provenance (it is now a root) but keeps
// an exclusion flag the user has set.
func (sc *SmartContext) AddItem(key string, mtime, size int64) *ContextItem {
	if item, ok := sc.Items[key]; ok {
		item.Depth = 0
		item.IsLink = false
		item.IsInlink = false
		item.Mtime = mtime
		item.Size = size
		return item
	}
	item := &ContextItem{Key: key, Mtime: mtime, Size: size}
	sc.Items[key] = item
	sc.order = append(sc.order, key)
	return item
}

// MergeLinked records a traversal-discovered key. Depth takes the minimum
// of the existing and the discovered depth; an outbound path at any depth
// clears the inlink classification; excluded keys are never overwritten.
func (sc *SmartContext) MergeLinked(key string, depth int, inlink bool, mtime, size int64) {
	item, ok := sc.Items[key]
	if !ok {
		item = &ContextItem{
			Key:      key,
			Depth:    depth,
			IsLink:   true,
			IsInlink: inlink,
			Mtime:    mtime,
			Size:     size,
		}
		sc.Items[key] = item
		sc.order = append(sc.order, key)
		return
	}
	if item.Excluded {
		return
	}
	if depth < item.Depth {
		item.Depth = depth
	}
	if !inlink {
		item.IsInlink = false
	}
}

// RemoveItem removes a key and every descendant key sharing its path
// prefix (key/... or key#...). Removing a missing key is a no-op.
func (sc *SmartContext) RemoveItem(key string) {
	kept := sc.order[:0]
	for _, k := range sc.order {
		if k == key || strings.HasPrefix(k, key+"/") || strings.HasPrefix(k, key+"#") {
			delete(sc.Items, k)
			continue
		}
		kept = append(kept, k)
	}
	sc.order = kept
}

// SetExcluded flags or unflags a key as excluded. Excluded items stay in
// the map so traversal cannot silently re-add them.
func (sc *SmartContext) SetExcluded(key string, excluded bool) {
	if item, ok := sc.Items[key]; ok {
		item.Excluded = excluded
	}
}

// Keys returns all item keys in insertion order.
func (sc *SmartContext) Keys() []string {
	keys := make([]string, len(sc.order))
	copy(keys, sc.order)
	return keys
}

// RootKeys returns the non-excluded explicitly added keys in insertion
// order. These are the traversal roots.
func (sc *SmartContext) RootKeys() []string {
	var roots []string
	for _, k := range sc.order {
		item := sc.Items[k]
		if !item.IsLink && !item.Excluded {
			roots = append(roots, k)
		}
	}
	return roots
}

// BaseKey strips a heading or block fragment from a key.
// "notes/a.md#Heading" -> "notes/a.md".
func BaseKey(key string) string {
	if i := strings.Index(key, "#"); i >= 0 {
		return key[:i]
	}
	return key
}
