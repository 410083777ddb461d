package compiler

import "smartctx/internal/domain"

// Direction selects which link-graph edges traversal follows.
type Direction int

const (
	DirectionOut Direction = iota
	DirectionIn
	DirectionBoth
)

// GraphEntry is one traversal record: a key found at a depth in one
// direction. Entries are transient; callers fold them into context items.
type GraphEntry struct {
	Depth     int
	Key       string
	Direction Direction
}

// discovery records how a key was first reached in one directional walk.
type discovery struct {
	depth int
	from  string
}

// Traverse runs a breadth-first expansion from the root keys along the
// chosen direction(s), bounded by maxDepth. Cycles terminate through the
// visited set; keys beyond maxDepth are absent from the result. When
// includeSelf is set the roots appear at depth 0 once per direction
// performed.
func (e *Engine) Traverse(roots []string, dir Direction, maxDepth int, includeSelf bool) []GraphEntry {
	var entries []GraphEntry
	directions := []Direction{dir}
	if dir == DirectionBoth {
		directions = []Direction{DirectionOut, DirectionIn}
	}

	for _, d := range directions {
		if includeSelf {
			for _, root := range roots {
				entries = append(entries, GraphEntry{Depth: 0, Key: root, Direction: d})
			}
		}
		for key, found := range e.walk(roots, d, maxDepth) {
			entries = append(entries, GraphEntry{Depth: found.depth, Key: key, Direction: d})
		}
	}
	return entries
}

// walk performs one directional BFS and returns every discovered non-root
// key with its minimal depth and discovering note.
func (e *Engine) walk(roots []string, dir Direction, maxDepth int) map[string]discovery {
	found := make(map[string]discovery)
	visited := make(map[string]bool, len(roots))
	frontier := make([]string, 0, len(roots))
	for _, root := range roots {
		base := domain.BaseKey(root)
		if !visited[base] {
			visited[base] = true
			frontier = append(frontier, base)
		}
	}

	for depth := 1; depth <= maxDepth && len(frontier) > 0; depth++ {
		var next []string
		for _, key := range frontier {
			neighbors, err := e.neighbors(key, dir)
			if err != nil {
				continue
			}
			for _, neighbor := range neighbors {
				base := domain.BaseKey(neighbor)
				if base == "" || visited[base] {
					continue
				}
				visited[base] = true
				found[base] = discovery{depth: depth, from: key}
				next = append(next, base)
			}
		}
		frontier = next
	}
	return found
}

func (e *Engine) neighbors(key string, dir Direction) ([]string, error) {
	if dir == DirectionIn {
		return e.graph.Inlinks(key)
	}
	return e.graph.Outlinks(key)
}

// expandLinks updates the context's item map with keys reachable from its
// non-excluded roots within maxDepth. Outbound and inbound results merge
// on minimum depth; a key is classified as an inlink only when no outbound
// path reaches it. Keys embedded directly from a root are forced to depth
// 0 regardless of graph distance, so embedded content is always treated as
// part of the root's own body.
//
// The returned map records which note discovered each key.
func (e *Engine) expandLinks(sc *domain.SmartContext, maxDepth int, includeInlinks bool) map[string]string {
	roots := sc.RootKeys()
	if len(roots) == 0 {
		return nil
	}

	out := e.walk(roots, DirectionOut, maxDepth)
	var in map[string]discovery
	if includeInlinks {
		in = e.walk(roots, DirectionIn, maxDepth)
	}

	merged := make(map[string]discovery, len(out)+len(in))
	inlinkOnly := make(map[string]bool, len(in))
	for key, found := range out {
		merged[key] = found
	}
	for key, found := range in {
		if existing, ok := merged[key]; ok {
			if found.depth < existing.depth {
				merged[key] = found
			}
			continue
		}
		merged[key] = found
		inlinkOnly[key] = true
	}

	// Embedded-edge override: embeds of a root belong at depth 0.
	for _, root := range roots {
		embeds, err := e.graph.Embeds(domain.BaseKey(root))
		if err != nil {
			continue
		}
		for target := range embeds {
			base := domain.BaseKey(target)
			if base == domain.BaseKey(root) {
				continue
			}
			merged[base] = discovery{depth: 0, from: domain.BaseKey(root)}
			delete(inlinkOnly, base)
		}
	}

	from := make(map[string]string, len(merged))
	for key, found := range merged {
		mtime, size, _ := e.graph.Stat(key)
		sc.MergeLinked(key, found.depth, inlinkOnly[key], mtime, size)
		from[key] = found.from
	}
	return from
}
