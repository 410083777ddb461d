// Package compiler implements the context compilation engine: bounded link
// graph traversal, heading-aware text filtering, embed inlining, and
// template-driven assembly of a context's items into one prompt-ready
// string.
//
// An Engine instance is safe for use by one logical caller at a time. A
// compile mutates the context's item map in place, so callers must not
// interleave two compiles against the same context concurrently.
package compiler

import (
	"context"
	"path"
	"strconv"
	"strings"

	"smartctx/internal/domain"
	"smartctx/internal/ports"
)

// Engine compiles contexts against an injected content provider, link
// resolver, and graph source.
type Engine struct {
	content  ports.ContentProvider
	resolver ports.LinkResolver
	graph    ports.GraphSource
}

// New creates an engine over the given collaborators.
func New(content ports.ContentProvider, resolver ports.LinkResolver, graph ports.GraphSource) *Engine {
	return &Engine{
		content:  content,
		resolver: resolver,
		graph:    graph,
	}
}

// Options controls a single compile.
type Options struct {
	LinkDepth      int
	IncludeInlinks bool

	// Filter, when set, drops items it returns false for.
	Filter func(*domain.ContextItem) bool
}

// Result is one compiled context.
type Result struct {
	Context    string
	Stats      domain.CompileStats
	Exclusions map[string]int // heading text -> sections stripped
}

type compiledEntry struct {
	item    *domain.ContextItem
	content string
	from    string // discovering item, for link entries
}

// Compile expands the context's link graph to the requested depth, cleans
// every included item's text, and merges the results through the context's
// templates. The context's item map is updated in place with
// traversal-discovered items.
func (e *Engine) Compile(ctx context.Context, sc *domain.SmartContext, opts Options) (*Result, error) {
	discovered := e.expandLinks(sc, opts.LinkDepth, opts.IncludeInlinks)

	result := &Result{Exclusions: make(map[string]int)}

	var items, links []*compiledEntry
	includedSet := make(map[string]bool)

	for _, key := range sc.Keys() {
		item := sc.Items[key]
		if e.included(item, opts) {
			includedSet[domain.BaseKey(key)] = true
		}
	}

	for _, key := range sc.Keys() {
		item := sc.Items[key]
		if !e.included(item, opts) {
			continue
		}

		raw, err := e.content.Read(ctx, key)
		if err != nil {
			raw = "" // missing content degrades to an empty item
		}

		filtered := domain.ExcludeSections(raw, sc.Settings.ExcludedHeadings)
		mergeCounts(result.Exclusions, filtered.ExcludedSections)

		text, embedExclusions := e.inlineEmbeds(ctx, key, filtered.Content, sc.Settings.ExcludedHeadings)
		mergeCounts(result.Exclusions, embedExclusions)

		text = removeRedundantLinkLines(text, includedSet, func(linkText string) (string, bool) {
			return e.resolver.Resolve(linkText, key)
		})

		entry := &compiledEntry{item: item, content: text, from: discovered[key]}
		if item.IsLink {
			links = append(links, entry)
		} else {
			items = append(items, entry)
		}
	}

	result.Context, result.Stats = e.merge(sc, items, links)
	return result, nil
}

// included reports whether an item participates in a compile with the
// given options.
func (e *Engine) included(item *domain.ContextItem, opts Options) bool {
	if item.Excluded {
		return false
	}
	if opts.Filter != nil && !opts.Filter(item) {
		return false
	}
	if item.IsLink {
		if item.Depth > opts.LinkDepth {
			return false
		}
		if item.IsInlink && !opts.IncludeInlinks {
			return false
		}
	}
	return true
}

// merge assembles cleaned items and links through the context's templates
// and computes the final stats.
func (e *Engine) merge(sc *domain.SmartContext, items, links []*compiledEntry) (string, domain.CompileStats) {
	tpl := sc.Settings.Templates

	var treeKeys []string
	for _, entry := range append(append([]*compiledEntry{}, items...), links...) {
		treeKeys = append(treeKeys, entry.item.Key)
	}
	tree := domain.BuildPathTree(treeKeys).Render()
	contextVars := map[string]string{"FILE_TREE": tree}

	var sb strings.Builder
	writeSection(&sb, substitute(tpl.BeforeContext, contextVars))

	for _, entry := range items {
		vars := map[string]string{
			"FILE_TREE": tree,
			"ITEM_PATH": entry.item.Key,
			"ITEM_NAME": keyName(entry.item.Key),
			"KEY":       entry.item.Key,
			"TIME_AGO":  timeAgo(entry.item.Mtime),
		}
		writeSection(&sb, substitute(tpl.BeforeItem, vars))
		writeSection(&sb, entry.content)
		writeSection(&sb, substitute(tpl.AfterItem, vars))
	}

	for _, entry := range links {
		linkType := "outlink"
		if entry.item.IsInlink {
			linkType = "inlink"
		}
		vars := map[string]string{
			"FILE_TREE":      tree,
			"LINK_PATH":      entry.item.Key,
			"LINK_NAME":      keyName(entry.item.Key),
			"LINK_ITEM_PATH": entry.from,
			"LINK_ITEM_NAME": keyName(entry.from),
			"LINK_TYPE":      linkType,
			"LINK_DEPTH":     strconv.Itoa(entry.item.Depth),
			"KEY":            entry.item.Key,
			"TIME_AGO":       timeAgo(entry.item.Mtime),
		}
		writeSection(&sb, substitute(tpl.BeforeLink, vars))
		writeSection(&sb, entry.content)
		writeSection(&sb, substitute(tpl.AfterLink, vars))
	}

	writeSection(&sb, substitute(tpl.AfterContext, contextVars))

	compiled := strings.TrimSpace(sb.String())
	stats := domain.CompileStats{
		ItemCount: len(items),
		LinkCount: len(links),
		CharCount: len(compiled),
	}
	return compiled, stats
}

// writeSection appends a non-empty section followed by a newline.
func writeSection(sb *strings.Builder, s string) {
	if s == "" {
		return
	}
	sb.WriteString(s)
	sb.WriteString("\n")
}

// keyName returns the display name of a key: the base filename without its
// extension, fragment dropped.
func keyName(key string) string {
	name := path.Base(domain.BaseKey(key))
	if i := strings.LastIndex(name, "."); i > 0 {
		name = name[:i]
	}
	return name
}

func mergeCounts(dst, src map[string]int) {
	for heading, n := range src {
		dst[heading] += n
	}
}
