package compiler

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"smartctx/internal/domain"
)

var embedPattern = regexp.MustCompile(`!\[\[([^\]]+)\]\]`)

// inlineEmbeds replaces every embed marker in an item's text. Unresolved
// references become a not-found notice; references in the item's embedded
// set are fetched, heading-filtered, and inlined as a quoted block under
// an embed header; references written with embed syntax but not actually
// embedded are demoted to plain links. Inlined content is not re-scanned,
// so embedding is one level deep and no embed syntax survives.
func (e *Engine) inlineEmbeds(ctx context.Context, key, text string, excludedHeadings []string) (string, map[string]int) {
	if !strings.Contains(text, "![[") {
		return text, nil
	}

	embeds, err := e.graph.Embeds(domain.BaseKey(key))
	if err != nil {
		embeds = nil
	}

	exclusions := make(map[string]int)
	out := embedPattern.ReplaceAllStringFunc(text, func(marker string) string {
		ref := strings.TrimSpace(marker[3 : len(marker)-2])
		target := ref
		if i := strings.Index(target, "|"); i >= 0 {
			target = strings.TrimSpace(target[:i])
		}

		resolved, ok := e.resolver.Resolve(target, key)
		if !ok {
			return notFoundNotice(ref)
		}
		if !embeds[resolved] && !embeds[domain.BaseKey(resolved)] {
			// Embed syntax for a plain cross-reference: drop the sigil.
			return "[[" + ref + "]]"
		}

		content, err := e.content.Read(ctx, resolved)
		if err != nil {
			content = ""
		}
		filtered := domain.ExcludeSections(content, excludedHeadings)
		mergeCounts(exclusions, filtered.ExcludedSections)
		return formatEmbed(resolved, filtered)
	})
	return out, exclusions
}

func notFoundNotice(ref string) string {
	return fmt.Sprintf("> [Embedded note not found: %s]", ref)
}

// formatEmbed renders filtered embedded content as a quoted block with a
// header naming the resolved key, plus an exclusion notice when sections
// were stripped.
func formatEmbed(key string, filtered domain.ExclusionResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "> Embedded from %s:\n", key)
	for _, line := range strings.Split(filtered.Content, "\n") {
		if strings.TrimSpace(line) == "" {
			sb.WriteString(">\n")
			continue
		}
		sb.WriteString("> ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	if filtered.ExcludedCount > 0 {
		noun := "sections"
		if filtered.ExcludedCount == 1 {
			noun = "section"
		}
		fmt.Fprintf(&sb, "> [%d %s excluded]\n", filtered.ExcludedCount, noun)
	}
	return strings.TrimRight(sb.String(), "\n")
}
