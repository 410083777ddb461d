package compiler

import (
	"regexp"
	"strings"

	"smartctx/internal/domain"
)

var linkOnlyPattern = regexp.MustCompile(`^\[\[([^\]]+)\]\]$`)

// removeRedundantLinkLines drops lines consisting of exactly one wiki-link
// marker whose resolved target is already an included item. Lines mixing a
// link with other text, or pointing outside the included set, are kept
// verbatim.
func removeRedundantLinkLines(text string, included map[string]bool, resolve func(string) (string, bool)) string {
	if len(included) == 0 {
		return text
	}

	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if m := linkOnlyPattern.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			target := m[1]
			if i := strings.Index(target, "|"); i >= 0 {
				target = target[:i]
			}
			if resolved, ok := resolve(strings.TrimSpace(target)); ok && included[domain.BaseKey(resolved)] {
				continue
			}
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
