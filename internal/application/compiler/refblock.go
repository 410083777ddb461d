package compiler

import "strings"

// ReferenceBlockTag marks a fenced block whose body lines are file or
// folder references to merge into an item set before compilation.
const ReferenceBlockTag = "smart-context"

// ParseReferenceBlocks extracts the body lines of every smart-context
// fenced block in a note. Blank lines and comment lines (#) inside the
// block are skipped.
func ParseReferenceBlocks(text string) []string {
	var refs []string
	inBlock := false

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		if inBlock {
			if strings.HasPrefix(trimmed, "```") {
				inBlock = false
				continue
			}
			if trimmed == "" || strings.HasPrefix(trimmed, "#") {
				continue
			}
			refs = append(refs, trimmed)
			continue
		}

		if strings.HasPrefix(trimmed, "```") &&
			strings.TrimSpace(strings.TrimPrefix(trimmed, "```")) == ReferenceBlockTag {
			inBlock = true
		}
	}
	return refs
}
