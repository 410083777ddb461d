package domain

import (
	"regexp"
	"strings"
)

// ExclusionResult is the outcome of filtering one source text.
type ExclusionResult struct {
	Content          string
	ExcludedCount    int
	ExcludedSections map[string]int
}

var headingPattern = regexp.MustCompile(`^(#+)\s+(.*)$`)

// fenceMarker reports the fence family opened or closed by a line:
// "`" for three or more backticks, "~" for three or more tildes,
// "" for anything else.
func fenceMarker(line string) string {
	t := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(t, "```"):
		return "`"
	case strings.HasPrefix(t, "~~~"):
		return "~"
	}
	return ""
}

// ExcludeSections strips every section whose heading text exactly matches
// an entry of excluded. A section runs from its heading line through the
// last line before the next heading of equal or shallower level (or end of
// input). Heading syntax inside fenced code blocks is never structural;
// fences inside an excluded section are dropped wholesale.
//
// An empty exclusion list returns the input unchanged.
func ExcludeSections(text string, excluded []string) ExclusionResult {
	result := ExclusionResult{Content: text}
	if len(excluded) == 0 {
		return result
	}

	excludedSet := make(map[string]bool, len(excluded))
	for _, h := range excluded {
		excludedSet[strings.TrimSpace(h)] = true
	}

	var (
		out          []string
		inFence      bool
		fenceFamily  string
		excluding    bool
		excludeLevel int
	)

	for _, line := range strings.Split(text, "\n") {
		if marker := fenceMarker(line); marker != "" {
			if !inFence {
				inFence = true
				fenceFamily = marker
			} else if marker == fenceFamily {
				inFence = false
			}
			if !excluding {
				out = append(out, line)
			}
			continue
		}

		if inFence {
			if !excluding {
				out = append(out, line)
			}
			continue
		}

		if m := headingPattern.FindStringSubmatch(line); m != nil {
			level := len(m[1])
			heading := strings.TrimSpace(m[2])

			if excludedSet[heading] {
				excluding = true
				excludeLevel = level
				result.ExcludedCount++
				if result.ExcludedSections == nil {
					result.ExcludedSections = make(map[string]int)
				}
				result.ExcludedSections[heading]++
				continue
			}
			if excluding && level <= excludeLevel {
				excluding = false
			}
		}

		if !excluding {
			out = append(out, line)
		}
	}

	result.Content = strings.TrimSpace(strings.Join(out, "\n"))
	return result
}

// ExtractSection returns just the section under the named heading,
// including the heading line, using the same nesting and fence rules as
// ExcludeSections. Returns false when the heading is not present.
func ExtractSection(text, heading string) (string, bool) {
	var (
		out         []string
		inFence     bool
		fenceFamily string
		capturing   bool
		level       int
		found       bool
	)

	for _, line := range strings.Split(text, "\n") {
		if marker := fenceMarker(line); marker != "" {
			if !inFence {
				inFence = true
				fenceFamily = marker
			} else if marker == fenceFamily {
				inFence = false
			}
			if capturing {
				out = append(out, line)
			}
			continue
		}
		if inFence {
			if capturing {
				out = append(out, line)
			}
			continue
		}

		if m := headingPattern.FindStringSubmatch(line); m != nil {
			l := len(m[1])
			h := strings.TrimSpace(m[2])
			if capturing && l <= level {
				break
			}
			if !capturing && h == heading {
				capturing = true
				found = true
				level = l
				out = append(out, line)
				continue
			}
		}

		if capturing {
			out = append(out, line)
		}
	}

	return strings.TrimSpace(strings.Join(out, "\n")), found
}
