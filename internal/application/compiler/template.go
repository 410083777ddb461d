package compiler

import (
	"fmt"
	"strings"
	"time"
)

// substitute replaces {{NAME}} placeholders in one pass over the template.
// Unknown placeholders are left verbatim; substituted values are never
// re-scanned.
func substitute(tpl string, vars map[string]string) string {
	if !strings.Contains(tpl, "{{") {
		return tpl
	}

	var sb strings.Builder
	for i := 0; i < len(tpl); {
		open := strings.Index(tpl[i:], "{{")
		if open < 0 {
			sb.WriteString(tpl[i:])
			break
		}
		open += i
		close := strings.Index(tpl[open:], "}}")
		if close < 0 {
			sb.WriteString(tpl[i:])
			break
		}
		close += open

		sb.WriteString(tpl[i:open])
		name := tpl[open+2 : close]
		if value, ok := vars[name]; ok {
			sb.WriteString(value)
		} else {
			sb.WriteString(tpl[open : close+2])
		}
		i = close + 2
	}
	return sb.String()
}

// timeAgo renders a Unix timestamp as a coarse relative age ("3h ago").
func timeAgo(mtime int64) string {
	if mtime == 0 {
		return ""
	}
	age := time.Since(time.Unix(mtime, 0))
	switch {
	case age < time.Minute:
		return "just now"
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(age.Hours()))
	case age < 365*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(age.Hours()/24))
	}
	return fmt.Sprintf("%dy ago", int(age.Hours()/24/365))
}
