package compiler

import (
	"reflect"
	"testing"
)

func TestParseReferenceBlocks(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "extracts body lines",
			text: "intro\n```smart-context\nnotes/a.md\nprojects/\n```\ntail",
			want: []string{"notes/a.md", "projects/"},
		},
		{
			name: "skips blanks and comments",
			text: "```smart-context\n# pinned references\n\nnotes/a.md\n```",
			want: []string{"notes/a.md"},
		},
		{
			name: "multiple blocks concatenate",
			text: "```smart-context\na.md\n```\nmiddle\n```smart-context\nb.md\n```",
			want: []string{"a.md", "b.md"},
		},
		{
			name: "other fences are ignored",
			text: "```go\nfunc main() {}\n```",
			want: nil,
		},
		{
			name: "tag must match exactly",
			text: "```smart-contextual\na.md\n```",
			want: nil,
		},
		{
			name: "no blocks",
			text: "just prose with [[links]]",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseReferenceBlocks(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
