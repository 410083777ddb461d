package compiler

import "testing"

func TestRemoveRedundantLinkLines(t *testing.T) {
	resolve := func(linkText string) (string, bool) {
		switch linkText {
		case "a":
			return "notes/a.md", true
		case "b":
			return "notes/b.md", true
		}
		return "", false
	}

	tests := []struct {
		name     string
		text     string
		included map[string]bool
		want     string
	}{
		{
			name:     "bare link to included item is dropped",
			text:     "[[a]]\n[[b]] extra text\n",
			included: map[string]bool{"notes/a.md": true},
			want:     "[[b]] extra text\n",
		},
		{
			name:     "link outside the included set is kept",
			text:     "[[b]]",
			included: map[string]bool{"notes/a.md": true},
			want:     "[[b]]",
		},
		{
			name:     "unresolved link is kept",
			text:     "[[ghost]]",
			included: map[string]bool{"notes/a.md": true},
			want:     "[[ghost]]",
		},
		{
			name:     "aliased bare link is dropped",
			text:     "[[a|display name]]",
			included: map[string]bool{"notes/a.md": true},
			want:     "",
		},
		{
			name:     "indented bare link is dropped",
			text:     "  [[a]]  ",
			included: map[string]bool{"notes/a.md": true},
			want:     "",
		},
		{
			name:     "empty included set returns input unchanged",
			text:     "[[a]]",
			included: nil,
			want:     "[[a]]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := removeRedundantLinkLines(tt.text, tt.included, resolve)
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRemoveRedundantLinkLinesFragmentResolution(t *testing.T) {
	resolve := func(linkText string) (string, bool) {
		if linkText == "a#Section" {
			return "notes/a.md#Section", true
		}
		return "", false
	}
	included := map[string]bool{"notes/a.md": true}

	got := removeRedundantLinkLines("[[a#Section]]\nbody", included, resolve)
	if got != "body" {
		t.Errorf("expected fragment link dropped via its base note, got %q", got)
	}
}
