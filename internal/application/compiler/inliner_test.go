package compiler

import (
	"context"
	"strings"
	"testing"
)

func TestInlineEmbeds(t *testing.T) {
	vault := &fakeVault{
		notes: map[string]string{
			"a.md":     "root",
			"b.md":     "visible\n# Secret\nhidden",
			"plain.md": "cross reference",
		},
		embeds: map[string]map[string]bool{
			"a.md": {"b.md": true},
		},
	}
	engine := New(vault, vault, vault)

	t.Run("inlines embedded note as quoted block", func(t *testing.T) {
		got, exclusions := engine.inlineEmbeds(context.Background(), "a.md", "before\n![[b]]\nafter", []string{"Secret"})

		if !strings.Contains(got, "> Embedded from b.md:") {
			t.Errorf("expected embed header, got:\n%s", got)
		}
		if !strings.Contains(got, "> visible") {
			t.Errorf("expected quoted content, got:\n%s", got)
		}
		if !strings.Contains(got, "> [1 section excluded]") {
			t.Errorf("expected exclusion notice, got:\n%s", got)
		}
		if strings.Contains(got, "hidden") {
			t.Errorf("excluded content leaked:\n%s", got)
		}
		if exclusions["Secret"] != 1 {
			t.Errorf("expected exclusion counted once, got %d", exclusions["Secret"])
		}
	})

	t.Run("unresolved reference becomes notice", func(t *testing.T) {
		got, _ := engine.inlineEmbeds(context.Background(), "a.md", "![[missing]]", nil)

		want := "> [Embedded note not found: missing]"
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("non-embedded reference demotes to plain link", func(t *testing.T) {
		got, _ := engine.inlineEmbeds(context.Background(), "a.md", "![[plain]]", nil)

		if got != "[[plain]]" {
			t.Errorf("expected demoted link, got %q", got)
		}
	})

	t.Run("alias resolves against target before pipe", func(t *testing.T) {
		got, _ := engine.inlineEmbeds(context.Background(), "a.md", "![[b|shown as]]", nil)

		if !strings.Contains(got, "> Embedded from b.md:") {
			t.Errorf("expected aliased embed inlined, got %q", got)
		}
	})

	t.Run("text without embed syntax is untouched", func(t *testing.T) {
		text := "just [[b]] a link"
		got, exclusions := engine.inlineEmbeds(context.Background(), "a.md", text, []string{"Secret"})

		if got != text {
			t.Errorf("expected %q unchanged, got %q", text, got)
		}
		if exclusions != nil {
			t.Errorf("expected nil exclusions, got %v", exclusions)
		}
	})

	t.Run("blank embedded lines keep the quote marker", func(t *testing.T) {
		vault.notes["multi.md"] = "one\n\ntwo"
		vault.embeds["a.md"]["multi.md"] = true

		got, _ := engine.inlineEmbeds(context.Background(), "a.md", "![[multi]]", nil)

		want := "> Embedded from multi.md:\n> one\n>\n> two"
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})
}
