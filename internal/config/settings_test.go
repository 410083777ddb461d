package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	defaults := DefaultConfig()
	if !reflect.DeepEqual(cfg, defaults) {
		t.Errorf("expected defaults, got %+v", cfg)
	}
	if cfg.Settings.LinkDepth != 1 || cfg.MaxDepth != 3 {
		t.Errorf("unexpected default depths: %d/%d", cfg.Settings.LinkDepth, cfg.MaxDepth)
	}
}

func TestLoadConfigOverlay(t *testing.T) {
	vault := t.TempDir()
	settings := `
excluded_headings:
  - Secret
  - Private
link_depth: 2
include_inlinks: true
max_depth: 5
ignore:
  - "*.tmp.md"
templates:
  before_item: "FILE: {{ITEM_PATH}}"
  after_context: "done"
`
	if err := os.WriteFile(filepath.Join(vault, SettingsFileName), []byte(settings), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	cfg, err := LoadConfig(vault)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(cfg.Settings.ExcludedHeadings, []string{"Secret", "Private"}) {
		t.Errorf("unexpected excluded headings: %v", cfg.Settings.ExcludedHeadings)
	}
	if cfg.Settings.LinkDepth != 2 || !cfg.Settings.IncludeInlinks {
		t.Errorf("unexpected settings: %+v", cfg.Settings)
	}
	if cfg.MaxDepth != 5 {
		t.Errorf("expected max depth 5, got %d", cfg.MaxDepth)
	}
	if !reflect.DeepEqual(cfg.Ignore, []string{"*.tmp.md"}) {
		t.Errorf("unexpected ignore patterns: %v", cfg.Ignore)
	}

	if cfg.Settings.Templates.BeforeItem != "FILE: {{ITEM_PATH}}" {
		t.Errorf("expected overlaid template, got %q", cfg.Settings.Templates.BeforeItem)
	}
	if cfg.Settings.Templates.AfterContext != "done" {
		t.Errorf("expected overlaid after_context, got %q", cfg.Settings.Templates.AfterContext)
	}
	// Untouched templates keep their defaults.
	if cfg.Settings.Templates.BeforeContext != "{{FILE_TREE}}" {
		t.Errorf("expected default before_context kept, got %q", cfg.Settings.Templates.BeforeContext)
	}
}

func TestLoadConfigMalformedFile(t *testing.T) {
	vault := t.TempDir()
	if err := os.WriteFile(filepath.Join(vault, SettingsFileName), []byte("{unclosed"), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	if _, err := LoadConfig(vault); err == nil {
		t.Error("expected error for malformed settings")
	}
}
