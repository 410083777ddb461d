package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"smartctx/internal/domain"
)

// SettingsFileName is the per-vault settings file, read from the vault
// root.
const SettingsFileName = ".smart-context.yaml"

// fileSettings is the on-disk shape of the settings file.
type fileSettings struct {
	ExcludedHeadings []string `yaml:"excluded_headings"`
	LinkDepth        *int     `yaml:"link_depth"`
	IncludeInlinks   *bool    `yaml:"include_inlinks"`
	MaxDepth         *int     `yaml:"max_depth"`
	Ignore           []string `yaml:"ignore"`

	Templates struct {
		BeforeContext *string `yaml:"before_context"`
		AfterContext  *string `yaml:"after_context"`
		BeforeItem    *string `yaml:"before_item"`
		AfterItem     *string `yaml:"after_item"`
		BeforeLink    *string `yaml:"before_link"`
		AfterLink     *string `yaml:"after_link"`
	} `yaml:"templates"`
}

// Config bundles the compilation settings with tool-level options that do
// not belong to a context.
type Config struct {
	Settings domain.Settings
	MaxDepth int      // deepest depth offered by depth scans
	Ignore   []string // glob patterns excluded from folder expansion
}

// DefaultConfig returns the configuration used when no settings file
// exists.
func DefaultConfig() Config {
	return Config{
		Settings: domain.Settings{
			LinkDepth:      1,
			IncludeInlinks: false,
			Templates: domain.Templates{
				BeforeContext: "{{FILE_TREE}}",
				BeforeItem:    "-----------------------\n{{ITEM_PATH}}\n-----------------------",
				BeforeLink:    "-----------------------\nLINK ({{LINK_TYPE}}, depth {{LINK_DEPTH}}): {{LINK_PATH}}\n-----------------------",
			},
		},
		MaxDepth: 3,
		Ignore:   []string{"*.excalidraw.md"},
	}
}

// LoadConfig reads the vault's settings file, overlaying it on the
// defaults. A missing file returns the defaults without error.
func LoadConfig(vaultPath string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filepath.Join(vaultPath, SettingsFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read settings: %w", err)
	}

	var fs fileSettings
	if err := yaml.Unmarshal(data, &fs); err != nil {
		return cfg, fmt.Errorf("failed to parse settings: %w", err)
	}

	if fs.ExcludedHeadings != nil {
		cfg.Settings.ExcludedHeadings = fs.ExcludedHeadings
	}
	if fs.LinkDepth != nil {
		cfg.Settings.LinkDepth = *fs.LinkDepth
	}
	if fs.IncludeInlinks != nil {
		cfg.Settings.IncludeInlinks = *fs.IncludeInlinks
	}
	if fs.MaxDepth != nil {
		cfg.MaxDepth = *fs.MaxDepth
	}
	if fs.Ignore != nil {
		cfg.Ignore = fs.Ignore
	}

	overlay(&cfg.Settings.Templates.BeforeContext, fs.Templates.BeforeContext)
	overlay(&cfg.Settings.Templates.AfterContext, fs.Templates.AfterContext)
	overlay(&cfg.Settings.Templates.BeforeItem, fs.Templates.BeforeItem)
	overlay(&cfg.Settings.Templates.AfterItem, fs.Templates.AfterItem)
	overlay(&cfg.Settings.Templates.BeforeLink, fs.Templates.BeforeLink)
	overlay(&cfg.Settings.Templates.AfterLink, fs.Templates.AfterLink)

	return cfg, nil
}

func overlay(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
