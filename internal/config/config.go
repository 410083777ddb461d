package config

import "os"

const DefaultVaultPath = "~/notes"

// VaultPath returns the vault path from SMARTCTX_VAULT env var,
// falling back to DefaultVaultPath.
func VaultPath() string {
	if env := os.Getenv("SMARTCTX_VAULT"); env != "" {
		return env
	}
	return DefaultVaultPath
}
