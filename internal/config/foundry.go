package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// foundryConfig is the slice of foundry.toml this tool cares about: the
// per-profile broadcast folder override.
type foundryConfig struct {
	Profile map[string]foundryProfile `toml:"profile"`
}

type foundryProfile struct {
	Broadcast string `toml:"broadcast,omitempty"`
	OutPath   string `toml:"out,omitempty"`
	SrcPath   string `toml:"src,omitempty"`
}

// broadcastDirFromFoundry reads the default profile's broadcast folder
// from foundry.toml, checking both the project root and the contracts/
// subdirectory. Returns "" when foundry.toml is absent or silent.
func broadcastDirFromFoundry(projectRoot string) string {
	for _, candidate := range []string{
		filepath.Join(projectRoot, "foundry.toml"),
		filepath.Join(projectRoot, "contracts", "foundry.toml"),
	} {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}

		var cfg foundryConfig
		if _, err := toml.DecodeFile(candidate, &cfg); err != nil {
			// malformed foundry.toml is the deploy tool's problem, not ours
			return ""
		}

		if profile, ok := cfg.Profile["default"]; ok && profile.Broadcast != "" {
			return profile.Broadcast
		}
		return ""
	}
	return ""
}
