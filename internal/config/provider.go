package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/colemanwhaylon/nexus-protocol/internal/domain/config"
)

// Defaults for the local development environment.
const (
	DefaultChainID    = 31337
	DefaultAPIBaseURL = "http://localhost:8080"
	DefaultRPCURL     = "http://localhost:8545"
	DefaultScriptName = "DeployLocal.s.sol"
)

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		projectRoot = FindProjectRoot()
	}
	if !filepath.IsAbs(projectRoot) {
		absPath, err := filepath.Abs(projectRoot)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve project root: %w", err)
		}
		projectRoot = absPath
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        filepath.Join(projectRoot, ".nexus"),
		ChainID:        v.GetInt64("chain_id"),
		APIBaseURL:     strings.TrimRight(v.GetString("api_url"), "/"),
		APIKey:         v.GetString("api_key"),
		RPCURL:         v.GetString("rpc_url"),
		ScriptName:     v.GetString("script"),
		BroadcastDir:   "broadcast",
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		DryRun:         v.GetBool("dry_run"),
		Timeout:        v.GetDuration("timeout"),
	}

	if cfg.ChainID <= 0 {
		return nil, fmt.Errorf("chain id %d: invalid", cfg.ChainID)
	}

	// foundry.toml may relocate the broadcast folder
	if dir := broadcastDirFromFoundry(projectRoot); dir != "" {
		cfg.BroadcastDir = dir
	}

	return cfg, nil
}

// FindProjectRoot walks up from the current directory looking for a
// Foundry project: either foundry.toml at the root or a contracts/
// subdirectory carrying one (the repo layout used by the protocol).
// Falls back to the current directory; the broadcast loader reports
// every path it searched, so a wrong root stays diagnosable.
func FindProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "foundry.toml")); err == nil {
			return dir
		}
		if _, err := os.Stat(filepath.Join(dir, "contracts", "foundry.toml")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			cwd, _ := os.Getwd()
			return cwd
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string) *viper.Viper {
	// .env carries NEXUS_API_KEY in development; missing file is fine
	_ = godotenv.Load(filepath.Join(projectRoot, ".env"))
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, ".nexus"))

	v.SetEnvPrefix("NEXUS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	v.SetDefault("chain_id", DefaultChainID)
	v.SetDefault("api_url", DefaultAPIBaseURL)
	v.SetDefault("rpc_url", DefaultRPCURL)
	v.SetDefault("script", DefaultScriptName)
	// No whole-command deadline by default: governance runs mine blocks
	// for minutes. The backend client applies its own per-request timeout.
	v.SetDefault("timeout", "0")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("dry_run", false)

	// Config file is optional
	_ = v.ReadInConfig()

	return v
}
