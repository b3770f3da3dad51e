package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider(t *testing.T) {
	t.Run("defaults target the local stack", func(t *testing.T) {
		root := t.TempDir()
		v := SetupViper(root)
		v.Set("project_root", root)

		cfg, err := Provider(v)

		require.NoError(t, err)
		assert.Equal(t, root, cfg.ProjectRoot)
		assert.Equal(t, filepath.Join(root, ".nexus"), cfg.DataDir)
		assert.Equal(t, int64(DefaultChainID), cfg.ChainID)
		assert.Equal(t, DefaultAPIBaseURL, cfg.APIBaseURL)
		assert.Equal(t, DefaultRPCURL, cfg.RPCURL)
		assert.Equal(t, DefaultScriptName, cfg.ScriptName)
		assert.Equal(t, "broadcast", cfg.BroadcastDir)
		assert.False(t, cfg.Debug)
		assert.False(t, cfg.NonInteractive)
	})

	t.Run("overrides win over defaults", func(t *testing.T) {
		root := t.TempDir()
		v := SetupViper(root)
		v.Set("project_root", root)
		v.Set("chain_id", 11155111)
		v.Set("api_url", "https://api.example.com/")
		v.Set("api_key", "secret")

		cfg, err := Provider(v)

		require.NoError(t, err)
		assert.Equal(t, int64(11155111), cfg.ChainID)
		// Trailing slash is normalized away
		assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
		assert.Equal(t, "secret", cfg.APIKey)
	})

	t.Run("invalid chain id is rejected", func(t *testing.T) {
		root := t.TempDir()
		v := SetupViper(root)
		v.Set("project_root", root)
		v.Set("chain_id", -1)

		_, err := Provider(v)
		assert.Error(t, err)
	})

	t.Run("foundry.toml relocates the broadcast dir", func(t *testing.T) {
		root := t.TempDir()
		contracts := filepath.Join(root, "contracts")
		require.NoError(t, os.MkdirAll(contracts, 0o755))
		require.NoError(t, os.WriteFile(
			filepath.Join(contracts, "foundry.toml"),
			[]byte("[profile.default]\nsrc = \"src\"\nbroadcast = \"deploy-records\"\n"),
			0o644))

		v := SetupViper(root)
		v.Set("project_root", root)

		cfg, err := Provider(v)

		require.NoError(t, err)
		assert.Equal(t, "deploy-records", cfg.BroadcastDir)
	})
}

func TestBroadcastDirFromFoundry(t *testing.T) {
	t.Run("absent file means no override", func(t *testing.T) {
		assert.Equal(t, "", broadcastDirFromFoundry(t.TempDir()))
	})

	t.Run("silent profile means no override", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(
			filepath.Join(root, "foundry.toml"),
			[]byte("[profile.default]\nsrc = \"src\"\n"),
			0o644))
		assert.Equal(t, "", broadcastDirFromFoundry(root))
	})

	t.Run("malformed file means no override", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(
			filepath.Join(root, "foundry.toml"),
			[]byte("profile = [broken"),
			0o644))
		assert.Equal(t, "", broadcastDirFromFoundry(root))
	})
}
