package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/colemanwhaylon/nexus-protocol/internal/domain"
	cfg "github.com/colemanwhaylon/nexus-protocol/internal/domain/config"
)

// Loader finds and parses Foundry broadcast files. The protocol repo
// keeps the Foundry project under contracts/, but the loader also
// accepts a project rooted directly at ProjectRoot; the first candidate
// that exists wins.
type Loader struct {
	projectRoot  string
	broadcastDir string
}

// NewLoader creates a new broadcast file loader
func NewLoader(rc *cfg.RuntimeConfig) *Loader {
	dir := rc.BroadcastDir
	if dir == "" {
		dir = "broadcast"
	}
	return &Loader{
		projectRoot:  rc.ProjectRoot,
		broadcastDir: dir,
	}
}

// CandidatePaths returns the ordered locations searched for the latest
// broadcast file of a script/chain pair.
func (l *Loader) CandidatePaths(scriptName string, chainID int64) []string {
	tail := filepath.Join(l.broadcastDir, scriptName, fmt.Sprintf("%d", chainID), "run-latest.json")
	return []string{
		filepath.Join(l.projectRoot, "contracts", tail),
		filepath.Join(l.projectRoot, tail),
	}
}

// LoadLatest parses the first existing run-latest.json, returning the
// file and the path it came from. When none exists the error enumerates
// every searched location.
func (l *Loader) LoadLatest(ctx context.Context, scriptName string, chainID int64) (*domain.BroadcastFile, string, error) {
	candidates := l.CandidatePaths(scriptName, chainID)

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read broadcast file %s: %w", path, err)
		}

		var file domain.BroadcastFile
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, "", fmt.Errorf("failed to parse broadcast file %s: %w", path, err)
		}
		return &file, path, nil
	}

	return nil, "", &domain.BroadcastNotFoundError{
		ScriptName: scriptName,
		ChainID:    chainID,
		Searched:   candidates,
	}
}
