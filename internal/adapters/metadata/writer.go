package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/colemanwhaylon/nexus-protocol/internal/domain/models"
)

// Writer persists token metadata documents as pretty-printed JSON files
// named <tokenID>.json, the layout the frontend serves statically.
type Writer struct{}

// NewWriter creates a new metadata file writer
func NewWriter() *Writer {
	return &Writer{}
}

// WriteToken writes one token's metadata document.
func (w *Writer) WriteToken(ctx context.Context, dir string, tokenID int, meta *models.TokenMetadata) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%d.json", tokenID))
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
