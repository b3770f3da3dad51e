package metadata

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/colemanwhaylon/nexus-protocol/internal/domain/models"
)

// CollectionLoader reads the collection trait configuration from YAML,
// falling back to the built-in Genesis collection when no path is given.
type CollectionLoader struct{}

// NewCollectionLoader creates a new collection config loader
func NewCollectionLoader() *CollectionLoader {
	return &CollectionLoader{}
}

// DefaultCollection is the Genesis collection the protocol shipped with.
func DefaultCollection() *models.CollectionConfig {
	return &models.CollectionConfig{
		Name:        "Nexus Genesis",
		Description: "A unique digital collectible from the Nexus Protocol Genesis Collection. Holders receive 10% staking boost, 1.5x governance voting power, and exclusive access to protocol features.",
		BaseURL:     "http://localhost:3000",
		ExternalURL: "https://nexusprotocol.io/nft",
		Generation:  "Genesis",
		Backgrounds: []string{"Charcoal", "Slate", "Obsidian", "Graphite"},
		Symbols:     []string{"Hexagon", "Diamond", "Star", "Classic N"},
		Accents:     []string{"Sunrise Orange", "Ember", "Tangerine", "Flame"},
		Rarities: []models.RarityTier{
			{Name: "Common", Weight: 50},
			{Name: "Uncommon", Weight: 30},
			{Name: "Rare", Weight: 15},
			{Name: "Epic", Weight: 4},
			{Name: "Legendary", Weight: 1},
		},
	}
}

// Load reads a collection config, overlaying the defaults so a partial
// YAML file only overrides what it names.
func (l *CollectionLoader) Load(ctx context.Context, path string) (*models.CollectionConfig, error) {
	collection := DefaultCollection()
	if path == "" {
		return collection, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read collection config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, collection); err != nil {
		return nil, fmt.Errorf("failed to parse collection config %s: %w", path, err)
	}

	if len(collection.Symbols) == 0 || len(collection.Backgrounds) == 0 ||
		len(collection.Accents) == 0 || len(collection.Rarities) == 0 {
		return nil, fmt.Errorf("collection config %s: trait tables must not be empty", path)
	}
	return collection, nil
}
