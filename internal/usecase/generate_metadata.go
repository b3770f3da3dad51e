package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/colemanwhaylon/nexus-protocol/internal/domain/config"
	"github.com/colemanwhaylon/nexus-protocol/internal/domain/models"
)

// GenerateMetadataParams contains parameters for metadata generation.
type GenerateMetadataParams struct {
	OutputDir  string
	ConfigPath string // optional collection YAML; defaults apply when empty
	FirstToken int
	LastToken  int
}

// GenerateMetadataResult summarizes a generation run.
type GenerateMetadataResult struct {
	Collection *models.CollectionConfig
	Written    []GeneratedToken
}

// GeneratedToken pairs a token id with the rarity and symbol it drew.
type GeneratedToken struct {
	TokenID int
	Rarity  string
	Symbol  string
}

// GenerateMetadata produces ERC-721 metadata documents for the
// collection. Traits are a pure function of the token id, so regenerating
// the collection always yields identical documents. Image rendering is
// out of scope; documents only reference image URLs.
type GenerateMetadata struct {
	config     *config.RuntimeConfig
	collection CollectionLoader
	writer     MetadataWriter
	log        *slog.Logger
}

// NewGenerateMetadata creates a new GenerateMetadata use case
func NewGenerateMetadata(
	cfg *config.RuntimeConfig,
	collection CollectionLoader,
	writer MetadataWriter,
	log *slog.Logger,
) *GenerateMetadata {
	return &GenerateMetadata{
		config:     cfg,
		collection: collection,
		writer:     writer,
		log:        log,
	}
}

// Run generates metadata for tokens [FirstToken, LastToken].
func (uc *GenerateMetadata) Run(ctx context.Context, params GenerateMetadataParams) (*GenerateMetadataResult, error) {
	if params.FirstToken < 1 || params.LastToken < params.FirstToken {
		return nil, fmt.Errorf("invalid token range %d..%d", params.FirstToken, params.LastToken)
	}

	collection, err := uc.collection.Load(ctx, params.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load collection config: %w", err)
	}

	result := &GenerateMetadataResult{Collection: collection}

	for tokenID := params.FirstToken; tokenID <= params.LastToken; tokenID++ {
		meta := BuildTokenMetadata(collection, tokenID)
		if err := uc.writer.WriteToken(ctx, params.OutputDir, tokenID, meta); err != nil {
			return result, fmt.Errorf("failed to write token %d: %w", tokenID, err)
		}
		result.Written = append(result.Written, GeneratedToken{
			TokenID: tokenID,
			Rarity:  attributeValue(meta, "Rarity"),
			Symbol:  attributeValue(meta, "Symbol"),
		})
		uc.log.Debug("generated token metadata", "tokenId", tokenID)
	}

	return result, nil
}

// BuildTokenMetadata derives the metadata document for one token.
// Deterministic: the token id seeds every random draw, and the symbol is
// picked by modulo so each symbol appears in a fixed rotation.
func BuildTokenMetadata(c *models.CollectionConfig, tokenID int) *models.TokenMetadata {
	rng := rand.New(rand.NewSource(int64(tokenID)))

	background := c.Backgrounds[rng.Intn(len(c.Backgrounds))]
	symbol := c.Symbols[tokenID%len(c.Symbols)]
	accent := c.Accents[rng.Intn(len(c.Accents))]
	rarity := drawRarity(rng, c.Rarities)

	return &models.TokenMetadata{
		Name:        fmt.Sprintf("%s #%d", c.Name, tokenID),
		Description: fmt.Sprintf("%s #%d - %s", c.Name, tokenID, c.Description),
		Image:       fmt.Sprintf("%s/metadata/images/%d.svg", c.BaseURL, tokenID),
		ExternalURL: fmt.Sprintf("%s/%d", c.ExternalURL, tokenID),
		Attributes: []models.Attribute{
			{TraitType: "Background", Value: background},
			{TraitType: "Symbol", Value: symbol},
			{TraitType: "Accent", Value: accent},
			{TraitType: "Rarity", Value: rarity},
			{TraitType: "Generation", Value: c.Generation},
			{DisplayType: "number", TraitType: "Edition", Value: tokenID},
		},
	}
}

// drawRarity performs a weighted pick over the rarity tiers.
func drawRarity(rng *rand.Rand, tiers []models.RarityTier) string {
	total := 0
	for _, tier := range tiers {
		total += tier.Weight
	}
	if total <= 0 {
		return ""
	}

	roll := rng.Intn(total)
	for _, tier := range tiers {
		if roll < tier.Weight {
			return tier.Name
		}
		roll -= tier.Weight
	}
	return tiers[len(tiers)-1].Name
}

func attributeValue(meta *models.TokenMetadata, traitType string) string {
	for _, attr := range meta.Attributes {
		if attr.TraitType == traitType {
			if s, ok := attr.Value.(string); ok {
				return s
			}
		}
	}
	return ""
}
