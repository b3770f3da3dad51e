package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/colemanwhaylon/nexus-protocol/internal/domain/models"
)

// ListMappingsParams contains parameters for listing contract mappings
type ListMappingsParams struct {
	Category string
}

// ListMappingsResult contains the result of listing contract mappings
type ListMappingsResult struct {
	Mappings []*models.ContractMapping
}

// ListMappings is a use case for listing contract name mappings
type ListMappings struct {
	lister MappingLister
}

// NewListMappings creates a new ListMappings use case
func NewListMappings(lister MappingLister) *ListMappings {
	return &ListMappings{
		lister: lister,
	}
}

// Run executes the use case
func (uc *ListMappings) Run(ctx context.Context, params ListMappingsParams) (*ListMappingsResult, error) {
	mappings, err := uc.lister.ListMappings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list mappings: %w", err)
	}

	if params.Category != "" {
		filtered := mappings[:0]
		for _, m := range mappings {
			if m.Category == params.Category {
				filtered = append(filtered, m)
			}
		}
		mappings = filtered
	}

	// Backend sort order first, then name, for stable output
	sort.SliceStable(mappings, func(i, j int) bool {
		if mappings[i].SortOrder != mappings[j].SortOrder {
			return mappings[i].SortOrder < mappings[j].SortOrder
		}
		return mappings[i].SolidityName < mappings[j].SolidityName
	})

	return &ListMappingsResult{Mappings: mappings}, nil
}
