package usecase

import (
	"context"
	"fmt"

	"github.com/colemanwhaylon/nexus-protocol/internal/domain/models"
)

// ListNetworksParams contains parameters for listing networks
type ListNetworksParams struct {
	// Currently no parameters, but we keep the struct for future extensibility
}

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []*models.NetworkConfig
}

// ListNetworks is a use case for listing the backend's active networks
type ListNetworks struct {
	lister NetworkLister
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(lister NetworkLister) *ListNetworks {
	return &ListNetworks{
		lister: lister,
	}
}

// Run executes the use case
func (uc *ListNetworks) Run(ctx context.Context, params ListNetworksParams) (*ListNetworksResult, error) {
	networks, err := uc.lister.ListNetworks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list networks: %w", err)
	}

	return &ListNetworksResult{Networks: networks}, nil
}
