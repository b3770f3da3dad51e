package app

import (
	"github.com/colemanwhaylon/nexus-protocol/internal/domain/config"
	"github.com/colemanwhaylon/nexus-protocol/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Use cases
	RegisterDeployments *usecase.RegisterDeployments
	ListNetworks        *usecase.ListNetworks
	ListMappings        *usecase.ListMappings
	RunGovernance       *usecase.RunGovernance
	GenerateMetadata    *usecase.GenerateMetadata
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	registerDeployments *usecase.RegisterDeployments,
	listNetworks *usecase.ListNetworks,
	listMappings *usecase.ListMappings,
	runGovernance *usecase.RunGovernance,
	generateMetadata *usecase.GenerateMetadata,
) (*App, error) {
	return &App{
		Config:              cfg,
		RegisterDeployments: registerDeployments,
		ListNetworks:        listNetworks,
		ListMappings:        listMappings,
		RunGovernance:       runGovernance,
		GenerateMetadata:    generateMetadata,
	}, nil
}
