//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"

	"github.com/colemanwhaylon/nexus-protocol/internal/adapters"
	"github.com/colemanwhaylon/nexus-protocol/internal/config"
	"github.com/colemanwhaylon/nexus-protocol/internal/logging"
	"github.com/colemanwhaylon/nexus-protocol/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		// Runtime configuration
		config.Provider,

		// Logging
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewRegisterDeployments,
		usecase.NewListNetworks,
		usecase.NewListMappings,
		usecase.NewRunGovernance,
		usecase.NewGenerateMetadata,

		// App
		NewApp,
	)
	return nil, nil
}
