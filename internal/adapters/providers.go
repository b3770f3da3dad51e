package adapters

import (
	"github.com/google/wire"

	"github.com/colemanwhaylon/nexus-protocol/internal/adapters/api"
	"github.com/colemanwhaylon/nexus-protocol/internal/adapters/blockchain"
	"github.com/colemanwhaylon/nexus-protocol/internal/adapters/broadcast"
	"github.com/colemanwhaylon/nexus-protocol/internal/adapters/interactive"
	"github.com/colemanwhaylon/nexus-protocol/internal/adapters/metadata"
	"github.com/colemanwhaylon/nexus-protocol/internal/usecase"
)

// APISet provides the backend HTTP client behind every port it serves
var APISet = wire.NewSet(
	api.NewClient,
	wire.Bind(new(usecase.ConfigFetcher), new(*api.Client)),
	wire.Bind(new(usecase.RegistrationSubmitter), new(*api.Client)),
	wire.Bind(new(usecase.NetworkLister), new(*api.Client)),
	wire.Bind(new(usecase.MappingLister), new(*api.Client)),
	wire.Bind(new(usecase.ContractDirectory), new(*api.Client)),
)

// BroadcastSet provides the Foundry broadcast loader
var BroadcastSet = wire.NewSet(
	broadcast.NewLoader,
	wire.Bind(new(usecase.BroadcastLoader), new(*broadcast.Loader)),
)

// BlockchainSet provides the chain gateway; one connection serves both
// ports
var BlockchainSet = wire.NewSet(
	blockchain.NewGateway,
	wire.Bind(new(usecase.ChainController), new(*blockchain.Gateway)),
	wire.Bind(new(usecase.GovernorGateway), new(*blockchain.Gateway)),
)

// InteractiveSet provides terminal prompting
var InteractiveSet = wire.NewSet(
	interactive.NewPrompter,
	wire.Bind(new(usecase.Prompter), new(*interactive.Prompter)),
)

// MetadataSet provides collection config loading and metadata writing
var MetadataSet = wire.NewSet(
	metadata.NewCollectionLoader,
	wire.Bind(new(usecase.CollectionLoader), new(*metadata.CollectionLoader)),

	metadata.NewWriter,
	wire.Bind(new(usecase.MetadataWriter), new(*metadata.Writer)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	APISet,
	BroadcastSet,
	BlockchainSet,
	InteractiveSet,
	MetadataSet,
)
