package usecase

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/colemanwhaylon/nexus-protocol/internal/domain"
	"github.com/colemanwhaylon/nexus-protocol/internal/domain/models"
)

// ConfigFetcher fetches chain-specific deployment configuration from the
// backend.
type ConfigFetcher interface {
	FetchDeploymentConfig(ctx context.Context, chainID int64) (*models.DeploymentConfig, error)
}

// RegistrationSubmitter submits a single deployment registration to the
// backend.
type RegistrationSubmitter interface {
	SubmitRegistration(ctx context.Context, reg *models.ContractRegistration) error
}

// NetworkLister lists the active networks the backend knows about.
type NetworkLister interface {
	ListNetworks(ctx context.Context) ([]*models.NetworkConfig, error)
}

// MappingLister lists all contract name mappings.
type MappingLister interface {
	ListMappings(ctx context.Context) ([]*models.ContractMapping, error)
}

// ContractDirectory returns the registered contract addresses for a chain.
type ContractDirectory interface {
	ListContracts(ctx context.Context, chainID int64) ([]*models.ContractAddress, error)
}

// BroadcastLoader loads the structured deployment record produced by the
// deploy tool. CandidatePaths exposes the ordered search locations so
// callers can log them rather than rely on hidden filesystem probing.
type BroadcastLoader interface {
	LoadLatest(ctx context.Context, scriptName string, chainID int64) (*domain.BroadcastFile, string, error)
	CandidatePaths(scriptName string, chainID int64) []string
}

// Prompter asks the operator for confirmation before live writes.
type Prompter interface {
	Confirm(ctx context.Context, label string) (bool, error)
}

// ChainController drives the local test chain: block production and time
// manipulation.
type ChainController interface {
	Connect(ctx context.Context, rpcURL string) error
	BlockNumber(ctx context.Context) (uint64, error)
	ChainTimestamp(ctx context.Context) (uint64, error)
	MineBlocks(ctx context.Context, count uint64) error
	IncreaseTime(ctx context.Context, seconds uint64) error
}

// GovernorGateway executes governance calls against the deployed
// token/governor contracts. The governor state machine itself is
// on-chain; this gateway only signs, sends, and reads.
type GovernorGateway interface {
	GetVotes(ctx context.Context, token, account common.Address) (*big.Int, error)
	VotingDelay(ctx context.Context, governor common.Address) (uint64, error)
	VotingPeriod(ctx context.Context, governor common.Address) (uint64, error)
	Transfer(ctx context.Context, token common.Address, senderKey string, to common.Address, amount *big.Int) error
	Delegate(ctx context.Context, token common.Address, senderKey string, delegatee common.Address) error
	Propose(ctx context.Context, governor common.Address, senderKey string, p models.Proposal) (*big.Int, error)
	CastVote(ctx context.Context, governor common.Address, senderKey string, proposalID *big.Int, support uint8) error
	Queue(ctx context.Context, governor common.Address, senderKey string, p models.Proposal) error
	Execute(ctx context.Context, governor common.Address, senderKey string, p models.Proposal) error
	ProposalState(ctx context.Context, governor common.Address, proposalID *big.Int) (models.ProposalState, error)
	ProposalSnapshot(ctx context.Context, governor common.Address, proposalID *big.Int) (uint64, error)
	ProposalDeadline(ctx context.Context, governor common.Address, proposalID *big.Int) (uint64, error)
	ProposalEta(ctx context.Context, governor common.Address, proposalID *big.Int) (uint64, error)
	EncodeCall(signature string, args ...any) ([]byte, error)
}

// MetadataWriter persists generated token metadata documents.
type MetadataWriter interface {
	WriteToken(ctx context.Context, dir string, tokenID int, meta *models.TokenMetadata) error
}

// CollectionLoader loads the collection trait configuration.
type CollectionLoader interface {
	Load(ctx context.Context, path string) (*models.CollectionConfig, error)
}

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Current int
	Total   int
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
