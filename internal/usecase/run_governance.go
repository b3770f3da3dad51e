package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/colemanwhaylon/nexus-protocol/internal/domain"
	"github.com/colemanwhaylon/nexus-protocol/internal/domain/config"
	"github.com/colemanwhaylon/nexus-protocol/internal/domain/models"
)

// Anvil's first two well-known developer accounts. Only ever used
// against the local test chain.
const (
	AnvilAccount0    = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	AnvilAccount0Key = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	AnvilAccount1    = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
	AnvilAccount1Key = "0x59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"
)

// RunGovernanceParams contains parameters for the governance lifecycle
// driver.
type RunGovernanceParams struct {
	ChainID        int64
	WithDelegation bool
	ProposerKey    string // defaults to anvil account 0
	VoterKey       string // defaults to anvil account 1 (delegation cycle)
}

// CycleResult is the outcome of one full proposal lifecycle.
type CycleResult struct {
	Name       string
	ProposalID *big.Int
	FinalState models.ProposalState
	Passed     bool
}

// RunGovernanceResult aggregates the executed cycles.
type RunGovernanceResult struct {
	Contracts models.GovernanceContracts
	Cycles    []CycleResult
}

// RunGovernance drives a complete governance lifecycle against the local
// chain: propose, advance to the voting window, vote, advance past the
// deadline, queue, warp past the timelock delay, execute. The proposal
// state machine lives in the governor contract; this use case only sends
// transactions, polls state, and produces blocks.
type RunGovernance struct {
	config    *config.RuntimeConfig
	directory ContractDirectory
	chain     ChainController
	governor  GovernorGateway
	sink      ProgressSink
	log       *slog.Logger
}

// NewRunGovernance creates a new RunGovernance use case
func NewRunGovernance(
	cfg *config.RuntimeConfig,
	directory ContractDirectory,
	chain ChainController,
	governor GovernorGateway,
	sink ProgressSink,
	log *slog.Logger,
) *RunGovernance {
	return &RunGovernance{
		config:    cfg,
		directory: directory,
		chain:     chain,
		governor:  governor,
		sink:      sink,
		log:       log,
	}
}

// Run executes the direct-voting cycle and, when requested, the
// delegated-voting cycle.
func (uc *RunGovernance) Run(ctx context.Context, params RunGovernanceParams) (*RunGovernanceResult, error) {
	chainID := params.ChainID
	if chainID == 0 {
		chainID = uc.config.ChainID
	}
	proposerKey := params.ProposerKey
	if proposerKey == "" {
		proposerKey = AnvilAccount0Key
	}
	voterKey := params.VoterKey
	if voterKey == "" {
		voterKey = AnvilAccount1Key
	}

	contracts, err := uc.resolveContracts(ctx, chainID)
	if err != nil {
		return nil, err
	}

	if err := uc.chain.Connect(ctx, uc.config.RPCURL); err != nil {
		return nil, fmt.Errorf("failed to connect to chain: %w", err)
	}

	result := &RunGovernanceResult{Contracts: contracts}

	direct, err := uc.runCycle(ctx, "direct voting", contracts, proposerKey, proposerKey)
	if err != nil {
		return result, err
	}
	result.Cycles = append(result.Cycles, *direct)

	if !params.WithDelegation {
		return result, nil
	}

	if err := uc.setupDelegation(ctx, contracts, proposerKey, voterKey); err != nil {
		return result, err
	}

	delegated, err := uc.runCycle(ctx, "delegated voting", contracts, voterKey, voterKey)
	if delegated != nil {
		result.Cycles = append(result.Cycles, *delegated)
	}

	// Restore self-delegation even when the cycle failed, so repeated
	// runs start from the same voting-power distribution.
	if restoreErr := uc.restoreDelegation(ctx, contracts, proposerKey, voterKey); restoreErr != nil {
		uc.log.Warn("failed to restore delegation", "error", restoreErr)
	}

	return result, err
}

func (uc *RunGovernance) resolveContracts(ctx context.Context, chainID int64) (models.GovernanceContracts, error) {
	var contracts models.GovernanceContracts

	addrs, err := uc.directory.ListContracts(ctx, chainID)
	if err != nil {
		return contracts, fmt.Errorf("failed to fetch contract addresses: %w", err)
	}

	byDBName := make(map[string]string, len(addrs))
	for _, c := range addrs {
		byDBName[c.DBName] = c.Address
	}

	for _, want := range []struct {
		name string
		dst  *common.Address
	}{
		{models.DBNameToken, &contracts.Token},
		{models.DBNameGovernor, &contracts.Governor},
		{models.DBNameTimelock, &contracts.Timelock},
	} {
		addr, ok := byDBName[want.name]
		if !ok {
			return contracts, fmt.Errorf("%s on chain %d: %w", want.name, chainID, domain.ErrContractNotFound)
		}
		*want.dst = common.HexToAddress(addr)
	}

	return contracts, nil
}

// runCycle drives one proposal from creation through execution.
func (uc *RunGovernance) runCycle(ctx context.Context, name string, contracts models.GovernanceContracts, proposerKey, voterKey string) (*CycleResult, error) {
	cycle := &CycleResult{Name: name}

	delay, err := uc.governor.VotingDelay(ctx, contracts.Governor)
	if err != nil {
		return cycle, fmt.Errorf("failed to read voting delay: %w", err)
	}
	period, err := uc.governor.VotingPeriod(ctx, contracts.Governor)
	if err != nil {
		return cycle, fmt.Errorf("failed to read voting period: %w", err)
	}
	uc.log.Debug("governor parameters", "votingDelay", delay, "votingPeriod", period)

	// A fresh description per run keeps the proposal id unique; the
	// governor rejects duplicate (targets, values, calldatas, hash)
	// tuples.
	calldata, err := uc.governor.EncodeCall("updateQuorumNumerator", big.NewInt(4))
	if err != nil {
		return cycle, fmt.Errorf("failed to encode proposal calldata: %w", err)
	}
	proposal := models.Proposal{
		Targets:     []common.Address{contracts.Governor},
		Values:      []*big.Int{big.NewInt(0)},
		Calldatas:   [][]byte{calldata},
		Description: fmt.Sprintf("Update quorum (%s) - %d", name, time.Now().Unix()),
	}

	uc.sink.OnProgress(ctx, ProgressEvent{Stage: "propose", Message: "Creating proposal", Spinner: true})
	proposalID, err := uc.governor.Propose(ctx, contracts.Governor, proposerKey, proposal)
	if err != nil {
		return cycle, fmt.Errorf("failed to create proposal: %w", err)
	}
	cycle.ProposalID = proposalID
	uc.sink.Info(fmt.Sprintf("Proposal %s created", proposalID))

	// Advance to the voting window
	uc.sink.OnProgress(ctx, ProgressEvent{Stage: "advance", Message: "Mining to snapshot block"})
	snapshot, err := uc.governor.ProposalSnapshot(ctx, contracts.Governor, proposalID)
	if err != nil {
		return cycle, fmt.Errorf("failed to read proposal snapshot: %w", err)
	}
	if err := uc.mineTo(ctx, snapshot+1); err != nil {
		return cycle, err
	}

	uc.sink.OnProgress(ctx, ProgressEvent{Stage: "vote", Message: "Casting vote"})
	if err := uc.governor.CastVote(ctx, contracts.Governor, voterKey, proposalID, models.VoteFor); err != nil {
		return cycle, fmt.Errorf("failed to cast vote: %w", err)
	}

	// Advance past the deadline
	uc.sink.OnProgress(ctx, ProgressEvent{Stage: "advance", Message: "Mining past voting deadline"})
	deadline, err := uc.governor.ProposalDeadline(ctx, contracts.Governor, proposalID)
	if err != nil {
		return cycle, fmt.Errorf("failed to read proposal deadline: %w", err)
	}
	if err := uc.mineTo(ctx, deadline+1); err != nil {
		return cycle, err
	}

	if err := uc.expectState(ctx, contracts.Governor, proposalID, models.ProposalSucceeded); err != nil {
		cycle.FinalState, _ = uc.governor.ProposalState(ctx, contracts.Governor, proposalID)
		return cycle, err
	}

	// Queue in the timelock, warp past the delay, execute
	uc.sink.OnProgress(ctx, ProgressEvent{Stage: "queue", Message: "Queueing in timelock"})
	if err := uc.governor.Queue(ctx, contracts.Governor, proposerKey, proposal); err != nil {
		return cycle, fmt.Errorf("failed to queue proposal: %w", err)
	}

	eta, err := uc.governor.ProposalEta(ctx, contracts.Governor, proposalID)
	if err != nil {
		return cycle, fmt.Errorf("failed to read proposal eta: %w", err)
	}
	now, err := uc.chain.ChainTimestamp(ctx)
	if err != nil {
		return cycle, fmt.Errorf("failed to read chain timestamp: %w", err)
	}
	if eta > now {
		uc.sink.OnProgress(ctx, ProgressEvent{Stage: "advance", Message: fmt.Sprintf("Warping %ds past timelock delay", eta-now+1)})
		if err := uc.chain.IncreaseTime(ctx, eta-now+1); err != nil {
			return cycle, fmt.Errorf("failed to advance chain time: %w", err)
		}
	}

	uc.sink.OnProgress(ctx, ProgressEvent{Stage: "execute", Message: "Executing proposal"})
	if err := uc.governor.Execute(ctx, contracts.Governor, proposerKey, proposal); err != nil {
		return cycle, fmt.Errorf("failed to execute proposal: %w", err)
	}

	state, err := uc.governor.ProposalState(ctx, contracts.Governor, proposalID)
	if err != nil {
		return cycle, fmt.Errorf("failed to read final state: %w", err)
	}
	cycle.FinalState = state
	cycle.Passed = state == models.ProposalExecuted
	if !cycle.Passed {
		return cycle, &domain.UnexpectedStateError{
			Want: models.ProposalExecuted.String(),
			Got:  state.String(),
		}
	}

	return cycle, nil
}

// mineTo produces blocks until the chain head reaches target.
func (uc *RunGovernance) mineTo(ctx context.Context, target uint64) error {
	current, err := uc.chain.BlockNumber(ctx)
	if err != nil {
		return fmt.Errorf("failed to read block number: %w", err)
	}
	if current >= target {
		return nil
	}
	uc.log.Debug("mining blocks", "current", current, "target", target)
	if err := uc.chain.MineBlocks(ctx, target-current); err != nil {
		return fmt.Errorf("failed to mine blocks: %w", err)
	}
	return nil
}

func (uc *RunGovernance) expectState(ctx context.Context, governor common.Address, proposalID *big.Int, want models.ProposalState) error {
	state, err := uc.governor.ProposalState(ctx, governor, proposalID)
	if err != nil {
		return fmt.Errorf("failed to read proposal state: %w", err)
	}
	if state != want {
		return &domain.UnexpectedStateError{Want: want.String(), Got: state.String()}
	}
	return nil
}

// setupDelegation moves tokens to the voter and delegates both accounts'
// voting power to it.
func (uc *RunGovernance) setupDelegation(ctx context.Context, contracts models.GovernanceContracts, proposerKey, voterKey string) error {
	uc.sink.OnProgress(ctx, ProgressEvent{Stage: "delegate", Message: "Setting up delegation"})

	voter := common.HexToAddress(AnvilAccount1)
	amount := new(big.Int).Mul(big.NewInt(100_000), big.NewInt(1e18))

	if err := uc.governor.Transfer(ctx, contracts.Token, proposerKey, voter, amount); err != nil {
		return fmt.Errorf("failed to transfer tokens: %w", err)
	}
	if err := uc.governor.Delegate(ctx, contracts.Token, proposerKey, voter); err != nil {
		return fmt.Errorf("failed to delegate from proposer: %w", err)
	}
	if err := uc.governor.Delegate(ctx, contracts.Token, voterKey, voter); err != nil {
		return fmt.Errorf("failed to self-delegate voter: %w", err)
	}

	votes, err := uc.governor.GetVotes(ctx, contracts.Token, voter)
	if err != nil {
		return fmt.Errorf("failed to read voting power: %w", err)
	}
	uc.log.Debug("delegation in place", "voter", voter, "votes", votes)
	return nil
}

func (uc *RunGovernance) restoreDelegation(ctx context.Context, contracts models.GovernanceContracts, proposerKey, voterKey string) error {
	if err := uc.governor.Delegate(ctx, contracts.Token, proposerKey, common.HexToAddress(AnvilAccount0)); err != nil {
		return err
	}
	return uc.governor.Delegate(ctx, contracts.Token, voterKey, common.HexToAddress(AnvilAccount1))
}
