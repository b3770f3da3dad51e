package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/colemanwhaylon/nexus-protocol/internal/domain/models"
)

// Anvil tolerates mining a few hundred blocks per request; larger jumps
// in one call are where the timeouts come from.
const (
	mineBatchSize  = 100
	mineBatchDelay = 100 * time.Millisecond
	mineRetries    = 3
)

// governorABI covers the OZ Governor surface the lifecycle driver
// touches, plus the protocol's quorum setter used as the proposal
// payload.
const governorABIJSON = `[
	{"type":"function","name":"votingDelay","stateMutability":"view","inputs":[],"outputs":[{"type":"uint256"}]},
	{"type":"function","name":"votingPeriod","stateMutability":"view","inputs":[],"outputs":[{"type":"uint256"}]},
	{"type":"function","name":"propose","stateMutability":"nonpayable","inputs":[{"type":"address[]"},{"type":"uint256[]"},{"type":"bytes[]"},{"type":"string"}],"outputs":[{"type":"uint256"}]},
	{"type":"function","name":"castVote","stateMutability":"nonpayable","inputs":[{"type":"uint256"},{"type":"uint8"}],"outputs":[{"type":"uint256"}]},
	{"type":"function","name":"queue","stateMutability":"nonpayable","inputs":[{"type":"address[]"},{"type":"uint256[]"},{"type":"bytes[]"},{"type":"bytes32"}],"outputs":[{"type":"uint256"}]},
	{"type":"function","name":"execute","stateMutability":"payable","inputs":[{"type":"address[]"},{"type":"uint256[]"},{"type":"bytes[]"},{"type":"bytes32"}],"outputs":[{"type":"uint256"}]},
	{"type":"function","name":"state","stateMutability":"view","inputs":[{"type":"uint256"}],"outputs":[{"type":"uint8"}]},
	{"type":"function","name":"proposalSnapshot","stateMutability":"view","inputs":[{"type":"uint256"}],"outputs":[{"type":"uint256"}]},
	{"type":"function","name":"proposalDeadline","stateMutability":"view","inputs":[{"type":"uint256"}],"outputs":[{"type":"uint256"}]},
	{"type":"function","name":"proposalEta","stateMutability":"view","inputs":[{"type":"uint256"}],"outputs":[{"type":"uint256"}]},
	{"type":"function","name":"hashProposal","stateMutability":"pure","inputs":[{"type":"address[]"},{"type":"uint256[]"},{"type":"bytes[]"},{"type":"bytes32"}],"outputs":[{"type":"uint256"}]},
	{"type":"function","name":"updateQuorumNumerator","stateMutability":"nonpayable","inputs":[{"type":"uint256"}],"outputs":[]}
]`

const tokenABIJSON = `[
	{"type":"function","name":"transfer","stateMutability":"nonpayable","inputs":[{"type":"address"},{"type":"uint256"}],"outputs":[{"type":"bool"}]},
	{"type":"function","name":"delegate","stateMutability":"nonpayable","inputs":[{"type":"address"}],"outputs":[]},
	{"type":"function","name":"getVotes","stateMutability":"view","inputs":[{"type":"address"}],"outputs":[{"type":"uint256"}]}
]`

// Gateway drives the local chain over JSON-RPC. It implements both the
// ChainController and GovernorGateway ports; one connection serves both.
type Gateway struct {
	eth      *ethclient.Client
	rpc      *rpc.Client
	chainID  *big.Int
	governor abi.ABI
	token    abi.ABI
	log      *slog.Logger
}

// NewGateway creates a disconnected gateway; Connect must be called
// before any other method.
func NewGateway(log *slog.Logger) (*Gateway, error) {
	governorABI, err := abi.JSON(strings.NewReader(governorABIJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to parse governor ABI: %w", err)
	}
	tokenABI, err := abi.JSON(strings.NewReader(tokenABIJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token ABI: %w", err)
	}

	return &Gateway{
		governor: governorABI,
		token:    tokenABI,
		log:      log,
	}, nil
}

// Connect establishes the RPC connection and records the chain id for
// transaction signing.
func (g *Gateway) Connect(ctx context.Context, rpcURL string) error {
	client, err := rpc.DialContext(ctx, rpcURL)
	if err != nil {
		return fmt.Errorf("failed to connect to RPC at %s: %w", rpcURL, err)
	}
	g.rpc = client
	g.eth = ethclient.NewClient(client)

	chainID, err := g.eth.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("failed to get chain ID: %w", err)
	}
	g.chainID = chainID
	g.log.Debug("connected to chain", "rpc", rpcURL, "chainId", chainID)
	return nil
}

// BlockNumber returns the current head block number.
func (g *Gateway) BlockNumber(ctx context.Context) (uint64, error) {
	return g.eth.BlockNumber(ctx)
}

// ChainTimestamp returns the head block's timestamp.
func (g *Gateway) ChainTimestamp(ctx context.Context) (uint64, error) {
	header, err := g.eth.HeaderByNumber(ctx, nil)
	if err != nil {
		return 0, err
	}
	return header.Time, nil
}

// MineBlocks produces count blocks via anvil_mine, in batches so large
// jumps don't trip anvil's request timeout.
func (g *Gateway) MineBlocks(ctx context.Context, count uint64) error {
	for _, batch := range MiningBatches(count, mineBatchSize) {
		var attempt int
		for {
			err := g.rpc.CallContext(ctx, nil, "anvil_mine", hexutil.Uint64(batch))
			if err == nil {
				break
			}
			attempt++
			if attempt >= mineRetries {
				return fmt.Errorf("anvil_mine failed after %d attempts: %w", attempt, err)
			}
			g.log.Warn("anvil_mine failed, retrying", "error", err)
			time.Sleep(time.Second)
		}
		time.Sleep(mineBatchDelay)
	}
	return nil
}

// IncreaseTime advances the EVM clock and mines one block so the new
// timestamp takes effect.
func (g *Gateway) IncreaseTime(ctx context.Context, seconds uint64) error {
	if err := g.rpc.CallContext(ctx, nil, "evm_increaseTime", hexutil.Uint64(seconds)); err != nil {
		return fmt.Errorf("evm_increaseTime failed: %w", err)
	}
	return g.MineBlocks(ctx, 1)
}

// MiningBatches splits a block count into anvil-sized mining requests.
func MiningBatches(count, batchSize uint64) []uint64 {
	if count == 0 || batchSize == 0 {
		return nil
	}
	batches := make([]uint64, 0, count/batchSize+1)
	for count > 0 {
		batch := min(batchSize, count)
		batches = append(batches, batch)
		count -= batch
	}
	return batches
}

// EncodeCall packs a governor function call for use as proposal calldata.
func (g *Gateway) EncodeCall(name string, args ...any) ([]byte, error) {
	return g.governor.Pack(name, args...)
}

// GetVotes returns the current voting power of an account.
func (g *Gateway) GetVotes(ctx context.Context, token, account common.Address) (*big.Int, error) {
	return g.callUint(ctx, g.token, token, "getVotes", account)
}

// VotingDelay returns the governor's voting delay in blocks.
func (g *Gateway) VotingDelay(ctx context.Context, governor common.Address) (uint64, error) {
	v, err := g.callUint(ctx, g.governor, governor, "votingDelay")
	if err != nil {
		return 0, err
	}
	return v.Uint64(), nil
}

// VotingPeriod returns the governor's voting period in blocks.
func (g *Gateway) VotingPeriod(ctx context.Context, governor common.Address) (uint64, error) {
	v, err := g.callUint(ctx, g.governor, governor, "votingPeriod")
	if err != nil {
		return 0, err
	}
	return v.Uint64(), nil
}

// Transfer moves tokens from the sender to another account.
func (g *Gateway) Transfer(ctx context.Context, token common.Address, senderKey string, to common.Address, amount *big.Int) error {
	data, err := g.token.Pack("transfer", to, amount)
	if err != nil {
		return err
	}
	return g.sendTx(ctx, senderKey, token, data)
}

// Delegate delegates the sender's voting power.
func (g *Gateway) Delegate(ctx context.Context, token common.Address, senderKey string, delegatee common.Address) error {
	data, err := g.token.Pack("delegate", delegatee)
	if err != nil {
		return err
	}
	return g.sendTx(ctx, senderKey, token, data)
}

// Propose creates a proposal and returns its id, computed via the
// governor's own hashProposal so no event parsing is needed.
func (g *Gateway) Propose(ctx context.Context, governor common.Address, senderKey string, p models.Proposal) (*big.Int, error) {
	data, err := g.governor.Pack("propose", p.Targets, p.Values, p.Calldatas, p.Description)
	if err != nil {
		return nil, err
	}
	if err := g.sendTx(ctx, senderKey, governor, data); err != nil {
		return nil, err
	}

	hashData, err := g.governor.Pack("hashProposal", p.Targets, p.Values, p.Calldatas, descriptionHash(p.Description))
	if err != nil {
		return nil, err
	}
	out, err := g.eth.CallContract(ctx, ethereum.CallMsg{To: &governor, Data: hashData}, nil)
	if err != nil {
		return nil, fmt.Errorf("hashProposal call failed: %w", err)
	}
	vals, err := g.governor.Unpack("hashProposal", out)
	if err != nil {
		return nil, err
	}
	return vals[0].(*big.Int), nil
}

// CastVote votes on a proposal.
func (g *Gateway) CastVote(ctx context.Context, governor common.Address, senderKey string, proposalID *big.Int, support uint8) error {
	data, err := g.governor.Pack("castVote", proposalID, support)
	if err != nil {
		return err
	}
	return g.sendTx(ctx, senderKey, governor, data)
}

// Queue queues a succeeded proposal in the timelock.
func (g *Gateway) Queue(ctx context.Context, governor common.Address, senderKey string, p models.Proposal) error {
	data, err := g.governor.Pack("queue", p.Targets, p.Values, p.Calldatas, descriptionHash(p.Description))
	if err != nil {
		return err
	}
	return g.sendTx(ctx, senderKey, governor, data)
}

// Execute executes a queued proposal.
func (g *Gateway) Execute(ctx context.Context, governor common.Address, senderKey string, p models.Proposal) error {
	data, err := g.governor.Pack("execute", p.Targets, p.Values, p.Calldatas, descriptionHash(p.Description))
	if err != nil {
		return err
	}
	return g.sendTx(ctx, senderKey, governor, data)
}

// ProposalState returns the proposal's current lifecycle state.
func (g *Gateway) ProposalState(ctx context.Context, governor common.Address, proposalID *big.Int) (models.ProposalState, error) {
	data, err := g.governor.Pack("state", proposalID)
	if err != nil {
		return 0, err
	}
	out, err := g.eth.CallContract(ctx, ethereum.CallMsg{To: &governor, Data: data}, nil)
	if err != nil {
		return 0, fmt.Errorf("state call failed: %w", err)
	}
	vals, err := g.governor.Unpack("state", out)
	if err != nil {
		return 0, err
	}
	return models.ProposalState(vals[0].(uint8)), nil
}

// ProposalSnapshot returns the block at which voting power is snapshot.
func (g *Gateway) ProposalSnapshot(ctx context.Context, governor common.Address, proposalID *big.Int) (uint64, error) {
	v, err := g.callUint(ctx, g.governor, governor, "proposalSnapshot", proposalID)
	if err != nil {
		return 0, err
	}
	return v.Uint64(), nil
}

// ProposalDeadline returns the last voting block.
func (g *Gateway) ProposalDeadline(ctx context.Context, governor common.Address, proposalID *big.Int) (uint64, error) {
	v, err := g.callUint(ctx, g.governor, governor, "proposalDeadline", proposalID)
	if err != nil {
		return 0, err
	}
	return v.Uint64(), nil
}

// ProposalEta returns the timestamp at which a queued proposal becomes
// executable.
func (g *Gateway) ProposalEta(ctx context.Context, governor common.Address, proposalID *big.Int) (uint64, error) {
	v, err := g.callUint(ctx, g.governor, governor, "proposalEta", proposalID)
	if err != nil {
		return 0, err
	}
	return v.Uint64(), nil
}

func (g *Gateway) callUint(ctx context.Context, contractABI abi.ABI, addr common.Address, name string, args ...any) (*big.Int, error) {
	data, err := contractABI.Pack(name, args...)
	if err != nil {
		return nil, err
	}
	out, err := g.eth.CallContract(ctx, ethereum.CallMsg{To: &addr, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("%s call failed: %w", name, err)
	}
	vals, err := contractABI.Unpack(name, out)
	if err != nil {
		return nil, err
	}
	return vals[0].(*big.Int), nil
}

// sendTx signs, sends, and waits for a transaction, failing when the
// receipt reports a revert.
func (g *Gateway) sendTx(ctx context.Context, senderKey string, to common.Address, data []byte) error {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(senderKey, "0x"))
	if err != nil {
		return fmt.Errorf("invalid sender key: %w", err)
	}
	from := crypto.PubkeyToAddress(key.PublicKey)

	nonce, err := g.eth.PendingNonceAt(ctx, from)
	if err != nil {
		return fmt.Errorf("failed to get nonce: %w", err)
	}
	gasPrice, err := g.eth.SuggestGasPrice(ctx)
	if err != nil {
		return fmt.Errorf("failed to get gas price: %w", err)
	}
	gasLimit, err := g.eth.EstimateGas(ctx, ethereum.CallMsg{From: from, To: &to, Data: data})
	if err != nil {
		return fmt.Errorf("failed to estimate gas: %w", err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gasLimit,
		To:       &to,
		Data:     data,
	})
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(g.chainID), key)
	if err != nil {
		return fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := g.eth.SendTransaction(ctx, signed); err != nil {
		return fmt.Errorf("failed to send transaction: %w", err)
	}

	receipt, err := bind.WaitMined(ctx, g.eth, signed)
	if err != nil {
		return fmt.Errorf("failed waiting for transaction %s: %w", signed.Hash(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("transaction %s reverted", signed.Hash())
	}
	return nil
}

func descriptionHash(description string) [32]byte {
	return [32]byte(crypto.Keccak256Hash([]byte(description)))
}
