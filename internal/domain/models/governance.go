package models

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ProposalState mirrors the OpenZeppelin Governor state enum.
type ProposalState uint8

const (
	ProposalPending ProposalState = iota
	ProposalActive
	ProposalCanceled
	ProposalDefeated
	ProposalSucceeded
	ProposalQueued
	ProposalExpired
	ProposalExecuted
)

func (s ProposalState) String() string {
	switch s {
	case ProposalPending:
		return "Pending"
	case ProposalActive:
		return "Active"
	case ProposalCanceled:
		return "Canceled"
	case ProposalDefeated:
		return "Defeated"
	case ProposalSucceeded:
		return "Succeeded"
	case ProposalQueued:
		return "Queued"
	case ProposalExpired:
		return "Expired"
	case ProposalExecuted:
		return "Executed"
	default:
		return "Unknown"
	}
}

// Vote support values for castVote.
const (
	VoteAgainst uint8 = 0
	VoteFor     uint8 = 1
	VoteAbstain uint8 = 2
)

// Proposal is the (targets, values, calldatas, description) tuple a
// Governor proposal is addressed by.
type Proposal struct {
	Targets     []common.Address
	Values      []*big.Int
	Calldatas   [][]byte
	Description string
}

// GovernanceContracts holds the protocol addresses the lifecycle driver
// needs, resolved from the backend by db_name.
type GovernanceContracts struct {
	Token    common.Address
	Governor common.Address
	Timelock common.Address
}

// Backend db_names for the governance contracts.
const (
	DBNameToken    = "nexusToken"
	DBNameGovernor = "nexusGovernor"
	DBNameTimelock = "nexusTimelock"
)
