package models

import "time"

// NetworkConfig is the backend's network configuration row for a chain.
// Immutable for the duration of a run; fetched once at the start.
type NetworkConfig struct {
	ID              string    `json:"id"`
	ChainID         int64     `json:"chain_id"`
	NetworkName     string    `json:"network_name"`
	DisplayName     string    `json:"display_name"`
	RPCUrl          *string   `json:"rpc_url,omitempty"`
	ExplorerUrl     *string   `json:"explorer_url,omitempty"`
	DefaultDeployer *string   `json:"default_deployer,omitempty"`
	IsTestnet       bool      `json:"is_testnet"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// LocalNetworkName is the network name the backend assigns to the local
// anvil chain. Writes to any other network require an API key.
const LocalNetworkName = "localhost"

// RequiresAuth reports whether registrations against this network need
// an API key.
func (n *NetworkConfig) RequiresAuth() bool {
	return n.NetworkName != LocalNetworkName
}

// ContractMapping links a contract's Solidity name to its logical
// database name. Unique by solidity_name per backend constraint.
type ContractMapping struct {
	ID           string  `json:"id"`
	SolidityName string  `json:"solidity_name"`
	DBName       string  `json:"db_name"`
	DisplayName  string  `json:"display_name"`
	Category     string  `json:"category"`
	Description  *string `json:"description,omitempty"`
	IsRequired   bool    `json:"is_required"`
	SortOrder    int     `json:"sort_order"`
}

// ContractAddress is a registered contract as the backend returns it.
type ContractAddress struct {
	ID                string  `json:"id"`
	ChainID           int64   `json:"chain_id"`
	ContractMappingID string  `json:"contract_mapping_id"`
	DBName            string  `json:"db_name"`
	SolidityName      string  `json:"solidity_name"`
	Address           string  `json:"address"`
	DeploymentTxHash  *string `json:"deployment_tx_hash,omitempty"`
	DeploymentBlock   *int64  `json:"deployment_block,omitempty"`
	ABIVersion        string  `json:"abi_version"`
	Status            string  `json:"status"`
	IsPrimary         bool    `json:"is_primary"`
	DeployedBy        *string `json:"deployed_by,omitempty"`
}

// DeploymentConfig is the full configuration payload the backend serves
// to deploy tooling for one chain.
type DeploymentConfig struct {
	Network   *NetworkConfig     `json:"network"`
	Mappings  []*ContractMapping `json:"mappings"`
	Contracts []*ContractAddress `json:"contracts"`
}

// Deployment is a CREATE transaction joined against its contract
// mapping. Exists only transiently during a run; never persisted here.
type Deployment struct {
	SolidityName string
	DBName       string
	MappingID    string
	Address      string
	TxHash       string
}

// SkippedTransaction records a CREATE transaction whose declared name had
// no matching contract mapping. Skips are reported, never silently
// dropped.
type SkippedTransaction struct {
	ContractName string
	Address      string
	Suggestion   string // closest known mapping name, if any
}

// ContractRegistration is the body of POST /api/v1/contracts.
// DeployedBy is a pointer so the field is omitted entirely when the
// network has no default deployer; absence, not a sentinel, signals
// "unknown".
type ContractRegistration struct {
	ChainID           int64   `json:"chain_id"`
	ContractMappingID string  `json:"contract_mapping_id"`
	Address           string  `json:"address"`
	DeploymentTxHash  string  `json:"deployment_tx_hash"`
	DeployedBy        *string `json:"deployed_by,omitempty"`
}

// RegistrationOutcome accumulates per-deployment success/failure across
// a run.
type RegistrationOutcome struct {
	Succeeded int
	Failed    int
}

// ItemResult records the outcome for a single submitted deployment.
type ItemResult struct {
	Deployment Deployment
	Err        error
}
