package domain

// BroadcastFile represents a Foundry broadcast file (run-latest.json)
type BroadcastFile struct {
	Chain        uint64                 `json:"chain"`
	Transactions []BroadcastTransaction `json:"transactions"`
	Receipts     []BroadcastReceipt     `json:"receipts"`
	Timestamp    uint64                 `json:"timestamp"`
	Commit       string                 `json:"commit"`
}

// TransactionTypeCreate tags transactions that instantiate a new contract
// at a fresh address, as opposed to calls into existing contracts.
const TransactionTypeCreate = "CREATE"

// BroadcastTransaction represents a transaction in a broadcast file
type BroadcastTransaction struct {
	Hash            string         `json:"hash"`
	TransactionType string         `json:"transactionType"`
	ContractName    string         `json:"contractName"`
	ContractAddress string         `json:"contractAddress"`
	Function        string         `json:"function"`
	Arguments       []any          `json:"arguments"`
	Transaction     map[string]any `json:"transaction"`
}

// IsCreate reports whether the transaction deployed a new contract.
func (t BroadcastTransaction) IsCreate() bool {
	return t.TransactionType == TransactionTypeCreate
}

// BroadcastReceipt represents a receipt in a broadcast file
type BroadcastReceipt struct {
	TransactionHash string `json:"transactionHash"`
	BlockNumber     string `json:"blockNumber"`
	GasUsed         string `json:"gasUsed"`
	Status          string `json:"status"`
	ContractAddress string `json:"contractAddress"`
}
