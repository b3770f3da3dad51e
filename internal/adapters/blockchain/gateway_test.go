package blockchain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cfg "github.com/colemanwhaylon/nexus-protocol/internal/domain/config"
	"github.com/colemanwhaylon/nexus-protocol/internal/logging"
)

func TestMiningBatches(t *testing.T) {
	tests := []struct {
		name      string
		count     uint64
		batchSize uint64
		want      []uint64
	}{
		{name: "zero blocks", count: 0, batchSize: 100, want: nil},
		{name: "under one batch", count: 42, batchSize: 100, want: []uint64{42}},
		{name: "exactly one batch", count: 100, batchSize: 100, want: []uint64{100}},
		{name: "splits large jumps", count: 250, batchSize: 100, want: []uint64{100, 100, 50}},
		{name: "zero batch size", count: 10, batchSize: 0, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MiningBatches(tt.count, tt.batchSize))
		})
	}
}

func TestEncodeCall(t *testing.T) {
	g, err := NewGateway(logging.NewLogger(&cfg.RuntimeConfig{}))
	require.NoError(t, err)

	data, err := g.EncodeCall("updateQuorumNumerator", big.NewInt(4))
	require.NoError(t, err)
	// 4-byte selector plus one uint256 argument
	assert.Len(t, data, 36)

	_, err = g.EncodeCall("notAFunction")
	assert.Error(t, err)
}
