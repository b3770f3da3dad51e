package interactive

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cfg "github.com/colemanwhaylon/nexus-protocol/internal/domain/config"
)

func TestConfirmNonInteractive(t *testing.T) {
	p := NewPrompter(&cfg.RuntimeConfig{NonInteractive: true})

	ok, err := p.Confirm(context.Background(), "Register 3 contracts on Sepolia")
	require.NoError(t, err)
	assert.True(t, ok)
}
