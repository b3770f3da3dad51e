package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colemanwhaylon/nexus-protocol/internal/domain/models"
	"github.com/colemanwhaylon/nexus-protocol/internal/usecase"
)

func TestRenderRunReport(t *testing.T) {
	t.Run("repeated contract keeps one status per row", func(t *testing.T) {
		// Two CREATEs of the same contract in one broadcast: same
		// mapping, different addresses, different outcomes.
		deployments := []models.Deployment{
			{SolidityName: "NexusToken", DBName: "nexusToken", MappingID: "m-token", Address: "0xaaa1", TxHash: "0x1"},
			{SolidityName: "NexusToken", DBName: "nexusToken", MappingID: "m-token", Address: "0xaaa2", TxHash: "0x2"},
		}
		result := &usecase.RegisterDeploymentsResult{
			Network:      &models.NetworkConfig{ChainID: 31337, DisplayName: "Localhost"},
			Deployments:  deployments,
			MappingCount: 3,
			Items: []models.ItemResult{
				{Deployment: deployments[0]},
				{Deployment: deployments[1], Err: errors.New("duplicate address")},
			},
			Outcome: models.RegistrationOutcome{Succeeded: 1, Failed: 1},
		}

		var out bytes.Buffer
		renderer := NewRegisterRenderer(&out, false)
		require.NoError(t, renderer.RenderRunReport(result))

		rendered := out.String()
		assert.Equal(t, 1, strings.Count(rendered, "✓ registered"))
		assert.Contains(t, rendered, "✗ failed")
		assert.Contains(t, rendered, "0xaaa1")
		assert.Contains(t, rendered, "0xaaa2")
	})

	t.Run("dry run rows carry no live status", func(t *testing.T) {
		result := &usecase.RegisterDeploymentsResult{
			Network: &models.NetworkConfig{ChainID: 31337, DisplayName: "Localhost"},
			Deployments: []models.Deployment{
				{SolidityName: "NexusToken", DBName: "nexusToken", MappingID: "m-token", Address: "0xbbb1"},
			},
			DryRun: true,
		}

		var out bytes.Buffer
		renderer := NewRegisterRenderer(&out, false)
		require.NoError(t, renderer.RenderRunReport(result))

		rendered := out.String()
		assert.Contains(t, rendered, "dry run")
		assert.Contains(t, rendered, "Dry run: nothing was registered")
		assert.NotContains(t, rendered, "✓ registered")
	})
}
