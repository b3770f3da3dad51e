package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/colemanwhaylon/nexus-protocol/internal/domain/models"
	"github.com/colemanwhaylon/nexus-protocol/internal/usecase"
)

var titleCaser = cases.Title(language.English)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out   io.Writer
	color bool
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer, useColor bool) *NetworksRenderer {
	return &NetworksRenderer{out: out, color: useColor}
}

// RenderNetworksList renders the backend's active networks.
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No active networks registered in the backend")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"CHAIN ID", "NETWORK", "DISPLAY NAME", "TESTNET", "DEPLOYER"})

	for _, n := range result.Networks {
		t.AppendRow(table.Row{
			n.ChainID,
			n.NetworkName,
			displayName(n),
			yesNo(n.IsTestnet),
			deployerCell(n),
		})
	}

	t.Render()
	fmt.Fprintf(r.out, "Total networks: %d\n", len(result.Networks))
	return nil
}

// displayName falls back to a title-cased network name when the backend
// row has no display name.
func displayName(n *models.NetworkConfig) string {
	if n.DisplayName != "" {
		return n.DisplayName
	}
	return titleCaser.String(n.NetworkName)
}

func deployerCell(n *models.NetworkConfig) string {
	if n.DefaultDeployer == nil {
		return "-"
	}
	return shortAddress(*n.DefaultDeployer)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
