package cli

import (
	"github.com/spf13/cobra"

	"github.com/colemanwhaylon/nexus-protocol/internal/cli/render"
	"github.com/colemanwhaylon/nexus-protocol/internal/usecase"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List the backend's active networks",
		Long: `List all active networks registered in the backend, with their chain
IDs and default deployer addresses.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListNetworks.Run(cmd.Context(), usecase.ListNetworksParams{})
			if err != nil {
				return err
			}

			renderer := render.NewNetworksRenderer(cmd.OutOrStdout(), true)
			return renderer.RenderNetworksList(result)
		},
	}

	return cmd
}
