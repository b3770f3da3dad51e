package cli

import (
	"github.com/spf13/cobra"

	"github.com/colemanwhaylon/nexus-protocol/internal/cli/render"
	"github.com/colemanwhaylon/nexus-protocol/internal/usecase"
)

// NewMappingsCmd creates the mappings command
func NewMappingsCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "mappings",
		Short: "List contract name mappings",
		Long: `List the backend's contract name mappings: the link between each
contract's Solidity name and the logical name the registry stores it
under.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListMappings.Run(cmd.Context(), usecase.ListMappingsParams{
				Category: category,
			})
			if err != nil {
				return err
			}

			renderer := render.NewMappingsRenderer(cmd.OutOrStdout(), true)
			return renderer.RenderMappingsList(result)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only show mappings in this category (e.g. governance)")

	return cmd
}
