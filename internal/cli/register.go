package cli

import (
	"github.com/spf13/cobra"

	"github.com/colemanwhaylon/nexus-protocol/internal/cli/render"
	"github.com/colemanwhaylon/nexus-protocol/internal/domain"
	"github.com/colemanwhaylon/nexus-protocol/internal/usecase"
)

// NewRegisterCmd creates the register command
func NewRegisterCmd() *cobra.Command {
	var (
		script string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register Foundry deployments with the backend",
		Long: `Register the contract deployments recorded in the latest Foundry
broadcast file with the backend's contract registry.

The command fetches the deployment configuration for the chain, loads
broadcast/<script>/<chain-id>/run-latest.json, joins the CREATE
transactions against the backend's contract mappings, and registers each
match. Transactions with no mapping are reported and skipped.

Non-localhost networks require an API key (--api-key or NEXUS_API_KEY)
and ask for confirmation before writing.

Examples:
  # Register the latest local deployment
  nexus-ops register

  # See what would be registered without writing
  nexus-ops register --dry-run

  # Register a different script's broadcast on Sepolia
  nexus-ops register --script DeployTestnet.s.sol --chain-id 11155111`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.RegisterDeploymentsParams{
				ScriptName: script,
				DryRun:     dryRun,
			}
			result, err := app.RegisterDeployments.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			renderer := render.NewRegisterRenderer(cmd.OutOrStdout(), true)
			if err := renderer.RenderRunReport(result); err != nil {
				return err
			}

			// Partial failure still exits non-zero
			if result.Outcome.Failed > 0 {
				return &domain.PartialFailureError{
					Succeeded: result.Outcome.Succeeded,
					Failed:    result.Outcome.Failed,
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&script, "script", "", "Deploy script whose broadcast to load (defaults to DeployLocal.s.sol)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be registered without writing")

	return cmd
}
