package cli

import (
	"github.com/spf13/cobra"

	"github.com/colemanwhaylon/nexus-protocol/internal/cli/render"
	"github.com/colemanwhaylon/nexus-protocol/internal/usecase"
)

// NewGovernanceCmd creates the governance command
func NewGovernanceCmd() *cobra.Command {
	var (
		withDelegation bool
		proposerKey    string
		voterKey       string
	)

	cmd := &cobra.Command{
		Use:   "governance",
		Short: "Run a full governance lifecycle on the local chain",
		Long: `Drive a complete proposal lifecycle against the locally deployed
governance contracts: propose, advance to the voting window, vote,
advance past the deadline, queue in the timelock, warp past the delay,
and execute.

This exercises the deployed governor end to end and requires an anvil
node (block mining and time travel use anvil's RPC extensions). Contract
addresses are resolved from the backend registry.

Examples:
  # Run the direct-voting cycle
  nexus-ops governance

  # Also run a second cycle with delegated voting power
  nexus-ops governance --with-delegation`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.RunGovernanceParams{
				WithDelegation: withDelegation,
				ProposerKey:    proposerKey,
				VoterKey:       voterKey,
			}
			result, runErr := app.RunGovernance.Run(cmd.Context(), params)

			// Render whatever completed even when a cycle failed
			if result != nil {
				renderer := render.NewGovernanceRenderer(cmd.OutOrStdout(), true)
				if err := renderer.RenderCycleSummary(result); err != nil {
					return err
				}
			}

			return runErr
		},
	}

	cmd.Flags().BoolVar(&withDelegation, "with-delegation", false, "Also run a delegated-voting cycle")
	cmd.Flags().StringVar(&proposerKey, "proposer-key", "", "Proposer private key (defaults to anvil account 0)")
	cmd.Flags().StringVar(&voterKey, "voter-key", "", "Voter private key for delegation (defaults to anvil account 1)")

	return cmd
}
