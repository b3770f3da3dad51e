package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/colemanwhaylon/nexus-protocol/internal/adapters/progress"
	"github.com/colemanwhaylon/nexus-protocol/internal/app"
	"github.com/colemanwhaylon/nexus-protocol/internal/config"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nexus-ops",
		Short: "Operations tooling for the Nexus protocol",
		Long: `nexus-ops registers Foundry deployments with the Nexus backend and
drives local governance and metadata workflows against the development chain.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			projectRoot := config.FindProjectRoot()

			// Set up viper
			v := config.SetupViper(projectRoot)

			// Bind global flags that have been set
			bindGlobalFlags(v, cmd)

			// Progress goes to the terminal as a spinner
			sink := progress.NewSpinnerSink()

			// Initialize app with DI
			appInstance, err := app.InitApp(v, sink)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			// Store app in context
			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			// Add timeout if configured
			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				// Store cancel func to be called on command completion
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)

			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Int64("chain-id", 0, "Target chain ID (defaults to 31337)")
	rootCmd.PersistentFlags().String("api-url", "", "Backend API base URL")
	rootCmd.PersistentFlags().String("api-key", "", "Backend API key (or NEXUS_API_KEY)")
	rootCmd.PersistentFlags().String("rpc-url", "", "Chain RPC endpoint")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")

	// Add command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	// Main commands
	registerCmd := NewRegisterCmd()
	registerCmd.GroupID = "main"
	rootCmd.AddCommand(registerCmd)

	governanceCmd := NewGovernanceCmd()
	governanceCmd.GroupID = "main"
	rootCmd.AddCommand(governanceCmd)

	metadataCmd := NewMetadataCmd()
	metadataCmd.GroupID = "main"
	rootCmd.AddCommand(metadataCmd)

	// Management commands
	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "management"
	rootCmd.AddCommand(networksCmd)

	mappingsCmd := NewMappingsCmd()
	mappingsCmd.GroupID = "management"
	rootCmd.AddCommand(mappingsCmd)

	// Version command
	versionCmd := NewVersionCmd()
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

// bindGlobalFlags binds command flags to viper
func bindGlobalFlags(v *viper.Viper, cmd *cobra.Command) {
	// Only bind flags that exist and have been changed
	if f := cmd.Flag("chain-id"); f != nil && f.Changed {
		v.Set("chain_id", f.Value.String())
	}
	if f := cmd.Flag("api-url"); f != nil && f.Changed {
		v.Set("api_url", f.Value.String())
	}
	if f := cmd.Flag("api-key"); f != nil && f.Changed {
		v.Set("api_key", f.Value.String())
	}
	if f := cmd.Flag("rpc-url"); f != nil && f.Changed {
		v.Set("rpc_url", f.Value.String())
	}
	if f := cmd.Flag("debug"); f != nil && f.Changed {
		v.Set("debug", f.Value.String())
	}
	if f := cmd.Flag("non-interactive"); f != nil && f.Changed {
		v.Set("non_interactive", f.Value.String())
	}
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
