package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/colemanwhaylon/nexus-protocol/internal/cli/render"
	"github.com/colemanwhaylon/nexus-protocol/internal/usecase"
)

// NewMetadataCmd creates the metadata command
func NewMetadataCmd() *cobra.Command {
	var (
		outDir     string
		configPath string
		firstToken int
		lastToken  int
	)

	cmd := &cobra.Command{
		Use:   "metadata",
		Short: "Generate ERC-721 metadata for the collection",
		Long: `Generate ERC-721 metadata JSON documents for a token range. Traits
are derived deterministically from each token id, so regenerating the
collection always produces identical documents.

Trait tables default to the Genesis collection and can be overridden
with a YAML config file.

Examples:
  # Generate the first 100 tokens
  nexus-ops metadata --last 100

  # Regenerate a single token
  nexus-ops metadata --first 42 --last 42

  # Use custom trait tables
  nexus-ops metadata --last 100 --config collection.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			if outDir == "" {
				outDir = filepath.Join(app.Config.DataDir, "metadata")
			}

			params := usecase.GenerateMetadataParams{
				OutputDir:  outDir,
				ConfigPath: configPath,
				FirstToken: firstToken,
				LastToken:  lastToken,
			}
			result, err := app.GenerateMetadata.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			renderer := render.NewMetadataRenderer(cmd.OutOrStdout(), true)
			return renderer.RenderGenerationSummary(result, outDir)
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "Output directory (defaults to .nexus/metadata)")
	cmd.Flags().StringVar(&configPath, "config", "", "Collection trait config YAML")
	cmd.Flags().IntVar(&firstToken, "first", 1, "First token id to generate")
	cmd.Flags().IntVar(&lastToken, "last", 1, "Last token id to generate")

	return cmd
}
