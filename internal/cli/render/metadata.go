package render

import (
	"fmt"
	"io"

	"github.com/colemanwhaylon/nexus-protocol/internal/usecase"
)

// MetadataRenderer renders metadata generation summaries
type MetadataRenderer struct {
	out   io.Writer
	color bool
}

// NewMetadataRenderer creates a new metadata renderer
func NewMetadataRenderer(out io.Writer, useColor bool) *MetadataRenderer {
	return &MetadataRenderer{out: out, color: useColor}
}

// RenderGenerationSummary renders the outcome of a metadata run,
// including the rarity distribution actually drawn.
func (r *MetadataRenderer) RenderGenerationSummary(result *usecase.GenerateMetadataResult, outDir string) error {
	if len(result.Written) == 0 {
		fmt.Fprintln(r.out, "No tokens generated")
		return nil
	}

	rarityCounts := make(map[string]int)
	for _, tok := range result.Written {
		rarityCounts[tok.Rarity]++
	}

	successStyle.Fprintf(r.out, "✓ Generated %d token(s) for %s\n", len(result.Written), result.Collection.Name)
	faintStyle.Fprintf(r.out, "  output: %s\n", outDir)
	fmt.Fprintln(r.out)

	fmt.Fprintln(r.out, headerStyle.Sprint("Rarity distribution:"))
	for _, tier := range result.Collection.Rarities {
		if n := rarityCounts[tier.Name]; n > 0 {
			fmt.Fprintf(r.out, "  %-12s %d\n", tier.Name, n)
		}
	}

	return nil
}
