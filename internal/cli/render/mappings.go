package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/colemanwhaylon/nexus-protocol/internal/usecase"
)

// MappingsRenderer renders contract mapping lists
type MappingsRenderer struct {
	out   io.Writer
	color bool
}

// NewMappingsRenderer creates a new mappings renderer
func NewMappingsRenderer(out io.Writer, useColor bool) *MappingsRenderer {
	return &MappingsRenderer{out: out, color: useColor}
}

// RenderMappingsList renders the contract name mappings.
func (r *MappingsRenderer) RenderMappingsList(result *usecase.ListMappingsResult) error {
	if len(result.Mappings) == 0 {
		fmt.Fprintln(r.out, "No contract mappings found")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"SOLIDITY NAME", "DB NAME", "CATEGORY", "REQUIRED"})

	for _, m := range result.Mappings {
		t.AppendRow(table.Row{
			nameStyle.Sprint(m.SolidityName),
			m.DBName,
			m.Category,
			yesNo(m.IsRequired),
		})
	}

	t.Render()
	fmt.Fprintf(r.out, "Total mappings: %d\n", len(result.Mappings))
	return nil
}
