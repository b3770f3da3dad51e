package render

import (
	"fmt"
	"io"

	"github.com/colemanwhaylon/nexus-protocol/internal/usecase"
)

// GovernanceRenderer renders governance cycle summaries
type GovernanceRenderer struct {
	out   io.Writer
	color bool
}

// NewGovernanceRenderer creates a new governance renderer
func NewGovernanceRenderer(out io.Writer, useColor bool) *GovernanceRenderer {
	return &GovernanceRenderer{out: out, color: useColor}
}

// RenderCycleSummary renders the outcome of the executed lifecycle
// cycles.
func (r *GovernanceRenderer) RenderCycleSummary(result *usecase.RunGovernanceResult) error {
	fmt.Fprintln(r.out, headerStyle.Sprint("Governance contracts:"))
	fmt.Fprintf(r.out, "  token:    %s\n", result.Contracts.Token.Hex())
	fmt.Fprintf(r.out, "  governor: %s\n", result.Contracts.Governor.Hex())
	fmt.Fprintf(r.out, "  timelock: %s\n", result.Contracts.Timelock.Hex())
	fmt.Fprintln(r.out)

	for _, cycle := range result.Cycles {
		if cycle.Passed {
			successStyle.Fprintf(r.out, "✓ %s: proposal executed\n", cycle.Name)
		} else {
			failureStyle.Fprintf(r.out, "✗ %s: ended in state %s\n", cycle.Name, cycle.FinalState)
		}
		if cycle.ProposalID != nil {
			faintStyle.Fprintf(r.out, "  proposal id %s\n", cycle.ProposalID)
		}
	}

	return nil
}
