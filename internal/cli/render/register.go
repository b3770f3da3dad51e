package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/colemanwhaylon/nexus-protocol/internal/usecase"
)

// Color styles shared by the renderers
var (
	successStyle = color.New(color.FgGreen)
	failureStyle = color.New(color.FgRed)
	warnStyle    = color.New(color.FgYellow)
	headerStyle  = color.New(color.Bold, color.FgHiWhite)
	faintStyle   = color.New(color.Faint)
	nameStyle    = color.New(color.FgCyan, color.Bold)
)

// RegisterRenderer renders the outcome of a registration run
type RegisterRenderer struct {
	out   io.Writer
	color bool
}

// NewRegisterRenderer creates a new registration renderer
func NewRegisterRenderer(out io.Writer, useColor bool) *RegisterRenderer {
	if !useColor {
		color.NoColor = true
	}
	return &RegisterRenderer{out: out, color: useColor}
}

// RenderRunReport renders the full report for one registration run.
func (r *RegisterRenderer) RenderRunReport(result *usecase.RegisterDeploymentsResult) error {
	fmt.Fprintf(r.out, "%s %s (chain %d)\n",
		headerStyle.Sprint("Network:"),
		result.Network.DisplayName,
		result.Network.ChainID)
	fmt.Fprintf(r.out, "%s %s\n", headerStyle.Sprint("Broadcast:"), faintStyle.Sprint(result.BroadcastPath))
	fmt.Fprintf(r.out, "%s %d known\n", headerStyle.Sprint("Mappings:"), result.MappingCount)
	fmt.Fprintln(r.out)

	if len(result.Deployments) == 0 {
		warnStyle.Fprintln(r.out, "No registrable deployments found in the broadcast record")
		r.renderSkipped(result)
		return nil
	}

	fmt.Fprintf(r.out, "%s\n", headerStyle.Sprintf("Found %d deployment(s):", len(result.Deployments)))
	fmt.Fprint(r.out, r.buildDeploymentsTable(result))
	fmt.Fprintln(r.out)

	r.renderSkipped(result)

	if result.DryRun {
		warnStyle.Fprintln(r.out, "Dry run: nothing was registered")
		return nil
	}

	fmt.Fprintln(r.out)
	if result.Outcome.Failed == 0 {
		successStyle.Fprintf(r.out, "✓ Registered %d contract(s)\n", result.Outcome.Succeeded)
	} else {
		failureStyle.Fprintf(r.out, "✗ Registered %d, failed %d\n",
			result.Outcome.Succeeded, result.Outcome.Failed)
		for _, item := range result.Items {
			if item.Err != nil {
				fmt.Fprintf(r.out, "  %s %s: %v\n", failureStyle.Sprint("✗"), item.Deployment.DBName, item.Err)
			}
		}
	}

	return nil
}

func (r *RegisterRenderer) renderSkipped(result *usecase.RegisterDeploymentsResult) {
	for _, skip := range result.Skipped {
		if skip.Suggestion != "" {
			warnStyle.Fprintf(r.out, "⚠ Skipped %s (%s): no mapping, closest is %q\n",
				skip.ContractName, shortAddress(skip.Address), skip.Suggestion)
		} else {
			warnStyle.Fprintf(r.out, "⚠ Skipped %s (%s): no mapping\n",
				skip.ContractName, shortAddress(skip.Address))
		}
	}
}

func (r *RegisterRenderer) buildDeploymentsTable(result *usecase.RegisterDeploymentsResult) string {
	// Item results carry the per-deployment status on live runs; on a dry
	// run there are none. Items mirror Deployments row for row, so the
	// index keys the status even when one contract deploys twice.
	statusFor := make(map[int]string, len(result.Items))
	for i, item := range result.Items {
		if item.Err != nil {
			statusFor[i] = failureStyle.Sprint("✗ failed")
		} else {
			statusFor[i] = successStyle.Sprint("✓ registered")
		}
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateRows = false
	t.AppendHeader(table.Row{"CONTRACT", "DB NAME", "ADDRESS", "STATUS"})

	for i, dep := range result.Deployments {
		status := statusFor[i]
		if status == "" {
			if result.DryRun {
				status = faintStyle.Sprint("dry run")
			} else {
				status = faintStyle.Sprint("pending")
			}
		}
		t.AppendRow(table.Row{
			nameStyle.Sprint(dep.SolidityName),
			dep.DBName,
			dep.Address,
			status,
		})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft},
	})

	return t.Render() + "\n"
}

// shortAddress truncates a 0x address for display
func shortAddress(addr string) string {
	if len(addr) <= 12 {
		return addr
	}
	return addr[:8] + "…" + addr[len(addr)-4:]
}
