package progress

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"

	"github.com/colemanwhaylon/nexus-protocol/internal/usecase"
)

// SpinnerSink reports progress with a terminal spinner. Stage changes
// retire the previous spinner line; plain info lines print beneath it.
type SpinnerSink struct {
	spinner *spinner.Spinner
	stage   string
}

// NewSpinnerSink creates a new spinner-based progress sink
func NewSpinnerSink() *SpinnerSink {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.HideCursor = false
	return &SpinnerSink{spinner: s}
}

// OnProgress handles progress events
func (r *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if event.Stage != r.stage {
		if r.spinner.Active() {
			r.spinner.Stop()
		}
		r.stage = event.Stage
	}

	message := event.Message
	if event.Total > 0 {
		message = fmt.Sprintf("%s (%d/%d)", event.Message, event.Current, event.Total)
	}

	if event.Spinner {
		r.spinner.Suffix = " " + message
		if !r.spinner.Active() {
			r.spinner.Start()
		}
		return
	}

	if r.spinner.Active() {
		r.spinner.Stop()
	}
	fmt.Fprintln(os.Stderr, message)
}

// Info prints an informational line without disturbing the spinner state
// for long.
func (r *SpinnerSink) Info(message string) {
	active := r.spinner.Active()
	if active {
		r.spinner.Stop()
	}
	fmt.Fprintln(os.Stderr, "  "+message)
	if active {
		r.spinner.Start()
	}
}

// Error prints an error line in red.
func (r *SpinnerSink) Error(message string) {
	if r.spinner.Active() {
		r.spinner.Stop()
	}
	fmt.Fprintln(os.Stderr, color.RedString(message))
}
