package interactive

import (
	"context"
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"

	cfg "github.com/colemanwhaylon/nexus-protocol/internal/domain/config"
)

// Prompter asks yes/no questions on the terminal. In non-interactive
// mode every confirmation auto-accepts; the auth gate has already run by
// the time a prompt is reached.
type Prompter struct {
	nonInteractive bool
}

// NewPrompter creates a new terminal prompter
func NewPrompter(rc *cfg.RuntimeConfig) *Prompter {
	return &Prompter{nonInteractive: rc.NonInteractive}
}

// Confirm asks the operator to confirm an action.
func (p *Prompter) Confirm(ctx context.Context, label string) (bool, error) {
	if p.nonInteractive {
		return true, nil
	}

	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	_, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, fmt.Errorf("confirmation failed: %w", err)
	}
	return true, nil
}
