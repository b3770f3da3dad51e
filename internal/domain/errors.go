package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrConnectivity is returned when a remote service cannot be reached
	ErrConnectivity = errors.New("service unreachable")

	// ErrTimeout is returned when a remote service does not answer in time
	ErrTimeout = errors.New("request timed out")

	// ErrAuthRequired is returned when an API key is missing for a
	// network that requires one
	ErrAuthRequired = errors.New("API key required for non-localhost networks")

	// ErrAborted is returned when the operator declines a confirmation prompt
	ErrAborted = errors.New("aborted by operator")

	// ErrInvalidChainID is returned when a chain ID is invalid
	ErrInvalidChainID = errors.New("invalid chain ID")

	// ErrContractNotFound is returned when a required contract address
	// is not registered for the chain
	ErrContractNotFound = errors.New("contract not found")
)

// StatusError is returned when the backend answers with a non-success
// HTTP status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, body)
}

// APIError is returned when the backend answers 2xx but flags the
// response as unsuccessful.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return "API reported an unspecified error"
	}
	return fmt.Sprintf("API error: %s", e.Message)
}

// BroadcastNotFoundError is returned when no broadcast file exists at any
// of the candidate locations. It carries every searched path so the
// operator can see exactly where the loader looked.
type BroadcastNotFoundError struct {
	ScriptName string
	ChainID    int64
	Searched   []string
}

func (e *BroadcastNotFoundError) Error() string {
	return fmt.Sprintf(
		"broadcast file not found for %s (chain %d), searched:\n  %s\n\nmake sure you've run: forge script script/%s --broadcast",
		e.ScriptName, e.ChainID, strings.Join(e.Searched, "\n  "), e.ScriptName)
}

// PartialFailureError is returned when some registrations failed but the
// run completed. The run is not aborted on the first failure; counts are
// accumulated and surfaced at the end.
type PartialFailureError struct {
	Succeeded int
	Failed    int
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("registered %d contracts, %d failed", e.Succeeded, e.Failed)
}

// UnexpectedStateError is returned when a governance proposal is not in
// the state the lifecycle requires.
type UnexpectedStateError struct {
	Want string
	Got  string
}

func (e *UnexpectedStateError) Error() string {
	return fmt.Sprintf("proposal state mismatch: expected %s, got %s", e.Want, e.Got)
}
