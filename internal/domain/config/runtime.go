package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration.
// This is injected into use cases and contains all resolved settings;
// there are no ambient globals.
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string

	// Chain / backend identity
	ChainID    int64
	APIBaseURL string
	APIKey     string
	RPCURL     string

	// Broadcast lookup
	ScriptName   string
	BroadcastDir string // relative dir name inside the Foundry project, usually "broadcast"

	// Execution settings
	Debug          bool
	NonInteractive bool
	DryRun         bool
	Timeout        time.Duration
}
