package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"

	"github.com/colemanwhaylon/nexus-protocol/internal/domain"
	"github.com/colemanwhaylon/nexus-protocol/internal/domain/config"
	"github.com/colemanwhaylon/nexus-protocol/internal/domain/models"
)

// RegisterDeploymentsParams contains parameters for a registration run.
// Zero values defer to RuntimeConfig.
type RegisterDeploymentsParams struct {
	ChainID    int64
	ScriptName string
	DryRun     bool
}

// RegisterDeploymentsResult is everything a renderer needs to report a
// run: the fetched network, the broadcast file used, the derived
// deployments in record order, the skipped transactions, and per-item
// outcomes.
type RegisterDeploymentsResult struct {
	Network       *models.NetworkConfig
	MappingCount  int
	BroadcastPath string
	Deployments   []models.Deployment
	Skipped       []models.SkippedTransaction
	Items         []models.ItemResult
	Outcome       models.RegistrationOutcome
	DryRun        bool
}

// RegisterDeployments is the post-deployment contract registrar. It runs
// a fixed sequence: fetch config, check the auth requirement, load the
// broadcast record, cross-reference against mappings, then register (or
// report, on a dry run). Any failure before registration aborts the run;
// per-item registration failures are tolerated and counted.
type RegisterDeployments struct {
	config    *config.RuntimeConfig
	fetcher   ConfigFetcher
	loader    BroadcastLoader
	submitter RegistrationSubmitter
	prompter  Prompter
	sink      ProgressSink
	log       *slog.Logger
}

// NewRegisterDeployments creates a new RegisterDeployments use case
func NewRegisterDeployments(
	cfg *config.RuntimeConfig,
	fetcher ConfigFetcher,
	loader BroadcastLoader,
	submitter RegistrationSubmitter,
	prompter Prompter,
	sink ProgressSink,
	log *slog.Logger,
) *RegisterDeployments {
	return &RegisterDeployments{
		config:    cfg,
		fetcher:   fetcher,
		loader:    loader,
		submitter: submitter,
		prompter:  prompter,
		sink:      sink,
		log:       log,
	}
}

// Run executes the registration workflow.
func (uc *RegisterDeployments) Run(ctx context.Context, params RegisterDeploymentsParams) (*RegisterDeploymentsResult, error) {
	chainID := params.ChainID
	if chainID == 0 {
		chainID = uc.config.ChainID
	}
	scriptName := params.ScriptName
	if scriptName == "" {
		scriptName = uc.config.ScriptName
	}
	dryRun := params.DryRun || uc.config.DryRun

	// Stage 1: fetch config
	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "fetch-config",
		Message: fmt.Sprintf("Fetching config for chain %d", chainID),
		Spinner: true,
	})

	deployCfg, err := uc.fetcher.FetchDeploymentConfig(ctx, chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch deployment config: %w", err)
	}
	if deployCfg.Network == nil {
		return nil, fmt.Errorf("deployment config for chain %d has no network", chainID)
	}
	uc.log.Debug("fetched deployment config",
		"network", deployCfg.Network.NetworkName,
		"mappings", len(deployCfg.Mappings))

	// Stage 2: auth gate. Checked before any deployment data is loaded
	// so an unauthenticated run against a shared environment stops here.
	if deployCfg.Network.RequiresAuth() && uc.config.APIKey == "" {
		return nil, fmt.Errorf("network %q: %w", deployCfg.Network.NetworkName, domain.ErrAuthRequired)
	}

	// Stage 3: load broadcast record
	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "load-record",
		Message: fmt.Sprintf("Loading broadcast for %s", scriptName),
	})

	broadcast, broadcastPath, err := uc.loader.LoadLatest(ctx, scriptName, chainID)
	if err != nil {
		return nil, err
	}
	uc.log.Debug("loaded broadcast", "path", broadcastPath, "transactions", len(broadcast.Transactions))

	// Stage 4: cross-reference
	deployments, skipped := CrossReference(broadcast, deployCfg.Mappings)
	for _, skip := range skipped {
		if skip.Suggestion != "" {
			uc.sink.Info(fmt.Sprintf("Skipping %s: not in contract mappings (closest: %s)", skip.ContractName, skip.Suggestion))
		} else {
			uc.sink.Info(fmt.Sprintf("Skipping %s: not in contract mappings", skip.ContractName))
		}
	}

	result := &RegisterDeploymentsResult{
		Network:       deployCfg.Network,
		MappingCount:  len(deployCfg.Mappings),
		BroadcastPath: broadcastPath,
		Deployments:   deployments,
		Skipped:       skipped,
		DryRun:        dryRun,
	}

	if len(deployments) == 0 || dryRun {
		return result, nil
	}

	// Live writes to a shared environment get one confirmation prompt.
	if deployCfg.Network.RequiresAuth() && !uc.config.NonInteractive {
		ok, err := uc.prompter.Confirm(ctx, fmt.Sprintf(
			"Register %d contracts on %s", len(deployments), deployCfg.Network.DisplayName))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrAborted
		}
	}

	// An empty default_deployer is the same as none; the payload must
	// omit the field, not carry "".
	deployedBy := deployCfg.Network.DefaultDeployer
	if deployedBy != nil && *deployedBy == "" {
		deployedBy = nil
	}

	// Stage 5: register, one at a time, never aborting on item failure.
	for i, dep := range deployments {
		uc.sink.OnProgress(ctx, ProgressEvent{
			Stage:   "register",
			Current: i + 1,
			Total:   len(deployments),
			Message: fmt.Sprintf("Registering %s", dep.DBName),
		})

		reg := &models.ContractRegistration{
			ChainID:           chainID,
			ContractMappingID: dep.MappingID,
			Address:           dep.Address,
			DeploymentTxHash:  dep.TxHash,
			DeployedBy:        deployedBy,
		}

		submitErr := uc.submitter.SubmitRegistration(ctx, reg)
		result.Items = append(result.Items, models.ItemResult{Deployment: dep, Err: submitErr})
		if submitErr != nil {
			uc.log.Warn("registration failed", "contract", dep.DBName, "error", submitErr)
			result.Outcome.Failed++
		} else {
			result.Outcome.Succeeded++
		}
	}

	return result, nil
}

// CrossReference joins CREATE transactions against the contract mapping
// set, in record order. Exactly one Deployment is produced per CREATE
// transaction whose declared name has a mapping; everything else is
// reported as skipped (non-CREATE transactions are not deployments and
// are not reported at all).
func CrossReference(broadcast *domain.BroadcastFile, mappings []*models.ContractMapping) ([]models.Deployment, []models.SkippedTransaction) {
	bySolidityName := lo.KeyBy(mappings, func(m *models.ContractMapping) string {
		return m.SolidityName
	})
	knownNames := lo.Map(mappings, func(m *models.ContractMapping, _ int) string {
		return m.SolidityName
	})

	var deployments []models.Deployment
	var skipped []models.SkippedTransaction

	for _, tx := range broadcast.Transactions {
		if !tx.IsCreate() {
			continue
		}

		mapping, ok := bySolidityName[tx.ContractName]
		if !ok {
			skipped = append(skipped, models.SkippedTransaction{
				ContractName: tx.ContractName,
				Address:      tx.ContractAddress,
				Suggestion:   closestName(tx.ContractName, knownNames),
			})
			continue
		}

		deployments = append(deployments, models.Deployment{
			SolidityName: tx.ContractName,
			DBName:       mapping.DBName,
			MappingID:    mapping.ID,
			Address:      tx.ContractAddress,
			TxHash:       tx.Hash,
		})
	}

	return deployments, skipped
}

// closestName returns the best fuzzy match for name among known mapping
// names, or "" when nothing comes close. fuzzy.Find only matches the
// pattern as a subsequence of a candidate, so both directions are
// scored: a skipped NexusTokenV2 should still suggest the shorter
// mapping name NexusToken.
func closestName(name string, known []string) string {
	var best string
	bestScore := 0
	found := false

	record := func(candidate string, score int) {
		if !found || score > bestScore {
			best = candidate
			bestScore = score
			found = true
		}
	}

	for _, m := range fuzzy.Find(name, known) {
		record(m.Str, m.Score)
	}
	for _, candidate := range known {
		if m := fuzzy.Find(candidate, []string{name}); len(m) > 0 {
			record(candidate, m[0].Score)
		}
	}
	return best
}
