package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/colemanwhaylon/nexus-protocol/internal/domain"
	"github.com/colemanwhaylon/nexus-protocol/internal/domain/config"
	"github.com/colemanwhaylon/nexus-protocol/internal/domain/models"
	"github.com/colemanwhaylon/nexus-protocol/internal/logging"
	"github.com/colemanwhaylon/nexus-protocol/internal/usecase"
)

// MockConfigFetcher is a mock implementation of ConfigFetcher
type MockConfigFetcher struct {
	mock.Mock
}

func (m *MockConfigFetcher) FetchDeploymentConfig(ctx context.Context, chainID int64) (*models.DeploymentConfig, error) {
	args := m.Called(ctx, chainID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeploymentConfig), args.Error(1)
}

// MockBroadcastLoader is a mock implementation of BroadcastLoader
type MockBroadcastLoader struct {
	mock.Mock
}

func (m *MockBroadcastLoader) LoadLatest(ctx context.Context, scriptName string, chainID int64) (*domain.BroadcastFile, string, error) {
	args := m.Called(ctx, scriptName, chainID)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.BroadcastFile), args.String(1), args.Error(2)
}

func (m *MockBroadcastLoader) CandidatePaths(scriptName string, chainID int64) []string {
	args := m.Called(scriptName, chainID)
	return args.Get(0).([]string)
}

// MockSubmitter is a mock implementation of RegistrationSubmitter
type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) SubmitRegistration(ctx context.Context, reg *models.ContractRegistration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}

// MockPrompter is a mock implementation of Prompter
type MockPrompter struct {
	mock.Mock
}

func (m *MockPrompter) Confirm(ctx context.Context, label string) (bool, error) {
	args := m.Called(ctx, label)
	return args.Bool(0), args.Error(1)
}

func testConfig() *config.RuntimeConfig {
	return &config.RuntimeConfig{
		ProjectRoot: "/tmp/project",
		ChainID:     31337,
		APIBaseURL:  "http://localhost:8080",
		RPCURL:      "http://localhost:8545",
		ScriptName:  "DeployLocal.s.sol",
		Timeout:     10 * time.Second,
	}
}

func localhostNetwork() *models.NetworkConfig {
	return &models.NetworkConfig{
		ID:          "net-1",
		ChainID:     31337,
		NetworkName: "localhost",
		DisplayName: "Localhost",
	}
}

func governanceMappings() []*models.ContractMapping {
	return []*models.ContractMapping{
		{ID: "m-token", SolidityName: "NexusToken", DBName: "nexusToken"},
		{ID: "m-governor", SolidityName: "NexusGovernor", DBName: "nexusGovernor"},
		{ID: "m-timelock", SolidityName: "NexusTimelock", DBName: "nexusTimelock"},
	}
}

func createTx(name, addr, hash string) domain.BroadcastTransaction {
	return domain.BroadcastTransaction{
		TransactionType: domain.TransactionTypeCreate,
		ContractName:    name,
		ContractAddress: addr,
		Hash:            hash,
	}
}

func newRegisterUC(fetcher *MockConfigFetcher, loader *MockBroadcastLoader, submitter *MockSubmitter, prompter *MockPrompter, cfg *config.RuntimeConfig) *usecase.RegisterDeployments {
	return usecase.NewRegisterDeployments(cfg, fetcher, loader, submitter, prompter, usecase.NopProgress{}, logging.NewLogger(cfg))
}

func TestRegisterDeployments(t *testing.T) {
	ctx := context.Background()

	t.Run("registers every mapped CREATE in record order", func(t *testing.T) {
		broadcast := &domain.BroadcastFile{
			Transactions: []domain.BroadcastTransaction{
				createTx("NexusToken", "0xaaa1", "0xhash1"),
				{TransactionType: "CALL", ContractName: "NexusToken"},
				createTx("NexusGovernor", "0xaaa2", "0xhash2"),
				createTx("NexusTimelock", "0xaaa3", "0xhash3"),
			},
		}

		fetcher := new(MockConfigFetcher)
		fetcher.On("FetchDeploymentConfig", ctx, int64(31337)).Return(&models.DeploymentConfig{
			Network:  localhostNetwork(),
			Mappings: governanceMappings(),
		}, nil)

		loader := new(MockBroadcastLoader)
		loader.On("LoadLatest", ctx, "DeployLocal.s.sol", int64(31337)).Return(broadcast, "/tmp/run-latest.json", nil)

		submitter := new(MockSubmitter)
		var submitted []string
		submitter.On("SubmitRegistration", ctx, mock.Anything).Run(func(args mock.Arguments) {
			reg := args.Get(1).(*models.ContractRegistration)
			submitted = append(submitted, reg.ContractMappingID)
		}).Return(nil)

		uc := newRegisterUC(fetcher, loader, submitter, new(MockPrompter), testConfig())
		result, err := uc.Run(ctx, usecase.RegisterDeploymentsParams{})

		require.NoError(t, err)
		require.Len(t, result.Deployments, 3)
		assert.Equal(t, 3, result.Outcome.Succeeded)
		assert.Equal(t, 0, result.Outcome.Failed)
		// One registration per mapped CREATE, in broadcast record order
		assert.Equal(t, []string{"m-token", "m-governor", "m-timelock"}, submitted)
		assert.Empty(t, result.Skipped)

		fetcher.AssertExpectations(t)
		loader.AssertExpectations(t)
		submitter.AssertExpectations(t)
	})

	t.Run("skips unmapped contracts with suggestion", func(t *testing.T) {
		broadcast := &domain.BroadcastFile{
			Transactions: []domain.BroadcastTransaction{
				createTx("Staking", "0xbbb1", "0xhash1"),
				createTx("NexusToken", "0xbbb2", "0xhash2"),
				createTx("Unrecognized", "0xbbb3", "0xhash3"),
			},
		}

		fetcher := new(MockConfigFetcher)
		fetcher.On("FetchDeploymentConfig", ctx, int64(31337)).Return(&models.DeploymentConfig{
			Network:  localhostNetwork(),
			Mappings: governanceMappings(),
		}, nil)

		loader := new(MockBroadcastLoader)
		loader.On("LoadLatest", ctx, "DeployLocal.s.sol", int64(31337)).Return(broadcast, "/tmp/run-latest.json", nil)

		submitter := new(MockSubmitter)
		submitter.On("SubmitRegistration", ctx, mock.Anything).Return(nil).Once()

		uc := newRegisterUC(fetcher, loader, submitter, new(MockPrompter), testConfig())
		result, err := uc.Run(ctx, usecase.RegisterDeploymentsParams{})

		require.NoError(t, err)
		require.Len(t, result.Deployments, 1)
		assert.Equal(t, "nexusToken", result.Deployments[0].DBName)
		require.Len(t, result.Skipped, 2)
		assert.Equal(t, "Staking", result.Skipped[0].ContractName)
		assert.Equal(t, "Unrecognized", result.Skipped[1].ContractName)

		submitter.AssertExpectations(t)
	})

	t.Run("auth gate fires before the broadcast is loaded", func(t *testing.T) {
		fetcher := new(MockConfigFetcher)
		fetcher.On("FetchDeploymentConfig", ctx, int64(11155111)).Return(&models.DeploymentConfig{
			Network: &models.NetworkConfig{
				ChainID:     11155111,
				NetworkName: "sepolia",
				DisplayName: "Sepolia",
			},
			Mappings: governanceMappings(),
		}, nil)

		loader := new(MockBroadcastLoader)
		submitter := new(MockSubmitter)

		cfg := testConfig()
		cfg.APIKey = "" // no key configured

		uc := newRegisterUC(fetcher, loader, submitter, new(MockPrompter), cfg)
		result, err := uc.Run(ctx, usecase.RegisterDeploymentsParams{ChainID: 11155111})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrAuthRequired)
		assert.Nil(t, result)

		// The run must stop before any deployment data is touched
		loader.AssertNotCalled(t, "LoadLatest", mock.Anything, mock.Anything, mock.Anything)
		submitter.AssertNotCalled(t, "SubmitRegistration", mock.Anything, mock.Anything)
	})

	t.Run("dry run submits nothing", func(t *testing.T) {
		broadcast := &domain.BroadcastFile{
			Transactions: []domain.BroadcastTransaction{
				createTx("NexusToken", "0xccc1", "0xhash1"),
				createTx("NexusGovernor", "0xccc2", "0xhash2"),
			},
		}

		fetcher := new(MockConfigFetcher)
		fetcher.On("FetchDeploymentConfig", ctx, int64(31337)).Return(&models.DeploymentConfig{
			Network:  localhostNetwork(),
			Mappings: governanceMappings(),
		}, nil)

		loader := new(MockBroadcastLoader)
		loader.On("LoadLatest", ctx, "DeployLocal.s.sol", int64(31337)).Return(broadcast, "/tmp/run-latest.json", nil)

		submitter := new(MockSubmitter)

		uc := newRegisterUC(fetcher, loader, submitter, new(MockPrompter), testConfig())
		result, err := uc.Run(ctx, usecase.RegisterDeploymentsParams{DryRun: true})

		require.NoError(t, err)
		assert.True(t, result.DryRun)
		assert.Len(t, result.Deployments, 2)
		assert.Equal(t, 0, result.Outcome.Succeeded)
		submitter.AssertNotCalled(t, "SubmitRegistration", mock.Anything, mock.Anything)
	})

	t.Run("item failure does not abort remaining registrations", func(t *testing.T) {
		broadcast := &domain.BroadcastFile{
			Transactions: []domain.BroadcastTransaction{
				createTx("NexusToken", "0xddd1", "0xhash1"),
				createTx("NexusGovernor", "0xddd2", "0xhash2"),
				createTx("NexusTimelock", "0xddd3", "0xhash3"),
			},
		}

		fetcher := new(MockConfigFetcher)
		fetcher.On("FetchDeploymentConfig", ctx, int64(31337)).Return(&models.DeploymentConfig{
			Network:  localhostNetwork(),
			Mappings: governanceMappings(),
		}, nil)

		loader := new(MockBroadcastLoader)
		loader.On("LoadLatest", ctx, "DeployLocal.s.sol", int64(31337)).Return(broadcast, "/tmp/run-latest.json", nil)

		submitter := new(MockSubmitter)
		submitter.On("SubmitRegistration", ctx, mock.MatchedBy(func(r *models.ContractRegistration) bool {
			return r.ContractMappingID == "m-governor"
		})).Return(&domain.StatusError{StatusCode: 500, Body: "boom"})
		submitter.On("SubmitRegistration", ctx, mock.Anything).Return(nil)

		uc := newRegisterUC(fetcher, loader, submitter, new(MockPrompter), testConfig())
		result, err := uc.Run(ctx, usecase.RegisterDeploymentsParams{})

		require.NoError(t, err)
		assert.Equal(t, 2, result.Outcome.Succeeded)
		assert.Equal(t, 1, result.Outcome.Failed)
		// All three were attempted
		require.Len(t, result.Items, 3)
		assert.NoError(t, result.Items[0].Err)
		assert.Error(t, result.Items[1].Err)
		assert.NoError(t, result.Items[2].Err)
	})

	t.Run("declined confirmation aborts the run", func(t *testing.T) {
		broadcast := &domain.BroadcastFile{
			Transactions: []domain.BroadcastTransaction{
				createTx("NexusToken", "0xeee1", "0xhash1"),
			},
		}

		fetcher := new(MockConfigFetcher)
		fetcher.On("FetchDeploymentConfig", ctx, int64(11155111)).Return(&models.DeploymentConfig{
			Network: &models.NetworkConfig{
				ChainID:     11155111,
				NetworkName: "sepolia",
				DisplayName: "Sepolia",
			},
			Mappings: governanceMappings(),
		}, nil)

		loader := new(MockBroadcastLoader)
		loader.On("LoadLatest", ctx, "DeployLocal.s.sol", int64(11155111)).Return(broadcast, "/tmp/run-latest.json", nil)

		submitter := new(MockSubmitter)

		prompter := new(MockPrompter)
		prompter.On("Confirm", ctx, mock.Anything).Return(false, nil)

		cfg := testConfig()
		cfg.APIKey = "secret"

		uc := newRegisterUC(fetcher, loader, submitter, prompter, cfg)
		_, err := uc.Run(ctx, usecase.RegisterDeploymentsParams{ChainID: 11155111})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrAborted)
		submitter.AssertNotCalled(t, "SubmitRegistration", mock.Anything, mock.Anything)
	})

	t.Run("deployed_by carries the network default deployer", func(t *testing.T) {
		deployer := "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
		network := localhostNetwork()
		network.DefaultDeployer = &deployer

		broadcast := &domain.BroadcastFile{
			Transactions: []domain.BroadcastTransaction{
				createTx("NexusToken", "0xfff1", "0xhash1"),
			},
		}

		fetcher := new(MockConfigFetcher)
		fetcher.On("FetchDeploymentConfig", ctx, int64(31337)).Return(&models.DeploymentConfig{
			Network:  network,
			Mappings: governanceMappings(),
		}, nil)

		loader := new(MockBroadcastLoader)
		loader.On("LoadLatest", ctx, "DeployLocal.s.sol", int64(31337)).Return(broadcast, "/tmp/run-latest.json", nil)

		submitter := new(MockSubmitter)
		var got *models.ContractRegistration
		submitter.On("SubmitRegistration", ctx, mock.Anything).Run(func(args mock.Arguments) {
			got = args.Get(1).(*models.ContractRegistration)
		}).Return(nil)

		uc := newRegisterUC(fetcher, loader, submitter, new(MockPrompter), testConfig())
		_, err := uc.Run(ctx, usecase.RegisterDeploymentsParams{})

		require.NoError(t, err)
		require.NotNil(t, got)
		require.NotNil(t, got.DeployedBy)
		assert.Equal(t, deployer, *got.DeployedBy)
	})

	t.Run("empty default deployer is dropped from the payload", func(t *testing.T) {
		empty := ""
		network := localhostNetwork()
		network.DefaultDeployer = &empty

		broadcast := &domain.BroadcastFile{
			Transactions: []domain.BroadcastTransaction{
				createTx("NexusToken", "0xfff2", "0xhash1"),
			},
		}

		fetcher := new(MockConfigFetcher)
		fetcher.On("FetchDeploymentConfig", ctx, int64(31337)).Return(&models.DeploymentConfig{
			Network:  network,
			Mappings: governanceMappings(),
		}, nil)

		loader := new(MockBroadcastLoader)
		loader.On("LoadLatest", ctx, "DeployLocal.s.sol", int64(31337)).Return(broadcast, "/tmp/run-latest.json", nil)

		submitter := new(MockSubmitter)
		var got *models.ContractRegistration
		submitter.On("SubmitRegistration", ctx, mock.Anything).Run(func(args mock.Arguments) {
			got = args.Get(1).(*models.ContractRegistration)
		}).Return(nil)

		uc := newRegisterUC(fetcher, loader, submitter, new(MockPrompter), testConfig())
		_, err := uc.Run(ctx, usecase.RegisterDeploymentsParams{})

		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Nil(t, got.DeployedBy)

		data, marshalErr := json.Marshal(got)
		require.NoError(t, marshalErr)
		assert.NotContains(t, string(data), "deployed_by")
	})
}

func TestCrossReference(t *testing.T) {
	t.Run("ignores non-CREATE transactions entirely", func(t *testing.T) {
		broadcast := &domain.BroadcastFile{
			Transactions: []domain.BroadcastTransaction{
				{TransactionType: "CALL", ContractName: "NexusToken"},
				{TransactionType: "CREATE2", ContractName: "NexusToken"},
			},
		}

		deployments, skipped := usecase.CrossReference(broadcast, governanceMappings())
		assert.Empty(t, deployments)
		assert.Empty(t, skipped)
	})

	t.Run("suggests the closest mapping name for skips", func(t *testing.T) {
		// The deployed name is longer than its nearest mapping; the
		// mapping name matches inside it, not the other way around.
		broadcast := &domain.BroadcastFile{
			Transactions: []domain.BroadcastTransaction{
				createTx("NexusTokenV2", "0xaaa1", "0xhash1"),
			},
		}

		deployments, skipped := usecase.CrossReference(broadcast, governanceMappings())
		assert.Empty(t, deployments)
		require.Len(t, skipped, 1)
		assert.Equal(t, "NexusToken", skipped[0].Suggestion)
	})

	t.Run("suggests a longer mapping for a truncated name", func(t *testing.T) {
		broadcast := &domain.BroadcastFile{
			Transactions: []domain.BroadcastTransaction{
				createTx("NexusGov", "0xaaa2", "0xhash2"),
			},
		}

		_, skipped := usecase.CrossReference(broadcast, governanceMappings())
		require.Len(t, skipped, 1)
		assert.Equal(t, "NexusGovernor", skipped[0].Suggestion)
	})

	t.Run("picks the best mapping among several", func(t *testing.T) {
		broadcast := &domain.BroadcastFile{
			Transactions: []domain.BroadcastTransaction{
				createTx("NexusGovernorV2", "0xaaa3", "0xhash3"),
			},
		}

		_, skipped := usecase.CrossReference(broadcast, governanceMappings())
		require.Len(t, skipped, 1)
		assert.Equal(t, "NexusGovernor", skipped[0].Suggestion)
	})

	t.Run("no suggestion when nothing comes close", func(t *testing.T) {
		broadcast := &domain.BroadcastFile{
			Transactions: []domain.BroadcastTransaction{
				createTx("Staking", "0xaaa4", "0xhash4"),
			},
		}

		_, skipped := usecase.CrossReference(broadcast, governanceMappings())
		require.Len(t, skipped, 1)
		assert.Equal(t, "", skipped[0].Suggestion)
	})
}

// The registration payload must omit deployed_by entirely when the
// network has no default deployer; the backend treats absence as
// "unknown".
func TestContractRegistrationOmitsEmptyDeployer(t *testing.T) {
	reg := &models.ContractRegistration{
		ChainID:           31337,
		ContractMappingID: "m-token",
		Address:           "0xaaa1",
		DeploymentTxHash:  "0xhash1",
	}

	data, err := json.Marshal(reg)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "deployed_by")

	deployer := "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	reg.DeployedBy = &deployer
	data, err = json.Marshal(reg)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"deployed_by"`)
}

func TestRegisterDeploymentsFetchError(t *testing.T) {
	ctx := context.Background()

	fetcher := new(MockConfigFetcher)
	fetcher.On("FetchDeploymentConfig", ctx, int64(31337)).Return(nil, errors.New("connection refused"))

	uc := newRegisterUC(fetcher, new(MockBroadcastLoader), new(MockSubmitter), new(MockPrompter), testConfig())
	result, err := uc.Run(ctx, usecase.RegisterDeploymentsParams{})

	assert.Error(t, err)
	assert.Nil(t, result)
}
