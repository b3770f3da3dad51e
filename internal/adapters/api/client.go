package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/colemanwhaylon/nexus-protocol/internal/domain"
	cfg "github.com/colemanwhaylon/nexus-protocol/internal/domain/config"
	"github.com/colemanwhaylon/nexus-protocol/internal/domain/models"
)

// requestTimeout bounds every backend call. A slow backend is treated
// the same as an unreachable one at the call site; neither is retried.
const requestTimeout = 10 * time.Second

// Client is the narrow HTTP client for the backend's contract API. It
// implements the ConfigFetcher, RegistrationSubmitter, NetworkLister,
// MappingLister, and ContractDirectory ports.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *slog.Logger
}

// NewClient creates a backend API client from the runtime configuration.
func NewClient(rc *cfg.RuntimeConfig, log *slog.Logger) *Client {
	timeout := rc.Timeout
	if timeout <= 0 {
		timeout = requestTimeout
	}
	return &Client{
		baseURL: rc.APIBaseURL,
		apiKey:  rc.APIKey,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// envelope is the backend's uniform response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// FetchDeploymentConfig fetches the network config and contract mappings
// for a chain.
func (c *Client) FetchDeploymentConfig(ctx context.Context, chainID int64) (*models.DeploymentConfig, error) {
	var config models.DeploymentConfig
	path := fmt.Sprintf("/api/v1/contracts/config/%d", chainID)
	if err := c.get(ctx, path, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// SubmitRegistration registers one deployed contract.
func (c *Client) SubmitRegistration(ctx context.Context, reg *models.ContractRegistration) error {
	return c.post(ctx, "/api/v1/contracts", reg, nil)
}

// ListNetworks returns the backend's active networks.
func (c *Client) ListNetworks(ctx context.Context) ([]*models.NetworkConfig, error) {
	var data struct {
		Networks []*models.NetworkConfig `json:"networks"`
		Total    int                     `json:"total"`
	}
	if err := c.get(ctx, "/api/v1/networks", &data); err != nil {
		return nil, err
	}
	return data.Networks, nil
}

// ListMappings returns all contract name mappings.
func (c *Client) ListMappings(ctx context.Context) ([]*models.ContractMapping, error) {
	var data struct {
		Mappings []*models.ContractMapping `json:"mappings"`
		Total    int                       `json:"total"`
	}
	if err := c.get(ctx, "/api/v1/contracts/mappings", &data); err != nil {
		return nil, err
	}
	return data.Mappings, nil
}

// ListContracts returns the registered contract addresses for a chain.
func (c *Client) ListContracts(ctx context.Context, chainID int64) ([]*models.ContractAddress, error) {
	var data struct {
		Contracts []*models.ContractAddress `json:"contracts"`
		Total     int                       `json:"total"`
	}
	if err := c.get(ctx, fmt.Sprintf("/api/v1/contracts/%d", chainID), &data); err != nil {
		return nil, err
	}
	return data.Contracts, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	return c.do(req, out)
}

// do performs the request and maps failures onto the domain error
// taxonomy: timeouts, connectivity failures, non-success statuses, and
// application-level error flags each surface distinguishably.
func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	c.log.Debug("backend request", "method", req.Method, "url", req.URL.String())

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return fmt.Errorf("%s %s: %w", req.Method, req.URL, domain.ErrTimeout)
		}
		return fmt.Errorf("%s %s: %w (is the backend running?)", req.Method, req.URL, domain.ErrConnectivity)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &domain.StatusError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if !env.Success {
		return &domain.APIError{Message: env.Error}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return nil
}

func isTimeout(err error) bool {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return true
	}
	return errors.Is(err, os.ErrDeadlineExceeded) || errors.Is(err, context.DeadlineExceeded)
}
