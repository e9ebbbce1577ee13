// Package client implements the A2A Registry client core: credential
// management, the request pipeline with its typed error taxonomy, and the
// translation between internal Agent records and wire-format Agent Cards.
package client

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/A2ABaseAI/A2ARegistry/types"
)

// Version is the SDK version, reported in the User-Agent header.
const Version = "1.0.0"

// RegistryClient defines the interface for an A2A Registry client.
type RegistryClient interface {
	// Authentication
	Authenticate(ctx context.Context, scope ...string) error
	SetAPIKey(apiKey string)

	// Discovery
	GetHealth(ctx context.Context) (map[string]interface{}, error)
	ListAgents(ctx context.Context, page, limit int, publicOnly bool) (*types.AgentList, error)
	GetAgent(ctx context.Context, agentID string) (*types.Agent, error)
	GetAgentCard(ctx context.Context, agentID string) (*types.AgentCardSpec, error)
	SearchAgents(ctx context.Context, query string, filters map[string]interface{}, semantic bool, page, limit int) (*types.AgentList, error)
	GetRegistryStats(ctx context.Context) (map[string]interface{}, error)

	// Publishing
	PublishAgent(ctx context.Context, agent types.Agent, validate bool) (*types.Agent, error)
	UpdateAgent(ctx context.Context, agentID string, agent types.Agent) (*types.Agent, error)
	DeleteAgent(ctx context.Context, agentID string) error

	// API key lifecycle
	GenerateAPIKey(ctx context.Context, scopes []string, expiresDays *int) (*types.APIKey, error)
	GenerateAPIKeyAndAuthenticate(ctx context.Context, scopes []string, expiresDays *int) (*types.APIKey, error)
	ValidateAPIKey(ctx context.Context, apiKey string, requiredScopes []string) (*types.APIKeyValidation, error)
	RevokeAPIKey(ctx context.Context, keyID string) (bool, error)
	ListAPIKeys(ctx context.Context, activeOnly bool) ([]types.APIKeyInfo, error)

	// Configuration
	SetTimeout(timeout time.Duration)
	SetHTTPClient(httpClient *http.Client)
	GetRegistryURL() string

	// Logger configuration
	SetLogger(logger *zap.Logger)
	GetLogger() *zap.Logger
}

var _ RegistryClient = (*Client)(nil)

// Config holds configuration options for the registry client.
type Config struct {
	RegistryURL  string
	ClientID     string
	ClientSecret string
	APIKey       string
	Scope        string
	Timeout      time.Duration
	HTTPClient   *http.Client
	UserAgent    string
	Logger       *zap.Logger

	// Registerer enables Prometheus instrumentation of the request
	// pipeline when set; nil disables it.
	Registerer prometheus.Registerer
}

// DefaultConfig returns a default configuration for the given registry URL.
func DefaultConfig(registryURL string) *Config {
	return &Config{
		RegistryURL: registryURL,
		Scope:       "read write",
		Timeout:     30 * time.Second,
		UserAgent:   "a2a-registry-go/" + Version,
		Logger:      zap.NewNop(),
	}
}

// Client is the A2A Registry client. One instance is safe for concurrent
// use; the only shared mutable state is the credential held by its
// Authenticator.
type Client struct {
	config      *Config
	registryURL string
	httpClient  *http.Client
	logger      *zap.Logger
	auth        *Authenticator
	metrics     *metrics
}

// NewClient creates a new registry client with default configuration.
func NewClient(registryURL string) *Client {
	return NewClientWithConfig(DefaultConfig(registryURL))
}

// NewClientWithLogger creates a new registry client with a custom logger.
func NewClientWithLogger(registryURL string, logger *zap.Logger) *Client {
	config := DefaultConfig(registryURL)
	config.Logger = logger
	return NewClientWithConfig(config)
}

// NewClientWithConfig creates a new registry client with custom configuration.
func NewClientWithConfig(config *Config) *Client {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.Scope == "" {
		config.Scope = "read write"
	}
	if config.UserAgent == "" {
		config.UserAgent = "a2a-registry-go/" + Version
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var m *metrics
	if config.Registerer != nil {
		m = newMetrics(config.Registerer)
	}

	registryURL := strings.TrimSuffix(config.RegistryURL, "/")

	return &Client{
		config:      config,
		registryURL: registryURL,
		httpClient:  httpClient,
		logger:      logger,
		auth:        newAuthenticator(registryURL, config.ClientID, config.ClientSecret, config.APIKey, config.Scope, httpClient, logger),
		metrics:     m,
	}
}

// Authenticate performs the OAuth2 client-credentials exchange eagerly.
// Calling it is optional: every operation ensures a credential on demand.
func (c *Client) Authenticate(ctx context.Context, scope ...string) error {
	return c.auth.Authenticate(ctx, scope...)
}

// SetAPIKey switches the client to static API key authentication.
func (c *Client) SetAPIKey(apiKey string) {
	c.auth.SetAPIKey(apiKey)
}

// GetHealth retrieves the registry health status.
func (c *Client) GetHealth(ctx context.Context) (map[string]interface{}, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/health", nil, nil)
	if err != nil {
		return nil, err
	}

	var health map[string]interface{}
	if err := decodeResponse(body, &health, "health"); err != nil {
		return nil, err
	}
	return health, nil
}

// ListAgents lists agents from the registry. With publicOnly set it pages
// through the public catalog, otherwise through the agents the caller is
// entitled to see.
func (c *Client) ListAgents(ctx context.Context, page, limit int, publicOnly bool) (*types.AgentList, error) {
	endpoint := "/agents/public"
	if !publicOnly {
		endpoint = "/agents/entitled"
	}

	params := map[string]string{
		"page":  strconv.Itoa(page),
		"limit": strconv.Itoa(limit),
	}

	body, err := c.doRequest(ctx, http.MethodGet, endpoint, nil, params)
	if err != nil {
		return nil, err
	}

	var list types.AgentList
	if err := decodeResponse(body, &list, "agents"); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetAgent retrieves a specific agent by ID.
func (c *Client) GetAgent(ctx context.Context, agentID string) (*types.Agent, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/agents/"+agentID, nil, nil)
	if err != nil {
		return nil, err
	}

	var agent types.Agent
	if err := decodeResponse(body, &agent, "agent"); err != nil {
		return nil, err
	}
	return &agent, nil
}

// GetAgentCard retrieves an agent's wire-format card.
func (c *Client) GetAgentCard(ctx context.Context, agentID string) (*types.AgentCardSpec, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/agents/"+agentID+"/card", nil, nil)
	if err != nil {
		return nil, err
	}

	var card types.AgentCardSpec
	if err := decodeResponse(body, &card, "card"); err != nil {
		return nil, err
	}
	return &card, nil
}

// SearchAgents searches the registry.
func (c *Client) SearchAgents(ctx context.Context, query string, filters map[string]interface{}, semantic bool, page, limit int) (*types.AgentList, error) {
	search := types.SearchRequest{
		Query:    query,
		Filters:  filters,
		Semantic: semantic,
		Page:     page,
		Limit:    limit,
	}

	body, err := c.doRequest(ctx, http.MethodPost, "/agents/search", search, nil)
	if err != nil {
		return nil, err
	}

	var list types.AgentList
	if err := decodeResponse(body, &list, "search"); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetRegistryStats retrieves registry statistics.
func (c *Client) GetRegistryStats(ctx context.Context) (map[string]interface{}, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/stats", nil, nil)
	if err != nil {
		return nil, err
	}

	var stats map[string]interface{}
	if err := decodeResponse(body, &stats, "stats"); err != nil {
		return nil, err
	}
	return stats, nil
}

// PublishAgent publishes a new agent. With validate set the agent is
// checked locally first and all violations are reported in one
// ValidationError.
//
// The publish endpoint returns a minimal acknowledgement; when it carries
// an agentId the client immediately fetches the canonical record, so the
// returned Agent is always the server's authoritative representation.
// This two-step protocol is a fixed contract of the registry API.
func (c *Client) PublishAgent(ctx context.Context, agent types.Agent, validate bool) (*types.Agent, error) {
	if validate {
		if violations := ValidateAgent(agent); len(violations) > 0 {
			return nil, NewValidationError(
				"agent validation failed: "+strings.Join(violations, "; "),
				map[string]interface{}{"violations": violations},
			)
		}
	}

	request := types.PublishRequest{
		Public: agent.IsPublic,
		Card:   AgentToCardSpec(agent),
	}

	body, err := c.doRequest(ctx, http.MethodPost, "/agents/publish", request, nil)
	if err != nil {
		return nil, err
	}

	var ack types.PublishResponse
	if err := decodeResponse(body, &ack, "publish"); err != nil {
		return nil, err
	}

	if ack.AgentID != "" {
		c.logger.Debug("publish acknowledged, fetching canonical agent", zap.String("agent_id", ack.AgentID))
		return c.GetAgent(ctx, ack.AgentID)
	}

	// Some registries return the full agent directly.
	var published types.Agent
	if err := decodeResponse(body, &published, "agent"); err != nil {
		return nil, err
	}
	return &published, nil
}

// UpdateAgent updates an existing agent and returns the server's record.
func (c *Client) UpdateAgent(ctx context.Context, agentID string, agent types.Agent) (*types.Agent, error) {
	body, err := c.doRequest(ctx, http.MethodPut, "/agents/"+agentID, agent, nil)
	if err != nil {
		return nil, err
	}

	var updated types.Agent
	if err := decodeResponse(body, &updated, "agent"); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteAgent deletes an agent from the registry.
func (c *Client) DeleteAgent(ctx context.Context, agentID string) error {
	_, err := c.doRequest(ctx, http.MethodDelete, "/agents/"+agentID, nil, nil)
	return err
}

// GenerateAPIKey creates a new API key with the given scopes. The key
// material is only returned here, never again.
func (c *Client) GenerateAPIKey(ctx context.Context, scopes []string, expiresDays *int) (*types.APIKey, error) {
	payload := map[string]interface{}{"scopes": scopes}
	if expiresDays != nil {
		payload["expires_days"] = *expiresDays
	}

	body, err := c.doRequest(ctx, http.MethodPost, "/security/api-keys", payload, nil)
	if err != nil {
		return nil, err
	}

	var key types.APIKey
	if err := decodeResponse(body, &key, "API key"); err != nil {
		return nil, err
	}
	return &key, nil
}

// GenerateAPIKeyAndAuthenticate creates a new API key and switches the
// client to it for all later requests.
func (c *Client) GenerateAPIKeyAndAuthenticate(ctx context.Context, scopes []string, expiresDays *int) (*types.APIKey, error) {
	key, err := c.GenerateAPIKey(ctx, scopes, expiresDays)
	if err != nil {
		return nil, err
	}

	c.SetAPIKey(key.APIKey)
	return key, nil
}

// ValidateAPIKey checks an API key against the registry. An invalid or
// rejected key returns (nil, nil) rather than an error: absence is the
// expected answer for a check operation, not an exceptional condition.
func (c *Client) ValidateAPIKey(ctx context.Context, apiKey string, requiredScopes []string) (*types.APIKeyValidation, error) {
	payload := map[string]interface{}{"api_key": apiKey}
	if requiredScopes != nil {
		payload["required_scopes"] = requiredScopes
	}

	body, err := c.doRequest(ctx, http.MethodPost, "/security/api-keys/validate", payload, nil)
	if err != nil {
		var authErr *AuthenticationError
		if errors.As(err, &authErr) {
			return nil, nil
		}
		return nil, err
	}

	var result types.APIKeyValidation
	if err := decodeResponse(body, &result, "validation"); err != nil {
		return nil, err
	}
	return &result, nil
}

// RevokeAPIKey revokes an API key by its ID. A key the registry no longer
// knows returns (false, nil) rather than a NotFoundError.
func (c *Client) RevokeAPIKey(ctx context.Context, keyID string) (bool, error) {
	_, err := c.doRequest(ctx, http.MethodDelete, "/security/api-keys/"+keyID, nil, nil)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ListAPIKeys lists the caller's API keys.
func (c *Client) ListAPIKeys(ctx context.Context, activeOnly bool) ([]types.APIKeyInfo, error) {
	params := map[string]string{
		"active_only": strconv.FormatBool(activeOnly),
	}

	body, err := c.doRequest(ctx, http.MethodGet, "/security/api-keys", nil, params)
	if err != nil {
		return nil, err
	}

	var keys []types.APIKeyInfo
	if err := decodeResponse(body, &keys, "API keys"); err != nil {
		return nil, err
	}
	return keys, nil
}

// SetTimeout sets the per-call timeout for later requests.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.config.Timeout = timeout
	if c.httpClient != nil {
		c.httpClient.Timeout = timeout
	}
}

// SetHTTPClient allows customizing the HTTP client.
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
	c.config.HTTPClient = httpClient
	c.auth.httpClient = httpClient
}

// GetRegistryURL returns the registry base URL.
func (c *Client) GetRegistryURL() string {
	return c.registryURL
}

// SetLogger sets the logger for the client.
func (c *Client) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c.logger = logger
	c.config.Logger = logger
	c.auth.logger = logger
}

// GetLogger returns the current logger.
func (c *Client) GetLogger() *zap.Logger {
	return c.logger
}
