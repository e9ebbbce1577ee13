package types

import (
	"encoding/json"
	"time"
)

// SecuritySchemeType represents the authentication methods an agent's own
// endpoint can require, as defined by the A2A Agent Card specification.
type SecuritySchemeType string

// SecuritySchemeType enum values for the five supported authentication methods
const (
	SecuritySchemeAPIKey SecuritySchemeType = "apiKey"
	SecuritySchemeOAuth2 SecuritySchemeType = "oauth2"
	SecuritySchemeJWT    SecuritySchemeType = "jwt"
	SecuritySchemeMTLS   SecuritySchemeType = "mTLS"
	SecuritySchemeBearer SecuritySchemeType = "bearer"
)

// String returns the string representation of the SecuritySchemeType
func (t SecuritySchemeType) String() string {
	return string(t)
}

// IsValid checks if the SecuritySchemeType is one of the supported values
func (t SecuritySchemeType) IsValid() bool {
	switch t {
	case SecuritySchemeAPIKey, SecuritySchemeOAuth2, SecuritySchemeJWT, SecuritySchemeMTLS, SecuritySchemeBearer:
		return true
	default:
		return false
	}
}

// TransportProtocol represents the transport an agent interface speaks.
type TransportProtocol string

// TransportProtocol enum values
const (
	TransportJSONRPC TransportProtocol = "jsonrpc"
	TransportGRPC    TransportProtocol = "grpc"
	TransportHTTP    TransportProtocol = "http"
)

// String returns the string representation of the TransportProtocol
func (t TransportProtocol) String() string {
	return string(t)
}

// IsValid checks if the TransportProtocol is one of the supported values
func (t TransportProtocol) IsValid() bool {
	switch t {
	case TransportJSONRPC, TransportGRPC, TransportHTTP:
		return true
	default:
		return false
	}
}

// AgentProvider describes the organization serving the agent.
// Section 5.5.1 of the A2A Protocol specification.
type AgentProvider struct {
	Organization string `json:"organization"`
	URL          string `json:"url"`
}

// AgentCapabilities describes optional features the agent supports.
// Section 5.5.2 of the A2A Protocol specification.
//
// Each flag is tri-state: a nil pointer means "unspecified", which is
// distinct from an explicit false and is omitted on the wire.
type AgentCapabilities struct {
	Streaming                         *bool `json:"streaming,omitempty"`
	PushNotifications                 *bool `json:"pushNotifications,omitempty"`
	StateTransitionHistory            *bool `json:"stateTransitionHistory,omitempty"`
	SupportsAuthenticatedExtendedCard *bool `json:"supportsAuthenticatedExtendedCard,omitempty"`
}

// SecurityScheme describes one authentication requirement of an agent.
// Section 5.5.3 of the A2A Protocol specification.
//
// All fields besides Type are optional and type-dependent; no single
// scheme uses all of them.
type SecurityScheme struct {
	Type        SecuritySchemeType `json:"type"`
	Location    *string            `json:"location,omitempty"`
	Name        *string            `json:"name,omitempty"`
	Flow        *string            `json:"flow,omitempty"`
	TokenURL    *string            `json:"tokenUrl,omitempty"`
	Scopes      []string           `json:"scopes,omitempty"`
	Credentials *string            `json:"credentials,omitempty"`
}

// SecuritySchemes is the wire representation of an agent card's security
// requirements, keyed by scheme type so downstream consumers can index by
// type. Older registries emit a plain array instead; UnmarshalJSON accepts
// both forms, keying array entries by their type with last-write-wins.
type SecuritySchemes map[SecuritySchemeType]SecurityScheme

// UnmarshalJSON decodes either the map form or the legacy array form.
func (s *SecuritySchemes) UnmarshalJSON(data []byte) error {
	var asMap map[SecuritySchemeType]SecurityScheme
	if err := json.Unmarshal(data, &asMap); err == nil {
		*s = asMap
		return nil
	}

	var asList []SecurityScheme
	if err := json.Unmarshal(data, &asList); err != nil {
		return err
	}

	out := make(map[SecuritySchemeType]SecurityScheme, len(asList))
	for _, scheme := range asList {
		out[scheme.Type] = scheme
	}
	*s = out
	return nil
}

// AgentTEEDetails describes Trusted Execution Environment attestation.
type AgentTEEDetails struct {
	Enabled     bool    `json:"enabled"`
	Provider    *string `json:"provider,omitempty"`
	Attestation *string `json:"attestation,omitempty"`
}

// AgentSkill is a named capability unit the agent can perform.
// Section 5.5.4 of the A2A Protocol specification.
type AgentSkill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Examples    []string `json:"examples,omitempty"`
	InputModes  []string `json:"inputModes,omitempty"`
	OutputModes []string `json:"outputModes,omitempty"`
}

// AgentInterface describes transport and interaction capabilities.
// Section 5.5.5 of the A2A Protocol specification.
//
// AdditionalInterfaces entries are open maps (e.g. {"transport": "http",
// "url": "..."}) per the protocol schema.
type AgentInterface struct {
	PreferredTransport   TransportProtocol        `json:"preferredTransport"`
	DefaultInputModes    []string                 `json:"defaultInputModes"`
	DefaultOutputModes   []string                 `json:"defaultOutputModes"`
	AdditionalInterfaces []map[string]interface{} `json:"additionalInterfaces,omitempty"`
}

// AgentCardSignature carries digital signature information for a card.
// Section 5.5.6 of the A2A Protocol specification.
type AgentCardSignature struct {
	Algorithm *string `json:"algorithm,omitempty"`
	Signature *string `json:"signature,omitempty"`
	JWKSUrl   *string `json:"jwksUrl,omitempty"`
}

// AgentCardSpec is the wire-format Agent Card following Section 5.5 of the
// A2A Protocol specification. It is the document the registry stores and
// serves for agent discovery.
type AgentCardSpec struct {
	Name             string              `json:"name"`
	Description      string              `json:"description"`
	URL              string              `json:"url"`
	Version          string              `json:"version"`
	Capabilities     AgentCapabilities   `json:"capabilities"`
	SecuritySchemes  SecuritySchemes     `json:"securitySchemes"`
	Skills           []AgentSkill        `json:"skills"`
	Interface        AgentInterface      `json:"interface"`
	Provider         *AgentProvider      `json:"provider,omitempty"`
	DocumentationURL *string             `json:"documentationUrl,omitempty"`
	Signature        *AgentCardSignature `json:"signature,omitempty"`

	// ADK-compatible top-level duplicates of the interface mode lists.
	DefaultInputModes  []string `json:"defaultInputModes,omitempty"`
	DefaultOutputModes []string `json:"defaultOutputModes,omitempty"`
}

// Agent is the registry's client-facing agent record. ID and the
// timestamps are server-assigned; after a successful round trip the local
// copy is replaced with the server's response rather than mutated in place.
type Agent struct {
	ID           *string            `json:"id,omitempty"`
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	Version      string             `json:"version"`
	Provider     string             `json:"provider"`
	Tags         []string           `json:"tags,omitempty"`
	IsPublic     bool               `json:"is_public"`
	IsActive     bool               `json:"is_active"`
	LocationURL  *string            `json:"location_url,omitempty"`
	LocationType *string            `json:"location_type,omitempty"`
	Capabilities *AgentCapabilities `json:"capabilities,omitempty"`
	AuthSchemes  []SecurityScheme   `json:"auth_schemes,omitempty"`
	TEEDetails   *AgentTEEDetails   `json:"tee_details,omitempty"`
	Skills       []AgentSkill       `json:"skills,omitempty"`
	AgentCard    *AgentCardSpec     `json:"agent_card,omitempty"`
	ClientID     *string            `json:"client_id,omitempty"`
	CreatedAt    *time.Time         `json:"created_at,omitempty"`
	UpdatedAt    *time.Time         `json:"updated_at,omitempty"`
}

// AgentList is the paged response shape shared by the list and search
// endpoints.
type AgentList struct {
	Agents []Agent `json:"agents"`
	Total  int     `json:"total"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}

// SearchRequest is the body of POST /agents/search.
type SearchRequest struct {
	Query    string                 `json:"query"`
	Filters  map[string]interface{} `json:"filters,omitempty"`
	Semantic bool                   `json:"semantic"`
	Page     int                    `json:"page"`
	Limit    int                    `json:"limit"`
}

// PublishRequest is the body of POST /agents/publish.
type PublishRequest struct {
	Public bool          `json:"public"`
	Card   AgentCardSpec `json:"card"`
}

// PublishResponse is the minimal acknowledgement the publish endpoint
// returns; the canonical agent must be fetched separately.
type PublishResponse struct {
	AgentID string `json:"agentId"`
}

// APIKey is the response of POST /security/api-keys. The key material is
// only ever returned at creation time.
type APIKey struct {
	APIKey    string     `json:"api_key"`
	KeyID     string     `json:"key_id"`
	Scopes    []string   `json:"scopes"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// APIKeyInfo describes an existing API key without its key material.
type APIKeyInfo struct {
	KeyID      string     `json:"key_id"`
	Scopes     []string   `json:"scopes"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
}

// APIKeyValidation is the result of POST /security/api-keys/validate for a
// key the server accepts.
type APIKeyValidation struct {
	Valid    bool     `json:"valid"`
	KeyID    *string  `json:"key_id,omitempty"`
	ClientID *string  `json:"client_id,omitempty"`
	Scopes   []string `json:"scopes,omitempty"`
}

// Bool returns a pointer to the given bool, for populating tri-state
// capability flags and other optional fields.
func Bool(v bool) *bool {
	return &v
}

// String returns a pointer to the given string.
func String(v string) *string {
	return &v
}
