package types

import "fmt"

// AgentBuilder constructs Agent records with a fluent interface.
type AgentBuilder struct {
	agent Agent
}

// NewAgentBuilder creates a builder seeded with the required agent fields.
func NewAgentBuilder(name, description, version, provider string) *AgentBuilder {
	return &AgentBuilder{
		agent: Agent{
			Name:        name,
			Description: description,
			Version:     version,
			Provider:    provider,
			IsPublic:    true,
			IsActive:    true,
		},
	}
}

// WithTags sets the agent's tags.
func (b *AgentBuilder) WithTags(tags ...string) *AgentBuilder {
	b.agent.Tags = tags
	return b
}

// WithLocation sets the agent's endpoint URL and location type.
func (b *AgentBuilder) WithLocation(url, locationType string) *AgentBuilder {
	b.agent.LocationURL = &url
	b.agent.LocationType = &locationType
	return b
}

// WithCapabilities sets the agent's capability flags.
func (b *AgentBuilder) WithCapabilities(capabilities AgentCapabilities) *AgentBuilder {
	b.agent.Capabilities = &capabilities
	return b
}

// WithAuthSchemes sets the agent's authentication schemes.
func (b *AgentBuilder) WithAuthSchemes(schemes ...SecurityScheme) *AgentBuilder {
	b.agent.AuthSchemes = schemes
	return b
}

// WithTEEDetails sets the agent's Trusted Execution Environment details.
func (b *AgentBuilder) WithTEEDetails(tee AgentTEEDetails) *AgentBuilder {
	b.agent.TEEDetails = &tee
	return b
}

// WithSkills sets the agent's skills.
func (b *AgentBuilder) WithSkills(skills ...AgentSkill) *AgentBuilder {
	b.agent.Skills = skills
	return b
}

// WithAgentCard attaches a full agent card.
func (b *AgentBuilder) WithAgentCard(card AgentCardSpec) *AgentBuilder {
	b.agent.AgentCard = &card
	return b
}

// Public sets the agent's public visibility.
func (b *AgentBuilder) Public(isPublic bool) *AgentBuilder {
	b.agent.IsPublic = isPublic
	return b
}

// Active sets the agent's active status.
func (b *AgentBuilder) Active(isActive bool) *AgentBuilder {
	b.agent.IsActive = isActive
	return b
}

// Build returns the constructed Agent.
func (b *AgentBuilder) Build() Agent {
	return b.agent
}

// AgentCapabilitiesBuilder constructs AgentCapabilities values.
type AgentCapabilitiesBuilder struct {
	capabilities AgentCapabilities
}

// NewAgentCapabilitiesBuilder creates an empty capabilities builder; flags
// left unset stay "unspecified" rather than false.
func NewAgentCapabilitiesBuilder() *AgentCapabilitiesBuilder {
	return &AgentCapabilitiesBuilder{}
}

// Streaming sets the streaming capability flag.
func (b *AgentCapabilitiesBuilder) Streaming(enabled bool) *AgentCapabilitiesBuilder {
	b.capabilities.Streaming = &enabled
	return b
}

// PushNotifications sets the push notification capability flag.
func (b *AgentCapabilitiesBuilder) PushNotifications(enabled bool) *AgentCapabilitiesBuilder {
	b.capabilities.PushNotifications = &enabled
	return b
}

// StateTransitionHistory sets the state transition history capability flag.
func (b *AgentCapabilitiesBuilder) StateTransitionHistory(enabled bool) *AgentCapabilitiesBuilder {
	b.capabilities.StateTransitionHistory = &enabled
	return b
}

// SupportsAuthenticatedExtendedCard sets the extended card capability flag.
func (b *AgentCapabilitiesBuilder) SupportsAuthenticatedExtendedCard(enabled bool) *AgentCapabilitiesBuilder {
	b.capabilities.SupportsAuthenticatedExtendedCard = &enabled
	return b
}

// Build returns the constructed AgentCapabilities.
func (b *AgentCapabilitiesBuilder) Build() AgentCapabilities {
	return b.capabilities
}

// SecuritySchemeBuilder constructs SecurityScheme values.
type SecuritySchemeBuilder struct {
	scheme SecurityScheme
}

// NewSecuritySchemeBuilder creates a builder for the given scheme type.
func NewSecuritySchemeBuilder(schemeType SecuritySchemeType) *SecuritySchemeBuilder {
	return &SecuritySchemeBuilder{scheme: SecurityScheme{Type: schemeType}}
}

// Location sets where credentials are presented (header, query, body).
func (b *SecuritySchemeBuilder) Location(location string) *SecuritySchemeBuilder {
	b.scheme.Location = &location
	return b
}

// Name sets the parameter name carrying credentials.
func (b *SecuritySchemeBuilder) Name(name string) *SecuritySchemeBuilder {
	b.scheme.Name = &name
	return b
}

// Flow sets the OAuth2 flow type.
func (b *SecuritySchemeBuilder) Flow(flow string) *SecuritySchemeBuilder {
	b.scheme.Flow = &flow
	return b
}

// TokenURL sets the OAuth2 token endpoint.
func (b *SecuritySchemeBuilder) TokenURL(tokenURL string) *SecuritySchemeBuilder {
	b.scheme.TokenURL = &tokenURL
	return b
}

// Scopes sets the OAuth2 scopes.
func (b *SecuritySchemeBuilder) Scopes(scopes ...string) *SecuritySchemeBuilder {
	b.scheme.Scopes = scopes
	return b
}

// Credentials sets credentials for private cards.
func (b *SecuritySchemeBuilder) Credentials(credentials string) *SecuritySchemeBuilder {
	b.scheme.Credentials = &credentials
	return b
}

// Build returns the constructed SecurityScheme.
func (b *SecuritySchemeBuilder) Build() SecurityScheme {
	return b.scheme
}

// AgentSkillBuilder constructs AgentSkill values.
type AgentSkillBuilder struct {
	skill AgentSkill
}

// NewAgentSkillBuilder creates a builder seeded with the required skill fields.
func NewAgentSkillBuilder(id, name, description string, tags ...string) *AgentSkillBuilder {
	return &AgentSkillBuilder{
		skill: AgentSkill{ID: id, Name: name, Description: description, Tags: tags},
	}
}

// Examples sets example prompts the skill can execute.
func (b *AgentSkillBuilder) Examples(examples ...string) *AgentSkillBuilder {
	b.skill.Examples = examples
	return b
}

// InputModes sets the input MIME types the skill accepts.
func (b *AgentSkillBuilder) InputModes(modes ...string) *AgentSkillBuilder {
	b.skill.InputModes = modes
	return b
}

// OutputModes sets the output MIME types the skill produces.
func (b *AgentSkillBuilder) OutputModes(modes ...string) *AgentSkillBuilder {
	b.skill.OutputModes = modes
	return b
}

// Build returns the constructed AgentSkill.
func (b *AgentSkillBuilder) Build() AgentSkill {
	return b.skill
}

// AgentInterfaceBuilder constructs AgentInterface values.
type AgentInterfaceBuilder struct {
	iface AgentInterface
}

// NewAgentInterfaceBuilder creates a builder seeded with the required
// interface fields.
func NewAgentInterfaceBuilder(transport TransportProtocol, inputModes, outputModes []string) *AgentInterfaceBuilder {
	return &AgentInterfaceBuilder{
		iface: AgentInterface{
			PreferredTransport: transport,
			DefaultInputModes:  inputModes,
			DefaultOutputModes: outputModes,
		},
	}
}

// AdditionalInterface appends an additional transport descriptor.
func (b *AgentInterfaceBuilder) AdditionalInterface(transport TransportProtocol, url string) *AgentInterfaceBuilder {
	b.iface.AdditionalInterfaces = append(b.iface.AdditionalInterfaces, map[string]interface{}{
		"transport": transport.String(),
		"url":       url,
	})
	return b
}

// Build returns the constructed AgentInterface.
func (b *AgentInterfaceBuilder) Build() AgentInterface {
	return b.iface
}

// AgentCardSignatureBuilder constructs AgentCardSignature values.
type AgentCardSignatureBuilder struct {
	signature AgentCardSignature
}

// NewAgentCardSignatureBuilder creates an empty signature builder.
func NewAgentCardSignatureBuilder() *AgentCardSignatureBuilder {
	return &AgentCardSignatureBuilder{}
}

// Algorithm sets the signature algorithm (e.g. RS256, ES256).
func (b *AgentCardSignatureBuilder) Algorithm(algorithm string) *AgentCardSignatureBuilder {
	b.signature.Algorithm = &algorithm
	return b
}

// Signature sets the base64-encoded signature value.
func (b *AgentCardSignatureBuilder) Signature(signature string) *AgentCardSignatureBuilder {
	b.signature.Signature = &signature
	return b
}

// JWKSUrl sets the JWKS URL used for signature verification.
func (b *AgentCardSignatureBuilder) JWKSUrl(url string) *AgentCardSignatureBuilder {
	b.signature.JWKSUrl = &url
	return b
}

// Build returns the constructed AgentCardSignature.
func (b *AgentCardSignatureBuilder) Build() AgentCardSignature {
	return b.signature
}

// AgentTEEDetailsBuilder constructs AgentTEEDetails values.
type AgentTEEDetailsBuilder struct {
	tee AgentTEEDetails
}

// NewAgentTEEDetailsBuilder creates an empty TEE details builder.
func NewAgentTEEDetailsBuilder() *AgentTEEDetailsBuilder {
	return &AgentTEEDetailsBuilder{}
}

// Enabled sets whether the agent runs in a TEE.
func (b *AgentTEEDetailsBuilder) Enabled(enabled bool) *AgentTEEDetailsBuilder {
	b.tee.Enabled = enabled
	return b
}

// Provider sets the TEE provider.
func (b *AgentTEEDetailsBuilder) Provider(provider string) *AgentTEEDetailsBuilder {
	b.tee.Provider = &provider
	return b
}

// Attestation sets the attestation document.
func (b *AgentTEEDetailsBuilder) Attestation(attestation string) *AgentTEEDetailsBuilder {
	b.tee.Attestation = &attestation
	return b
}

// Build returns the constructed AgentTEEDetails.
func (b *AgentTEEDetailsBuilder) Build() AgentTEEDetails {
	return b.tee
}

// AgentCardSpecBuilder constructs full AgentCardSpec documents.
type AgentCardSpecBuilder struct {
	card         AgentCardSpec
	interfaceSet bool
}

// NewAgentCardSpecBuilder creates a builder seeded with the required core
// card fields.
func NewAgentCardSpecBuilder(name, description, url, version string) *AgentCardSpecBuilder {
	return &AgentCardSpecBuilder{
		card: AgentCardSpec{
			Name:            name,
			Description:     description,
			URL:             url,
			Version:         version,
			SecuritySchemes: SecuritySchemes{},
			Skills:          []AgentSkill{},
		},
	}
}

// WithProvider sets the card's provider.
func (b *AgentCardSpecBuilder) WithProvider(organization, url string) *AgentCardSpecBuilder {
	b.card.Provider = &AgentProvider{Organization: organization, URL: url}
	return b
}

// WithCapabilities sets the card's capability flags.
func (b *AgentCardSpecBuilder) WithCapabilities(capabilities AgentCapabilities) *AgentCardSpecBuilder {
	b.card.Capabilities = capabilities
	return b
}

// AddSecurityScheme adds a security scheme, keyed by its type. Adding a
// second scheme of the same type replaces the first.
func (b *AgentCardSpecBuilder) AddSecurityScheme(scheme SecurityScheme) *AgentCardSpecBuilder {
	b.card.SecuritySchemes[scheme.Type] = scheme
	return b
}

// AddSkill appends a skill to the card.
func (b *AgentCardSpecBuilder) AddSkill(skill AgentSkill) *AgentCardSpecBuilder {
	b.card.Skills = append(b.card.Skills, skill)
	return b
}

// WithInterface sets the card's transport interface.
func (b *AgentCardSpecBuilder) WithInterface(iface AgentInterface) *AgentCardSpecBuilder {
	b.card.Interface = iface
	b.interfaceSet = true
	return b
}

// WithDocumentationURL sets the card's documentation URL.
func (b *AgentCardSpecBuilder) WithDocumentationURL(url string) *AgentCardSpecBuilder {
	b.card.DocumentationURL = &url
	return b
}

// WithSignature sets the card's signature.
func (b *AgentCardSpecBuilder) WithSignature(signature AgentCardSignature) *AgentCardSpecBuilder {
	b.card.Signature = &signature
	return b
}

// Build returns the constructed AgentCardSpec. The transport interface is
// required; the top-level default mode lists are populated from it when
// not set explicitly.
func (b *AgentCardSpecBuilder) Build() (AgentCardSpec, error) {
	if !b.interfaceSet {
		return AgentCardSpec{}, fmt.Errorf("agent interface is required: use WithInterface")
	}

	if b.card.DefaultInputModes == nil && len(b.card.Interface.DefaultInputModes) > 0 {
		b.card.DefaultInputModes = append([]string(nil), b.card.Interface.DefaultInputModes...)
	}
	if b.card.DefaultOutputModes == nil && len(b.card.Interface.DefaultOutputModes) > 0 {
		b.card.DefaultOutputModes = append([]string(nil), b.card.Interface.DefaultOutputModes...)
	}

	return b.card, nil
}
