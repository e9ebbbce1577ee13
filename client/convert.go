package client

import (
	"sort"

	"github.com/A2ABaseAI/A2ARegistry/types"
)

// placeholderURL fills the card's required url field when an agent has no
// location. Documented placeholder: the field is never omitted.
const placeholderURL = "https://example.com"

// defaultCredentialHeader is the parameter name assumed for schemes that
// do not name one.
const defaultCredentialHeader = "Authorization"

// AgentToCardSpec builds the wire-format Agent Card from an internal agent
// record.
//
// Capability flags start from all-false defaults and only explicitly set
// flags override them, so the published card always carries all four
// fields. The ordered auth scheme list becomes a map keyed by scheme type;
// when two schemes share a type the later entry wins, which is the accepted
// conversion policy. Credentials are always presented via header, so each
// scheme's location is forced to "header".
func AgentToCardSpec(agent types.Agent) types.AgentCardSpec {
	f := false
	capabilities := types.AgentCapabilities{
		Streaming:                         &f,
		PushNotifications:                 &f,
		StateTransitionHistory:            &f,
		SupportsAuthenticatedExtendedCard: &f,
	}
	if agent.Capabilities != nil {
		if agent.Capabilities.Streaming != nil {
			capabilities.Streaming = agent.Capabilities.Streaming
		}
		if agent.Capabilities.PushNotifications != nil {
			capabilities.PushNotifications = agent.Capabilities.PushNotifications
		}
		if agent.Capabilities.StateTransitionHistory != nil {
			capabilities.StateTransitionHistory = agent.Capabilities.StateTransitionHistory
		}
		if agent.Capabilities.SupportsAuthenticatedExtendedCard != nil {
			capabilities.SupportsAuthenticatedExtendedCard = agent.Capabilities.SupportsAuthenticatedExtendedCard
		}
	}

	schemes := make(types.SecuritySchemes, len(agent.AuthSchemes))
	for _, authScheme := range agent.AuthSchemes {
		scheme := authScheme
		location := "header"
		scheme.Location = &location
		if scheme.Name == nil {
			name := defaultCredentialHeader
			scheme.Name = &name
		}
		schemes[scheme.Type] = scheme
	}

	skills := agent.Skills
	if skills == nil {
		skills = []types.AgentSkill{}
	}

	iface := types.AgentInterface{
		PreferredTransport: types.TransportJSONRPC,
		DefaultInputModes:  []string{"text/plain"},
		DefaultOutputModes: []string{"text/plain"},
	}
	if agent.LocationURL != nil {
		iface.AdditionalInterfaces = []map[string]interface{}{
			{"transport": types.TransportHTTP.String(), "url": *agent.LocationURL},
		}
	}

	cardURL := placeholderURL
	if agent.LocationURL != nil {
		cardURL = *agent.LocationURL
	}

	card := types.AgentCardSpec{
		Name:               agent.Name,
		Description:        agent.Description,
		URL:                cardURL,
		Version:            agent.Version,
		Capabilities:       capabilities,
		SecuritySchemes:    schemes,
		Skills:             skills,
		Interface:          iface,
		DefaultInputModes:  iface.DefaultInputModes,
		DefaultOutputModes: iface.DefaultOutputModes,
	}

	if agent.Provider != "" {
		card.Provider = &types.AgentProvider{
			Organization: agent.Provider,
			URL:          cardURL,
		}
	}

	return card
}

// CardSpecToAgent hydrates an agent record from a wire-format card, used
// when interpreting server responses. Server responses are authoritative:
// fields the wire carries overwrite the existing record, fields absent on
// the wire leave previously known client-side values untouched. Passing
// nil for existing starts from an empty record.
func CardSpecToAgent(card types.AgentCardSpec, existing *types.Agent) types.Agent {
	var agent types.Agent
	if existing != nil {
		agent = *existing
	} else {
		agent.IsPublic = true
		agent.IsActive = true
	}

	agent.Name = card.Name
	agent.Description = card.Description
	agent.Version = card.Version

	if card.Provider != nil {
		agent.Provider = card.Provider.Organization
	}

	if card.URL != "" && card.URL != placeholderURL {
		url := card.URL
		agent.LocationURL = &url
	}

	if capabilitiesSet(card.Capabilities) {
		capabilities := card.Capabilities
		agent.Capabilities = &capabilities
	}

	if len(card.SecuritySchemes) > 0 {
		keys := make([]string, 0, len(card.SecuritySchemes))
		for key := range card.SecuritySchemes {
			keys = append(keys, key.String())
		}
		// The map has no inherent order; sort by type so hydration is
		// deterministic.
		sort.Strings(keys)

		schemes := make([]types.SecurityScheme, 0, len(keys))
		for _, key := range keys {
			schemes = append(schemes, card.SecuritySchemes[types.SecuritySchemeType(key)])
		}
		agent.AuthSchemes = schemes
	}

	if card.Skills != nil {
		agent.Skills = card.Skills
	}

	cardCopy := card
	agent.AgentCard = &cardCopy

	return agent
}

// capabilitiesSet reports whether any capability flag is explicitly set.
func capabilitiesSet(c types.AgentCapabilities) bool {
	return c.Streaming != nil || c.PushNotifications != nil ||
		c.StateTransitionHistory != nil || c.SupportsAuthenticatedExtendedCard != nil
}
