package client

import (
	"fmt"

	"github.com/A2ABaseAI/A2ARegistry/types"
)

// ValidateAgent runs the pre-publish structural checks over an agent and
// returns every violation as a human-readable message, in check order, so
// a caller can surface all problems at once. An empty slice means the
// agent is valid.
func ValidateAgent(agent types.Agent) []string {
	var violations []string

	if agent.Name == "" {
		violations = append(violations, "agent name is required")
	}
	if agent.Description == "" {
		violations = append(violations, "agent description is required")
	}
	if agent.Version == "" {
		violations = append(violations, "agent version is required")
	}
	if agent.Provider == "" {
		violations = append(violations, "agent provider is required")
	}

	for i, scheme := range agent.AuthSchemes {
		if scheme.Type == "" {
			violations = append(violations, fmt.Sprintf("auth scheme %d missing required field: type", i))
			continue
		}
		if !scheme.Type.IsValid() {
			violations = append(violations, fmt.Sprintf("auth scheme %d has invalid type: %s", i, scheme.Type))
		}
	}

	// Nested card checks cover the card's own identity fields only, not
	// its skills.
	if agent.AgentCard != nil {
		if agent.AgentCard.Name == "" {
			violations = append(violations, "agent card name is required")
		}
		if agent.AgentCard.Description == "" {
			violations = append(violations, "agent card description is required")
		}
		if agent.AgentCard.Version == "" {
			violations = append(violations, "agent card version is required")
		}
	}

	return violations
}
