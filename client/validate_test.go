package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/A2ABaseAI/A2ARegistry/types"
)

func TestValidateAgent(t *testing.T) {
	tests := []struct {
		name     string
		agent    types.Agent
		expected []string
	}{
		{
			name:     "valid agent passes",
			agent:    testAgent(),
			expected: nil,
		},
		{
			name: "missing name reported",
			agent: types.Agent{
				Description: "d",
				Version:     "1.0.0",
				Provider:    "p",
			},
			expected: []string{"agent name is required"},
		},
		{
			name:  "all missing fields reported in order",
			agent: types.Agent{},
			expected: []string{
				"agent name is required",
				"agent description is required",
				"agent version is required",
				"agent provider is required",
			},
		},
		{
			name: "auth scheme without type",
			agent: func() types.Agent {
				agent := testAgent()
				agent.AuthSchemes = []types.SecurityScheme{{}}
				return agent
			}(),
			expected: []string{"auth scheme 0 missing required field: type"},
		},
		{
			name: "auth scheme with unknown type",
			agent: func() types.Agent {
				agent := testAgent()
				agent.AuthSchemes = []types.SecurityScheme{
					{Type: types.SecuritySchemeOAuth2},
					{Type: "basic"},
				}
				return agent
			}(),
			expected: []string{"auth scheme 1 has invalid type: basic"},
		},
		{
			name: "nested card identity fields checked",
			agent: func() types.Agent {
				agent := testAgent()
				agent.AgentCard = &types.AgentCardSpec{Name: "card"}
				return agent
			}(),
			expected: []string{
				"agent card description is required",
				"agent card version is required",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := ValidateAgent(tt.agent)
			assert.Equal(t, tt.expected, violations)
		})
	}
}

func TestValidateAgentReportsAllProblemsAtOnce(t *testing.T) {
	agent := types.Agent{
		Name:        "",
		Description: "d",
		Version:     "1.0.0",
		Provider:    "p",
		AuthSchemes: []types.SecurityScheme{{Type: "basic"}},
	}

	violations := ValidateAgent(agent)
	require.Len(t, violations, 2)
	assert.Contains(t, violations[0], "name is required")
	assert.Contains(t, violations[1], "invalid type")
}
