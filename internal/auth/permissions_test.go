package auth

import (
	"testing"

	"sakanly_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCanModifyProperty(t *testing.T) {
	agentID := "agent-1"
	property := &models.Property{OwnerID: "owner-1", AgentID: &agentID}

	tests := []struct {
		name   string
		caller Caller
		want   bool
	}{
		{"admin can always modify", Caller{ID: "whoever", Role: models.UserRoleAdmin}, true},
		{"owner can modify", Caller{ID: "owner-1", Role: models.UserRoleUser}, true},
		{"assigned agent can modify", Caller{ID: "agent-1", Role: models.UserRoleAgent}, true},
		{"other agent cannot", Caller{ID: "agent-2", Role: models.UserRoleAgent}, false},
		{"unrelated user cannot", Caller{ID: "user-2", Role: models.UserRoleUser}, false},
		{"user with agent id but user role cannot", Caller{ID: "agent-1", Role: models.UserRoleUser}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanModifyProperty(tt.caller, property))
		})
	}
}

func TestCanModifyPropertyWithoutAgent(t *testing.T) {
	property := &models.Property{OwnerID: "owner-1"}

	assert.False(t, CanModifyProperty(Caller{ID: "agent-1", Role: models.UserRoleAgent}, property))
	assert.True(t, CanModifyProperty(Caller{ID: "owner-1", Role: models.UserRoleUser}, property))
}

func TestCanModerate(t *testing.T) {
	assert.True(t, CanModerate(Caller{Role: models.UserRoleAdmin}))
	assert.False(t, CanModerate(Caller{Role: models.UserRoleAgent}))
	assert.False(t, CanModerate(Caller{Role: models.UserRoleUser}))
}
