package auth

import "sakanly_backend/internal/models"

// Caller identifies the authenticated user for capability checks.
type Caller struct {
	ID   string
	Role models.UserRole
}

func (c Caller) IsAdmin() bool {
	return c.Role == models.UserRoleAdmin
}

func (c Caller) IsAgent() bool {
	return c.Role == models.UserRoleAgent
}

// CanModifyProperty allows admins, the resource owner, and an agent assigned
// to or owning the property to update or delete it.
func CanModifyProperty(caller Caller, p *models.Property) bool {
	if caller.IsAdmin() {
		return true
	}
	if caller.ID == p.OwnerID {
		return true
	}
	if caller.IsAgent() && p.AgentID != nil && caller.ID == *p.AgentID {
		return true
	}
	return false
}

// CanModerate gates the pending/approve/deny surface.
func CanModerate(caller Caller) bool {
	return caller.IsAdmin()
}
