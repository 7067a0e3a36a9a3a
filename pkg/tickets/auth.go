package tickets

import "slices"

// Capability is a level of access that a command requires.
type Capability int

const (
	// CapabilityNone is granted to everyone.
	CapabilityNone Capability = iota

	// CapabilityStaff is granted to holders of the configured staff role.
	CapabilityStaff

	// CapabilityAdmin is granted to holders of the configured admin role.
	CapabilityAdmin
)

// String implements the fmt.Stringer interface.
func (c Capability) String() string {
	switch c {
	case CapabilityNone:
		return "none"
	case CapabilityStaff:
		return "staff"
	case CapabilityAdmin:
		return "admin"
	}
	return "unknown"
}

// Actor is the user performing an operation, as seen in the guild the operation happens in.
type Actor struct {
	// UserID is the ID of the user.
	UserID string

	// Roles are the IDs of the roles that the user holds in the guild.
	Roles []string
}

// HasRole reports whether the actor holds the role.
func (a Actor) HasRole(roleID string) bool {
	return roleID != "" && slices.Contains(a.Roles, roleID)
}

// Authorize returns ErrForbidden unless the actor holds the role that grants the capability.
// Capabilities are independent: holding the admin role does not grant staff access.
func (m *Manager) Authorize(actor Actor, c Capability) error {
	switch c {
	case CapabilityNone:
		return nil
	case CapabilityStaff:
		if actor.HasRole(m.staffRoleID) {
			return nil
		}
	case CapabilityAdmin:
		if actor.HasRole(m.adminRoleID) {
			return nil
		}
	}
	return ErrForbidden
}
