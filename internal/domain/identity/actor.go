package identity

import "github.com/google/uuid"

// Role represents the access level of a caller
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// IsValid checks if the role is a known Role
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// Actor identifies the authenticated caller of an operation.
// Authentication itself happens outside this core; the actor arrives
// already verified (JWT claims at the HTTP boundary).
type Actor struct {
	UserID uuid.UUID
	Role   Role
}

// NewActor creates an actor with the given identity and role
func NewActor(userID uuid.UUID, role Role) Actor {
	return Actor{UserID: userID, Role: role}
}

// IsAdmin returns true if the actor holds the ADMIN role
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Owns returns true if the actor is the owner of the given resource
func (a Actor) Owns(ownerID uuid.UUID) bool {
	return a.UserID == ownerID
}

// CanAccess returns true if the actor owns the resource or is privileged
func (a Actor) CanAccess(ownerID uuid.UUID) bool {
	return a.IsAdmin() || a.Owns(ownerID)
}
