package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleUser.IsValid())
	assert.True(t, RoleAdmin.IsValid())
	assert.False(t, Role("SUPERUSER").IsValid())
	assert.False(t, Role("").IsValid())
}

func TestActor_CanAccess(t *testing.T) {
	ownerID := uuid.New()
	otherID := uuid.New()

	owner := NewActor(ownerID, RoleUser)
	stranger := NewActor(otherID, RoleUser)
	admin := NewActor(otherID, RoleAdmin)

	assert.True(t, owner.CanAccess(ownerID))
	assert.False(t, stranger.CanAccess(ownerID))
	assert.True(t, admin.CanAccess(ownerID))
	assert.True(t, admin.IsAdmin())
	assert.False(t, owner.IsAdmin())
}
