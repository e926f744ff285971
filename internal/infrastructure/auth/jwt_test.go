package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/infrastructure/config"
)

const testSecret = "test-secret-key-for-jwt-validation"

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{Secret: testSecret, Issuer: "storefront"})
}

func signToken(t *testing.T, claims Claims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func validClaims(userID uuid.UUID, role string) Claims {
	now := time.Now()
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "storefront",
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(15 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID.String(),
		Role:   role,
	}
}

func TestJWTService_ValidateToken_User(t *testing.T) {
	service := newTestService()
	userID := uuid.New()

	actor, err := service.ValidateToken(signToken(t, validClaims(userID, "USER"), testSecret))

	require.NoError(t, err)
	assert.Equal(t, userID, actor.UserID)
	assert.Equal(t, identity.RoleUser, actor.Role)
	assert.False(t, actor.IsAdmin())
}

func TestJWTService_ValidateToken_Admin(t *testing.T) {
	service := newTestService()

	actor, err := service.ValidateToken(signToken(t, validClaims(uuid.New(), "ADMIN"), testSecret))

	require.NoError(t, err)
	assert.True(t, actor.IsAdmin())
}

func TestJWTService_ValidateToken_MissingRoleDefaultsToUser(t *testing.T) {
	service := newTestService()

	actor, err := service.ValidateToken(signToken(t, validClaims(uuid.New(), ""), testSecret))

	require.NoError(t, err)
	assert.Equal(t, identity.RoleUser, actor.Role)
}

func TestJWTService_ValidateToken_UnknownRole(t *testing.T) {
	service := newTestService()

	_, err := service.ValidateToken(signToken(t, validClaims(uuid.New(), "SUPERUSER"), testSecret))

	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestJWTService_ValidateToken_Expired(t *testing.T) {
	service := newTestService()
	claims := validClaims(uuid.New(), "USER")
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	_, err := service.ValidateToken(signToken(t, claims, testSecret))

	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_ValidateToken_WrongSecret(t *testing.T) {
	service := newTestService()

	_, err := service.ValidateToken(signToken(t, validClaims(uuid.New(), "USER"), "some-other-secret"))

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_ValidateToken_MissingUserID(t *testing.T) {
	service := newTestService()
	claims := validClaims(uuid.New(), "USER")
	claims.UserID = ""

	_, err := service.ValidateToken(signToken(t, claims, testSecret))

	assert.ErrorIs(t, err, ErrMissingUserID)
}

func TestJWTService_ValidateToken_MalformedUserID(t *testing.T) {
	service := newTestService()
	claims := validClaims(uuid.New(), "USER")
	claims.UserID = "not-a-uuid"

	_, err := service.ValidateToken(signToken(t, claims, testSecret))

	assert.ErrorIs(t, err, ErrInvalidClaims)
}

func TestJWTService_ValidateToken_Garbage(t *testing.T) {
	service := newTestService()

	_, err := service.ValidateToken("not.a.token")

	assert.ErrorIs(t, err, ErrInvalidToken)
}
