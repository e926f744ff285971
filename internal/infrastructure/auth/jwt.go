package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/infrastructure/config"
)

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrMissingUserID    = errors.New("missing user_id in claims")
	ErrInvalidRole      = errors.New("invalid role in claims")
)

// Claims represents the JWT claims this service understands. Tokens are
// issued by the identity provider; this service only verifies signature
// and expiry and maps the claims to an Actor.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// JWTService validates bearer tokens
type JWTService struct {
	secret []byte
	issuer string
}

// NewJWTService creates a new JWT validation service
func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
	}
}

// ValidateToken validates a token string and returns the actor it
// identifies. A token without a role claim is treated as a regular user.
func (s *JWTService) ValidateToken(tokenString string) (identity.Actor, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return identity.Actor{}, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return identity.Actor{}, ErrTokenNotYetValid
		}
		return identity.Actor{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return identity.Actor{}, ErrInvalidClaims
	}

	if claims.UserID == "" {
		return identity.Actor{}, ErrMissingUserID
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return identity.Actor{}, ErrInvalidClaims
	}

	role := identity.Role(claims.Role)
	if claims.Role == "" {
		role = identity.RoleUser
	}
	if !role.IsValid() {
		return identity.Actor{}, ErrInvalidRole
	}

	return identity.NewActor(userID, role), nil
}
