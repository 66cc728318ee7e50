package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Scopes separate the two token audiences. A staff token never authorizes
// portal routes and a portal token never authorizes staff routes.
const (
	ScopeStaff  = "staff"
	ScopePortal = "portal"
)

const (
	staffTokenTTL  = 24 * time.Hour
	portalTokenTTL = 8 * time.Hour
)

type Claims struct {
	UserID       string `json:"userId,omitempty"`
	Email        string `json:"email,omitempty"`
	Role         string `json:"role,omitempty"`
	ClientID     string `json:"clientId,omitempty"`
	ClientUserID string `json:"clientUserId,omitempty"`
	Scope        string `json:"scope"`
	jwt.RegisteredClaims
}

func GenerateStaffToken(secret, userID, email, role string) (string, error) {
	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		Scope:  ScopeStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(staffTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func GeneratePortalToken(secret, clientUserID, clientID string) (string, error) {
	claims := Claims{
		ClientID:     clientID,
		ClientUserID: clientUserID,
		Scope:        ScopePortal,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(portalTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ValidateToken(secret, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}
	return claims, nil
}
