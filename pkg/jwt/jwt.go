package jwt

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by session tokens. UserID is the identity-provider account
// id of the caller (e.g. "user_2x..."); posts are attributed to it.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Manager verifies session tokens. Tokens are minted by the identity
// provider's session layer; this service never issues them.
type Manager struct {
	secret string
}

// NewManager creates new JWT manager
func NewManager(secret string) *Manager {
	return &Manager{secret: secret}
}

// ValidateToken validates and parses token
func (m *Manager) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	// Fall back to the registered subject when user_id is not an explicit
	// claim, which is how provider-minted tokens carry the account id.
	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}

	return claims, nil
}
