package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/firedesk/timecard/internal/shared"
)

// TokenManager issues and parses the bearer tokens the API runs on.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager constructs a TokenManager with an HS256 secret.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

type claims struct {
	Name  string `json:"name"`
	Rank  string `json:"rank"`
	Admin bool   `json:"admin"`
	jwt.RegisteredClaims
}

// Issue signs a token for the given identity.
func (m *TokenManager) Issue(id shared.Identity) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Name:  id.Name,
		Rank:  id.Rank,
		Admin: id.Admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.EmployeeID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Parse validates a bearer token and returns the identity it carries.
func (m *TokenManager) Parse(tokenString string) (*shared.Identity, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("auth: unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("auth: parse token: %w", shared.ErrInvalidCredentials)
	}
	return &shared.Identity{
		EmployeeID: c.Subject,
		Name:       c.Name,
		Rank:       c.Rank,
		Admin:      c.Admin,
	}, nil
}
