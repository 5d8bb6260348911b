package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long an issued session token stays valid.
const TokenTTL = 7 * 24 * time.Hour

// Identity is the caller identity embedded in a session token.
type Identity struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}

// ActorKey returns the interaction key for an authenticated user.
func (i Identity) ActorKey() string {
	return "user:" + i.UserID
}

type claims struct {
	Identity
	jwt.RegisteredClaims
}

// TokenManager signs and verifies HS256 session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager returns a TokenManager. An empty secret is rejected so a
// missing configuration value can never sign tokens with a guessable key.
func NewTokenManager(secret string) (*TokenManager, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("auth: signing secret is required")
	}
	return &TokenManager{secret: []byte(secret), ttl: TokenTTL, now: time.Now}, nil
}

// WithClock overrides the time source, used by tests to move past expiry.
func (m *TokenManager) WithClock(now func() time.Time) *TokenManager {
	if now != nil {
		m.now = now
	}
	return m
}

// Issue signs a token for identity that expires TokenTTL from now.
func (m *TokenManager) Issue(identity Identity) (string, error) {
	issuedAt := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Identity: identity,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(m.ttl)),
		},
	})
	return token.SignedString(m.secret)
}

// Verify checks signature and expiry. Any failure yields ok == false.
func (m *TokenManager) Verify(raw string) (Identity, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Identity{}, false
	}

	var parsed claims
	token, err := jwt.ParseWithClaims(raw, &parsed, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return Identity{}, false
	}
	if parsed.UserID == "" {
		return Identity{}, false
	}
	return parsed.Identity, true
}
