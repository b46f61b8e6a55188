// Package auth issues and resolves the bearer tokens that identify chat users.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dkeye/roomchat/internal/core"
	"github.com/dkeye/roomchat/internal/domain"
)

var (
	errExpired   = errors.New("token has expired")
	errMalformed = errors.New("malformed token")
)

// TokenConfig holds JWT configuration.
type TokenConfig struct {
	SecretKey      string
	Issuer         string
	AccessTokenTTL time.Duration
}

// DefaultTokenConfig returns a configuration suitable for local development only.
func DefaultTokenConfig() TokenConfig {
	return TokenConfig{
		SecretKey:      "change-me",
		Issuer:         "roomchat",
		AccessTokenTTL: 24 * time.Hour,
	}
}

// TokenManager issues access tokens whose subject is the username and
// resolves them back into an identity.
type TokenManager struct {
	config TokenConfig
	now    func() time.Time
}

var _ core.IdentityResolver = (*TokenManager)(nil)

func NewTokenManager(config TokenConfig) *TokenManager {
	return &TokenManager{config: config, now: time.Now}
}

// Issue signs an HS256 access token for username.
func (m *TokenManager) Issue(username string) (string, error) {
	now := m.now()
	claims := jwt.RegisteredClaims{
		Issuer:    m.config.Issuer,
		Subject:   username,
		ExpiresAt: jwt.NewNumericDate(now.Add(m.config.AccessTokenTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.config.SecretKey))
}

// Resolve verifies signature and expiry and returns the subject.
// Empty input yields domain.ErrAuthMissing; anything else that fails yields
// an error wrapping domain.ErrAuthInvalid.
func (m *TokenManager) Resolve(credential string) (domain.Identity, error) {
	if credential == "" {
		return "", domain.ErrAuthMissing
	}
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(credential, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(m.config.SecretKey), nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%w: %w", domain.ErrAuthInvalid, errExpired)
		}
		return "", fmt.Errorf("%w: %w", domain.ErrAuthInvalid, err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", fmt.Errorf("%w: %w", domain.ErrAuthInvalid, errMalformed)
	}
	if m.config.Issuer != "" && claims.Issuer != m.config.Issuer {
		return "", fmt.Errorf("%w: unexpected issuer %q", domain.ErrAuthInvalid, claims.Issuer)
	}
	return domain.Identity(claims.Subject), nil
}

// TTL returns the access token lifetime in seconds.
func (m *TokenManager) TTL() int64 {
	return int64(m.config.AccessTokenTTL.Seconds())
}
