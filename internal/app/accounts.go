package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dkeye/roomchat/internal/core"
	"github.com/dkeye/roomchat/internal/domain"
	"github.com/rs/zerolog/log"
)

var ErrBadCredentials = errors.New("invalid username or password")

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

type TokenIssuer interface {
	Issue(username string) (string, error)
}

// Accounts handles registration and login. It sits outside the real-time
// core and only produces the credential the core later resolves.
type Accounts struct {
	Users   core.UserStore
	Hasher  PasswordHasher
	Tokens  TokenIssuer
	Timeout time.Duration
	Now     func() time.Time
}

func (a *Accounts) Register(ctx context.Context, username, email, password string) (*domain.UserRecord, error) {
	if len(password) < domain.MinPasswordLen {
		return nil, fmt.Errorf("%w: password too short", domain.ErrValidation)
	}
	hash, err := a.Hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user, err := domain.NewUserRecord(username, email, hash, a.now())
	if err != nil {
		return nil, err
	}
	ctx, cancel := a.ctx(ctx)
	defer cancel()
	if err := a.Users.SaveUser(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: save user: %v", domain.ErrPersistence, err)
	}
	log.Info().Str("module", "app.accounts").Str("user", username).Msg("registered")
	return user, nil
}

// Login returns a signed access token for valid credentials.
func (a *Accounts) Login(ctx context.Context, username, password string) (string, error) {
	ctx, cancel := a.ctx(ctx)
	defer cancel()
	user, err := a.Users.FindUser(ctx, username)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "", ErrBadCredentials
	case err != nil:
		return "", fmt.Errorf("%w: find user: %v", domain.ErrPersistence, err)
	}
	if !a.Hasher.Verify(password, user.PasswordHash) {
		return "", ErrBadCredentials
	}
	token, err := a.Tokens.Issue(user.Username)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	log.Info().Str("module", "app.accounts").Str("user", username).Msg("logged in")
	return token, nil
}

func (a *Accounts) ctx(parent context.Context) (context.Context, context.CancelFunc) {
	if a.Timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, a.Timeout)
}

func (a *Accounts) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}
