// Package domain contains entities without transport or storage logic, just meta-data
package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	MinUsernameLen = 3
	MaxUsernameLen = 30
	MinPasswordLen = 6
)

// Identity is the username a connection authenticated as.
type Identity string

type UserRecord struct {
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUserRecord is a tiny helper to avoid ad-hoc struct literals in adapters.
// Accounts start inactive; activation is owned by whatever verification flow sits in front.
func NewUserRecord(username, email, passwordHash string, now time.Time) (*UserRecord, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("%w: email empty", ErrValidation)
	}
	return &UserRecord{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now.UTC(),
	}, nil
}

func ValidateUsername(username string) error {
	switch {
	case username == "":
		return fmt.Errorf("%w: username empty", ErrValidation)
	case len(username) < MinUsernameLen:
		return fmt.Errorf("%w: username too short", ErrValidation)
	case len(username) > MaxUsernameLen:
		return fmt.Errorf("%w: username too long", ErrValidation)
	}
	return nil
}
