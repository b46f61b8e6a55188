package core

import "github.com/dkeye/roomchat/internal/domain"

// SessionID identifies one live connection.
type SessionID string

// MemberSession binds domain.Member and its transport endpoint.
// This is what a room stores and fans out to.
type MemberSession interface {
	Meta() *domain.Member
	Signal() SignalConnection
}

// IdentityResolver turns a connect-time credential into an identity.
type IdentityResolver interface {
	Resolve(credential string) (domain.Identity, error)
}
