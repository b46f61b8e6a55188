package core

import (
	"errors"
	"sync"

	"github.com/dkeye/roomchat/internal/domain"
)

var ErrInvalidTransition = errors.New("invalid connection state transition")

type ConnState int32

const (
	StateConnecting ConnState = iota
	StateAuthenticated
	StateDisconnected
)

func (s ConnState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateAuthenticated:
		return "authenticated"
	case StateDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// Lifecycle is the per-connection state machine.
// Connecting -> Authenticated -> Disconnected, or Connecting -> Disconnected.
// Only an Authenticated connection exposes an identity, and it never changes.
type Lifecycle struct {
	mu       sync.RWMutex
	state    ConnState
	identity domain.Identity
}

func NewLifecycle() *Lifecycle {
	return &Lifecycle{state: StateConnecting}
}

func (l *Lifecycle) Authenticate(id domain.Identity) error {
	if id == "" {
		return ErrInvalidTransition
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != StateConnecting {
		return ErrInvalidTransition
	}
	l.state = StateAuthenticated
	l.identity = id
	return nil
}

func (l *Lifecycle) Identity() (domain.Identity, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.state != StateAuthenticated {
		return "", false
	}
	return l.identity, true
}

// Disconnect reports whether this call performed the transition.
func (l *Lifecycle) Disconnect() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state == StateDisconnected {
		return false
	}
	l.state = StateDisconnected
	return true
}

func (l *Lifecycle) State() ConnState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}
