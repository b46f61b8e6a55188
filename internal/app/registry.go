package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dkeye/roomchat/internal/core"
	"github.com/dkeye/roomchat/internal/domain"
	"github.com/rs/zerolog/log"
)

var ErrAlreadyRegistered = errors.New("session already registered")

type sessionEntry struct {
	Lifecycle *core.Lifecycle
	Conn      core.SignalConnection
	Cancel    context.CancelFunc
	Since     time.Time
}

// Registry is the connection registry: live session id -> authenticated
// identity and transport. It is the only owner of that mapping.
type Registry struct {
	mu       sync.RWMutex
	sessions map[core.SessionID]*sessionEntry
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[core.SessionID]*sessionEntry),
	}
}

// Register records an authenticated connection. A lifecycle that has not
// reached StateAuthenticated is refused with domain.ErrUnauthorized.
func (r *Registry) Register(
	sid core.SessionID,
	lc *core.Lifecycle,
	conn core.SignalConnection,
	cancel context.CancelFunc,
) error {
	id, ok := lc.Identity()
	if !ok {
		return domain.ErrUnauthorized
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.sessions[sid]; exists {
		return ErrAlreadyRegistered
	}
	r.sessions[sid] = &sessionEntry{
		Lifecycle: lc,
		Conn:      conn,
		Cancel:    cancel,
		Since:     time.Now(),
	}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("user", string(id)).Msg("registered session")
	return nil
}

// IdentityOf returns the identity bound to sid, or false when sid is unknown
// or no longer authenticated.
func (r *Registry) IdentityOf(sid core.SessionID) (domain.Identity, bool) {
	r.mu.RLock()
	e, ok := r.sessions[sid]
	r.mu.RUnlock()
	if !ok {
		return "", false
	}
	return e.Lifecycle.Identity()
}

func (r *Registry) Conn(sid core.SessionID) (core.SignalConnection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.sessions[sid]; ok {
		return e.Conn, true
	}
	return nil, false
}

// Unregister is idempotent and reports whether sid was present.
func (r *Registry) Unregister(sid core.SessionID) bool {
	r.mu.Lock()
	e, ok := r.sessions[sid]
	delete(r.sessions, sid)
	r.mu.Unlock()
	if !ok {
		return false
	}
	e.Lifecycle.Disconnect()
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Dur("lifetime", time.Since(e.Since)).Msg("unbind session")
	return true
}

// Cancel asks the transport owning sid to shut the connection down.
func (r *Registry) Cancel(sid core.SessionID) bool {
	r.mu.RLock()
	e, ok := r.sessions[sid]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	if e.Cancel != nil {
		e.Cancel()
	}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("canceled session")
	return true
}

// CancelAll cancels every live session and returns how many were signalled.
func (r *Registry) CancelAll() int {
	r.mu.RLock()
	cancels := make([]context.CancelFunc, 0, len(r.sessions))
	for _, e := range r.sessions {
		if e.Cancel != nil {
			cancels = append(cancels, e.Cancel)
		}
	}
	r.mu.RUnlock()
	for _, cancel := range cancels {
		cancel()
	}
	return len(cancels)
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
