// Package orch wires the connection registry, room membership and the stores
// into the operations a transport adapter calls.
package orch

import (
	"context"
	"fmt"
	"time"

	"github.com/dkeye/roomchat/internal/app"
	"github.com/dkeye/roomchat/internal/core"
	"github.com/dkeye/roomchat/internal/domain"
	"github.com/rs/zerolog/log"
)

type Orchestrator struct {
	Registry *app.Registry
	Rooms    *app.RoomManager
	Policy   app.Policy
	Identity core.IdentityResolver
	Messages core.MessageStore
	Recent   core.RecentRoomsStore

	Now             func() time.Time
	HistoryPageSize int
	RecentLimit     int
	StoreTimeout    time.Duration
	GateLimit       int
}

// Connect authenticates credential and, on success, registers the connection
// under sid. Nothing is registered when authentication fails.
func (o *Orchestrator) Connect(
	sid core.SessionID,
	credential string,
	conn core.SignalConnection,
	cancel context.CancelFunc,
) (domain.Identity, error) {
	lc := core.NewLifecycle()
	id, err := o.Identity.Resolve(credential)
	if err != nil {
		lc.Disconnect()
		log.Info().Str("module", "orch").Str("sid", string(sid)).Err(err).Msg("authentication failed")
		return "", err
	}
	if err := lc.Authenticate(id); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrAuthInvalid, err)
	}
	if err := o.Registry.Register(sid, lc, conn, cancel); err != nil {
		lc.Disconnect()
		return "", err
	}
	return id, nil
}

// OnDisconnect drops every subscription of sid before forgetting the
// connection, so no broadcast can reach it afterwards. Safe to call twice.
func (o *Orchestrator) OnDisconnect(sid core.SessionID) {
	rooms := o.Rooms.LeaveAll(sid)
	if o.Registry.Unregister(sid) {
		log.Info().Str("module", "orch").Str("sid", string(sid)).Int("rooms", len(rooms)).Msg("disconnected")
	}
}

// KickBySID unsubscribes sid everywhere and asks its transport to close.
func (o *Orchestrator) KickBySID(sid core.SessionID) {
	o.Rooms.LeaveAll(sid)
	o.Registry.Cancel(sid)
}

func (o *Orchestrator) WhoAmI(sid core.SessionID) (domain.Identity, []domain.RoomID, error) {
	id, ok := o.Registry.IdentityOf(sid)
	if !ok {
		return "", nil, domain.ErrUnauthorized
	}
	return id, o.Rooms.RoomsOf(sid), nil
}

// broadcast fans frame out to room and applies the backpressure policy to
// whoever could not take it.
func (o *Orchestrator) broadcast(room domain.RoomID, frame core.Frame) core.PublishResult {
	res := o.Rooms.Broadcast(room, frame)
	if o.Policy == nil {
		return res
	}
	for _, slow := range res.Dropped {
		switch o.Policy.OnBackPressure(room, slow) {
		case app.KickMember:
			log.Warn().Str("module", "orch").Str("room", string(room)).Str("sid", string(slow)).Msg("kicking slow subscriber")
			o.KickBySID(slow)
		case app.NoAction:
		}
	}
	return res
}

func (o *Orchestrator) storeCtx(parent context.Context) (context.Context, context.CancelFunc) {
	if o.StoreTimeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, o.StoreTimeout)
}

func (o *Orchestrator) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o *Orchestrator) pageSize() int {
	if o.HistoryPageSize > 0 {
		return o.HistoryPageSize
	}
	return domain.DefaultHistoryPageSize
}

func (o *Orchestrator) recentLimit() int {
	if o.RecentLimit > 0 {
		return o.RecentLimit
	}
	return domain.DefaultRecentRoomsLimit
}
