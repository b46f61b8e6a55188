package orch

import (
	"context"
	"fmt"

	"github.com/dkeye/roomchat/internal/core"
	"github.com/dkeye/roomchat/internal/domain"
	"github.com/dkeye/roomchat/internal/protocol"
	"github.com/rs/zerolog/log"
)

// Join subscribes sid to roomRaw, records it as the user's most recent room,
// announces the arrival and replays history privately.
//
// A fresh subscription is gated: live frames for the room are held until
// previous_messages is on the wire, so the joiner never sees a live message
// ahead of history. A message persisted between subscribe and fetch may
// therefore arrive twice. Re-joining keeps the existing subscription but
// still announces and replays.
func (o *Orchestrator) Join(ctx context.Context, sid core.SessionID, roomRaw string) (domain.RoomID, error) {
	id, ok := o.Registry.IdentityOf(sid)
	if !ok {
		return "", domain.ErrUnauthorized
	}
	room, err := domain.ParseRoomID(roomRaw)
	if err != nil {
		return "", err
	}
	conn, ok := o.Registry.Conn(sid)
	if !ok {
		return "", domain.ErrUnauthorized
	}

	gate := core.NewReplayGate(conn, o.GateLimit)
	ms := core.NewMemberSession(domain.NewMember(id, o.now()), gate)
	if !o.Rooms.Join(sid, room, ms) {
		gate = nil
	}
	log.Info().Str("module", "orch").Str("sid", string(sid)).Str("user", string(id)).Str("room", string(room)).
		Bool("rejoin", gate == nil).Msg("joined room")

	o.touchRecent(ctx, id, room)

	if frame, err := protocol.Encode(protocol.JoinAnnouncement(room, id)); err == nil {
		o.broadcast(room, frame)
	}

	history, histErr := o.History(ctx, string(room), o.pageSize(), 0)
	var first core.Frame
	if histErr == nil {
		first, histErr = protocol.Encode(protocol.NewPreviousMessages(room, history))
	}
	if gate != nil {
		if err := gate.Release(first); err != nil {
			log.Debug().Str("module", "orch").Str("sid", string(sid)).Err(err).Msg("replay delivery failed")
		}
	} else if first != nil {
		_ = conn.TrySend(first)
	}
	if histErr != nil {
		return room, histErr
	}
	return room, nil
}

// Leave reports whether sid was subscribed to roomRaw.
func (o *Orchestrator) Leave(sid core.SessionID, roomRaw string) (domain.RoomID, bool, error) {
	if _, ok := o.Registry.IdentityOf(sid); !ok {
		return "", false, domain.ErrUnauthorized
	}
	room, err := domain.ParseRoomID(roomRaw)
	if err != nil {
		return "", false, err
	}
	left := o.Rooms.Leave(sid, room)
	if left {
		log.Info().Str("module", "orch").Str("sid", string(sid)).Str("room", string(room)).Msg("left room")
	}
	return room, left, nil
}

// EvictRoom kicks every subscriber of room.
func (o *Orchestrator) EvictRoom(room domain.RoomID) int {
	sids := o.Rooms.SubscribersOf(room)
	for _, sid := range sids {
		o.KickBySID(sid)
	}
	return len(sids)
}

func (o *Orchestrator) touchRecent(ctx context.Context, id domain.Identity, room domain.RoomID) {
	if o.Recent == nil {
		return
	}
	ctx, cancel := o.storeCtx(ctx)
	defer cancel()
	if err := o.Recent.TouchRecentRoom(ctx, id, room, o.recentLimit()); err != nil {
		log.Warn().Str("module", "orch").Str("user", string(id)).Str("room", string(room)).Err(err).Msg("recent rooms update failed")
	}
}

func (o *Orchestrator) RecentRooms(ctx context.Context, id domain.Identity) (domain.RecentRooms, error) {
	if o.Recent == nil {
		return domain.RecentRooms{}, nil
	}
	ctx, cancel := o.storeCtx(ctx)
	defer cancel()
	rooms, err := o.Recent.RecentRooms(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: recent rooms: %v", domain.ErrPersistence, err)
	}
	if rooms == nil {
		rooms = domain.RecentRooms{}
	}
	return rooms, nil
}
