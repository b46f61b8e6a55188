package app

import (
	"slices"
	"sync"

	"github.com/dkeye/roomchat/internal/core"
	"github.com/dkeye/roomchat/internal/domain"
	"github.com/rs/zerolog/log"
)

// RoomManager is the room membership manager. Rooms exist only while they
// have subscribers: the first Join creates one, the last Leave drops it.
// All membership mutation goes through here; broadcast code only reads.
type RoomManager struct {
	mu     sync.RWMutex
	rooms  map[domain.RoomID]core.RoomService
	byConn map[core.SessionID]map[domain.RoomID]struct{}
}

func NewRoomManager() *RoomManager {
	return &RoomManager{
		rooms:  make(map[domain.RoomID]core.RoomService),
		byConn: make(map[core.SessionID]map[domain.RoomID]struct{}),
	}
}

// Join subscribes sid to room and reports whether a new subscription was made.
func (m *RoomManager) Join(sid core.SessionID, room domain.RoomID, ms core.MemberSession) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	rs, ok := m.rooms[room]
	if !ok {
		rs = core.NewRoomService(room)
		m.rooms[room] = rs
		log.Info().Str("module", "app.rooms").Str("room", string(room)).Msg("room opened")
	}
	if !rs.AddMember(sid, ms) {
		return false
	}
	joined, ok := m.byConn[sid]
	if !ok {
		joined = make(map[domain.RoomID]struct{})
		m.byConn[sid] = joined
	}
	joined[room] = struct{}{}
	return true
}

func (m *RoomManager) Leave(sid core.SessionID, room domain.RoomID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	joined, ok := m.byConn[sid]
	if !ok {
		return false
	}
	if _, ok := joined[room]; !ok {
		return false
	}
	delete(joined, room)
	if len(joined) == 0 {
		delete(m.byConn, sid)
	}
	m.removeLocked(sid, room)
	return true
}

// LeaveAll drops every subscription of sid and returns the rooms it was in.
func (m *RoomManager) LeaveAll(sid core.SessionID) []domain.RoomID {
	m.mu.Lock()
	defer m.mu.Unlock()
	joined := m.byConn[sid]
	delete(m.byConn, sid)
	left := make([]domain.RoomID, 0, len(joined))
	for room := range joined {
		m.removeLocked(sid, room)
		left = append(left, room)
	}
	slices.Sort(left)
	return left
}

func (m *RoomManager) removeLocked(sid core.SessionID, room domain.RoomID) {
	rs, ok := m.rooms[room]
	if !ok {
		return
	}
	rs.RemoveMember(sid)
	if rs.MemberCount() == 0 {
		delete(m.rooms, room)
		log.Info().Str("module", "app.rooms").Str("room", string(room)).Msg("room closed")
	}
}

func (m *RoomManager) SubscribersOf(room domain.RoomID) []core.SessionID {
	m.mu.RLock()
	rs, ok := m.rooms[room]
	m.mu.RUnlock()
	if !ok {
		return nil
	}
	return rs.Subscribers()
}

func (m *RoomManager) RoomsOf(sid core.SessionID) []domain.RoomID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.RoomID, 0, len(m.byConn[sid]))
	for room := range m.byConn[sid] {
		out = append(out, room)
	}
	slices.Sort(out)
	return out
}

// Broadcast fans data out to the subscribers of room at the moment of delivery.
// An unknown room is simply a room nobody listens to.
func (m *RoomManager) Broadcast(room domain.RoomID, data core.Frame) core.PublishResult {
	m.mu.RLock()
	rs, ok := m.rooms[room]
	m.mu.RUnlock()
	if !ok {
		return core.PublishResult{}
	}
	return rs.Broadcast(data)
}

func (m *RoomManager) Get(room domain.RoomID) (core.RoomService, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rs, ok := m.rooms[room]
	return rs, ok
}

func (m *RoomManager) List() []core.RoomInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]core.RoomInfo, 0, len(m.rooms))
	for id, rs := range m.rooms {
		out = append(out, core.RoomInfo{ID: id, MemberCount: rs.MemberCount()})
	}
	slices.SortFunc(out, func(a, b core.RoomInfo) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out
}

func (m *RoomManager) Members(room domain.RoomID) ([]core.MemberDTO, bool) {
	rs, ok := m.Get(room)
	if !ok {
		return nil, false
	}
	members := rs.MembersSnapshot()
	slices.SortFunc(members, func(a, b core.MemberDTO) int { return a.JoinedAt.Compare(b.JoinedAt) })
	return members, true
}
