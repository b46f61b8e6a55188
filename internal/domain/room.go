package domain

import "fmt"

const (
	MaxRoomIDLen            = 64
	DefaultRecentRoomsLimit = 5
	DefaultHistoryPageSize  = 50
)

type RoomID string

// ParseRoomID validates a client-supplied room id. Rooms have no durable entity,
// so this is the only check a room id goes through.
func ParseRoomID(raw string) (RoomID, error) {
	if raw == "" {
		return "", fmt.Errorf("%w: missing room ID", ErrValidation)
	}
	if len(raw) > MaxRoomIDLen {
		return "", fmt.Errorf("%w: room ID too long", ErrValidation)
	}
	return RoomID(raw), nil
}

// RecentRooms is a most-recent-first list of room ids without duplicates.
type RecentRooms []RoomID

// Touch returns a new list with id moved (or inserted) at the front and the
// tail cut to limit entries. The receiver is not modified.
func (r RecentRooms) Touch(id RoomID, limit int) RecentRooms {
	if limit <= 0 {
		limit = DefaultRecentRoomsLimit
	}
	out := make(RecentRooms, 0, min(len(r)+1, limit))
	out = append(out, id)
	for _, existing := range r {
		if len(out) == limit {
			break
		}
		if existing == id {
			continue
		}
		out = append(out, existing)
	}
	return out
}

func (r RecentRooms) Strings() []string {
	out := make([]string, len(r))
	for i, id := range r {
		out[i] = string(id)
	}
	return out
}

func RecentRoomsFromStrings(ss []string) RecentRooms {
	out := make(RecentRooms, len(ss))
	for i, s := range ss {
		out[i] = RoomID(s)
	}
	return out
}
