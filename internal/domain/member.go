package domain

import "time"

// Member represents a connection's participation meta for a room.
// No transport or lifecycle logic here.
type Member struct {
	Username Identity
	JoinedAt time.Time
}

// NewMember avoids raw literals in adapters and keeps construction obvious.
func NewMember(username Identity, joinedAt time.Time) *Member {
	return &Member{Username: username, JoinedAt: joinedAt.UTC()}
}
