package core

import (
	"context"

	"github.com/dkeye/roomchat/internal/domain"
)

//go:generate mockgen -source=store_iface.go -destination=mocks/store_mock.go -package=mocks

// UserStore returns domain.ErrNotFound for unknown users and
// domain.ErrUserExists on duplicate usernames or emails.
type UserStore interface {
	FindUser(ctx context.Context, username string) (*domain.UserRecord, error)
	SaveUser(ctx context.Context, user *domain.UserRecord) error
}

type MessageStore interface {
	SaveMessage(ctx context.Context, msg domain.Message) error
	// FetchMessages returns at most limit messages of room ordered newest
	// first (timestamp, then insertion order), after skipping offset of them.
	FetchMessages(ctx context.Context, room domain.RoomID, limit, offset int) ([]domain.Message, error)
}

type RecentRoomsStore interface {
	RecentRooms(ctx context.Context, username domain.Identity) (domain.RecentRooms, error)
	TouchRecentRoom(ctx context.Context, username domain.Identity, room domain.RoomID, limit int) error
}

// Store is what a persistence backend provides as a whole.
type Store interface {
	UserStore
	MessageStore
	RecentRoomsStore
	Close() error
}
