// Package redisstore keeps recent-rooms lists in Redis, one list per user.
package redisstore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/dkeye/roomchat/internal/core"
	"github.com/dkeye/roomchat/internal/domain"
)

const DefaultPrefix = "roomchat:recent:"

type RecentRooms struct {
	client *redis.Client
	prefix string
}

var _ core.RecentRoomsStore = (*RecentRooms)(nil)

func New(client *redis.Client, prefix string) *RecentRooms {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &RecentRooms{client: client, prefix: prefix}
}

// Dial connects to addr and checks it answers before returning.
func Dial(ctx context.Context, addr, prefix string) (*RecentRooms, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return New(client, prefix), nil
}

func (r *RecentRooms) key(username domain.Identity) string {
	return r.prefix + string(username)
}

func (r *RecentRooms) RecentRooms(ctx context.Context, username domain.Identity) (domain.RecentRooms, error) {
	rooms, err := r.client.LRange(ctx, r.key(username), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("recent rooms get error: %w", err)
	}
	return domain.RecentRoomsFromStrings(rooms), nil
}

// TouchRecentRoom moves room to the head of the list in one MULTI/EXEC block.
func (r *RecentRooms) TouchRecentRoom(ctx context.Context, username domain.Identity, room domain.RoomID, limit int) error {
	if limit <= 0 {
		limit = domain.DefaultRecentRoomsLimit
	}
	key := r.key(username)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LRem(ctx, key, 0, string(room))
		pipe.LPush(ctx, key, string(room))
		pipe.LTrim(ctx, key, 0, int64(limit-1))
		return nil
	})
	if err != nil {
		return fmt.Errorf("recent rooms touch error: %w", err)
	}
	return nil
}

func (r *RecentRooms) Close() error {
	return r.client.Close()
}
