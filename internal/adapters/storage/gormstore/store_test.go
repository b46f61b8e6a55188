package gormstore

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/roomchat/internal/domain"
)

var t0 = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

// setupTestStore creates an in-memory SQLite database for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_Users(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	_, err := s.FindUser(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	user, err := domain.NewUserRecord("alice", "alice@example.com", "hash", t0)
	require.NoError(t, err)
	require.NoError(t, s.SaveUser(ctx, user))

	got, err := s.FindUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Equal(t, "hash", got.PasswordHash)
	assert.False(t, got.IsActive)

	assert.ErrorIs(t, s.SaveUser(ctx, user), domain.ErrUserExists)

	sameEmail, err := domain.NewUserRecord("alice2", "alice@example.com", "hash", t0)
	require.NoError(t, err)
	assert.ErrorIs(t, s.SaveUser(ctx, sameEmail), domain.ErrUserExists)
}

func TestStore_MessagesPagination(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		m, err := domain.NewMessage("general", "alice", fmt.Sprintf("m%d", i), t0.Add(time.Duration(i)*time.Second))
		require.NoError(t, err)
		require.NoError(t, s.SaveMessage(ctx, m))
	}
	other, _ := domain.NewMessage("random", "bob", "elsewhere", t0)
	require.NoError(t, s.SaveMessage(ctx, other))

	page, err := s.FetchMessages(ctx, "general", 2, 1)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "m4", page[0].Body)
	assert.Equal(t, "m3", page[1].Body)
	assert.Equal(t, t0.Add(4*time.Second), page[0].Timestamp)

	all, err := s.FetchMessages(ctx, "general", 50, 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	empty, err := s.FetchMessages(ctx, "nowhere", 50, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestStore_MessagesSameTimestampKeepInsertionOrder(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	for _, body := range []string{"first", "second", "third"} {
		m, _ := domain.NewMessage("general", "alice", body, t0)
		require.NoError(t, s.SaveMessage(ctx, m))
	}

	page, err := s.FetchMessages(ctx, "general", 10, 0)
	require.NoError(t, err)
	chrono := domain.Chronological(page)
	require.Len(t, chrono, 3)
	assert.Equal(t, "first", chrono[0].Body)
	assert.Equal(t, "third", chrono[2].Body)
}

func TestStore_RecentRooms(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	rooms, err := s.RecentRooms(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, rooms)

	for _, r := range []domain.RoomID{"a", "b", "c", "d", "e", "f", "c"} {
		require.NoError(t, s.TouchRecentRoom(ctx, "alice", r, 5))
	}
	rooms, err = s.RecentRooms(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.RecentRooms{"c", "f", "e", "d", "b"}, rooms)
}

func TestStore_RecentRoomsConcurrentTouches(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, s.TouchRecentRoom(ctx, "alice", domain.RoomID(fmt.Sprintf("r%d", i%3)), 5))
		}(i)
	}
	wg.Wait()

	rooms, err := s.RecentRooms(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, rooms, 3)
	seen := map[domain.RoomID]bool{}
	for _, r := range rooms {
		assert.False(t, seen[r], "duplicate %s", r)
		seen[r] = true
	}
}
