package domain

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoomID(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "plain", raw: "general"},
		{name: "empty", raw: "", wantErr: true},
		{name: "too long", raw: string(make([]byte, MaxRoomIDLen+1)), wantErr: true},
		{name: "max length", raw: fmt.Sprintf("%064d", 7)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseRoomID(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, RoomID(tt.raw), id)
		})
	}
}

func TestRecentRooms_Touch(t *testing.T) {
	t.Run("inserts at front", func(t *testing.T) {
		got := RecentRooms{"b", "c"}.Touch("a", 5)
		assert.Equal(t, RecentRooms{"a", "b", "c"}, got)
	})

	t.Run("moves existing to front", func(t *testing.T) {
		got := RecentRooms{"a", "b", "c"}.Touch("c", 5)
		assert.Equal(t, RecentRooms{"c", "a", "b"}, got)
	})

	t.Run("evicts oldest past the bound", func(t *testing.T) {
		got := RecentRooms{"a", "b", "c", "d", "e"}.Touch("f", 5)
		assert.Equal(t, RecentRooms{"f", "a", "b", "c", "d"}, got)
	})

	t.Run("does not modify receiver", func(t *testing.T) {
		orig := RecentRooms{"a", "b"}
		_ = orig.Touch("b", 5)
		assert.Equal(t, RecentRooms{"a", "b"}, orig)
	})

	t.Run("non-positive limit falls back to default", func(t *testing.T) {
		got := RecentRooms{"a", "b", "c", "d", "e", "f"}.Touch("g", 0)
		assert.Len(t, got, DefaultRecentRoomsLimit)
	})

	t.Run("repeated touches leave a single entry at the front", func(t *testing.T) {
		var list RecentRooms
		for i := 0; i < 10; i++ {
			list = list.Touch("r", 5)
		}
		assert.Equal(t, RecentRooms{"r"}, list)
	})
}

func TestRecentRooms_TouchInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const limit = 5
	var list RecentRooms
	for i := 0; i < 1000; i++ {
		room := RoomID(fmt.Sprintf("room-%d", rng.Intn(9)))
		list = list.Touch(room, limit)

		require.LessOrEqual(t, len(list), limit)
		require.Equal(t, room, list[0])
		seen := make(map[RoomID]struct{}, len(list))
		for _, id := range list {
			_, dup := seen[id]
			require.False(t, dup, "duplicate %q in %v", id, list)
			seen[id] = struct{}{}
		}
	}
}

func TestRecentRooms_Strings(t *testing.T) {
	list := RecentRoomsFromStrings([]string{"x", "y"})
	assert.Equal(t, RecentRooms{"x", "y"}, list)
	assert.Equal(t, []string{"x", "y"}, list.Strings())
}
