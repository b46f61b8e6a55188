package signal_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/roomchat/internal/adapters/signal"
	"github.com/dkeye/roomchat/internal/adapters/storage/gormstore"
	"github.com/dkeye/roomchat/internal/app"
	"github.com/dkeye/roomchat/internal/app/orch"
	"github.com/dkeye/roomchat/internal/auth"
)

type harness struct {
	srv    *httptest.Server
	orch   *orch.Orchestrator
	tokens *auth.TokenManager
}

func newHarness(t *testing.T, opts signal.Options) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := gormstore.Open(":memory:")
	require.NoError(t, err)
	tokens := auth.NewTokenManager(auth.TokenConfig{SecretKey: "test", Issuer: "roomchat", AccessTokenTTL: time.Hour})
	o := &orch.Orchestrator{
		Registry:     app.NewRegistry(),
		Rooms:        app.NewRoomManager(),
		Policy:       app.KickPolicy{},
		Identity:     tokens,
		Messages:     store,
		Recent:       store,
		StoreTimeout: time.Second,
	}
	ctx, cancel := context.WithCancel(context.Background())
	ctl := signal.NewSignalWSController(o, opts)
	r := gin.New()
	r.GET("/ws", func(c *gin.Context) { ctl.HandleSignal(ctx, c, c.Query("token")) })
	srv := httptest.NewServer(r)

	t.Cleanup(func() {
		cancel()
		srv.Close()
		_ = store.Close()
	})
	return &harness{srv: srv, orch: o, tokens: tokens}
}

func (h *harness) dial(t *testing.T, token string, header http.Header) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	u := "ws" + strings.TrimPrefix(h.srv.URL, "http") + "/ws?token=" + token
	return websocket.DefaultDialer.Dial(u, header)
}

func (h *harness) connect(t *testing.T, username string) *websocket.Conn {
	t.Helper()
	token, err := h.tokens.Issue(username)
	require.NoError(t, err)
	conn, _, err := h.dial(t, token, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, v any) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(v))
}

func read(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev map[string]any
	require.NoError(t, conn.ReadJSON(&ev))
	return ev
}

// readUntil skips events until one of type typ arrives.
func readUntil(t *testing.T, conn *websocket.Conn, typ string) map[string]any {
	t.Helper()
	for i := 0; i < 10; i++ {
		ev := read(t, conn)
		if ev["type"] == typ {
			return ev
		}
	}
	t.Fatalf("no %s event", typ)
	return nil
}

func TestChat_AliceAndBob(t *testing.T) {
	h := newHarness(t, signal.Options{})
	alice := h.connect(t, "alice")

	send(t, alice, map[string]string{"type": "join_room", "roomId": "general"})
	prev := read(t, alice)
	assert.Equal(t, "previous_messages", prev["type"])
	assert.Equal(t, []any{}, prev["messages"])
	ann := read(t, alice)
	assert.Equal(t, "join_room_announcement", ann["type"])
	assert.Equal(t, "alice has joined the room.", ann["message"])

	bob := h.connect(t, "bob")
	send(t, bob, map[string]string{"type": "join_room", "roomId": "general"})
	assert.Equal(t, "previous_messages", read(t, bob)["type"])
	assert.Equal(t, "bob has joined the room.", read(t, bob)["message"])
	ann = read(t, alice)
	assert.Equal(t, "System", ann["username"])
	assert.Equal(t, "bob has joined the room.", ann["message"])

	send(t, alice, map[string]string{"type": "send_message", "roomId": "general", "message": "hi"})
	for _, conn := range []*websocket.Conn{alice, bob} {
		got := read(t, conn)
		assert.Equal(t, "receive_message", got["type"])
		assert.Equal(t, "alice", got["username"])
		assert.Equal(t, "hi", got["message"])
		assert.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`, got["timestamp"])
	}

	history, err := h.orch.History(context.Background(), "general", 0, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "hi", history[0].Body)
}

func TestChat_RejectsBadToken(t *testing.T) {
	h := newHarness(t, signal.Options{})

	for token, want := range map[string]string{"": "Missing token", "forged": "Invalid token"} {
		conn, _, err := h.dial(t, token, nil)
		require.NoError(t, err)
		ev := read(t, conn)
		assert.Equal(t, "error", ev["type"])
		assert.Equal(t, want, ev["msg"])

		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, _, err = conn.ReadMessage()
		assert.True(t, websocket.IsCloseError(err, websocket.ClosePolicyViolation), "got %v", err)
		_ = conn.Close()
	}
	assert.Zero(t, h.orch.Registry.Count())
}

func TestChat_DisconnectCleansUp(t *testing.T) {
	h := newHarness(t, signal.Options{})
	alice := h.connect(t, "alice")
	send(t, alice, map[string]string{"type": "join_room", "roomId": "general"})
	readUntil(t, alice, "join_room_announcement")

	require.NoError(t, alice.Close())
	require.Eventually(t, func() bool {
		return h.orch.Registry.Count() == 0 && len(h.orch.Rooms.List()) == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestChat_ControlEvents(t *testing.T) {
	h := newHarness(t, signal.Options{})
	alice := h.connect(t, "alice")

	send(t, alice, map[string]string{"type": "ping"})
	assert.Equal(t, "pong", read(t, alice)["type"])

	send(t, alice, map[string]string{"type": "join_room", "roomid": "general"})
	readUntil(t, alice, "join_room_announcement")

	send(t, alice, map[string]string{"type": "whoami"})
	who := read(t, alice)
	assert.Equal(t, "alice", who["username"])
	assert.Equal(t, []any{"general"}, who["rooms"])

	send(t, alice, map[string]string{"type": "leave_room", "roomId": "general"})
	left := read(t, alice)
	assert.Equal(t, "left", left["type"])
	assert.Equal(t, "general", left["roomId"])

	send(t, alice, map[string]string{"type": "dance"})
	assert.Equal(t, "Unknown event type", read(t, alice)["msg"])

	require.NoError(t, alice.WriteMessage(websocket.TextMessage, []byte("{not json")))
	assert.Equal(t, "Bad payload", read(t, alice)["msg"])
}

func TestChat_ValidationErrors(t *testing.T) {
	h := newHarness(t, signal.Options{})
	alice := h.connect(t, "alice")

	send(t, alice, map[string]string{"type": "join_room"})
	ev := read(t, alice)
	assert.Equal(t, "error", ev["type"])
	assert.Equal(t, "Missing room ID", ev["msg"])

	send(t, alice, map[string]string{"type": "send_message", "roomId": "general"})
	assert.Equal(t, "Missing message", read(t, alice)["msg"])
}

func TestChat_SendRateLimit(t *testing.T) {
	h := newHarness(t, signal.Options{Limiter: app.NewRateLimiter(2, time.Minute)})
	alice := h.connect(t, "alice")
	send(t, alice, map[string]string{"type": "join_room", "roomId": "general"})
	readUntil(t, alice, "join_room_announcement")

	for i := 0; i < 2; i++ {
		send(t, alice, map[string]string{"type": "send_message", "roomId": "general", "message": "spam"})
		assert.Equal(t, "receive_message", read(t, alice)["type"])
	}
	send(t, alice, map[string]string{"type": "send_message", "roomId": "general", "message": "spam"})
	assert.Equal(t, "Rate limit exceeded", read(t, alice)["msg"])
}

func TestChat_OriginAllowList(t *testing.T) {
	h := newHarness(t, signal.Options{AllowedOrigins: []string{"https://chat.example.com"}})
	token, err := h.tokens.Issue("alice")
	require.NoError(t, err)

	_, resp, err := h.dial(t, token, http.Header{"Origin": []string{"https://evil.example.com"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	conn, _, err := h.dial(t, token, http.Header{"Origin": []string{"https://CHAT.example.com"}})
	require.NoError(t, err)
	_ = conn.Close()
}
