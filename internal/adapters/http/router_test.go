package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/roomchat/internal/adapters/signal"
	"github.com/dkeye/roomchat/internal/adapters/storage/gormstore"
	"github.com/dkeye/roomchat/internal/app"
	"github.com/dkeye/roomchat/internal/app/orch"
	"github.com/dkeye/roomchat/internal/auth"
	"github.com/dkeye/roomchat/internal/config"
	"github.com/dkeye/roomchat/internal/domain"
)

var t0 = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

type testServer struct {
	handler http.Handler
	store   *gormstore.Store
	orch    *orch.Orchestrator
	tokens  *auth.TokenManager
}

func newTestServer(t *testing.T, loginAttempts int) *testServer {
	t.Helper()
	store, err := gormstore.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

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
	cfg := &config.Config{Mode: "test", Secret: "session-secret"}
	deps := Deps{
		Orch: o,
		Accounts: &app.Accounts{
			Users:  store,
			Hasher: auth.NewPasswordHasher(4),
			Tokens: tokens,
		},
		Identity:     tokens,
		Signal:       signal.NewSignalWSController(o, signal.Options{}),
		LoginLimiter: app.NewRateLimiter(loginAttempts, time.Minute),
		TokenTTL:     time.Hour,
	}
	return &testServer{
		handler: SetupRouter(context.Background(), cfg, deps),
		store:   store,
		orch:    o,
		tokens:  tokens,
	}
}

func (s *testServer) do(t *testing.T, method, path string, body any, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func bearer(t *testing.T, s *testServer, user string) http.Header {
	t.Helper()
	token, err := s.tokens.Issue(user)
	require.NoError(t, err)
	return http.Header{"Authorization": []string{"Bearer " + token}}
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestServer(t, 10)
	reg := map[string]string{"username": "alice", "email": "alice@example.com", "password": "secret1"}

	w := s.do(t, http.MethodPost, "/api/register", reg, nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodPost, "/api/register", reg, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "User already exists", decode(t, w)["msg"])

	w = s.do(t, http.MethodPost, "/api/login", map[string]string{"username": "alice", "password": "secret1"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)
	assert.Equal(t, float64(3600), body["expires_in"])

	id, err := s.tokens.Resolve(token)
	require.NoError(t, err)
	assert.Equal(t, domain.Identity("alice"), id)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "login stores the token in the session cookie")
	w = s.do(t, http.MethodGet, "/api/protected", nil, http.Header{"Cookie": []string{cookies[0].Name + "=" + cookies[0].Value}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", decode(t, w)["logged_in_as"])

	w = s.do(t, http.MethodPost, "/api/login", map[string]string{"username": "alice", "password": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterValidation(t *testing.T) {
	s := newTestServer(t, 10)
	cases := []struct {
		body map[string]string
		want string
	}{
		{map[string]string{"username": "al", "email": "a@example.com", "password": "secret1"}, "Invalid username"},
		{map[string]string{"username": "alice", "email": "nope", "password": "secret1"}, "Invalid email"},
		{map[string]string{"username": "alice", "email": "a@example.com", "password": "123"}, "Invalid password"},
	}
	for _, tc := range cases {
		w := s.do(t, http.MethodPost, "/api/register", tc.body, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, tc.want, decode(t, w)["msg"])
	}
}

func TestLoginRateLimit(t *testing.T) {
	s := newTestServer(t, 2)
	creds := map[string]string{"username": "ghost", "password": "whatever"}
	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodPost, "/api/login", creds, nil).Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, s.do(t, http.MethodPost, "/api/login", creds, nil).Code)
}

func TestProtectedRequiresToken(t *testing.T) {
	s := newTestServer(t, 10)

	w := s.do(t, http.MethodGet, "/api/protected", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Missing token", decode(t, w)["msg"])

	w = s.do(t, http.MethodGet, "/api/protected", nil, http.Header{"Authorization": []string{"Bearer forged"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token", decode(t, w)["msg"])

	w = s.do(t, http.MethodGet, "/api/protected", nil, bearer(t, s, "alice"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtected_BearerSchemeIsCaseInsensitive(t *testing.T) {
	s := newTestServer(t, 10)
	token, err := s.tokens.Issue("alice")
	require.NoError(t, err)

	for _, scheme := range []string{"Bearer", "bearer", "BEARER"} {
		w := s.do(t, http.MethodGet, "/api/protected", nil, http.Header{"Authorization": []string{scheme + " " + token}})
		assert.Equal(t, http.StatusOK, w.Code, scheme)
	}

	w := s.do(t, http.MethodGet, "/api/protected", nil, http.Header{"Authorization": []string{"Basic " + token}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Missing token", decode(t, w)["msg"])
}

func TestMessagesPagination(t *testing.T) {
	s := newTestServer(t, 10)
	ctx := context.Background()
	for i := 1; i <= 5; i++ {
		m, err := domain.NewMessage("general", "alice", fmt.Sprintf("m%d", i), t0.Add(time.Duration(i)*time.Second))
		require.NoError(t, err)
		require.NoError(t, s.store.SaveMessage(ctx, m))
	}
	hdr := bearer(t, s, "bob")

	w := s.do(t, http.MethodGet, "/api/messages/general?limit=2&offset=1", nil, hdr)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Messages []map[string]string `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Messages, 2)
	assert.Equal(t, "m3", page.Messages[0]["message"])
	assert.Equal(t, "m4", page.Messages[1]["message"])
	assert.Equal(t, "2024-05-01T10:00:03.000Z", page.Messages[0]["timestamp"])

	w = s.do(t, http.MethodGet, "/api/messages/general", nil, hdr)
	page.Messages = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(t, page.Messages, 5)
	assert.Equal(t, "m1", page.Messages[0]["message"])

	w = s.do(t, http.MethodGet, "/api/messages/empty", nil, hdr)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"messages":[]}`, w.Body.String())

	for _, q := range []string{"limit=abc", "limit=-1", "offset=x", "offset=-2"} {
		w = s.do(t, http.MethodGet, "/api/messages/general?"+q, nil, hdr)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestRecentRooms(t *testing.T) {
	s := newTestServer(t, 10)
	ctx := context.Background()
	for _, r := range []domain.RoomID{"a", "b", "a"} {
		require.NoError(t, s.store.TouchRecentRoom(ctx, "alice", r, 5))
	}

	w := s.do(t, http.MethodGet, "/api/recent_rooms", nil, bearer(t, s, "alice"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"recent_rooms":["a","b"]}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/recent_rooms", nil, bearer(t, s, "bob"))
	assert.JSONEq(t, `{"recent_rooms":[]}`, w.Body.String())
}

func TestRoomsAndHealth(t *testing.T) {
	s := newTestServer(t, 10)
	hdr := bearer(t, s, "alice")

	w := s.do(t, http.MethodGet, "/api/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])

	w = s.do(t, http.MethodGet, "/api/rooms", nil, hdr)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	w = s.do(t, http.MethodGet, "/api/rooms/general/members", nil, hdr)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
