package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dkeye/roomchat/internal/app"
	"github.com/dkeye/roomchat/internal/domain"
	"github.com/dkeye/roomchat/internal/protocol"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

type handlers struct {
	deps Deps
}

type registerRequest struct {
	Username string `json:"username" binding:"required,min=3,max=30"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func bindError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("Invalid %s", strings.ToLower(fe.Field()))
	}
	return "Invalid request body"
}

func (h *handlers) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": bindError(err)})
		return
	}
	_, err := h.deps.Accounts.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"msg": "User created successfully"})
	case errors.Is(err, domain.ErrUserExists):
		c.JSON(http.StatusConflict, gin.H{"msg": "User already exists"})
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
	default:
		log.Error().Err(err).Str("module", "adapters.http").Msg("register")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Internal error"})
	}
}

func (h *handlers) login(c *gin.Context) {
	if !h.deps.LoginLimiter.Allow(c.ClientIP()) {
		c.JSON(http.StatusTooManyRequests, gin.H{"msg": "Too many login attempts"})
		return
	}
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": bindError(err)})
		return
	}
	token, err := h.deps.Accounts.Login(c.Request.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, app.ErrBadCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Bad username or password"})
		return
	case err != nil:
		log.Error().Err(err).Str("module", "adapters.http").Msg("login")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Internal error"})
		return
	}

	session := sessions.Default(c)
	session.Set(sessionTokenKey, token)
	if err := session.Save(); err != nil {
		log.Warn().Err(err).Str("module", "adapters.http").Msg("session save")
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   int64(h.deps.TokenTTL.Seconds()),
	})
}

func (h *handlers) protected(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"logged_in_as": identityOf(c)})
}

func (h *handlers) recentRooms(c *gin.Context) {
	rooms, err := h.deps.Orch.RecentRooms(c.Request.Context(), identityOf(c))
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.http").Msg("recent rooms")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to load recent rooms"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recent_rooms": rooms.Strings()})
}

func queryInt(c *gin.Context, key string, def int) (int, bool) {
	raw, ok := c.GetQuery(key)
	if !ok {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func (h *handlers) messages(c *gin.Context) {
	limit, ok := queryInt(c, "limit", domain.DefaultHistoryPageSize)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid limit"})
		return
	}
	offset, ok := queryInt(c, "offset", 0)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid offset"})
		return
	}
	// limit=0 asks for the default page, not an unbounded read.
	msgs, err := h.deps.Orch.History(c.Request.Context(), c.Param("roomid"), limit, offset)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"messages": protocol.MessageViews(msgs)})
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
	default:
		log.Error().Err(err).Str("module", "adapters.http").Msg("history")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to load messages"})
	}
}

func (h *handlers) rooms(c *gin.Context) {
	c.JSON(http.StatusOK, h.deps.Orch.Rooms.List())
}

func (h *handlers) members(c *gin.Context) {
	room, err := domain.ParseRoomID(c.Param("roomid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	members, ok := h.deps.Orch.Rooms.Members(room)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Room not found"})
		return
	}
	c.JSON(http.StatusOK, members)
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"connections": h.deps.Orch.Registry.Count(),
		"rooms":       len(h.deps.Orch.Rooms.List()),
	})
}
