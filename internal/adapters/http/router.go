package http

import (
	"context"
	"strings"
	"time"

	"github.com/dkeye/roomchat/internal/adapters/signal"
	"github.com/dkeye/roomchat/internal/app"
	"github.com/dkeye/roomchat/internal/app/orch"
	"github.com/dkeye/roomchat/internal/config"
	"github.com/dkeye/roomchat/internal/core"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	sessionName     = "roomchat_session"
	sessionTokenKey = "token"
	identityKey     = "identity"
)

type Deps struct {
	Orch         *orch.Orchestrator
	Accounts     *app.Accounts
	Identity     core.IdentityResolver
	Signal       *signal.SignalWSController
	LoginLimiter *app.RateLimiter
	TokenTTL     time.Duration
}

func SetupRouter(ctx context.Context, cfg *config.Config, deps Deps) *gin.Engine {
	switch cfg.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	} else {
		r.Use(RequestLogger())
	}
	r.Use(gin.Recovery())
	r.Use(corsMiddleware(cfg.AllowedOrigins))

	store := cookie.NewStore([]byte(cfg.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(deps.TokenTTL / time.Second),
		HttpOnly: true,
	})
	r.Use(sessions.Sessions(sessionName, store))

	if cfg.StaticPath != "" {
		r.Static("/static", cfg.StaticPath)
		r.GET("/", func(c *gin.Context) {
			c.File(cfg.StaticPath + "/index.html")
		})
	}

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")

	h := &handlers{deps: deps}
	api := r.Group("/api")
	api.GET("/health", h.health)
	api.POST("/register", h.register)
	api.POST("/login", h.login)

	api.GET("/ws", func(c *gin.Context) {
		log.Debug().Str("module", "adapters.http").Str("remote", c.ClientIP()).Msg("ws endpoint hit")
		deps.Signal.HandleSignal(ctx, c, credentialFrom(c, true))
	})

	authed := api.Group("/", h.requireIdentity())
	authed.GET("/protected", h.protected)
	authed.GET("/recent_rooms", h.recentRooms)
	authed.GET("/messages/:roomid", h.messages)
	authed.GET("/rooms", h.rooms)
	authed.GET("/rooms/:roomid/members", h.members)

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cc := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = origins
		cc.AllowCredentials = true
	}
	return cors.New(cc)
}

// credentialFrom looks for a bearer token in the Authorization header, then
// (for WebSocket upgrades) the token query parameter, then the login session.
func credentialFrom(c *gin.Context, allowQuery bool) string {
	if h := c.GetHeader("Authorization"); h != "" {
		if scheme, token, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	if allowQuery {
		if token := c.Query("token"); token != "" {
			return token
		}
	}
	if token, ok := sessions.Default(c).Get(sessionTokenKey).(string); ok {
		return token
	}
	return ""
}
