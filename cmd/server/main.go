package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	router "github.com/dkeye/roomchat/internal/adapters/http"
	wssignal "github.com/dkeye/roomchat/internal/adapters/signal"
	"github.com/dkeye/roomchat/internal/adapters/storage/gormstore"
	"github.com/dkeye/roomchat/internal/adapters/storage/mongostore"
	"github.com/dkeye/roomchat/internal/adapters/storage/redisstore"
	"github.com/dkeye/roomchat/internal/app"
	"github.com/dkeye/roomchat/internal/app/orch"
	"github.com/dkeye/roomchat/internal/auth"
	"github.com/dkeye/roomchat/internal/config"
	"github.com/dkeye/roomchat/internal/core"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogger(cfg.Log)

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("Server exited gracefully")
}

func setupLogger(lc config.LogConfig) {
	if lc.Format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	level, err := zerolog.ParseLevel(lc.Level)
	if err != nil || lc.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}

func openStore(ctx context.Context, cfg *config.Config) (core.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	switch cfg.Store.Driver {
	case "mongo":
		return mongostore.Connect(ctx, cfg.Store.MongoURI, cfg.Store.MongoDatabase)
	case "sqlite":
		return gormstore.Open(cfg.Store.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	var recent core.RecentRoomsStore = store
	if cfg.Recent.Backend == "redis" {
		rs, err := redisstore.Dial(ctx, cfg.Recent.RedisAddr, cfg.Recent.RedisPrefix)
		if err != nil {
			return err
		}
		defer rs.Close()
		recent = rs
	}

	policy, err := app.PolicyByName(cfg.Backpressure)
	if err != nil {
		return err
	}

	tokens := auth.NewTokenManager(auth.TokenConfig{
		SecretKey:      cfg.JWT.Secret,
		Issuer:         cfg.JWT.Issuer,
		AccessTokenTTL: cfg.JWT.AccessTTL,
	})

	o := &orch.Orchestrator{
		Registry:        app.NewRegistry(),
		Rooms:           app.NewRoomManager(),
		Policy:          policy,
		Identity:        tokens,
		Messages:        store,
		Recent:          recent,
		HistoryPageSize: cfg.History.PageSize,
		RecentLimit:     cfg.Recent.Limit,
		StoreTimeout:    cfg.Store.Timeout,
		GateLimit:       cfg.SendBuffer * 2,
	}

	sendLimiter := app.NewRateLimiter(cfg.RateLimit.Messages, cfg.RateLimit.Interval)
	loginLimiter := app.NewRateLimiter(cfg.RateLimit.LoginAttempts, cfg.RateLimit.LoginInterval)

	ctl := wssignal.NewSignalWSController(o, wssignal.Options{
		ReadLimit:      cfg.ReadLimit,
		PingPeriod:     cfg.PingPeriod,
		WriteWait:      cfg.WriteWait,
		SendBuffer:     cfg.SendBuffer,
		AllowedOrigins: cfg.AllowedOrigins,
		Limiter:        sendLimiter,
	})

	r := router.SetupRouter(ctx, cfg, router.Deps{
		Orch: o,
		Accounts: &app.Accounts{
			Users:   store,
			Hasher:  auth.NewPasswordHasher(auth.DefaultBcryptCost),
			Tokens:  tokens,
			Timeout: cfg.Store.Timeout,
		},
		Identity:     tokens,
		Signal:       ctl,
		LoginLimiter: loginLimiter,
		TokenTTL:     cfg.JWT.AccessTTL,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("chat server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		sendLimiter.RunSweeper(gctx, time.Minute)
		return nil
	})
	g.Go(func() error {
		loginLimiter.RunSweeper(gctx, time.Minute)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down")
		closed := o.Registry.CancelAll()
		log.Info().Int("connections", closed).Msg("closed live connections")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Server forced to shutdown")
			return err
		}
		return nil
	})
	return g.Wait()
}
