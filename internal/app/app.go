package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/tanujaya/user-directory/internal/data/db"
	"github.com/tanujaya/user-directory/internal/observability"
	"github.com/tanujaya/user-directory/internal/platform/logger"
)

type App struct {
	Log    *logger.Logger
	DB     *gorm.DB
	Router *gin.Engine
	Cfg    *Config

	server        *http.Server
	traceShutdown func(context.Context) error
}

func New() (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	traceShutdown := observability.InitTracing(context.Background(), log, observability.Config{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Env,
	})

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	gdb := pg.DB()

	reposet := wireRepos(gdb, log)
	serviceset := wireServices(gdb, log, reposet)
	handlerset := wireHandlers(log, serviceset)
	router := wireRouter(cfg, log, handlerset)

	return &App{
		Log:    log,
		DB:     gdb,
		Router: router,
		Cfg:    cfg,
		server: &http.Server{
			Addr:              cfg.HTTP.Addr,
			Handler:           router,
			ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout.Duration,
			IdleTimeout:       cfg.HTTP.IdleTimeout.Duration,
		},
		traceShutdown: traceShutdown,
	}, nil
}

// Run serves until ctx is cancelled, then drains within the configured
// shutdown timeout.
func (a *App) Run(ctx context.Context) error {
	a.Log.Info("server listening", "addr", a.server.Addr)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := a.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Cfg.HTTP.ShutdownTimeout.Duration)
		defer cancel()
		return a.server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.traceShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), a.Cfg.HTTP.ShutdownTimeout.Duration)
		defer cancel()
		if err := a.traceShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
