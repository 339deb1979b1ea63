package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"net/url"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/real-time-ressys/services/events-api/internal/application/event"
	"github.com/baechuer/real-time-ressys/services/events-api/internal/config"
	rediscache "github.com/baechuer/real-time-ressys/services/events-api/internal/infrastructure/caching/redis"
	"github.com/baechuer/real-time-ressys/services/events-api/internal/infrastructure/db/memory"
	"github.com/baechuer/real-time-ressys/services/events-api/internal/infrastructure/db/migrations"
	"github.com/baechuer/real-time-ressys/services/events-api/internal/infrastructure/db/postgres"
	rabbitpub "github.com/baechuer/real-time-ressys/services/events-api/internal/infrastructure/messaging/rabbitmq"
	"github.com/baechuer/real-time-ressys/services/events-api/internal/logger"
	"github.com/baechuer/real-time-ressys/services/events-api/internal/query"
	"github.com/baechuer/real-time-ressys/services/events-api/internal/transport/http/handlers"
	authmw "github.com/baechuer/real-time-ressys/services/events-api/internal/transport/http/middleware"
	"github.com/baechuer/real-time-ressys/services/events-api/internal/transport/http/router"
)

const shutdownTimeout = 10 * time.Second

// sysClock implements event.Clock using system time
type sysClock struct{}

func (sysClock) Now() time.Time { return time.Now().UTC() }

// App holds all dependencies for the service
type App struct {
	Config *config.Config
	Server *http.Server
	DB     *sql.DB

	Publisher *rabbitpub.Publisher
	Redis     *rediscache.Client
}

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if !cfg.NamedZone() {
		zlog.Warn().Msg("APP_TIMEZONE and TZ unset: week windows use the database session zone, day windows the process zone")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var db *sql.DB
	if cfg.UsesMemoryStore() {
		zlog.Warn().Msg("DATABASE_URL=memory://: using in-process store, data is lost on exit")
	} else {
		db = openDB(ctx, cfg)
		defer db.Close()
	}

	app := NewApp(cfg, db)
	defer app.Close()

	go func() {
		zlog.Info().Str("addr", cfg.HTTPAddr).Str("tz", cfg.Location.String()).Msg("listening")
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal().Err(err).Msg("server crashed")
		}
	}()

	<-ctx.Done()
	zlog.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.Server.Shutdown(shutdownCtx); err != nil {
		zlog.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func openDB(ctx context.Context, cfg *config.Config) *sql.DB {
	if u, err := url.Parse(cfg.DatabaseURL); err == nil {
		zlog.Info().
			Str("db_user", u.User.Username()).
			Str("db_host", u.Host).
			Str("db_db", u.Path).
			Msg("db config loaded")
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal().Err(err).Msg("db open failed")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		zlog.Fatal().Err(err).Msg("db ping failed")
	}

	if cfg.DBMigrate {
		if err := migrations.Apply(ctx, db); err != nil {
			zlog.Fatal().Err(err).Msg("db migrate failed")
		}
		zlog.Info().Msg("db migrations applied")
	}
	return db
}

// NewApp wires the service. A nil db selects the in-process store.
func NewApp(cfg *config.Config, db *sql.DB) *App {
	app := &App{Config: cfg, DB: db}
	checks := map[string]handlers.PingFunc{}

	// 1) Infrastructure
	var (
		repo      event.EventRepo
		attendees event.AttendeeRepo
	)
	if db != nil {
		repo = postgres.New(db)
		attendees = postgres.NewAttendeeRepo(db)
		checks["postgres"] = db.PingContext
	} else {
		store := memory.New()
		repo, attendees = store, store
	}

	var pub event.EventPublisher = event.NoopPublisher{}
	if cfg.RabbitURL != "" {
		p, err := rabbitpub.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			zlog.Fatal().Err(err).Msg("rabbit publisher init failed")
		}
		app.Publisher = p
		pub = p
		zlog.Info().Str("exchange", p.Exchange()).Msg("rabbit publisher ready")
	} else {
		zlog.Warn().Msg("RABBIT_URL empty: domain events will not be published")
	}

	var versions authmw.TokenVersionChecker
	if cfg.RedisURL != "" {
		rc, err := rediscache.New(cfg.RedisURL)
		if err != nil {
			zlog.Warn().Err(err).Msg("redis unavailable: token revocation checks disabled")
		} else {
			app.Redis = rc
			versions = rc
			checks["redis"] = rc.Ping
		}
	}

	// 2) Application
	svc := event.New(repo, attendees, sysClock{}, pub, query.NewResolver(cfg.Location), cfg.ListPageSize)

	// 3) Transport
	h := handlers.NewEventsHandler(svc)
	auth := authmw.NewAuth(cfg.JWTSecret, cfg.JWTIssuer, versions)
	z := handlers.NewHealthHandler(checks)

	// 4) Router
	httpHandler := router.New(h, auth, z, cfg)

	// 5) Server
	app.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpHandler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}
	return app
}

// Close releases broker and cache connections. The db is owned by main.
func (a *App) Close() {
	if a.Publisher != nil {
		_ = a.Publisher.Close()
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
}
