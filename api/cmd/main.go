package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"net/url"
	"time"

	_ "github.com/lib/pq"

	"github.com/secretariat-suite/engagement-service/internal/application/engagement"
	eventapp "github.com/secretariat-suite/engagement-service/internal/application/event"
	"github.com/secretariat-suite/engagement-service/internal/config"
	rediscache "github.com/secretariat-suite/engagement-service/internal/infrastructure/caching/redis"
	"github.com/secretariat-suite/engagement-service/internal/infrastructure/db/postgres"
	rabbitpub "github.com/secretariat-suite/engagement-service/internal/infrastructure/messaging/rabbitmq"
	"github.com/secretariat-suite/engagement-service/internal/logger"
	"github.com/secretariat-suite/engagement-service/internal/transport/http/handlers"
	authmw "github.com/secretariat-suite/engagement-service/internal/transport/http/middleware"
	"github.com/secretariat-suite/engagement-service/internal/transport/http/router"
	zlog "github.com/rs/zerolog/log"
)

// sysClock implements the application Clock interfaces using system time
type sysClock struct{}

func (sysClock) Now() time.Time { return time.Now().UTC() }

// App holds all dependencies for the service
type App struct {
	Config *config.Config
	Server *http.Server
	DB     *sql.DB

	Cache     *rediscache.Client
	Publisher *rabbitpub.Publisher
}

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	u, _ := url.Parse(cfg.DatabaseURL)
	zlog.Info().
		Str("db_user", u.User.Username()).
		Str("db_host", u.Host).
		Str("db_db", u.Path).
		Msg("db config loaded")

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal().Err(err).Msg("db open failed")
	}
	defer db.Close()

	{
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			zlog.Fatal().Err(err).Msg("db ping failed")
		}
	}

	app := NewApp(cfg, db)
	defer func() {
		if app.Publisher != nil {
			_ = app.Publisher.Close()
		}
		if app.Cache != nil {
			_ = app.Cache.Close()
		}
	}()

	zlog.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
	if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		zlog.Fatal().Err(err).Msg("server crashed")
	}
}

func NewApp(cfg *config.Config, db *sql.DB) *App {
	// 1) Infrastructure
	counterStore := postgres.NewCounterStore(db)
	eventRepo := postgres.NewEventRepo(db)

	var cache *rediscache.Client
	var engineCache engagement.Cache
	if cfg.RedisURL != "" {
		c, err := rediscache.New(cfg.RedisURL)
		if err != nil {
			zlog.Warn().Err(err).Msg("redis unavailable: counter reads uncached")
		} else {
			cache = c
			engineCache = c
		}
	}

	var rabbit *rabbitpub.Publisher
	var pub engagement.NotificationPublisher = engagement.NoopPublisher{}
	if cfg.RabbitURL != "" {
		p, err := rabbitpub.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			zlog.Fatal().Err(err).Msg("rabbit publisher init failed")
		}
		rabbit = p
		pub = p
		zlog.Info().Str("exchange", cfg.RabbitExchange).Msg("rabbit publisher ready")
	} else {
		zlog.Warn().Msg("RABBIT_URL empty: engagement notifications will not be published")
	}

	// 2) Application
	engine := engagement.New(counterStore, eventRepo, sysClock{}, pub, engineCache, cfg.CacheTTLCounter)
	eventSvc := eventapp.New(eventRepo, engine, sysClock{})

	// 3) Transport
	eventsH := handlers.NewEventsHandler(eventSvc)
	countersH := handlers.NewCountersHandler(engine)
	reconcileH := handlers.NewReconcileHandler(engine, cfg.ReconcileTimeout)
	auth := authmw.NewAuth(cfg.JWTSecret, cfg.JWTIssuer)
	z := handlers.NewHealthHandler()

	// 4) Router
	httpHandler := router.New(eventsH, countersH, reconcileH, auth, z, cfg)

	// 5) Server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpHandler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	return &App{
		Config:    cfg,
		Server:    srv,
		DB:        db,
		Cache:     cache,
		Publisher: rabbit,
	}
}
