package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tutordesk/internal/academy"
	"tutordesk/internal/auth"
	"tutordesk/internal/config"
	"tutordesk/internal/handler"
	"tutordesk/internal/httpmiddleware"
	"tutordesk/internal/metrics"
	"tutordesk/internal/notify"
	"tutordesk/internal/queue"
	"tutordesk/internal/seed"
	"tutordesk/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.Must(zap.NewProduction()).Fatal("config load failed", zap.Error(err))
	}

	log := newLogger(cfg)
	defer func() { _ = log.Sync() }()

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("api failed", zap.Error(err))
	}
}

func newLogger(cfg config.App) *zap.Logger {
	if cfg.Production() {
		return zap.Must(zap.NewProduction())
	}
	return zap.Must(zap.NewDevelopment())
}

func run(ctx context.Context, cfg config.App, log *zap.Logger) error {
	var db *store.DB
	if cfg.DatabaseURL != "" {
		connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		d, err := store.NewDB(connectCtx, cfg.DatabaseURL)
		cancel()
		if err != nil {
			if cfg.SeedSource == "postgres" {
				return err
			}
			log.Warn("db not reachable", zap.Error(err))
		} else {
			db = d
			defer func() { _ = db.Close() }()
		}
	}

	var sqlDB *sql.DB
	if db != nil {
		sqlDB = db.Client
	}
	snap, err := seed.Load(ctx, cfg.SeedSource, cfg.SeedFile, sqlDB)
	if err != nil {
		return err
	}
	st, err := academy.NewStore(snap)
	if err != nil {
		return err
	}
	log.Info("roster loaded",
		zap.String("source", cfg.SeedSource),
		zap.Int("students", len(snap.Students)),
		zap.Int("staff", len(snap.Staff)),
		zap.Int("sessions", len(snap.Sessions)),
	)

	var (
		q   queue.Queue
		rdb *store.Redis
	)
	if cfg.QueueBackend == "redis" {
		rdb = store.NewRedis(cfg.RedisAddr)
		defer func() { _ = rdb.Close() }()
		q = queue.NewRedisQueue(rdb.Client, cfg.QueueKey)
	} else {
		q = queue.NewInMemory(64)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	reg.MustRegister(metrics.NewStoreCollector(st))
	rejected := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tutordesk_rate_limited_total",
		Help: "Requests rejected by the rate limiter.",
	})
	reg.MustRegister(rejected)

	feed := notify.NewFeed(cfg.FeedSize)
	svc := academy.NewService(st, notify.Multi{feed, notify.NewPublisher(q)}, metrics.NewRecorder(reg), log.Named("academy"))

	router := handler.NewRouter(handler.Options{
		Service:        svc,
		Auth:           auth.NewAuthenticator(cfg.LoginDelay),
		Signer:         auth.NewSigner(cfg.JWTIssuer, cfg.JWTSigningKey, cfg.AccessTTL, cfg.RefreshTTL),
		Feed:           feed,
		Gatherer:       reg,
		Limiter:        httpmiddleware.NewTokenBucket(cfg.RateLimitPerMin, cfg.RateLimitPerMin, rejected),
		Health:         healthCheck(db, rdb),
		DashboardLimit: cfg.DashboardLimit,
		Logger:         log.Named("http"),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if cfg.QueueBackend == "memory" {
		// no external worker reads the in-process queue
		g.Go(func() error {
			return queue.Drain(gctx, q, func(msg queue.Message) {
				n, err := notify.Decode(msg)
				if err != nil {
					log.Warn("undecodable notification", zap.Error(err))
					return
				}
				log.Debug("notification", zap.String("level", string(n.Level)), zap.String("message", n.Message))
			})
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("server exited")
	return nil
}

func healthCheck(db *store.DB, rdb *store.Redis) func(ctx context.Context) map[string]bool {
	return func(ctx context.Context) map[string]bool {
		deps := map[string]bool{}
		if db != nil {
			deps["db"] = db.Client.PingContext(ctx) == nil
		}
		if rdb != nil {
			deps["redis"] = rdb.Healthy(ctx)
		}
		return deps
	}
}
