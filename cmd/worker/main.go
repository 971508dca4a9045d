package main

import (
	"context"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tutordesk/internal/academy"
	"tutordesk/internal/config"
	"tutordesk/internal/notify"
	"tutordesk/internal/queue"
	"tutordesk/internal/store"
)

// Worker consumes notifications published by the API over Redis and
// writes them to the structured log.
func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.Must(zap.NewProduction()).Fatal("config load failed", zap.Error(err))
	}

	log := zap.Must(zap.NewDevelopment())
	if cfg.Production() {
		log = zap.Must(zap.NewProduction())
	}
	defer func() { _ = log.Sync() }()

	if cfg.QueueBackend != "redis" {
		log.Fatal("worker needs QUEUE_BACKEND=redis", zap.String("backend", cfg.QueueBackend))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb := store.NewRedis(cfg.RedisAddr)
	defer func() { _ = rdb.Close() }()
	if !rdb.Healthy(ctx) {
		log.Warn("redis not reachable, consumer will retry", zap.String("addr", cfg.RedisAddr))
	}

	q := queue.NewRedisQueue(rdb.Client, cfg.QueueKey)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("worker started", zap.String("key", cfg.QueueKey))
		return queue.Drain(gctx, q, func(msg queue.Message) {
			if msg.Type != notify.MessageType {
				return
			}
			n, err := notify.Decode(msg)
			if err != nil {
				log.Warn("undecodable notification", zap.Error(err))
				return
			}
			fields := []zap.Field{
				zap.String("entity", n.Entity),
				zap.String("entity_id", n.EntityID),
				zap.String("op", n.Op),
				zap.Time("at", n.At),
			}
			if n.Level == academy.LevelError {
				log.Warn(n.Message, fields...)
				return
			}
			log.Info(n.Message, fields...)
		})
	})

	if err := g.Wait(); err != nil {
		log.Error("worker failed", zap.Error(err))
	}
	log.Info("worker stopped")
}
