package main

import (
	"context"
	"log"
	"time"

	"formflow-be/internal/config"
	"formflow-be/internal/constant"
	"formflow-be/internal/pkg/logger"
	"formflow-be/internal/repository/unitofwork"
	"formflow-be/internal/service"
	"formflow-be/pkg/database"
	"formflow-be/pkg/events"
	"formflow-be/pkg/lock"
	pktNats "formflow-be/pkg/nats"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

// Scheduled purge job. Runs nightly, takes a cluster-wide lock so only one
// instance purges, and removes form sessions older than the retention window.
func main() {
	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	sessionService := service.NewSessionService(unitofwork.NewRepositoryFactory(db), sysLogger)

	var locker lock.Locker
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Using in-process lock", err)
		locker = lock.NewLocalLocker()
	} else {
		locker = lock.NewRedisLocker(rdb, cfg.Submission.LockTTL)
	}

	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	runPurge := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		handle, err := locker.Acquire(ctx, constant.PurgeLockName)
		if err != nil {
			log.Printf("[WARN] Skipping purge run, could not acquire lock: %v", err)
			return
		}
		defer handle.Release(ctx)

		cutoff := time.Now().AddDate(0, 0, -cfg.Submission.SessionTTLDays)
		removed, err := sessionService.Purge(ctx, cutoff)
		if err != nil {
			log.Printf("[ERROR] Purge run failed: %v", err)
			return
		}
		log.Printf("[SUCCESS] Purge removed %d sessions older than %s", removed, cutoff.Format(time.RFC3339))

		if natsPub != nil {
			if err := natsPub.Publish(ctx, events.NewSessionsPurged(cutoff, removed)); err != nil {
				log.Printf("[WARN] Failed to publish purge event: %v", err)
			}
		}
	}

	// One run at startup, then nightly.
	runPurge()

	c := cron.New()
	if _, err := c.AddFunc("0 3 * * *", runPurge); err != nil {
		log.Fatalf("Failed to schedule purge job: %v", err)
	}

	log.Println("✅ Purge scheduler started")
	c.Run()
}
