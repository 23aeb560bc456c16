package bootstrap

import (
	"context"
	"log"

	"formflow-be/internal/casegraph"
	"formflow-be/internal/config"
	"formflow-be/internal/controller"
	"formflow-be/internal/engine"
	"formflow-be/internal/nav"
	"formflow-be/internal/pkg/logger"
	"formflow-be/internal/pkg/remote"
	"formflow-be/internal/repository/unitofwork"
	"formflow-be/internal/service"
	"formflow-be/pkg/lock"
	"formflow-be/pkg/volatility"

	pktNats "formflow-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SubmissionController controller.ISubmissionController
	SessionController    controller.ISessionController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Shared services, exposed for the scheduled jobs
	SessionService service.ISessionService
	Locker         lock.Locker
	Logger         logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	redisUp := true
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		redisUp = false
	}

	// Locking and volatility tracking degrade to in-process backends when
	// Redis is unreachable, which is only safe for single-instance deploys.
	var locker lock.Locker
	var volCache volatility.Cache
	if redisUp {
		locker = lock.NewRedisLocker(rdb, cfg.Submission.LockTTL)
		volCache = volatility.NewRedisCache(rdb, cfg.Submission.VolatilityTTL)
	} else {
		log.Printf("[WARN] Falling back to in-process lock and volatility cache")
		locker = lock.NewLocalLocker()
		volCache = volatility.NewMemoryCache(cfg.Submission.VolatilityTTL)
	}
	tracker := volatility.NewTracker(volCache)

	// 3. Domain components
	formEngine := engine.NewXFormEngine()
	processor := casegraph.NewProcessor(sysLogger)
	navResolver := nav.NewResolver(sysLogger)
	submitClient := remote.NewSubmitClient(cfg.Remote.Timeout)
	syncClient := remote.NewSyncClient(cfg.Remote.SyncURL, cfg.Remote.Timeout)

	// 4. Services
	submissionService := service.NewSubmissionService(
		uowFactory,
		formEngine,
		processor,
		submitClient,
		syncClient,
		navResolver,
		tracker,
		pubSub,
		cfg.Submission,
		sysLogger,
	)
	sessionService := service.NewSessionService(uowFactory, sysLogger)
	consumerService := service.NewConsumerService(pubSub, cfg.Submission.SubmittedTopicName, natsPub)

	// 5. Controllers
	return &Container{
		SubmissionController: controller.NewSubmissionController(submissionService, locker, sysLogger),
		SessionController:    controller.NewSessionController(sessionService),

		ConsumerService: consumerService,
		SessionService:  sessionService,
		Locker:          locker,
		Logger:          sysLogger,
	}
}
