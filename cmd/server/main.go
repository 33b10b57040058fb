package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/auth"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/config"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/events"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/handlers"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/logger"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/media"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/middleware"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/presence"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/repository"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/routes"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/service"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/speech"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/storage"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/ws"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic(err)
	}
	dev := cfg.App.Env == "development"

	log, err := logger.New(dev)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	mc, err := repository.Connect(ctx, cfg.Mongo.URI)
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	db := mc.Database(cfg.Mongo.Database)
	userRepo := repository.NewUserRepo(db.Collection("users"))
	msgRepo := repository.NewMessageRepo(db.Collection("messages"))
	mediaRepo := repository.NewMediaRepo(db.Collection("media"))

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("redis connect: %v", err)
	}

	store, err := storage.NewS3Store(ctx, cfg.AWS.Region, cfg.AWS.Bucket, cfg.AWS.Endpoint, cfg.S3.PublicRead)
	if err != nil {
		log.Fatalf("s3 init: %v", err)
	}

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.AccessTokenTTL)
	pres := presence.NewStore(rdb, cfg.Redis.Prefix, 2*time.Minute)
	hub := ws.NewHub()
	wsServer := ws.NewServer(hub, pres, userRepo, log)

	var bus service.EventPublisher = service.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		producer := events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer func() { _ = producer.Close() }()
		bus = producer
	}

	mediaSvc := media.NewService(mediaRepo, store, cfg.PresignTTL, cfg.Upload.MaxBytes, log)
	chatSvc := service.NewChatService(msgRepo, userRepo, hub, bus, log)
	authSvc := service.NewAuthService(userRepo, tokens)
	userSvc := service.NewUserService(userRepo)
	transcriber := speech.NewScriptTranscriber(cfg.Speech.Python, cfg.Speech.Script, cfg.SpeechTimeout)

	limiter := middleware.NewRateLimiter(rdb, cfg.Redis.Prefix+":rl", cfg.RateLimit.Limit, cfg.RateLimitWindow)

	app := fiber.New(fiber.Config{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Upload.MaxBytes) + 1024*1024,
	})
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	routes.Register(app, routes.Deps{
		Tokens:  tokens,
		Limiter: limiter,
		Auth:    handlers.NewAuthHandler(authSvc),
		Users:   handlers.NewUserHandler(userSvc, pres),
		Chat:    handlers.NewChatHandler(chatSvc),
		Media:   handlers.NewMediaHandler(mediaSvc, chatSvc, log),
		Speech:  handlers.NewSpeechHandler(mediaSvc, transcriber, log),
		WS:      wsServer,
	})

	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		log.Infof("listening on %s", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("shutdown requested")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	_ = app.Shutdown()
	_ = mc.Disconnect(shutdownCtx)
	_ = rdb.Close()
	log.Info("shutdown completed")
}
