package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/lifepulse/lifepulse-api/internal/ai"         // external text-generation client
	"github.com/lifepulse/lifepulse-api/internal/config"     // internal config loader
	"github.com/lifepulse/lifepulse-api/internal/database"   // MySQL pool
	"github.com/lifepulse/lifepulse-api/internal/handler"    // HTTP handlers
	"github.com/lifepulse/lifepulse-api/internal/middleware" // cache and rate-limit middleware
	"github.com/lifepulse/lifepulse-api/internal/queue"      // background vitals-log consumer
	"github.com/lifepulse/lifepulse-api/internal/repository" // DB repositories
	"github.com/lifepulse/lifepulse-api/internal/router"     // route registration

	queuepublisher "github.com/lifepulse/lifepulse-api/internal/service" // event publisher
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	readings := repository.NewReadingRepo(db)
	vitals := repository.NewVitalsRepo(db)

	// Redis is optional: without it the cache and rate limiter become
	// pass-through middleware and the API still works.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable: response cache and rate limiting disabled")
	}
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	rateMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	readingH := handler.NewReadingHandler(cfg, readings, queuepublisher.PublishReadingRecorded)
	timelineH := handler.NewTimelineHandler(readings, ai.NewClient(cfg.AISummaryURL))
	vitalsH := handler.NewVitalsHandler(vitals)

	// The consumer keeps its own reconnect loop and never brings the
	// server down with it.
	go func() {
		if err := queue.StartVitalsConsumer(); err != nil {
			log.Printf("vitals consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterVitals(e, readingH, timelineH, vitalsH, cfg.JWTSecret, cacheMW, rateMW)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err)
	}
}
