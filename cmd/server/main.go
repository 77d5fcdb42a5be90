package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/example/mediatheque/internal/config"
	"github.com/example/mediatheque/internal/database"
	"github.com/example/mediatheque/internal/handler"
	"github.com/example/mediatheque/internal/middleware"
	"github.com/example/mediatheque/internal/queue"
	"github.com/example/mediatheque/internal/repository"
	"github.com/example/mediatheque/internal/router"
	"github.com/example/mediatheque/internal/sweeper"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	albums := repository.NewAlbumRepo(db)
	copies := repository.NewCopyRepo(db)
	reservations := repository.NewReservationRepo(db)

	e := echo.New()
	e.HideBanner = true

	// Optional redis: response cache on catalog reads plus a token-bucket
	// rate limiter. Both middlewares degrade to pass-through when redis is
	// unreachable, so the API stays up without it.
	rdb := config.NewRedisClient()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
	router.RegisterCatalog(e, handler.NewCatalogHandler(albums, copies), cache)
	router.RegisterClient(e, handler.NewReservationHandler(reservations, copies), cfg.JWTSecret)
	router.RegisterStaff(e,
		handler.NewStaffAlbumHandler(albums),
		handler.NewStaffReservationHandler(reservations, copies),
		cfg.JWTSecret,
	)

	// Background consumer writes reservation events to logs/reservations.log.
	// It reconnects forever on its own; a missing broker must not stop the API.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	sw := sweeper.New(reservations)
	if err := sw.Start(cfg.SweepSpec); err != nil {
		log.Fatalf("overdue sweep: %v", err)
	}
	defer sw.Stop()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
