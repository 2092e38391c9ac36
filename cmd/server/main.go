package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/rayhank/busflow/internal/config"
	"github.com/rayhank/busflow/internal/database"
	"github.com/rayhank/busflow/internal/handler"
	"github.com/rayhank/busflow/internal/middleware"
	"github.com/rayhank/busflow/internal/queue"
	"github.com/rayhank/busflow/internal/repository"
	"github.com/rayhank/busflow/internal/router"
	"github.com/rayhank/busflow/internal/service"
)

func main() {
	// .env is optional; deployments usually set variables directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client disables rate limiting and the
	// occupancy cache but leaves every endpoint functional.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and occupancy cache disabled")
	}

	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	busRepo := repository.NewBusRepo(db)
	bookingRepo := repository.NewBookingRepo(db)

	bookings := service.NewBookingService(
		bookingRepo,
		busRepo,
		service.NewOccupancyCache(rdb, cfg.OccupancyTTL),
		service.PublishTicketEvent,
	)

	authH := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	publicH := handler.NewPublicHandler(busRepo, bookings)
	bookingH := handler.NewBookingHandler(bookings)
	driverH := handler.NewDriverHandler(busRepo)
	adminH := handler.NewAdminHandler(cfg, busRepo, userRepo)

	e := echo.New()
	e.HideBanner = true

	limiter := middleware.NewFixedWindow(config.LoadRateLimitConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret, limiter)
	router.RegisterPublic(e, publicH)
	router.RegisterPassenger(e, bookingH, cfg.JWTSecret, limiter)
	router.RegisterDriver(e, driverH, cfg.JWTSecret)
	router.RegisterAdmin(e, adminH, cfg.JWTSecret)

	// Background consumer mirrors booked/cancelled events into logs/booking.log.
	go func() {
		if err := queue.StartTicketConsumer(); err != nil {
			log.Printf("ticket-consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("busflow listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
