package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/landsuite/plot-erp/internal/clock"
	"github.com/landsuite/plot-erp/internal/config"
	"github.com/landsuite/plot-erp/internal/database"
	"github.com/landsuite/plot-erp/internal/engine"
	"github.com/landsuite/plot-erp/internal/handler"
	appmw "github.com/landsuite/plot-erp/internal/middleware"
	"github.com/landsuite/plot-erp/internal/notify"
	"github.com/landsuite/plot-erp/internal/queue"
	"github.com/landsuite/plot-erp/internal/repository"
	"github.com/landsuite/plot-erp/internal/router"
)

func main() {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	store := repository.NewStore(db)
	tokens := repository.NewTokenRepo(db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	settings, err := store.EnsureSettings(ctx)
	if err != nil {
		log.Fatalf("settings: %v", err)
	}
	log.Printf("settings: hold=%dh auto_expire=%v", settings.DefaultHoldHours, settings.AutoExpireHold)

	var notifier notify.Notifier = notify.LogNotifier{}
	if cfg.AMQPURL != "" {
		notifier = notify.NewAMQPNotifier(cfg.AMQPURL)
		go func() {
			if err := queue.StartNotificationConsumer(cfg.AMQPURL); err != nil {
				log.Printf("notify-consumer: %v", err)
			}
		}()
	}

	clk := clock.NewSystem()
	holds := engine.NewHoldService(store, clk, notifier)
	bookings := engine.NewBookingService(store, clk, notifier)
	sweeper := engine.NewSweeper(store, clk, notifier)
	go sweeper.Start(ctx, cfg.SweepInterval)

	cacheCfg := config.LoadCacheConfig()
	rdb := config.NewRedisClient()
	cacheMW := appmw.NewRedisCache(cacheCfg, rdb)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	router.Register(e, router.Handlers{
		Auth:     handler.NewAuthHandler(store, tokens, cfg),
		User:     handler.NewUserHandler(store),
		Project:  handler.NewProjectHandler(store),
		Plot:     handler.NewPlotHandler(store, holds),
		Lead:     handler.NewLeadHandler(store),
		Activity: handler.NewActivityHandler(store),
		Booking:  handler.NewBookingHandler(store, bookings),
		Document: handler.NewDocumentHandler(store),
		Settings: handler.NewSettingsHandler(store),
	}, cfg.JWTSecret, cacheMW)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
