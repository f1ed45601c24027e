package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/outfitly/storefront/internal/config"
	"github.com/outfitly/storefront/internal/events"
	"github.com/outfitly/storefront/internal/httpserver"
	"github.com/outfitly/storefront/internal/repo"
	"github.com/outfitly/storefront/internal/search"
	"github.com/outfitly/storefront/internal/seed"
	"github.com/outfitly/storefront/internal/service"
	"github.com/outfitly/storefront/pkg/db"
	"github.com/outfitly/storefront/pkg/logging"
	authmw "github.com/outfitly/storefront/pkg/middleware/auth"
	loggingmw "github.com/outfitly/storefront/pkg/middleware/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	e := echo.New()
	e.HideBanner = true

	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(authmw.Authenticate(cfg.JWTSecret))

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gormDB, err := db.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	storeRepo := &repo.GormRepo{DB: gormDB}

	var index *search.Index
	if cfg.ESURL != "" {
		index, err = search.NewIndex(cfg.ESURL, cfg.ESUser, cfg.ESPassword, cfg.ESIndex)
		if err != nil {
			log.Fatalf("search init error: %v", err)
		}
	}

	seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = seed.Run(seedCtx, storeRepo, index, logger)
	cancel()
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}

	var publisher events.Publisher = events.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.InteractionTopic)
	}
	defer publisher.Close()

	interactions := &service.Recorder{Repo: storeRepo, Events: publisher}
	cartService := &service.CartService{Repo: storeRepo, Interactions: interactions}
	catalogService := &service.CatalogService{Repo: storeRepo, Interactions: interactions, Search: index}
	checkoutService := &service.CheckoutService{
		Repo:                storeRepo,
		Cart:                cartService,
		Interactions:        interactions,
		AddressFirstDefault: cfg.AddressFirstDefault,
	}
	orderService := &service.OrderService{Repo: storeRepo}
	addressService := &service.AddressService{Repo: storeRepo, FirstDefault: cfg.AddressFirstDefault}

	httpserver.Register(e, &httpserver.Deps{
		Catalog:   &httpserver.CatalogHTTP{Svc: catalogService, Search: index},
		Cart:      &httpserver.CartHTTP{Svc: cartService, GuestPolicy: cfg.GuestCartPolicy, LoginURL: cfg.LoginURL},
		Checkout:  &httpserver.CheckoutHTTP{Svc: checkoutService, Addresses: addressService},
		Orders:    &httpserver.OrderHTTP{Svc: orderService},
		Addresses: &httpserver.AddressHTTP{Svc: addressService},
		LoginURL:  cfg.LoginURL,
	})

	go func() {
		logger.Info("starting storefront", "port", cfg.ServerPort)
		if err := e.Start(fmt.Sprintf(":%d", cfg.ServerPort)); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("echo shutdown", "error", err)
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Info("server stopped")
}
