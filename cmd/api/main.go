package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"truckpro/internal/api"
	"truckpro/internal/config"
	"truckpro/internal/modules/assistance"
	"truckpro/internal/modules/booking"
	"truckpro/internal/modules/maintenance"
	"truckpro/internal/modules/session"
	"truckpro/internal/modules/telemetry"
	"truckpro/pkg/email"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.WithError(err).Fatal("could not load config")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dbpool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("could not create database pool")
	}
	defer dbpool.Close()
	if err := dbpool.Ping(ctx); err != nil {
		log.WithError(err).Fatal("could not reach database")
	}

	var mailer email.Sender
	if cfg.EmailEnabled {
		mailer, err = email.NewSESSender(ctx, cfg.SESRegion, cfg.EmailFrom)
		if err != nil {
			log.WithError(err).Fatal("could not initialize email sender")
		}
	} else {
		mailer = &email.LogSender{Log: log}
	}

	// Telemetry pipeline: feed client, stores and their tick loops.
	client := telemetry.NewClient(cfg.FleetFeedURL, cfg.DriverFeedURL, cfg.ShipperFeedURL, cfg.FetchTimeout)
	telemetrySvc := telemetry.NewService(client, cfg.RotateInterval, cfg.RefreshInterval, log)
	telemetrySvc.Start(ctx)
	defer telemetrySvc.Stop()

	sessionSvc := session.NewService(cfg.JWTSecret)
	bookingSvc := booking.NewService(booking.NewRepository(dbpool), mailer, log)
	maintenanceSvc := maintenance.NewService(maintenance.NewRepository(dbpool), telemetrySvc)
	assistanceSvc := assistance.NewService(assistance.NewRepository(dbpool), telemetrySvc, mailer, cfg.EmailFrom, log)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.ClientOrigin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowCredentials: true,
	}))

	api.SetupRoutes(e, api.Handlers{
		Session:     session.NewHandler(sessionSvc),
		Telemetry:   telemetry.NewHandler(telemetrySvc),
		Booking:     booking.NewHandler(bookingSvc),
		Maintenance: maintenance.NewHandler(maintenanceSvc),
		Assistance:  assistance.NewHandler(assistanceSvc),
	}, cfg.JWTSecret)

	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server stopped unexpectedly")
		}
	}()
	log.WithField("port", cfg.ServerPort).Info("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("forced shutdown")
	}
}
