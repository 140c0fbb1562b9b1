package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/lawoh/bixi-stats/config"
	"github.com/lawoh/bixi-stats/handlers"
	"github.com/lawoh/bixi-stats/middleware"
	"github.com/lawoh/bixi-stats/utils/logger"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		// A missing .env file is fine; real deployments set env directly.
		logger.Get().Debug().Err(err).Msg("no .env file loaded")
	}
	config.Load()

	logger.Init(logger.Config{
		Level:      config.App.LogLevel,
		Console:    config.App.LogConsole,
		FilePath:   config.App.LogFile,
		MaxSizeMB:  config.App.LogMaxSizeMB,
		MaxBackups: config.App.LogMaxBackups,
		MaxAgeDays: config.App.LogMaxAgeDays,
	})
	log := logger.Get()

	config.InitCache()
	handlers.InitBasemaps(config.App.BasemapsFile)

	log.Info().
		Str("data_dir", config.App.DataDir).
		Str("preferred_year", config.App.PreferredYear).
		Msg("starting server initialization")

	r := mux.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: config.App.AllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Origin"},
		MaxAge:         86400,
	})

	r.Use(corsHandler.Handler)
	r.Use(middleware.RecoveryMiddleware)
	r.Use(middleware.LoggingMiddleware)
	r.Use(gorillahandlers.CompressHandler)

	r.HandleFunc("/", handlers.GetDashboardPage).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()
	registerRoutes(api)
	log.Info().Msg("routes registered")

	srv := &http.Server{
		Handler:           r,
		Addr:              ":" + config.App.Port,
		WriteTimeout:      30 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case <-stop:
		log.Info().Msg("shutdown signal received")
	case err := <-serverErrors:
		log.Error().Err(err).Msg("server error")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	} else {
		log.Info().Msg("server shutdown completed")
	}
}

func registerRoutes(api *mux.Router) {
	api.HandleFunc("/years", handlers.GetYears).Methods("GET")
	api.HandleFunc("/analysis/{year}", handlers.GetYearlyAnalysis).Methods("GET")
	api.HandleFunc("/map/{year}", handlers.GetStationMap).Methods("GET")
	api.HandleFunc("/stations/{year}", handlers.GetStations).Methods("GET")
	api.HandleFunc("/chart/{year}", handlers.GetPeriodChart).Methods("GET")
	api.HandleFunc("/health", handlers.HealthCheck).Methods("GET")
}
