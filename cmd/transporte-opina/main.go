package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/henriqued25/transporte-opina/internal/config"
	"github.com/henriqued25/transporte-opina/internal/database"
	"github.com/henriqued25/transporte-opina/internal/handler"
	"github.com/henriqued25/transporte-opina/internal/logger"
	"github.com/henriqued25/transporte-opina/internal/repository"
	"github.com/henriqued25/transporte-opina/internal/router"
	"github.com/henriqued25/transporte-opina/internal/server"
	"github.com/henriqued25/transporte-opina/internal/service"
)

const (
	migrationTimeout = 30 * time.Second
	shutdownTimeout  = 30 * time.Second
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	defer loggerService.Shutdown()

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	if cfg.Database.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), migrationTimeout)
		if err := database.Migrate(ctx, &log, cfg); err != nil {
			log.Error().Err(err).Str("diagnosis", database.Diagnose(err)).Msg("failed to migrate database")
		}
		cancel()
	}

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	repos := repository.NewRepositories(srv)

	services, err := service.NewService(srv, repos)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create services")
	}

	handlers := handler.NewHandlers(srv, services)

	r := router.NewRouter(srv, handlers)

	srv.SetupHTTPServer(r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	log.Info().Msg("server exited properly")
}
