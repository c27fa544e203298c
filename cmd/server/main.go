package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-cred-guard/internal/config"
	"github.com/MKhiriev/go-cred-guard/internal/handler"
	"github.com/MKhiriev/go-cred-guard/internal/logger"
	"github.com/MKhiriev/go-cred-guard/internal/server"
	"github.com/MKhiriev/go-cred-guard/internal/service"
	"github.com/MKhiriev/go-cred-guard/internal/store"
	"github.com/MKhiriev/go-cred-guard/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	baseLog := logger.NewLogger("go-cred-guard-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		baseLog.Fatal().Err(err).Msg("error getting configs")
	}

	log, err := baseLog.WithLevel(cfg.App.LogLevel)
	if err != nil {
		baseLog.Fatal().Err(err).Msg("error setting log level")
	}
	log.Debug().
		Str("http_address", cfg.Server.HTTPAddress).
		Str("grpc_address", cfg.Server.GRPCAddress).
		Str("db_driver", cfg.Storage.DB.Driver).
		Msg("received configs")
	if cfg.App.Version == "" && buildVersion != "N/A" {
		cfg.App.Version = buildVersion
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	storages, err := store.NewStorages(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	services := service.NewServices(storages, cfg, log)
	if err = bootstrapAdmin(log.WithContext(ctx), services.AccountService, cfg.Security); err != nil {
		log.Fatal().Err(err).Msg("error bootstrapping admin account")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}
	if handlers.GRPC != nil {
		if err = handlers.GRPC.CheckStorage(ctx, storages); err != nil {
			log.Fatal().Err(err).Msg("storage is not reachable")
		}
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	background := workers.NewWorkers(
		workers.NewExpiryWorker(services.AccountService, cfg.Workers.ExpiryScanInterval, log),
	)
	go background.Run(ctx)

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
