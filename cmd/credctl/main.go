package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-cred-guard/internal/adapter"
	"github.com/MKhiriev/go-cred-guard/internal/client"
	"github.com/MKhiriev/go-cred-guard/internal/config"
	"github.com/MKhiriev/go-cred-guard/internal/logger"
	"github.com/MKhiriev/go-cred-guard/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	var overrides config.ClientConfig
	flag.StringVar(&overrides.BaseURL, "base-url", "", "go-cred-guard HTTP API base URL")
	flag.DurationVar(&overrides.RequestTimeout, "timeout", 0, "request timeout")
	flag.StringVar(&overrides.Token, "token", "", "session token for authenticated commands")
	logLevel := flag.String("log-level", "warn", "log level")
	flag.Parse()

	log, err := logger.NewLogger("credctl").WithLevel(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.GetClientConfig(overrides)
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	credentialClient, err := adapter.NewHTTPCredentialClient(cfg.BaseURL, cfg.RequestTimeout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating credential client")
	}
	credentialClient.SetToken(cfg.Token)

	app, err := client.NewApp(credentialClient, buildInfo(), os.Stdout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init credctl error")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err = app.Run(ctx, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "credctl: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func buildInfo() models.AppBuildInfo {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	return models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
}
