package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/iwvelando/auction-analyzer/internal/calculator"
	"github.com/iwvelando/auction-analyzer/internal/config"
	"github.com/iwvelando/auction-analyzer/internal/server"
	"github.com/iwvelando/auction-analyzer/pkg/constants"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	configLocation := flag.String("config", constants.DefaultServerConfigFile, "path to server configuration file")
	scenarioLocation := flag.String("rates-config", "", "optional scenario file whose rates section replaces the defaults")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	envFile := flag.String("env-file", constants.DefaultEnvFile, "optional dotenv file with AUCTION_ overrides")
	maxUploadSize := flag.String("max-upload-size", "", "request body limit override, e.g. 512K or 2M")
	flag.Parse()

	if err := config.LoadEnvFile(*envFile); err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load env file %s\", \"error\": \"%v\"}\n", *envFile, err)
		os.Exit(1)
	}

	cfg, err := server.LoadConfig(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	if *maxUploadSize != "" {
		size, err := server.ParseSize(*maxUploadSize)
		if err != nil {
			fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"invalid -max-upload-size %s\", \"error\": \"%v\"}\n", *maxUploadSize, err)
			os.Exit(1)
		}
		cfg.SetUploadSizeBytes(size)
	}

	logger, err := config.NewLogger(cfg.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	rates := calculator.DefaultRates()
	if *scenarioLocation != "" {
		scenario, err := config.LoadConfiguration(*scenarioLocation)
		if err != nil {
			logger.Fatal("failed to load rates configuration",
				zap.String("op", "main"),
				zap.String("path", *scenarioLocation),
				zap.Error(err),
			)
		}
		rates = scenario.Rates
	}

	calc, err := calculator.New(rates)
	if err != nil {
		logger.Fatal("invalid rates",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	buildVersion := version
	if cfg.Version != "" {
		buildVersion = cfg.Version
	}

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           server.NewHandler(logger, calc, cfg.UploadSizeBytes(), buildVersion),
		ReadHeaderTimeout: cfg.ReadHeaderTimeoutDuration(),
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server",
			zap.String("op", "main"),
			zap.String("address", cfg.Address),
			zap.String("version", buildVersion),
			zap.Int64("maxUploadSize", cfg.UploadSizeBytes()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Warn("received signal, shutting down",
			zap.String("op", "main"),
			zap.String("signal", sig.String()),
		)
	case err, ok := <-serverErr:
		if ok {
			logger.Fatal("HTTP server failed",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeoutDuration())
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
