package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/Vilis322/roomsizer/internal/application"
	"github.com/Vilis322/roomsizer/internal/config"
	"github.com/Vilis322/roomsizer/internal/logging"
)

var signalNotify = signal.Notify

func main() {
	kingpinApp := kingpin.New("roomsizer-server", "RoomSizer - wallpaper roll calculator HTTP service")
	configFile := kingpinApp.Flag("config", "Path to YAML configuration file").String()
	port := kingpinApp.Flag("port", "HTTP port exposed by the service").String()
	rollWidthFlag := kingpinApp.Flag("roll-width", "Default roll width in meters").Default("0").Float64()
	rollLengthFlag := kingpinApp.Flag("roll-length", "Default roll length in meters").Default("0").Float64()
	dropAllowanceFlag := kingpinApp.Flag("drop-allowance", "Default drop allowance per strip in meters").Default("-1").Float64()
	extraFactorFlag := kingpinApp.Flag("extra-factor", "Default waste factor multiplier").Default("0").Float64()
	logFileFlag := kingpinApp.Flag("log-file", "Write logs to this file in addition to stderr").String()
	rateLimitRPSFlag := kingpinApp.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("-1").Float64()
	rateLimitBurstFlag := kingpinApp.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int()

	kingpin.MustParse(kingpinApp.Parse(os.Args[1:]))

	overrides := &config.CLIOverrides{
		ConfigFile: *configFile,
	}

	if *port != "" {
		overrides.Port = port
	}

	if *rollWidthFlag > 0 {
		overrides.RollWidth = rollWidthFlag
	}

	if *rollLengthFlag > 0 {
		overrides.RollLength = rollLengthFlag
	}

	if *dropAllowanceFlag >= 0 {
		overrides.DropAllowance = dropAllowanceFlag
	}

	if *extraFactorFlag >= 1.0 {
		overrides.ExtraFactor = extraFactorFlag
	}

	if *logFileFlag != "" {
		overrides.LogFile = logFileFlag
	}

	if *rateLimitRPSFlag >= 0 {
		overrides.RateLimitRPS = rateLimitRPSFlag
	}

	if *rateLimitBurstFlag >= 0 {
		overrides.RateLimitBurst = rateLimitBurstFlag
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	logger, err := logging.New(cfg.LogFile)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}

	if err := app.Start(); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}

	shutdown(app.Server(), cfg.ShutdownGracePeriod, logger)
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
