package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"kuesioner/internal"
	"kuesioner/internal/config"
	"kuesioner/internal/container"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		internal.DefaultLogger.Info("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		internal.DefaultLogger.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	logger := internal.NewLogger(internal.ParseLevel(appConfig.Log.Level))

	c, err := container.New(appConfig, logger)
	if err != nil {
		logger.Error("Failed to initialize application: %v", err)
		os.Exit(1)
	}
	defer c.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c.InitServer()
	logger.Info("Serving tallies from %s (poll every %s)", appConfig.Sheet.EndpointURL, appConfig.Poll.Interval)

	if err := c.Serve(ctx); err != nil {
		logger.Error("Server stopped: %v", err)
		stop()
		c.Close()
		os.Exit(1)
	}
}
