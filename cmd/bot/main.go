// Package main — entry point. Loads configuration, wires the
// application and runs until SIGINT/SIGTERM.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"lgt-bot/internal/app"
	"lgt-bot/internal/config"
)

func main() {
	setupLogging()

	// .env is optional; in Docker everything comes from the environment.
	if err := godotenv.Load(); err == nil {
		log.Debug("Loaded .env file")
	}

	log.Info("=== Bot starting ===")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}

	if level, err := log.ParseLevel(cfg.AppLogLevel); err == nil {
		log.SetLevel(level)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application, err := app.New(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize application")
	}
	defer application.DB.Close()

	if err := application.Bot.Start(ctx); err != nil {
		log.WithError(err).Fatal("Failed to connect to Discord")
	}
	defer application.Bot.Stop()

	if application.Webhook != nil {
		application.Webhook.Start()
	}

	application.Scheduler.Start(ctx)
	defer application.Scheduler.Stop()

	log.Info("=== Bot is ready ===")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Infof("Received signal %s, shutting down...", sig)

	cancel()

	if application.Webhook != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := application.Webhook.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("Webhook server shutdown failed")
		}
	}

	log.Info("=== Bot stopped ===")
}

// setupLogging configures the log format.
func setupLogging() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.DebugLevel)
}
