package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PanuLaosuwan/faststock-backend/internal/config"
	"github.com/PanuLaosuwan/faststock-backend/internal/database"
	"github.com/PanuLaosuwan/faststock-backend/internal/server"

	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := cfg.NewLogger()
	for _, w := range cfg.Warnings() {
		log.Warn(w)
	}

	db, err := database.Open(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	if err := database.Migrate(db, log); err != nil {
		log.WithError(err).Fatal("database migration failed")
	}

	app := server.New(cfg, db, log)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		sig := <-quit
		log.WithField("signal", sig.String()).Info("shutting down")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			log.WithError(err).Error("server shutdown")
		}
	}()

	addr := ":" + cfg.HTTPPort
	log.WithFields(logrus.Fields{"addr": addr, "env": cfg.AppEnv}).Info("server listening")
	if err := app.Listen(addr); err != nil {
		log.WithError(err).Error("server stopped")
	}

	if err := database.Close(db); err != nil {
		log.WithError(err).Error("database close")
	}
}
