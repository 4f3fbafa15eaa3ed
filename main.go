package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"painel/internal/config"
	"painel/internal/logger"
	"painel/internal/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}
	log := logger.Configure(cfg.LogLevel, cfg.LogFormat).WithComponent("main")

	log.Info("starting painel", logger.Fields{
		"version":     config.GetVersion(),
		"environment": cfg.Environment,
		"storage":     cfg.StorageMode,
		"data":        cfg.DataFile,
	})

	srv, err := server.NewServer(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to create server", err)
	}
	defer func() {
		if err := srv.Close(); err != nil {
			log.Warn("failed to close server resources", logger.Fields{"error": err.Error()})
		}
	}()

	if err := srv.Run(ctx); err != nil {
		log.Error("server stopped with error", err)
		return
	}
	log.Info("server stopped")
}
