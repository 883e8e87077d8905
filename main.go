package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"Mises/internal/config"
	"Mises/internal/logging"
	"Mises/internal/server"

	"go.uber.org/zap"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(os.Getenv("MISES_CONFIG"))
	if err != nil {
		log.Fatalf("Ошибка конфигурации: %v", err)
	}
	logger, err := logging.FromConfig(cfg.Logging, false)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if err := server.Run(ctx, cfg, logger); err != nil {
		logger.Fatal("Ошибка сервера", zap.Error(err))
	}
}
