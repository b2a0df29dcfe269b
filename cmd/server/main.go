package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/Gunvolt24/bookstore_orders/config"
	"github.com/Gunvolt24/bookstore_orders/internal/app"
	"github.com/joho/godotenv"
)

func main() {
	// .env.local — только для локального запуска; в контейнере переменные приходят из окружения.
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, cleanup, err := app.Bootstrap(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	defer cleanup()

	if err := application.Run(ctx); err != nil {
		application.Logger.Errorf(ctx, "application stopped with error: %v", err)
	}
}
