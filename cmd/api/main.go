package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hugohenrick/pdv-restaurante/internal/config"
	"github.com/hugohenrick/pdv-restaurante/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Erro ao carregar configuração: %v", err)
	}

	zl, err := logger.NewLogger(cfg.Server.Mode)
	if err != nil {
		log.Fatalf("Erro ao criar logger: %v", err)
	}

	if err := run(cfg, zl); err != nil {
		zl.Error("Aplicação encerrada com erro", "error", err)
		_ = zl.Sync()
		os.Exit(1)
	}
	zl.Info("Aplicação encerrada")
	_ = zl.Sync()
}

func run(cfg *config.Config, zl *logger.ZapLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := NewApp(ctx, cfg, zl)
	if err != nil {
		return err
	}
	defer app.Close()

	return app.Run(ctx)
}
