package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rl1809/shopping-cart/internal/adapter/storage"
	"github.com/rl1809/shopping-cart/internal/config"
	"github.com/rl1809/shopping-cart/internal/core/service"
	"github.com/rl1809/shopping-cart/internal/logger"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	log := logger.New(logger.Options{
		Service: "shop",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
		Backend: cfg.StorageBackend,
	})

	store, closeStore, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Error("failed to open storage", "error", err)
		return 1
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Warn("failed to close storage", "error", err)
		}
	}()
	log.Debug("storage ready")

	a := &app{
		storage: store,
		svc:     service.NewShoppingService(store, log),
		out:     os.Stdout,
	}

	if err := a.run(ctx, os.Args[1:]); err != nil {
		var buyErr *service.BuyError
		if errors.As(err, &buyErr) {
			log.Info("buy rejected", "product", buyErr.Product)
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
