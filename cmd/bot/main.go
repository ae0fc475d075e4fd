package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"persoole/internal/app/runtime"
	"persoole/internal/infrastructure/config"
	"persoole/internal/infrastructure/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	logger.Setup(cfg)

	rt, err := runtime.Start(ctx, cfg, runtime.Options{})
	if err != nil {
		slog.Error("start", "error", err)
		os.Exit(1)
	}

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-rt.Done():
	}

	if err := rt.Stop(); err != nil {
		slog.Error("stop", "error", err)
	}
	if runErr != nil {
		slog.Error("persoole stopped", "error", runErr)
		os.Exit(1)
	}
	slog.Info("persoole stopped")
}
