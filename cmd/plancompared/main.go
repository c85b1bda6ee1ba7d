package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/levenlabs/go-lflag"
	"github.com/raterudder/plancompare/pkg/log"
	"github.com/raterudder/plancompare/pkg/metrics"
	"github.com/raterudder/plancompare/pkg/server"
	"github.com/raterudder/plancompare/pkg/storage"
	"github.com/raterudder/plancompare/pkg/tariff"
)

func main() {
	// init packages
	t := tariff.Configured()
	s := storage.Configured()

	// init server
	srv := server.Configured(t, s)
	logFormat := lflag.String("log-format", "json", "Log output format (json, text)")

	// parse flags
	lflag.Configure()

	// lflag automatically sets llog's level, but we need to set the slog level
	level, err := log.LevelFromLLog()
	if err != nil {
		panic(err)
	}
	log.SetDefaultLogLevel(level)
	if err := log.Configure(os.Stdout, *logFormat); err != nil {
		panic(err)
	}
	slog.Debug("logger configured", slog.String("level", level.String()))
	metrics.Init()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// If initialization inside lflag.Do failed, we wouldn't be here (panic).
	defer func() {
		if err := s.Close(); err != nil {
			log.Ctx(ctx).ErrorContext(ctx, "failed to close storage", slog.Any("error", err))
		}
	}()

	// Run will block until context is canceled or error happens
	if err := srv.Run(ctx); err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "server failed", slog.Any("error", err))
		cancel()
		_ = s.Close()
		os.Exit(1)
	}
	log.Ctx(ctx).InfoContext(ctx, "server exited cleanly")
}
