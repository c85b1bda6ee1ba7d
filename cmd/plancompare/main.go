package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/levenlabs/go-lflag"
	"github.com/raterudder/plancompare/pkg/compare"
	"github.com/raterudder/plancompare/pkg/log"
	"github.com/raterudder/plancompare/pkg/metrics"
	"github.com/raterudder/plancompare/pkg/storage"
	"github.com/raterudder/plancompare/pkg/tariff"
)

func main() {
	// init packages
	t := tariff.Configured()
	s := storage.Configured()
	runner := compare.Configured(t, s)
	logFormat := lflag.String("log-format", "json", "Log output format (json, text)")

	// parse flags
	lflag.Configure()

	// lflag automatically sets llog's level, but we need to set the slog level
	level, err := log.LevelFromLLog()
	if err != nil {
		panic(err)
	}
	log.SetDefaultLogLevel(level)
	// reports go to stdout so logs go to stderr
	if err := log.Configure(os.Stderr, *logFormat); err != nil {
		panic(err)
	}
	slog.Debug("logger configured", slog.String("level", level.String()))
	metrics.Init()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	runErr := runner.Run(ctx)
	if err := s.Close(); err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to close storage", slog.Any("error", err))
	}
	if runErr != nil {
		log.Ctx(ctx).ErrorContext(ctx, "comparison failed", slog.Any("error", runErr))
		os.Exit(1)
	}
}
