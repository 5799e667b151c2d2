package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap/zapcore"

	"github.com/dozor-fleet/gpsdozor-client/internal/cli"
	"github.com/dozor-fleet/gpsdozor-client/internal/config"
	"github.com/dozor-fleet/gpsdozor-client/internal/logger"
	"github.com/dozor-fleet/gpsdozor-client/pkg/gpsdozor"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "gpsdozor: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.InitWriter(cfg.LogLevel, zapcore.Lock(os.Stderr))
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	log.DebugObj("gpsdozor starting", "config", cfg.MarshalLog())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(cli.Deps{
		API: gpsdozor.New(cfg.ClientConfig()),
		Log: log,
	})
	return root.ExecuteContext(ctx)
}
