package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dozor-fleet/gpsdozor-client/internal/config"
	"github.com/dozor-fleet/gpsdozor-client/internal/devproxy"
	"github.com/dozor-fleet/gpsdozor-client/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "devproxy start failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	log.InfoObj("devproxy starting", "config", cfg.MarshalLog())

	routes, err := devproxy.LoadRoutes(cfg.ProxyRoutesFile)
	if err != nil {
		log.ErrorObj("failed to load proxy routes", "error", err)
		return err
	}
	log.InfoObj("proxy routes loaded", "routes_meta", map[string]any{
		"count":  len(routes),
		"routes": routes,
	})

	proxy, err := devproxy.New(routes, devproxy.Options{StaticDir: cfg.ProxyStaticDir}, log)
	if err != nil {
		log.ErrorObj("failed to initialize proxy", "error", err)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := devproxy.ListenAndServe(ctx, cfg.ProxyListenAddr, proxy, log); err != nil {
		return fmt.Errorf("devproxy run: %w", err)
	}
	return nil
}
