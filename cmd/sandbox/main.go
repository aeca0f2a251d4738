package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/Abraxas-365/aikyuu/pkg/config"
	"github.com/Abraxas-365/aikyuu/pkg/logx"
	"github.com/Abraxas-365/aikyuu/sandbox/sandboxapi"
)

func main() {
	configPath := flag.String("config", os.Getenv("AIKYUU_CONFIG"), "path to a YAML config file")
	accessLog := flag.Bool("access-log", true, "log every request")
	flag.Parse()

	// 1. Configuration and logger
	cfg, err := config.Load(*configPath)
	if err != nil {
		logx.Fatalf("Failed to load config: %v", err)
	}
	logx.SetLevel(logx.ParseLevel(cfg.Log.Level))
	logx.Info("Starting Aikyuu sandbox API...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 2. Dependencies
	container := NewContainer(ctx, cfg)
	defer container.Close()
	container.Seed(ctx)

	// 3. Analysis workers
	container.Worker.Start(ctx)

	// 4. HTTP server
	app := sandboxapi.NewApp(container.Handlers, container.Tokens, *accessLog)

	go func() {
		logx.Infof("Server listening on port %s", cfg.Sandbox.Port)
		if err := app.Listen(":" + cfg.Sandbox.Port); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	logx.Info("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}
	cancel()
	container.Worker.Wait()

	logx.Info("Server exited")
}
