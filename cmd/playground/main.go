package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"playground/internal/api"
	"playground/internal/config"
	"playground/internal/generator"
	"playground/internal/orchestrator"
	"playground/internal/retry"
	"playground/internal/runner"
	"playground/internal/services"
	"playground/internal/session"
	"playground/internal/storage"

	"github.com/benbjohnson/clock"
	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("🌟 Starting Soroban Playground...")

	// 1. Load configuration
	_ = godotenv.Load()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	// 2. Configure logger
	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	slog.Info("Configuration loaded",
		"network", cfg.Network(),
		"api_port", cfg.APIPort,
		"compile_delay", cfg.CompileDelay,
		"deploy_delay", cfg.DeployDelay,
		"invoke_delay", cfg.InvokeDelay,
		"log_level", cfg.LogLevel,
	)

	// 3. Operation history
	clk := clock.New()
	repository := storage.NewMemoryRepository(clk)
	defer repository.Close()

	// 4. Mock backends behind the orchestrator
	gen := generator.NewRandom()
	if cfg.RandomSeed != 0 {
		gen = generator.NewSeeded(cfg.RandomSeed)
		slog.Info("Using seeded generator", "seed", cfg.RandomSeed)
	}

	orch := orchestrator.New(services.NewMockServices(gen, clk, cfg.Network()))
	slog.Info("Orchestrator ready", "services", len(orch.Services()))

	// 5. Runner and sessions
	strategy := retry.NewStrategy(cfg.Retry, clk)
	r := runner.New(orch, strategy, clk, cfg.Delays())
	sessions := session.NewManager(r, repository, clk)
	sessions.SetRequireCompile(cfg.RequireCompileBeforeDeploy)

	// 6. API server
	server := api.NewServer(cfg.APIPort, sessions, repository)
	if err := server.Start(); err != nil {
		log.Fatalf("❌ Failed to start API server: %v", err)
	}

	// 7. Wait for interrupt
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	slog.Warn("Interrupt received, shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Error stopping API server", "error", err)
	}
	sessions.Shutdown(ctx)

	slog.Info("Playground stopped")
}
