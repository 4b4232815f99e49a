package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"playground/internal/catalog"
	"playground/internal/config"
	"playground/internal/debug"
	"playground/internal/generator"
	"playground/internal/models"
	"playground/internal/orchestrator"
	"playground/internal/pipeline"
	"playground/internal/retry"
	"playground/internal/runner"
	"playground/internal/services"

	"github.com/benbjohnson/clock"
	"github.com/joho/godotenv"
)

func main() {
	// Parse flags
	var (
		op       = flag.String("op", "compile", "Operation to run: compile, deploy or invoke")
		file     = flag.String("file", "", "Input file (default: the built-in contract)")
		example  = flag.String("example", "", "Use an example contract as input")
		count    = flag.Int("n", 1, "Number of runs")
		workers  = flag.Int("workers", 0, "Runs resolved at once (0 = all)")
		failFast = flag.Bool("fail-fast", false, "Stop after the first failed run")
		seed     = flag.Int64("seed", 0, "Generator seed (0 = random)")
		verbose  = flag.Bool("v", false, "Debug logging")
	)
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	kind, err := models.ParseKind(*op)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	if *count < 1 {
		log.Fatalf("❌ -n must be at least 1, got %d", *count)
	}

	input, err := readInput(*file, *example)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	_ = godotenv.Load()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	clk := clock.New()
	gen := generator.NewRandom()
	if *seed != 0 {
		gen = generator.NewSeeded(*seed)
	}

	orch := orchestrator.New(services.NewMockServices(gen, clk, cfg.Network()))
	r := runner.New(orch, retry.NewStrategy(cfg.Retry, clk), clk, cfg.Delays())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reqs := make([]*models.OperationRequest, *count)
	for i := range reqs {
		reqs[i] = r.NewRequest(kind, input, "")
	}

	failed := false
	p := pipeline.New(pipeline.Config{WorkerCount: *workers, FailFast: *failFast}, r)
	err = p.Run(ctx, reqs, func(out *pipeline.Outcome) error {
		if out.Err != nil {
			failed = true
			return debug.PrintFailure(os.Stdout, kind, runner.ErrorMessage(out.Err))
		}
		return debug.PrintResult(os.Stdout, out.Result)
	})
	if err != nil {
		slog.Error("Batch stopped", "error", err)
		os.Exit(1)
	}
	if failed {
		os.Exit(1)
	}
}

func readInput(file, example string) (string, error) {
	switch {
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(data), nil
	case example != "":
		e, err := catalog.Example(example)
		if err != nil {
			return "", err
		}
		return e.Code, nil
	default:
		return catalog.DefaultContract(), nil
	}
}
