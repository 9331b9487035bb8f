package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/silk/config"
	"github.com/pthm-cable/silk/demo"
	"github.com/pthm-cable/silk/demo/window"
	"github.com/pthm-cable/silk/renderer"
)

// headlessEnv reports a usable surface so headless runs exercise the full
// pipeline on the null device.
type headlessEnv struct {
	network string
}

func (headlessEnv) SurfaceAvailable() bool { return true }
func (headlessEnv) CPUConcurrency() int    { return 0 }
func (e headlessEnv) NetworkClass() string { return e.network }

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, config and snapshots")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	listen := flag.String("listen", "", "Host bridge address, e.g. :8090 (empty = disabled)")
	headless := flag.Bool("headless", false, "Run without a window on a null device")
	maxFrames := flag.Int64("max-frames", 0, "Stop after N frame steps (0 = unlimited)")
	policy := flag.String("policy", "", "Fallback policy: heuristic or surface-only (empty = config)")
	logStats := flag.Bool("log-stats", false, "Log window and perf stats via slog")
	reduceMotion := flag.Bool("reduce-motion", false, "Start with reduced motion")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *policy != "" {
		cfg.Fallback.Policy = *policy
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	if *headless {
		if err := runHeadless(cfg, rngSeed, *outputDir, *listen, *maxFrames, *logStats, *reduceMotion, logger); err != nil {
			slog.Error("headless run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint | rl.FlagWindowHighdpi)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Silk")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	app, err := window.New(window.Options{
		Config:        cfg,
		Seed:          rngSeed,
		OutputDir:     *outputDir,
		Listen:        *listen,
		LogStats:      *logStats,
		ReducedMotion: *reduceMotion,
		Logger:        logger,
	})
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	slog.Info("starting silk", "seed", rngSeed, "policy", cfg.Fallback.Policy, "listen", *listen)

	for !rl.WindowShouldClose() {
		app.Update()
		app.Draw()

		if *maxFrames > 0 && app.Frame() >= *maxFrames {
			slog.Info("max frames reached", "frame", app.Frame())
			break
		}
	}
}

func runHeadless(cfg *config.Config, seed int64, outputDir, listen string, maxFrames int64, logStats, reduce bool, logger *slog.Logger) error {
	d, err := demo.New(demo.Options{
		Config:    cfg,
		Seed:      seed,
		Device:    renderer.NewNullDevice(),
		Container: &demo.FixedContainer{Width: float64(cfg.Screen.Width), Height: float64(cfg.Screen.Height)},
		Env:       headlessEnv{network: cfg.Fallback.NetworkClass},
		OutputDir: outputDir,
		Listen:    listen,
		LogStats:  logStats,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slog.Info("starting headless run", "seed", seed, "max_frames", maxFrames)
	d.Start(reduce)
	d.RunHeadless(ctx, maxFrames)
	return d.Close()
}
