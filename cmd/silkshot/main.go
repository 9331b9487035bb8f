// Silkshot renders the ribbon offscreen for a number of frames and writes the
// final surface to a PNG file for inspection.
//
// Usage: go run ./cmd/silkshot -frames 240 -out silk.png
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/silk/capability"
	"github.com/pthm-cable/silk/config"
	"github.com/pthm-cable/silk/demo"
	"github.com/pthm-cable/silk/renderer/gpu"
)

func main() {
	configPath := flag.String("config", "", "Path to config YAML file (empty = use defaults)")
	outPath := flag.String("out", "silk.png", "Output PNG path")
	width := flag.Int("width", 1280, "Render width")
	height := flag.Int("height", 720, "Render height")
	frames := flag.Int64("frames", 240, "Frames to simulate before capture")
	seed := flag.Int64("seed", 1, "Breeze random seed")
	pointerX := flag.Float64("pointer-x", 0, "Host pointer x in [-1, 1]")
	pointerY := flag.Float64("pointer-y", 0, "Host pointer y in [-1, 1]")
	scroll := flag.Float64("scroll", 0, "Hero scroll progress in [0, 1]")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	// A capture always wants the live ribbon, whatever the host looks like
	cfg.Fallback.Policy = "surface-only"

	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(int32(*width), int32(*height), "Silk Shot")
	defer rl.CloseWindow()

	dev := gpu.New(logger)
	d, err := demo.New(demo.Options{
		Config:     cfg,
		Seed:       *seed,
		Device:     dev,
		Container:  &demo.FixedContainer{Width: float64(*width), Height: float64(*height)},
		PixelRatio: 1,
		Env:        capability.SystemEnvironment{Surface: rl.IsWindowReady},
		Logger:     logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create renderer: %v\n", err)
		os.Exit(1)
	}
	defer d.Close()

	d.Start(false)
	r := d.Renderer()
	r.SetPointerTarget(*pointerX, *pointerY)
	r.HeroScroll().SetTarget(*scroll)

	drawn := d.RunHeadless(context.Background(), *frames)
	if !r.Active() {
		fmt.Fprintf(os.Stderr, "Renderer did not start (state %s)\n", r.State())
		os.Exit(1)
	}

	if err := dev.ExportSurface(r.Surface(), *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to export image: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Ribbon rendered to: %s (%dx%d, %d frames)\n", *outPath, *width, *height, drawn)
}
