package demo

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pthm-cable/silk/config"
	"github.com/pthm-cable/silk/hostbridge"
	"github.com/pthm-cable/silk/renderer"
	"github.com/pthm-cable/silk/telemetry"
)

type fixedEnv struct{}

func (fixedEnv) SurfaceAvailable() bool { return true }
func (fixedEnv) CPUConcurrency() int    { return 8 }
func (fixedEnv) NetworkClass() string   { return "4g" }

func newTestDemo(t *testing.T, outputDir string) (*Demo, *renderer.NullDevice) {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	cfg.Textures.EnvironmentSize = 8
	cfg.Textures.NormalMapSize = 8
	cfg.Telemetry.StatsEvery = 10

	dev := renderer.NewNullDevice()
	d, err := New(Options{
		Config:    cfg,
		Seed:      3,
		Device:    dev,
		Container: &FixedContainer{Width: 1280, Height: 720},
		Env:       fixedEnv{},
		OutputDir: outputDir,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d, dev
}

func TestHeadlessRunDrawsFrames(t *testing.T) {
	d, dev := newTestDemo(t, "")
	d.Start(false)

	frames := d.RunHeadless(context.Background(), 30)
	if frames != 30 {
		t.Errorf("frames = %d, want 30", frames)
	}
	if dev.Draws != 30 {
		t.Errorf("draws = %d, want 30", dev.Draws)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if dev.Live() != 0 {
		t.Errorf("live handles after close = %d, want 0", dev.Live())
	}
}

func TestStartWithReducedMotionStaysIdle(t *testing.T) {
	d, dev := newTestDemo(t, "")
	d.Start(true)
	d.RunHeadless(context.Background(), 10)
	if dev.Draws != 0 {
		t.Errorf("draws = %d, want 0", dev.Draws)
	}
	if d.Renderer().Active() {
		t.Error("renderer active with reduced motion")
	}
}

func TestSimulateLowEndTogglesFallback(t *testing.T) {
	d, dev := newTestDemo(t, "")
	d.Start(false)
	d.RunHeadless(context.Background(), 2)

	d.SimulateLowEnd(true)
	if d.Renderer().Active() {
		t.Fatal("renderer still active on simulated low-end device")
	}
	if dev.Live() != 0 {
		t.Errorf("live handles = %d, want 0", dev.Live())
	}

	d.SimulateLowEnd(false)
	d.RunHeadless(context.Background(), 1)
	if !d.Renderer().Active() {
		t.Error("renderer not restored")
	}
}

func TestStepAppliesBridgeCommands(t *testing.T) {
	d, _ := newTestDemo(t, "")
	d.Start(false)
	d.Step(time.Now())

	d.Inbox().Push(hostbridge.Command{Type: hostbridge.TypePointer, X: 0.5, Y: 0.5})
	d.Inbox().Push(hostbridge.Command{Type: hostbridge.TypeScroll, Target: 0.6})
	d.Step(time.Now())

	s, err := d.Renderer().Snapshot("")
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if s.Influence.ScrollTarget != 0.6 {
		t.Errorf("scroll target = %v, want 0.6", s.Influence.ScrollTarget)
	}
	if d.Inbox().Len() != 0 {
		t.Errorf("inbox not drained: %d", d.Inbox().Len())
	}

	d.Inbox().Push(hostbridge.Command{Type: hostbridge.TypeMotion, Reduce: true})
	d.Step(time.Now())
	if d.Renderer().Active() {
		t.Error("motion command did not dispose")
	}
}

func TestOutputAndSnapshots(t *testing.T) {
	dir := t.TempDir()
	d, _ := newTestDemo(t, dir)
	d.Start(false)
	d.RunHeadless(context.Background(), 25)

	path, err := d.SaveSnapshot("calm")
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	if filepath.Base(path) != "snapshot_25_calm.json" {
		t.Errorf("snapshot path = %s", path)
	}
	loaded, err := telemetry.LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if loaded.Seed != 3 {
		t.Errorf("seed = %d, want 3", loaded.Seed)
	}

	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	for _, name := range []string{"config.yaml", "frames.csv", "perf.csv", "events.csv"} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("missing %s: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}

func TestSimulatedEnvOverridesSignals(t *testing.T) {
	env := NewSimulatedEnv(fixedEnv{})
	if env.CPUConcurrency() != 8 || env.NetworkClass() != "4g" {
		t.Fatal("base signals not passed through")
	}
	env.SetLowEnd(true)
	if env.CPUConcurrency() != 1 || env.NetworkClass() != "2g" {
		t.Error("low-end signals not reported")
	}
	if !env.SurfaceAvailable() {
		t.Error("surface should pass through")
	}
}
