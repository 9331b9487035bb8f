// Package demo wires a silk renderer to its host: capability probing,
// telemetry output, snapshots and the websocket control bridge. It has no
// window dependency; the window front end and headless runs both drive it.
package demo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/pthm-cable/silk/capability"
	"github.com/pthm-cable/silk/config"
	"github.com/pthm-cable/silk/hostbridge"
	"github.com/pthm-cable/silk/renderer"
	"github.com/pthm-cable/silk/silk"
	"github.com/pthm-cable/silk/telemetry"
)

// Options configures a Demo. Config, Device and Container are required.
type Options struct {
	Config     *config.Config
	Seed       int64
	Device     renderer.Device
	Container  silk.Container
	Viewport   silk.Viewport
	PixelRatio float64
	Env        capability.Environment // Defaults to a surface-less SystemEnvironment

	OutputDir   string // CSV telemetry and effective config; empty disables
	SnapshotDir string // Snapshot JSON files; defaults to OutputDir
	Listen      string // Host bridge address; empty disables
	LogStats    bool
	Logger      *slog.Logger
}

// Demo owns one silk renderer and the services around it.
type Demo struct {
	cfg    *config.Config
	logger *slog.Logger

	loop     *silk.FrameLoop
	renderer *silk.Renderer
	env      *SimulatedEnv

	inbox        *hostbridge.Inbox
	target       hostbridge.Target
	bridgeCancel context.CancelFunc
	bridgeDone   chan struct{}
	listen       string

	perf        *telemetry.PerfCollector
	output      *telemetry.OutputManager
	snapshotDir string
}

// New builds a demo with an inactive renderer. Call Start to begin.
func New(opts Options) (*Demo, error) {
	if opts.Config == nil {
		return nil, errors.New("demo: config is required")
	}
	cfg := opts.Config

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	base := opts.Env
	if base == nil {
		base = capability.SystemEnvironment{Network: cfg.Fallback.NetworkClass}
	}
	env := NewSimulatedEnv(base)
	caps, err := capability.NewEvaluator(env, cfg.Fallback)
	if err != nil {
		return nil, fmt.Errorf("demo: %w", err)
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("demo: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("demo: %w", err)
	}

	var collector *telemetry.Collector
	if cfg.Telemetry.StatsEvery > 0 {
		collector = telemetry.NewCollector(cfg.Telemetry.StatsEvery)
	}

	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)
	loop := silk.NewFrameLoop()
	r, err := silk.NewRenderer(silk.Options{
		Container:    opts.Container,
		Viewport:     opts.Viewport,
		PixelRatio:   opts.PixelRatio,
		Device:       opts.Device,
		Scheduler:    loop,
		Capabilities: caps,
		Config:       cfg,
		Seed:         opts.Seed,
		Logger:       logger,
		Perf:         perf,
		Collector:    collector,
		Output:       output,
		LogStats:     opts.LogStats,
	})
	if err != nil {
		output.Close()
		return nil, err
	}

	snapshotDir := opts.SnapshotDir
	if snapshotDir == "" {
		snapshotDir = opts.OutputDir
	}

	d := &Demo{
		cfg:         cfg,
		logger:      logger,
		loop:        loop,
		renderer:    r,
		env:         env,
		inbox:       hostbridge.NewInbox(cfg.Bridge.QueueSize, logger),
		target:      hostbridge.Bind(r),
		listen:      opts.Listen,
		perf:        perf,
		output:      output,
		snapshotDir: snapshotDir,
	}
	return d, nil
}

// Start evaluates the fallback, applies the motion preference and starts the
// host bridge if configured. The renderer activates on the next Step.
func (d *Demo) Start(reduceMotion bool) {
	d.renderer.EvaluateFallback()
	d.renderer.SyncMotionPreference(reduceMotion)

	if d.listen == "" || d.bridgeCancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	d.bridgeCancel = cancel
	d.bridgeDone = make(chan struct{})
	srv := hostbridge.NewServer(d.inbox, d.logger)
	go func() {
		defer close(d.bridgeDone)
		err := srv.ListenAndServe(ctx, d.listen, d.cfg.Bridge.Path)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			d.logger.Error("host bridge stopped", "error", err)
		}
	}()
}

// Step applies queued host commands and runs one frame.
func (d *Demo) Step(now time.Time) {
	d.inbox.Apply(d.target)
	d.loop.RunFrame(now)
}

// Renderer returns the silk renderer.
func (d *Demo) Renderer() *silk.Renderer {
	return d.renderer
}

// Inbox returns the host command inbox.
func (d *Demo) Inbox() *hostbridge.Inbox {
	return d.inbox
}

// PerfStats returns frame timing over the perf window.
func (d *Demo) PerfStats() telemetry.PerfStats {
	return d.perf.Stats()
}

// Listen returns the host bridge address, empty when disabled.
func (d *Demo) Listen() string {
	return d.listen
}

// SimulateLowEnd makes the capability probe report a weak device and
// re-evaluates the fallback.
func (d *Demo) SimulateLowEnd(on bool) {
	d.env.SetLowEnd(on)
	d.renderer.EvaluateFallback()
}

// SaveSnapshot writes the current animation state to the snapshot directory.
func (d *Demo) SaveSnapshot(label string) (string, error) {
	if d.snapshotDir == "" {
		return "", errors.New("demo: no snapshot directory")
	}
	s, err := d.renderer.Snapshot(label)
	if err != nil {
		return "", err
	}
	path, err := telemetry.SaveSnapshot(s, d.snapshotDir)
	if err != nil {
		return "", err
	}
	d.logger.Info("snapshot saved", "path", path, "frame", s.Frame)
	return path, nil
}

// Close disposes the renderer, stops the bridge and flushes output.
func (d *Demo) Close() error {
	err := d.renderer.Close()
	if d.bridgeCancel != nil {
		d.bridgeCancel()
		<-d.bridgeDone
		d.bridgeCancel = nil
	}
	if cerr := d.output.Close(); err == nil {
		err = cerr
	}
	return err
}
