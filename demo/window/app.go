// Package window is the raylib front end of the demo: it owns the GPU
// device, feeds mouse and keyboard input to the renderer and draws the
// ribbon, the static poster and the tuning panels.
package window

import (
	"fmt"
	"image/color"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/silk/capability"
	"github.com/pthm-cable/silk/config"
	"github.com/pthm-cable/silk/demo"
	"github.com/pthm-cable/silk/renderer/gpu"
	"github.com/pthm-cable/silk/ui"
)

// Page background behind the transparent ribbon.
var backdrop = color.RGBA{R: 250, G: 246, B: 239, A: 255}

// Options configures the window app. The window must already be open.
type Options struct {
	Config        *config.Config
	Seed          int64
	OutputDir     string
	SnapshotDir   string
	Listen        string
	LogStats      bool
	ReducedMotion bool
	Logger        *slog.Logger
}

// App runs the demo inside the raylib window.
type App struct {
	demo      *demo.Demo
	device    *gpu.Device
	container *Container
	logger    *slog.Logger

	overlays  *ui.OverlayRegistry
	hud       *ui.HUD
	inspector *ui.Inspector
	perfPanel *ui.PerfPanel
	controls  *ui.ControlsPanel
	host      ui.HostState
}

// New creates the app and starts the renderer.
func New(opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	device := gpu.New(logger)
	container := NewContainer()
	d, err := demo.New(demo.Options{
		Config:      opts.Config,
		Seed:        opts.Seed,
		Device:      device,
		Container:   container,
		Viewport:    Viewport,
		PixelRatio:  float64(rl.GetWindowScaleDPI().X),
		Env:         capability.SystemEnvironment{Surface: rl.IsWindowReady, Network: opts.Config.Fallback.NetworkClass},
		OutputDir:   opts.OutputDir,
		SnapshotDir: opts.SnapshotDir,
		Listen:      opts.Listen,
		LogStats:    opts.LogStats,
		Logger:      logger,
	})
	if err != nil {
		return nil, err
	}

	a := &App{
		demo:      d,
		device:    device,
		container: container,
		logger:    logger,
		overlays:  ui.NewOverlayRegistry(),
		hud:       ui.NewHUD(),
		inspector: ui.NewInspector(0, 10, 260),
		perfPanel: ui.NewPerfPanel(0, 0),
		controls:  ui.NewControlsPanel(10, 100, 300),
		host:      ui.HostState{ReducedMotion: opts.ReducedMotion},
	}
	d.Start(opts.ReducedMotion)
	return a, nil
}

// Update handles input and runs one frame.
func (a *App) Update() {
	a.container.Poll()
	a.handleInput()
	a.demo.Step(time.Now())
}

// Draw presents the ribbon, or the static poster when inactive, and the
// enabled panels.
func (a *App) Draw() {
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	r := a.demo.Renderer()

	rl.BeginDrawing()
	rl.ClearBackground(backdrop)

	if r.Active() {
		a.device.Present(a.container.Attached(), 0, 0, float64(w), float64(h))
	} else {
		gpu.DrawStaticPoster(0, 0, int32(w), int32(h), r.Palette())
	}

	if a.overlays.IsEnabled(ui.OverlayHUD) {
		ax, ay, anchored := r.RibbonAnchor()
		a.hud.Draw(ui.HUDData{
			Title:      "Silk",
			State:      r.State().String(),
			Breakpoint: r.Breakpoint().String(),
			Frame:      r.Frame(),
			FPS:        rl.GetFPS(),
			Reduced:    r.ReducedMotion().Get(),
			Fallback:   r.StaticFallback().Get(),
			Bridge:     a.demo.Listen(),

			AnchorX:       ax,
			AnchorY:       ay,
			AnchorVisible: anchored,
		})
		a.hud.DrawControls(int32(h), "[H] status  [I] inspector  [P] timing  [C] controls  [S] snapshot  [M] motion  [F11] fullscreen")
	}

	if a.overlays.IsEnabled(ui.OverlayInspector) {
		if snap, err := r.Snapshot(""); err == nil {
			a.inspector.SetPosition(int32(w)-270, 10)
			a.inspector.Draw(ui.InspectorData{
				Snapshot: snap,
				Energy:   r.Energy().Mix,
				Gust:     r.GustEnvelope(),
			})
		}
	}

	if a.overlays.IsEnabled(ui.OverlayPerf) {
		a.perfPanel.SetPosition(int32(w)-276, int32(h)-200)
		a.perfPanel.Draw(a.demo.PerfStats())
	}

	if a.overlays.IsEnabled(ui.OverlayControls) {
		act := a.controls.Draw(a.overlays, &a.host)
		a.applyControls(act)
	}

	rl.EndDrawing()
}

// applyControls forwards panel edits to the renderer.
func (a *App) applyControls(act ui.ControlsAction) {
	r := a.demo.Renderer()
	if act.MotionChanged {
		r.SyncMotionPreference(a.host.ReducedMotion)
	}
	if act.LowEndChanged {
		a.demo.SimulateLowEnd(a.host.SimulateLowEnd)
	}
	if act.ScrollChanged {
		r.HeroScroll().SetTarget(float64(a.host.Scroll))
	}
	if act.ResetPressed {
		r.SetPointerTarget(0, 0)
	}
	if act.SnapshotPressed {
		a.snapshot()
	}
}

func (a *App) snapshot() {
	label := fmt.Sprintf("%s_%s", a.demo.Renderer().Breakpoint(), time.Now().Format("150405"))
	if _, err := a.demo.SaveSnapshot(label); err != nil {
		a.logger.Error("snapshot failed", "error", err)
	}
}

// Frame returns the number of frames drawn.
func (a *App) Frame() int64 {
	return a.demo.Renderer().Frame()
}

// Close releases the renderer and stops background services.
func (a *App) Close() error {
	err := a.demo.Close()
	if live := a.device.Live(); live != 0 {
		a.logger.Warn("gpu resources left after close", "live", live)
	}
	return err
}
