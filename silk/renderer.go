// Package silk drives the animated silk ribbon: it owns the animation state,
// the GPU resources behind a renderer.Device and the frame loop.
package silk

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/silk/camera"
	"github.com/pthm-cable/silk/capability"
	"github.com/pthm-cable/silk/config"
	"github.com/pthm-cable/silk/renderer"
	"github.com/pthm-cable/silk/systems"
	"github.com/pthm-cable/silk/telemetry"
)

// ErrClosed is returned by operations on a closed renderer.
var ErrClosed = errors.New("silk renderer closed")

// State is the renderer lifecycle state.
type State int

const (
	StateUninitialized State = iota
	StateActive
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateDisposed:
		return "disposed"
	default:
		return "uninitialized"
	}
}

// Options configures a Renderer. Device, Scheduler and Config are required.
type Options struct {
	Container      Container
	Viewport       Viewport
	PixelRatio     float64 // Device pixel ratio, capped by config
	ReducedMotion  *Flag
	StaticFallback *Flag

	Device       renderer.Device
	Scheduler    FrameScheduler
	Capabilities *capability.Evaluator
	Config       *config.Config

	Rand   *rand.Rand
	Seed   int64 // Recorded in snapshots
	Logger *slog.Logger

	Perf      *telemetry.PerfCollector // Optional
	Collector *telemetry.Collector     // Optional
	Output    *telemetry.OutputManager // Optional
	LogStats  bool
}

// Renderer manages one silk ribbon. All methods must be called from the
// goroutine that pumps the scheduler.
type Renderer struct {
	cfg        *config.Config
	logger     *slog.Logger
	device     renderer.Device
	sched      FrameScheduler
	caps       *capability.Evaluator
	container  Container
	viewport   Viewport
	pixelRatio float64
	reduced    *Flag
	fallback   *Flag
	seed       int64

	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
	output    *telemetry.OutputManager
	logStats  bool
	outputOff bool

	// Animation state, kept across activations and reset on Init
	breeze    *systems.Breeze
	influence *systems.Influence
	material  *systems.Material
	ribbon    *systems.Ribbon
	live      systems.RibbonConfig

	// GPU context, present only while active
	cam       *camera.Camera
	buf       *systems.MeshBuffer
	surface   renderer.Surface
	mesh      renderer.Mesh
	mat       renderer.Material
	envTex    renderer.Texture
	normalTex renderer.Texture
	lights    renderer.Lights
	base      renderer.Transform
	transform renderer.Transform

	state        State
	tick         FrameHandle
	ticking      bool
	lastFrame    time.Time
	frame        int64
	created      time.Time
	initPending  bool
	removeResize func()

	newMesh func(cfg *config.Config) *systems.MeshBuffer
}

// NewRenderer validates options and builds an inactive renderer. It does not
// touch the device; call Init, EvaluateFallback or SyncMotionPreference to
// start animating.
func NewRenderer(opts Options) (*Renderer, error) {
	if opts.Device == nil {
		return nil, errors.New("silk: device is required")
	}
	if opts.Scheduler == nil {
		return nil, errors.New("silk: scheduler is required")
	}
	if opts.Config == nil {
		return nil, errors.New("silk: config is required")
	}

	material, err := systems.NewMaterial(opts.Config.Material)
	if err != nil {
		return nil, fmt.Errorf("silk: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(opts.Seed))
	}
	reduced := opts.ReducedMotion
	if reduced == nil {
		reduced = NewFlag(false)
	}
	fallback := opts.StaticFallback
	if fallback == nil {
		fallback = NewFlag(false)
	}
	viewport := opts.Viewport
	if viewport == nil {
		w, h := float64(opts.Config.Screen.Width), float64(opts.Config.Screen.Height)
		viewport = func() (float64, float64) { return w, h }
	}
	ratio := opts.PixelRatio
	if ratio <= 0 {
		ratio = 1
	}
	if limit := opts.Config.Screen.MaxPixelRatio; limit > 0 && ratio > limit {
		ratio = limit
	}

	r := &Renderer{
		cfg:        opts.Config,
		logger:     logger,
		device:     opts.Device,
		sched:      opts.Scheduler,
		caps:       opts.Capabilities,
		container:  opts.Container,
		viewport:   viewport,
		pixelRatio: ratio,
		reduced:    reduced,
		fallback:   fallback,
		seed:       opts.Seed,
		perf:       opts.Perf,
		collector:  opts.Collector,
		output:     opts.Output,
		logStats:   opts.LogStats,
		breeze:     systems.NewBreeze(rng, opts.Config.Breeze),
		influence:  systems.NewInfluence(opts.Config.Influence),
		material:   material,
		ribbon:     systems.NewRibbon(opts.Config.Deform),
		created:    time.Now(),
		newMesh:    defaultMesh,
	}
	r.live = material.NewRibbonConfig(opts.Config.Ribbon)
	return r, nil
}

func defaultMesh(cfg *config.Config) *systems.MeshBuffer {
	return systems.NewMeshBuffer(cfg.Ribbon.Segments, cfg.Ribbon.HeightSegments,
		cfg.Derived.PlaneLength, cfg.Derived.PlaneWidth)
}

// State returns the lifecycle state.
func (r *Renderer) State() State {
	return r.state
}

// Active reports whether GPU resources are held and frames are running.
func (r *Renderer) Active() bool {
	return r.state == StateActive
}

// Surface returns the drawing surface, or zero when inactive.
func (r *Renderer) Surface() renderer.Surface {
	return r.surface
}

// Frame returns the number of frames drawn since creation.
func (r *Renderer) Frame() int64 {
	return r.frame
}

// Palette returns the parsed silk palette.
func (r *Renderer) Palette() systems.Palette {
	return r.material.Palette()
}

// Live returns a copy of the live appearance config.
func (r *Renderer) Live() systems.RibbonConfig {
	return r.live
}

// Energy returns the activity metrics of the current influence.
func (r *Renderer) Energy() systems.Energy {
	return r.influence.Energy()
}

// GustEnvelope returns the current gust envelope.
func (r *Renderer) GustEnvelope() float64 {
	return r.breeze.Envelope()
}

// Breakpoint returns the layout class of the current viewport.
func (r *Renderer) Breakpoint() Breakpoint {
	return BreakpointFor(r.viewportWidth(), r.cfg.Layout)
}

// Camera returns the active camera, or nil when inactive.
func (r *Renderer) Camera() *camera.Camera {
	return r.cam
}

// Transform returns the mesh transform of the last frame.
func (r *Renderer) Transform() renderer.Transform {
	return r.transform
}

// RibbonAnchor projects the ribbon origin of the last frame to viewport
// pixels. ok is false while inactive or when the origin is out of view.
func (r *Renderer) RibbonAnchor() (x, y float64, ok bool) {
	if r.cam == nil {
		return 0, 0, false
	}
	pos := r.transform.Position
	p := r3.Vec{X: pos[0], Y: pos[1], Z: pos[2]}
	if !r.cam.IsVisible(p) {
		return 0, 0, false
	}
	return r.cam.WorldToScreen(p)
}

// ReducedMotion returns the reduced-motion flag.
func (r *Renderer) ReducedMotion() *Flag {
	return r.reduced
}

// StaticFallback returns the static-fallback flag.
func (r *Renderer) StaticFallback() *Flag {
	return r.fallback
}

// bounds returns the container size, falling back to the viewport per axis.
func (r *Renderer) bounds() (w, h float64) {
	if r.container != nil {
		w, h = r.container.Bounds()
	}
	vw, vh := r.viewport()
	if w <= 0 {
		w = vw
	}
	if h <= 0 {
		h = vh
	}
	return w, h
}

func (r *Renderer) elapsed() float64 {
	return time.Since(r.created).Seconds()
}
