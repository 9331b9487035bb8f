package silk

import (
	"errors"
	"image"
	"io"
	"log/slog"
	"testing"

	"github.com/pthm-cable/silk/capability"
	"github.com/pthm-cable/silk/config"
	"github.com/pthm-cable/silk/renderer"
	"github.com/pthm-cable/silk/systems"
)

var errFake = errors.New("fake device failure")

// fakeDevice counts live resources and can fail any allocation.
type fakeDevice struct {
	next uint32

	surfaces  map[renderer.Surface][2]int
	meshes    map[renderer.Mesh]bool
	materials map[renderer.Material]bool
	textures  map[renderer.Texture]bool
	lights    map[renderer.Lights]bool

	failSurface  bool
	failMaterial bool
	failLights   bool

	draws   int
	updates int
	last    renderer.Frame
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		surfaces:  make(map[renderer.Surface][2]int),
		meshes:    make(map[renderer.Mesh]bool),
		materials: make(map[renderer.Material]bool),
		textures:  make(map[renderer.Texture]bool),
		lights:    make(map[renderer.Lights]bool),
	}
}

func (d *fakeDevice) id() uint32 {
	d.next++
	return d.next
}

func (d *fakeDevice) live() int {
	return len(d.surfaces) + len(d.meshes) + len(d.materials) + len(d.textures) + len(d.lights)
}

func (d *fakeDevice) CreateSurface(w, h int, _ float64) (renderer.Surface, error) {
	if d.failSurface {
		return 0, errFake
	}
	s := renderer.Surface(d.id())
	d.surfaces[s] = [2]int{w, h}
	return s, nil
}

func (d *fakeDevice) ResizeSurface(s renderer.Surface, w, h int) {
	if _, ok := d.surfaces[s]; ok {
		d.surfaces[s] = [2]int{w, h}
	}
}

func (d *fakeDevice) ReleaseSurface(s renderer.Surface) { delete(d.surfaces, s) }

func (d *fakeDevice) UploadMesh(*systems.MeshBuffer) (renderer.Mesh, error) {
	m := renderer.Mesh(d.id())
	d.meshes[m] = true
	return m, nil
}

func (d *fakeDevice) UpdateMesh(renderer.Mesh, *systems.MeshBuffer) { d.updates++ }
func (d *fakeDevice) ReleaseMesh(m renderer.Mesh)                   { delete(d.meshes, m) }

func (d *fakeDevice) CreateMaterial(renderer.MaterialOptions) (renderer.Material, error) {
	if d.failMaterial {
		return 0, errFake
	}
	m := renderer.Material(d.id())
	d.materials[m] = true
	return m, nil
}

func (d *fakeDevice) ReleaseMaterial(m renderer.Material) { delete(d.materials, m) }

func (d *fakeDevice) CreateTexture(*image.RGBA) (renderer.Texture, error) {
	t := renderer.Texture(d.id())
	d.textures[t] = true
	return t, nil
}

func (d *fakeDevice) ReleaseTexture(t renderer.Texture) { delete(d.textures, t) }

func (d *fakeDevice) CreateLights(renderer.LightRig) (renderer.Lights, error) {
	if d.failLights {
		return 0, errFake
	}
	l := renderer.Lights(d.id())
	d.lights[l] = true
	return l, nil
}

func (d *fakeDevice) ReleaseLights(l renderer.Lights) { delete(d.lights, l) }

func (d *fakeDevice) Draw(f renderer.Frame) {
	d.draws++
	d.last = f
}

// fakeContainer is a sized host element with resize listeners.
type fakeContainer struct {
	w, h      float64
	attached  map[renderer.Surface]bool
	listeners map[int]func()
	nextID    int
}

func newFakeContainer(w, h float64) *fakeContainer {
	return &fakeContainer{
		w:         w,
		h:         h,
		attached:  make(map[renderer.Surface]bool),
		listeners: make(map[int]func()),
	}
}

func (c *fakeContainer) Bounds() (float64, float64)       { return c.w, c.h }
func (c *fakeContainer) Attach(s renderer.Surface)        { c.attached[s] = true }
func (c *fakeContainer) Detach(s renderer.Surface)        { delete(c.attached, s) }
func (c *fakeContainer) Contains(s renderer.Surface) bool { return c.attached[s] }

func (c *fakeContainer) OnResize(fn func()) func() {
	c.nextID++
	id := c.nextID
	c.listeners[id] = fn
	return func() { delete(c.listeners, id) }
}

func (c *fakeContainer) resize(w, h float64) {
	c.w, c.h = w, h
	for _, fn := range c.listeners {
		fn()
	}
}

// fakeEnv is a fixed capability environment.
type fakeEnv struct {
	surface bool
	cpus    int
}

func (e *fakeEnv) SurfaceAvailable() bool { return e.surface }
func (e *fakeEnv) CPUConcurrency() int    { return e.cpus }
func (e *fakeEnv) NetworkClass() string   { return "" }

type harness struct {
	r         *Renderer
	dev       *fakeDevice
	container *fakeContainer
	loop      *FrameLoop
	env       *fakeEnv
}

func testConfig(t testing.TB) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	cfg.Textures.EnvironmentSize = 8
	cfg.Textures.NormalMapSize = 8
	return cfg
}

func newHarness(t testing.TB, modify func(*Options)) *harness {
	t.Helper()
	cfg := testConfig(t)
	h := &harness{
		dev:       newFakeDevice(),
		container: newFakeContainer(1440, 810),
		loop:      NewFrameLoop(),
		env:       &fakeEnv{surface: true, cpus: 8},
	}
	opts := Options{
		Container:    h.container,
		Viewport:     func() (float64, float64) { return 1440, 810 },
		Device:       h.dev,
		Scheduler:    h.loop,
		Capabilities: &capability.Evaluator{Env: h.env, Policy: capability.HeuristicPolicy{LowPowerCPUs: 4}},
		Config:       cfg,
		Seed:         1,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if modify != nil {
		modify(&opts)
	}
	r, err := NewRenderer(opts)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	h.r = r
	return h
}
