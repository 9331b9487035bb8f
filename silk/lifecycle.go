package silk

import (
	"fmt"
	"time"

	"github.com/pthm-cable/silk/camera"
	"github.com/pthm-cable/silk/renderer"
	"github.com/pthm-cable/silk/systems"
	"github.com/pthm-cable/silk/telemetry"
)

// Init activates the renderer. It is a no-op when motion is reduced, the
// static fallback is active, there is no container, resources are already
// held, or the renderer is closed. If any resource cannot be created the
// partial context is released and the renderer stays uninitialized.
func (r *Renderer) Init() {
	r.initPending = false
	if r.state == StateDisposed || r.reduced.Get() || r.fallback.Get() || r.container == nil || r.surface != 0 {
		return
	}

	r.breeze.Reset()
	r.influence.Reset()
	r.live = r.material.NewRibbonConfig(r.cfg.Ribbon)
	r.ribbon.Reset()
	r.lastFrame = time.Time{}

	w, h := r.bounds()
	r.cam = camera.New(r.cfg.Camera, w, h)

	if err := r.allocate(w, h); err != nil {
		r.logger.Error("silk init aborted", "error", err)
		r.release()
		r.recordEvent(telemetry.EventInitAborted, err.Error())
		return
	}

	r.container.Attach(r.surface)
	if n, ok := r.container.(ResizeNotifier); ok {
		r.removeResize = n.OnResize(r.Resize)
	}
	r.updateBaseTransform()
	r.transform = r.base

	r.state = StateActive
	r.tick = r.sched.Schedule(r.frameTick)
	r.ticking = true

	r.logger.Info("silk renderer initialized",
		"width", w,
		"height", h,
		"vertices", r.buf.VertexCount(),
		"breakpoint", BreakpointFor(r.viewportWidth(), r.cfg.Layout).String(),
	)
	r.recordEvent(telemetry.EventInit, fmt.Sprintf("%.0fx%.0f", w, h))
}

// allocate creates the GPU context in order: surface, mesh, material,
// textures, lights.
func (r *Renderer) allocate(w, h float64) error {
	var err error

	r.surface, err = r.device.CreateSurface(int(w), int(h), r.pixelRatio)
	if err != nil {
		return fmt.Errorf("creating surface: %w", err)
	}

	buf := r.newMesh(r.cfg)
	if err := buf.Validate(); err != nil {
		return fmt.Errorf("building ribbon mesh: %w", err)
	}
	r.buf = buf

	r.mesh, err = r.device.UploadMesh(buf)
	if err != nil {
		return fmt.Errorf("uploading mesh: %w", err)
	}

	r.mat, err = r.device.CreateMaterial(renderer.DefaultMaterial(r.cfg.Screen.Exposure, r.cfg.Textures.NormalScale))
	if err != nil {
		return fmt.Errorf("creating material: %w", err)
	}

	tex := r.cfg.Textures
	if tex.Environment {
		r.envTex, err = r.device.CreateTexture(renderer.GenerateEnvironment(tex.EnvironmentSize))
		if err != nil {
			return fmt.Errorf("creating environment texture: %w", err)
		}
	}
	if tex.NormalMap {
		img := systems.GenerateNormalMap(tex.NormalMapSize, tex.NormalMapSeed, 1)
		r.normalTex, err = r.device.CreateTexture(img)
		if err != nil {
			return fmt.Errorf("creating normal map: %w", err)
		}
	}

	r.lights, err = r.device.CreateLights(renderer.DefaultLightRig())
	if err != nil {
		return fmt.Errorf("creating lights: %w", err)
	}
	return nil
}

// release frees every held resource in reverse order and detaches the
// surface. Zero handles are skipped.
func (r *Renderer) release() {
	if r.lights != 0 {
		r.device.ReleaseLights(r.lights)
	}
	if r.normalTex != 0 {
		r.device.ReleaseTexture(r.normalTex)
	}
	if r.envTex != 0 {
		r.device.ReleaseTexture(r.envTex)
	}
	if r.mat != 0 {
		r.device.ReleaseMaterial(r.mat)
	}
	if r.mesh != 0 {
		r.device.ReleaseMesh(r.mesh)
	}
	if r.surface != 0 {
		if r.container != nil && r.container.Contains(r.surface) {
			r.container.Detach(r.surface)
		}
		r.device.ReleaseSurface(r.surface)
	}

	r.lights, r.normalTex, r.envTex = 0, 0, 0
	r.mat, r.mesh, r.surface = 0, 0, 0
	r.buf = nil
	r.cam = nil
}

// Dispose stops the frame loop and releases the GPU context. It is safe to
// call at any time, any number of times.
func (r *Renderer) Dispose() {
	if r.ticking {
		r.sched.Cancel(r.tick)
		r.ticking = false
	}
	r.tick = 0
	r.lastFrame = time.Time{}

	if r.removeResize != nil {
		r.removeResize()
		r.removeResize = nil
	}

	wasActive := r.state == StateActive
	r.release()
	if r.state == StateActive {
		r.state = StateUninitialized
	}

	if wasActive {
		r.logger.Info("silk renderer disposed", "frame", r.frame)
		r.recordEvent(telemetry.EventDispose, "")
	}
}

// Close disposes the renderer and refuses later activation.
func (r *Renderer) Close() error {
	if r.state == StateDisposed {
		return ErrClosed
	}
	r.Dispose()
	r.state = StateDisposed
	return nil
}

// Resize re-reads the container size, updating the projection, the surface
// and the responsive base transform.
func (r *Renderer) Resize() {
	if r.state != StateActive {
		return
	}
	w, h := r.bounds()
	r.cam.Resize(w, h)
	r.device.ResizeSurface(r.surface, int(w), int(h))
	r.updateBaseTransform()
	r.recordEvent(telemetry.EventResize, fmt.Sprintf("%.0fx%.0f", w, h))
}

func (r *Renderer) viewportWidth() float64 {
	w, _ := r.viewport()
	return w
}

func (r *Renderer) updateBaseTransform() {
	r.base = BaseTransform(r.viewportWidth(), r.cfg.Layout)
}
