package silk

import (
	"math"
	"time"

	"github.com/pthm-cable/silk/renderer"
	"github.com/pthm-cable/silk/telemetry"
)

// frameTick advances and draws one frame. It reschedules itself before doing
// any work so a Dispose during the frame cancels the next one.
func (r *Renderer) frameTick(now time.Time) {
	r.ticking = false
	if r.state != StateActive {
		return
	}
	r.tick = r.sched.Schedule(r.frameTick)
	r.ticking = true

	dt := r.frameDelta(now)
	r.lastFrame = now
	r.step(dt)
	r.frame++
}

// frameDelta returns the seconds since the previous frame, clamped to
// MaxFrameDelta. The first frame after activation uses FirstFrameDelta.
func (r *Renderer) frameDelta(now time.Time) float64 {
	deform := r.cfg.Deform
	if r.lastFrame.IsZero() {
		return deform.FirstFrameDelta
	}
	dt := now.Sub(r.lastFrame).Seconds()
	if dt < 0 {
		dt = 0
	}
	return math.Min(dt, deform.MaxFrameDelta)
}

// step runs the animation pipeline for dt seconds and issues one draw.
func (r *Renderer) step(dt float64) {
	perf := r.perf
	if perf != nil {
		perf.StartFrame()
		perf.StartPhase(telemetry.PhaseBreeze)
	}

	before := r.breeze.Gust.TimeUntilNext
	bx, by := r.breeze.Step(dt)
	if r.breeze.Gust.TimeUntilNext > before {
		r.recordEvent(telemetry.EventGust, "")
	}

	if perf != nil {
		perf.StartPhase(telemetry.PhaseInfluence)
	}
	r.influence.SetBreezeTarget(bx, by)
	r.influence.Blend()
	energy := r.influence.Energy()

	if perf != nil {
		perf.StartPhase(telemetry.PhaseMaterial)
	}
	r.material.Update(&r.live, energy)

	if perf != nil {
		perf.StartPhase(telemetry.PhaseDeform)
	}
	r.ribbon.Advance(dt, r.live.Speed)
	r.ribbon.Deform(r.buf, &r.live, r.influence)

	if perf != nil {
		perf.StartPhase(telemetry.PhaseCamera)
	}
	cx, cy := r.influence.CurrentX, r.influence.CurrentY
	r.cam.Parallax(cx, cy, r.viewportWidth(), r.cfg.Layout.MobileMaxWidth)
	r.transform = PointerTransform(r.base, cx, cy)

	if perf != nil {
		perf.StartPhase(telemetry.PhaseUpload)
	}
	r.device.UpdateMesh(r.mesh, r.buf)

	if perf != nil {
		perf.StartPhase(telemetry.PhaseDraw)
	}
	r.device.Draw(renderer.Frame{
		Surface:     r.surface,
		Mesh:        r.mesh,
		Material:    r.mat,
		Lights:      r.lights,
		Environment: r.envTex,
		NormalMap:   r.normalTex,
		Camera:      r.cam,
		Transform:   r.transform,
		Time:        r.ribbon.Time(),
	})

	if perf != nil {
		perf.StartPhase(telemetry.PhaseTelemetry)
	}
	r.recordFrame(dt, energy.Mix, energy.Pointer, energy.Scroll)

	if perf != nil {
		perf.EndFrame()
		perf.RecordPresent()
	}
}
