package silk

import (
	"time"

	"github.com/pthm-cable/silk/telemetry"
)

// SetPointerTarget records the host pointer, normalized to [-1, 1] per axis.
// It is combined with the breeze and takes effect on the next frame.
func (r *Renderer) SetPointerTarget(x, y float64) {
	r.influence.SetPointerTarget(x, y)
}

// HeroScroll is the write-only scroll progress handle given to the host.
type HeroScroll struct {
	r *Renderer
}

// HeroScroll returns the scroll handle.
func (r *Renderer) HeroScroll() HeroScroll {
	return HeroScroll{r: r}
}

// SetTarget records scroll progress, clamped to [0, 1].
func (h HeroScroll) SetTarget(v float64) {
	h.r.influence.SetScrollTarget(v)
}

// EvaluateFallback re-runs the capability evaluator. An unchanged decision is
// a no-op; switching to the fallback disposes, switching back schedules Init.
func (r *Renderer) EvaluateFallback() {
	if r.state == StateDisposed {
		return
	}
	next := r.caps.Decide()
	if next == r.fallback.Get() {
		return
	}
	r.fallback.Set(next)
	r.logger.Info("silk fallback evaluated", "static", next)

	if next {
		r.recordEvent(telemetry.EventFallback, "")
		r.Dispose()
		return
	}
	r.recordEvent(telemetry.EventRestore, "")
	if !r.reduced.Get() {
		r.deferInit()
	}
}

// SyncMotionPreference records the host reduced-motion preference. Reducing
// motion or an active fallback disposes; otherwise Init is scheduled.
func (r *Renderer) SyncMotionPreference(reduce bool) {
	if r.state == StateDisposed {
		return
	}
	changed := r.reduced.Get() != reduce
	r.reduced.Set(reduce)
	if changed && reduce {
		r.recordEvent(telemetry.EventMotionReduced, "")
	}

	if reduce || r.fallback.Get() {
		r.Dispose()
		return
	}
	r.deferInit()
}

// deferInit runs Init at the start of the next scheduler turn. Repeated
// requests before it runs collapse into one.
func (r *Renderer) deferInit() {
	if r.initPending || r.state == StateActive {
		return
	}
	r.initPending = true
	if d, ok := r.sched.(Deferrer); ok {
		d.Defer(r.Init)
		return
	}
	r.sched.Schedule(func(time.Time) { r.Init() })
}

// Snapshot captures the current animation state.
func (r *Renderer) Snapshot(label string) (*telemetry.Snapshot, error) {
	if r.state == StateDisposed {
		return nil, ErrClosed
	}
	w, h := r.viewport()
	b, inf, live := r.breeze, r.influence, r.live
	return &telemetry.Snapshot{
		Version:   telemetry.SnapshotVersion,
		Seed:      r.seed,
		Frame:     r.frame,
		Label:     label,
		SimTime:   r.ribbon.Time(),
		ViewportW: w,
		ViewportH: h,
		Ribbon: telemetry.RibbonState{
			Speed:          live.Speed,
			TwistSpeed:     live.TwistSpeed,
			TwistAmplitude: live.TwistAmplitude,
			FlowFrequency:  live.FlowFrequency,
			BaseColor:      live.BaseColor.Hex(),
			GlowColor:      live.GlowColor.Hex(),
		},
		Influence: telemetry.InfluenceState{
			TargetX:       inf.TargetX,
			TargetY:       inf.TargetY,
			CurrentX:      inf.CurrentX,
			CurrentY:      inf.CurrentY,
			ScrollTarget:  inf.ScrollTarget,
			ScrollCurrent: inf.ScrollCurrent,
		},
		Breeze: telemetry.BreezeState{
			PhaseX:        b.PhaseX,
			PhaseY:        b.PhaseY,
			DriftX:        b.DriftX,
			DriftY:        b.DriftY,
			GustDuration:  b.Gust.Duration,
			GustElapsed:   b.Gust.Elapsed,
			GustStrength:  b.Gust.Strength,
			TimeUntilNext: b.Gust.TimeUntilNext,
		},
	}, nil
}
