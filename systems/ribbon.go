package systems

import (
	"math"

	"github.com/pthm-cable/silk/config"
)

// Ribbon deforms the mesh buffer from simulated time and influence.
type Ribbon struct {
	time float64 // Simulated time, advanced faster as the ribbon speeds up

	timeScaleBase float64
	timeScaleGain float64
}

// NewRibbon creates a ribbon deformer at simulated time zero.
func NewRibbon(cfg config.DeformConfig) *Ribbon {
	return &Ribbon{
		timeScaleBase: cfg.TimeScaleBase,
		timeScaleGain: cfg.TimeScaleGain,
	}
}

// Time returns the accumulated simulated time.
func (r *Ribbon) Time() float64 {
	return r.time
}

// Reset rewinds simulated time to zero.
func (r *Ribbon) Reset() {
	r.time = 0
}

// Advance moves simulated time forward by dt scaled by the live speed.
func (r *Ribbon) Advance(dt, speed float64) {
	if dt <= 0 {
		return
	}
	r.time += dt * (r.timeScaleBase + speed*r.timeScaleGain)
}

// ColorMix returns the base-to-glow mix ratio for a column, always in [0, 1].
// highlight is a powered sine sweep; the cross highlight is a clamped cosine
// that is cubed before being added.
func ColorMix(flowPhase, pointerX, pointerEnergy, t float64) float64 {
	glowSweep := 0.5 + 0.5*math.Sin(flowPhase+pointerX*0.5)
	highlight := math.Pow(glowSweep, 4) * (0.6 + pointerEnergy*0.4)
	crossHighlight := math.Max(math.Cos(flowPhase*0.5-t*0.6), 0)
	mix := math.Min(highlight+math.Pow(crossHighlight, 3)*0.7, 1)
	if mix < 0 || math.IsNaN(mix) {
		return 0
	}
	return mix
}

// Deform rewrites every vertex's y, z and colour, then recomputes normals.
// A nil or unallocated buffer is left untouched.
func (r *Ribbon) Deform(buf *MeshBuffer, live *RibbonConfig, inf *Influence) {
	if !buf.ready() || live == nil || inf == nil {
		return
	}

	t := r.time
	segments := buf.Segments
	heightSegments := buf.HeightSegments
	columns := buf.Columns()

	baseR, baseG, baseB := live.BaseColor.R, live.BaseColor.G, live.BaseColor.B
	glowR, glowG, glowB := live.GlowColor.R, live.GlowColor.G, live.GlowColor.B

	cx, cy := inf.CurrentX, inf.CurrentY
	pointerEnergy := 1 + pointerMagnitude(cx, cy)*0.65
	scrollEnvelope := 0.4 + inf.ScrollCurrent*0.9

	travel := t * 1.35
	breathing := math.Sin(t*0.35) * 0.3
	breezePush := cx * 0.75
	lift := cy * 0.9

	for col := 0; col < columns; col++ {
		ratio := float64(col) / float64(segments)
		flowPhase := ratio*(2*math.Pi)*live.FlowFrequency - travel
		crossPhase := ratio*10 - t*0.65

		// Primary wave, higher-frequency ripple, cross ripple
		waveZ := math.Sin(flowPhase) * (1 + scrollEnvelope*0.8)
		waveZ += math.Sin(flowPhase*1.5-t*0.4) * (0.3 + scrollEnvelope*0.18) * (0.5 + pointerEnergy*0.4)
		waveZ += math.Sin(crossPhase) * (0.2 + scrollEnvelope*0.12)
		waveZ += breezePush * 0.55
		waveZ += breathing * 0.18

		meander := math.Sin(flowPhase*0.32-t*0.18) * 0.35
		centerY := math.Cos(flowPhase*0.64+crossPhase*0.2)*(0.9+scrollEnvelope*0.45) + meander + lift*0.85

		twistEnvelope := 0.65 + scrollEnvelope*0.5
		twist := math.Sin(flowPhase*0.9+crossPhase*0.4) * live.TwistAmplitude * twistEnvelope * (0.8 + pointerEnergy*0.2)
		cosTwist, sinTwist := math.Cos(twist), math.Sin(twist)

		mix := ColorMix(flowPhase, cx, pointerEnergy, t)
		cr := float32(baseR + (glowR-baseR)*mix)
		cg := float32(baseG + (glowG-baseG)*mix)
		cb := float32(baseB + (glowB-baseB)*mix)

		for row := 0; row <= heightSegments; row++ {
			idx := row*columns + col
			v := float64(row) / float64(heightSegments)
			offset := (v - 0.5) * live.Width

			buf.Positions[idx*3+1] = float32(centerY + offset*cosTwist)
			buf.Positions[idx*3+2] = float32(waveZ + offset*sinTwist)

			buf.Colors[idx*3+0] = cr
			buf.Colors[idx*3+1] = cg
			buf.Colors[idx*3+2] = cb
		}
	}

	ComputeNormals(buf)
}
