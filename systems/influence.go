package systems

import (
	"math"

	"github.com/pthm-cable/silk/config"
)

// Energy holds the scalar activity metrics derived from blended influence.
type Energy struct {
	Pointer float64 // min(hypot(currentX, currentY), 1)
	Scroll  float64 // Smoothed scroll progress
	Mix     float64 // min(Pointer*0.6 + Scroll*0.8, 1)
}

// Influence holds pointer and scroll influence. Host input only ever writes
// the target fields; Blend moves the current fields toward them.
type Influence struct {
	// Effective pointer target (breeze plus host pointer), each in [-1, 1]
	TargetX, TargetY float64
	// Smoothed pointer position, each in [-1, 1]
	CurrentX, CurrentY float64

	// Scroll progress, each in [0, 1]
	ScrollTarget  float64
	ScrollCurrent float64

	breezeX, breezeY float64
	hostX, hostY     float64

	cfg config.InfluenceConfig
}

// NewInfluence creates an influence blender at rest.
func NewInfluence(cfg config.InfluenceConfig) *Influence {
	return &Influence{cfg: cfg}
}

// Reset zeroes all influence state.
func (inf *Influence) Reset() {
	cfg := inf.cfg
	*inf = Influence{cfg: cfg}
}

// SetBreezeTarget records the autonomous breeze contribution to the pointer
// target. A NaN axis keeps its previous value.
func (inf *Influence) SetBreezeTarget(x, y float64) {
	inf.breezeX, inf.breezeY = unitOr(x, inf.breezeX), unitOr(y, inf.breezeY)
	inf.updatePointerTarget()
}

// SetPointerTarget records the host pointer position, normalized to [-1, 1].
// A NaN axis keeps its previous value.
func (inf *Influence) SetPointerTarget(x, y float64) {
	inf.hostX, inf.hostY = unitOr(x, inf.hostX), unitOr(y, inf.hostY)
	inf.updatePointerTarget()
}

func unitOr(v, prev float64) float64 {
	if math.IsNaN(v) {
		return prev
	}
	return clampUnit(v)
}

// SetScrollTarget records the host scroll progress, clamped to [0, 1].
// NaN is ignored.
func (inf *Influence) SetScrollTarget(v float64) {
	if math.IsNaN(v) {
		return
	}
	inf.ScrollTarget = clamp01(v)
}

func (inf *Influence) updatePointerTarget() {
	inf.TargetX = clampUnit(inf.breezeX + inf.hostX)
	inf.TargetY = clampUnit(inf.breezeY + inf.hostY)
}

// Blend moves every current value toward its target with a first-order
// low-pass filter. Called once per frame.
func (inf *Influence) Blend() {
	inf.CurrentX = approach(inf.CurrentX, inf.TargetX, inf.cfg.PointerAlphaX)
	inf.CurrentY = approach(inf.CurrentY, inf.TargetY, inf.cfg.PointerAlphaY)
	inf.ScrollCurrent = approach(inf.ScrollCurrent, inf.ScrollTarget, inf.cfg.ScrollAlpha)
}

// Energy derives the activity metrics from the current smoothed state.
func (inf *Influence) Energy() Energy {
	pointer := pointerMagnitude(inf.CurrentX, inf.CurrentY)
	scroll := inf.ScrollCurrent
	return Energy{
		Pointer: pointer,
		Scroll:  scroll,
		Mix:     math.Min(pointer*0.6+scroll*0.8, 1),
	}
}
