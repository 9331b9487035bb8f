package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/silk/config"
)

// Gust describes a single episodic push of the breeze.
// Invariant: 0 <= Elapsed <= Duration.
type Gust struct {
	Duration      float64 // Seconds the gust lasts
	Elapsed       float64 // Seconds since the gust started
	Strength      float64 // Peak envelope value
	TimeUntilNext float64 // Seconds until the next gust is sampled
}

// Breeze generates a bounded, wandering 2D wind target with occasional gusts.
// It owns its random source; two breezes built from equally seeded sources
// produce identical sequences.
type Breeze struct {
	PhaseX, PhaseY float64 // Monotonically increasing, unbounded
	DriftX, DriftY float64
	Gust           Gust

	cfg config.BreezeConfig
	rng *rand.Rand
}

// NewBreeze creates a breeze with freshly sampled phases and drift.
func NewBreeze(rng *rand.Rand, cfg config.BreezeConfig) *Breeze {
	b := &Breeze{cfg: cfg, rng: rng}
	b.Reset()
	return b
}

// Reset resamples phases and drift and clears any gust in progress.
func (b *Breeze) Reset() {
	b.PhaseX = b.rng.Float64() * 2 * math.Pi
	b.PhaseY = b.rng.Float64() * 2 * math.Pi
	b.DriftX = randRange(b.rng, -b.cfg.InitialDrift, b.cfg.InitialDrift)
	b.DriftY = randRange(b.rng, -b.cfg.InitialDrift, b.cfg.InitialDrift)
	b.Gust = Gust{
		TimeUntilNext: randRange(b.rng, b.cfg.InitialDelayMin, b.cfg.InitialDelayMax),
	}
}

// Step advances the breeze by dt seconds and returns the new wind target,
// each axis clamped to [-1, 1]. Negative dt is treated as zero.
func (b *Breeze) Step(dt float64) (x, y float64) {
	if dt < 0 {
		dt = 0
	}

	b.PhaseX += dt * b.cfg.PhaseRateX
	b.PhaseY += dt * b.cfg.PhaseRateY

	b.Gust.TimeUntilNext -= dt
	if b.Gust.TimeUntilNext <= 0 {
		b.startGust()
	}

	if b.Gust.Elapsed < b.Gust.Duration {
		b.Gust.Elapsed = math.Min(b.Gust.Elapsed+dt, b.Gust.Duration)
	}

	return b.Target()
}

// startGust resamples every gust field and the drift.
func (b *Breeze) startGust() {
	b.Gust = Gust{
		Duration:      randRange(b.rng, b.cfg.GustDurationMin, b.cfg.GustDurationMax),
		Elapsed:       0,
		Strength:      randRange(b.rng, b.cfg.GustStrengthMin, b.cfg.GustStrengthMax),
		TimeUntilNext: randRange(b.rng, b.cfg.GustIntervalMin, b.cfg.GustIntervalMax),
	}
	b.DriftX = randRange(b.rng, -b.cfg.DriftSpread, b.cfg.DriftSpread)
	b.DriftY = randRange(b.rng, -b.cfg.DriftSpread, b.cfg.DriftSpread)
}

// Envelope returns the current gust envelope. It is zero at both ends of the
// gust window and peaks at Strength halfway through.
func (b *Breeze) Envelope() float64 {
	return GustEnvelope(b.Gust.Elapsed, b.Gust.Duration, b.Gust.Strength)
}

// GustEnvelope is sin(pi * min(elapsed/duration, 1)) * strength, or 0 for an
// empty gust window.
func GustEnvelope(elapsed, duration, strength float64) float64 {
	if duration <= 0 {
		return 0
	}
	progress := math.Min(elapsed/duration, 1)
	return math.Sin(progress*math.Pi) * strength
}

// Target returns the wind target for the current state without advancing it.
func (b *Breeze) Target() (x, y float64) {
	env := b.Envelope()

	baseX := math.Sin(b.PhaseX) * 0.48
	layeredX := math.Sin(b.PhaseX*0.55+1.4) * 0.22
	baseY := math.Cos(b.PhaseY) * 0.35
	layeredY := math.Sin(b.PhaseY*0.38-0.8) * 0.18

	x = baseX + layeredX + env*b.cfg.GustWeightX + b.DriftX*b.cfg.DriftWeightX
	y = baseY + layeredY + env*b.cfg.GustWeightY + b.DriftY*b.cfg.DriftWeightY

	return clampUnit(x), clampUnit(y)
}
