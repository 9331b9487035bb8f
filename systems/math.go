package systems

import (
	"math"
	"math/rand"
)

// Clamp functions for common value ranges

// clamp restricts v to [minVal, maxVal].
func clamp(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clamp01 clamps a value to the [0, 1] range.
func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

// clampUnit clamps a value to the [-1, 1] range.
func clampUnit(v float64) float64 {
	return clamp(v, -1, 1)
}

// approach moves current toward target by rate of the remaining distance.
// rate is clamped to [0, 1] so the result never overshoots.
func approach(current, target, rate float64) float64 {
	return current + (target-current)*clamp01(rate)
}

// randRange returns a uniform value in [lo, hi).
func randRange(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// pointerMagnitude returns hypot(x, y) capped at 1.
func pointerMagnitude(x, y float64) float64 {
	return math.Min(math.Hypot(x, y), 1)
}
