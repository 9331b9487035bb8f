package telemetry

import "math"

// FrameSample is the per-frame activity recorded by the renderer.
type FrameSample struct {
	DT             float64
	Energy         float64 // Energy mix
	Pointer        float64
	Scroll         float64
	Speed          float64
	TwistAmplitude float64
	FlowFrequency  float64
	GustEnvelope   float64
}

// Collector accumulates frame samples and events within windows of frames
// and produces WindowStats.
type Collector struct {
	windowFrames int64

	// Current window tracking
	windowStart int64
	simTime     float64

	energies []float64
	dtSum    float64
	dtMax    float64
	pointer  float64
	scroll   float64
	gustPeak float64
	last     FrameSample

	counts map[EventType]int
}

// NewCollector creates a collector that flushes every windowFrames frames.
func NewCollector(windowFrames int) *Collector {
	if windowFrames < 1 {
		windowFrames = 1
	}
	return &Collector{
		windowFrames: int64(windowFrames),
		energies:     make([]float64, 0, windowFrames),
		counts:       make(map[EventType]int),
	}
}

// RecordFrame records one frame's activity.
func (c *Collector) RecordFrame(s FrameSample) {
	c.simTime += s.DT
	c.energies = append(c.energies, s.Energy)
	c.dtSum += s.DT
	c.dtMax = math.Max(c.dtMax, s.DT)
	c.pointer += s.Pointer
	c.scroll += s.Scroll
	c.gustPeak = math.Max(c.gustPeak, s.GustEnvelope)
	c.last = s
}

// RecordEvent counts a lifecycle event in the current window.
func (c *Collector) RecordEvent(t EventType) {
	c.counts[t]++
}

// ShouldFlush returns true if enough frames have passed to flush the window.
func (c *Collector) ShouldFlush(frame int64) bool {
	return frame-c.windowStart >= c.windowFrames
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(frame int64) WindowStats {
	n := len(c.energies)
	mean, p10, p50, p90 := ComputeStats(c.energies)

	stats := WindowStats{
		WindowStartFrame: c.windowStart,
		WindowEndFrame:   frame,
		SimTimeSec:       c.simTime,
		Frames:           n,
		MaxDT:            c.dtMax,
		EnergyMean:       mean,
		EnergyP10:        p10,
		EnergyP50:        p50,
		EnergyP90:        p90,
		Speed:            c.last.Speed,
		TwistAmplitude:   c.last.TwistAmplitude,
		FlowFrequency:    c.last.FlowFrequency,
		GustPeak:         c.gustPeak,
		Gusts:            c.counts[EventGust],
		Inits:            c.counts[EventInit],
		Disposes:         c.counts[EventDispose],
		Fallbacks:        c.counts[EventFallback],
		Resizes:          c.counts[EventResize],
	}
	if n > 0 {
		stats.MeanDT = c.dtSum / float64(n)
		stats.PointerMean = c.pointer / float64(n)
		stats.ScrollMean = c.scroll / float64(n)
	}

	// Reset for next window
	c.windowStart = frame
	c.energies = c.energies[:0]
	c.dtSum, c.dtMax = 0, 0
	c.pointer, c.scroll = 0, 0
	c.gustPeak = 0
	clear(c.counts)

	return stats
}

// WindowFrames returns the number of frames per window.
func (c *Collector) WindowFrames() int64 {
	return c.windowFrames
}
