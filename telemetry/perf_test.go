package telemetry

import (
	"testing"
	"time"
)

// fakeClock advances only when told to.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestCollector(window int) (*PerfCollector, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	pc := NewPerfCollector(window)
	pc.now = clock.now
	return pc, clock
}

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc, clock := newTestCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseBreeze)
		clock.advance(100 * time.Microsecond)
		pc.StartPhase(PhaseDeform)
		clock.advance(300 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()

	if stats.AvgFrameDuration != 400*time.Microsecond {
		t.Errorf("expected 400us average frame, got %v", stats.AvgFrameDuration)
	}
	if stats.PhaseAvg[PhaseBreeze] != 100*time.Microsecond {
		t.Errorf("expected 100us breeze phase, got %v", stats.PhaseAvg[PhaseBreeze])
	}
	if pct := stats.PhasePct[PhaseDeform]; pct < 74.9 || pct > 75.1 {
		t.Errorf("expected deform at 75%%, got %v", pct)
	}
	if stats.Headroom != 2500 {
		t.Errorf("expected 2500 fps headroom, got %v", stats.Headroom)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc, clock := newTestCollector(5)

	// Ten slow frames, then five fast ones replace the whole window
	for i := 0; i < 10; i++ {
		pc.StartFrame()
		clock.advance(time.Millisecond)
		pc.EndFrame()
	}
	for i := 0; i < 5; i++ {
		pc.StartFrame()
		clock.advance(100 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()
	if stats.MaxFrameDuration != 100*time.Microsecond {
		t.Errorf("expected slow frames to leave the window, max = %v", stats.MaxFrameDuration)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)

	stats := pc.Stats()

	// Empty collector should return zero values without panicking
	if stats.AvgFrameDuration != 0 {
		t.Error("expected zero avg frame duration for empty collector")
	}
	if stats.PhaseAvg == nil {
		t.Error("expected non-nil PhaseAvg map")
	}
	if stats.PhasePct == nil {
		t.Error("expected non-nil PhasePct map")
	}
}

func TestPerfCollector_PresentTiming(t *testing.T) {
	pc, clock := newTestCollector(10)

	// First call establishes baseline
	pc.RecordPresent()
	clock.advance(16 * time.Millisecond)
	pc.RecordPresent()

	stats := pc.Stats()
	if stats.PresentInterval != 16*time.Millisecond {
		t.Errorf("expected 16ms present interval, got %v", stats.PresentInterval)
	}
	if stats.FPS < 62 || stats.FPS > 63 {
		t.Errorf("expected 62.5 fps, got %v", stats.FPS)
	}
}

func TestPerfStatsToCSV(t *testing.T) {
	pc, clock := newTestCollector(4)
	pc.StartFrame()
	pc.StartPhase(PhaseDraw)
	clock.advance(time.Millisecond)
	pc.EndFrame()

	row := pc.Stats().ToCSV(42)
	if row.Frame != 42 {
		t.Errorf("expected frame 42, got %d", row.Frame)
	}
	if row.DrawPct != 100 {
		t.Errorf("expected draw at 100%%, got %v", row.DrawPct)
	}
	if row.AvgFrameUS != 1000 {
		t.Errorf("expected 1000us, got %d", row.AvgFrameUS)
	}
}
