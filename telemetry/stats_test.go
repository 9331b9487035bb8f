package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeStats(t *testing.T) {
	values := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}
	mean, p10, p50, p90 := ComputeStats(values)

	if math.Abs(mean-0.55) > 0.001 {
		t.Errorf("mean = %v, want 0.55", mean)
	}
	if math.Abs(p10-0.19) > 0.01 {
		t.Errorf("p10 = %v, want ~0.19", p10)
	}
	if math.Abs(p50-0.55) > 0.01 {
		t.Errorf("p50 = %v, want ~0.55", p50)
	}
	if math.Abs(p90-0.91) > 0.01 {
		t.Errorf("p90 = %v, want ~0.91", p90)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	mean, p10, p50, p90 := ComputeStats([]float64{})

	if mean != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(4)

	for i := 0; i < 4; i++ {
		c.RecordFrame(FrameSample{DT: 0.016, Energy: float64(i) / 4, Pointer: 0.5, Scroll: 0.25, Speed: 0.12})
	}
	c.RecordEvent(EventGust)
	c.RecordEvent(EventInit)

	if c.ShouldFlush(3) {
		t.Error("window should not flush before four frames")
	}
	if !c.ShouldFlush(4) {
		t.Fatal("window should flush at four frames")
	}

	s := c.Flush(4)
	if s.Frames != 4 {
		t.Errorf("frames = %d, want 4", s.Frames)
	}
	if math.Abs(s.MeanDT-0.016) > 1e-12 {
		t.Errorf("mean dt = %v, want 0.016", s.MeanDT)
	}
	if math.Abs(s.EnergyMean-0.375) > 1e-12 {
		t.Errorf("energy mean = %v, want 0.375", s.EnergyMean)
	}
	if s.PointerMean != 0.5 || s.ScrollMean != 0.25 {
		t.Errorf("pointer/scroll means = %v/%v", s.PointerMean, s.ScrollMean)
	}
	if s.Gusts != 1 || s.Inits != 1 {
		t.Errorf("events = %d gusts, %d inits", s.Gusts, s.Inits)
	}

	// Next window starts empty
	next := c.Flush(8)
	if next.Frames != 0 || next.Gusts != 0 || next.WindowStartFrame != 4 {
		t.Errorf("counters not reset: %+v", next)
	}
	if math.Abs(next.SimTimeSec-0.064) > 1e-12 {
		t.Errorf("sim time should keep accumulating, got %v", next.SimTimeSec)
	}
}

func TestEventTypeString(t *testing.T) {
	if EventInitAborted.String() != "init_aborted" {
		t.Errorf("got %q", EventInitAborted.String())
	}
	if EventType(200).String() != "unknown" {
		t.Errorf("got %q", EventType(200).String())
	}
}
