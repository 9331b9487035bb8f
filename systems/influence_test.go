package systems

import (
	"math"
	"testing"
)

// blendSteps is five seconds of frames at 16ms.
const blendSteps = 312

func TestInfluenceConverges(t *testing.T) {
	cfg := testConfig(t)
	inf := NewInfluence(cfg.Influence)
	inf.SetPointerTarget(0.8, -0.6)
	inf.SetScrollTarget(0.5)

	// Five seconds at 60 fps
	for i := 0; i < blendSteps; i++ {
		inf.Blend()
	}

	if math.Abs(inf.CurrentX-0.8) > 0.05*0.8 {
		t.Errorf("CurrentX = %f, want within 5%% of 0.8", inf.CurrentX)
	}
	if math.Abs(inf.CurrentY+0.6) > 0.05*0.6 {
		t.Errorf("CurrentY = %f, want within 5%% of -0.6", inf.CurrentY)
	}
	if math.Abs(inf.ScrollCurrent-0.5) > 0.05*0.5 {
		t.Errorf("ScrollCurrent = %f, want within 5%% of 0.5", inf.ScrollCurrent)
	}
}

func TestInfluenceClampsTargets(t *testing.T) {
	cfg := testConfig(t)
	inf := NewInfluence(cfg.Influence)

	inf.SetBreezeTarget(0.7, -0.9)
	inf.SetPointerTarget(0.6, -0.5)
	if inf.TargetX != 1 || inf.TargetY != -1 {
		t.Errorf("target = (%f, %f), want (1, -1)", inf.TargetX, inf.TargetY)
	}

	inf.SetScrollTarget(2)
	if inf.ScrollTarget != 1 {
		t.Errorf("scroll target = %f, want 1", inf.ScrollTarget)
	}
	inf.SetScrollTarget(-1)
	if inf.ScrollTarget != 0 {
		t.Errorf("scroll target = %f, want 0", inf.ScrollTarget)
	}
	inf.SetScrollTarget(math.NaN())
	if inf.ScrollTarget != 0 {
		t.Errorf("NaN changed scroll target to %f", inf.ScrollTarget)
	}
}

func TestInfluenceBreezeAloneDrivesTarget(t *testing.T) {
	cfg := testConfig(t)
	inf := NewInfluence(cfg.Influence)

	inf.SetBreezeTarget(0.25, -0.4)
	if inf.TargetX != 0.25 || inf.TargetY != -0.4 {
		t.Errorf("target = (%f, %f), want (0.25, -0.4)", inf.TargetX, inf.TargetY)
	}
}

func TestEnergyBounds(t *testing.T) {
	cfg := testConfig(t)
	inf := NewInfluence(cfg.Influence)

	inf.CurrentX, inf.CurrentY = 1, 1
	inf.ScrollCurrent = 1
	e := inf.Energy()

	if e.Pointer != 1 {
		t.Errorf("pointer energy = %f, want 1", e.Pointer)
	}
	if e.Mix != 1 {
		t.Errorf("mix = %f, want 1", e.Mix)
	}

	inf.CurrentX, inf.CurrentY = 0.3, 0.4
	inf.ScrollCurrent = 0.25
	e = inf.Energy()
	if math.Abs(e.Pointer-0.5) > 1e-9 {
		t.Errorf("pointer energy = %f, want 0.5", e.Pointer)
	}
	if math.Abs(e.Mix-0.5) > 1e-9 {
		t.Errorf("mix = %f, want 0.5", e.Mix)
	}
}

func TestInfluenceReset(t *testing.T) {
	cfg := testConfig(t)
	inf := NewInfluence(cfg.Influence)
	inf.SetPointerTarget(0.5, 0.5)
	inf.SetScrollTarget(0.5)
	inf.Blend()

	inf.Reset()

	if inf.TargetX != 0 || inf.CurrentX != 0 || inf.ScrollTarget != 0 || inf.ScrollCurrent != 0 {
		t.Errorf("reset left state: %+v", inf)
	}
	inf.SetScrollTarget(1)
	inf.Blend()
	if inf.ScrollCurrent == 0 {
		t.Error("reset dropped smoothing rates")
	}
}

func TestInfluenceScrollRisesMonotonically(t *testing.T) {
	cfg := testConfig(t)
	inf := NewInfluence(cfg.Influence)
	inf.SetPointerTarget(0, 0)
	inf.SetScrollTarget(1)

	prev := inf.ScrollCurrent
	for i := 0; i < blendSteps; i++ {
		inf.Blend()
		if inf.ScrollCurrent < prev {
			t.Fatalf("step %d: scroll fell from %f to %f", i, prev, inf.ScrollCurrent)
		}
		prev = inf.ScrollCurrent
	}
	if inf.ScrollCurrent <= 0.95 {
		t.Errorf("ScrollCurrent = %f after %d steps, want > 0.95", inf.ScrollCurrent, blendSteps)
	}
}

func TestInfluenceIgnoresNaNPointer(t *testing.T) {
	cfg := testConfig(t)
	inf := NewInfluence(cfg.Influence)

	inf.SetPointerTarget(0.5, 0.25)
	inf.SetPointerTarget(math.NaN(), -0.5)
	if inf.TargetX != 0.5 || inf.TargetY != -0.5 {
		t.Errorf("target = (%f, %f), want (0.5, -0.5)", inf.TargetX, inf.TargetY)
	}
	inf.SetBreezeTarget(math.NaN(), math.NaN())
	inf.Blend()

	inf.SetPointerTarget(0, 0)
	for i := 0; i < blendSteps; i++ {
		inf.Blend()
	}
	e := inf.Energy()
	if math.IsNaN(inf.CurrentX) || math.IsNaN(inf.CurrentY) || math.IsNaN(e.Mix) {
		t.Fatalf("NaN leaked into state: current=(%f, %f) energy=%+v", inf.CurrentX, inf.CurrentY, e)
	}

	r, buf, live, _ := newTestRibbon(t)
	r.Advance(0.016, live.Speed)
	r.Deform(buf, live, inf)
	for i, v := range buf.Positions {
		if math.IsNaN(float64(v)) {
			t.Fatalf("position %d is NaN", i)
		}
	}
}
