package silk

import (
	"testing"
	"time"
)

func TestFrameLoopRunsNextFrame(t *testing.T) {
	l := NewFrameLoop()
	var calls int
	var tick func(time.Time)
	tick = func(time.Time) {
		calls++
		l.Schedule(tick)
	}
	l.Schedule(tick)

	l.RunFrame(time.Now())
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if l.Pending() != 1 {
		t.Errorf("pending = %d, want 1", l.Pending())
	}
}

func TestFrameLoopCancel(t *testing.T) {
	l := NewFrameLoop()
	ran := false
	h := l.Schedule(func(time.Time) { ran = true })
	l.Cancel(h)
	l.Cancel(h)
	l.RunFrame(time.Now())
	if ran {
		t.Error("cancelled callback ran")
	}
}

func TestFrameLoopCancelDuringFrame(t *testing.T) {
	l := NewFrameLoop()
	ran := false
	var second FrameHandle
	l.Schedule(func(time.Time) { l.Cancel(second) })
	second = l.Schedule(func(time.Time) { ran = true })
	l.RunFrame(time.Now())
	if ran {
		t.Error("callback cancelled mid-frame still ran")
	}
}

func TestFrameLoopDeferRunsFirst(t *testing.T) {
	l := NewFrameLoop()
	var order []string
	l.Schedule(func(time.Time) { order = append(order, "frame") })
	l.Defer(func() { order = append(order, "deferred") })
	l.RunFrame(time.Now())
	if len(order) != 2 || order[0] != "deferred" || order[1] != "frame" {
		t.Errorf("order = %v", order)
	}
	if l.Deferred() != 0 {
		t.Errorf("deferred = %d, want 0", l.Deferred())
	}
}

func TestFlagNilReadsFalse(t *testing.T) {
	var f *Flag
	if f.Get() {
		t.Error("nil flag read true")
	}
	f = NewFlag(true)
	f.Set(false)
	if f.Get() {
		t.Error("flag not cleared")
	}
}
