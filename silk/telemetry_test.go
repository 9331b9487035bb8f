package silk

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/silk/telemetry"
)

func TestTelemetryWritesWindowsAndEvents(t *testing.T) {
	dir := t.TempDir()
	out, err := telemetry.NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	defer out.Close()

	h := newHarness(t, func(o *Options) {
		o.Collector = telemetry.NewCollector(5)
		o.Perf = telemetry.NewPerfCollector(5)
		o.Output = out
	})
	h.r.Init()
	runFrames(h, 12)
	h.r.Dispose()

	frames, err := os.ReadFile(filepath.Join(dir, "frames.csv"))
	if err != nil {
		t.Fatalf("reading frames.csv: %v", err)
	}
	// header plus two windows
	if lines := strings.Count(string(frames), "\n"); lines != 3 {
		t.Errorf("frames.csv has %d lines, want 3:\n%s", lines, frames)
	}

	events, err := os.ReadFile(filepath.Join(dir, "events.csv"))
	if err != nil {
		t.Fatalf("reading events.csv: %v", err)
	}
	for _, want := range []string{"init", "dispose"} {
		if !strings.Contains(string(events), want) {
			t.Errorf("events.csv missing %q:\n%s", want, events)
		}
	}
}

func TestTelemetryOutputErrorDisablesWrites(t *testing.T) {
	dir := t.TempDir()
	out, err := telemetry.NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	out.Close()

	h := newHarness(t, func(o *Options) {
		o.Collector = telemetry.NewCollector(2)
		o.Output = out
	})
	h.r.Init()
	runFrames(h, 6)
	if !h.r.outputOff {
		t.Error("output still enabled after write error")
	}
	if h.dev.draws != 6 {
		t.Errorf("draws = %d, want 6", h.dev.draws)
	}
}
