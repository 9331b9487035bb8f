package telemetry

import (
	"log/slog"
	"time"
)

// Ribbon pipeline stages timed inside one frame tick.
const (
	PhaseBreeze    = "breeze"
	PhaseInfluence = "influence"
	PhaseMaterial  = "material"
	PhaseDeform    = "deform"
	PhaseCamera    = "camera"
	PhaseUpload    = "upload"
	PhaseDraw      = "draw"
	PhaseTelemetry = "telemetry"
)

// Phases is the stage order of silk's step; panels and logs iterate it.
var Phases = []string{
	PhaseBreeze, PhaseInfluence, PhaseMaterial, PhaseDeform,
	PhaseCamera, PhaseUpload, PhaseDraw, PhaseTelemetry,
}

// PerfSample is the cost of one ribbon frame, total and per stage.
type PerfSample struct {
	FrameDuration time.Duration
	Phases        map[string]time.Duration
}

// PerfCollector keeps the last windowSize frame costs in a ring and the
// wall-clock gap between presents. Owned by the frame thread.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	frameStart    time.Time
	phaseStart    time.Time
	lastPhase     string

	// Wall time between presented frames
	lastPresent     time.Time
	presentInterval time.Duration

	now func() time.Time
}

// NewPerfCollector sizes the ring from telemetry.perf_window. Non-positive
// sizes fall back to one second at 60 Hz.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
		now:           time.Now,
	}
}

// StartFrame opens a sample at the top of the renderer's step.
func (p *PerfCollector) StartFrame() {
	p.frameStart = p.now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase closes the running stage, if any, and opens phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := p.now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndFrame closes the last stage and stores the sample, overwriting the
// oldest once the ring is full.
func (p *PerfCollector) EndFrame() {
	now := p.now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		FrameDuration: now.Sub(p.frameStart),
		Phases:        p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordPresent stamps a drawn frame. The gap to the previous stamp gives
// the presented frame rate, which includes time spent outside the tick.
func (p *PerfCollector) RecordPresent() {
	now := p.now()
	if !p.lastPresent.IsZero() {
		p.presentInterval = now.Sub(p.lastPresent)
	}
	p.lastPresent = now
}

// PerfStats summarizes the ring for the perf panel, logs and perf.csv.
type PerfStats struct {
	// Frame tick cost
	AvgFrameDuration time.Duration
	MinFrameDuration time.Duration
	MaxFrameDuration time.Duration

	// Phase breakdown (average durations)
	PhaseAvg map[string]time.Duration

	// Phase percentages of total frame cost
	PhasePct map[string]float64

	// Frames the tick alone could sustain per second
	Headroom float64

	// Presented frame rate
	PresentInterval time.Duration
	FPS             float64
}

// Stats averages the samples held in the ring. With no samples only the
// present rate is filled in.
func (p *PerfCollector) Stats() PerfStats {
	var fps float64
	if p.presentInterval > 0 {
		fps = float64(time.Second) / float64(p.presentInterval)
	}

	if p.sampleCount == 0 {
		return PerfStats{
			PhaseAvg:        make(map[string]time.Duration),
			PhasePct:        make(map[string]float64),
			PresentInterval: p.presentInterval,
			FPS:             fps,
		}
	}

	var total, minFrame, maxFrame time.Duration
	phaseSum := make(map[string]time.Duration)

	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.FrameDuration

		if i == 0 || s.FrameDuration < minFrame {
			minFrame = s.FrameDuration
		}
		if s.FrameDuration > maxFrame {
			maxFrame = s.FrameDuration
		}

		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	avg := total / time.Duration(p.sampleCount)

	phaseAvg := make(map[string]time.Duration)
	phasePct := make(map[string]float64)
	for phase, sum := range phaseSum {
		phaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if avg > 0 {
			phasePct[phase] = float64(phaseAvg[phase]) / float64(avg) * 100
		}
	}

	var headroom float64
	if avg > 0 {
		headroom = float64(time.Second) / float64(avg)
	}

	return PerfStats{
		AvgFrameDuration: avg,
		MinFrameDuration: minFrame,
		MaxFrameDuration: maxFrame,
		PhaseAvg:         phaseAvg,
		PhasePct:         phasePct,
		Headroom:         headroom,
		PresentInterval:  p.presentInterval,
		FPS:              fps,
	}
}

// LogStats emits one "perf" line; stages under 0.1% are left out.
func (s PerfStats) LogStats(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	attrs := []any{
		"avg_frame_us", s.AvgFrameDuration.Microseconds(),
		"min_frame_us", s.MinFrameDuration.Microseconds(),
		"max_frame_us", s.MaxFrameDuration.Microseconds(),
		"headroom_fps", int(s.Headroom),
	}

	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}

	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", float64(int(pct*10))/10)
		}
	}

	logger.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_frame_us", s.AvgFrameDuration.Microseconds()),
		slog.Int64("min_frame_us", s.MinFrameDuration.Microseconds()),
		slog.Int64("max_frame_us", s.MaxFrameDuration.Microseconds()),
		slog.Float64("headroom_fps", s.Headroom),
	}

	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}

	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}

	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one perf.csv row, one column per ribbon stage.
type PerfStatsCSV struct {
	Frame        int64   `csv:"frame"`
	AvgFrameUS   int64   `csv:"avg_frame_us"`
	MinFrameUS   int64   `csv:"min_frame_us"`
	MaxFrameUS   int64   `csv:"max_frame_us"`
	HeadroomFPS  float64 `csv:"headroom_fps"`
	FPS          float64 `csv:"fps"`
	BreezePct    float64 `csv:"breeze_pct"`
	InfluencePct float64 `csv:"influence_pct"`
	MaterialPct  float64 `csv:"material_pct"`
	DeformPct    float64 `csv:"deform_pct"`
	CameraPct    float64 `csv:"camera_pct"`
	UploadPct    float64 `csv:"upload_pct"`
	DrawPct      float64 `csv:"draw_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats for the row written at frame.
func (s PerfStats) ToCSV(frame int64) PerfStatsCSV {
	return PerfStatsCSV{
		Frame:        frame,
		AvgFrameUS:   s.AvgFrameDuration.Microseconds(),
		MinFrameUS:   s.MinFrameDuration.Microseconds(),
		MaxFrameUS:   s.MaxFrameDuration.Microseconds(),
		HeadroomFPS:  s.Headroom,
		FPS:          s.FPS,
		BreezePct:    s.PhasePct[PhaseBreeze],
		InfluencePct: s.PhasePct[PhaseInfluence],
		MaterialPct:  s.PhasePct[PhaseMaterial],
		DeformPct:    s.PhasePct[PhaseDeform],
		CameraPct:    s.PhasePct[PhaseCamera],
		UploadPct:    s.PhasePct[PhaseUpload],
		DrawPct:      s.PhasePct[PhaseDraw],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
