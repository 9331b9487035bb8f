package telemetry

import (
	"log/slog"
	"sort"
)

// WindowStats holds aggregated ribbon activity for a window of frames.
type WindowStats struct {
	WindowStartFrame int64   `csv:"-"`
	WindowEndFrame   int64   `csv:"window_end"`
	SimTimeSec       float64 `csv:"sim_time"`

	Frames int     `csv:"frames"`
	MeanDT float64 `csv:"mean_dt"`
	MaxDT  float64 `csv:"max_dt"`

	// Energy mix distribution
	EnergyMean float64 `csv:"energy_mean"`
	EnergyP10  float64 `csv:"energy_p10"`
	EnergyP50  float64 `csv:"energy_p50"`
	EnergyP90  float64 `csv:"energy_p90"`

	PointerMean float64 `csv:"pointer_mean"`
	ScrollMean  float64 `csv:"scroll_mean"`

	// Live appearance at window end
	Speed          float64 `csv:"speed"`
	TwistAmplitude float64 `csv:"twist_amplitude"`
	FlowFrequency  float64 `csv:"flow_frequency"`

	GustPeak float64 `csv:"gust_peak"`

	// Lifecycle events during window
	Gusts     int `csv:"gusts"`
	Inits     int `csv:"inits"`
	Disposes  int `csv:"disposes"`
	Fallbacks int `csv:"fallbacks"`
	Resizes   int `csv:"resizes"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeStats calculates mean and percentiles of values.
func ComputeStats(values []float64) (mean, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(n)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartFrame),
		slog.Int64("window_end", s.WindowEndFrame),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("frames", s.Frames),
		slog.Float64("mean_dt", s.MeanDT),
		slog.Float64("max_dt", s.MaxDT),
		slog.Float64("energy_mean", s.EnergyMean),
		slog.Float64("energy_p10", s.EnergyP10),
		slog.Float64("energy_p50", s.EnergyP50),
		slog.Float64("energy_p90", s.EnergyP90),
		slog.Float64("pointer_mean", s.PointerMean),
		slog.Float64("scroll_mean", s.ScrollMean),
		slog.Float64("speed", s.Speed),
		slog.Float64("twist_amplitude", s.TwistAmplitude),
		slog.Float64("flow_frequency", s.FlowFrequency),
		slog.Float64("gust_peak", s.GustPeak),
		slog.Int("gusts", s.Gusts),
		slog.Int("inits", s.Inits),
		slog.Int("disposes", s.Disposes),
		slog.Int("fallbacks", s.Fallbacks),
		slog.Int("resizes", s.Resizes),
	)
}

// LogStats logs the window stats.
func (s WindowStats) LogStats(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("stats",
		"window_end", s.WindowEndFrame,
		"sim_time", s.SimTimeSec,
		"frames", s.Frames,
		"mean_dt", s.MeanDT,
		"energy_mean", s.EnergyMean,
		"energy_p90", s.EnergyP90,
		"pointer_mean", s.PointerMean,
		"scroll_mean", s.ScrollMean,
		"speed", s.Speed,
		"twist_amplitude", s.TwistAmplitude,
		"gusts", s.Gusts,
		"inits", s.Inits,
		"disposes", s.Disposes,
	)
}
