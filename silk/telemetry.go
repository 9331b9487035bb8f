package silk

import (
	"github.com/pthm-cable/silk/telemetry"
)

// recordEvent logs a lifecycle event to the collector and the events CSV.
func (r *Renderer) recordEvent(t telemetry.EventType, detail string) {
	if r.collector != nil {
		r.collector.RecordEvent(t)
	}
	if r.output == nil || r.outputOff {
		return
	}
	r.writeOutput(r.output.WriteEvent(telemetry.NewEvent(t, r.frame, r.elapsed(), detail)))
}

// recordFrame feeds the collector and flushes a window row when one is due.
func (r *Renderer) recordFrame(dt, energy, pointer, scroll float64) {
	if r.collector == nil {
		return
	}
	r.collector.RecordFrame(telemetry.FrameSample{
		DT:             dt,
		Energy:         energy,
		Pointer:        pointer,
		Scroll:         scroll,
		Speed:          r.live.Speed,
		TwistAmplitude: r.live.TwistAmplitude,
		FlowFrequency:  r.live.FlowFrequency,
		GustEnvelope:   r.breeze.Envelope(),
	})

	frame := r.frame + 1
	if !r.collector.ShouldFlush(frame) {
		return
	}
	stats := r.collector.Flush(frame)
	var perf telemetry.PerfStats
	if r.perf != nil {
		perf = r.perf.Stats()
	}
	if r.logStats {
		stats.LogStats(r.logger)
		if r.perf != nil {
			perf.LogStats(r.logger)
		}
	}
	if r.output == nil || r.outputOff {
		return
	}
	r.writeOutput(r.output.WriteFrames(stats))
	if r.perf != nil && !r.outputOff {
		r.writeOutput(r.output.WritePerf(perf, frame))
	}
}

// writeOutput logs the first output error and disables further writes.
func (r *Renderer) writeOutput(err error) {
	if err == nil {
		return
	}
	r.logger.Error("telemetry output disabled", "error", err)
	r.outputOff = true
}
