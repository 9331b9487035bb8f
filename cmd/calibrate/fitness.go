package main

import (
	"math"
	"math/rand"
	"sync"

	"github.com/pthm-cable/silk/config"
	"github.com/pthm-cable/silk/systems"
	"github.com/pthm-cable/silk/telemetry"
)

// Targets describes the idle motion the tuner aims for.
type Targets struct {
	EnergyMean float64 // Mean energy mix with no host input
	EnergyP90  float64 // 90th percentile energy mix
	MaxClipped float64 // Fraction of frames allowed to saturate the breeze target
}

// runResult summarizes one seeded idle run.
type runResult struct {
	mean, p90 float64
	clipped   float64 // Fraction of frames where either breeze axis hit +-1
	gusts     int
}

// FitnessEvaluator runs idle breeze simulations and scores them against Targets.
type FitnessEvaluator struct {
	params  *ParamVector
	base    *config.Config
	seeds   []int64
	seconds float64
	targets Targets

	mu   sync.Mutex
	last runResult
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, base *config.Config, seeds []int64, seconds float64, targets Targets) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:  params,
		base:    base,
		seeds:   seeds,
		seconds: seconds,
		targets: targets,
	}
}

// Last returns the averaged result of the most recent evaluation.
func (fe *FitnessEvaluator) Last() (mean, p90, clipped float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.last.mean, fe.last.p90, fe.last.clipped
}

// Evaluate scores raw parameter values (lower is better). Seeds run in parallel.
func (fe *FitnessEvaluator) Evaluate(raw []float64) float64 {
	cfg := *fe.base
	fe.params.ApplyToConfig(&cfg, raw)

	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(i int, seed int64) {
			defer wg.Done()
			results[i] = fe.run(&cfg, seed)
		}(i, seed)
	}
	wg.Wait()

	var avg runResult
	for _, r := range results {
		avg.mean += r.mean
		avg.p90 += r.p90
		avg.clipped += r.clipped
		avg.gusts += r.gusts
	}
	n := float64(len(results))
	avg.mean /= n
	avg.p90 /= n
	avg.clipped /= n

	fe.mu.Lock()
	fe.last = avg
	fe.mu.Unlock()

	return fe.score(avg)
}

func (fe *FitnessEvaluator) score(r runResult) float64 {
	t := fe.targets
	loss := sq(r.mean-t.EnergyMean) + sq(r.p90-t.EnergyP90)
	if r.clipped > t.MaxClipped {
		loss += 4 * sq(r.clipped-t.MaxClipped)
	}
	// A run without a single gust is not a breeze.
	if r.gusts == 0 {
		loss += 1
	}
	return loss
}

// run steps breeze and influence at 60 Hz with no host input.
func (fe *FitnessEvaluator) run(cfg *config.Config, seed int64) runResult {
	const dt = 1.0 / 60

	breeze := systems.NewBreeze(rand.New(rand.NewSource(seed)), cfg.Breeze)
	influence := systems.NewInfluence(cfg.Influence)

	frames := int(fe.seconds / dt)
	mix := make([]float64, 0, frames)
	clipped := 0
	gusts := 0
	lastNext := breeze.Gust.TimeUntilNext

	for i := 0; i < frames; i++ {
		x, y := breeze.Step(dt)
		if breeze.Gust.TimeUntilNext > lastNext {
			gusts++
		}
		lastNext = breeze.Gust.TimeUntilNext
		if math.Abs(x) >= 1 || math.Abs(y) >= 1 {
			clipped++
		}
		influence.SetBreezeTarget(x, y)
		influence.Blend()
		mix = append(mix, influence.Energy().Mix)
	}

	mean, _, _, p90 := telemetry.ComputeStats(mix)
	return runResult{
		mean:    mean,
		p90:     p90,
		clipped: float64(clipped) / float64(max(frames, 1)),
		gusts:   gusts,
	}
}

func sq(v float64) float64 { return v * v }
