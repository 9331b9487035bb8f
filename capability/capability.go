// Package capability decides whether the device should skip the animated
// ribbon and show the static presentation instead.
package capability

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"slices"
	"strings"

	"github.com/pthm-cable/silk/config"
)

// ErrUnknownPolicy is returned by PolicyByName for unregistered names.
var ErrUnknownPolicy = errors.New("unknown fallback policy")

// NetworkClassEnv names the environment variable read by SystemEnvironment
// when no network class is configured.
const NetworkClassEnv = "SILK_NETWORK_CLASS"

// Environment exposes the raw capability signals of the host device.
// Implementations return the zero value when a signal is unavailable.
type Environment interface {
	SurfaceAvailable() bool
	CPUConcurrency() int  // 0 when unknown
	NetworkClass() string // "" when unknown
}

// Signals is a snapshot of probed capability signals.
type Signals struct {
	Surface      bool
	CPUs         int
	NetworkClass string
}

// Probe reads every signal from env. A signal whose probe panics is treated
// as absent.
func Probe(env Environment) Signals {
	if env == nil {
		return Signals{}
	}
	return Signals{
		Surface:      safe(env.SurfaceAvailable, false),
		CPUs:         safe(env.CPUConcurrency, 0),
		NetworkClass: safe(env.NetworkClass, ""),
	}
}

func safe[T any](probe func() T, absent T) (v T) {
	defer func() {
		if recover() != nil {
			v = absent
		}
	}()
	return probe()
}

// Policy turns signals into a fallback decision.
type Policy interface {
	ShouldFallback(s Signals) bool
}

// HeuristicPolicy falls back on low core counts, slow networks, or a missing
// drawing surface.
type HeuristicPolicy struct {
	LowPowerCPUs int      // Known CPU count at or below this falls back
	SlowNetworks []string // Network classes that fall back
}

// ShouldFallback implements Policy.
func (p HeuristicPolicy) ShouldFallback(s Signals) bool {
	if !s.Surface {
		return true
	}
	if s.CPUs > 0 && s.CPUs <= p.LowPowerCPUs {
		return true
	}
	return s.NetworkClass != "" && slices.Contains(p.SlowNetworks, s.NetworkClass)
}

// SurfaceOnlyPolicy falls back only when no drawing surface is available.
type SurfaceOnlyPolicy struct{}

// ShouldFallback implements Policy.
func (SurfaceOnlyPolicy) ShouldFallback(s Signals) bool {
	return !s.Surface
}

// Policy names accepted by PolicyByName.
const (
	PolicyHeuristic   = "heuristic"
	PolicySurfaceOnly = "surface-only"
)

// PolicyByName resolves a configured policy name.
func PolicyByName(name string, cfg config.FallbackConfig) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case PolicyHeuristic, "":
		return HeuristicPolicy{
			LowPowerCPUs: cfg.LowPowerCPUs,
			SlowNetworks: slices.Clone(cfg.SlowNetworks),
		}, nil
	case PolicySurfaceOnly:
		return SurfaceOnlyPolicy{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}

// Evaluator pairs an environment with a policy.
type Evaluator struct {
	Env    Environment
	Policy Policy
}

// NewEvaluator builds an evaluator using the configured policy.
func NewEvaluator(env Environment, cfg config.FallbackConfig) (*Evaluator, error) {
	p, err := PolicyByName(cfg.Policy, cfg)
	if err != nil {
		return nil, err
	}
	return &Evaluator{Env: env, Policy: p}, nil
}

// Decide probes the environment and reports whether to fall back. A nil
// evaluator never falls back.
func (e *Evaluator) Decide() bool {
	if e == nil || e.Policy == nil {
		return false
	}
	return e.Policy.ShouldFallback(Probe(e.Env))
}

// SystemEnvironment reads signals from the running process.
type SystemEnvironment struct {
	// Surface reports whether a drawing surface can be created. Nil means
	// unavailable.
	Surface func() bool
	// Network overrides the SILK_NETWORK_CLASS variable when non-empty.
	Network string
}

// SurfaceAvailable implements Environment.
func (e SystemEnvironment) SurfaceAvailable() bool {
	if e.Surface == nil {
		return false
	}
	return e.Surface()
}

// CPUConcurrency implements Environment.
func (e SystemEnvironment) CPUConcurrency() int {
	return runtime.NumCPU()
}

// NetworkClass implements Environment.
func (e SystemEnvironment) NetworkClass() string {
	if e.Network != "" {
		return e.Network
	}
	return strings.ToLower(os.Getenv(NetworkClassEnv))
}
