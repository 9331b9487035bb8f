package demo

import (
	"sync/atomic"

	"github.com/pthm-cable/silk/capability"
)

// SimulatedEnv wraps an environment and can pretend to be a low-end device.
type SimulatedEnv struct {
	base   capability.Environment
	lowEnd atomic.Bool
}

var _ capability.Environment = (*SimulatedEnv)(nil)

// NewSimulatedEnv wraps base.
func NewSimulatedEnv(base capability.Environment) *SimulatedEnv {
	return &SimulatedEnv{base: base}
}

// SetLowEnd toggles the simulated weak device.
func (e *SimulatedEnv) SetLowEnd(on bool) {
	e.lowEnd.Store(on)
}

// LowEnd reports whether a weak device is simulated.
func (e *SimulatedEnv) LowEnd() bool {
	return e.lowEnd.Load()
}

func (e *SimulatedEnv) SurfaceAvailable() bool {
	return e.base.SurfaceAvailable()
}

func (e *SimulatedEnv) CPUConcurrency() int {
	if e.lowEnd.Load() {
		return 1
	}
	return e.base.CPUConcurrency()
}

func (e *SimulatedEnv) NetworkClass() string {
	if e.lowEnd.Load() {
		return "2g"
	}
	return e.base.NetworkClass()
}
