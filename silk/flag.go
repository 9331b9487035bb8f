package silk

import "sync/atomic"

// Flag is a boolean shared between the host and the renderer, such as the
// reduced-motion preference or the static-fallback decision.
type Flag struct {
	v atomic.Bool
}

// NewFlag returns a flag with the given initial value.
func NewFlag(v bool) *Flag {
	f := &Flag{}
	f.v.Store(v)
	return f
}

// Get returns the current value. A nil flag reads as false.
func (f *Flag) Get() bool {
	if f == nil {
		return false
	}
	return f.v.Load()
}

// Set stores v.
func (f *Flag) Set(v bool) {
	f.v.Store(v)
}
