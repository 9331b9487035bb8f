package silk

import "time"

// FrameHandle identifies a scheduled frame callback. The zero value is never
// returned by Schedule.
type FrameHandle uint64

// FrameScheduler runs callbacks once on the next display frame.
type FrameScheduler interface {
	Schedule(fn func(now time.Time)) FrameHandle
	Cancel(h FrameHandle)
}

// Deferrer is implemented by schedulers that can run a callback at the start
// of the next turn, before any frame callbacks.
type Deferrer interface {
	Defer(fn func())
}

type frameCallback struct {
	handle FrameHandle
	fn     func(now time.Time)
}

// FrameLoop is a FrameScheduler pumped by the host's main loop. Callbacks
// scheduled while a frame runs are held for the next frame.
type FrameLoop struct {
	next     FrameHandle
	pending  []frameCallback
	deferred []func()

	// Callbacks of the frame being run, for cancellation mid-frame
	running   []frameCallback
	cancelled map[FrameHandle]bool
}

// NewFrameLoop creates an empty frame loop.
func NewFrameLoop() *FrameLoop {
	return &FrameLoop{cancelled: make(map[FrameHandle]bool)}
}

// Schedule implements FrameScheduler.
func (l *FrameLoop) Schedule(fn func(now time.Time)) FrameHandle {
	l.next++
	l.pending = append(l.pending, frameCallback{handle: l.next, fn: fn})
	return l.next
}

// Cancel implements FrameScheduler. Cancelling an unknown or already run
// handle is a no-op.
func (l *FrameLoop) Cancel(h FrameHandle) {
	for i, cb := range l.pending {
		if cb.handle == h {
			l.pending = append(l.pending[:i], l.pending[i+1:]...)
			return
		}
	}
	for _, cb := range l.running {
		if cb.handle == h {
			l.cancelled[h] = true
			return
		}
	}
}

// Defer implements Deferrer.
func (l *FrameLoop) Defer(fn func()) {
	l.deferred = append(l.deferred, fn)
}

// RunFrame runs deferred callbacks, then every frame callback that was
// pending when the frame started.
func (l *FrameLoop) RunFrame(now time.Time) {
	for len(l.deferred) > 0 {
		fns := l.deferred
		l.deferred = nil
		for _, fn := range fns {
			fn()
		}
	}

	l.running = l.pending
	l.pending = nil
	for _, cb := range l.running {
		if l.cancelled[cb.handle] {
			continue
		}
		cb.fn(now)
	}
	l.running = nil
	clear(l.cancelled)
}

// Pending returns the number of frame callbacks waiting for the next frame.
func (l *FrameLoop) Pending() int {
	return len(l.pending)
}

// Deferred returns the number of callbacks queued with Defer.
func (l *FrameLoop) Deferred() int {
	return len(l.deferred)
}
