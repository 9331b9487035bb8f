package silk

import "github.com/pthm-cable/silk/renderer"

// Container is the host element the drawing surface is attached to.
type Container interface {
	// Bounds returns the container size; zero means unknown.
	Bounds() (width, height float64)
	Attach(s renderer.Surface)
	Detach(s renderer.Surface)
	Contains(s renderer.Surface) bool
}

// ResizeNotifier is implemented by containers that report size changes.
// OnResize returns a function that removes the listener.
type ResizeNotifier interface {
	OnResize(fn func()) (remove func())
}

// Viewport returns the host window size, used when the container has no
// size and for layout breakpoints.
type Viewport func() (width, height float64)
