package window

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/silk/renderer"
)

// Container presents the raylib window as the silk drawing container.
type Container struct {
	attached  renderer.Surface
	listeners map[int]func()
	nextID    int
}

// NewContainer creates a container for the open window.
func NewContainer() *Container {
	return &Container{listeners: make(map[int]func())}
}

// Bounds returns the window size in screen pixels.
func (c *Container) Bounds() (float64, float64) {
	return float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
}

// Attach records the surface presented by Draw.
func (c *Container) Attach(s renderer.Surface) {
	c.attached = s
}

// Detach forgets s.
func (c *Container) Detach(s renderer.Surface) {
	if c.attached == s {
		c.attached = 0
	}
}

// Contains reports whether s is attached.
func (c *Container) Contains(s renderer.Surface) bool {
	return s != 0 && c.attached == s
}

// Attached returns the presented surface, or zero.
func (c *Container) Attached() renderer.Surface {
	return c.attached
}

// OnResize registers fn to run after the window is resized.
func (c *Container) OnResize(fn func()) func() {
	c.nextID++
	id := c.nextID
	c.listeners[id] = fn
	return func() { delete(c.listeners, id) }
}

// Poll notifies listeners if the window was resized this frame.
func (c *Container) Poll() {
	if !rl.IsWindowResized() {
		return
	}
	for _, fn := range c.listeners {
		fn()
	}
}

// Viewport returns the window size.
func Viewport() (float64, float64) {
	return float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
}
