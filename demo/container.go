package demo

import "github.com/pthm-cable/silk/renderer"

// FixedContainer is a container of constant size, used by headless runs.
type FixedContainer struct {
	Width, Height float64

	attached renderer.Surface
}

// Bounds implements silk.Container.
func (c *FixedContainer) Bounds() (float64, float64) {
	return c.Width, c.Height
}

// Attach implements silk.Container.
func (c *FixedContainer) Attach(s renderer.Surface) {
	c.attached = s
}

// Detach implements silk.Container.
func (c *FixedContainer) Detach(s renderer.Surface) {
	if c.attached == s {
		c.attached = 0
	}
}

// Contains implements silk.Container.
func (c *FixedContainer) Contains(s renderer.Surface) bool {
	return s != 0 && c.attached == s
}
