// Package camera provides the perspective camera that frames the ribbon.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/silk/config"
)

// Camera is a perspective camera looking at a target point.
type Camera struct {
	Position r3.Vec
	Target   r3.Vec
	Up       r3.Vec

	// Vertical field of view in radians
	FovY float64

	// Aspect is viewport width over height
	Aspect float64

	Near, Far float64

	// Viewport dimensions in surface pixels
	ViewportW, ViewportH float64

	cfg config.CameraConfig
}

// New creates a camera at (0, 0, distance) looking at the origin.
func New(cfg config.CameraConfig, viewportW, viewportH float64) *Camera {
	c := &Camera{
		Position: r3.Vec{Z: cfg.Distance},
		Up:       r3.Vec{Y: 1},
		FovY:     cfg.FovY * math.Pi / 180,
		Near:     cfg.Near,
		Far:      cfg.Far,
		cfg:      cfg,
	}
	c.Resize(viewportW, viewportH)
	return c
}

// Resize updates the viewport and the projection aspect ratio.
// A zero or negative height keeps the previous aspect.
func (c *Camera) Resize(viewportW, viewportH float64) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	if viewportH > 0 && viewportW > 0 {
		c.Aspect = viewportW / viewportH
	} else if c.Aspect == 0 {
		c.Aspect = 1
	}
}

// FovYDegrees returns the vertical field of view in degrees.
func (c *Camera) FovYDegrees() float64 {
	return c.FovY * 180 / math.Pi
}

// Parallax moves the camera with the smoothed pointer and re-aims it at the
// origin. Narrow viewports pull the camera back.
func (c *Camera) Parallax(cx, cy, viewportW, mobileMaxWidth float64) {
	dist := c.cfg.Distance
	if viewportW < mobileMaxWidth {
		dist = c.cfg.MobileDistance
	}
	c.Position = r3.Vec{
		X: cx * c.cfg.ParallaxX,
		Y: cy*c.cfg.ParallaxY + c.cfg.OffsetY,
		Z: dist,
	}
	c.Target = r3.Vec{}
}

// Basis returns the camera's forward, right and up unit vectors.
func (c *Camera) Basis() (forward, right, up r3.Vec) {
	forward = r3.Sub(c.Target, c.Position)
	if r3.Norm2(forward) == 0 {
		forward = r3.Vec{Z: -1}
	}
	forward = r3.Unit(forward)
	right = r3.Cross(forward, c.Up)
	if r3.Norm2(right) == 0 {
		right = r3.Vec{X: 1}
	}
	right = r3.Unit(right)
	up = r3.Cross(right, forward)
	return forward, right, up
}

// WorldToScreen projects a world point to viewport pixels with the origin at
// the top-left. ok is false for points behind the near plane.
func (c *Camera) WorldToScreen(p r3.Vec) (sx, sy float64, ok bool) {
	forward, right, up := c.Basis()
	d := r3.Sub(p, c.Position)

	depth := r3.Dot(d, forward)
	if depth < c.Near {
		return 0, 0, false
	}

	halfH := math.Tan(c.FovY/2) * depth
	halfW := halfH * c.Aspect
	ndcX := r3.Dot(d, right) / halfW
	ndcY := r3.Dot(d, up) / halfH

	sx = (ndcX*0.5 + 0.5) * c.ViewportW
	sy = (0.5 - ndcY*0.5) * c.ViewportH
	return sx, sy, true
}

// IsVisible reports whether a point lies inside the view frustum.
func (c *Camera) IsVisible(p r3.Vec) bool {
	sx, sy, ok := c.WorldToScreen(p)
	if !ok {
		return false
	}
	forward, _, _ := c.Basis()
	if r3.Dot(r3.Sub(p, c.Position), forward) > c.Far {
		return false
	}
	return sx >= 0 && sx <= c.ViewportW && sy >= 0 && sy <= c.ViewportH
}
