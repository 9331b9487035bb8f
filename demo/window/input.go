package window

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Mouse wheel notches to scroll the hero from top to bottom.
const scrollNotches = 20

// handleInput processes keyboard and mouse input.
func (a *App) handleInput() {
	r := a.demo.Renderer()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	a.overlays.HandleKeys()

	if rl.IsKeyPressed(rl.KeyS) {
		a.snapshot()
	}
	if rl.IsKeyPressed(rl.KeyM) {
		a.host.ReducedMotion = !a.host.ReducedMotion
		r.SyncMotionPreference(a.host.ReducedMotion)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.host.Scroll = clamp01(a.host.Scroll - wheel/scrollNotches)
		r.HeroScroll().SetTarget(float64(a.host.Scroll))
	}

	if a.host.PinPointer {
		r.SetPointerTarget(float64(a.host.PointerX), float64(a.host.PointerY))
		return
	}
	if !rl.IsCursorOnScreen() {
		return
	}
	x, y := pointerFromMouse(rl.GetMousePosition(), float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
	a.host.PointerX, a.host.PointerY = x, y
	r.SetPointerTarget(float64(x), float64(y))
}

// pointerFromMouse maps window pixels to [-1, 1] with +y up.
func pointerFromMouse(m rl.Vector2, w, h float32) (float32, float32) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	return m.X/w*2 - 1, -(m.Y/h*2 - 1)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
