package gpu

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/silk/renderer"
	"github.com/pthm-cable/silk/systems"
)

// DrawStaticPoster draws the still presentation shown instead of the ribbon
// when motion is reduced or the device falls back.
func DrawStaticPoster(x, y, width, height int32, p systems.Palette) {
	top, bottom, glow := renderer.PosterColors(p)
	rl.DrawRectangleGradientV(x, y, width, height, top, bottom)

	r := float32(min(width, height)) * 0.45
	rl.DrawCircleGradient(x+width*2/3, y+height/2, r, glow, color.RGBA{R: glow.R, G: glow.G, B: glow.B, A: 0})
}
