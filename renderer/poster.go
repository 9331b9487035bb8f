package renderer

import (
	"image/color"

	"github.com/pthm-cable/silk/systems"
)

// PosterColors returns the static poster's top, bottom and glow colours.
func PosterColors(p systems.Palette) (top, bottom, glow color.RGBA) {
	top = toRGBA(p.Highlight.BlendLab(p.Base, 0.4), 255)
	bottom = toRGBA(p.Glow.BlendLab(p.Accent, 0.6), 255)
	glow = toRGBA(p.Accent, 140)
	return top, bottom, glow
}
