package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Studio environment tones.
var (
	envZenith  = mustHex("#fffbf5")
	envHorizon = mustHex("#f6efe6")
	envNadir   = mustHex("#e7ecff")
	envSoftbox = mustHex("#ffffff")
)

// GenerateEnvironment renders an equirectangular studio backdrop: a warm
// zenith fading through the horizon to a cool floor, with two soft boxes
// that give the clearcoat something to reflect.
func GenerateEnvironment(size int) *image.RGBA {
	if size < 2 {
		size = 2
	}
	w, h := size*2, size
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		// Latitude from +1 (up) to -1 (down)
		lat := 1 - 2*(float64(y)+0.5)/float64(h)
		var base colorful.Color
		if lat >= 0 {
			base = envHorizon.BlendLab(envZenith, math.Sqrt(lat))
		} else {
			base = envHorizon.BlendLab(envNadir, math.Sqrt(-lat))
		}

		for x := 0; x < w; x++ {
			lon := (float64(x)+0.5)/float64(w)*2*math.Pi - math.Pi
			glow := softbox(lon, lat, 0.6, 0.45) + 0.6*softbox(lon, lat, -2.2, 0.2)
			c := base.BlendRgb(envSoftbox, math.Min(glow, 1)).Clamped()
			img.SetRGBA(x, y, toRGBA(c, 255))
		}
	}
	return img
}

// softbox is a smooth falloff around (lon0, lat0).
func softbox(lon, lat, lon0, lat0 float64) float64 {
	dl := math.Remainder(lon-lon0, 2*math.Pi)
	d2 := dl*dl*0.6 + (lat-lat0)*(lat-lat0)*4
	return math.Exp(-d2 * 6)
}

func toRGBA(c colorful.Color, a uint8) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: a}
}
