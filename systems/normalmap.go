package systems

import (
	"image"
	"image/color"
	"math"

	"github.com/ojrac/opensimplex-go"
)

// Fibre frequencies of the silk weave. The warp runs along u, so detail is
// stretched in that direction.
const (
	weaveWarpFreq  = 3.0
	weaveWeftFreq  = 48.0
	weaveGrainFreq = 96.0
	weaveOctaves   = 3
)

// GenerateNormalMap synthesizes a tangent-space normal map of fine silk fibre
// detail. The result depends only on its arguments. strength scales the
// height gradient; zero yields a flat map.
func GenerateNormalMap(size int, seed int64, strength float64) *image.RGBA {
	if size < 1 {
		size = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	noise := opensimplex.NewNormalized(seed)

	heights := make([]float64, size*size)
	for y := 0; y < size; y++ {
		v := float64(y) / float64(size)
		for x := 0; x < size; x++ {
			u := float64(x) / float64(size)
			heights[y*size+x] = weaveHeight(noise, u, v)
		}
	}

	at := func(x, y int) float64 {
		// Heights are periodic in u and v, so differences wrap across edges
		x = (x%size + size) % size
		y = (y%size + size) % size
		return heights[y*size+x]
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := (at(x+1, y) - at(x-1, y)) * 0.5 * strength * float64(size) / 16
			dy := (at(x, y+1) - at(x, y-1)) * 0.5 * strength * float64(size) / 16

			nx, ny, nz := -dx, -dy, 1.0
			inv := 1 / math.Sqrt(nx*nx+ny*ny+nz*nz)
			nx, ny, nz = nx*inv, ny*inv, nz*inv

			img.SetRGBA(x, y, color.RGBA{
				R: encodeNormal(nx),
				G: encodeNormal(ny),
				B: encodeNormal(nz),
				A: 255,
			})
		}
	}

	return img
}

// weaveHeight layers a slow warp undulation with fine weft fibres and grain.
// It has period 1 in both u and v so the map tiles without seams.
func weaveHeight(noise opensimplex.Noise, u, v float64) float64 {
	h := tiledNoise(noise, u, v, weaveWarpFreq, weaveWarpFreq, 0) * 0.3

	amp := 0.5
	freq := weaveWeftFreq
	for o := 0; o < weaveOctaves; o++ {
		// Anisotropic: fibres are long along u
		h += amp * tiledNoise(noise, u, v, freq*0.08, freq, float64(o+1)*17.3)
		amp *= 0.5
		freq *= 2
	}

	h += tiledNoise(noise, u, v, weaveGrainFreq, weaveGrainFreq, 101.7) * 0.08
	return h
}

// tiledNoise samples 4D noise on a torus: u and v each trace a circle whose
// circumference equals the requested frequency. offset shifts the torus to
// decorrelate layers.
func tiledNoise(noise opensimplex.Noise, u, v, freqU, freqV, offset float64) float64 {
	au, av := 2*math.Pi*u, 2*math.Pi*v
	ru, rv := freqU/(2*math.Pi), freqV/(2*math.Pi)
	return noise.Eval4(
		ru*math.Cos(au)+offset,
		ru*math.Sin(au)+offset,
		rv*math.Cos(av)+offset,
		rv*math.Sin(av)+offset,
	)
}

// encodeNormal maps a component in [-1, 1] to [0, 255].
func encodeNormal(c float64) uint8 {
	return uint8(math.Round(clamp01(c*0.5+0.5) * 255))
}
