package systems

import (
	"bytes"
	"math"
	"testing"

	"github.com/ojrac/opensimplex-go"
)

func TestGenerateNormalMapDeterministic(t *testing.T) {
	a := GenerateNormalMap(64, 7, 0.35)
	b := GenerateNormalMap(64, 7, 0.35)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("same arguments produced different maps")
	}

	c := GenerateNormalMap(64, 8, 0.35)
	if bytes.Equal(a.Pix, c.Pix) {
		t.Error("different seeds produced identical maps")
	}
}

func TestGenerateNormalMapFacesOut(t *testing.T) {
	img := GenerateNormalMap(32, 1, 0.35)
	if got := img.Bounds().Dx(); got != 32 {
		t.Fatalf("width = %d, want 32", got)
	}
	for i := 0; i < len(img.Pix); i += 4 {
		// Blue encodes +Z; tangent-space normals never point inward
		if img.Pix[i+2] < 128 {
			t.Fatalf("pixel %d: blue %d below 128", i/4, img.Pix[i+2])
		}
		if img.Pix[i+3] != 255 {
			t.Fatalf("pixel %d: alpha %d", i/4, img.Pix[i+3])
		}
	}
}

func TestGenerateNormalMapFlatAtZeroStrength(t *testing.T) {
	img := GenerateNormalMap(16, 3, 0)
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 128 || img.Pix[i+1] != 128 || img.Pix[i+2] != 255 {
			t.Fatalf("pixel %d = %v, want flat (128, 128, 255)", i/4, img.Pix[i:i+4])
		}
	}
}

func TestWeaveHeightTiles(t *testing.T) {
	noise := opensimplex.NewNormalized(7)
	for _, p := range []float64{0, 0.13, 0.5, 0.87} {
		if a, b := weaveHeight(noise, 0, p), weaveHeight(noise, 1, p); math.Abs(a-b) > 1e-9 {
			t.Errorf("u seam at v=%v: %v vs %v", p, a, b)
		}
		if a, b := weaveHeight(noise, p, 0), weaveHeight(noise, p, 1); math.Abs(a-b) > 1e-9 {
			t.Errorf("v seam at u=%v: %v vs %v", p, a, b)
		}
	}
}

func TestGenerateNormalMapEdgesMatchInterior(t *testing.T) {
	const size = 64
	img := GenerateNormalMap(size, 7, 1)
	px := func(x, y int) []uint8 {
		i := img.PixOffset(x, y)
		return img.Pix[i : i+3]
	}
	diff := func(a, b []uint8) int {
		d := 0
		for i := range a {
			d = max(d, int(math.Abs(float64(a[i])-float64(b[i]))))
		}
		return d
	}

	// The step across the seam should look like any other neighbour step.
	var interior, seam int
	for y := 0; y < size; y++ {
		for x := 0; x < size-1; x++ {
			interior = max(interior, diff(px(x, y), px(x+1, y)))
		}
		seam = max(seam, diff(px(size-1, y), px(0, y)))
	}
	if seam > interior+8 {
		t.Errorf("seam step %d much larger than interior step %d", seam, interior)
	}
}
