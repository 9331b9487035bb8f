package renderer

import (
	"image"

	"github.com/pthm-cable/silk/systems"
)

// NullDevice is a Device that allocates nothing. Headless runs use it to
// drive the full frame pipeline without a GPU.
type NullDevice struct {
	next  uint32
	live  map[uint32]struct{}
	Draws int64
}

var _ Device = (*NullDevice)(nil)

// NewNullDevice creates an empty null device.
func NewNullDevice() *NullDevice {
	return &NullDevice{live: make(map[uint32]struct{})}
}

func (d *NullDevice) alloc() uint32 {
	d.next++
	d.live[d.next] = struct{}{}
	return d.next
}

func (d *NullDevice) free(id uint32) {
	delete(d.live, id)
}

// Live returns the number of handles not yet released.
func (d *NullDevice) Live() int {
	return len(d.live)
}

func (d *NullDevice) CreateSurface(int, int, float64) (Surface, error) {
	return Surface(d.alloc()), nil
}

func (d *NullDevice) ResizeSurface(Surface, int, int) {}
func (d *NullDevice) ReleaseSurface(s Surface)        { d.free(uint32(s)) }

func (d *NullDevice) UploadMesh(buf *systems.MeshBuffer) (Mesh, error) {
	if err := buf.Validate(); err != nil {
		return 0, err
	}
	return Mesh(d.alloc()), nil
}

func (d *NullDevice) UpdateMesh(Mesh, *systems.MeshBuffer) {}
func (d *NullDevice) ReleaseMesh(m Mesh)                  { d.free(uint32(m)) }

func (d *NullDevice) CreateMaterial(MaterialOptions) (Material, error) {
	return Material(d.alloc()), nil
}

func (d *NullDevice) ReleaseMaterial(m Material) { d.free(uint32(m)) }

func (d *NullDevice) CreateTexture(*image.RGBA) (Texture, error) {
	return Texture(d.alloc()), nil
}

func (d *NullDevice) ReleaseTexture(t Texture) { d.free(uint32(t)) }

func (d *NullDevice) CreateLights(LightRig) (Lights, error) {
	return Lights(d.alloc()), nil
}

func (d *NullDevice) ReleaseLights(l Lights) { d.free(uint32(l)) }

func (d *NullDevice) Draw(Frame) { d.Draws++ }
