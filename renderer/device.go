// Package renderer owns GPU resources for the silk ribbon behind the Device
// interface, with a raylib implementation for the desktop build.
package renderer

import (
	"errors"
	"image"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/silk/camera"
	"github.com/pthm-cable/silk/systems"
)

// ErrDeviceUnavailable is returned when the device cannot create resources,
// for example before a window exists.
var ErrDeviceUnavailable = errors.New("render device unavailable")

// Handles identify device resources. The zero value means "none".
type (
	Surface  uint32
	Mesh     uint32
	Material uint32
	Texture  uint32
	Lights   uint32
)

// Transform places the mesh in the world. Rotation is Euler XYZ in radians.
type Transform struct {
	Rotation [3]float64
	Position [3]float64
}

// MaterialOptions describes the silk surface.
type MaterialOptions struct {
	Emissive          colorful.Color
	EmissiveIntensity float64
	Metalness         float64
	Roughness         float64
	Clearcoat         float64
	SheenColor        colorful.Color
	EnvIntensity      float64
	NormalScale       float64
	Exposure          float64
}

// Light is a single light of the rig. Direction lights use Position as the
// direction they shine from.
type Light struct {
	Color     colorful.Color
	Intensity float64
	Position  [3]float64
}

// LightRig is the fixed five-light setup around the ribbon.
type LightRig struct {
	Ambient    Light
	Key        Light
	Fill       Light
	HemiSky    colorful.Color
	HemiGround colorful.Color
	HemiPower  float64
	Back       Light // Spot aimed at the origin
}

// Frame is everything needed to draw one frame.
type Frame struct {
	Surface     Surface
	Mesh        Mesh
	Material    Material
	Lights      Lights
	Environment Texture // Optional
	NormalMap   Texture // Optional
	Camera      *camera.Camera
	Transform   Transform
	Time        float64
}

// Device creates, updates, draws and releases GPU resources. Every method
// must be called from the render thread. Release methods ignore zero handles.
type Device interface {
	CreateSurface(width, height int, pixelRatio float64) (Surface, error)
	ResizeSurface(s Surface, width, height int)
	ReleaseSurface(s Surface)

	UploadMesh(buf *systems.MeshBuffer) (Mesh, error)
	UpdateMesh(m Mesh, buf *systems.MeshBuffer)
	ReleaseMesh(m Mesh)

	CreateMaterial(opts MaterialOptions) (Material, error)
	ReleaseMaterial(m Material)

	CreateTexture(img *image.RGBA) (Texture, error)
	ReleaseTexture(t Texture)

	CreateLights(rig LightRig) (Lights, error)
	ReleaseLights(l Lights)

	Draw(f Frame)
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultMaterial returns the silk surface parameters.
func DefaultMaterial(exposure, normalScale float64) MaterialOptions {
	return MaterialOptions{
		Emissive:          mustHex("#faf3e2"),
		EmissiveIntensity: 0.35,
		Metalness:         0.18,
		Roughness:         0.24,
		Clearcoat:         0.96,
		SheenColor:        mustHex("#fff5df"),
		EnvIntensity:      0.55,
		NormalScale:       normalScale,
		Exposure:          exposure,
	}
}

// DefaultLightRig returns the warm key, cool fill rig.
func DefaultLightRig() LightRig {
	return LightRig{
		Ambient:    Light{Color: mustHex("#fdf8ef"), Intensity: 0.85},
		Key:        Light{Color: mustHex("#fff1dc"), Intensity: 2.2, Position: [3]float64{12, 14, 8}},
		Fill:       Light{Color: mustHex("#dfe9ff"), Intensity: 1.2, Position: [3]float64{-6, -8, 4}},
		HemiSky:    mustHex("#fffbf5"),
		HemiGround: mustHex("#e7ecff"),
		HemiPower:  0.8,
		Back:       Light{Color: mustHex("#f3e6ff"), Intensity: 2.5, Position: [3]float64{0, 10, -6}},
	}
}
