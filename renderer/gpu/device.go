// Package gpu implements renderer.Device with raylib.
package gpu

import (
	_ "embed"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/silk/renderer"
	"github.com/pthm-cable/silk/systems"
)

//go:embed shaders/silk.vs
var silkVS string

//go:embed shaders/silk.fs
var silkFS string

var _ renderer.Device = (*Device)(nil)

type rlSurface struct {
	target rl.RenderTexture2D
	width  int
	height int
	ratio  float64
}

type rlMesh struct {
	mesh   rl.Mesh
	buf    *systems.MeshBuffer
	colors []uint8 // RGBA per vertex
}

type rlMaterial struct {
	mat  rl.Material
	opts renderer.MaterialOptions
	locs map[string]int32
}

// Device implements renderer.Device on top of raylib. A window must be open
// before any resource is created.
type Device struct {
	next      uint32
	surfaces  map[renderer.Surface]*rlSurface
	meshes    map[renderer.Mesh]*rlMesh
	materials map[renderer.Material]*rlMaterial
	textures  map[renderer.Texture]rl.Texture2D
	lights    map[renderer.Lights]renderer.LightRig

	logger *slog.Logger
}

// New creates an empty device.
func New(logger *slog.Logger) *Device {
	if logger == nil {
		logger = slog.Default()
	}
	return &Device{
		surfaces:  make(map[renderer.Surface]*rlSurface),
		meshes:    make(map[renderer.Mesh]*rlMesh),
		materials: make(map[renderer.Material]*rlMaterial),
		textures:  make(map[renderer.Texture]rl.Texture2D),
		lights:    make(map[renderer.Lights]renderer.LightRig),
		logger:    logger,
	}
}

func (d *Device) id() uint32 {
	d.next++
	return d.next
}

// Live returns the number of resources currently held.
func (d *Device) Live() int {
	return len(d.surfaces) + len(d.meshes) + len(d.materials) + len(d.textures) + len(d.lights)
}

// CreateSurface allocates an offscreen target of width x height scaled by
// pixelRatio. The ribbon is drawn into it with a transparent clear.
func (d *Device) CreateSurface(width, height int, pixelRatio float64) (renderer.Surface, error) {
	if !rl.IsWindowReady() {
		return 0, renderer.ErrDeviceUnavailable
	}
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	s := &rlSurface{width: width, height: height, ratio: pixelRatio}
	if err := s.allocate(); err != nil {
		return 0, err
	}
	id := renderer.Surface(d.id())
	d.surfaces[id] = s
	return id, nil
}

func (s *rlSurface) allocate() error {
	w := max(1, int32(math.Round(float64(s.width)*s.ratio)))
	h := max(1, int32(math.Round(float64(s.height)*s.ratio)))
	s.target = rl.LoadRenderTexture(w, h)
	if !rl.IsRenderTextureValid(s.target) {
		return fmt.Errorf("creating %dx%d surface: %w", w, h, renderer.ErrDeviceUnavailable)
	}
	rl.SetTextureFilter(s.target.Texture, rl.FilterBilinear)
	return nil
}

// ResizeSurface reallocates the surface target at the new size.
func (d *Device) ResizeSurface(id renderer.Surface, width, height int) {
	s, ok := d.surfaces[id]
	if !ok || (s.width == width && s.height == height) {
		return
	}
	rl.UnloadRenderTexture(s.target)
	s.width, s.height = width, height
	if err := s.allocate(); err != nil {
		d.logger.Error("surface resize failed", "width", width, "height", height, "error", err)
	}
}

// ReleaseSurface frees the surface target.
func (d *Device) ReleaseSurface(id renderer.Surface) {
	s, ok := d.surfaces[id]
	if !ok {
		return
	}
	rl.UnloadRenderTexture(s.target)
	delete(d.surfaces, id)
}

// Present draws the surface into the current framebuffer at the given
// rectangle. Must be called between BeginDrawing and EndDrawing.
func (d *Device) Present(id renderer.Surface, x, y, width, height float64) {
	s, ok := d.surfaces[id]
	if !ok {
		return
	}
	tex := s.target.Texture
	// Render textures are stored upside down
	src := rl.NewRectangle(0, 0, float32(tex.Width), -float32(tex.Height))
	dst := rl.NewRectangle(float32(x), float32(y), float32(width), float32(height))
	rl.DrawTexturePro(tex, src, dst, rl.Vector2{}, 0, rl.White)
}

// ExportSurface writes the surface contents to a PNG at path.
func (d *Device) ExportSurface(id renderer.Surface, path string) error {
	s, ok := d.surfaces[id]
	if !ok {
		return fmt.Errorf("export surface %d: unknown surface", id)
	}
	img := rl.LoadImageFromTexture(s.target.Texture)
	defer rl.UnloadImage(img)
	// Render textures are stored upside down
	rl.ImageFlipVertical(img)
	if !rl.ExportImage(*img, path) {
		return fmt.Errorf("export surface %d to %s failed", id, path)
	}
	return nil
}

// UploadMesh uploads the buffer as a dynamic mesh. The device keeps a
// reference to buf; it must outlive the mesh.
func (d *Device) UploadMesh(buf *systems.MeshBuffer) (renderer.Mesh, error) {
	if err := buf.Validate(); err != nil {
		return 0, err
	}
	if !rl.IsWindowReady() {
		return 0, renderer.ErrDeviceUnavailable
	}

	m := &rlMesh{buf: buf, colors: make([]uint8, buf.VertexCount()*4)}
	m.fillColors()

	m.mesh = rl.Mesh{
		VertexCount:   int32(buf.VertexCount()),
		TriangleCount: int32(buf.TriangleCount()),
		Vertices:      &buf.Positions[0],
		Normals:       &buf.Normals[0],
		Texcoords:     &buf.Texcoords[0],
		Colors:        &m.colors[0],
		Indices:       &buf.Indices[0],
	}
	rl.UploadMesh(&m.mesh, true)
	if m.mesh.VaoID == 0 {
		return 0, fmt.Errorf("uploading mesh: %w", renderer.ErrDeviceUnavailable)
	}

	id := renderer.Mesh(d.id())
	d.meshes[id] = m
	return id, nil
}

func (m *rlMesh) fillColors() {
	c := m.buf.Colors
	for i := 0; i < len(c)/3; i++ {
		m.colors[i*4+0] = unitToByte(c[i*3+0])
		m.colors[i*4+1] = unitToByte(c[i*3+1])
		m.colors[i*4+2] = unitToByte(c[i*3+2])
		m.colors[i*4+3] = 255
	}
}

func unitToByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

func floatBytes(s []float32) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*4)
}

// UpdateMesh re-uploads positions, normals and colours.
func (d *Device) UpdateMesh(id renderer.Mesh, buf *systems.MeshBuffer) {
	m, ok := d.meshes[id]
	if !ok || buf != m.buf {
		return
	}
	m.fillColors()
	// Buffer slots: 0 position, 2 normal, 3 colour
	rl.UpdateMeshBuffer(m.mesh, 0, floatBytes(buf.Positions), 0)
	rl.UpdateMeshBuffer(m.mesh, 2, floatBytes(buf.Normals), 0)
	rl.UpdateMeshBuffer(m.mesh, 3, m.colors, 0)
}

// ReleaseMesh frees the GPU buffers.
func (d *Device) ReleaseMesh(id renderer.Mesh) {
	m, ok := d.meshes[id]
	if !ok {
		return
	}
	rl.UnloadMesh(&m.mesh)
	delete(d.meshes, id)
}

var materialUniforms = []string{
	"viewPos", "emissive", "metalness", "roughness", "clearcoat", "sheenColor",
	"envIntensity", "normalScale", "exposure",
	"ambientColor", "keyColor", "keyDir", "fillColor", "fillDir",
	"hemiSky", "hemiGround", "backColor", "backPos",
	"useEnvMap", "useNormalMap",
}

// CreateMaterial compiles the silk shader.
func (d *Device) CreateMaterial(opts renderer.MaterialOptions) (renderer.Material, error) {
	if !rl.IsWindowReady() {
		return 0, renderer.ErrDeviceUnavailable
	}
	shader := rl.LoadShaderFromMemory(silkVS, silkFS)
	if !rl.IsShaderValid(shader) {
		return 0, fmt.Errorf("compiling silk shader: %w", renderer.ErrDeviceUnavailable)
	}
	shader.UpdateLocation(rl.ShaderLocMapNormal, rl.GetShaderLocation(shader, "normalMap"))
	shader.UpdateLocation(rl.ShaderLocMapEmission, rl.GetShaderLocation(shader, "envMap"))

	m := &rlMaterial{mat: rl.LoadMaterialDefault(), opts: opts, locs: make(map[string]int32)}
	m.mat.Shader = shader
	for _, name := range materialUniforms {
		m.locs[name] = rl.GetShaderLocation(shader, name)
	}

	id := renderer.Material(d.id())
	d.materials[id] = m
	return id, nil
}

// ReleaseMaterial frees the shader. Bound textures are owned by their
// Texture handles and are not freed here.
func (d *Device) ReleaseMaterial(id renderer.Material) {
	m, ok := d.materials[id]
	if !ok {
		return
	}
	def := rl.Texture2D{ID: rl.GetTextureIdDefault()}
	m.mat.GetMap(rl.MapNormal).Texture = def
	m.mat.GetMap(rl.MapEmission).Texture = def
	rl.UnloadMaterial(m.mat)
	delete(d.materials, id)
}

// CreateTexture uploads an RGBA image with repeat wrapping.
func (d *Device) CreateTexture(img *image.RGBA) (renderer.Texture, error) {
	if img == nil {
		return 0, fmt.Errorf("creating texture: nil image")
	}
	if !rl.IsWindowReady() {
		return 0, renderer.ErrDeviceUnavailable
	}
	b := img.Bounds()
	blank := rl.GenImageColor(b.Dx(), b.Dy(), rl.White)
	tex := rl.LoadTextureFromImage(blank)
	rl.UnloadImage(blank)
	if !rl.IsTextureValid(tex) {
		return 0, fmt.Errorf("creating %dx%d texture: %w", b.Dx(), b.Dy(), renderer.ErrDeviceUnavailable)
	}

	pixels := make([]color.RGBA, b.Dx()*b.Dy())
	for i := range pixels {
		p := img.Pix[i*4 : i*4+4 : i*4+4]
		pixels[i] = color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
	}
	rl.UpdateTexture(tex, pixels)
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	rl.SetTextureWrap(tex, rl.WrapRepeat)

	id := renderer.Texture(d.id())
	d.textures[id] = tex
	return id, nil
}

// ReleaseTexture frees the texture.
func (d *Device) ReleaseTexture(id renderer.Texture) {
	tex, ok := d.textures[id]
	if !ok {
		return
	}
	rl.UnloadTexture(tex)
	delete(d.textures, id)
}

// CreateLights registers the light rig. Lights live in shader uniforms, so
// there is nothing to allocate on the GPU.
func (d *Device) CreateLights(rig renderer.LightRig) (renderer.Lights, error) {
	id := renderer.Lights(d.id())
	d.lights[id] = rig
	return id, nil
}

// ReleaseLights forgets the light rig.
func (d *Device) ReleaseLights(id renderer.Lights) {
	delete(d.lights, id)
}

// Draw renders the mesh into its surface with one draw call.
func (d *Device) Draw(f renderer.Frame) {
	s, ok := d.surfaces[f.Surface]
	if !ok || f.Camera == nil {
		return
	}
	m, ok := d.meshes[f.Mesh]
	if !ok {
		return
	}
	mat, ok := d.materials[f.Material]
	if !ok {
		return
	}
	rig := d.lights[f.Lights]

	cam := rl.Camera3D{
		Position:   vec3(f.Camera.Position.X, f.Camera.Position.Y, f.Camera.Position.Z),
		Target:     vec3(f.Camera.Target.X, f.Camera.Target.Y, f.Camera.Target.Z),
		Up:         vec3(f.Camera.Up.X, f.Camera.Up.Y, f.Camera.Up.Z),
		Fovy:       float32(f.Camera.FovYDegrees()),
		Projection: rl.CameraPerspective,
	}

	mat.apply(rig, f.Camera.Position.X, f.Camera.Position.Y, f.Camera.Position.Z)
	useEnv := d.bindTexture(mat, rl.MapEmission, f.Environment)
	useNormal := d.bindTexture(mat, rl.MapNormal, f.NormalMap)
	mat.setFloat("useEnvMap", useEnv)
	mat.setFloat("useNormalMap", useNormal)

	rot := rl.MatrixRotateXYZ(vec3(f.Transform.Rotation[0], f.Transform.Rotation[1], f.Transform.Rotation[2]))
	pos := rl.MatrixTranslate(float32(f.Transform.Position[0]), float32(f.Transform.Position[1]), float32(f.Transform.Position[2]))

	rl.BeginTextureMode(s.target)
	rl.ClearBackground(rl.Blank)
	rl.BeginMode3D(cam)
	rl.DisableBackfaceCulling()
	rl.DrawMesh(m.mesh, mat.mat, rl.MatrixMultiply(rot, pos))
	rl.EnableBackfaceCulling()
	rl.EndMode3D()
	rl.EndTextureMode()
}

// bindTexture puts the texture in a material map slot and returns 1, or
// resets the slot and returns 0 when the handle is unknown.
func (d *Device) bindTexture(mat *rlMaterial, slot int32, id renderer.Texture) float64 {
	tex, ok := d.textures[id]
	if !ok {
		mat.mat.GetMap(slot).Texture = rl.Texture2D{ID: rl.GetTextureIdDefault()}
		return 0
	}
	mat.mat.GetMap(slot).Texture = tex
	return 1
}

func (m *rlMaterial) apply(rig renderer.LightRig, camX, camY, camZ float64) {
	o := m.opts
	m.setVec3("viewPos", camX, camY, camZ)
	m.setColor("emissive", o.Emissive, o.EmissiveIntensity)
	m.setFloat("metalness", o.Metalness)
	m.setFloat("roughness", o.Roughness)
	m.setFloat("clearcoat", o.Clearcoat)
	m.setColor("sheenColor", o.SheenColor, 1)
	m.setFloat("envIntensity", o.EnvIntensity)
	m.setFloat("normalScale", o.NormalScale)
	m.setFloat("exposure", o.Exposure)

	m.setColor("ambientColor", rig.Ambient.Color, rig.Ambient.Intensity)
	m.setColor("keyColor", rig.Key.Color, rig.Key.Intensity/math.Pi)
	m.setVec3("keyDir", rig.Key.Position[0], rig.Key.Position[1], rig.Key.Position[2])
	m.setColor("fillColor", rig.Fill.Color, rig.Fill.Intensity/math.Pi)
	m.setVec3("fillDir", rig.Fill.Position[0], rig.Fill.Position[1], rig.Fill.Position[2])
	m.setColor("hemiSky", rig.HemiSky, rig.HemiPower*0.5)
	m.setColor("hemiGround", rig.HemiGround, rig.HemiPower*0.5)
	m.setColor("backColor", rig.Back.Color, rig.Back.Intensity/math.Pi)
	m.setVec3("backPos", rig.Back.Position[0], rig.Back.Position[1], rig.Back.Position[2])
}

func (m *rlMaterial) setFloat(name string, v float64) {
	rl.SetShaderValue(m.mat.Shader, m.locs[name], []float32{float32(v)}, rl.ShaderUniformFloat)
}


func (m *rlMaterial) setVec3(name string, x, y, z float64) {
	rl.SetShaderValue(m.mat.Shader, m.locs[name], []float32{float32(x), float32(y), float32(z)}, rl.ShaderUniformVec3)
}

func (m *rlMaterial) setColor(name string, c colorful.Color, scale float64) {
	m.setVec3(name, c.R*scale, c.G*scale, c.B*scale)
}

func vec3(x, y, z float64) rl.Vector3 {
	return rl.NewVector3(float32(x), float32(y), float32(z))
}
