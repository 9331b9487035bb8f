package systems

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrMissingAttribute is returned when a mesh buffer lacks a required
// per-vertex attribute.
var ErrMissingAttribute = errors.New("mesh buffer missing vertex attribute")

// MeshBuffer is the ribbon's vertex grid: (Segments+1) columns by
// (HeightSegments+1) rows, stored row-major (idx = row*Columns + col).
// X is fixed per column; Y, Z, colours and normals are rewritten every frame.
type MeshBuffer struct {
	Segments       int
	HeightSegments int

	Positions []float32 // XYZ per vertex
	Colors    []float32 // RGB per vertex, each in [0, 1]
	Normals   []float32 // XYZ per vertex
	Texcoords []float32 // UV per vertex
	Indices   []uint16  // Two triangles per grid cell

	scratch []r3.Vec // Normal accumulation, reused across frames
}

// NewMeshBuffer allocates a flat plane of planeLength x planeWidth centered
// on the origin in the XY plane, facing +Z.
func NewMeshBuffer(segments, heightSegments int, planeLength, planeWidth float64) *MeshBuffer {
	if segments < 1 || heightSegments < 1 {
		return &MeshBuffer{}
	}

	columns := segments + 1
	rows := heightSegments + 1
	n := columns * rows

	m := &MeshBuffer{
		Segments:       segments,
		HeightSegments: heightSegments,
		Positions:      make([]float32, n*3),
		Colors:         make([]float32, n*3),
		Normals:        make([]float32, n*3),
		Texcoords:      make([]float32, n*2),
		Indices:        make([]uint16, 0, segments*heightSegments*6),
	}

	for row := 0; row < rows; row++ {
		v := float64(row) / float64(heightSegments)
		y := (v - 0.5) * planeWidth
		for col := 0; col < columns; col++ {
			u := float64(col) / float64(segments)
			idx := row*columns + col

			m.Positions[idx*3+0] = float32((u - 0.5) * planeLength)
			m.Positions[idx*3+1] = float32(y)
			m.Positions[idx*3+2] = 0

			m.Normals[idx*3+2] = 1

			m.Colors[idx*3+0] = 1
			m.Colors[idx*3+1] = 1
			m.Colors[idx*3+2] = 1

			m.Texcoords[idx*2+0] = float32(u)
			m.Texcoords[idx*2+1] = float32(v)
		}
	}

	for row := 0; row < heightSegments; row++ {
		for col := 0; col < segments; col++ {
			a := uint16(row*columns + col)
			b := uint16((row+1)*columns + col)
			c := uint16((row+1)*columns + col + 1)
			d := uint16(row*columns + col + 1)
			// Counter-clockwise seen from +Z
			m.Indices = append(m.Indices, a, d, b, b, d, c)
		}
	}

	return m
}

// Columns returns the number of vertices along the ribbon length.
func (m *MeshBuffer) Columns() int { return m.Segments + 1 }

// Rows returns the number of vertices across the ribbon width.
func (m *MeshBuffer) Rows() int { return m.HeightSegments + 1 }

// VertexCount returns the number of grid vertices.
func (m *MeshBuffer) VertexCount() int {
	if m.Segments < 1 || m.HeightSegments < 1 {
		return 0
	}
	return m.Columns() * m.Rows()
}

// TriangleCount returns the number of indexed triangles.
func (m *MeshBuffer) TriangleCount() int {
	return len(m.Indices) / 3
}

// Validate checks that every per-vertex attribute is present and sized for
// the grid.
func (m *MeshBuffer) Validate() error {
	if m == nil {
		return fmt.Errorf("%w: nil buffer", ErrMissingAttribute)
	}
	n := m.VertexCount()
	if n == 0 {
		return fmt.Errorf("%w: empty grid", ErrMissingAttribute)
	}
	checks := []struct {
		name string
		got  int
		want int
	}{
		{"position", len(m.Positions), n * 3},
		{"color", len(m.Colors), n * 3},
		{"normal", len(m.Normals), n * 3},
		{"texcoord", len(m.Texcoords), n * 2},
		{"index", len(m.Indices), m.Segments * m.HeightSegments * 6},
	}
	for _, c := range checks {
		if c.got != c.want {
			return fmt.Errorf("%w: %s has %d values, want %d", ErrMissingAttribute, c.name, c.got, c.want)
		}
	}
	return nil
}

// ready reports whether the buffer can be deformed without indexing out of range.
func (m *MeshBuffer) ready() bool {
	if m == nil {
		return false
	}
	n := m.VertexCount()
	return n > 0 && len(m.Positions) == n*3 && len(m.Colors) == n*3 && len(m.Normals) == n*3
}
