package systems

import (
	"errors"
	"math"
	"testing"
)

func TestNewMeshBufferDimensions(t *testing.T) {
	m := NewMeshBuffer(260, 30, 32*1.45, 6*1.1)

	if got, want := m.VertexCount(), 261*31; got != want {
		t.Errorf("VertexCount() = %d, want %d", got, want)
	}
	if got, want := m.TriangleCount(), 260*30*2; got != want {
		t.Errorf("TriangleCount() = %d, want %d", got, want)
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestNewMeshBufferIndicesInRange(t *testing.T) {
	m := NewMeshBuffer(8, 3, 10, 2)
	n := m.VertexCount()
	for i, idx := range m.Indices {
		if int(idx) >= n {
			t.Fatalf("index %d = %d, out of %d vertices", i, idx, n)
		}
	}
}

func TestNewMeshBufferColumnsShareX(t *testing.T) {
	m := NewMeshBuffer(4, 2, 8, 2)
	cols := m.Columns()
	for col := 0; col < cols; col++ {
		x := m.Positions[col*3]
		for row := 1; row < m.Rows(); row++ {
			if got := m.Positions[(row*cols+col)*3]; got != x {
				t.Errorf("col %d row %d: x = %f, want %f", col, row, got, x)
			}
		}
	}
	if m.Positions[0] != -4 || m.Positions[(cols-1)*3] != 4 {
		t.Errorf("plane spans [%f, %f], want [-4, 4]", m.Positions[0], m.Positions[(cols-1)*3])
	}
}

func TestValidateMissingAttribute(t *testing.T) {
	m := NewMeshBuffer(4, 2, 8, 2)
	m.Normals = nil

	err := m.Validate()
	if !errors.Is(err, ErrMissingAttribute) {
		t.Errorf("Validate() = %v, want ErrMissingAttribute", err)
	}

	var nilBuf *MeshBuffer
	if !errors.Is(nilBuf.Validate(), ErrMissingAttribute) {
		t.Error("nil buffer should fail validation")
	}

	if !errors.Is(NewMeshBuffer(0, 2, 1, 1).Validate(), ErrMissingAttribute) {
		t.Error("empty grid should fail validation")
	}
}

func TestComputeNormalsFlatPlane(t *testing.T) {
	m := NewMeshBuffer(6, 3, 6, 3)
	for i := range m.Normals {
		m.Normals[i] = 0
	}

	ComputeNormals(m)

	for i := 0; i < m.VertexCount(); i++ {
		nx, ny, nz := m.Normals[i*3], m.Normals[i*3+1], m.Normals[i*3+2]
		if math.Abs(float64(nx)) > 1e-6 || math.Abs(float64(ny)) > 1e-6 || math.Abs(float64(nz)-1) > 1e-6 {
			t.Fatalf("vertex %d normal = (%f, %f, %f), want (0, 0, 1)", i, nx, ny, nz)
		}
	}
}

func TestComputeNormalsDegenerate(t *testing.T) {
	m := NewMeshBuffer(2, 2, 4, 4)
	// Collapse every vertex onto the origin
	for i := range m.Positions {
		m.Positions[i] = 0
	}

	ComputeNormals(m)

	for i := 0; i < m.VertexCount(); i++ {
		if m.Normals[i*3+2] != 1 {
			t.Fatalf("vertex %d: degenerate normal should default to +Z", i)
		}
	}
}
