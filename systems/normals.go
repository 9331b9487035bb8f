package systems

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// ComputeNormals recomputes smooth vertex normals from the current positions.
// Face normals are accumulated unnormalized, so larger triangles weigh more.
func ComputeNormals(buf *MeshBuffer) {
	if !buf.ready() || len(buf.Indices) < 3 {
		return
	}

	n := buf.VertexCount()
	if len(buf.scratch) != n {
		buf.scratch = make([]r3.Vec, n)
	}
	accum := buf.scratch
	for i := range accum {
		accum[i] = r3.Vec{}
	}

	for i := 0; i+2 < len(buf.Indices); i += 3 {
		ia, ib, ic := int(buf.Indices[i]), int(buf.Indices[i+1]), int(buf.Indices[i+2])
		if ia >= n || ib >= n || ic >= n {
			continue
		}
		a, b, c := vertexAt(buf, ia), vertexAt(buf, ib), vertexAt(buf, ic)

		face := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
		accum[ia] = r3.Add(accum[ia], face)
		accum[ib] = r3.Add(accum[ib], face)
		accum[ic] = r3.Add(accum[ic], face)
	}

	for i, sum := range accum {
		if r3.Norm2(sum) == 0 {
			buf.Normals[i*3+0] = 0
			buf.Normals[i*3+1] = 0
			buf.Normals[i*3+2] = 1
			continue
		}
		u := r3.Unit(sum)
		buf.Normals[i*3+0] = float32(u.X)
		buf.Normals[i*3+1] = float32(u.Y)
		buf.Normals[i*3+2] = float32(u.Z)
	}
}

func vertexAt(buf *MeshBuffer, i int) r3.Vec {
	return r3.Vec{
		X: float64(buf.Positions[i*3+0]),
		Y: float64(buf.Positions[i*3+1]),
		Z: float64(buf.Positions[i*3+2]),
	}
}
