// Package geometry builds CPU-side meshes ready for GPU upload.
package geometry

import (
	"fmt"

	"github.com/Faultbox/tubescene/pkg/math"
)

// Vertex is one interleaved mesh vertex.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	UV       [2]float32
}

// VertexSize is the byte size of Vertex.
const VertexSize = (3 + 3 + 2) * 4

// Mesh holds indexed triangles.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// NewPlane builds a width x height plane in the XY plane facing +Z, split
// into segX x segY quads. Rows run from the top edge (y = height/2) down;
// uv (0,1) is the top-left corner.
func NewPlane(width, height float32, segX, segY int) (*Mesh, error) {
	if segX < 1 || segY < 1 {
		return nil, fmt.Errorf("plane segments must be positive, got %dx%d", segX, segY)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("plane size must be positive, got %gx%g", width, height)
	}

	cols, rows := segX+1, segY+1
	segW := width / float32(segX)
	segH := height / float32(segY)

	m := &Mesh{
		Vertices: make([]Vertex, 0, cols*rows),
		Indices:  make([]uint32, 0, segX*segY*6),
	}
	for iy := 0; iy < rows; iy++ {
		y := float32(iy)*segH - height/2
		for ix := 0; ix < cols; ix++ {
			x := float32(ix)*segW - width/2
			m.Vertices = append(m.Vertices, Vertex{
				Position: [3]float32{x, -y, 0},
				Normal:   [3]float32{0, 0, 1},
				UV:       [2]float32{float32(ix) / float32(segX), 1 - float32(iy)/float32(segY)},
			})
		}
	}
	for iy := 0; iy < segY; iy++ {
		for ix := 0; ix < segX; ix++ {
			a := uint32(ix + cols*iy)
			b := uint32(ix + cols*(iy+1))
			c := uint32(ix + 1 + cols*(iy+1))
			d := uint32(ix + 1 + cols*iy)
			m.Indices = append(m.Indices, a, b, d, b, c, d)
		}
	}
	return m, nil
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Positions returns vertex positions as vectors.
func (m *Mesh) Positions() []math.Vec3 {
	out := make([]math.Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		out[i] = math.Vec3{X: v.Position[0], Y: v.Position[1], Z: v.Position[2]}
	}
	return out
}

// Interleaved flattens vertices to position, normal, uv per vertex.
func (m *Mesh) Interleaved() []float32 {
	out := make([]float32, 0, len(m.Vertices)*8)
	for _, v := range m.Vertices {
		out = append(out, v.Position[:]...)
		out = append(out, v.Normal[:]...)
		out = append(out, v.UV[:]...)
	}
	return out
}
