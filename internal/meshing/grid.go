package meshing

import (
	"errors"
	"fmt"

	"mapgen/internal/curve"
	"mapgen/internal/profiling"
	"mapgen/internal/terrain"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrEmptyField = errors.New("meshing: height field needs at least 2x2 samples")
	ErrInvalidLOD = errors.New("meshing: invalid level of detail")
)

// VertexStride is number of float32 per interleaved vertex (pos.xyz + uv.xy)
const VertexStride = 5

// MeshData is a triangulated height field ready for upload.
type MeshData struct {
	Vertices  []mgl32.Vec3
	UVs       []mgl32.Vec2
	Triangles []uint32 // three indices per triangle, clockwise seen from above

	VerticesPerLine   int
	VerticesPerColumn int
	LOD               int
}

// Builder turns a height field into a mesh.
type Builder interface {
	Build(h *terrain.HeightField, heightMultiplier float64, c curve.Curve, lod int) (*MeshData, error)
}

// GridBuilder triangulates a regular grid, skipping samples according to LOD.
type GridBuilder struct{}

// NewGridBuilder returns the default mesh builder.
func NewGridBuilder() *GridBuilder { return &GridBuilder{} }

// Increment returns the sample stride for a level of detail: 1 for lod 0,
// otherwise lod*2.
func Increment(lod int) int {
	if lod == 0 {
		return 1
	}
	return lod * 2
}

// Build produces one vertex per sampled cell, with height
// c(h) * heightMultiplier, and two triangles per grid quad. The mesh is
// centred on the origin in X/Z.
func (GridBuilder) Build(h *terrain.HeightField, heightMultiplier float64, c curve.Curve, lod int) (*MeshData, error) {
	defer profiling.Track("meshing.Build")()

	if h == nil || h.Width < 2 || h.Height < 2 {
		return nil, ErrEmptyField
	}
	if lod < 0 {
		return nil, fmt.Errorf("%w: %d is negative", ErrInvalidLOD, lod)
	}
	inc := Increment(lod)
	if (h.Width-1)%inc != 0 || (h.Height-1)%inc != 0 {
		return nil, fmt.Errorf("%w: stride %d does not divide %dx%d field", ErrInvalidLOD, inc, h.Width, h.Height)
	}

	perLine := (h.Width-1)/inc + 1
	perColumn := (h.Height-1)/inc + 1

	topLeftX := float32(h.Width-1) / -2
	topLeftZ := float32(h.Height-1) / 2

	m := &MeshData{
		Vertices:          make([]mgl32.Vec3, 0, perLine*perColumn),
		UVs:               make([]mgl32.Vec2, 0, perLine*perColumn),
		Triangles:         make([]uint32, 0, (perLine-1)*(perColumn-1)*6),
		VerticesPerLine:   perLine,
		VerticesPerColumn: perColumn,
		LOD:               lod,
	}

	addTriangle := func(a, b, c int) {
		m.Triangles = append(m.Triangles, uint32(a), uint32(b), uint32(c))
	}

	vi := 0
	for y := 0; y < h.Height; y += inc {
		for x := 0; x < h.Width; x += inc {
			height := float32(c.Evaluate(float64(h.At(x, y))) * heightMultiplier)
			m.Vertices = append(m.Vertices, mgl32.Vec3{topLeftX + float32(x), height, topLeftZ - float32(y)})
			m.UVs = append(m.UVs, mgl32.Vec2{float32(x) / float32(h.Width), float32(y) / float32(h.Height)})

			if x < h.Width-1 && y < h.Height-1 {
				addTriangle(vi, vi+perLine+1, vi+perLine)
				addTriangle(vi+perLine+1, vi, vi+1)
			}
			vi++
		}
	}
	return m, nil
}

// TriangleCount returns the number of triangles.
func (m *MeshData) TriangleCount() int { return len(m.Triangles) / 3 }

// Normals returns smooth per-vertex normals (area-weighted face normals).
func (m *MeshData) Normals() []mgl32.Vec3 {
	normals := make([]mgl32.Vec3, len(m.Vertices))
	for i := 0; i+2 < len(m.Triangles); i += 3 {
		a, b, c := m.Triangles[i], m.Triangles[i+1], m.Triangles[i+2]
		n := m.Vertices[b].Sub(m.Vertices[a]).Cross(m.Vertices[c].Sub(m.Vertices[a]))
		normals[a] = normals[a].Add(n)
		normals[b] = normals[b].Add(n)
		normals[c] = normals[c].Add(n)
	}
	for i, n := range normals {
		if n.Len() > 0 {
			normals[i] = n.Normalize()
		}
	}
	return normals
}

// Interleave flattens the indexed mesh into a triangle list of
// VertexStride floats per vertex.
func (m *MeshData) Interleave() []float32 {
	out := make([]float32, 0, len(m.Triangles)*VertexStride)
	for _, idx := range m.Triangles {
		v, uv := m.Vertices[idx], m.UVs[idx]
		out = append(out, v.X(), v.Y(), v.Z(), uv.X(), uv.Y())
	}
	return out
}
