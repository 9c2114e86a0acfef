package terrain

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// maxRes keeps (Res+1)^2 vertex indices within uint32
const maxRes = 65534

// Mesh is an indexed triangle list. The caller owns it after Build returns.
type Mesh struct {
	Res  uint32
	Size float32

	Positions []mgl32.Vec3 // (x, height, z), row-major with x varying fastest
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint32 // two triangles per quad, 6*Res^2 entries
}

// VertexCount returns (Res+1)^2
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns 2*Res^2
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the vertex indices of triangle k
func (m *Mesh) Triangle(k int) [3]uint32 {
	return [3]uint32{m.Indices[3*k], m.Indices[3*k+1], m.Indices[3*k+2]}
}

// HeightRange returns the lowest and highest finite vertex height
func (m *Mesh) HeightRange() (float32, float32) {
	lo := float32(math.Inf(1))
	hi := float32(math.Inf(-1))
	for _, p := range m.Positions {
		if !finite32(p[1]) {
			continue
		}
		if p[1] < lo {
			lo = p[1]
		}
		if p[1] > hi {
			hi = p[1]
		}
	}
	if lo > hi {
		return 0, 0
	}
	return lo, hi
}

// Build samples field over the grid described by params and returns the mesh.
// Parameters are checked before anything is allocated.
func Build(params TerrainParams, field ScalarField) (*Mesh, error) {
	return BuildParallel(params, field, 1)
}

// BuildParallel is Build with sampling and normal estimation split across
// workers goroutines. The result is identical to Build.
func BuildParallel(params TerrainParams, field ScalarField, workers int) (*Mesh, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if params.Res > maxRes {
		return nil, invalid("res", "must be at most %d for 32-bit indices, got %d", maxRes, params.Res)
	}
	if isNil(field) {
		return nil, invalid("field", "is nil")
	}

	n := int(params.Res)
	grid := newHeightGrid(params)
	side := grid.side
	count := side * side

	// Every height must exist before any normal reads its neighbours
	forRows(side, workers, func(j0, j1 int) {
		grid.sample(field, j0, j1)
	})

	mesh := &Mesh{
		Res:       params.Res,
		Size:      params.Size,
		Positions: make([]mgl32.Vec3, count),
		Normals:   make([]mgl32.Vec3, count),
		UVs:       make([]mgl32.Vec2, count),
	}

	forRows(side, workers, func(j0, j1 int) {
		for j := j0; j < j1; j++ {
			z := grid.coord(j)
			for i := 0; i < side; i++ {
				k := j*side + i
				mesh.Positions[k] = mgl32.Vec3{grid.coord(i), grid.h[k], z}
				mesh.UVs[k] = mgl32.Vec2{float32(i) / float32(n), float32(j) / float32(n)}
				mesh.Normals[k] = grid.normal(i, j)
			}
		}
	})

	mesh.Indices = quadIndices(n)
	return mesh, nil
}

// quadIndices splits each quad into (i0, i2, i1) and (i1, i2, i3).
// The winding sets the front face and must not change.
func quadIndices(n int) []uint32 {
	side := uint32(n + 1)
	indices := make([]uint32, 0, 6*n*n)

	for j := uint32(0); j < uint32(n); j++ {
		for i := uint32(0); i < uint32(n); i++ {
			i0 := j*side + i
			i1 := i0 + 1
			i2 := i0 + side
			i3 := i2 + 1
			indices = append(indices, i0, i2, i1, i1, i2, i3)
		}
	}

	return indices
}
