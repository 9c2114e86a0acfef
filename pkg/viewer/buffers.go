package viewer

import (
	"fmt"

	"europa/pkg/terrain"
)

// Vertex layout: position (3), normal (3), uv (2)
const (
	floatsPerVertex = 8
	vertexStride    = floatsPerVertex * 4
	normalOffset    = 3 * 4
	uvOffset        = 6 * 4
)

// Interleave packs the mesh attributes into one vertex buffer
func Interleave(mesh *terrain.Mesh) ([]float32, error) {
	n := len(mesh.Positions)
	if len(mesh.Normals) != n || len(mesh.UVs) != n {
		return nil, fmt.Errorf("attribute length mismatch: %d positions, %d normals, %d uvs",
			n, len(mesh.Normals), len(mesh.UVs))
	}

	data := make([]float32, 0, n*floatsPerVertex)
	for k := 0; k < n; k++ {
		p, nr, uv := mesh.Positions[k], mesh.Normals[k], mesh.UVs[k]
		data = append(data, p[0], p[1], p[2], nr[0], nr[1], nr[2], uv[0], uv[1])
	}
	return data, nil
}
