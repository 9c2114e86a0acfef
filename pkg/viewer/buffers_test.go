package viewer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"europa/pkg/terrain"
)

func TestInterleaveLayout(t *testing.T) {
	params := terrain.NewTerrainParams(10, 1, 1, 0.1, mgl32.Vec2{1, 0}, 1)
	mesh, err := terrain.Build(params, terrain.Constant(2))
	if err != nil {
		t.Fatal(err)
	}

	data, err := Interleave(mesh)
	if err != nil {
		t.Fatalf("Interleave: %v", err)
	}
	if len(data) != 4*floatsPerVertex {
		t.Fatalf("len = %d, want %d", len(data), 4*floatsPerVertex)
	}

	for k := 0; k < 4; k++ {
		v := data[k*floatsPerVertex : (k+1)*floatsPerVertex]
		p, n, uv := mesh.Positions[k], mesh.Normals[k], mesh.UVs[k]
		want := []float32{p[0], p[1], p[2], n[0], n[1], n[2], uv[0], uv[1]}
		for i := range want {
			if v[i] != want[i] {
				t.Errorf("vertex %d float %d = %v, want %v", k, i, v[i], want[i])
			}
		}
	}

	if vertexStride != 32 || normalOffset != 12 || uvOffset != 24 {
		t.Errorf("unexpected layout: stride %d, normal %d, uv %d", vertexStride, normalOffset, uvOffset)
	}
}

func TestInterleaveRejectsMismatch(t *testing.T) {
	params := terrain.NewTerrainParams(10, 1, 1, 0.1, mgl32.Vec2{1, 0}, 1)
	mesh, err := terrain.Build(params, terrain.Constant(0))
	if err != nil {
		t.Fatal(err)
	}
	mesh.UVs = mesh.UVs[:1]

	if _, err := Interleave(mesh); err == nil {
		t.Error("expected error for mismatched attribute lengths")
	}
}
