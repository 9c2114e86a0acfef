// Package meshio writes terrain meshes to interchange formats
package meshio

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"europa/pkg/terrain"
)

// WriteOBJ writes mesh as a Wavefront OBJ with positions, UVs and normals.
// Faces keep the mesh winding.
func WriteOBJ(w io.Writer, mesh *terrain.Mesh) error {
	if mesh == nil {
		return fmt.Errorf("nil mesh")
	}
	if len(mesh.Normals) != len(mesh.Positions) || len(mesh.UVs) != len(mesh.Positions) {
		return fmt.Errorf("attribute length mismatch: %d positions, %d normals, %d uvs",
			len(mesh.Positions), len(mesh.Normals), len(mesh.UVs))
	}
	if len(mesh.Indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of 3", len(mesh.Indices))
	}

	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# europa terrain %dx%d quads, %.1f m\n", mesh.Res, mesh.Res, mesh.Size)
	for _, p := range mesh.Positions {
		fmt.Fprintf(bw, "v %g %g %g\n", p[0], p[1], p[2])
	}
	for _, uv := range mesh.UVs {
		fmt.Fprintf(bw, "vt %g %g\n", uv[0], uv[1])
	}
	for _, n := range mesh.Normals {
		fmt.Fprintf(bw, "vn %g %g %g\n", n[0], n[1], n[2])
	}

	for k := 0; k < mesh.TriangleCount(); k++ {
		tri := mesh.Triangle(k)
		// OBJ indices are 1-based
		a, b, c := tri[0]+1, tri[1]+1, tri[2]+1
		fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write obj: %v", err)
	}
	return nil
}

// SaveOBJ writes mesh to filePath
func SaveOBJ(mesh *terrain.Mesh, filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %v", filePath, err)
	}

	if err := WriteOBJ(file, mesh); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
