package terrain

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// unitTolerance is how far |LineDir| may drift from 1 after normalisation
const unitTolerance = 1e-3

// TerrainParams describes one terrain build
type TerrainParams struct {
	Size    float32    // world size in meters
	Res     uint32     // quads per side; the grid has (Res+1)^2 vertices
	Amp     float32    // vertical scale in meters
	Freq    float32    // base frequency, smaller means broader features
	LineDir mgl32.Vec2 // heading of the lineae, unit length
	Seed    uint32
}

// NewTerrainParams builds params with lineDir normalised
func NewTerrainParams(size float32, res uint32, amp, freq float32, lineDir mgl32.Vec2, seed uint32) TerrainParams {
	return TerrainParams{
		Size:    size,
		Res:     res,
		Amp:     amp,
		Freq:    freq,
		LineDir: UnitDir(lineDir),
		Seed:    seed,
	}
}

// EuropaDemoParams is the reference 3 km patch
func EuropaDemoParams() TerrainParams {
	return NewTerrainParams(3000, 512, 12, 1.0/600.0, mgl32.Vec2{0.8, 0.2}, 1337)
}

// Validate checks the preconditions of a build
func (p TerrainParams) Validate() error {
	switch {
	case !finite32(p.Size) || p.Size <= 0:
		return invalid("size", "must be positive, got %v", p.Size)
	case p.Res == 0:
		return invalid("res", "must be positive")
	case !finite32(p.Freq) || p.Freq <= 0:
		return invalid("freq", "must be positive, got %v", p.Freq)
	case !finite32(p.Amp):
		return invalid("amp", "must be finite, got %v", p.Amp)
	}

	l := float64(p.LineDir.Len())
	if math.IsNaN(l) || math.Abs(l-1) > unitTolerance {
		return invalid("line_dir", "must have unit length, got %v", p.LineDir)
	}
	return nil
}

// Spacing is the distance between neighbouring vertices
func (p TerrainParams) Spacing() float32 {
	return p.Size / float32(p.Res)
}

// VerticesPerSide is Res+1
func (p TerrainParams) VerticesPerSide() int {
	return int(p.Res) + 1
}

// UnitDir normalises v. Zero or non-finite input falls back to +X.
func UnitDir(v mgl32.Vec2) mgl32.Vec2 {
	l := v.Len()
	if !finite32(l) || l == 0 {
		return mgl32.Vec2{1, 0}
	}
	u := v.Mul(1 / l)
	if !finite32(u[0]) || !finite32(u[1]) {
		return mgl32.Vec2{1, 0}
	}
	return u
}
