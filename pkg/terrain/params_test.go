package terrain

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestEuropaDemoParams(t *testing.T) {
	p := EuropaDemoParams()
	if err := p.Validate(); err != nil {
		t.Fatalf("demo params invalid: %v", err)
	}
	if p.Size != 3000 || p.Res != 512 || p.Amp != 12 || p.Seed != 1337 {
		t.Errorf("unexpected demo params %+v", p)
	}
	if p.Spacing() != 3000.0/512.0 {
		t.Errorf("spacing = %v", p.Spacing())
	}
	if p.VerticesPerSide() != 513 {
		t.Errorf("vertices per side = %d", p.VerticesPerSide())
	}
}

func TestUnitDir(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	tests := []struct {
		in   mgl32.Vec2
		want mgl32.Vec2
	}{
		{mgl32.Vec2{3, 4}, mgl32.Vec2{0.6, 0.8}},
		{mgl32.Vec2{0, -2}, mgl32.Vec2{0, -1}},
		{mgl32.Vec2{0, 0}, mgl32.Vec2{1, 0}},
		{mgl32.Vec2{nan, 1}, mgl32.Vec2{1, 0}},
		{mgl32.Vec2{inf, 0}, mgl32.Vec2{1, 0}},
	}

	for _, tt := range tests {
		if got := UnitDir(tt.in); !got.ApproxEqual(tt.want) {
			t.Errorf("UnitDir(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewTerrainParamsNormalises(t *testing.T) {
	p := NewTerrainParams(10, 4, 1, 0.1, mgl32.Vec2{0.8, 0.2}, 1)
	if l := p.LineDir.Len(); math.Abs(float64(l)-1) > 1e-6 {
		t.Errorf("line dir length = %v", l)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}
