package terrain

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"europa/internal/noise"
)

func TestArithmetic(t *testing.T) {
	slope := FieldFunc(func(x, z float32) float32 { return x - 2*z })

	sum, err := NewAdd2(slope, Constant(3))
	if err != nil {
		t.Fatal(err)
	}
	scaled, err := NewScale(sum, 2)
	if err != nil {
		t.Fatal(err)
	}
	biased, err := NewBias(scaled, -1)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		x, z float32
		want float32
	}{
		{0, 0, 5},
		{1, 1, 3},
		{4, -2, 21},
	}
	for _, tt := range tests {
		if got := biased.HeightAt(tt.x, tt.z); got != tt.want {
			t.Errorf("HeightAt(%v, %v) = %v, want %v", tt.x, tt.z, got, tt.want)
		}
	}
}

func TestCombinatorsRejectNil(t *testing.T) {
	gen := noise.NewPerlin(1)
	warp := WarpConfig{Amplitude: 1, Frequency: 1, Octaves: 1, Lacunarity: 2, Gain: 0.5}

	checks := map[string]error{}
	_, checks["add2"] = NewAdd2(Constant(0), nil)
	_, checks["scale"] = NewScale(nil, 1)
	_, checks["bias"] = NewBias(nil, 1)
	_, checks["warp source"] = NewDomainWarp(nil, gen, warp)
	_, checks["warp generator"] = NewDomainWarp(Constant(0), nil, warp)
	_, checks["oriented"] = NewOriented(nil, mgl32.Vec2{1, 0}, 1, 1)

	// typed nils stored in the interfaces
	var nilFBM *FractalBrownianField
	var nilFunc FieldFunc
	_, checks["add2 typed nil"] = NewAdd2(nilFBM, Constant(0))
	_, checks["scale nil func"] = NewScale(nilFunc, 1)
	_, checks["bias typed nil"] = NewBias((*Add2)(nil), 1)
	_, checks["oriented typed nil"] = NewOriented((*RidgedFractalField)(nil), mgl32.Vec2{1, 0}, 1, 1)
	_, checks["warp typed nil generator"] = NewDomainWarp(Constant(0), (*noise.Perlin)(nil), warp)
	_, checks["fbm typed nil generator"] = NewFractalBrownianField((*noise.Perlin)(nil),
		FBMConfig{Frequency: 1, Octaves: 1, Lacunarity: 2, Gain: 0.5, Amplitude: 1})

	for name, err := range checks {
		if !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("%s: error = %v, want ErrInvalidParameter", name, err)
		}
	}
}

func TestWarpZeroAmplitudeIsIdentity(t *testing.T) {
	source, err := NewFractalBrownianField(noise.NewPerlin(11), FBMConfig{
		Frequency: 0.01, Octaves: 4, Lacunarity: 2, Gain: 0.5, Amplitude: 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	warp, err := NewDomainWarp(source, noise.NewPerlin(12), WarpConfig{
		Amplitude: 0, Frequency: 0.004, Octaves: 3, Lacunarity: 2.1, Gain: 0.55,
	})
	if err != nil {
		t.Fatal(err)
	}

	r := rand.New(rand.NewSource(5))
	for i := 0; i < 1000; i++ {
		x := float32((r.Float64() - 0.5) * 3000)
		z := float32((r.Float64() - 0.5) * 3000)
		if got, want := warp.HeightAt(x, z), source.HeightAt(x, z); got != want {
			t.Fatalf("HeightAt(%v, %v) = %v, source gives %v", x, z, got, want)
		}
	}
}

func TestWarpSamplesSwappedChannels(t *testing.T) {
	gen := &recordGen{value: 0.5}
	cfg := WarpConfig{Amplitude: 10, Frequency: 0.5, Octaves: 1, Lacunarity: 2, Gain: 0.5}
	marker := FieldFunc(func(x, z float32) float32 { return x*1000 + z })

	warp, err := NewDomainWarp(marker, gen, cfg)
	if err != nil {
		t.Fatal(err)
	}

	x, z := float32(2), float32(6)
	got := warp.HeightAt(x, z)

	if len(gen.calls) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(gen.calls))
	}
	fx, fz := float64(x*cfg.Frequency), float64(z*cfg.Frequency)
	if gen.calls[0] != [2]float64{fx, fz} {
		t.Errorf("x channel sampled %v, want (%v, %v)", gen.calls[0], fx, fz)
	}
	if gen.calls[1] != [2]float64{fz, fx} {
		t.Errorf("z channel sampled %v, want (%v, %v)", gen.calls[1], fz, fx)
	}

	// Both channels displace by 0.5 * amplitude
	if want := marker.HeightAt(x+5, z+5); got != want {
		t.Errorf("HeightAt = %v, want %v", got, want)
	}
}

func TestWarpRejectsInvalid(t *testing.T) {
	tests := []WarpConfig{
		{Amplitude: 1, Frequency: 1, Octaves: 0, Lacunarity: 2, Gain: 0.5},
		{Amplitude: 1, Frequency: 0, Octaves: 2, Lacunarity: 2, Gain: 0.5},
		{Amplitude: 1, Frequency: 1, Octaves: 2, Lacunarity: 2, Gain: -1},
	}
	for _, cfg := range tests {
		if _, err := NewDomainWarp(Constant(0), constGen(0), cfg); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("NewDomainWarp(%+v) error = %v", cfg, err)
		}
	}
}

func TestOrientedAlongX(t *testing.T) {
	ridged, err := NewRidgedFractalField(noise.NewPerlin(1337), RidgedConfig{
		FBMConfig:   FBMConfig{Frequency: 1.0 / 240.0, Octaves: 4, Lacunarity: 2.2, Gain: 0.75, Amplitude: 1},
		ZAnisotropy: 2,
	})
	if err != nil {
		t.Fatal(err)
	}
	oriented, err := NewOriented(ridged, mgl32.Vec2{1, 0}, 1, 1)
	if err != nil {
		t.Fatal(err)
	}

	r := rand.New(rand.NewSource(9))
	for i := 0; i < 200; i++ {
		x := float32((r.Float64() - 0.5) * 3000)
		z := float32((r.Float64() - 0.5) * 3000)

		u, v := oriented.Project(x, z)
		if u != x || v != -z {
			t.Fatalf("Project(%v, %v) = (%v, %v), want (%v, %v)", x, z, u, v, x, -z)
		}
		if got, want := oriented.HeightAt(x, z), ridged.HeightAt(x, -z); got != want {
			t.Fatalf("HeightAt(%v, %v) = %v, want %v", x, z, got, want)
		}
	}
}

func TestOrientedBasis(t *testing.T) {
	marker := FieldFunc(func(u, v float32) float32 { return u })

	tests := []struct {
		name       string
		dir        mgl32.Vec2
		main, orth float32
		x, z       float32
		wantU      float32
		wantV      float32
	}{
		{"along z", mgl32.Vec2{0, 1}, 1, 1, 3, 4, 4, -3},
		{"scaled", mgl32.Vec2{1, 0}, 2, 0.5, 3, 4, 6, -2},
		{"unnormalised", mgl32.Vec2{0, 5}, 1, 1, 3, 4, 4, -3},
		{"degenerate", mgl32.Vec2{0, 0}, 1, 1, 3, 4, 3, -4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := NewOriented(marker, tt.dir, tt.main, tt.orth)
			if err != nil {
				t.Fatal(err)
			}
			u, v := o.Project(tt.x, tt.z)
			if u != tt.wantU || v != tt.wantV {
				t.Errorf("Project = (%v, %v), want (%v, %v)", u, v, tt.wantU, tt.wantV)
			}
		})
	}
}

func TestCompositionNests(t *testing.T) {
	// (1 + 2) * 3 + 4 wrapped twice in an identity warp
	inner, _ := NewAdd2(Constant(1), Constant(2))
	scaled, _ := NewScale(inner, 3)
	biased, _ := NewBias(scaled, 4)
	cfg := WarpConfig{Amplitude: 0, Frequency: 1, Octaves: 1, Lacunarity: 2, Gain: 0.5}
	w1, _ := NewDomainWarp(biased, constGen(0.3), cfg)
	w2, err := NewDomainWarp(w1, constGen(0.3), cfg)
	if err != nil {
		t.Fatal(err)
	}

	if h := w2.HeightAt(123, -45); h != 13 {
		t.Errorf("HeightAt = %v, want 13", h)
	}
}
