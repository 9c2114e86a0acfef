package terrain

import (
	"errors"
	"math/rand"
	"testing"

	"europa/internal/noise"
)

func TestDefaultRecipeStructure(t *testing.T) {
	params, field, err := EuropaDefault()
	if err != nil {
		t.Fatalf("EuropaDefault: %v", err)
	}

	bias, ok := field.(*Bias)
	if !ok {
		t.Fatalf("outermost field is %T, want *Bias", field)
	}
	if bias.Offset != -0.1 {
		t.Errorf("bias = %v, want -0.1", bias.Offset)
	}

	scale, ok := bias.Source.(*Scale)
	if !ok || scale.Factor != 1 {
		t.Fatalf("bias source = %#v, want identity *Scale", bias.Source)
	}

	warp, ok := scale.Source.(*DomainWarp)
	if !ok {
		t.Fatalf("scale source is %T, want *DomainWarp", scale.Source)
	}
	if warp.cfg.Amplitude != 40 || warp.cfg.Frequency != params.Freq*0.6 || warp.cfg.Octaves != 3 {
		t.Errorf("warp config = %+v", warp.cfg)
	}
	if g, ok := warp.gen.(*noise.Perlin); !ok || g.Seed() != 1337^noise.WarpSalt {
		t.Errorf("warp generator = %#v", warp.gen)
	}

	sum, ok := warp.source.(*Add2)
	if !ok {
		t.Fatalf("warp source is %T, want *Add2", warp.source)
	}

	base, ok := sum.A.(*FractalBrownianField)
	if !ok {
		t.Fatalf("first summand is %T, want *FractalBrownianField", sum.A)
	}
	if base.cfg.Frequency != params.Freq || base.cfg.Octaves != 5 {
		t.Errorf("base config = %+v", base.cfg)
	}
	if g := base.gen.(*noise.Perlin); g.Seed() != 1337 {
		t.Errorf("base seed = %d, want 1337", g.Seed())
	}

	oriented, ok := sum.B.(*Oriented)
	if !ok {
		t.Fatalf("second summand is %T, want *Oriented", sum.B)
	}
	if oriented.dir != params.LineDir || oriented.orthoScale != 0.35 {
		t.Errorf("oriented = dir %v ortho %v", oriented.dir, oriented.orthoScale)
	}

	ridged, ok := oriented.source.(*RidgedFractalField)
	if !ok {
		t.Fatalf("oriented source is %T, want *RidgedFractalField", oriented.source)
	}
	if ridged.cfg.Frequency != params.Freq*2.5 || ridged.cfg.ZAnisotropy != 2 {
		t.Errorf("ridged config = %+v", ridged.cfg)
	}
	if g := ridged.gen.(*noise.Perlin); g.Seed() != 1337^noise.RidgeSalt {
		t.Errorf("ridged seed = %d", g.Seed())
	}
}

func TestAssembleFinite(t *testing.T) {
	for _, basis := range []string{"perlin", "simplex"} {
		r := DefaultRecipe()
		r.Basis = basis
		field, err := Assemble(EuropaDemoParams(), r)
		if err != nil {
			t.Fatalf("%s: %v", basis, err)
		}

		rng := rand.New(rand.NewSource(4))
		for i := 0; i < 500; i++ {
			x := float32((rng.Float64() - 0.5) * 3000)
			z := float32((rng.Float64() - 0.5) * 3000)
			if h := field.HeightAt(x, z); !finite32(h) {
				t.Fatalf("%s: HeightAt(%v, %v) = %v", basis, x, z, h)
			}
		}
	}
}

func TestAssembleSeedChangesField(t *testing.T) {
	a := EuropaDemoParams()
	b := a
	b.Seed = 7

	fa, err := Assemble(a, DefaultRecipe())
	if err != nil {
		t.Fatal(err)
	}
	fb, err := Assemble(b, DefaultRecipe())
	if err != nil {
		t.Fatal(err)
	}

	differ := false
	for i := 0; i < 20 && !differ; i++ {
		x := float32(i) * 37.5
		differ = fa.HeightAt(x, -x) != fb.HeightAt(x, -x)
	}
	if !differ {
		t.Error("different seeds produced the same field")
	}
}

func TestScaleByAmplitude(t *testing.T) {
	params := EuropaDemoParams()
	plain := DefaultRecipe()
	plain.Bias = 0
	amped := plain
	amped.ScaleByAmplitude = true

	f1, err := Assemble(params, plain)
	if err != nil {
		t.Fatal(err)
	}
	f2, err := Assemble(params, amped)
	if err != nil {
		t.Fatal(err)
	}

	for _, p := range [][2]float32{{0, 0}, {120, -480}, {-900, 33}} {
		h1, h2 := f1.HeightAt(p[0], p[1]), f2.HeightAt(p[0], p[1])
		if d := h2 - h1*params.Amp; d > 1e-4 || d < -1e-4 {
			t.Errorf("at %v: scaled %v, plain %v * amp %v", p, h2, h1, params.Amp)
		}
	}
}

func TestAssembleRejectsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Recipe, p *TerrainParams)
	}{
		{"base octaves", func(r *Recipe, p *TerrainParams) { r.Base.Octaves = 0 }},
		{"ridge anisotropy", func(r *Recipe, p *TerrainParams) { r.Ridges.ZAnisotropy = 0 }},
		{"warp frequency", func(r *Recipe, p *TerrainParams) { r.Warp.FrequencyScale = 0 }},
		{"basis", func(r *Recipe, p *TerrainParams) { r.Basis = "worley" }},
		{"params", func(r *Recipe, p *TerrainParams) { p.Freq = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := DefaultRecipe()
			p := EuropaDemoParams()
			tt.mutate(&r, &p)
			if _, err := Assemble(p, r); !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("error = %v, want ErrInvalidParameter", err)
			}
		})
	}
}
