package terrain

import (
	"fmt"

	"europa/internal/noise"
)

// LayerConfig is an FBM layer whose frequency is relative to TerrainParams.Freq
type LayerConfig struct {
	FrequencyScale float32 `yaml:"frequency_scale"`
	Octaves        int     `yaml:"octaves"`
	Lacunarity     float32 `yaml:"lacunarity"`
	Gain           float32 `yaml:"gain"`
	Amplitude      float32 `yaml:"amplitude"`
}

func (l LayerConfig) fbm(baseFreq float32) FBMConfig {
	return FBMConfig{
		Frequency:  baseFreq * l.FrequencyScale,
		Octaves:    l.Octaves,
		Lacunarity: l.Lacunarity,
		Gain:       l.Gain,
		Amplitude:  l.Amplitude,
	}
}

// RidgeLayerConfig is a ridged layer
type RidgeLayerConfig struct {
	LayerConfig `yaml:",inline"`
	ZAnisotropy float32 `yaml:"z_anisotropy"`
}

// OrientConfig scales the ridge layer along and across TerrainParams.LineDir
type OrientConfig struct {
	MainScale  float32 `yaml:"main_scale"`
	OrthoScale float32 `yaml:"ortho_scale"`
}

// WarpLayerConfig is the domain warp applied to the summed layers
type WarpLayerConfig struct {
	Amplitude      float32 `yaml:"amplitude"`
	FrequencyScale float32 `yaml:"frequency_scale"`
	Octaves        int     `yaml:"octaves"`
	Lacunarity     float32 `yaml:"lacunarity"`
	Gain           float32 `yaml:"gain"`
}

// Recipe is the composition of the terrain field:
//
//	Bias(Scale(DomainWarp(Add2(base, Oriented(ridges)))))
//
// Each noise layer gets its own seed derived from TerrainParams.Seed.
type Recipe struct {
	Basis  string           `yaml:"basis"`
	Base   LayerConfig      `yaml:"base"`
	Ridges RidgeLayerConfig `yaml:"ridges"`
	Orient OrientConfig     `yaml:"orient"`
	Warp   WarpLayerConfig  `yaml:"warp"`
	Scale  float32          `yaml:"scale"`
	// ScaleByAmplitude multiplies Scale by TerrainParams.Amp
	ScaleByAmplitude bool    `yaml:"scale_by_amplitude"`
	Bias             float32 `yaml:"bias"`
}

// DefaultRecipe is the reference Europa composition
func DefaultRecipe() Recipe {
	return Recipe{
		Basis: string(noise.BasisPerlin),
		Base: LayerConfig{
			FrequencyScale: 1.0,
			Octaves:        5,
			Lacunarity:     2.0,
			Gain:           0.5,
			Amplitude:      1.0,
		},
		Ridges: RidgeLayerConfig{
			LayerConfig: LayerConfig{
				FrequencyScale: 2.5,
				Octaves:        4,
				Lacunarity:     2.2,
				Gain:           0.75,
				Amplitude:      1.0,
			},
			ZAnisotropy: 2.0,
		},
		Orient: OrientConfig{
			MainScale:  1.0,
			OrthoScale: 0.35,
		},
		Warp: WarpLayerConfig{
			Amplitude:      40.0,
			FrequencyScale: 0.6,
			Octaves:        3,
			Lacunarity:     2.1,
			Gain:           0.55,
		},
		Scale: 1.0,
		Bias:  -0.1,
	}
}

// Assemble builds the field described by r for params
func Assemble(params TerrainParams, r Recipe) (ScalarField, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	basis, err := noise.ParseBasis(r.Basis)
	if err != nil {
		return nil, fmt.Errorf("recipe: %w", invalid("basis", "%v", err))
	}

	gen := func(salt uint32) (noise.Generator, error) {
		return noise.New(basis, noise.Derive(params.Seed, salt))
	}

	baseGen, err := gen(0)
	if err != nil {
		return nil, err
	}
	base, err := NewFractalBrownianField(baseGen, r.Base.fbm(params.Freq))
	if err != nil {
		return nil, fmt.Errorf("recipe base: %w", err)
	}

	ridgeGen, err := gen(noise.RidgeSalt)
	if err != nil {
		return nil, err
	}
	ridged, err := NewRidgedFractalField(ridgeGen, RidgedConfig{
		FBMConfig:   r.Ridges.fbm(params.Freq),
		ZAnisotropy: r.Ridges.ZAnisotropy,
	})
	if err != nil {
		return nil, fmt.Errorf("recipe ridges: %w", err)
	}

	oriented, err := NewOriented(ridged, params.LineDir, r.Orient.MainScale, r.Orient.OrthoScale)
	if err != nil {
		return nil, fmt.Errorf("recipe orient: %w", err)
	}

	sum, err := NewAdd2(base, oriented)
	if err != nil {
		return nil, err
	}

	warpGen, err := gen(noise.WarpSalt)
	if err != nil {
		return nil, err
	}
	warped, err := NewDomainWarp(sum, warpGen, WarpConfig{
		Amplitude:  r.Warp.Amplitude,
		Frequency:  params.Freq * r.Warp.FrequencyScale,
		Octaves:    r.Warp.Octaves,
		Lacunarity: r.Warp.Lacunarity,
		Gain:       r.Warp.Gain,
	})
	if err != nil {
		return nil, fmt.Errorf("recipe warp: %w", err)
	}

	factor := r.Scale
	if r.ScaleByAmplitude {
		factor *= params.Amp
	}
	scaled, err := NewScale(warped, factor)
	if err != nil {
		return nil, fmt.Errorf("recipe: %w", err)
	}

	biased, err := NewBias(scaled, r.Bias)
	if err != nil {
		return nil, fmt.Errorf("recipe: %w", err)
	}
	return biased, nil
}

// EuropaDefault returns the demo params together with the default field
func EuropaDefault() (TerrainParams, ScalarField, error) {
	params := EuropaDemoParams()
	field, err := Assemble(params, DefaultRecipe())
	if err != nil {
		return TerrainParams{}, nil, err
	}
	return params, field, nil
}
