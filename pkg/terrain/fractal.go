package terrain

import (
	"europa/internal/noise"
)

// FBMConfig holds the octave loop parameters shared by the fractal fields
type FBMConfig struct {
	Frequency  float32 // frequency of the first octave
	Octaves    int     // number of layers, at least 1
	Lacunarity float32 // frequency multiplier per octave
	Gain       float32 // weight multiplier per octave
	Amplitude  float32 // output scale
}

// Validate reports the first unusable parameter
func (c FBMConfig) Validate() error {
	switch {
	case c.Octaves < 1:
		return invalid("octaves", "must be at least 1, got %d", c.Octaves)
	case !finite32(c.Frequency) || c.Frequency <= 0:
		return invalid("frequency", "must be positive, got %v", c.Frequency)
	case !finite32(c.Lacunarity):
		return invalid("lacunarity", "must be finite, got %v", c.Lacunarity)
	case !finite32(c.Gain) || c.Gain < 0:
		return invalid("gain", "must be non-negative, got %v", c.Gain)
	case !finite32(c.Amplitude):
		return invalid("amplitude", "must be finite, got %v", c.Amplitude)
	}
	return nil
}

// FractalBrownianField sums octaves of gradient noise and normalises by the
// total octave weight, so |height| never exceeds Amplitude.
type FractalBrownianField struct {
	gen noise.Generator
	cfg FBMConfig
}

// NewFractalBrownianField creates an FBM field over gen
func NewFractalBrownianField(gen noise.Generator, cfg FBMConfig) (*FractalBrownianField, error) {
	if isNil(gen) {
		return nil, invalid("generator", "is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &FractalBrownianField{gen: gen, cfg: cfg}, nil
}

// HeightAt implements ScalarField
func (f *FractalBrownianField) HeightAt(x, z float32) float32 {
	var sum, total float32
	w := float32(1)
	fx := x * f.cfg.Frequency
	fz := z * f.cfg.Frequency

	for i := 0; i < f.cfg.Octaves; i++ {
		sum += w * float32(f.gen.Get(float64(fx), float64(fz)))
		total += w
		fx *= f.cfg.Lacunarity
		fz *= f.cfg.Lacunarity
		w *= f.cfg.Gain
	}

	return (sum / total) * f.cfg.Amplitude
}

// RidgedConfig extends FBMConfig with independent z-axis frequency stepping
type RidgedConfig struct {
	FBMConfig
	// ZAnisotropy multiplies the z lacunarity each octave, stretching ridges along x
	ZAnisotropy float32
}

// Validate reports the first unusable parameter
func (c RidgedConfig) Validate() error {
	if err := c.FBMConfig.Validate(); err != nil {
		return err
	}
	if !finite32(c.ZAnisotropy) || c.ZAnisotropy <= 0 {
		return invalid("z_anisotropy", "must be positive, got %v", c.ZAnisotropy)
	}
	return nil
}

// RidgedFractalField folds each octave around zero as (1-|n|)^2, producing
// sharp crests. Output lies in [0, Amplitude].
type RidgedFractalField struct {
	gen noise.Generator
	cfg RidgedConfig
}

// NewRidgedFractalField creates a ridged field over gen
func NewRidgedFractalField(gen noise.Generator, cfg RidgedConfig) (*RidgedFractalField, error) {
	if isNil(gen) {
		return nil, invalid("generator", "is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &RidgedFractalField{gen: gen, cfg: cfg}, nil
}

// HeightAt implements ScalarField
func (f *RidgedFractalField) HeightAt(x, z float32) float32 {
	var sum, total float32
	w := float32(1)
	fx := x * f.cfg.Frequency
	fz := z * f.cfg.Frequency

	for i := 0; i < f.cfg.Octaves; i++ {
		v := 1 - abs32(float32(f.gen.Get(float64(fx), float64(fz))))
		sum += w * (v * v)
		total += w
		fx *= f.cfg.Lacunarity
		fz *= f.cfg.Lacunarity * f.cfg.ZAnisotropy
		w *= f.cfg.Gain
	}

	return clamp32(sum/total, 0, 1) * f.cfg.Amplitude
}
