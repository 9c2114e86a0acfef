package terrain

import (
	"github.com/go-gl/mathgl/mgl32"

	"europa/internal/noise"
)

// Add2 sums two fields
type Add2 struct {
	A, B ScalarField
}

// NewAdd2 creates a + b
func NewAdd2(a, b ScalarField) (*Add2, error) {
	if isNil(a) || isNil(b) {
		return nil, invalid("add2", "needs two fields")
	}
	return &Add2{A: a, B: b}, nil
}

// HeightAt implements ScalarField
func (c Add2) HeightAt(x, z float32) float32 {
	return c.A.HeightAt(x, z) + c.B.HeightAt(x, z)
}

// Scale multiplies a field by a constant
type Scale struct {
	Source ScalarField
	Factor float32
}

// NewScale creates source * factor
func NewScale(source ScalarField, factor float32) (*Scale, error) {
	if isNil(source) {
		return nil, invalid("scale", "needs a source field")
	}
	if !finite32(factor) {
		return nil, invalid("scale", "factor must be finite, got %v", factor)
	}
	return &Scale{Source: source, Factor: factor}, nil
}

// HeightAt implements ScalarField
func (c Scale) HeightAt(x, z float32) float32 {
	return c.Source.HeightAt(x, z) * c.Factor
}

// Bias offsets a field by a constant
type Bias struct {
	Source ScalarField
	Offset float32
}

// NewBias creates source + offset
func NewBias(source ScalarField, offset float32) (*Bias, error) {
	if isNil(source) {
		return nil, invalid("bias", "needs a source field")
	}
	if !finite32(offset) {
		return nil, invalid("bias", "offset must be finite, got %v", offset)
	}
	return &Bias{Source: source, Offset: offset}, nil
}

// HeightAt implements ScalarField
func (c Bias) HeightAt(x, z float32) float32 {
	return c.Source.HeightAt(x, z) + c.Offset
}

// WarpConfig controls the displacement field of a DomainWarp
type WarpConfig struct {
	Amplitude  float32 // displacement in world units
	Frequency  float32
	Octaves    int
	Lacunarity float32
	Gain       float32
}

// Validate reports the first unusable parameter
func (c WarpConfig) Validate() error {
	switch {
	case c.Octaves < 1:
		return invalid("warp.octaves", "must be at least 1, got %d", c.Octaves)
	case !finite32(c.Frequency) || c.Frequency <= 0:
		return invalid("warp.frequency", "must be positive, got %v", c.Frequency)
	case !finite32(c.Lacunarity):
		return invalid("warp.lacunarity", "must be finite, got %v", c.Lacunarity)
	case !finite32(c.Gain) || c.Gain < 0:
		return invalid("warp.gain", "must be non-negative, got %v", c.Gain)
	case !finite32(c.Amplitude):
		return invalid("warp.amplitude", "must be finite, got %v", c.Amplitude)
	}
	return nil
}

// DomainWarp displaces the query point by a two-channel FBM before
// evaluating its source. The channels read the same generator with swapped
// coordinates.
type DomainWarp struct {
	source ScalarField
	gen    noise.Generator
	cfg    WarpConfig
}

// NewDomainWarp wraps source with a displacement field drawn from gen
func NewDomainWarp(source ScalarField, gen noise.Generator, cfg WarpConfig) (*DomainWarp, error) {
	if isNil(source) {
		return nil, invalid("warp", "needs a source field")
	}
	if isNil(gen) {
		return nil, invalid("warp.generator", "is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &DomainWarp{source: source, gen: gen, cfg: cfg}, nil
}

// Displacement returns the warp offset applied at (x, z)
func (d *DomainWarp) Displacement(x, z float32) (float32, float32) {
	var sumX, sumZ, total float32
	w := float32(1)
	fx := x * d.cfg.Frequency
	fz := z * d.cfg.Frequency

	for i := 0; i < d.cfg.Octaves; i++ {
		nx := float32(d.gen.Get(float64(fx), float64(fz)))
		nz := float32(d.gen.Get(float64(fz), float64(fx)))

		sumX += w * nx
		sumZ += w * nz
		total += w

		fx *= d.cfg.Lacunarity
		fz *= d.cfg.Lacunarity
		w *= d.cfg.Gain
	}

	return (sumX / total) * d.cfg.Amplitude, (sumZ / total) * d.cfg.Amplitude
}

// HeightAt implements ScalarField
func (d *DomainWarp) HeightAt(x, z float32) float32 {
	if d.cfg.Amplitude == 0 {
		return d.source.HeightAt(x, z)
	}
	wx, wz := d.Displacement(x, z)
	return d.source.HeightAt(x+wx, z+wz)
}

// Oriented re-projects the query point onto a basis aligned with dir, so
// axis-aligned features of the source follow an arbitrary heading.
//
// The ortho axis is (-dir.y, -dir.x), which is not the usual left
// perpendicular. Changing it mirrors every existing terrain.
type Oriented struct {
	source     ScalarField
	dir        mgl32.Vec2
	mainScale  float32
	orthoScale float32
}

// NewOriented wraps source. dir is normalised; a degenerate dir becomes +X.
func NewOriented(source ScalarField, dir mgl32.Vec2, mainScale, orthoScale float32) (*Oriented, error) {
	if isNil(source) {
		return nil, invalid("orient", "needs a source field")
	}
	if !finite32(mainScale) || !finite32(orthoScale) {
		return nil, invalid("orient", "scales must be finite, got %v and %v", mainScale, orthoScale)
	}
	return &Oriented{
		source:     source,
		dir:        UnitDir(dir),
		mainScale:  mainScale,
		orthoScale: orthoScale,
	}, nil
}

// Project returns the source-space coordinates of (x, z)
func (o *Oriented) Project(x, z float32) (float32, float32) {
	p := mgl32.Vec2{x, z}
	t := o.dir
	n := mgl32.Vec2{-t[1], -t[0]}
	return p.Dot(t) * o.mainScale, p.Dot(n) * o.orthoScale
}

// HeightAt implements ScalarField
func (o *Oriented) HeightAt(x, z float32) float32 {
	u, v := o.Project(x, z)
	return o.source.HeightAt(u, v)
}
