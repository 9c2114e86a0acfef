package noise

import (
	"fmt"
	"math"
	"strings"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Generator is a deterministic 2D gradient noise source.
// Implementations are read-only after construction and safe for concurrent use.
type Generator interface {
	Get(x, y float64) float64
}

// Basis names a noise algorithm
type Basis string

// Supported noise bases
const (
	BasisPerlin  Basis = "perlin"
	BasisSimplex Basis = "simplex"
)

// Seed salts for secondary layers. They must stay odd and distinct.
const (
	RidgeSalt uint32 = 0xB5297A4D
	WarpSalt  uint32 = 0x9E3779B9
)

// perlinPeriod is the lattice period of go-perlin's permutation table
const perlinPeriod = 256.0

// perlinScale stretches go-perlin's unit-gradient output, which peaks near
// 1/sqrt(2), onto [-1, 1]
const perlinScale = math.Sqrt2

// Derive returns the seed of a secondary noise layer
func Derive(seed, salt uint32) uint32 {
	return seed ^ salt
}

// ParseBasis converts a config string into a Basis. Empty means Perlin.
func ParseBasis(s string) (Basis, error) {
	switch Basis(strings.ToLower(strings.TrimSpace(s))) {
	case "", BasisPerlin:
		return BasisPerlin, nil
	case BasisSimplex:
		return BasisSimplex, nil
	default:
		return "", fmt.Errorf("unknown noise basis %q", s)
	}
}

// New creates a generator of the given basis
func New(basis Basis, seed uint32) (Generator, error) {
	switch basis {
	case "", BasisPerlin:
		return NewPerlin(seed), nil
	case BasisSimplex:
		return NewSimplex(seed), nil
	default:
		return nil, fmt.Errorf("unknown noise basis %q", basis)
	}
}

// Perlin is single-octave classic Perlin noise in [-1, 1]
type Perlin struct {
	seed uint32
	p    *perlin.Perlin
}

// NewPerlin creates a Perlin generator with its gradient table derived from seed
func NewPerlin(seed uint32) *Perlin {
	return &Perlin{
		seed: seed,
		// alpha/beta are irrelevant with one octave
		p: perlin.NewPerlin(2, 2, 1, int64(seed)),
	}
}

// Get samples the noise at (x, y)
func (g *Perlin) Get(x, y float64) float64 {
	// The library offsets coordinates by 4096 before truncating, so inputs
	// are folded onto one lattice period first.
	v := g.p.Noise2D(fold(x), fold(y))

	// A zero-length gradient in the table turns its cells into NaN
	if math.IsNaN(v) {
		return 0
	}
	return clampUnit(v * perlinScale)
}

// Seed returns the construction seed
func (g *Perlin) Seed() uint32 {
	return g.seed
}

// Simplex is OpenSimplex noise in [-1, 1]
type Simplex struct {
	n opensimplex.Noise
}

// NewSimplex creates an OpenSimplex generator
func NewSimplex(seed uint32) *Simplex {
	return &Simplex{n: opensimplex.New(int64(seed))}
}

// Get samples the noise at (x, y)
func (g *Simplex) Get(x, y float64) float64 {
	return g.n.Eval2(x, y)
}

func fold(v float64) float64 {
	v = math.Mod(v, perlinPeriod)
	if v < 0 {
		v += perlinPeriod
	}
	return v
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
