// Package terrain synthesises height fields from composable noise layers and
// turns them into indexed triangle meshes.
package terrain

import (
	"math"
	"reflect"
)

// ScalarField is a continuous height function on the XZ plane.
//
// Implementations must be pure: the same (x, z) always yields the same
// height, evaluation never mutates the field, and finite input never panics.
// A field tree is immutable after construction and may be evaluated from
// several goroutines at once.
type ScalarField interface {
	HeightAt(x, z float32) float32
}

// FieldFunc adapts an ordinary function to ScalarField
type FieldFunc func(x, z float32) float32

// HeightAt calls f(x, z)
func (f FieldFunc) HeightAt(x, z float32) float32 {
	return f(x, z)
}

// Constant is a flat field
type Constant float32

// HeightAt returns the constant height
func (c Constant) HeightAt(x, z float32) float32 {
	return float32(c)
}

func finite32(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func clamp32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs32(v float32) float32 {
	return float32(math.Abs(float64(v)))
}

// isNil also catches typed nils, such as a nil *FractalBrownianField stored
// in a ScalarField
func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Func, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
