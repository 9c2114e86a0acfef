package terrain

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

var up = mgl32.Vec3{0, 1, 0}

// heightGrid holds the materialised heights of one build. Positions and
// normals both read from it so they never disagree.
type heightGrid struct {
	side    int
	spacing float32
	half    float32
	h       []float32
}

func newHeightGrid(p TerrainParams) *heightGrid {
	side := p.VerticesPerSide()
	return &heightGrid{
		side:    side,
		spacing: p.Spacing(),
		half:    p.Size * 0.5,
		h:       make([]float32, side*side),
	}
}

// coord maps a vertex index to a world coordinate on either axis
func (g *heightGrid) coord(i int) float32 {
	return -g.half + float32(i)*g.spacing
}

// sample evaluates field for rows [j0, j1)
func (g *heightGrid) sample(field ScalarField, j0, j1 int) {
	for j := j0; j < j1; j++ {
		z := g.coord(j)
		row := g.h[j*g.side : (j+1)*g.side]
		for i := range row {
			row[i] = field.HeightAt(g.coord(i), z)
		}
	}
}

// at reads a height with indices clamped to the grid
func (g *heightGrid) at(i, j int) float32 {
	if i < 0 {
		i = 0
	} else if i >= g.side {
		i = g.side - 1
	}
	if j < 0 {
		j = 0
	} else if j >= g.side {
		j = g.side - 1
	}
	return g.h[j*g.side+i]
}

// normal estimates the surface normal by central differences. Border
// vertices reuse their own height for the missing neighbour.
func (g *heightGrid) normal(i, j int) mgl32.Vec3 {
	if !finite32(g.at(i, j)) {
		return up
	}

	dhdx := (g.at(i+1, j) - g.at(i-1, j)) / (2 * g.spacing)
	dhdz := (g.at(i, j+1) - g.at(i, j-1)) / (2 * g.spacing)

	n := mgl32.Vec3{-dhdx, 1, -dhdz}.Normalize()
	if !finite32(n[0]) || !finite32(n[1]) || !finite32(n[2]) {
		return up
	}
	return n
}

// forRows runs fn over [0, rows) split into contiguous bands, one goroutine
// per band. Bands never overlap, so fn may write its rows without locking.
func forRows(rows, workers int, fn func(j0, j1 int)) {
	if workers > rows {
		workers = rows
	}
	if workers <= 1 {
		fn(0, rows)
		return
	}

	var wg sync.WaitGroup
	perWorker := rows / workers

	for w := 0; w < workers; w++ {
		start := w * perWorker
		end := start + perWorker
		if w == workers-1 {
			end = rows
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(start, end)
	}

	wg.Wait()
}
