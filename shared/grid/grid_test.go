package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mixtli/dungeon-lab-sub011/shared/geometry"
)

func snapConfig(cell float64) Config {
	cfg := DefaultConfig()
	cfg.WorldUnitsPerCell = cell
	cfg.Snap = true
	return cfg
}

func TestSnapToGrid(t *testing.T) {
	tests := []struct {
		name string
		cell float64
		in   geometry.Point
		want geometry.Point
	}{
		{"Rounds down", 50, geometry.Point{X: 20, Y: 20}, geometry.Point{X: 0, Y: 0}},
		{"Rounds up", 50, geometry.Point{X: 30, Y: 45}, geometry.Point{X: 50, Y: 50}},
		{"Already on grid", 50, geometry.Point{X: 100, Y: 150}, geometry.Point{X: 100, Y: 150}},
		{"Negative coords", 50, geometry.Point{X: -30, Y: -20}, geometry.Point{X: -50, Y: -0}},
		{"Small cells", 5, geometry.Point{X: 12, Y: 13}, geometry.Point{X: 10, Y: 15}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := snapConfig(tt.cell).SnapToGrid(tt.in)
			assert.InDelta(t, tt.want.X, got.X, 1e-9)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
		})
	}
}

func TestSnapToGridDisabledReturnsInput(t *testing.T) {
	cfg := snapConfig(50)
	cfg.Snap = false

	in := geometry.Point{X: 23.7, Y: -41.2}
	assert.Equal(t, in, cfg.SnapToGrid(in))
}

func TestSnapToGridIdempotent(t *testing.T) {
	cfg := snapConfig(50)
	points := []geometry.Point{{X: 20, Y: 20}, {X: 30, Y: 45}, {X: -12, Y: 99}, {X: 0, Y: 0}}

	for _, p := range points {
		once := cfg.SnapToGrid(p)
		twice := cfg.SnapToGrid(once)
		assert.Equal(t, once, twice, "snap of %v not idempotent", p)
	}
}

func TestSnapPointsToGrid(t *testing.T) {
	cfg := snapConfig(50)

	in := []float64{20, 20, 30, 45, 101, 149}
	got := cfg.SnapPointsToGrid(in)

	assert.Equal(t, []float64{0, 0, 50, 50, 100, 150}, got)
	assert.Len(t, got, len(in), "length preserved")
	assert.Equal(t, []float64{20, 20, 30, 45, 101, 149}, in, "input not mutated")
}

func TestSnapPointsToGridOddLength(t *testing.T) {
	cfg := snapConfig(50)

	got := cfg.SnapPointsToGrid([]float64{20, 20, 77})
	assert.Equal(t, []float64{0, 0, 77}, got, "trailing unpaired value passes through")
}

func TestGridLines(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WorldUnitsPerCell = 50

	lines := cfg.GridLines(100, 100, 0, 0, geometry.Point{})
	assert.Equal(t, []float64{0, 50, 100}, lines.Vertical)
	assert.Equal(t, []float64{0, 50, 100}, lines.Horizontal)
}

func TestGridLinesOffsetViewport(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WorldUnitsPerCell = 50

	// Viewport [60, 210) x [-40, 60): only lines inside it appear.
	lines := cfg.GridLines(150, 100, 60, -40, geometry.Point{})
	assert.Equal(t, []float64{100, 150, 200}, lines.Vertical)
	assert.Equal(t, []float64{0, 50}, lines.Horizontal)
}

func TestGridLinesGridOffset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WorldUnitsPerCell = 50

	lines := cfg.GridLines(100, 100, 0, 0, geometry.Point{X: 10, Y: 10})
	assert.Equal(t, []float64{10, 60}, lines.Vertical)
	assert.Equal(t, []float64{10, 60}, lines.Horizontal)
}

func TestGridLinesHiddenGrid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WorldUnitsPerCell = 50
	cfg.Visible = false

	lines := cfg.GridLines(100, 100, 0, 0, geometry.Point{})
	assert.Empty(t, lines.Vertical)
	assert.Empty(t, lines.Horizontal)
}

func TestGridLinesDegenerateScale(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WorldUnitsPerCell = 0

	lines := cfg.GridLines(100, 100, 0, 0, geometry.Point{})
	assert.Empty(t, lines.Vertical)
	assert.Empty(t, lines.Horizontal)
}
