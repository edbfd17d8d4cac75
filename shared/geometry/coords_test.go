package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGridToWorld(t *testing.T) {
	tests := []struct {
		name   string
		grid   Point
		scale  float64
		offset Point
		want   Point
	}{
		{"Origin no offset", Point{0, 0}, 50, Point{0, 0}, Point{0, 0}},
		{"Unit cell", Point{1, 1}, 50, Point{0, 0}, Point{50, 50}},
		{"With offset", Point{2, 3}, 50, Point{10, -20}, Point{110, 130}},
		{"Fractional scale", Point{4, 2}, 2.5, Point{0, 0}, Point{10, 5}},
		{"Negative cells", Point{-1, -2}, 50, Point{0, 0}, Point{-50, -100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GridToWorld(tt.grid, tt.scale, tt.offset)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWorldToGridFloors(t *testing.T) {
	tests := []struct {
		name   string
		world  Point
		scale  float64
		offset Point
		want   Point
	}{
		{"Cell interior", Point{75, 25}, 50, Point{0, 0}, Point{1, 0}},
		{"Cell boundary belongs to next cell", Point{50, 100}, 50, Point{0, 0}, Point{1, 2}},
		{"Negative world coords", Point{-1, -51}, 50, Point{0, 0}, Point{-1, -2}},
		{"Offset shifts cells", Point{60, 60}, 50, Point{25, 25}, Point{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WorldToGrid(tt.world, tt.scale, tt.offset)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Round trip: worldToGrid(gridToWorld(p)) == p for integral grid points,
// any positive scale, any offset.
func TestGridWorldRoundTrip(t *testing.T) {
	scales := []float64{0.5, 1, 2.5, 5, 50}
	offsets := []Point{{0, 0}, {10, -20}, {-7.25, 3.5}}
	points := []Point{{0, 0}, {1, 1}, {-3, 7}, {100, -250}, {13, 42}}

	for _, s := range scales {
		for _, o := range offsets {
			for _, p := range points {
				got := WorldToGrid(GridToWorld(p, s, o), s, o)
				assert.InDelta(t, p.X, got.X, 1e-6, "X for p=%v s=%v o=%v", p, s, o)
				assert.InDelta(t, p.Y, got.Y, 1e-6, "Y for p=%v s=%v o=%v", p, s, o)
			}
		}
	}
}

func TestWorldToGridExact(t *testing.T) {
	got := WorldToGridExact(Point{X: 75, Y: 25}, 50, Point{})
	assert.InDelta(t, 1.5, got.X, 1e-9)
	assert.InDelta(t, 0.5, got.Y, 1e-9)
}

func TestPointArithmetic(t *testing.T) {
	p := Point{X: 3, Y: -2}
	assert.Equal(t, Point{X: 5, Y: 0}, p.Add(Point{X: 2, Y: 2}))
	assert.Equal(t, Point{X: 1, Y: -4}, p.Sub(Point{X: 2, Y: 2}))
	assert.Equal(t, Point{X: 6, Y: -4}, p.Scale(2))
}
