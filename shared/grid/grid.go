// Package grid provides grid snapping and viewport grid-line enumeration on
// top of the geometry conversions. Config is presentation and snap behavior
// only; it is never persisted as map data.
package grid

import (
	"math"

	"github.com/mixtli/dungeon-lab-sub011/shared/geometry"
)

// Config describes the grid overlay for one open map. It is a value type:
// the editor state owns the authoritative copy and hands out copies, so no
// two components ever alias the same mutable config.
type Config struct {
	Visible           bool
	WorldUnitsPerCell float64
	Color             string
	Snap              bool
	Opacity           float64
}

// DefaultConfig is the grid every freshly opened map starts with.
func DefaultConfig() Config {
	return Config{
		Visible:           true,
		WorldUnitsPerCell: 50,
		Color:             "#cccccc",
		Snap:              true,
		Opacity:           0.5,
	}
}

// Lines holds the world coordinates of the grid lines crossing a viewport.
type Lines struct {
	Vertical   []float64
	Horizontal []float64
}

// SnapToGrid rounds each axis of p to the nearest multiple of the cell
// scale. When snapping is disabled the input is returned unchanged.
// Idempotent: snapping an already snapped point is a no-op.
func (c Config) SnapToGrid(p geometry.Point) geometry.Point {
	if !c.Snap || c.WorldUnitsPerCell <= 0 {
		return p
	}
	return geometry.Point{
		X: math.Round(p.X/c.WorldUnitsPerCell) * c.WorldUnitsPerCell,
		Y: math.Round(p.Y/c.WorldUnitsPerCell) * c.WorldUnitsPerCell,
	}
}

// SnapPointsToGrid applies SnapToGrid pairwise to a flat [x1, y1, x2, y2, ...]
// polyline, preserving length and pairing. A trailing unpaired value is
// copied through untouched.
func (c Config) SnapPointsToGrid(points []float64) []float64 {
	out := make([]float64, len(points))
	copy(out, points)
	if !c.Snap || c.WorldUnitsPerCell <= 0 {
		return out
	}
	for i := 0; i+1 < len(out); i += 2 {
		p := c.SnapToGrid(geometry.Point{X: out[i], Y: out[i+1]})
		out[i], out[i+1] = p.X, p.Y
	}
	return out
}

// GridLines enumerates the world coordinates of the grid lines intersecting
// the viewport rectangle, stepping by the cell scale from the first line at
// or after the viewport edge. Only visible lines are produced, so rendering
// cost is bounded by the viewport, not the map. Returns empty line sets when
// the grid is hidden or the scale is degenerate.
func (c Config) GridLines(viewportWidth, viewportHeight, viewportOffsetX, viewportOffsetY float64, gridOffset geometry.Point) Lines {
	var lines Lines
	if !c.Visible || c.WorldUnitsPerCell <= 0 || viewportWidth < 0 || viewportHeight < 0 {
		return lines
	}

	cell := c.WorldUnitsPerCell

	startX := math.Ceil((viewportOffsetX-gridOffset.X)/cell)*cell + gridOffset.X
	for i := 0; ; i++ {
		x := startX + float64(i)*cell
		if x > viewportOffsetX+viewportWidth {
			break
		}
		lines.Vertical = append(lines.Vertical, x)
	}

	startY := math.Ceil((viewportOffsetY-gridOffset.Y)/cell)*cell + gridOffset.Y
	for i := 0; ; i++ {
		y := startY + float64(i)*cell
		if y > viewportOffsetY+viewportHeight {
			break
		}
		lines.Horizontal = append(lines.Horizontal, y)
	}

	return lines
}
