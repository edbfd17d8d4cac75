// Package geometry provides the coordinate types and pure conversion and
// intersection math shared between the map editor, the collision detector,
// and the encounter server. It has no dependencies — pure data and math only.
package geometry

// Point is a 2-D coordinate. Whether it is in grid cells, world units, or
// pixels is determined by context; the two spaces are never mixed within a
// single call.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LineSegment is a directed segment between two points, used both for
// movement paths and for wall edges.
type LineSegment struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// Add returns p + q component-wise.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q component-wise.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns p with both components multiplied by s.
func (p Point) Scale(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}
