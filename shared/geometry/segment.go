package geometry

// direction is the cross product of (b-a) and (c-a). Its sign tells which
// side of the line through a and b the point c lies on; zero means collinear.
func direction(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// onSegment reports whether c, already known to be collinear with a and b,
// lies within the bounding box of the segment ab. Bounds-inclusive: an exact
// endpoint touch counts.
func onSegment(a, b, c Point) bool {
	return min(a.X, b.X) <= c.X && c.X <= max(a.X, b.X) &&
		min(a.Y, b.Y) <= c.Y && c.Y <= max(a.Y, b.Y)
}

// SegmentsIntersect reports whether the segments ab and cd intersect,
// using the standard orientation test. Segments that properly cross return
// true; collinear or endpoint-touching cases are resolved with the
// bounds-inclusive onSegment check, so a segment that merely touches the
// other's endpoint still intersects. Vertical and horizontal segments need
// no special-casing: a zero cross product falls through to the containment
// check uniformly.
func SegmentsIntersect(a, b, c, d Point) bool {
	d1 := direction(c, d, a)
	d2 := direction(c, d, b)
	d3 := direction(a, b, c)
	d4 := direction(a, b, d)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	if d1 == 0 && onSegment(c, d, a) {
		return true
	}
	if d2 == 0 && onSegment(c, d, b) {
		return true
	}
	if d3 == 0 && onSegment(a, b, c) {
		return true
	}
	if d4 == 0 && onSegment(a, b, d) {
		return true
	}

	return false
}

// SegmentIntersectsPolyline tests the segment ab against every consecutive
// edge of the polyline. Polylines with fewer than two points contribute no
// edges and never intersect.
func SegmentIntersectsPolyline(a, b Point, polyline []Point) bool {
	for i := 0; i+1 < len(polyline); i++ {
		if SegmentsIntersect(a, b, polyline[i], polyline[i+1]) {
			return true
		}
	}
	return false
}

// SegmentIntersectsPolygon tests the segment ab against every edge of the
// closed polygon, including the wrap-around edge from the last vertex back
// to the first. Polygons with fewer than two vertices never intersect.
func SegmentIntersectsPolygon(a, b Point, polygon []Point) bool {
	n := len(polygon)
	if n < 2 {
		return false
	}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		if SegmentsIntersect(a, b, polygon[i], polygon[j]) {
			return true
		}
	}
	return false
}
