// Package collision validates proposed token movement against a map's wall,
// object, and door geometry. All checks are pure functions over a snapshot
// of the map data: the same (from, to, map) triple always yields the same
// answer, so independent move proposals can be validated concurrently
// without coordination.
package collision

import (
	"github.com/mixtli/dungeon-lab-sub011/shared/geometry"
	"github.com/mixtli/dungeon-lab-sub011/shared/mapdata"
)

// CheckWallCollision reports whether the movement from one grid cell to
// another crosses blocking geometry. Both endpoints are converted to world
// units with the map's scale and offset, then the movement segment is tested
// against every movement-blocking wall edge, every movement-blocking placed
// object's polygon edges, and the blocking edge of every closed,
// non-freestanding door.
//
// Fails open: when map geometry data is entirely absent (nil map, nil
// metadata, or a non-positive scale) the move is allowed. Movement is never
// blocked by missing data; callers that need strict validation must check
// data presence themselves.
func CheckWallCollision(fromGrid, toGrid geometry.Point, m *mapdata.MapData) bool {
	if m == nil || m.Metadata == nil || m.Metadata.WorldUnitsPerGridCell <= 0 {
		return false
	}

	scale := m.Metadata.WorldUnitsPerGridCell
	offset := m.Metadata.Offset
	from := geometry.GridToWorld(fromGrid, scale, offset)
	to := geometry.GridToWorld(toGrid, scale, offset)

	return CheckWorldCollision(from, to, m)
}

// CheckWorldCollision is CheckWallCollision for endpoints already in world
// units. Returns true on the first intersection found; no ordering guarantee
// on which entity reports first.
func CheckWorldCollision(from, to geometry.Point, m *mapdata.MapData) bool {
	if m == nil {
		return false
	}

	for _, wall := range m.Walls {
		if !wall.BlocksMovement {
			continue
		}
		// Zero-length walls produce no edges and never collide.
		if geometry.SegmentIntersectsPolyline(from, to, wall.Polyline()) {
			return true
		}
	}

	for _, obj := range m.Objects {
		if !obj.BlocksMovement {
			continue
		}
		if geometry.SegmentIntersectsPolygon(from, to, obj.AbsoluteBounds()) {
			return true
		}
	}

	for _, door := range m.Doors {
		// Open doors are passable; freestanding doors are decorative.
		if !door.Closed || door.Freestanding {
			continue
		}
		start, end, ok := door.BlockingEdge()
		if !ok {
			continue
		}
		if geometry.SegmentsIntersect(from, to, start, end) {
			return true
		}
	}

	return false
}
