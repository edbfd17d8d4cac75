package geometry

import "math"

// GridToWorld converts a grid-cell coordinate to world units:
// world = offset + grid*scale. scale is the map's world units per grid cell.
func GridToWorld(grid Point, scale float64, offset Point) Point {
	return Point{
		X: offset.X + grid.X*scale,
		Y: offset.Y + grid.Y*scale,
	}
}

// WorldToGrid converts a world coordinate to the grid cell containing it,
// flooring each axis. For integral grid coordinates this is the exact inverse
// of GridToWorld.
func WorldToGrid(world Point, scale float64, offset Point) Point {
	return Point{
		X: math.Floor((world.X - offset.X) / scale),
		Y: math.Floor((world.Y - offset.Y) / scale),
	}
}

// WorldToGridExact converts a world coordinate to continuous grid space
// without flooring. Used for snapping, where the fractional cell position
// matters.
func WorldToGridExact(world Point, scale float64, offset Point) Point {
	return Point{
		X: (world.X - offset.X) / scale,
		Y: (world.Y - offset.Y) / scale,
	}
}
