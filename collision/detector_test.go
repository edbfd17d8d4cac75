package collision

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mixtli/dungeon-lab-sub011/shared/geometry"
	"github.com/mixtli/dungeon-lab-sub011/shared/mapdata"
)

// unitMap returns a map whose grid scale is 1 world unit per cell with no
// offset, so grid and world coordinates coincide and geometry can be stated
// directly.
func unitMap() *mapdata.MapData {
	return &mapdata.MapData{
		Metadata: &mapdata.MapMetadata{
			WorldUnitsPerGridCell: 1,
			Dimensions:            mapdata.GridDimensions{Width: 100, Height: 100},
		},
	}
}

func wall(points ...float64) mapdata.Wall {
	return mapdata.Wall{ID: mapdata.NewID(), Points: points, BlocksMovement: true, Visible: true}
}

func TestCheckWallCollisionAgainstWalls(t *testing.T) {
	m := unitMap()
	m.Walls = []mapdata.Wall{wall(0, 0, 10, 0)}

	tests := []struct {
		name     string
		from, to geometry.Point
		want     bool
	}{
		{"Perpendicular crossing", geometry.Point{X: 5, Y: -5}, geometry.Point{X: 5, Y: 5}, true},
		{"Parallel below, never crossing", geometry.Point{X: 5, Y: 5}, geometry.Point{X: 15, Y: 5}, false},
		{"Stops short of the wall", geometry.Point{X: 5, Y: -5}, geometry.Point{X: 5, Y: -1}, false},
		{"Touches wall endpoint", geometry.Point{X: 10, Y: -5}, geometry.Point{X: 10, Y: 5}, true},
		{"Beyond wall extent", geometry.Point{X: 12, Y: -5}, geometry.Point{X: 12, Y: 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckWallCollision(tt.from, tt.to, m))
		})
	}
}

func TestCheckWallCollisionScaledGrid(t *testing.T) {
	m := &mapdata.MapData{
		Metadata: &mapdata.MapMetadata{
			WorldUnitsPerGridCell: 50,
			Offset:                geometry.Point{X: 25, Y: 25},
			Dimensions:            mapdata.GridDimensions{Width: 20, Height: 20},
		},
		// Horizontal wall at world y=125, spanning x 25..525.
		Walls: []mapdata.Wall{wall(25, 125, 525, 125)},
	}

	// Cell (1,1) is world (75,75); cell (1,3) is world (75,175): crosses.
	assert.True(t, CheckWallCollision(geometry.Point{X: 1, Y: 1}, geometry.Point{X: 1, Y: 3}, m))
	// Moving along the row above the wall never crosses it.
	assert.False(t, CheckWallCollision(geometry.Point{X: 1, Y: 1}, geometry.Point{X: 5, Y: 1}, m))
}

func TestCheckWallCollisionFailsOpen(t *testing.T) {
	from := geometry.Point{X: 0, Y: 0}
	to := geometry.Point{X: 10, Y: 10}

	assert.False(t, CheckWallCollision(from, to, nil), "nil map")
	assert.False(t, CheckWallCollision(from, to, &mapdata.MapData{}), "nil metadata")

	m := unitMap()
	m.Metadata.WorldUnitsPerGridCell = 0
	m.Walls = []mapdata.Wall{wall(0, 5, 20, 5)}
	assert.False(t, CheckWallCollision(from, to, m), "non-positive scale")

	assert.False(t, CheckWallCollision(from, to, unitMap()), "no geometry at all")
}

func TestCheckWallCollisionIgnoresNonBlockingWalls(t *testing.T) {
	m := unitMap()
	w := wall(0, 0, 10, 0)
	w.BlocksMovement = false
	m.Walls = []mapdata.Wall{w}

	assert.False(t, CheckWallCollision(geometry.Point{X: 5, Y: -5}, geometry.Point{X: 5, Y: 5}, m))
}

func TestCheckWallCollisionDegenerateWalls(t *testing.T) {
	m := unitMap()
	m.Walls = []mapdata.Wall{
		wall(5, 5),       // single point, no edges
		wall(),           // empty
		{ID: "odd", Points: []float64{1, 2, 3}, BlocksMovement: true}, // unpaired tail
	}

	assert.False(t, CheckWallCollision(geometry.Point{X: 0, Y: 0}, geometry.Point{X: 10, Y: 10}, m))
}

func TestCheckWallCollisionPolylineWall(t *testing.T) {
	m := unitMap()
	// L-shaped wall: (0,0) -> (10,0) -> (10,10).
	m.Walls = []mapdata.Wall{wall(0, 0, 10, 0, 10, 10)}

	assert.True(t, CheckWallCollision(geometry.Point{X: 5, Y: 5}, geometry.Point{X: 15, Y: 5}, m), "second edge blocks")
	assert.False(t, CheckWallCollision(geometry.Point{X: 2, Y: 2}, geometry.Point{X: 8, Y: 8}, m), "inside the L")
}

func TestCheckWallCollisionAgainstObjects(t *testing.T) {
	m := unitMap()
	m.Objects = []mapdata.PlacedObject{{
		ID:       mapdata.NewID(),
		Position: geometry.Point{X: 20, Y: 20},
		Bounds: []geometry.Point{
			{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
		},
		BlocksMovement: true,
	}}

	// Crossing the translated square at world (20..30, 20..30).
	assert.True(t, CheckWallCollision(geometry.Point{X: 15, Y: 25}, geometry.Point{X: 25, Y: 25}, m))
	// Same path misses the untranslated origin square.
	assert.False(t, CheckWallCollision(geometry.Point{X: 1, Y: 15}, geometry.Point{X: 9, Y: 15}, m))

	m.Objects[0].BlocksMovement = false
	assert.False(t, CheckWallCollision(geometry.Point{X: 15, Y: 25}, geometry.Point{X: 25, Y: 25}, m), "non-blocking object ignored")
}

func TestCheckWallCollisionDoors(t *testing.T) {
	door := mapdata.Door{
		ID:       mapdata.NewID(),
		Position: geometry.Point{X: 5, Y: 0},
		Bounds:   []geometry.Point{{X: -5, Y: 0}, {X: 5, Y: 0}},
		Closed:   true,
	}

	from := geometry.Point{X: 5, Y: -5}
	to := geometry.Point{X: 5, Y: 5}

	m := unitMap()
	m.Doors = []mapdata.Door{door}
	assert.True(t, CheckWallCollision(from, to, m), "closed door blocks")

	m.Doors[0].Closed = false
	assert.False(t, CheckWallCollision(from, to, m), "open door is passable")

	m.Doors[0].Closed = true
	m.Doors[0].Freestanding = true
	assert.False(t, CheckWallCollision(from, to, m), "freestanding door never blocks")

	m.Doors[0].Freestanding = false
	m.Doors[0].Bounds = m.Doors[0].Bounds[:1]
	assert.False(t, CheckWallCollision(from, to, m), "door with one bounds point has no edge")
}
