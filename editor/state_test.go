package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mixtli/dungeon-lab-sub011/shared/geometry"
	"github.com/mixtli/dungeon-lab-sub011/shared/mapdata"
)

func newWall() mapdata.Wall {
	return mapdata.Wall{
		ID:             mapdata.NewID(),
		Points:         []float64{0, 0, 50, 0},
		BlocksMovement: true,
		Visible:        true,
	}
}

func newLight() mapdata.Light {
	return mapdata.Light{
		ID:       mapdata.NewID(),
		Position: geometry.Point{X: 100, Y: 100},
		Range:    240,
		Color:    "#ffcc00",
		Opacity:  0.8,
		Visible:  true,
	}
}

func TestAddSetsModified(t *testing.T) {
	s := NewState()
	require.False(t, s.IsModified())

	s.AddWall(newWall())
	assert.True(t, s.IsModified())
	assert.Len(t, s.Walls(), 1)

	s.MarkSaved()
	assert.False(t, s.IsModified())

	s.AddLight(newLight())
	assert.True(t, s.IsModified())
	assert.Len(t, s.Lights(), 1)
}

func TestUpdateMergesFields(t *testing.T) {
	s := NewState()
	w := newWall()
	s.AddWall(w)
	s.MarkSaved()

	found := s.UpdateWall(w.ID, func(wall *mapdata.Wall) {
		wall.Points = []float64{0, 0, 100, 0}
		wall.Locked = true
	})

	require.True(t, found)
	assert.True(t, s.IsModified())
	assert.Equal(t, []float64{0, 0, 100, 0}, s.Walls()[0].Points)
	assert.True(t, s.Walls()[0].Locked)
	assert.Equal(t, w.ID, s.Walls()[0].ID, "id survives updates")
}

func TestUpdateUnknownIdIsMissedNotError(t *testing.T) {
	s := NewState()
	s.AddWall(newWall())
	s.MarkSaved()

	found := s.UpdateWall("nope", func(wall *mapdata.Wall) {
		wall.Locked = true
	})

	assert.False(t, found)
	assert.False(t, s.IsModified(), "missed update leaves modified flag alone")
	assert.False(t, s.Walls()[0].Locked)
}

func TestRemoveObjectSearchesAllKinds(t *testing.T) {
	s := NewState()
	w := newWall()
	l := newLight()
	d := mapdata.Door{ID: mapdata.NewID(), Closed: true}
	o := mapdata.PlacedObject{ID: mapdata.NewID(), BlocksMovement: true}

	s.AddWall(w)
	s.AddDoor(d)
	s.AddObject(o)
	s.AddLight(l)
	s.MarkSaved()

	assert.True(t, s.RemoveObject(d.ID))
	assert.Empty(t, s.Doors())
	assert.True(t, s.IsModified())

	assert.True(t, s.RemoveObject(l.ID))
	assert.Empty(t, s.Lights())

	assert.Len(t, s.Walls(), 1)
	assert.Len(t, s.Objects(), 1)
}

func TestRemoveObjectUnknownIdIsNoop(t *testing.T) {
	s := NewState()
	s.AddWall(newWall())
	s.MarkSaved()

	assert.NotPanics(t, func() {
		assert.False(t, s.RemoveObject("missing"))
	})
	assert.False(t, s.IsModified(), "nothing removed, modified unchanged")
}

func TestRemoveObjectDropsSelection(t *testing.T) {
	s := NewState()
	w := newWall()
	s.AddWall(w)
	s.SelectObject(w.ID, false)
	require.True(t, s.IsSelected(w.ID))

	s.RemoveObject(w.ID)
	assert.False(t, s.IsSelected(w.ID))
	assert.Empty(t, s.SelectedIDs(), "selection never references a missing entity")
}

func TestSelection(t *testing.T) {
	s := NewState()
	w1, w2 := newWall(), newWall()
	s.AddWall(w1)
	s.AddWall(w2)

	s.SelectObject(w1.ID, false)
	assert.Equal(t, []string{w1.ID}, s.SelectedIDs())

	// Replace.
	s.SelectObject(w2.ID, false)
	assert.Equal(t, []string{w2.ID}, s.SelectedIDs())

	// Additive toggle on.
	s.SelectObject(w1.ID, true)
	assert.Len(t, s.SelectedIDs(), 2)

	// Additive toggle off.
	s.SelectObject(w1.ID, true)
	assert.Equal(t, []string{w2.ID}, s.SelectedIDs())

	// Clear.
	s.SelectObject("", false)
	assert.Empty(t, s.SelectedIDs())

	// Unknown ids never enter the selection.
	s.SelectObject("ghost", false)
	assert.Empty(t, s.SelectedIDs())

	s.SelectObjects([]string{w1.ID, "ghost", w2.ID})
	assert.Len(t, s.SelectedIDs(), 2)
}

func TestResetState(t *testing.T) {
	s := NewState()
	s.AddWall(newWall())
	s.AddLight(newLight())
	s.SelectObjects([]string{s.Walls()[0].ID})

	cfg := s.Grid()
	cfg.Snap = false
	cfg.WorldUnitsPerCell = 70
	s.SetGrid(cfg)

	s.ResetState()

	assert.Empty(t, s.Walls())
	assert.Empty(t, s.Lights())
	assert.Empty(t, s.SelectedIDs())
	assert.False(t, s.IsModified())
	assert.Equal(t, float64(50), s.Grid().WorldUnitsPerCell, "grid back to defaults")
	assert.True(t, s.Grid().Snap)
}

func TestLoadMapReplacesEverything(t *testing.T) {
	s := NewState()
	s.AddWall(newWall())
	s.SelectObjects([]string{s.Walls()[0].ID})

	meta := &mapdata.MapMetadata{
		WorldUnitsPerGridCell: 70,
		Dimensions:            mapdata.GridDimensions{Width: 30, Height: 20},
	}
	walls := []mapdata.Wall{newWall(), newWall()}
	lights := []mapdata.Light{newLight()}

	s.LoadMap(meta, walls, nil, nil, lights)

	assert.Equal(t, meta, s.Metadata())
	assert.Len(t, s.Walls(), 2)
	assert.Len(t, s.Lights(), 1)
	assert.Empty(t, s.SelectedIDs())
	assert.False(t, s.IsModified(), "freshly loaded map is unmodified")
}

func TestChangeEvents(t *testing.T) {
	s := NewState()
	var events []Change
	s.Subscribe(func(ch Change) { events = append(events, ch) })

	w := newWall()
	s.AddWall(w)
	s.UpdateWall(w.ID, func(wall *mapdata.Wall) { wall.Locked = true })
	s.RemoveObject(w.ID)
	s.UpdateWall(w.ID, func(wall *mapdata.Wall) {}) // missed update, no event

	require.Len(t, events, 3)
	assert.Equal(t, Change{Op: OpAdd, Kind: KindWall, ID: w.ID}, events[0])
	assert.Equal(t, Change{Op: OpUpdate, Kind: KindWall, ID: w.ID}, events[1])
	assert.Equal(t, Change{Op: OpRemove, Kind: KindWall, ID: w.ID}, events[2])
}

func TestMapDataSnapshot(t *testing.T) {
	s := NewState()
	w := newWall()
	s.AddWall(w)

	snap := s.MapData()
	require.Len(t, snap.Walls, 1)

	// Mutating the snapshot must not touch the state.
	snap.Walls[0].Locked = true
	assert.False(t, s.Walls()[0].Locked)
}
