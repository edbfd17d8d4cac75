// Package editor holds the in-memory state for one open map in the map
// editor: the four entity collections, the selection set, the modified flag,
// and the grid configuration. State is plain data with explicit mutation
// methods; interested renderers subscribe for change notifications instead
// of observing the structs directly.
//
// State is single-mutator by design: the editor is single-user and
// synchronous, so there is no internal locking. The encounter runtime never
// shares a State instance with an editing session.
package editor

import (
	"sort"

	"github.com/mixtli/dungeon-lab-sub011/shared/grid"
	"github.com/mixtli/dungeon-lab-sub011/shared/mapdata"
)

// State is the entity store for one open map.
type State struct {
	metadata *mapdata.MapMetadata
	walls    []mapdata.Wall
	doors    []mapdata.Door
	objects  []mapdata.PlacedObject
	lights   []mapdata.Light

	selected map[string]struct{}
	modified bool
	grid     grid.Config

	listeners []func(Change)
}

// NewState returns an empty state with the default grid configuration, as
// created when a map is first opened.
func NewState() *State {
	return &State{
		selected: make(map[string]struct{}),
		grid:     grid.DefaultConfig(),
	}
}

// Subscribe registers a listener invoked after every state change.
// Listeners run synchronously on the mutating call.
func (s *State) Subscribe(fn func(Change)) {
	s.listeners = append(s.listeners, fn)
}

func (s *State) emit(ch Change) {
	for _, fn := range s.listeners {
		fn(ch)
	}
}

// Metadata returns the map's coordinate metadata, nil before a map is
// loaded.
func (s *State) Metadata() *mapdata.MapMetadata { return s.metadata }

// Walls returns the wall collection in insertion order.
func (s *State) Walls() []mapdata.Wall { return s.walls }

// Doors returns the door collection in insertion order.
func (s *State) Doors() []mapdata.Door { return s.doors }

// Objects returns the placed-object collection in insertion order.
func (s *State) Objects() []mapdata.PlacedObject { return s.objects }

// Lights returns the light collection in insertion order.
func (s *State) Lights() []mapdata.Light { return s.lights }

// IsModified reports whether the map has unsaved changes.
func (s *State) IsModified() bool { return s.modified }

// MarkSaved clears the modified flag after a successful save.
func (s *State) MarkSaved() { s.modified = false }

// Grid returns a copy of the grid configuration. State is the sole mutator
// of the authoritative config.
func (s *State) Grid() grid.Config { return s.grid }

// SetGrid replaces the grid configuration. Grid settings are presentation
// state, not map data, so this does not touch the modified flag.
func (s *State) SetGrid(cfg grid.Config) {
	s.grid = cfg
	s.emit(Change{Op: OpGrid})
}

// AddWall appends a wall and marks the map modified. The id must be a
// caller-generated unique value (mapdata.NewID).
func (s *State) AddWall(w mapdata.Wall) {
	s.walls = append(s.walls, w)
	s.modified = true
	s.emit(Change{Op: OpAdd, Kind: KindWall, ID: w.ID})
}

// AddDoor appends a door and marks the map modified.
func (s *State) AddDoor(d mapdata.Door) {
	s.doors = append(s.doors, d)
	s.modified = true
	s.emit(Change{Op: OpAdd, Kind: KindDoor, ID: d.ID})
}

// AddObject appends a placed object and marks the map modified.
func (s *State) AddObject(o mapdata.PlacedObject) {
	s.objects = append(s.objects, o)
	s.modified = true
	s.emit(Change{Op: OpAdd, Kind: KindObject, ID: o.ID})
}

// AddLight appends a light and marks the map modified.
func (s *State) AddLight(l mapdata.Light) {
	s.lights = append(s.lights, l)
	s.modified = true
	s.emit(Change{Op: OpAdd, Kind: KindLight, ID: l.ID})
}

// UpdateWall applies mutate to the wall with the given id. An unknown id is
// not an error: the update is simply missed and the modified flag is left
// alone. Reports whether the wall was found.
func (s *State) UpdateWall(id string, mutate func(*mapdata.Wall)) bool {
	for i := range s.walls {
		if s.walls[i].ID == id {
			mutate(&s.walls[i])
			s.walls[i].ID = id
			s.modified = true
			s.emit(Change{Op: OpUpdate, Kind: KindWall, ID: id})
			return true
		}
	}
	return false
}

// UpdateDoor applies mutate to the door with the given id; no-op for an
// unknown id.
func (s *State) UpdateDoor(id string, mutate func(*mapdata.Door)) bool {
	for i := range s.doors {
		if s.doors[i].ID == id {
			mutate(&s.doors[i])
			s.doors[i].ID = id
			s.modified = true
			s.emit(Change{Op: OpUpdate, Kind: KindDoor, ID: id})
			return true
		}
	}
	return false
}

// UpdateObject applies mutate to the placed object with the given id; no-op
// for an unknown id.
func (s *State) UpdateObject(id string, mutate func(*mapdata.PlacedObject)) bool {
	for i := range s.objects {
		if s.objects[i].ID == id {
			mutate(&s.objects[i])
			s.objects[i].ID = id
			s.modified = true
			s.emit(Change{Op: OpUpdate, Kind: KindObject, ID: id})
			return true
		}
	}
	return false
}

// UpdateLight applies mutate to the light with the given id; no-op for an
// unknown id.
func (s *State) UpdateLight(id string, mutate func(*mapdata.Light)) bool {
	for i := range s.lights {
		if s.lights[i].ID == id {
			mutate(&s.lights[i])
			s.lights[i].ID = id
			s.modified = true
			s.emit(Change{Op: OpUpdate, Kind: KindLight, ID: id})
			return true
		}
	}
	return false
}

// RemoveObject removes the entity with the given id, searching walls, doors,
// objects, then lights, and removing the first match. The id is also dropped
// from the selection so selection never references a missing entity. The
// modified flag is set only when something was actually removed; an unknown
// id is a silent no-op.
func (s *State) RemoveObject(id string) bool {
	var kind EntityKind
	removed := false

	for i := range s.walls {
		if s.walls[i].ID == id {
			s.walls = append(s.walls[:i], s.walls[i+1:]...)
			kind, removed = KindWall, true
			break
		}
	}
	if !removed {
		for i := range s.doors {
			if s.doors[i].ID == id {
				s.doors = append(s.doors[:i], s.doors[i+1:]...)
				kind, removed = KindDoor, true
				break
			}
		}
	}
	if !removed {
		for i := range s.objects {
			if s.objects[i].ID == id {
				s.objects = append(s.objects[:i], s.objects[i+1:]...)
				kind, removed = KindObject, true
				break
			}
		}
	}
	if !removed {
		for i := range s.lights {
			if s.lights[i].ID == id {
				s.lights = append(s.lights[:i], s.lights[i+1:]...)
				kind, removed = KindLight, true
				break
			}
		}
	}

	if !removed {
		return false
	}

	delete(s.selected, id)
	s.modified = true
	s.emit(Change{Op: OpRemove, Kind: kind, ID: id})
	return true
}

// Contains reports whether any collection holds an entity with the given id.
func (s *State) Contains(id string) bool {
	for i := range s.walls {
		if s.walls[i].ID == id {
			return true
		}
	}
	for i := range s.doors {
		if s.doors[i].ID == id {
			return true
		}
	}
	for i := range s.objects {
		if s.objects[i].ID == id {
			return true
		}
	}
	for i := range s.lights {
		if s.lights[i].ID == id {
			return true
		}
	}
	return false
}

// SelectObject updates the selection. An empty id clears it. With
// addToSelection the id's membership is toggled; otherwise the selection is
// replaced by the single id. Ids that reference no entity are ignored so the
// selection invariant holds.
func (s *State) SelectObject(id string, addToSelection bool) {
	if id == "" {
		s.selected = make(map[string]struct{})
		s.emit(Change{Op: OpSelect})
		return
	}
	if !s.Contains(id) {
		return
	}

	if addToSelection {
		if _, ok := s.selected[id]; ok {
			delete(s.selected, id)
		} else {
			s.selected[id] = struct{}{}
		}
	} else {
		s.selected = map[string]struct{}{id: {}}
	}
	s.emit(Change{Op: OpSelect, ID: id})
}

// SelectObjects replaces the selection wholesale, dropping ids that
// reference no entity.
func (s *State) SelectObjects(ids []string) {
	s.selected = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if s.Contains(id) {
			s.selected[id] = struct{}{}
		}
	}
	s.emit(Change{Op: OpSelect})
}

// SelectedIDs returns the selection as a sorted slice.
func (s *State) SelectedIDs() []string {
	ids := make([]string, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// IsSelected reports whether the id is in the selection.
func (s *State) IsSelected(id string) bool {
	_, ok := s.selected[id]
	return ok
}

// ResetState clears all collections, the selection, the modified flag, and
// restores the default grid configuration. Used when switching maps.
func (s *State) ResetState() {
	s.metadata = nil
	s.walls = nil
	s.doors = nil
	s.objects = nil
	s.lights = nil
	s.selected = make(map[string]struct{})
	s.modified = false
	s.grid = grid.DefaultConfig()
	s.emit(Change{Op: OpReset})
}

// LoadMap wholesale-replaces the metadata and all collections, clearing the
// selection and the modified flag. The slices are copied so the caller's
// backing arrays are never aliased.
func (s *State) LoadMap(metadata *mapdata.MapMetadata, walls []mapdata.Wall, doors []mapdata.Door, objects []mapdata.PlacedObject, lights []mapdata.Light) {
	s.metadata = metadata
	s.walls = append([]mapdata.Wall(nil), walls...)
	s.doors = append([]mapdata.Door(nil), doors...)
	s.objects = append([]mapdata.PlacedObject(nil), objects...)
	s.lights = append([]mapdata.Light(nil), lights...)
	s.selected = make(map[string]struct{})
	s.modified = false
	s.emit(Change{Op: OpLoad})
}

// MapData snapshots the state into a MapData aggregate for the codec or the
// collision detector.
func (s *State) MapData() *mapdata.MapData {
	return &mapdata.MapData{
		Metadata:    s.metadata,
		Walls:       append([]mapdata.Wall(nil), s.walls...),
		Doors:       append([]mapdata.Door(nil), s.doors...),
		Objects:     append([]mapdata.PlacedObject(nil), s.objects...),
		Lights:      append([]mapdata.Light(nil), s.lights...),
		Environment: mapdata.DefaultEnvironment(),
	}
}
