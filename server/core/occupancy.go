package core

import (
	"github.com/solarlune/resolv"

	"github.com/mixtli/dungeon-lab-sub011/shared/geometry"
	"github.com/mixtli/dungeon-lab-sub011/shared/mapdata"
)

const tagToken = "token"

// Occupancy tracks which grid cells hold tokens using a resolv space. Token
// rects are inset by 2% of the cell size so tokens in adjacent cells never
// touch while the rect stays positive for any grid scale. Wall collision is
// handled separately by the collision package; this space only answers "is
// that cell already taken".
type Occupancy struct {
	space  *resolv.Space
	tokens map[string]*resolv.Object
	scale  float64
	offset geometry.Point
}

// NewOccupancy builds an empty occupancy space sized to the map. Maps
// without metadata get a nil space; every check then reports free, matching
// the fail-open collision policy.
func NewOccupancy(m *mapdata.MapData) *Occupancy {
	o := &Occupancy{tokens: make(map[string]*resolv.Object)}
	if m == nil || m.Metadata == nil || m.Metadata.WorldUnitsPerGridCell <= 0 {
		return o
	}

	meta := m.Metadata
	o.scale = meta.WorldUnitsPerGridCell
	o.offset = meta.Offset

	w := int(float64(meta.Dimensions.Width) * o.scale)
	h := int(float64(meta.Dimensions.Height) * o.scale)
	if w <= 0 || h <= 0 {
		return o
	}
	cell := int(o.scale)
	if cell <= 0 {
		cell = 1
	}
	o.space = resolv.NewSpace(w, h, cell, cell)
	return o
}

func (o *Occupancy) cellRect(cell geometry.Point) (x, y, w, h float64) {
	world := geometry.GridToWorld(cell, o.scale, o.offset)
	inset := o.scale * 0.02
	return world.X + inset, world.Y + inset, o.scale - 2*inset, o.scale - 2*inset
}

// Add places a token in its cell. No-op when the space is absent.
func (o *Occupancy) Add(tokenID string, cell geometry.Point) {
	if o.space == nil {
		return
	}
	x, y, w, h := o.cellRect(cell)
	obj := resolv.NewObject(x, y, w, h, tagToken)
	o.space.Add(obj)
	o.tokens[tokenID] = obj
}

// Remove drops a token from the space.
func (o *Occupancy) Remove(tokenID string) {
	obj, ok := o.tokens[tokenID]
	if !ok {
		return
	}
	o.space.Remove(obj)
	delete(o.tokens, tokenID)
}

// Move commits a token to a new cell.
func (o *Occupancy) Move(tokenID string, cell geometry.Point) {
	obj, ok := o.tokens[tokenID]
	if !ok {
		return
	}
	x, y, _, _ := o.cellRect(cell)
	obj.X = x
	obj.Y = y
	obj.Update()
}

// Occupied reports whether moving the token to the cell would overlap
// another token. Unknown tokens and absent spaces report free.
func (o *Occupancy) Occupied(tokenID string, cell geometry.Point) bool {
	obj, ok := o.tokens[tokenID]
	if !ok || o.space == nil {
		return false
	}
	x, y, _, _ := o.cellRect(cell)
	check := obj.Check(x-obj.X, y-obj.Y, tagToken)
	return check != nil && len(check.ObjectsByTags(tagToken)) > 0
}

// Free reports whether the cell holds no token at all, used when choosing a
// spawn cell. Absent spaces report free.
func (o *Occupancy) Free(cell geometry.Point) bool {
	if o.space == nil {
		return true
	}
	x, y, w, h := o.cellRect(cell)
	probe := resolv.NewObject(x, y, w, h)
	o.space.Add(probe)
	check := probe.Check(0, 0, tagToken)
	o.space.Remove(probe)
	return check == nil || len(check.ObjectsByTags(tagToken)) == 0
}
