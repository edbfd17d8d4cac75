// Package mapdata defines the canonical in-memory map entity model shared by
// the editor, the collision detector, the UVTT codec, and the encounter
// server. All positions are stored in world units; grid-cell and pixel
// coordinates exist only at the conversion boundaries.
package mapdata

import (
	"github.com/google/uuid"

	"github.com/mixtli/dungeon-lab-sub011/shared/geometry"
)

// Wall is an ordered polyline of world-unit points stored flat as
// [x1, y1, x2, y2, ...]. Consecutive point pairs form collision edges.
type Wall struct {
	ID             string    `json:"id"`
	Points         []float64 `json:"points"`
	BlocksMovement bool      `json:"blocksMovement"`
	Visible        bool      `json:"visible"`
	Locked         bool      `json:"locked"`
}

// Door is a pivoting or sliding opening. Bounds are stored relative to
// Position; Closed gates whether the door currently blocks movement and
// vision. Freestanding doors are decorative and never block.
type Door struct {
	ID           string           `json:"id"`
	Position     geometry.Point   `json:"position"`
	Rotation     float64          `json:"rotation"`
	Bounds       []geometry.Point `json:"bounds"`
	Closed       bool             `json:"closed"`
	Freestanding bool             `json:"freestanding"`
	Visible      bool             `json:"visible"`
	Locked       bool             `json:"locked"`
}

// PlacedObject is a generic polygon obstacle. Bounds are polygon vertices
// relative to Position.
type PlacedObject struct {
	ID             string           `json:"id"`
	Position       geometry.Point   `json:"position"`
	Bounds         []geometry.Point `json:"bounds"`
	BlocksMovement bool             `json:"blocksMovement"`
	Visible        bool             `json:"visible"`
	Locked         bool             `json:"locked"`
}

// Light is a point light source. Color is a "#rrggbb" string with Opacity
// kept separately in [0, 1]; the packed RRGGBBAA interchange form exists only
// inside the uvtt codec.
type Light struct {
	ID        string         `json:"id"`
	Position  geometry.Point `json:"position"`
	Range     float64        `json:"range"`
	Intensity float64        `json:"intensity"`
	Color     string         `json:"color"`
	Opacity   float64        `json:"opacity"`
	Shadows   bool           `json:"shadows"`
	Visible   bool           `json:"visible"`
	Locked    bool           `json:"locked"`
}

// GridDimensions is a map size in grid cells.
type GridDimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// PixelDimensions is a raster image size in pixels.
type PixelDimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// MapMetadata describes a map's coordinate system. WorldUnitsPerGridCell
// must be positive; callers treat non-positive scale as missing data.
type MapMetadata struct {
	WorldUnitsPerGridCell float64         `json:"worldUnitsPerGridCell"`
	Offset                geometry.Point  `json:"offset"`
	Dimensions            GridDimensions  `json:"dimensions"`
	ImageDimensions       PixelDimensions `json:"imageDimensions"`
}

// Environment holds map-level lighting settings carried through the
// interchange format.
type Environment struct {
	BakedLighting bool   `json:"bakedLighting"`
	AmbientLight  string `json:"ambientLight"`
}

// MapData aggregates one map's geometry: the coordinate metadata plus the
// four entity collections. Image is an opaque base64 payload preserved
// across the interchange boundary; this core never decodes it.
type MapData struct {
	Name        string         `json:"name"`
	Metadata    *MapMetadata   `json:"metadata"`
	Walls       []Wall         `json:"walls"`
	Doors       []Door         `json:"doors"`
	Objects     []PlacedObject `json:"objects"`
	Lights      []Light        `json:"lights"`
	Environment Environment    `json:"environment"`
	Image       string         `json:"image,omitempty"`
}

// DefaultEnvironment matches the interchange defaults: no baked lighting,
// white ambient.
func DefaultEnvironment() Environment {
	return Environment{BakedLighting: false, AmbientLight: "#ffffff"}
}

// NewID returns a fresh caller-generated entity id (UUIDv4). Entity ids must
// be unique within a map; update/remove by a duplicated id is undefined.
func NewID() string {
	return uuid.NewString()
}

// Polyline returns the wall's points as a slice of world-unit Points.
// A trailing unpaired value is ignored.
func (w Wall) Polyline() []geometry.Point {
	pts := make([]geometry.Point, 0, len(w.Points)/2)
	for i := 0; i+1 < len(w.Points); i += 2 {
		pts = append(pts, geometry.Point{X: w.Points[i], Y: w.Points[i+1]})
	}
	return pts
}

// BlockingEdge returns the absolute world-unit segment a closed door blocks,
// spanning its first two bounds points translated by its position. ok is
// false for doors with fewer than two bounds points, which contribute no
// edges.
func (d Door) BlockingEdge() (start, end geometry.Point, ok bool) {
	if len(d.Bounds) < 2 {
		return geometry.Point{}, geometry.Point{}, false
	}
	return d.Position.Add(d.Bounds[0]), d.Position.Add(d.Bounds[1]), true
}

// AbsoluteBounds returns the object's polygon translated from
// polygon-relative to absolute world coordinates.
func (o PlacedObject) AbsoluteBounds() []geometry.Point {
	abs := make([]geometry.Point, len(o.Bounds))
	for i, p := range o.Bounds {
		abs[i] = o.Position.Add(p)
	}
	return abs
}
