// Package uvtt implements the Universal VTT interchange codec: the
// bidirectional mapping between the canonical world-unit entity model and
// the UVTT/DD2VTT JSON document used to move maps between virtual-tabletop
// tools. All legacy and pixel-space concerns live here and nowhere else;
// the rest of the repository only ever sees mapdata types.
//
// On the wire a world unit is a map pixel: pixels_per_grid carries the grid
// scale, map_origin the coordinate offset, and wall/portal/light positions
// are absolute. Decoding takes those coordinates 1:1 into world units.
package uvtt

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"math"
	"path/filepath"
	"strings"

	"github.com/mixtli/dungeon-lab-sub011/shared/geometry"
	"github.com/mixtli/dungeon-lab-sub011/shared/mapdata"
)

// FormatVersion is stamped into the format field on encode. Decode accepts
// any numeric format; the generations only differ in fields this codec
// already tolerates.
const FormatVersion = 1.0

// Software and Creator identify documents produced by this codec.
const (
	Software = "DungeonLab"
	Creator  = "DungeonLab Map Editor"
)

// Document is the UVTT JSON document layout.
type Document struct {
	Format      float64            `json:"format"`
	Resolution  Resolution         `json:"resolution"`
	LineOfSight [][]geometry.Point `json:"line_of_sight"`
	Portals     []Portal           `json:"portals"`
	Lights      []Light            `json:"lights"`
	Environment Environment        `json:"environment"`
	Image       string             `json:"image,omitempty"`
	Software    string             `json:"software,omitempty"`
	Creator     string             `json:"creator,omitempty"`
}

// Resolution carries the coordinate system: origin offset, map size in grid
// cells, and the pixel-per-grid-cell scale.
type Resolution struct {
	MapOrigin     geometry.Point `json:"map_origin"`
	MapSize       geometry.Point `json:"map_size"`
	PixelsPerGrid float64        `json:"pixels_per_grid"`
}

// Portal is a door on the wire: center position, absolute bounds endpoints,
// and the open/closed and freestanding flags.
type Portal struct {
	Position     geometry.Point   `json:"position"`
	Bounds       []geometry.Point `json:"bounds"`
	Rotation     float64          `json:"rotation"`
	Closed       bool             `json:"closed"`
	Freestanding bool             `json:"freestanding"`
}

// Light is a light source on the wire with a packed RRGGBBAA color.
type Light struct {
	Position  geometry.Point `json:"position"`
	Range     float64        `json:"range"`
	Intensity float64        `json:"intensity"`
	Color     string         `json:"color"`
	Shadows   bool           `json:"shadows"`
}

// Environment is the map-level lighting block.
type Environment struct {
	BakedLighting bool   `json:"baked_lighting"`
	AmbientLight  string `json:"ambient_light"`
}

// Encode maps the canonical model to a UVTT document. Walls become one
// line_of_sight polyline each; doors become portals with bounds translated
// to absolute coordinates; light colors are packed with their opacity.
// Placed objects have no UVTT representation and are not exported.
func Encode(m *mapdata.MapData) *Document {
	doc := &Document{
		Format:   FormatVersion,
		Software: Software,
		Creator:  Creator,
		Image:    m.Image,
		Environment: Environment{
			BakedLighting: m.Environment.BakedLighting,
			AmbientLight:  m.Environment.AmbientLight,
		},
		LineOfSight: make([][]geometry.Point, 0, len(m.Walls)),
		Portals:     make([]Portal, 0, len(m.Doors)),
		Lights:      make([]Light, 0, len(m.Lights)),
	}
	if doc.Environment.AmbientLight == "" {
		doc.Environment.AmbientLight = "#ffffff"
	}

	if m.Metadata != nil {
		doc.Resolution = Resolution{
			MapOrigin: m.Metadata.Offset,
			MapSize: geometry.Point{
				X: float64(m.Metadata.Dimensions.Width),
				Y: float64(m.Metadata.Dimensions.Height),
			},
			PixelsPerGrid: m.Metadata.WorldUnitsPerGridCell,
		}
	}

	for _, wall := range m.Walls {
		doc.LineOfSight = append(doc.LineOfSight, wall.Polyline())
	}

	for _, door := range m.Doors {
		bounds := make([]geometry.Point, len(door.Bounds))
		for i, b := range door.Bounds {
			bounds[i] = door.Position.Add(b)
		}
		doc.Portals = append(doc.Portals, Portal{
			Position:     door.Position,
			Bounds:       bounds,
			Rotation:     door.Rotation,
			Closed:       door.Closed,
			Freestanding: door.Freestanding,
		})
	}

	for _, light := range m.Lights {
		doc.Lights = append(doc.Lights, Light{
			Position:  light.Position,
			Range:     light.Range,
			Intensity: light.Intensity,
			Color:     PackColor(light.Color, light.Opacity),
			Shadows:   light.Shadows,
		})
	}

	return doc
}

// Decode maps a UVTT document back to the canonical model. Entity ids are
// regenerated (the interchange format carries none), every imported wall
// blocks movement, and light opacities below MinOpacity are floored.
func Decode(doc *Document) *mapdata.MapData {
	m := &mapdata.MapData{
		Metadata: &mapdata.MapMetadata{
			WorldUnitsPerGridCell: doc.Resolution.PixelsPerGrid,
			Offset:                doc.Resolution.MapOrigin,
			Dimensions: mapdata.GridDimensions{
				Width:  int(math.Round(doc.Resolution.MapSize.X)),
				Height: int(math.Round(doc.Resolution.MapSize.Y)),
			},
			ImageDimensions: mapdata.PixelDimensions{
				Width:  int(math.Round(doc.Resolution.MapSize.X * doc.Resolution.PixelsPerGrid)),
				Height: int(math.Round(doc.Resolution.MapSize.Y * doc.Resolution.PixelsPerGrid)),
			},
		},
		Environment: mapdata.Environment{
			BakedLighting: doc.Environment.BakedLighting,
			AmbientLight:  doc.Environment.AmbientLight,
		},
		Image: doc.Image,
	}
	if m.Environment.AmbientLight == "" {
		m.Environment.AmbientLight = "#ffffff"
	}

	for _, polyline := range doc.LineOfSight {
		flat := make([]float64, 0, len(polyline)*2)
		for _, p := range polyline {
			flat = append(flat, p.X, p.Y)
		}
		m.Walls = append(m.Walls, mapdata.Wall{
			ID:             mapdata.NewID(),
			Points:         flat,
			BlocksMovement: true,
			Visible:        true,
		})
	}

	for _, portal := range doc.Portals {
		bounds := make([]geometry.Point, len(portal.Bounds))
		for i, b := range portal.Bounds {
			bounds[i] = b.Sub(portal.Position)
		}
		m.Doors = append(m.Doors, mapdata.Door{
			ID:           mapdata.NewID(),
			Position:     portal.Position,
			Rotation:     portal.Rotation,
			Bounds:       bounds,
			Closed:       portal.Closed,
			Freestanding: portal.Freestanding,
			Visible:      true,
		})
	}

	for _, light := range doc.Lights {
		color, opacity := ParseColor(light.Color)
		m.Lights = append(m.Lights, mapdata.Light{
			ID:        mapdata.NewID(),
			Position:  light.Position,
			Range:     light.Range,
			Intensity: light.Intensity,
			Color:     color,
			Opacity:   opacity,
			Shadows:   light.Shadows,
			Visible:   true,
		})
	}

	return m
}

// Marshal encodes the map and serializes it to UVTT JSON.
func Marshal(m *mapdata.MapData) ([]byte, error) {
	data, err := json.Marshal(Encode(m))
	if err != nil {
		return nil, fmt.Errorf("marshal uvtt: %w", err)
	}
	return data, nil
}

// Unmarshal parses UVTT JSON and decodes it into the canonical model.
func Unmarshal(data []byte) (*mapdata.MapData, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal uvtt: %w", err)
	}
	return Decode(&doc), nil
}

// ReadFile loads a .uvtt/.dd2vtt document from fsys, naming the map after
// the file stem.
func ReadFile(fsys fs.FS, path string) (*mapdata.MapData, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read uvtt %s: %w", path, err)
	}
	m, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("parse uvtt %s: %w", path, err)
	}
	base := filepath.Base(path)
	m.Name = strings.TrimSuffix(base, filepath.Ext(base))
	return m, nil
}
