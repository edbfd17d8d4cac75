package mapdata

import (
	"fmt"
	"io/fs"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lafriks/go-tiled"

	"github.com/mixtli/dungeon-lab-sub011/shared/geometry"
)

// Object-group layer names recognized by the TMX importer.
const (
	tmxLayerWalls   = "walls"
	tmxLayerDoors   = "doors"
	tmxLayerObjects = "objects"
	tmxLayerLights  = "lights"
)

// LoadTMX parses a Tiled TMX file and builds a MapData from its object
// layers: polylines in a "walls" layer become walls, two-point polylines in
// a "doors" layer become doors, polygons in an "objects" layer become placed
// obstacles, and point objects in a "lights" layer become lights. TMX pixel
// coordinates map 1:1 onto world units, with the tile width as the grid
// scale. It takes an fs.FS so callers can pass embed.FS or os.DirFS.
func LoadTMX(fsys fs.FS, tmxPath string) (*MapData, error) {
	tmxMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	m := &MapData{
		Name: strings.TrimSuffix(filepath.Base(tmxPath), ".tmx"),
		Metadata: &MapMetadata{
			WorldUnitsPerGridCell: float64(tmxMap.TileWidth),
			Dimensions:            GridDimensions{Width: tmxMap.Width, Height: tmxMap.Height},
			ImageDimensions: PixelDimensions{
				Width:  tmxMap.Width * tmxMap.TileWidth,
				Height: tmxMap.Height * tmxMap.TileHeight,
			},
		},
		Environment: DefaultEnvironment(),
	}

	for _, og := range tmxMap.ObjectGroups {
		switch og.Name {
		case tmxLayerWalls:
			for _, o := range og.Objects {
				wall := tmxWall(o)
				if wall != nil {
					m.Walls = append(m.Walls, *wall)
				}
			}
		case tmxLayerDoors:
			for _, o := range og.Objects {
				door := tmxDoor(o)
				if door != nil {
					m.Doors = append(m.Doors, *door)
				}
			}
		case tmxLayerObjects:
			for _, o := range og.Objects {
				obj := tmxObject(o)
				if obj != nil {
					m.Objects = append(m.Objects, *obj)
				}
			}
		case tmxLayerLights:
			for _, o := range og.Objects {
				m.Lights = append(m.Lights, tmxLight(o))
			}
		}
	}

	return m, nil
}

// tmxWall converts a polyline object to a wall. Objects without a polyline
// are skipped.
func tmxWall(o *tiled.Object) *Wall {
	pts := tmxPoints(o)
	if len(pts) < 2 {
		return nil
	}
	flat := make([]float64, 0, len(pts)*2)
	for _, p := range pts {
		flat = append(flat, p.X, p.Y)
	}
	return &Wall{
		ID:             NewID(),
		Points:         flat,
		BlocksMovement: true,
		Visible:        true,
	}
}

// tmxDoor converts a two-point polyline to a door. Position is the segment
// midpoint, bounds are the endpoints relative to it, and rotation is derived
// from the endpoints when the object carries none.
func tmxDoor(o *tiled.Object) *Door {
	pts := tmxPoints(o)
	if len(pts) < 2 {
		return nil
	}
	start, end := pts[0], pts[1]
	center := geometry.Point{X: (start.X + end.X) / 2, Y: (start.Y + end.Y) / 2}

	rotation := o.Rotation
	if rotation == 0 {
		rotation = math.Atan2(end.Y-start.Y, end.X-start.X)
	}

	return &Door{
		ID:           NewID(),
		Position:     center,
		Rotation:     rotation,
		Bounds:       []geometry.Point{start.Sub(center), end.Sub(center)},
		Closed:       tmxBool(o, "closed", true),
		Freestanding: tmxBool(o, "freestanding", false),
		Visible:      true,
	}
}

// tmxObject converts a polygon object to a placed obstacle with vertices
// relative to the object's TMX position.
func tmxObject(o *tiled.Object) *PlacedObject {
	if len(o.Polygons) == 0 || o.Polygons[0].Points == nil {
		return nil
	}
	position := geometry.Point{X: o.X, Y: o.Y}
	bounds := make([]geometry.Point, 0, len(*o.Polygons[0].Points))
	for _, p := range *o.Polygons[0].Points {
		bounds = append(bounds, geometry.Point{X: p.X, Y: p.Y})
	}
	return &PlacedObject{
		ID:             NewID(),
		Position:       position,
		Bounds:         bounds,
		BlocksMovement: tmxBool(o, "blocksMovement", true),
		Visible:        true,
	}
}

// tmxLight converts a point object to a light using its custom properties.
func tmxLight(o *tiled.Object) Light {
	rng := tmxFloat(o, "range", 4*60)
	color := o.Properties.GetString("color")
	if color == "" {
		color = "#ffffff"
	}
	return Light{
		ID:        NewID(),
		Position:  geometry.Point{X: o.X, Y: o.Y},
		Range:     rng,
		Intensity: tmxFloat(o, "intensity", 1),
		Color:     color,
		Opacity:   tmxFloat(o, "opacity", 1),
		Shadows:   tmxBool(o, "shadows", true),
		Visible:   true,
	}
}

// tmxPoints returns an object's first polyline or polygon as absolute
// world-unit points (object position plus point offsets).
func tmxPoints(o *tiled.Object) []geometry.Point {
	var raw *tiled.Points
	if len(o.PolyLines) > 0 && o.PolyLines[0].Points != nil {
		raw = o.PolyLines[0].Points
	} else if len(o.Polygons) > 0 && o.Polygons[0].Points != nil {
		raw = o.Polygons[0].Points
	}
	if raw == nil {
		return nil
	}
	pts := make([]geometry.Point, 0, len(*raw))
	for _, p := range *raw {
		pts = append(pts, geometry.Point{X: o.X + p.X, Y: o.Y + p.Y})
	}
	return pts
}

func tmxBool(o *tiled.Object, name string, def bool) bool {
	switch strings.ToLower(o.Properties.GetString(name)) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return def
	}
}

func tmxFloat(o *tiled.Object, name string, def float64) float64 {
	s := o.Properties.GetString(name)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}
