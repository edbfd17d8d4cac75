// Command uvttool inspects, converts, and stores UVTT map documents.
//
//	uvttool inspect <file.uvtt>           print a geometry summary
//	uvttool convert <file.tmx> [-o out]   convert a Tiled map to UVTT
//	uvttool normalize <file> [-o out]     re-encode a legacy document canonically
//	uvttool lib save <file>               store a map in the local library
//	uvttool lib list                      list stored maps
//	uvttool lib export <name> [-o out]    write a stored map back to disk
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/mixtli/dungeon-lab-sub011/shared/mapdata"
	"github.com/mixtli/dungeon-lab-sub011/uvtt"
)

func main() {
	log.SetFlags(0)

	flag.Usage = usage
	flag.Parse()
	args := flag.Args()
	if len(args) < 1 {
		usage()
		os.Exit(2)
	}

	var err error
	switch args[0] {
	case "inspect":
		err = runInspect(args[1:])
	case "convert":
		err = runConvert(args[1:])
	case "normalize":
		err = runNormalize(args[1:])
	case "lib":
		err = runLib(args[1:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("uvttool: %v", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage:
  uvttool inspect <file.uvtt|file.dd2vtt>
  uvttool convert <file.tmx> [-o out.uvtt]
  uvttool normalize <file> [-o out]
  uvttool lib save <file>
  uvttool lib list
  uvttool lib export <name> [-o out.uvtt]`)
}

func loadMap(path string) (*mapdata.MapData, error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	return uvtt.ReadFile(os.DirFS(dir), base)
}

func runInspect(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("inspect needs exactly one file")
	}
	m, err := loadMap(args[0])
	if err != nil {
		return err
	}

	meta := m.Metadata
	fmt.Printf("map:      %s\n", m.Name)
	fmt.Printf("grid:     %dx%d cells at %.0f units/cell, origin (%.1f, %.1f)\n",
		meta.Dimensions.Width, meta.Dimensions.Height,
		meta.WorldUnitsPerGridCell, meta.Offset.X, meta.Offset.Y)
	fmt.Printf("image:    %dx%d px (%d bytes base64 payload)\n",
		meta.ImageDimensions.Width, meta.ImageDimensions.Height, len(m.Image))
	fmt.Printf("walls:    %d (%d edges)\n", len(m.Walls), wallEdges(m))
	fmt.Printf("doors:    %d (%d closed)\n", len(m.Doors), closedDoors(m))
	fmt.Printf("lights:   %d\n", len(m.Lights))
	fmt.Printf("ambient:  %s (baked: %v)\n", m.Environment.AmbientLight, m.Environment.BakedLighting)
	return nil
}

func wallEdges(m *mapdata.MapData) int {
	edges := 0
	for _, w := range m.Walls {
		if pts := len(w.Points) / 2; pts > 1 {
			edges += pts - 1
		}
	}
	return edges
}

func closedDoors(m *mapdata.MapData) int {
	n := 0
	for _, d := range m.Doors {
		if d.Closed {
			n++
		}
	}
	return n
}

func runConvert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	out := fs.String("o", "", "Output path (default: <sanitized map name>.uvtt)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("convert needs exactly one .tmx file")
	}

	path := fs.Arg(0)
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	m, err := mapdata.LoadTMX(os.DirFS(dir), base)
	if err != nil {
		return err
	}

	return writeMap(m, *out)
}

func runNormalize(args []string) error {
	fs := flag.NewFlagSet("normalize", flag.ExitOnError)
	out := fs.String("o", "", "Output path (default: <sanitized map name>.uvtt)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("normalize needs exactly one file")
	}

	m, err := loadMap(fs.Arg(0))
	if err != nil {
		return err
	}
	return writeMap(m, *out)
}

func writeMap(m *mapdata.MapData, out string) error {
	if out == "" {
		out = uvtt.ExportFilename(m.Name, uvtt.ExtUVTT)
	}
	data, err := uvtt.Marshal(m)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	log.Printf("wrote %s (%d walls, %d doors, %d lights)", out, len(m.Walls), len(m.Doors), len(m.Lights))
	return nil
}
