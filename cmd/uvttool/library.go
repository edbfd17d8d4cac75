package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"sort"

	"github.com/quasilyte/gdata"

	"github.com/mixtli/dungeon-lab-sub011/shared/mapdata"
	"github.com/mixtli/dungeon-lab-sub011/uvtt"
)

// Library stores UVTT documents in the OS-appropriate app data directory so
// an operator can keep a personal map collection outside any maps dir.
type Library struct {
	manager *gdata.Manager
}

const libraryIndexItem = "library-index"

func openLibrary() (*Library, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: "dungeonlab",
	})
	if err != nil {
		return nil, fmt.Errorf("open map library: %w", err)
	}
	return &Library{manager: m}, nil
}

func (l *Library) index() ([]string, error) {
	data, err := l.manager.LoadItem(libraryIndexItem)
	if err != nil || data == nil {
		return nil, nil
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("parse library index: %w", err)
	}
	return names, nil
}

func (l *Library) saveIndex(names []string) error {
	sort.Strings(names)
	data, err := json.Marshal(names)
	if err != nil {
		return err
	}
	return l.manager.SaveItem(libraryIndexItem, data)
}

// Save stores a map under its sanitized name.
func (l *Library) Save(m *mapdata.MapData) error {
	name := uvtt.SanitizeFilename(m.Name)
	data, err := uvtt.Marshal(m)
	if err != nil {
		return err
	}
	if err := l.manager.SaveItem("map-"+name, data); err != nil {
		return fmt.Errorf("save map %s: %w", name, err)
	}

	names, err := l.index()
	if err != nil {
		return err
	}
	for _, n := range names {
		if n == name {
			return nil
		}
	}
	return l.saveIndex(append(names, name))
}

// Load fetches a stored map by name.
func (l *Library) Load(name string) (*mapdata.MapData, error) {
	data, err := l.manager.LoadItem("map-" + name)
	if err != nil {
		return nil, fmt.Errorf("load map %s: %w", name, err)
	}
	if data == nil {
		return nil, fmt.Errorf("map %s not in library", name)
	}
	m, err := uvtt.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	m.Name = name
	return m, nil
}

func runLib(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("lib needs a subcommand: save, list, export")
	}

	lib, err := openLibrary()
	if err != nil {
		return err
	}

	switch args[0] {
	case "save":
		if len(args) != 2 {
			return fmt.Errorf("lib save needs exactly one file")
		}
		m, err := loadMap(args[1])
		if err != nil {
			return err
		}
		if err := lib.Save(m); err != nil {
			return err
		}
		log.Printf("saved %q to library", m.Name)
		return nil

	case "list":
		names, err := lib.index()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			log.Println("library is empty")
			return nil
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return nil

	case "export":
		fs := flag.NewFlagSet("lib export", flag.ExitOnError)
		out := fs.String("o", "", "Output path (default: <name>.uvtt)")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return fmt.Errorf("lib export needs exactly one map name")
		}
		m, err := lib.Load(fs.Arg(0))
		if err != nil {
			return err
		}
		return writeMap(m, *out)

	default:
		return fmt.Errorf("unknown lib subcommand %q", args[0])
	}
}
