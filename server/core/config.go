package core

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mixtli/dungeon-lab-sub011/shared/netconfig"
)

// Config is the encounter server configuration, loadable from a YAML file
// and overridable by flags in main.
type Config struct {
	Port       uint   `yaml:"port"`
	TickRate   int    `yaml:"tickRate"`
	Name       string `yaml:"name"`
	Version    string `yaml:"version"` // required client version, empty = accept any
	MaxPlayers int    `yaml:"maxPlayers"`

	MapsDir   string `yaml:"mapsDir"`
	Map       string `yaml:"map"` // active map stem, empty = first alphabetically
	WatchMaps bool   `yaml:"watchMaps"`

	// CheckOccupancy rejects moves into a cell already holding a token.
	CheckOccupancy bool `yaml:"checkOccupancy"`

	MasterURL string `yaml:"masterUrl"` // empty = don't register
	Address   string `yaml:"address"`   // advertised address for the master
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Port:           netconfig.DefaultPort,
		TickRate:       netconfig.DefaultTickRate,
		Name:           "Dungeon Lab Table",
		MaxPlayers:     netconfig.DefaultMaxPlayers,
		MapsDir:        "maps",
		WatchMaps:      true,
		CheckOccupancy: true,
	}
}

// LoadConfig reads a YAML config file over the defaults. A missing file is
// not an error — the defaults are returned as-is.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.TickRate <= 0 {
		cfg.TickRate = netconfig.DefaultTickRate
	}
	if cfg.MaxPlayers <= 0 {
		cfg.MaxPlayers = netconfig.DefaultMaxPlayers
	}
	return cfg, nil
}
