package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mixtli/dungeon-lab-sub011/server/core"
	"github.com/mixtli/dungeon-lab-sub011/shared/mapdata"
	"github.com/mixtli/dungeon-lab-sub011/shared/protocol"
)

func main() {
	configPath := flag.String("config", "server.yaml", "Path to YAML config file")
	port := flag.Uint("port", 0, "Server port (overrides config)")
	tickRate := flag.Int("tickrate", 0, "Server tick rate (overrides config)")
	name := flag.String("name", "", "Table display name (overrides config)")
	mapsDir := flag.String("maps", "", "Directory of .uvtt/.dd2vtt maps (overrides config)")
	mapName := flag.String("map", "", "Active map stem (overrides config, default: first alphabetically)")
	flag.Parse()

	cfg, err := core.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *tickRate != 0 {
		cfg.TickRate = *tickRate
	}
	if *name != "" {
		cfg.Name = *name
	}
	if *mapsDir != "" {
		cfg.MapsDir = *mapsDir
	}
	if *mapName != "" {
		cfg.Map = *mapName
	}

	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register components: %v", err)
	}

	maps, names, err := core.LoadAllMaps(os.DirFS("."), cfg.MapsDir)
	if err != nil {
		log.Fatalf("Failed to load maps: %v", err)
	}
	active := cfg.Map
	if active == "" {
		active = names[0]
	}
	activeMap, ok := maps[active]
	if !ok {
		log.Fatalf("Map %q not found in %s (have: %v)", active, cfg.MapsDir, names)
	}
	log.Printf("Loaded %d maps from %s, active: %q", len(names), cfg.MapsDir, active)

	server := core.NewServer(cfg, activeMap)

	if cfg.WatchMaps {
		watcher, err := core.WatchMaps(cfg.MapsDir, func(m *mapdata.MapData) {
			// Only the active map swaps the live geometry; other files just
			// refresh the library for the next map switch.
			maps[m.Name] = m
			if m.Name == server.MapName() {
				server.SetActiveMap(m)
			}
		})
		if err != nil {
			log.Printf("Map watching disabled: %v", err)
		} else {
			defer watcher.Close()
		}
	}

	if cfg.MasterURL != "" {
		reg := core.NewRegistration(cfg.MasterURL, server)
		reg.Start()
		defer reg.Stop()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down server...")
		server.Stop()
		os.Exit(0)
	}()

	log.Printf("Starting encounter server %q on port %d (tick rate: %d/s, map: %s)",
		cfg.Name, cfg.Port, cfg.TickRate, active)
	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
