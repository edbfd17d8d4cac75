package core

import (
	"log"
	"sync"

	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/yohamta/donburi"

	"github.com/mixtli/dungeon-lab-sub011/collision"
	"github.com/mixtli/dungeon-lab-sub011/shared/geometry"
	"github.com/mixtli/dungeon-lab-sub011/shared/mapdata"
	"github.com/mixtli/dungeon-lab-sub011/shared/messages"
	"github.com/mixtli/dungeon-lab-sub011/shared/netcomponents"
	"github.com/mixtli/dungeon-lab-sub011/shared/netconfig"
)

// session tracks one connected client's token.
type session struct {
	entity  donburi.Entity
	tokenID string
	name    string
	cell    geometry.Point // last committed grid cell
	joined  bool
}

// Server is the authoritative encounter runtime: it owns the token world,
// validates every proposed move against the active map's geometry, and
// syncs committed state to all clients.
type Server struct {
	world     donburi.World
	loop      *GameLoop
	transport *transports.WsServerTransport
	cfg       Config

	mu        sync.RWMutex
	clients   map[*router.NetworkClient]*session
	activeMap *mapdata.MapData
	occupancy *Occupancy

	stateEntity donburi.Entity
}

// NewServer creates an encounter server for the given active map.
func NewServer(cfg Config, activeMap *mapdata.MapData) *Server {
	world := donburi.NewWorld()

	s := &Server{
		world:     world,
		cfg:       cfg,
		clients:   make(map[*router.NetworkClient]*session),
		activeMap: activeMap,
		occupancy: NewOccupancy(activeMap),
	}
	s.loop = NewGameLoop(s, cfg.TickRate)

	if activeMap != nil && len(activeMap.Walls) == 0 && len(activeMap.Doors) == 0 && len(activeMap.Objects) == 0 {
		// Collision fails open on missing geometry; make that visible.
		log.Printf("Map %q has no blocking geometry, all moves will be allowed", activeMap.Name)
	}

	// Set up the world for esync
	srvsync.UseEsync(world)

	s.spawnEncounterState()
	s.setupRouterCallbacks()

	return s
}

// Start begins the server on the configured port.
func (s *Server) Start() error {
	// Start game loop
	go s.loop.Run()

	// Create and start WebSocket transport
	s.transport = transports.NewWsServerTransport(s.cfg.Port, "", nil)
	return s.transport.Start()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() {
	s.loop.Stop()
}

// spawnEncounterState creates the singleton synced entity carrying
// table-wide state.
func (s *Server) spawnEncounterState() {
	entity := s.world.Create(netcomponents.NetEncounterState)
	entry := s.world.Entry(entity)
	netcomponents.NetEncounterState.Set(entry, &netcomponents.NetEncounterStateData{
		MapName: s.mapName(),
		Phase:   netcomponents.PhaseLobby,
	})

	if err := srvsync.NetworkSync(s.world, &entity, netcomponents.NetEncounterState); err != nil {
		log.Printf("Failed to setup network sync for encounter state: %v", err)
	}
	s.stateEntity = entity
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		log.Printf("Client connected: %s", client.Id())
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		s.onDisconnect(client, err)
	})

	router.On(func(client *router.NetworkClient, req messages.JoinRequest) {
		s.onJoinRequest(client, req)
	})

	router.On(func(client *router.NetworkClient, req messages.MoveRequest) {
		s.onMoveRequest(client, req)
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		log.Printf("Client error: %v", err)
	})
}

func (s *Server) onJoinRequest(client *router.NetworkClient, req messages.JoinRequest) {
	if s.cfg.Version != "" && req.Version != s.cfg.Version {
		s.send(client, messages.JoinRejected{Reason: "version mismatch, server requires " + s.cfg.Version})
		return
	}

	s.mu.Lock()
	if len(s.clients) >= s.cfg.MaxPlayers {
		s.mu.Unlock()
		s.send(client, messages.JoinRejected{Reason: "table is full"})
		return
	}

	spawn := s.findSpawnCellLocked()
	tokenID := mapdata.NewID()

	entity := s.world.Create(netcomponents.NetToken, netcomponents.NetTokenInfo)
	entry := s.world.Entry(entity)
	netcomponents.NetToken.Set(entry, &netcomponents.NetTokenData{X: spawn.X, Y: spawn.Y})
	netcomponents.NetTokenInfo.Set(entry, &netcomponents.NetTokenInfoData{
		TokenID:    tokenID,
		PlayerName: req.PlayerName,
		Color:      "#ffffff",
	})

	s.occupancy.Add(tokenID, spawn)
	s.clients[client] = &session{
		entity:  entity,
		tokenID: tokenID,
		name:    req.PlayerName,
		cell:    spawn,
		joined:  true,
	}
	s.mu.Unlock()

	if err := srvsync.NetworkSync(s.world, &entity,
		srvsync.WithInterp(netcomponents.NetToken),
		netcomponents.NetTokenInfo,
	); err != nil {
		log.Printf("Failed to setup network sync for token: %v", err)
		return
	}

	s.send(client, messages.JoinAccepted{
		ServerName: s.cfg.Name,
		TickRate:   s.cfg.TickRate,
		MapName:    s.mapName(),
	})

	log.Printf("Player %q joined as token %s at cell (%.0f, %.0f)", req.PlayerName, tokenID, spawn.X, spawn.Y)
}

func (s *Server) onDisconnect(client *router.NetworkClient, err error) {
	if err != nil {
		log.Printf("Client %s disconnected with error: %v", client.Id(), err)
	} else {
		log.Printf("Client %s disconnected", client.Id())
	}

	s.mu.Lock()
	sess, exists := s.clients[client]
	if exists {
		delete(s.clients, client)
		s.occupancy.Remove(sess.tokenID)
	}
	s.mu.Unlock()

	if exists && s.world.Valid(sess.entity) {
		s.world.Remove(sess.entity)
		log.Printf("Token removed for client %s", client.Id())
	}
}

// onMoveRequest validates a proposed token move against the active map and
// either commits it or tells the mover to snap back. The validation is a
// pure function of (from, to, map), so concurrent proposals from different
// clients only contend on the commit.
func (s *Server) onMoveRequest(client *router.NetworkClient, req messages.MoveRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.clients[client]
	if !ok || !sess.joined || !s.world.Valid(sess.entity) {
		s.send(client, messages.MoveRejected{
			Sequence: req.Sequence,
			Reason:   netconfig.RejectNoToken.String(),
		})
		return
	}

	if collision.CheckWallCollision(sess.cell, req.To, s.activeMap) {
		s.send(client, messages.MoveRejected{
			Sequence: req.Sequence,
			Reason:   netconfig.RejectBlocked.String(),
			At:       sess.cell,
		})
		return
	}

	if s.cfg.CheckOccupancy && s.occupancy.Occupied(sess.tokenID, req.To) {
		s.send(client, messages.MoveRejected{
			Sequence: req.Sequence,
			Reason:   netconfig.RejectOccupied.String(),
			At:       sess.cell,
		})
		return
	}

	sess.cell = req.To
	s.occupancy.Move(sess.tokenID, req.To)

	entry := s.world.Entry(sess.entity)
	token := netcomponents.NetToken.Get(entry)
	token.X = req.To.X
	token.Y = req.To.Y
}

// SetActiveMap swaps the active map, rebuilding the occupancy space with
// every token kept in its committed cell, and announces the change to all
// clients. Called from the map watcher on hot reload.
func (s *Server) SetActiveMap(m *mapdata.MapData) {
	s.mu.Lock()
	s.activeMap = m
	s.occupancy = NewOccupancy(m)
	for _, sess := range s.clients {
		s.occupancy.Add(sess.tokenID, sess.cell)
	}
	clients := make([]*router.NetworkClient, 0, len(s.clients))
	for client := range s.clients {
		clients = append(clients, client)
	}
	s.mu.Unlock()

	entry := s.world.Entry(s.stateEntity)
	state := netcomponents.NetEncounterState.Get(entry)
	state.MapName = m.Name

	for _, client := range clients {
		s.send(client, messages.MapChanged{MapName: m.Name})
	}
	log.Printf("Active map is now %q", m.Name)
}

// findSpawnCellLocked scans the grid row-major for the first free cell.
// Callers hold s.mu.
func (s *Server) findSpawnCellLocked() geometry.Point {
	var width, height int
	if s.activeMap != nil && s.activeMap.Metadata != nil {
		width = s.activeMap.Metadata.Dimensions.Width
		height = s.activeMap.Metadata.Dimensions.Height
	}
	if width <= 0 || height <= 0 {
		return geometry.Point{}
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			cell := geometry.Point{X: float64(x), Y: float64(y)}
			if s.occupancy.Free(cell) {
				return cell
			}
		}
	}
	return geometry.Point{}
}

func (s *Server) send(client *router.NetworkClient, msg any) {
	if err := client.SendMessage(msg); err != nil {
		log.Printf("Send to %s failed: %v", client.Id(), err)
	}
}

func (s *Server) mapName() string {
	if s.activeMap == nil {
		return ""
	}
	return s.activeMap.Name
}

// World returns the ECS world.
func (s *Server) World() donburi.World {
	return s.world
}

// PlayerCount returns the number of joined players.
func (s *Server) PlayerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// MapName returns the active map's name.
func (s *Server) MapName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mapName()
}
