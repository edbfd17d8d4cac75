package core

import (
	"log"
	"time"

	"github.com/leap-fish/necs/esync/srvsync"

	"github.com/mixtli/dungeon-lab-sub011/shared/netcomponents"
)

type GameLoop struct {
	server   *Server
	tickRate int
	running  bool
	stopChan chan struct{}
}

func NewGameLoop(server *Server, tickRate int) *GameLoop {
	return &GameLoop{
		server:   server,
		tickRate: tickRate,
		stopChan: make(chan struct{}),
	}
}

func (g *GameLoop) Run() {
	g.running = true
	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	log.Printf("Encounter loop started at %d ticks/second", g.tickRate)

	for {
		select {
		case <-g.stopChan:
			g.running = false
			log.Println("Encounter loop stopped")
			return
		case <-ticker.C:
			g.tick()
		}
	}
}

func (g *GameLoop) Stop() {
	close(g.stopChan)
}

func (g *GameLoop) tick() {
	s := g.server

	entry := s.world.Entry(s.stateEntity)
	state := netcomponents.NetEncounterState.Get(entry)
	state.Players = s.PlayerCount()
	if state.Players > 0 && state.Phase == netcomponents.PhaseLobby {
		state.Phase = netcomponents.PhaseRunning
	}

	if err := srvsync.DoSync(); err != nil {
		log.Printf("Sync error: %v", err)
	}
}
