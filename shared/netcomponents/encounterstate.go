package netcomponents

import "github.com/yohamta/donburi"

// EncounterPhase is the coarse state of a running encounter.
type EncounterPhase int

const (
	PhaseLobby EncounterPhase = iota
	PhaseRunning
	PhasePaused
)

// NetEncounterStateData is the table-wide state synced to every client:
// which map is active and where the encounter is in its lifecycle.
type NetEncounterStateData struct {
	MapName string
	Phase   EncounterPhase
	Players int
}

var NetEncounterState = donburi.NewComponentType[NetEncounterStateData]()
