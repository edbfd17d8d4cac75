package protocol

import (
	"github.com/leap-fish/necs/esync"

	"github.com/mixtli/dungeon-lab-sub011/shared/netcomponents"
)

// Sync ID constants - ID 1 is reserved by necs for NetworkId
const (
	SyncIDNetToken          uint = 10
	SyncIDNetTokenInfo      uint = 11
	SyncIDNetEncounterState uint = 12
)

// Interpolation IDs (uint8 for WithInterpFn)
const (
	InterpIDNetToken uint8 = 10
)

// RegisterComponents registers all network components with necs for
// serialization. This must be called by both server and client before any
// network operations.
func RegisterComponents() error {
	// Token positions interpolate for smooth movement between ticks.
	if err := esync.RegisterComponent(
		SyncIDNetToken,
		netcomponents.NetTokenData{},
		netcomponents.NetToken,
		esync.WithInterpFn(InterpIDNetToken, netcomponents.LerpNetToken),
	); err != nil {
		return err
	}

	// TokenInfo: no interpolation (discrete fields)
	if err := esync.RegisterComponent(
		SyncIDNetTokenInfo,
		netcomponents.NetTokenInfoData{},
		netcomponents.NetTokenInfo,
	); err != nil {
		return err
	}

	// EncounterState: no interpolation (discrete state)
	return esync.RegisterComponent(
		SyncIDNetEncounterState,
		netcomponents.NetEncounterStateData{},
		netcomponents.NetEncounterState,
	)
}
