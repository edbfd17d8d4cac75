// Package netcomponents defines the donburi component types synced between
// the encounter server and its clients.
package netcomponents

import "github.com/yohamta/donburi"

// NetTokenData is a token's position in continuous grid coordinates.
type NetTokenData struct {
	X, Y float64
}

var NetToken = donburi.NewComponentType[NetTokenData]()

// LerpNetToken interpolates between two token positions for smooth
// client-side rendering between server ticks.
func LerpNetToken(from, to NetTokenData, t float64) *NetTokenData {
	return &NetTokenData{
		X: from.X + (to.X-from.X)*t,
		Y: from.Y + (to.Y-from.Y)*t,
	}
}

// NetTokenInfoData is the discrete, non-interpolated part of a token.
type NetTokenInfoData struct {
	TokenID    string // caller-generated UUID, stable for the session
	PlayerName string
	Color      string // "#rrggbb" token tint
}

var NetTokenInfo = donburi.NewComponentType[NetTokenInfoData]()
