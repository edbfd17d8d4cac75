// Package messages holds the plain structs exchanged between encounter
// clients and the server. They are serialized by necs and must stay free of
// behavior — pure data only.
package messages

import "github.com/leap-fish/necs/esync"

// JoinRequest is sent by a client after connecting to request a seat at the
// table.
type JoinRequest struct {
	Version    string
	PlayerName string
}

// JoinAccepted is sent by the server when a client's join request is
// accepted, carrying the client's synced entity id and the active map.
type JoinAccepted struct {
	NetworkID  esync.NetworkId
	ServerName string
	TickRate   int
	MapName    string
}

// JoinRejected is sent by the server when a client's join request is
// rejected.
type JoinRejected struct {
	Reason string
}

// MapChanged is broadcast when the server switches the active map, e.g.
// after a hot reload of the maps directory.
type MapChanged struct {
	MapName string
}
