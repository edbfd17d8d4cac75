// Package netconfig defines lightweight constants and enums shared between
// the encounter server and its clients for network serialization. It must
// stay free of any heavyweight dependency so every binary can import it.
package netconfig

// Defaults for the encounter server.
const (
	DefaultPort       uint = 7474
	DefaultTickRate        = 10
	DefaultMaxPlayers      = 8
)

// RejectReason explains why the server refused a proposed token move.
type RejectReason int

const (
	RejectNone    RejectReason = iota
	RejectBlocked              // movement segment crosses blocking geometry
	RejectOccupied             // destination cell already holds a token
	RejectNoToken              // client has no spawned token
)

var rejectReasonNames = map[RejectReason]string{
	RejectNone:     "none",
	RejectBlocked:  "blocked",
	RejectOccupied: "occupied",
	RejectNoToken:  "no token",
}

func (r RejectReason) String() string {
	if name, ok := rejectReasonNames[r]; ok {
		return name
	}
	return "unknown"
}
