package messages

import "github.com/mixtli/dungeon-lab-sub011/shared/geometry"

// MoveRequest proposes moving the client's token to a grid cell. The server
// validates the segment from the token's current cell against the active
// map's geometry before committing; From is implicit server-side state, so a
// stale client cannot teleport by lying about its origin.
type MoveRequest struct {
	Sequence  uint32         // incrementing id, echoed in MoveRejected
	To        geometry.Point // destination in grid cells
	Timestamp int64          // client timestamp (Unix ms)
}

// MoveRejected tells the mover a proposed move was refused. The token stays
// at its last committed cell; the client should snap back rather than
// predict through.
type MoveRejected struct {
	Sequence uint32
	Reason   string
	At       geometry.Point // the committed cell the token remains in
}
