package editor

// EntityKind identifies which of the four entity collections a change
// touched.
type EntityKind int

const (
	KindNone EntityKind = iota
	KindWall
	KindDoor
	KindObject
	KindLight
)

func (k EntityKind) String() string {
	switch k {
	case KindWall:
		return "wall"
	case KindDoor:
		return "door"
	case KindObject:
		return "object"
	case KindLight:
		return "light"
	default:
		return "none"
	}
}

// Op is the kind of mutation a Change describes.
type Op int

const (
	OpAdd Op = iota
	OpUpdate
	OpRemove
	OpSelect
	OpGrid
	OpLoad
	OpReset
)

// Change is the notification emitted after every State mutation. Renderers
// subscribe to these instead of observing the entity structs, keeping the
// geometry model free of any UI framework.
type Change struct {
	Op   Op
	Kind EntityKind
	ID   string
}
