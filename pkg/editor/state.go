package editor

// State is the lifecycle state of a controller.
type State int

const (
	// StateUnmounted is the state before Mount.
	StateUnmounted State = iota
	// StateAwaitingEngine means the engine load is in flight. Description
	// changes are stored but not applied.
	StateAwaitingEngine
	// StateReady means the engine is loaded but no editor exists yet,
	// usually because no mount node was available.
	StateReady
	// StateSynced means the editor exists and every pass diffs and applies.
	StateSynced
	// StateDisposed is terminal: Unmount ran.
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateUnmounted:
		return "unmounted"
	case StateAwaitingEngine:
		return "awaiting-engine"
	case StateReady:
		return "ready"
	case StateSynced:
		return "synced"
	case StateDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}
