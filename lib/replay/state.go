package replay

// Phase is the scheduler's position in its state machine. The only legal
// start state is Idle; Done, Cancelled and Failed are terminal.
type Phase int

const (
	Idle Phase = iota
	Deleting
	Inserting
	Done
	PhaseCancelled
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Deleting:
		return "deleting"
	case Inserting:
		return "inserting"
	case Done:
		return "done"
	case PhaseCancelled:
		return "cancelled"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the phase can no longer change.
func (p Phase) Terminal() bool {
	return p == Done || p == PhaseCancelled || p == PhaseFailed
}

// State is a snapshot of a running replay. ScriptCursor indexes the op being
// executed; BufferCursor is the byte position in the current live buffer
// where the next mutation will occur. BufferCursor is recomputed after every
// mutation because earlier mutations shift all later offsets.
type State struct {
	ScriptCursor int
	BufferCursor int
	Phase        Phase
	Mutations    int
}
