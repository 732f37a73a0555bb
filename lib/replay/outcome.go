package replay

// Outcome is the terminal result of one replay invocation.
type Outcome int

const (
	// Completed means every mutation was applied and the buffer converged on
	// the target content.
	Completed Outcome = iota
	// Cancelled means the caller cancelled mid-flight. The buffer is left in
	// whatever partial state it reached.
	Cancelled
	// Failed means the buffer rejected a mutation. No retry is attempted.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result describes how a replay ended. Err is set only for Failed outcomes;
// cancellation is a distinct exit, not an error.
type Result struct {
	Outcome   Outcome
	Err       error
	Mutations int
}
