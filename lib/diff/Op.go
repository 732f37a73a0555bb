package diff

// OpKind classifies a single edit operation.
type OpKind int

const (
	// Retain keeps a span that is present in both the source and the target.
	Retain OpKind = iota
	// Insert adds a span that only exists in the target.
	Insert
	// Delete removes a span that only exists in the source.
	Delete
)

func (k OpKind) String() string {
	switch k {
	case Retain:
		return "retain"
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	default:
		return "unknown"
	}
}

// Op is one edit operation carrying the literal text of the span it covers.
type Op struct {
	Kind OpKind
	Text string
}

// Len returns the byte length of the covered span.
func (op Op) Len() int {
	return len(op.Text)
}
