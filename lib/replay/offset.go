package replay

// offsetTracker maps positions in an immutable reference string onto the
// live buffer while a pass over the script mutates it. The deletion pass
// walks source offsets and records every span it removes; the buffer
// position of the next deletion is the source offset minus everything
// removed to its left. Tracking the delta is what keeps positions correct
// without re-searching the buffer after each mutation.
type offsetTracker struct {
	offset  int
	removed int
}

// advance moves past a span of the reference string without mutating.
func (t *offsetTracker) advance(n int) {
	t.offset += n
}

// bufferPos returns the live buffer position corresponding to the current
// reference offset.
func (t *offsetTracker) bufferPos() int {
	return t.offset - t.removed
}

// drop records a span of n bytes removed from the buffer at the current
// position and moves the reference offset past it.
func (t *offsetTracker) drop(n int) {
	t.offset += n
	t.removed += n
}
