// Package document holds the live mutable text a replay animates and the
// buffer abstraction the replay scheduler mutates through.
package document

import "errors"

var (
	// ErrClosed is returned by Splice once the buffer has been closed.
	ErrClosed = errors.New("buffer is closed")
	// ErrOutOfBounds is returned when a splice addresses bytes outside the
	// current content.
	ErrOutOfBounds = errors.New("splice out of bounds")
)

// Buffer is the handle a replay owns while it runs. Offsets are byte offsets
// into the UTF-8 content. Every Splice is atomic from the caller's point of
// view: it either applies fully or returns an error and changes nothing.
type Buffer interface {
	// Len returns the current content length in bytes.
	Len() int
	// Read returns the full current content.
	Read() string
	// Splice deletes deleteCount bytes at offset and inserts insert in their
	// place. deleteCount == 0 is a pure insertion, insert == "" a pure
	// deletion.
	Splice(offset int, deleteCount int, insert string) error
	// Reveal asks the host to bring the given offset into view. It is
	// advisory; failures are ignored.
	Reveal(offset int)
}
