package document

import "sync"

// MemoryBuffer is the in-process Buffer implementation backing live
// documents. It is safe for concurrent use; a replay still issues its
// mutations strictly sequentially.
type MemoryBuffer struct {
	mu       sync.RWMutex
	content  string
	closed   bool
	revealed int
}

// NewMemoryBuffer creates a buffer holding the given initial content.
func NewMemoryBuffer(initial string) *MemoryBuffer {
	return &MemoryBuffer{content: initial}
}

func (b *MemoryBuffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.content)
}

func (b *MemoryBuffer) Read() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content
}

func (b *MemoryBuffer) Splice(offset int, deleteCount int, insert string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}
	if offset < 0 || offset > len(b.content) {
		return ErrOutOfBounds
	}
	if deleteCount < 0 || offset+deleteCount > len(b.content) {
		return ErrOutOfBounds
	}

	b.content = b.content[:offset] + insert + b.content[offset+deleteCount:]
	return nil
}

func (b *MemoryBuffer) Reveal(offset int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if offset >= 0 && offset <= len(b.content) {
		b.revealed = offset
	}
}

// Revealed returns the last offset passed to Reveal.
func (b *MemoryBuffer) Revealed() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revealed
}

// Close marks the buffer closed. Subsequent splices fail with ErrClosed.
func (b *MemoryBuffer) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
}

var _ Buffer = (*MemoryBuffer)(nil)
