package document

import "strings"

// Locator is the explicit search-based fallback for re-deriving a live
// buffer position from a known span of text. The replay scheduler keeps its
// positions with running-delta arithmetic; a Locator is used by diagnostics
// and tests to cross-check that arithmetic against the actual content.
type Locator interface {
	// OffsetOf returns the byte offset of the occurrence of needle closest
	// to fromHint, or false if the needle does not occur at all.
	OffsetOf(needle string, fromHint int) (int, bool)
}

// BufferLocator locates spans by searching the buffer's current content.
type BufferLocator struct {
	Buffer Buffer
}

func (l BufferLocator) OffsetOf(needle string, fromHint int) (int, bool) {
	content := l.Buffer.Read()
	if needle == "" {
		return -1, false
	}
	if fromHint < 0 {
		fromHint = 0
	}
	if fromHint > len(content) {
		fromHint = len(content)
	}

	// Search forward from the hint first, then backward. The occurrence
	// nearest the hint wins.
	after := strings.Index(content[fromHint:], needle)
	before := strings.LastIndex(content[:min(fromHint+len(needle), len(content))], needle)

	if after < 0 && before < 0 {
		return -1, false
	}
	if before < 0 {
		return fromHint + after, true
	}
	if after < 0 {
		return before, true
	}
	if (fromHint+after)-fromHint < fromHint-before {
		return fromHint + after, true
	}
	return before, true
}

var _ Locator = BufferLocator{}
