package diff

import "strings"

// Builder assembles a Script in canonical form: adjacent ops of the same kind
// are merged, and inside one change region every deletion is emitted before
// any insertion. The canonical order is what makes Diff deterministic for a
// given alignment regardless of the order the backtrack discovered the ops.
type Builder struct {
	script Script
	retain strings.Builder
	del    strings.Builder
	ins    strings.Builder
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) flushChanges() {
	if b.del.Len() > 0 {
		b.script = append(b.script, Op{Kind: Delete, Text: b.del.String()})
		b.del.Reset()
	}
	if b.ins.Len() > 0 {
		b.script = append(b.script, Op{Kind: Insert, Text: b.ins.String()})
		b.ins.Reset()
	}
}

func (b *Builder) flushRetain() {
	if b.retain.Len() > 0 {
		b.script = append(b.script, Op{Kind: Retain, Text: b.retain.String()})
		b.retain.Reset()
	}
}

// Retain appends a retained span.
func (b *Builder) Retain(text string) {
	if text == "" {
		return
	}
	b.flushChanges()
	b.retain.WriteString(text)
}

// Delete appends a deleted span.
func (b *Builder) Delete(text string) {
	if text == "" {
		return
	}
	b.flushRetain()
	b.del.WriteString(text)
}

// Insert appends an inserted span.
func (b *Builder) Insert(text string) {
	if text == "" {
		return
	}
	b.flushRetain()
	b.ins.WriteString(text)
}

// Script finalizes and returns the assembled script.
func (b *Builder) Script() Script {
	b.flushChanges()
	b.flushRetain()
	return b.script
}
