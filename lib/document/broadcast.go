package document

import "github.com/typecast/typecast-go/lib/ws"

// BroadcastBuffer wraps a Buffer and mirrors every applied splice to the
// websocket hub so watchers of the document path see the typing as it
// happens. Failed splices are not broadcast.
type BroadcastBuffer struct {
	inner Buffer
	hub   *ws.Hub
	path  string
}

// NewBroadcastBuffer wraps inner so its mutations are published to hub under
// the given document path.
func NewBroadcastBuffer(inner Buffer, hub *ws.Hub, path string) *BroadcastBuffer {
	return &BroadcastBuffer{inner: inner, hub: hub, path: path}
}

func (b *BroadcastBuffer) Len() int {
	return b.inner.Len()
}

func (b *BroadcastBuffer) Read() string {
	return b.inner.Read()
}

func (b *BroadcastBuffer) Splice(offset int, deleteCount int, insert string) error {
	if err := b.inner.Splice(offset, deleteCount, insert); err != nil {
		return err
	}
	b.hub.Publish(ws.MessageTypeSplice, b.path, ws.SpliceEvent{
		Offset:      offset,
		DeleteCount: deleteCount,
		Insert:      insert,
	})
	return nil
}

func (b *BroadcastBuffer) Reveal(offset int) {
	b.inner.Reveal(offset)
}

var _ Buffer = (*BroadcastBuffer)(nil)
