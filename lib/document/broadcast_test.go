package document

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typecast/typecast-go/lib/ws"
)

func TestBroadcastBufferPublishesSplices(t *testing.T) {
	hub := ws.NewHub()
	buf := NewBroadcastBuffer(NewMemoryBuffer("hello"), hub, "main.go")

	require.NoError(t, buf.Splice(5, 0, " world"))
	assert.Equal(t, "hello world", buf.Read())

	select {
	case message := <-hub.Broadcast:
		assert.Equal(t, "main.go", message.Room)

		var envelope ws.Message
		require.NoError(t, json.Unmarshal(message.Data, &envelope))
		assert.Equal(t, ws.MessageTypeSplice, envelope.Type)
		assert.Equal(t, "main.go", envelope.Path)

		var event ws.SpliceEvent
		require.NoError(t, json.Unmarshal(envelope.Data, &event))
		assert.Equal(t, 5, event.Offset)
		assert.Equal(t, 0, event.DeleteCount)
		assert.Equal(t, " world", event.Insert)
	default:
		t.Error("Expected a queued splice event")
	}
}

func TestBroadcastBufferSkipsFailedSplices(t *testing.T) {
	hub := ws.NewHub()
	buf := NewBroadcastBuffer(NewMemoryBuffer("hi"), hub, "main.go")

	require.Error(t, buf.Splice(99, 0, "x"))

	select {
	case <-hub.Broadcast:
		t.Error("A rejected splice must not be broadcast")
	default:
	}
}

func TestBroadcastBufferDelegates(t *testing.T) {
	inner := NewMemoryBuffer("abc")
	buf := NewBroadcastBuffer(inner, ws.NewHub(), "main.go")

	assert.Equal(t, 3, buf.Len())
	buf.Reveal(2)
	assert.Equal(t, 2, inner.Revealed())
}
