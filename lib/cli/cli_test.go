package cli

import (
	"testing"

	"github.com/typecast/typecast-go/lib/ws"
)

func TestParseCLIArgs(t *testing.T) {
	host, path, err := parseCLIArgs([]string{"http://localhost:9003", "-path", "demo.go"})
	if err != nil {
		t.Fatal(err)
	}
	if host != "http://localhost:9003" {
		t.Error("Expected positional host, got ", host)
	}
	if path != "demo.go" {
		t.Error("Expected demo.go, got ", path)
	}

	host, path, err = parseCLIArgs([]string{"-host", "http://example.com", "-p", "x.go"})
	if err != nil {
		t.Fatal(err)
	}
	if host != "http://example.com" {
		t.Error("Expected flag host, got ", host)
	}
	if path != "x.go" {
		t.Error("Expected x.go, got ", path)
	}
}

func TestWatcherAppliesState(t *testing.T) {
	watcher := NewWatcher("", "main.go", nil)

	message, err := ws.Encode(ws.MessageTypeDocumentState, "main.go", ws.DocumentStateEvent{Content: "hello"})
	if err != nil {
		t.Fatal(err)
	}
	if err := watcher.apply(message); err != nil {
		t.Fatal(err)
	}
	if watcher.Content() != "hello" {
		t.Error("Expected hello, got ", watcher.Content())
	}
}

func TestWatcherAppliesSplices(t *testing.T) {
	watcher := NewWatcher("", "main.go", nil)

	state, _ := ws.Encode(ws.MessageTypeDocumentState, "main.go", ws.DocumentStateEvent{Content: "helo world"})
	if err := watcher.apply(state); err != nil {
		t.Fatal(err)
	}

	splice, _ := ws.Encode(ws.MessageTypeSplice, "main.go", ws.SpliceEvent{Offset: 2, DeleteCount: 0, Insert: "l"})
	if err := watcher.apply(splice); err != nil {
		t.Fatal(err)
	}
	if watcher.Content() != "hello world" {
		t.Error("Expected hello world, got ", watcher.Content())
	}

	remove := func(offset, count int) []byte {
		data, _ := ws.Encode(ws.MessageTypeSplice, "main.go", ws.SpliceEvent{Offset: offset, DeleteCount: count})
		return data
	}
	if err := watcher.apply(remove(5, 6)); err != nil {
		t.Fatal(err)
	}
	if watcher.Content() != "hello" {
		t.Error("Expected hello, got ", watcher.Content())
	}
}

func TestWatcherRejectsDesyncedSplice(t *testing.T) {
	watcher := NewWatcher("", "main.go", nil)

	splice, _ := ws.Encode(ws.MessageTypeSplice, "main.go", ws.SpliceEvent{Offset: 50, Insert: "x"})
	if err := watcher.apply(splice); err == nil {
		t.Error("Expected an error for an out-of-range splice")
	}
}

func TestWatcherIgnoresUnknownMessages(t *testing.T) {
	watcher := NewWatcher("", "main.go", nil)

	unknown, _ := ws.Encode("FUTURE_TYPE", "main.go", struct{}{})
	if err := watcher.apply(unknown); err != nil {
		t.Error("Unknown message types must be ignored, got ", err)
	}
}
