// Package cli is the terminal watch client. It connects to a running server's
// watch socket and mirrors one document locally, re-rendering on every splice
// so the typing animation is visible in the terminal.
package cli

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/typecast/typecast-go/lib/document"
	"github.com/typecast/typecast-go/lib/ws"
)

// Watcher mirrors one live document over the watch socket.
type Watcher struct {
	host string
	path string

	conn      *websocket.Conn
	connWrite sync.Mutex

	buffer *document.MemoryBuffer

	eventsMu  sync.Mutex
	events    map[string][]func(interface{})
	closeChan chan struct{}
	closeOnce sync.Once
}

// NewWatcher creates a watcher around an established connection. Use Connect
// to dial a server.
func NewWatcher(host string, path string, conn *websocket.Conn) *Watcher {
	return &Watcher{
		host:      host,
		path:      path,
		conn:      conn,
		buffer:    document.NewMemoryBuffer(""),
		events:    make(map[string][]func(interface{})),
		closeChan: make(chan struct{}),
	}
}

func (w *Watcher) On(event string, handler func(interface{})) {
	w.eventsMu.Lock()
	w.events[event] = append(w.events[event], handler)
	w.eventsMu.Unlock()
}

func (w *Watcher) emit(event string, data interface{}) {
	w.eventsMu.Lock()
	handlers := w.events[event]
	w.eventsMu.Unlock()
	for _, handler := range handlers {
		go handler(data)
	}
}

func (w *Watcher) Close() {
	w.closeOnce.Do(func() {
		close(w.closeChan)
		if w.conn != nil {
			_ = w.conn.Close()
		}
		w.emit("disconnect", nil)
	})
}

// Content returns the current mirrored document content.
func (w *Watcher) Content() string {
	return w.buffer.Read()
}

// apply folds one wire message into the local mirror. Unknown message types
// are ignored so old clients keep working against newer servers.
func (w *Watcher) apply(message []byte) error {
	var envelope ws.Message
	if err := json.Unmarshal(message, &envelope); err != nil {
		return err
	}

	switch envelope.Type {
	case ws.MessageTypeDocumentState:
		var event ws.DocumentStateEvent
		if err := json.Unmarshal(envelope.Data, &event); err != nil {
			return err
		}
		if err := w.buffer.Splice(0, w.buffer.Len(), event.Content); err != nil {
			return err
		}
		w.emit("state", event.Content)
	case ws.MessageTypeSplice:
		var event ws.SpliceEvent
		if err := json.Unmarshal(envelope.Data, &event); err != nil {
			return err
		}
		if err := w.buffer.Splice(event.Offset, event.DeleteCount, event.Insert); err != nil {
			return fmt.Errorf("splice desynchronized the mirror: %w", err)
		}
		w.emit("splice", event)
	case ws.MessageTypeReplayStarted:
		var event ws.ReplayStartedEvent
		if err := json.Unmarshal(envelope.Data, &event); err != nil {
			return err
		}
		w.emit("replayStarted", event)
	case ws.MessageTypeReplayFinished:
		var event ws.ReplayFinishedEvent
		if err := json.Unmarshal(envelope.Data, &event); err != nil {
			return err
		}
		w.emit("replayFinished", event)
	}
	return nil
}

func (w *Watcher) OnState(callback func(content string)) {
	w.On("state", func(data interface{}) {
		if content, ok := data.(string); ok {
			callback(content)
		}
	})
}

func (w *Watcher) OnSplice(callback func(event ws.SpliceEvent)) {
	w.On("splice", func(data interface{}) {
		if event, ok := data.(ws.SpliceEvent); ok {
			callback(event)
		}
	})
}

func (w *Watcher) OnReplayFinished(callback func(event ws.ReplayFinishedEvent)) {
	w.On("replayFinished", func(data interface{}) {
		if event, ok := data.(ws.ReplayFinishedEvent); ok {
			callback(event)
		}
	})
}

func (w *Watcher) OnDisconnect(callback func(err interface{})) {
	w.On("disconnect", func(data interface{}) {
		callback(data)
	})
}

// Connect dials the watch socket of the server at host for the given document
// path and starts mirroring it.
func Connect(host string, path string, logger *zap.SugaredLogger) (*Watcher, error) {
	parsed, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid host URL: %w", err)
	}

	wsURL := fmt.Sprintf("%s://%s/ws/watch?path=%s",
		strings.Replace(parsed.Scheme, "http", "ws", 1), parsed.Host, url.QueryEscape(path))
	logger.Debugf("connecting to %s", wsURL)

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("websocket dial failed (%s): %w", resp.Status, err)
		}
		return nil, fmt.Errorf("websocket dial failed: %w", err)
	}

	watcher := NewWatcher(host, path, conn)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Errorf("panic in recv goroutine: %v", r)
				_ = conn.Close()
			}
			watcher.Close()
		}()
		for {
			select {
			case <-watcher.closeChan:
				return
			default:
				_, message, err := conn.ReadMessage()
				if err != nil {
					if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
						logger.Errorf("error: %v", err)
					}
					return
				}
				if err := watcher.apply(message); err != nil {
					logger.Warnf("dropping message: %v", err)
				}
			}
		}
	}()

	return watcher, nil
}

// RunFromCLI runs the terminal watcher until the connection drops.
func RunFromCLI(logger *zap.SugaredLogger, args []string) {
	host, path, err := parseCLIArgs(args)
	if err != nil {
		return
	}

	if host == "" {
		fmt.Println("No host specified..")
		return
	}

	watcher, err := Connect(host, path, logger)
	if err != nil {
		fmt.Printf("Failed to connect to %s: %v\n", host, err)
		os.Exit(1)
	}

	render := func() {
		fmt.Print("\u001b[2J\u001b[0;0H")
		fmt.Printf("Watching %s on %s\n\n%s", path, host, watcher.Content())
	}

	watcher.OnState(func(string) {
		render()
	})
	watcher.OnSplice(func(ws.SpliceEvent) {
		render()
	})
	watcher.OnReplayFinished(func(event ws.ReplayFinishedEvent) {
		fmt.Printf("\n\nReplay %s finished: %s (%d mutations)\n", event.ReplayID, event.Outcome, event.Mutations)
	})

	done := make(chan struct{})
	watcher.OnDisconnect(func(_ interface{}) {
		close(done)
	})
	<-done

	logger.Infof("Stopping CLI")
}

func parseCLIArgs(args []string) (string, string, error) {
	fs := flag.NewFlagSet("cli", flag.ContinueOnError)
	host := fs.String("host", "", "The host of the server (e.g. http://127.0.0.1:9003)")
	path := fs.String("path", "main.go", "The document path to watch")
	fs.StringVar(path, "p", "main.go", "The document path to watch (shorthand)")

	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		*host = args[0]
		args = args[1:]
	}

	err := fs.Parse(args)
	return *host, *path, err
}
