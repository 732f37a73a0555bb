package ws

import "encoding/json"

const (
	MessageTypeSplice         = "SPLICE"
	MessageTypeReplayStarted  = "REPLAY_STARTED"
	MessageTypeReplayFinished = "REPLAY_FINISHED"
	MessageTypeDocumentState  = "DOCUMENT_STATE"
)

// Message is the envelope every watcher receives. Path names the document
// room the event belongs to.
type Message struct {
	Type string          `json:"type"`
	Path string          `json:"path"`
	Data json.RawMessage `json:"data,omitempty"`
}

// SpliceEvent mirrors one atomic buffer mutation.
type SpliceEvent struct {
	Offset      int    `json:"offset"`
	DeleteCount int    `json:"deleteCount"`
	Insert      string `json:"insert"`
}

// ReplayStartedEvent announces a new replay session on a document.
type ReplayStartedEvent struct {
	ReplayID       string  `json:"replayId"`
	SnapshotID     string  `json:"snapshotId,omitempty"`
	CharsPerSecond float64 `json:"charsPerSecond"`
}

// ReplayFinishedEvent reports the outcome of a replay session.
type ReplayFinishedEvent struct {
	ReplayID  string `json:"replayId"`
	Outcome   string `json:"outcome"`
	Mutations int    `json:"mutations"`
	Error     string `json:"error,omitempty"`
}

// DocumentStateEvent carries the full content, sent to a watcher on join so
// it can render the buffer before any splice arrives.
type DocumentStateEvent struct {
	Content string `json:"content"`
}

// Encode wraps data into a Message envelope ready for broadcast.
func Encode(messageType string, path string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Message{Type: messageType, Path: path, Data: raw})
}
