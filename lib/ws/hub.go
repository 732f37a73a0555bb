package ws

import "sync"

// RoomMessage is an outbound event addressed to every client watching one
// document path.
type RoomMessage struct {
	Room string
	Data []byte
}

// Hub maintains the set of active Clients and fans replay events out to the
// Clients watching the originating document.
type Hub struct {
	// Registered Clients.
	Clients        map[*Client]bool
	ClientsRWMutex sync.RWMutex

	// Outbound events addressed to a document room.
	Broadcast chan RoomMessage

	// Register requests from the Clients.
	Register chan *Client

	// Unregister requests from Clients.
	Unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		Broadcast:  make(chan RoomMessage, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Clients:    make(map[*Client]bool),
	}
}

// Publish encodes data and queues it for every watcher of path. Encoding
// errors are swallowed; watchers are an advisory surface.
func (h *Hub) Publish(messageType string, path string, data any) {
	encoded, err := Encode(messageType, path, data)
	if err != nil {
		return
	}
	h.Broadcast <- RoomMessage{Room: path, Data: encoded}
}

// WatcherCount returns the number of clients currently watching path.
func (h *Hub) WatcherCount(path string) int {
	h.ClientsRWMutex.RLock()
	defer h.ClientsRWMutex.RUnlock()
	var n = 0
	for client := range h.Clients {
		if client.Room == path {
			n++
		}
	}
	return n
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			if client == nil {
				continue
			}
			h.ClientsRWMutex.Lock()
			h.Clients[client] = true
			h.ClientsRWMutex.Unlock()
		case client := <-h.Unregister:
			if client == nil {
				continue
			}
			h.ClientsRWMutex.Lock()
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				close(client.Send)
			}
			h.ClientsRWMutex.Unlock()
		case message := <-h.Broadcast:
			h.ClientsRWMutex.Lock()
			for client := range h.Clients {
				if client == nil || client.Room != message.Room {
					continue
				}
				select {
				case client.Send <- message.Data:
				default:
					// Slow watcher, drop it rather than stall the replay.
					delete(h.Clients, client)
					close(client.Send)
				}
			}
			h.ClientsRWMutex.Unlock()
		}
	}
}
