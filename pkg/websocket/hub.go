package websocket

import (
	"encoding/json"
	"log"
	"time"
)

// Hub fans game snapshots out to the clients watching each game. A
// client joins exactly one room for its whole connection, so there is
// no room-switching: register, unregister, broadcast.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan Broadcast
	stop       chan struct{}

	rooms map[string]map[*Client]bool
}

type Broadcast struct {
	Room    string
	Type    string
	Payload any
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Broadcast, 256),
		stop:       make(chan struct{}),
		rooms:      map[string]map[*Client]bool{},
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			if h.rooms[c.Room] == nil {
				h.rooms[c.Room] = map[*Client]bool{}
			}
			h.rooms[c.Room][c] = true
		case c := <-h.unregister:
			h.removeClient(c)
		case b := <-h.broadcast:
			h.broadcastToRoom(b.Room, b.Type, b.Payload)
		case <-h.stop:
			for room, clients := range h.rooms {
				for c := range clients {
					c.closeSend()
				}
				delete(h.rooms, room)
			}
			return
		}
	}
}

func (h *Hub) Stop() { close(h.stop) }

func (h *Hub) Register(c *Client)   { h.register <- c }
func (h *Hub) Unregister(c *Client) { h.unregister <- c }

func (h *Hub) Broadcast(room, typ string, payload any) {
	h.broadcast <- Broadcast{Room: room, Type: typ, Payload: payload}
}

func (h *Hub) removeClient(c *Client) {
	if c == nil {
		return
	}
	if clients := h.rooms[c.Room]; clients != nil {
		delete(clients, c)
		if len(clients) == 0 {
			delete(h.rooms, c.Room)
		}
	}
	c.closeSend()
}

func (h *Hub) broadcastToRoom(room, typ string, payload any) {
	clients := h.rooms[room]
	if len(clients) == 0 {
		return
	}

	data, err := json.Marshal(Envelope{
		Type:      typ,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		log.Printf("ws broadcast marshal error: room=%s type=%s err=%v", room, typ, err)
		return
	}

	for c := range clients {
		select {
		case c.Send <- data:
		default:
			// Backpressure or a dead client.
			h.removeClient(c)
		}
	}
}

// Envelope is the wire frame for every outbound message.
type Envelope struct {
	Type      string `json:"type"`
	Payload   any    `json:"payload"`
	Timestamp string `json:"timestamp"`
}
