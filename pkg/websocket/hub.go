package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/fasthttp/websocket"
	"github.com/google/uuid"
)

// Hub fans typed messages out to every connected view client (board display,
// buzzer phone, admin panel). Every write to a connection happens inside Run,
// so each connection has exactly one writer; the websocket library forbids
// concurrent writes.
type Hub struct {
	clients    map[*websocket.Conn]string
	broadcast  chan []byte
	register   chan registration
	unregister chan *websocket.Conn
	mutex      sync.RWMutex
}

// registration couples a new connection with the welcome payload Run writes
// to it, ordered before any later broadcast.
type registration struct {
	conn    *websocket.Conn
	welcome []byte
}

// Message is the envelope every broadcast uses.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// BuzzEvent is pushed on every buzzer trigger so the board device plays the
// sound and pulses the buzzer visual.
type BuzzEvent struct {
	EventID   string `json:"eventId"`
	Sound     string `json:"sound"`
	Timestamp string `json:"timestamp"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]string),
		broadcast:  make(chan []byte),
		register:   make(chan registration),
		unregister: make(chan *websocket.Conn),
	}
}

// Run processes registrations and broadcasts. Meant to run as a goroutine
// for the life of the server.
func (h *Hub) Run() {
	for {
		select {
		case reg := <-h.register:
			id := uuid.New().String()
			h.mutex.Lock()
			h.clients[reg.conn] = id
			total := len(h.clients)
			h.mutex.Unlock()
			log.Printf("🔌 View client %s connected. Total: %d", id, total)

			if reg.welcome != nil {
				if err := reg.conn.WriteMessage(websocket.TextMessage, reg.welcome); err != nil {
					log.Printf("⚠️ Error welcoming client %s: %v", id, err)
				}
			}

		case client := <-h.unregister:
			h.mutex.Lock()
			if id, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
				log.Printf("🔌 View client %s disconnected. Total: %d", id, len(h.clients))
			}
			h.mutex.Unlock()

		case message := <-h.broadcast:
			h.mutex.Lock()
			for client, id := range h.clients {
				if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
					log.Printf("⚠️ Error writing to client %s: %v", id, err)
					delete(h.clients, client)
					client.Close()
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Register adds a connection to the hub. The optional welcome payload is
// written by the hub's own loop so it lands before any later broadcast.
func (h *Hub) Register(conn *websocket.Conn, welcome []byte) {
	h.register <- registration{conn: conn, welcome: welcome}
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.unregister <- conn
}

// BroadcastMessage sends a typed message to every connected client.
func (h *Hub) BroadcastMessage(msgType string, data interface{}) {
	msg := Message{
		Type: msgType,
		Data: data,
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		log.Printf("⚠️ Error serializing %s message: %v", msgType, err)
		return
	}

	h.broadcast <- payload
}

// BroadcastBuzz pushes a buzz event with a fresh event id.
func (h *Hub) BroadcastBuzz(sound string) {
	h.BroadcastMessage("buzzer", BuzzEvent{
		EventID:   uuid.New().String(),
		Sound:     sound,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// Play lets the hub stand in as the game's sound collaborator: "playing" a
// sound on the server means telling the board device to play it.
func (h *Hub) Play(sound string) {
	h.BroadcastBuzz(sound)
}
