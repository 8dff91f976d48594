package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message. Most message types
// originate in the service layer (see the service.Event constants); the hub
// only mints connection lifecycle messages itself.
type MessageType string

const (
	MsgGuestJoined MessageType = "guest_joined"
	MsgGuestLeft   MessageType = "guest_left"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

/// Hub manages WebSocket connections per party: one host dashboard
// connection and any number of guest connections.
type Hub struct {
	hostConns  map[string]*Connection
	guestConns map[string]map[string]*Connection // partyID -> respondentID -> conn

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents a WebSocket connection
type Connection struct {
	PartyID      string
	RespondentID string // Empty for host connections
	IsHost       bool
	Send         chan []byte
	Hub          *Hub
}

/// BroadcastMessage is a message to broadcast: to the party's host
// dashboard, or to every connected guest.
type BroadcastMessage struct {
	PartyID string
	ToHost  bool
	Message *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		hostConns:  make(map[string]*Connection),
		guestConns: make(map[string]map[string]*Connection),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if conn.IsHost {
				h.hostConns[conn.PartyID] = conn
				log.Printf("Host dashboard connected for party %s", conn.PartyID)
			} else {
				if h.guestConns[conn.PartyID] == nil {
					h.guestConns[conn.PartyID] = make(map[string]*Connection)
				}
				h.guestConns[conn.PartyID][conn.RespondentID] = conn
				log.Printf("Guest %s connected to party %s", conn.RespondentID, conn.PartyID)
				h.notifyHost(conn.PartyID, MsgGuestJoined, conn.RespondentID)
			}
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if conn.IsHost {
				if existing, ok := h.hostConns[conn.PartyID]; ok && existing == conn {
					delete(h.hostConns, conn.PartyID)
					close(conn.Send)
					log.Printf("Host dashboard disconnected for party %s", conn.PartyID)
				}
			} else {
				if guests, ok := h.guestConns[conn.PartyID]; ok {
					if existing, ok := guests[conn.RespondentID]; ok && existing == conn {
						delete(guests, conn.RespondentID)
						close(conn.Send)
						log.Printf("Guest %s disconnected from party %s", conn.RespondentID, conn.PartyID)
						h.notifyHost(conn.PartyID, MsgGuestLeft, conn.RespondentID)
					}
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)

			if msg.ToHost {
				if conn, ok := h.hostConns[msg.PartyID]; ok {
					select {
					case conn.Send <- data:
					default:
						// Drop message if buffer full
					}
				}
			} else {
				if guests, ok := h.guestConns[msg.PartyID]; ok {
					for _, conn := range guests {
						select {
						case conn.Send <- data:
						default:
						}
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToHost sends a message to the party host (implements service.Broadcaster)
func (h *Hub) BroadcastToHost(partyID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		PartyID: partyID,
		ToHost:  true,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}

// BroadcastToAllGuests sends a message to every guest at a party (implements service.Broadcaster)
func (h *Hub) BroadcastToAllGuests(partyID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		PartyID: partyID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}

func (h *Hub) notifyHost(partyID string, msgType MessageType, respondentID string) {
	if conn, ok := h.hostConns[partyID]; ok {
		data, _ := json.Marshal(&Message{
			Type:    msgType,
			Payload: json.RawMessage(`{"respondentId":"` + respondentID + `"}`),
		})
		select {
		case conn.Send <- data:
		default:
		}
	}
}
