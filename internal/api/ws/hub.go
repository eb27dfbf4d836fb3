package ws

import (
	"encoding/json"

	"prompthub/pkg/logger"
)

// Hub tracks the live connections per user. Each connection runs in its own
// goroutines but all registration and delivery goes through the hub's
// channels to avoid race conditions.

type outbound struct {
	userID  string
	payload []byte
}

type Hub struct {
	Register   chan *Client
	Unregister chan *Client
	send       chan outbound
	// clients per user; one user may hold several tabs/devices
	clients map[string]map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		send:       make(chan outbound, 256),
		clients:    make(map[string]map[*Client]bool),
	}
}

// Run is the hub's event loop; call it once in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.add(client)
		case client := <-h.Unregister:
			h.remove(client)
		case msg := <-h.send:
			h.deliver(msg)
		}
	}
}

func (h *Hub) add(client *Client) {
	if h.clients[client.UserID] == nil {
		h.clients[client.UserID] = make(map[*Client]bool)
	}
	h.clients[client.UserID][client] = true
	logger.Debug().Str("user_id", client.UserID).Msg("websocket client registered")
}

func (h *Hub) remove(client *Client) {
	conns, ok := h.clients[client.UserID]
	if !ok || !conns[client] {
		return
	}
	delete(conns, client)
	close(client.SendChannel)
	if len(conns) == 0 {
		delete(h.clients, client.UserID)
	}
}

func (h *Hub) deliver(msg outbound) {
	conns, ok := h.clients[msg.userID]
	if !ok {
		return
	}
	for client := range conns {
		select {
		case client.SendChannel <- msg.payload:
		default:
			// slow consumer, drop the connection
			delete(conns, client)
			close(client.SendChannel)
		}
	}
	if len(conns) == 0 {
		delete(h.clients, msg.userID)
	}
}

// Push delivers the payload to every live connection of the given user.
// Users without a connection are skipped silently; the notification is
// already persisted and will show up on their next fetch.
func (h *Hub) Push(userID string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error().Err(err).Msg("failed to marshal websocket payload")
		return
	}
	select {
	case h.send <- outbound{userID: userID, payload: data}:
	default:
		logger.Warn().Str("user_id", userID).Msg("websocket send queue full, dropping push")
	}
}
