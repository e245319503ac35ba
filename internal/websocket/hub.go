package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"alignai-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const broadcastChannel = "interview_broadcast"

// Hub tracks every open interview channel on this instance.
type Hub struct {
	mu        sync.RWMutex
	clients   map[*Client]struct{}
	bySession map[uuid.UUID][]*Client

	// Redis relays broadcasts to other instances; nil when running alone.
	rdb        *redis.Client
	instanceID string

	logger logger.ILogger
}

type relayMessage struct {
	Origin  string          `json:"origin"`
	Message json.RawMessage `json:"message"`
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Hub{
		clients:    make(map[*Client]struct{}),
		bySession:  make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

// Run listens for broadcasts relayed by other instances until ctx is done.
// Without Redis it returns immediately.
func (h *Hub) Run(ctx context.Context) {
	if h.rdb == nil {
		return
	}

	pubsub := h.rdb.Subscribe(ctx, broadcastChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var relay relayMessage
			if err := json.Unmarshal([]byte(msg.Payload), &relay); err != nil {
				h.logger.Warn("Hub", "Bad relay payload", map[string]interface{}{"error": err.Error()})
				continue
			}
			if relay.Origin == h.instanceID {
				continue
			}
			h.deliver(relay.Message)
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	h.clients[client] = struct{}{}
	h.bySession[client.SessionID] = append(h.bySession[client.SessionID], client)
	n := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("Hub", "Client registered", map[string]interface{}{"session_id": client.SessionID, "user_id": client.UserID, "active": n})
}

// Unregister removes the client and closes its queue. Calling it more than once
// is harmless.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	_, ok := h.clients[client]
	if ok {
		delete(h.clients, client)
		peers := h.bySession[client.SessionID]
		for i, c := range peers {
			if c == client {
				peers = append(peers[:i], peers[i+1:]...)
				break
			}
		}
		if len(peers) == 0 {
			delete(h.bySession, client.SessionID)
		} else {
			h.bySession[client.SessionID] = peers
		}
	}
	h.mu.Unlock()

	client.closeSend()
	if ok {
		h.logger.Info("Hub", "Client unregistered", map[string]interface{}{"session_id": client.SessionID})
	}
}

// Broadcast queues message on every registered client. Clients that are closing
// or backed up are skipped. With Redis configured the message is also relayed
// to other instances.
func (h *Hub) Broadcast(message []byte) int {
	delivered := h.deliver(message)

	if h.rdb != nil {
		payload, _ := json.Marshal(relayMessage{Origin: h.instanceID, Message: message})
		if err := h.rdb.Publish(context.Background(), broadcastChannel, payload).Err(); err != nil {
			h.logger.Error("Hub", "Broadcast relay failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return delivered
}

func (h *Hub) deliver(message []byte) int {
	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	delivered := 0
	for _, c := range targets {
		if c.Enqueue(message) {
			delivered++
			continue
		}
		h.logger.Warn("Hub", "Skipped client during broadcast", map[string]interface{}{"session_id": c.SessionID})
	}
	return delivered
}

func (h *Hub) Lookup(sessionID uuid.UUID) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*Client, len(h.bySession[sessionID]))
	copy(out, h.bySession[sessionID])
	return out
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
