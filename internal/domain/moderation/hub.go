package moderation

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// reportsChannel is the Redis Pub/Sub channel carrying report INSERT events
const reportsChannel = "moderation:reports"

// FeedEvent is the wire format pushed to moderator dashboards
type FeedEvent struct {
	Type   string  `json:"type"`
	Report *Report `json:"report"`
}

// Client represents a moderator's WebSocket connection
type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
	Send   chan []byte
}

// Hub fans newly created reports out to connected moderator dashboards.
// With Redis configured, report events propagate across all server
// instances via Pub/Sub; without it, delivery is local-only.
type Hub struct {
	clients map[*Client]bool

	redis  *redis.Client
	pubsub *redis.PubSub

	mu sync.RWMutex

	register   chan *Client
	unregister chan *Client

	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub creates a moderation feed hub
func NewHub(redisClient *redis.Client) *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	h := &Hub{
		clients:    make(map[*Client]bool),
		redis:      redisClient,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		ctx:        ctx,
		cancel:     cancel,
	}

	if redisClient != nil {
		h.pubsub = redisClient.Subscribe(ctx, reportsChannel)
	}

	return h
}

// Run starts the hub (call in goroutine)
func (h *Hub) Run() {
	if h.pubsub != nil {
		go h.runRedisSubscriber()
	}

	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			log.Debug().Str("user_id", client.UserID.String()).Msg("Moderator connected to report feed")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
			log.Debug().Str("user_id", client.UserID.String()).Msg("Moderator disconnected from report feed")
		}
	}
}

// Stop shuts the hub down
func (h *Hub) Stop() {
	h.cancel()
	if h.pubsub != nil {
		h.pubsub.Close()
	}
}

// runRedisSubscriber relays report events from Redis to local clients
func (h *Hub) runRedisSubscriber() {
	ch := h.pubsub.Channel()

	for {
		select {
		case <-h.ctx.Done():
			return

		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.broadcastLocal([]byte(msg.Payload))
		}
	}
}

// Register adds a moderator connection
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a moderator connection
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// BroadcastReport publishes a new report to ALL moderator dashboards
// across ALL server instances via Redis
func (h *Hub) BroadcastReport(report *Report) {
	data, err := json.Marshal(FeedEvent{Type: "report:new", Report: report})
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal report feed event")
		return
	}

	if h.redis != nil {
		// All instances receive this, including ourselves
		if err := h.redis.Publish(h.ctx, reportsChannel, data).Err(); err != nil {
			log.Error().Err(err).Str("channel", reportsChannel).Msg("Redis publish failed")
			// Fall back to local delivery
			h.broadcastLocal(data)
		}
	} else {
		h.broadcastLocal(data)
	}
}

// broadcastLocal sends an event to clients connected to THIS server
func (h *Hub) broadcastLocal(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.Send <- data:
		default:
			// Buffer full, skip this message
			log.Warn().Str("user_id", client.UserID.String()).Msg("Report feed send buffer full")
		}
	}
}
