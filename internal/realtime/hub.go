// Package realtime streams live slot availability to websocket clients.
package realtime

import (
	"context"
	"encoding/json"
	"time"

	"letsparkit/internal/parking"
	"letsparkit/pkg/logger"
)

const (
	MessageSnapshot    = "snapshot"
	MessageSlotUpdated = "slot.updated"
	MessageLocation    = "location.updated"
)

// Message is the JSON frame written to subscribers
type Message struct {
	Type           string            `json:"type"`
	LocationID     string            `json:"locationId"`
	AvailableSlots int               `json:"availableSlots"`
	TotalSlots     int               `json:"totalSlots"`
	Slot           *parking.Slot     `json:"slot,omitempty"`
	Slots          []parking.Slot    `json:"slots,omitempty"`
	Location       *parking.Location `json:"location,omitempty"`
	Timestamp      time.Time         `json:"timestamp"`
}

// LocationReader is the read side of the store the hub needs
type LocationReader interface {
	Location(id string) (parking.Location, error)
	SlotsByLocation(locationID string) []parking.Slot
}

type envelope struct {
	locationID string
	payload    []byte
}

// Hub keeps the connected clients grouped by location
type Hub struct {
	clients    map[string]map[*Client]struct{}
	broadcast  chan envelope
	register   chan *Client
	unregister chan *Client
	count      chan chan int
	done       chan struct{}
	reader     LocationReader
	logger     *logger.Logger
}

func NewHub(reader LocationReader) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		broadcast:  make(chan envelope, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		count:      make(chan chan int),
		done:       make(chan struct{}),
		reader:     reader,
		logger:     logger.GetDefault().WithComponent("realtime"),
	}
}

// Run owns the client set until ctx is cancelled, then closes every client
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			for _, set := range h.clients {
				for client := range set {
					close(client.send)
				}
			}
			h.clients = make(map[string]map[*Client]struct{})
			return

		case client := <-h.register:
			set, ok := h.clients[client.locationID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.locationID] = set
			}
			set[client] = struct{}{}

		case client := <-h.unregister:
			h.remove(client)

		case msg := <-h.broadcast:
			for client := range h.clients[msg.locationID] {
				select {
				case client.send <- msg.payload:
				default:
					// Slow reader
					h.remove(client)
				}
			}

		case reply := <-h.count:
			n := 0
			for _, set := range h.clients {
				n += len(set)
			}
			reply <- n
		}
	}
}

func (h *Hub) remove(client *Client) {
	set := h.clients[client.locationID]
	if _, ok := set[client]; !ok {
		return
	}
	delete(set, client)
	close(client.send)
	if len(set) == 0 {
		delete(h.clients, client.locationID)
	}
}

// Register adds a client; after shutdown the client is closed immediately
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	reply := make(chan int, 1)
	select {
	case h.count <- reply:
		return <-reply
	case <-h.done:
		return 0
	}
}

// Broadcast queues a message for the location's subscribers without blocking
func (h *Hub) Broadcast(msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		h.logger.Warn("Failed to encode realtime message", "error", err)
		return
	}
	select {
	case h.broadcast <- envelope{locationID: msg.LocationID, payload: payload}:
	default:
		h.logger.Warn("Broadcast channel full, dropping message", "location_id", msg.LocationID)
	}
}

// Snapshot describes the current state of a location
func (h *Hub) Snapshot(locationID string) (Message, error) {
	loc, err := h.reader.Location(locationID)
	if err != nil {
		return Message{}, err
	}
	return Message{
		Type:           MessageSnapshot,
		LocationID:     loc.ID,
		AvailableSlots: loc.AvailableSlots,
		TotalSlots:     loc.TotalSlots,
		Slots:          h.reader.SlotsByLocation(loc.ID),
		Timestamp:      time.Now(),
	}, nil
}

// Publish implements parking.EventSink for slot and location changes
func (h *Hub) Publish(_ context.Context, event parking.Event) {
	var msg Message
	switch {
	case event.Slot != nil:
		msg = Message{Type: MessageSlotUpdated, LocationID: event.Slot.LocationID, Slot: event.Slot}
	case event.Type == parking.EventLocationUpdated && event.Location != nil:
		msg = Message{Type: MessageLocation, LocationID: event.Location.ID, Location: event.Location}
	default:
		return
	}

	loc, err := h.reader.Location(msg.LocationID)
	if err != nil {
		return
	}
	msg.AvailableSlots = loc.AvailableSlots
	msg.TotalSlots = loc.TotalSlots
	msg.Timestamp = event.OccurredAt
	h.Broadcast(msg)
}

// Client is one websocket subscriber of a location
type Client struct {
	locationID string
	send       chan []byte
}

func NewClient(locationID string) *Client {
	return &Client{locationID: locationID, send: make(chan []byte, 256)}
}

// Send returns the outbound queue of the client
func (c *Client) Send() <-chan []byte {
	return c.send
}
