package services

import (
	"encoding/json"
	"log"
)

// Event describes a change to one owner's record. It is only ever
// delivered to the owner's own connections.
type Event struct {
	UserID string `json:"-"`
	Type   string `json:"type"`   // created | updated | deleted
	Record string `json:"record"` // ingredient | recipe
	Data   any    `json:"data"`
}

// EventSink delivers a payload to every live connection of one user.
type EventSink interface {
	SendToUser(userID string, payload []byte) error
}

// EventBus fans domain changes out to the websocket layer so the storage
// code never touches sockets. A nil bus drops everything, which keeps
// tests and the CLI free of socket plumbing.
type EventBus struct {
	sink EventSink
}

func NewEventBus(sink EventSink) *EventBus {
	return &EventBus{sink: sink}
}

func (b *EventBus) Publish(event Event) {
	if b == nil || b.sink == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("event marshal failed for user %s: %v", event.UserID, err)
		return
	}
	// Delivery is best effort; a user with no open feed is not an error
	// worth logging.
	_ = b.sink.SendToUser(event.UserID, payload)
}
