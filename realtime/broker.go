// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package realtime

import (
	"log/slog"
	"sync"
)

// Event is one server-sent update for a room.
type Event struct {
	Name string
	Data string
}

// Room event names.
const (
	EventPhase       = "phase"
	EventParticipant = "participant"
	EventSubmission  = "submission"
	EventVote        = "vote"
)

const clientBuffer = 8

// Broker fans room events out to subscribed SSE clients. Subscriptions
// are keyed by room ID; a room with no subscribers costs nothing and
// publishing to it is a no-op. The pollable GET endpoints remain the
// source of truth - a dropped event only delays a client until its next
// reconnect or poll.
type Broker struct {
	mu    sync.RWMutex
	rooms map[string]map[chan Event]struct{}
}

func NewBroker() *Broker {
	return &Broker{rooms: make(map[string]map[chan Event]struct{})}
}

// Subscribe registers a new client for a room and returns its channel.
func (b *Broker) Subscribe(roomID string) chan Event {
	ch := make(chan Event, clientBuffer)

	b.mu.Lock()
	defer b.mu.Unlock()

	clients, ok := b.rooms[roomID]
	if !ok {
		clients = make(map[chan Event]struct{})
		b.rooms[roomID] = clients
	}
	clients[ch] = struct{}{}

	return ch
}

// Unsubscribe removes a client. The channel is closed so a draining
// handler loop terminates.
func (b *Broker) Unsubscribe(roomID string, ch chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	clients, ok := b.rooms[roomID]
	if !ok {
		return
	}
	if _, ok := clients[ch]; !ok {
		return
	}

	delete(clients, ch)
	close(ch)
	if len(clients) == 0 {
		delete(b.rooms, roomID)
	}
}

// Publish sends an event to every subscriber of a room. Sends never
// block: a client whose buffer is full misses the event and catches up
// on its next poll.
func (b *Broker) Publish(roomID string, ev Event) {
	// Sends happen under the read lock so Unsubscribe cannot close a
	// channel mid-send. They never block, so the hold is short.
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.rooms[roomID] {
		select {
		case ch <- ev:
		default:
			slog.Warn("dropping room event for slow client", "room_id", roomID, "event", ev.Name)
		}
	}
}

// SubscriberCount reports how many clients a room currently has.
func (b *Broker) SubscriberCount(roomID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.rooms[roomID])
}
