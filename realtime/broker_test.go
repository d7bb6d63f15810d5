// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package realtime

import (
	"testing"
	"time"
)

func TestBroker_PublishReachesSubscriber(t *testing.T) {
	b := NewBroker()

	ch := b.Subscribe("room-1")
	defer b.Unsubscribe("room-1", ch)

	b.Publish("room-1", Event{Name: EventPhase, Data: "voting"})

	select {
	case ev := <-ch:
		if ev.Name != EventPhase {
			t.Errorf("Expected event %s, got %s", EventPhase, ev.Name)
		}
		if ev.Data != "voting" {
			t.Errorf("Expected data 'voting', got '%s'", ev.Data)
		}
	case <-time.After(time.Second):
		t.Fatal("Expected event, got none")
	}
}

func TestBroker_RoomsAreIsolated(t *testing.T) {
	b := NewBroker()

	ch1 := b.Subscribe("room-1")
	ch2 := b.Subscribe("room-2")
	defer b.Unsubscribe("room-1", ch1)
	defer b.Unsubscribe("room-2", ch2)

	b.Publish("room-1", Event{Name: EventVote, Data: "sub-1"})

	select {
	case <-ch1:
	case <-time.After(time.Second):
		t.Fatal("Expected event in room-1")
	}

	select {
	case ev := <-ch2:
		t.Errorf("room-2 should not receive room-1 events, got %v", ev)
	default:
	}
}

func TestBroker_FanOut(t *testing.T) {
	b := NewBroker()

	ch1 := b.Subscribe("room-1")
	ch2 := b.Subscribe("room-1")
	defer b.Unsubscribe("room-1", ch1)
	defer b.Unsubscribe("room-1", ch2)

	b.Publish("room-1", Event{Name: EventSubmission, Data: "pizza"})

	for i, ch := range []chan Event{ch1, ch2} {
		select {
		case ev := <-ch:
			if ev.Data != "pizza" {
				t.Errorf("subscriber %d: expected data 'pizza', got '%s'", i, ev.Data)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d: expected event, got none", i)
		}
	}
}

func TestBroker_UnsubscribeClosesChannel(t *testing.T) {
	b := NewBroker()

	ch := b.Subscribe("room-1")
	b.Unsubscribe("room-1", ch)

	if _, open := <-ch; open {
		t.Error("Expected channel to be closed after unsubscribe")
	}

	if n := b.SubscriberCount("room-1"); n != 0 {
		t.Errorf("Expected 0 subscribers after unsubscribe, got %d", n)
	}

	// Publishing to an empty room must not panic
	b.Publish("room-1", Event{Name: EventPhase, Data: "results"})
}

func TestBroker_SlowSubscriberDoesNotBlock(t *testing.T) {
	b := NewBroker()

	// Never drained; fill past the buffer
	ch := b.Subscribe("room-1")
	defer b.Unsubscribe("room-1", ch)

	done := make(chan struct{})
	go func() {
		for i := 0; i < clientBuffer*2; i++ {
			b.Publish("room-1", Event{Name: EventVote, Data: "sub-1"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a slow subscriber")
	}
}

func TestBroker_SubscriberCount(t *testing.T) {
	b := NewBroker()

	if n := b.SubscriberCount("room-1"); n != 0 {
		t.Errorf("Expected 0 subscribers, got %d", n)
	}

	ch1 := b.Subscribe("room-1")
	ch2 := b.Subscribe("room-1")

	if n := b.SubscriberCount("room-1"); n != 2 {
		t.Errorf("Expected 2 subscribers, got %d", n)
	}

	b.Unsubscribe("room-1", ch1)
	b.Unsubscribe("room-1", ch2)

	if n := b.SubscriberCount("room-1"); n != 0 {
		t.Errorf("Expected 0 subscribers, got %d", n)
	}
}
