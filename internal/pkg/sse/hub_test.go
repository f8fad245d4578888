package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesAllSubscribers(t *testing.T) {
	hub := NewHub()

	ch1, cleanup1 := hub.Subscribe("user-a")
	defer cleanup1()
	ch2, cleanup2 := hub.Subscribe("user-a")
	defer cleanup2()

	hub.Publish("user-a", Event{Name: "notification", Data: "hello"})

	for _, ch := range []chan Event{ch1, ch2} {
		select {
		case ev := <-ch:
			assert.Equal(t, "notification", ev.Name)
			assert.Equal(t, "hello", ev.Data)
		default:
			t.Fatal("expected a buffered event")
		}
	}
}

func TestHub_PublishDoesNotCrossUsers(t *testing.T) {
	hub := NewHub()

	chA, cleanupA := hub.Subscribe("user-a")
	defer cleanupA()
	chB, cleanupB := hub.Subscribe("user-b")
	defer cleanupB()

	hub.Publish("user-a", Event{Name: "notification"})

	assert.Len(t, chA, 1)
	assert.Len(t, chB, 0)
}

func TestHub_CleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe("user-a")
	require.Equal(t, 1, hub.SubscriberCount("user-a"))

	cleanup()
	assert.Equal(t, 0, hub.SubscriberCount("user-a"))

	// Publishing after cleanup must not panic on the closed channel.
	hub.Publish("user-a", Event{Name: "notification"})
}

func TestHub_FullChannelIsSkipped(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("user-a")
	defer cleanup()

	for i := 0; i < cap(ch)+5; i++ {
		hub.Publish("user-a", Event{Name: "notification", Data: i})
	}

	assert.Equal(t, cap(ch), len(ch))
}

func TestHub_PublishToMany(t *testing.T) {
	hub := NewHub()

	chA, cleanupA := hub.Subscribe("user-a")
	defer cleanupA()
	chB, cleanupB := hub.Subscribe("user-b")
	defer cleanupB()

	hub.PublishToMany([]string{"user-a", "user-b"}, Event{Name: "notification"})

	assert.Len(t, chA, 1)
	assert.Len(t, chB, 1)
}
