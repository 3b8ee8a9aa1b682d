package events_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/restaurant_pos/internal/config"
	"github.com/Skotchmaster/restaurant_pos/internal/events"
	"github.com/Skotchmaster/restaurant_pos/internal/events/eventstest"
	"github.com/Skotchmaster/restaurant_pos/internal/logging"
)

func TestEmit_KeysByEntityID(t *testing.T) {
	rec := &eventstest.Recorder{}
	events.Emit(context.Background(), rec, events.TopicOrders, events.Event{Type: "order_created", ID: 42})

	got := rec.Events()
	require.Len(t, got, 1)
	assert.Equal(t, events.TopicOrders, got[0].Topic)
	assert.Equal(t, "42", got[0].Key)
	assert.Equal(t, "order_created", got[0].Event.Type)
	assert.False(t, got[0].Event.At.IsZero())
}

func TestEmit_SwallowsPublishErrors(t *testing.T) {
	rec := &eventstest.Recorder{Err: errors.New("broker down")}
	assert.NotPanics(t, func() {
		events.Emit(context.Background(), rec, events.TopicBilling, events.Event{Type: "bill_paid", ID: 1})
	})
	assert.Empty(t, rec.Events())
}

func TestEmit_NilPublisher(t *testing.T) {
	assert.NotPanics(t, func() {
		events.Emit(context.Background(), nil, events.TopicMenu, events.Event{Type: "menu_item_created", ID: 1})
	})
}

func TestNew_DefaultsToNop(t *testing.T) {
	p, err := events.New(config.Config{})
	require.NoError(t, err)
	assert.IsType(t, events.Nop{}, p)
	require.NoError(t, p.Close())
}

// blockingPublisher holds every publish until release is closed.
type blockingPublisher struct {
	eventstest.Recorder
	release chan struct{}
	once    sync.Once
}

func (b *blockingPublisher) PublishEvent(ctx context.Context, topic, key string, event any) error {
	<-b.release
	return b.Recorder.PublishEvent(ctx, topic, key, event)
}

func (b *blockingPublisher) unblock() { b.once.Do(func() { close(b.release) }) }

func TestAsync_EmitDoesNotWaitForBroker(t *testing.T) {
	slow := &blockingPublisher{release: make(chan struct{})}
	t.Cleanup(slow.unblock)
	a := events.NewAsync(slow, 4, logging.NewWithWriter(io.Discard, "error"))

	start := time.Now()
	events.Emit(context.Background(), a, events.TopicOrders, events.Event{Type: "order_created", ID: 1})
	assert.Less(t, time.Since(start), time.Second)
	assert.Empty(t, slow.Events())

	slow.unblock()
	require.NoError(t, a.Close())
	assert.Equal(t, []string{"order_created"}, slow.Types())
}

func TestAsync_DropsWhenQueueFull(t *testing.T) {
	slow := &blockingPublisher{release: make(chan struct{})}
	t.Cleanup(slow.unblock)
	a := events.NewAsync(slow, 1, logging.NewWithWriter(io.Discard, "error"))

	ctx := context.Background()
	// The worker takes at most one event, the queue holds one more.
	var full error
	for i := 0; i < 3; i++ {
		if err := a.PublishEvent(ctx, events.TopicMenu, "1", events.Event{Type: "menu_item_updated"}); err != nil {
			full = err
		}
	}
	require.ErrorIs(t, full, events.ErrQueueFull)

	slow.unblock()
	require.NoError(t, a.Close())
	assert.ErrorIs(t, a.PublishEvent(ctx, events.TopicMenu, "1", events.Event{}), events.ErrClosed)
}

func TestAsync_CloseDrainsQueue(t *testing.T) {
	rec := &eventstest.Recorder{}
	a := events.NewAsync(rec, 8, logging.NewWithWriter(io.Discard, "error"))

	for i := uint(1); i <= 5; i++ {
		events.Emit(context.Background(), a, events.TopicBilling, events.Event{Type: "bill_created", ID: i})
	}
	require.NoError(t, a.Close())
	require.Len(t, rec.Events(), 5)
	assert.Equal(t, "5", rec.Events()[4].Key)
}
