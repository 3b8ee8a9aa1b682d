package events

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

var (
	ErrQueueFull = errors.New("events: publish queue full")
	ErrClosed    = errors.New("events: publisher closed")
)

type queued struct {
	topic string
	key   string
	event any
}

// Async hands events to a background worker so request handlers never wait
// on the broker. When the queue is full the event is dropped with ErrQueueFull.
type Async struct {
	next  Publisher
	log   *slog.Logger
	queue chan queued
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewAsync(next Publisher, size int, l *slog.Logger) *Async {
	if size <= 0 {
		size = 1
	}
	a := &Async{
		next:  next,
		log:   l,
		queue: make(chan queued, size),
		done:  make(chan struct{}),
	}
	go a.run()
	return a
}

func (a *Async) run() {
	defer close(a.done)
	for q := range a.queue {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		err := a.next.PublishEvent(ctx, q.topic, q.key, q.event)
		cancel()
		if err != nil {
			a.log.Error("event_publish_failed", "topic", q.topic, "key", q.key, "error", err)
		}
	}
}

func (a *Async) PublishEvent(_ context.Context, topic, key string, event any) error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return ErrClosed
	}
	select {
	case a.queue <- queued{topic: topic, key: key, event: event}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting events, drains the queue and closes the wrapped publisher.
func (a *Async) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	close(a.queue)
	a.mu.Unlock()

	<-a.done
	return a.next.Close()
}
