package events

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Skotchmaster/restaurant_pos/internal/config"
	"github.com/Skotchmaster/restaurant_pos/internal/logging"
	"github.com/Skotchmaster/restaurant_pos/internal/mykafka"
	"github.com/Skotchmaster/restaurant_pos/internal/rabbitmq"
)

const (
	TopicMenu         = "menu_events"
	TopicOrders       = "order_events"
	TopicBilling      = "billing_events"
	TopicReservations = "reservation_events"
)

const publishTimeout = 5 * time.Second

type Event struct {
	Type string    `json:"type"`
	ID   uint      `json:"id"`
	At   time.Time `json:"at"`
	Data any       `json:"data,omitempty"`
}

type Publisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
	Close() error
}

// New builds the publisher selected by cfg.Events.
func New(cfg config.Config) (Publisher, error) {
	switch cfg.Events {
	case config.EventsKafka:
		return mykafka.NewProducer(cfg.KafkaBrokers)
	case config.EventsRabbitMQ:
		return rabbitmq.Dial(cfg.RabbitMQURL, cfg.RabbitMQExchange)
	case config.EventsNone, "":
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("unsupported events driver %q", cfg.Events)
	}
}

// Emit publishes ev keyed by its entity id. Failures are logged and never
// returned: the write that produced the event is already committed.
func Emit(ctx context.Context, p Publisher, topic string, ev Event) {
	if p == nil {
		return
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}

	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := p.PublishEvent(pctx, topic, strconv.FormatUint(uint64(ev.ID), 10), ev); err != nil {
		logging.FromContext(ctx).Error("event_publish_failed", "topic", topic, "type", ev.Type, "id", ev.ID, "error", err)
	}
}

type Nop struct{}

func (Nop) PublishEvent(context.Context, string, string, any) error { return nil }
func (Nop) Close() error                                            { return nil }
