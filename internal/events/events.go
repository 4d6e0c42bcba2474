package events

import (
	"github.com/asaskevich/EventBus"
	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"

	"github.com/autimapro/autimapro/internal/domain"
)

const (
	TopicOrderPlaced = "order.placed"
	TopicOrderPaid   = "order.paid"
)

// Bus is the in-process event bus. Handlers run on a bounded worker pool so a
// slow subscriber never blocks a request handler.
type Bus struct {
	bus  EventBus.Bus
	pool *ants.Pool
}

func NewBus(workers int) (*Bus, error) {
	if workers <= 0 {
		workers = 4
	}
	pool, err := ants.NewPool(workers, ants.WithNonblocking(true))
	if err != nil {
		return nil, errors.Wrap(err, "create event worker pool")
	}
	return &Bus{bus: EventBus.New(), pool: pool}, nil
}

func (b *Bus) PublishOrderPlaced(o *domain.Order) {
	b.publish(TopicOrderPlaced, o)
}

func (b *Bus) PublishOrderPaid(o *domain.Order) {
	b.publish(TopicOrderPaid, o)
}

func (b *Bus) SubscribeOrderPlaced(fn func(*domain.Order)) error {
	return b.bus.Subscribe(TopicOrderPlaced, fn)
}

func (b *Bus) SubscribeOrderPaid(fn func(*domain.Order)) error {
	return b.bus.Subscribe(TopicOrderPaid, fn)
}

func (b *Bus) publish(topic string, o *domain.Order) {
	if err := b.pool.Submit(func() { b.bus.Publish(topic, o) }); err != nil {
		// Pool saturated or released; deliver inline rather than drop.
		b.bus.Publish(topic, o)
	}
}

func (b *Bus) Close() {
	b.pool.Release()
}
