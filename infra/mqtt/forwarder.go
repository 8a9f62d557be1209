package mqtt

import (
	"context"

	"github.com/ygoas29/fieldway/core/schedule"
	"github.com/ygoas29/fieldway/infra/logger"
	"github.com/ygoas29/fieldway/internal/eventbus"
)

// Topics published by the forwarder, relative to the configured prefix.
const (
	TopicSlotsGenerated = "slots/generated"
	TopicSlotSuggested  = "slots/suggested"
	TopicReschedule     = "bookings/reschedule"
)

// Forwarder drains engine events from the bus and publishes them to the
// broker. Unknown event types are dropped.
type Forwarder struct {
	pub Publisher
	bus *eventbus.Bus[any]
	log logger.Logger
}

// NewForwarder creates a Forwarder.
func NewForwarder(pub Publisher, bus *eventbus.Bus[any]) *Forwarder {
	return &Forwarder{pub: pub, bus: bus, log: logger.New("mqtt_forwarder")}
}

// Run consumes events until the context is canceled or the bus closes.
func (f *Forwarder) Run(ctx context.Context) {
	sub := f.bus.Subscribe()
	for {
		select {
		case <-ctx.Done():
			f.bus.Unsubscribe(sub)
			return
		case ev, ok := <-sub:
			if !ok {
				return
			}
			f.forward(ev)
		}
	}
}

func (f *Forwarder) forward(ev any) {
	var (
		topic string
	)
	switch ev.(type) {
	case schedule.SlotsGeneratedEvent:
		topic = TopicSlotsGenerated
	case schedule.SlotSuggestedEvent:
		topic = TopicSlotSuggested
	case schedule.RescheduleDecidedEvent:
		topic = TopicReschedule
	default:
		return
	}
	if err := f.pub.Publish(topic, ev); err != nil {
		f.log.Errorf("forward to %s: %v", topic, err)
	}
}
