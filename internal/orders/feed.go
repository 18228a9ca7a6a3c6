package orders

import (
	kafkax "github.com/Mobile-Craft/order-manager/internal/kafka"
	kafkago "github.com/segmentio/kafka-go"
)

// KafkaFeed publishes change envelopes to the orders.changed topic.
type KafkaFeed struct {
	Producer *kafkax.Producer
}

func (f *KafkaFeed) Announce(env Envelope) {
	f.Producer.Publish(
		PartitionKey(env.CorrelationID),
		kafkax.MustMarshal(env),
		kafkago.Header{Key: "x-event-type", Value: []byte(env.EventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
