package notify

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"

	domorder "example.com/storefront-cart/internal/domain/order"
)

// Kafka publishes placed orders to a topic, keyed by owner so one visitor's
// orders stay in partition order.
type Kafka struct {
	writer *kafka.Writer
}

func NewKafka(brokers []string, topic string) *Kafka {
	return &Kafka{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
		},
	}
}

func (k *Kafka) Notify(ctx context.Context, o *domorder.Order) error {
	body, err := marshalOrder(o)
	if err != nil {
		return fmt.Errorf("marshal order payload: %w", err)
	}
	err = k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(o.OwnerKey),
		Value: body,
	})
	if err != nil {
		return fmt.Errorf("publish order: %w", err)
	}
	return nil
}

func (k *Kafka) Close() error {
	return k.writer.Close()
}
