package producer

import (
	"context"
	"encoding/json"
	"fmt"

	wbfkafka "github.com/wb-go/wbf/kafka"
	"github.com/wb-go/wbf/retry"

	"github.com/aliskhannn/image-compressor/internal/config"
	"github.com/aliskhannn/image-compressor/internal/model"
)

// Producer publishes compression events to Kafka.
type Producer struct {
	Client   *wbfkafka.Producer
	strategy retry.Strategy
	cfg      *config.Kafka
}

// New creates a new Producer.
// - cfg: Kafka configuration struct
// - s: retry strategy for sends
func New(cfg *config.Kafka, s retry.Strategy) *Producer {
	p := wbfkafka.NewProducer(cfg.Brokers, cfg.Topic)

	return &Producer{
		Client:   p,
		cfg:      cfg,
		strategy: s,
	}
}

// Produce serializes the event to JSON and sends it to Kafka.
// The event ID is used as the message key for partitioning and ordering.
func (p *Producer) Produce(ctx context.Context, event model.CompressionEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %v", err)
	}

	key := []byte(event.ID.String())

	if err = p.Client.SendWithRetry(ctx, p.strategy, key, data); err != nil {
		return fmt.Errorf("failed to send event: %v", err)
	}

	return nil
}
