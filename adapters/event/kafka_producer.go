package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/khangtran/folio/internal/config"
)

const (
	TopicPortfolioEvents = "portfolio.events"

	EventTypePublished = "portfolio.published"
)

// PortfolioEventPayload is the message emitted on every successful publish.
// The worker consumes it to warm the public snapshot cache.
type PortfolioEventPayload struct {
	EventType   string    `json:"event_type"`
	PortfolioID string    `json:"portfolio_id"`
	OwnerID     string    `json:"owner_id"`
	PublishedAt time.Time `json:"published_at"`
}

type KafkaProducerClient struct {
	PortfolioEventsWriter *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	portfolioWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicPortfolioEvents,
		Balancer: &kafka.LeastBytes{},
	}

	return &KafkaProducerClient{
		PortfolioEventsWriter: portfolioWriter,
	}, nil
}

func (c *KafkaProducerClient) EmitPortfolioEvent(ctx context.Context, payload PortfolioEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal portfolio event: %w", err)
	}
	return c.PortfolioEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.PortfolioID),
		Value: value,
	})
}

func (c *KafkaProducerClient) Close() {
	if c.PortfolioEventsWriter != nil {
		c.PortfolioEventsWriter.Close()
	}
}
