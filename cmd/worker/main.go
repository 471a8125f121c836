// The worker consumes portfolio publish events and warms the Redis snapshot
// cache so the first public fetch after a publish is a cache hit.
package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khangtran/folio/adapters/event"
	"github.com/khangtran/folio/adapters/persistence"
	"github.com/khangtran/folio/internal/config"
	"github.com/khangtran/folio/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	appLogger.Info("Starting Folio Worker...")

	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Redis", err)
	}
	defer redisClient.Close()

	registry := persistence.NewSnapshotCache(
		persistence.NewPostgresRegistryRepo(dbPool, appLogger),
		redisClient,
		cfg.Redis.CacheTTL,
		appLogger,
	)
	warmer, ok := registry.(persistence.Warmer)
	if !ok {
		appLogger.Fatal("registry does not support cache warming", nil)
	}

	consumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicPortfolioEvents,
		GroupID:  "snapshot-warmer-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer consumer.Close()

	appLogger.Info("Worker listening", zap.String("topic", event.TopicPortfolioEvents))

	ctx := context.Background()
	for {
		msg, err := consumer.ReadMessage(ctx)
		if err != nil {
			appLogger.Error("Failed to read message from Kafka", err)
			continue
		}

		var payload event.PortfolioEventPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			appLogger.Error("Failed to unmarshal event, skipping", err, zap.String("key", string(msg.Key)))
			commitMessage(consumer, msg, appLogger)
			continue
		}

		appLogger.Info("Processing event",
			zap.String("event_type", payload.EventType),
			zap.String("portfolio_id", payload.PortfolioID))

		if err := warmer.Warm(ctx, payload.PortfolioID); err != nil {
			appLogger.Error("Failed to warm snapshot cache", err, zap.String("portfolio_id", payload.PortfolioID))
			continue
		}

		commitMessage(consumer, msg, appLogger)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message, appLogger logger.Logger) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		appLogger.Error("Failed to commit message", err)
	}
}
