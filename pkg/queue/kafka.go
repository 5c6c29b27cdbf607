package queue

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"club-booking/pkg/utils"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"
)

// Publisher delivers domain events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, eventType, key string, payload []byte) error
	Close()
}

// KafkaPublisher publishes to a single topic, keyed by entity so consumers
// see events for one booking in order.
type KafkaPublisher struct {
	client *kgo.Client
	topic  string
	log    *zap.Logger
}

func NewKafkaPublisher(ctx context.Context, config utils.KafkaConfig, log *zap.Logger) (*KafkaPublisher, error) {
	opts := []kgo.Opt{
		kgo.SeedBrokers(config.Brokers...),
		kgo.ClientID("club-booking"),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
		kgo.RecordRetries(3),
		kgo.ProduceRequestTimeout(10 * time.Second),
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka client: %w", err)
	}

	// Ping to verify connection
	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping Kafka: %w", err)
	}

	return &KafkaPublisher{
		client: client,
		topic:  config.Topic,
		log:    log.With(zap.String("component", "kafka_publisher")),
	}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, eventType, key string, payload []byte) error {
	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(key),
		Value: payload,
		Headers: []kgo.RecordHeader{
			{Key: "event_type", Value: []byte(eventType)},
			{Key: "produced_at", Value: []byte(strconv.FormatInt(time.Now().Unix(), 10))},
		},
	}

	results := p.client.ProduceSync(ctx, record)
	if err := results.FirstErr(); err != nil {
		p.log.Error("Failed to publish record",
			zap.Error(err),
			zap.String("event_type", eventType),
			zap.String("key", key),
		)
		return fmt.Errorf("publish %s: %w", eventType, err)
	}

	return nil
}

func (p *KafkaPublisher) Close() {
	p.client.Close()
}
