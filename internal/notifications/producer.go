package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"letsparkit/internal/parking"
	"letsparkit/internal/shared/config"
	"letsparkit/pkg/logger"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

// Publisher forwards domain events to the notification pipeline
type Publisher interface {
	Publish(ctx context.Context, event parking.Event) error
	Close() error
}

// KafkaProducerConfig contains configuration for the Kafka event producer
type KafkaProducerConfig struct {
	Brokers          []string
	EventsTopic      string
	RetryMax         int
	TimeoutMs        int
	RequiredAcks     sarama.RequiredAcks
	CompressionType  sarama.CompressionCodec
	IdempotentWrites bool
	MaxMessageBytes  int
}

// DefaultKafkaProducerConfig returns a producer configuration for the given app config
func DefaultKafkaProducerConfig(cfg config.KafkaConfig) *KafkaProducerConfig {
	return &KafkaProducerConfig{
		Brokers:          cfg.Brokers,
		EventsTopic:      cfg.EventsTopic,
		RetryMax:         3,
		TimeoutMs:        10000,
		RequiredAcks:     sarama.WaitForAll,
		CompressionType:  sarama.CompressionSnappy,
		IdempotentWrites: true,
		MaxMessageBytes:  1000000,
	}
}

// SaramaConfig builds the sarama producer settings
func (c *KafkaProducerConfig) SaramaConfig() *sarama.Config {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = c.RequiredAcks
	saramaConfig.Producer.Compression = c.CompressionType
	saramaConfig.Producer.Retry.Max = c.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(c.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = c.IdempotentWrites
	saramaConfig.Producer.MaxMessageBytes = c.MaxMessageBytes

	if c.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	// Events of one user land on one partition
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner
	return saramaConfig
}

// KafkaPublisher writes domain events to the events topic
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *logger.Logger
}

// NewKafkaPublisher dials the brokers and returns a publisher
func NewKafkaPublisher(config *KafkaProducerConfig) (*KafkaPublisher, error) {
	producer, err := sarama.NewSyncProducer(config.Brokers, config.SaramaConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}
	return NewKafkaPublisherWithProducer(producer, config.EventsTopic), nil
}

// NewKafkaPublisherWithProducer wraps an existing producer
func NewKafkaPublisherWithProducer(producer sarama.SyncProducer, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger.GetDefault().WithComponent("notifications"),
	}
}

func (kp *KafkaPublisher) Publish(ctx context.Context, event parking.Event) error {
	msg := EventMessage{ID: uuid.NewString(), Event: event}
	value, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     kp.topic,
		Key:       sarama.StringEncoder(partitionKey(event)),
		Value:     sarama.ByteEncoder(value),
		Headers:   createHeaders(msg),
		Timestamp: event.OccurredAt,
	}

	partition, offset, err := kp.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send event to Kafka: %w", err)
	}

	kp.logger.InfoWithContext(ctx, "Event published to Kafka", map[string]interface{}{
		"topic":      kp.topic,
		"partition":  partition,
		"offset":     offset,
		"event_type": event.Type,
	})
	return nil
}

func (kp *KafkaPublisher) Close() error {
	if kp.producer != nil {
		if err := kp.producer.Close(); err != nil {
			return fmt.Errorf("failed to close Kafka producer: %w", err)
		}
	}
	return nil
}

func partitionKey(event parking.Event) string {
	if id := event.UserID(); id != "" {
		return id
	}
	return event.LocationID()
}

// createHeaders creates Kafka headers for an event message
func createHeaders(msg EventMessage) []sarama.RecordHeader {
	headers := []sarama.RecordHeader{
		{Key: []byte("event_id"), Value: []byte(msg.ID)},
		{Key: []byte("event_type"), Value: []byte(msg.Event.Type)},
		{Key: []byte("producer"), Value: []byte("letsparkit")},
		{Key: []byte("occurred_at"), Value: []byte(msg.Event.OccurredAt.Format(time.RFC3339))},
	}

	if userID := msg.Event.UserID(); userID != "" {
		headers = append(headers, sarama.RecordHeader{Key: []byte("user_id"), Value: []byte(userID)})
	}
	if msg.Event.Booking != nil {
		headers = append(headers, sarama.RecordHeader{Key: []byte("booking_id"), Value: []byte(msg.Event.Booking.ID)})
	}
	return headers
}

// InlinePublisher renders and delivers notices in-process when Kafka is disabled
type InlinePublisher struct {
	processor *Processor
}

func NewInlinePublisher(processor *Processor) *InlinePublisher {
	return &InlinePublisher{processor: processor}
}

func (ip *InlinePublisher) Publish(ctx context.Context, event parking.Event) error {
	return ip.processor.HandleEvent(ctx, event)
}

func (ip *InlinePublisher) Close() error { return nil }

// Sink adapts a Publisher to the store's event sink. Failures are logged and
// never reach the writer.
func Sink(publisher Publisher) parking.EventSink {
	log := logger.GetDefault().WithComponent("notifications")
	return parking.EventSinkFunc(func(ctx context.Context, event parking.Event) {
		if err := publisher.Publish(ctx, event); err != nil {
			log.ErrorWithContext(ctx, "Failed to publish event", err, map[string]interface{}{
				"event_type": event.Type,
			})
		}
	})
}
