package notifications

import (
	"context"
	"fmt"
	"sync"
	"time"

	"letsparkit/internal/shared/config"
	"letsparkit/pkg/logger"

	"github.com/IBM/sarama"
)

type ConsumerConfig struct {
	Brokers          []string
	GroupID          string
	Topics           []string
	SessionTimeoutMs int
	HeartbeatMs      int
	RetryBackoffMs   int
	OffsetOldest     bool
}

func DefaultConsumerConfig(cfg config.KafkaConfig) *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:          cfg.Brokers,
		GroupID:          cfg.ConsumerGroupID,
		Topics:           []string{cfg.EventsTopic},
		SessionTimeoutMs: 30000,
		HeartbeatMs:      3000,
		RetryBackoffMs:   100,
	}
}

// KafkaConsumer runs consumer group workers over the events topic
type KafkaConsumer struct {
	consumerGroup sarama.ConsumerGroup
	processor     *Processor
	topics        []string
	logger        *logger.Logger
	wg            sync.WaitGroup
}

func NewKafkaConsumer(config *ConsumerConfig, processor *Processor) (*KafkaConsumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Session.Timeout = time.Duration(config.SessionTimeoutMs) * time.Millisecond
	saramaConfig.Consumer.Group.Heartbeat.Interval = time.Duration(config.HeartbeatMs) * time.Millisecond
	saramaConfig.Consumer.Retry.Backoff = time.Duration(config.RetryBackoffMs) * time.Millisecond
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	if config.OffsetOldest {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	}

	group, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}
	return NewKafkaConsumerWithGroup(group, config.Topics, processor), nil
}

func NewKafkaConsumerWithGroup(group sarama.ConsumerGroup, topics []string, processor *Processor) *KafkaConsumer {
	return &KafkaConsumer{
		consumerGroup: group,
		processor:     processor,
		topics:        topics,
		logger:        logger.GetDefault().WithComponent("notifications"),
	}
}

// StartConsumers launches numWorkers workers that run until ctx is cancelled
func (kc *KafkaConsumer) StartConsumers(ctx context.Context, numWorkers int) {
	if numWorkers < 1 {
		numWorkers = 1
	}
	kc.logger.Info("Starting notification consumers", "workers", numWorkers, "topics", kc.topics)

	go kc.handleErrors()

	for i := 0; i < numWorkers; i++ {
		kc.wg.Add(1)
		go func(workerID int) {
			defer kc.wg.Done()
			kc.runWorker(ctx, workerID)
		}(i)
	}
}

func (kc *KafkaConsumer) runWorker(ctx context.Context, workerID int) {
	handler := &consumerGroupHandler{processor: kc.processor, workerID: workerID, logger: kc.logger}

	for {
		select {
		case <-ctx.Done():
			return
		default:
			if err := kc.consumerGroup.Consume(ctx, kc.topics, handler); err != nil {
				kc.logger.Warn("Error consuming events", "worker", workerID, "error", err)
				select {
				case <-time.After(time.Second):
				case <-ctx.Done():
					return
				}
			}
		}
	}
}

func (kc *KafkaConsumer) handleErrors() {
	for err := range kc.consumerGroup.Errors() {
		kc.logger.Warn("Consumer group error", "error", err)
	}
}

// Stop closes the group and waits for the workers; cancel their context first
func (kc *KafkaConsumer) Stop() error {
	err := kc.consumerGroup.Close()
	kc.wg.Wait()
	if err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}
	return nil
}

type consumerGroupHandler struct {
	processor *Processor
	workerID  int
	logger    *logger.Logger
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok || message == nil {
				return nil
			}
			// A poison message is logged and committed so the partition keeps moving
			if err := h.processor.Process(session.Context(), message.Value); err != nil {
				h.logger.ErrorWithContext(session.Context(), "Failed to process event", err, map[string]interface{}{
					"worker":    h.workerID,
					"partition": message.Partition,
					"offset":    message.Offset,
				})
			}
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}
