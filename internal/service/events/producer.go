package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"smartwaste/internal/config"
	"smartwaste/internal/logger"
	"smartwaste/internal/model"
)

// Producer publishes task-created events to Kafka for downstream dispatch
// consumers. Publishing is best-effort from the pipeline's point of view:
// delivery failures are logged, never surfaced.
type Producer struct {
	producer     *kafka.Producer
	topic        string
	deliveryChan chan kafka.Event
	logger       *logger.Logger

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// NewProducer creates a Kafka producer from the given config.
func NewProducer(cfg config.KafkaConfig, logger *logger.Logger) (*Producer, error) {
	producerConfig := &kafka.ConfigMap{
		"bootstrap.servers": cfg.BootstrapServers,
		"security.protocol": cfg.SecurityProtocol,
		"sasl.mechanism":    cfg.SASLMechanism,
		"sasl.username":     cfg.SASLUsername,
		"sasl.password":     cfg.SASLPassword,
		"compression.type":  cfg.CompressionType,
		"acks":              cfg.Acks,

		// Idempotence so a retried publish cannot double-deliver a task
		"enable.idempotence": true,
	}

	p, err := kafka.NewProducer(producerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create producer: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	producer := &Producer{
		producer:     p,
		topic:        cfg.Topic,
		deliveryChan: make(chan kafka.Event, 1000),
		logger:       logger,
		ctx:          ctx,
		cancel:       cancel,
	}

	producer.wg.Add(1)
	go producer.handleDeliveryReports()

	logger.Info("Kafka producer initialized - topic: %s, servers: %s", cfg.Topic, cfg.BootstrapServers)
	return producer, nil
}

// handleDeliveryReports processes delivery confirmations in a separate goroutine.
func (p *Producer) handleDeliveryReports() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case e := <-p.deliveryChan:
			m, ok := e.(*kafka.Message)
			if !ok {
				continue
			}
			if m.TopicPartition.Error != nil {
				p.logger.Error("Task event delivery failed: %v", m.TopicPartition.Error)
			}
		}
	}
}

// NotifyTaskCreated publishes a task-created event keyed by task ID.
func (p *Producer) NotifyTaskCreated(task *model.Task) {
	payload, err := task.ToJSON()
	if err != nil {
		p.logger.Error("Failed to serialize task %s: %v", task.ID, err)
		return
	}

	message := &kafka.Message{
		TopicPartition: kafka.TopicPartition{
			Topic:     &p.topic,
			Partition: kafka.PartitionAny,
		},
		Key:   []byte(task.ID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "department", Value: []byte(task.Department)},
			{Key: "priority", Value: []byte(task.Priority)},
		},
	}

	if err := p.producer.Produce(message, p.deliveryChan); err != nil {
		p.logger.Error("Failed to publish task event %s: %v", task.ID, err)
	}
}

// Close flushes outstanding messages and stops the delivery handler.
func (p *Producer) Close() {
	p.producer.Flush(5000)
	p.cancel()
	p.producer.Close()
	p.wg.Wait()
}
