// Package kafka_action provides an action that publishes a message to
// a Kafka topic when its trigger fires.
package kafka_action

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/IBM/sarama"
)

type KafkaPublishAction struct {
	ID      string
	Brokers []string
	Topic   string
	Message string

	logger *slog.Logger

	// The producer is dialed on first execution so that triggers can be
	// loaded while the brokers are unreachable.
	mu       sync.Mutex
	producer sarama.SyncProducer
}

func NewKafkaPublishAction(config map[string]any, logger *slog.Logger) (*KafkaPublishAction, error) {
	id, _ := config["id"].(string)
	topic, _ := config["topic"].(string)
	message, _ := config["message"].(string)

	brokers := parseBrokers(config["brokers"])
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka_publish action requires at least one broker")
	}

	if topic == "" {
		return nil, fmt.Errorf("kafka_publish action requires a topic")
	}

	return &KafkaPublishAction{
		ID:      id,
		Brokers: brokers,
		Topic:   topic,
		Message: message,
		logger:  logger.With("module", "kafka_publish_action", "action_id", id),
	}, nil
}

func parseBrokers(value any) []string {
	switch v := value.(type) {
	case string:
		var brokers []string

		for _, b := range strings.Split(v, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}

		return brokers
	case []any:
		var brokers []string

		for _, item := range v {
			if b, ok := item.(string); ok && b != "" {
				brokers = append(brokers, b)
			}
		}

		return brokers
	default:
		return nil
	}
}

func (a *KafkaPublishAction) GetID() string   { return a.ID }
func (a *KafkaPublishAction) GetType() string { return "kafka_publish" }

func (a *KafkaPublishAction) GetConfig() map[string]any {
	return map[string]any{
		"id":      a.ID,
		"brokers": strings.Join(a.Brokers, ","),
		"topic":   a.Topic,
		"message": a.Message,
	}
}

func (a *KafkaPublishAction) Execute(_ context.Context) error {
	producer, err := a.getProducer()
	if err != nil {
		return fmt.Errorf("failed to connect kafka producer: %w", err)
	}

	partition, offset, err := producer.SendMessage(&sarama.ProducerMessage{
		Topic: a.Topic,
		Value: sarama.StringEncoder(a.Message),
	})
	if err != nil {
		return fmt.Errorf("failed to publish to topic %s: %w", a.Topic, err)
	}

	a.logger.Info("Published trigger message", "topic", a.Topic, "partition", partition, "offset", offset)

	return nil
}

func (a *KafkaPublishAction) getProducer() (sarama.SyncProducer, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.producer != nil {
		return a.producer, nil
	}

	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(a.Brokers, config)
	if err != nil {
		return nil, err
	}

	a.producer = producer

	return producer, nil
}

// Close releases the kafka producer if one was dialed.
func (a *KafkaPublishAction) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.producer == nil {
		return nil
	}

	err := a.producer.Close()
	a.producer = nil

	return err
}
