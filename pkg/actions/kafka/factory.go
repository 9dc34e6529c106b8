package kafka_action

import (
	"errors"
	"log/slog"

	"github.com/marden/flint/pkg/models"
	"github.com/marden/flint/pkg/registry"
)

var ErrConfigNil = errors.New("config cannot be nil")

func NewKafkaPublishActionFactory() registry.ActionFactory {
	return &KafkaPublishActionFactory{}
}

type KafkaPublishActionFactory struct{}

func (*KafkaPublishActionFactory) ID() string {
	return "kafka_publish"
}

func (*KafkaPublishActionFactory) Name() string {
	return "Kafka Publish"
}

func (*KafkaPublishActionFactory) Description() string {
	return "Publish a message to a Kafka topic"
}

func (*KafkaPublishActionFactory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id": map[string]any{"type": "string"},
			"brokers": map[string]any{
				"description": "Broker addresses, comma-separated or as a list",
			},
			"topic":   map[string]any{"type": "string"},
			"message": map[string]any{"type": "string"},
		},
		"required": []string{"brokers", "topic"},
	}
}

func (f *KafkaPublishActionFactory) Create(config map[string]any, logger *slog.Logger) (models.Action, error) {
	if config == nil {
		return nil, ErrConfigNil
	}

	return NewKafkaPublishAction(config, logger)
}
