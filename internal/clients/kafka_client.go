package clients

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/spacesedan/polarity/config"
	"github.com/spacesedan/polarity/internal/models"
)

var producer *kafka.Producer

// InitKafkaProducer initializes the shared Kafka producer used to publish
// committed analysis results downstream.
func InitKafkaProducer(cfg config.KafkaConfig) error {
	slog.Info("[KafkaClient] Initializing Kafka Producer...",
		slog.String("broker", cfg.Broker))

	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":   cfg.Broker,
		"security.protocol":   "PLAINTEXT",
		"api.version.request": "true",
		"acks":                "all",
	})
	if err != nil {
		return fmt.Errorf("[KafkaClient] Failed to create producer: %w", err)
	}

	producer = p

	// Drain delivery reports so the internal queue never fills up.
	go func() {
		for e := range p.Events() {
			if m, ok := e.(*kafka.Message); ok && m.TopicPartition.Error != nil {
				slog.Warn("[KafkaClient] Delivery failed",
					slog.String("error", m.TopicPartition.Error.Error()))
			}
		}
	}()

	slog.Info("[KafkaClient] Kafka Producer initialized successfully")
	return nil
}

func CloseKafkaProducer() {
	if producer == nil {
		return
	}
	slog.Info("[KafkaClient] Flushing Kafka producer before shutdown...")
	if remaining := producer.Flush(5000); remaining > 0 {
		slog.Warn("[KafkaClient] Not all messages were delivered before shutdown",
			slog.Int("remaining", remaining))
	}
	producer.Close()
	slog.Info("[KafkaClient] Kafka producer shut down")
}

// PublishAnalysisResults sends a batch of committed results to the given
// topic as one JSON payload.
func PublishAnalysisResults(topic string, results []models.AnalysisResult) error {
	if producer == nil {
		return fmt.Errorf("[KafkaClient] producer is not initialized")
	}

	jsonData, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("[KafkaClient] failed to serialize results: %w", err)
	}

	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Value:          jsonData,
	}

	if err := producer.Produce(msg, nil); err != nil {
		return fmt.Errorf("[KafkaClient] failed to produce message: %w", err)
	}

	slog.Info("[KafkaClient] Published analysis results",
		slog.String("topic", topic),
		slog.Int("count", len(results)))
	return nil
}
