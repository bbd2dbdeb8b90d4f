// Package events publishes the single outbound event the analysis engine
// emits: analysis.completed, fired once per batch run (cmd/server only;
// the one-shot cmd/engine CLI has no broker to talk to).
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/IBM/sarama"

	"github.com/moneymule/graph-engine/internal/config"
)

// Producer publishes analysis-completed events to Kafka via a sync producer,
// mirroring the teacher's own producer setup (acks=all, bounded retries).
type Producer struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

// AnalysisCompletedEvent is the payload published after each batch run.
type AnalysisCompletedEvent struct {
	JobID                     string    `json:"job_id"`
	TotalAccountsAnalyzed     int       `json:"total_accounts_analyzed"`
	SuspiciousAccountsFlagged int       `json:"suspicious_accounts_flagged"`
	FraudRingsDetected        int       `json:"fraud_rings_detected"`
	ProcessingTimeSeconds     float64   `json:"processing_time_seconds"`
	CompletedAt               time.Time `json:"completed_at"`
}

// NewProducer dials the configured Kafka brokers and returns a ready Producer.
func NewProducer(cfg config.KafkaConfig, logger *slog.Logger) (*Producer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 5
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Partitioner = sarama.NewRandomPartitioner

	brokers := strings.Split(cfg.Brokers, ",")
	producer, err := sarama.NewSyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create producer: %w", err)
	}

	return &Producer{
		producer: producer,
		topic:    cfg.AnalysisCompletedTopic,
		logger:   logger,
	}, nil
}

// PublishAnalysisCompleted publishes the given event to the configured topic.
func (p *Producer) PublishAnalysisCompleted(ctx context.Context, event AnalysisCompletedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.topic,
		Value: sarama.StringEncoder(data),
		Headers: []sarama.RecordHeader{
			{Key: []byte("content-type"), Value: []byte("application/json")},
		},
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send message to topic %s: %w", p.topic, err)
	}

	p.logger.Debug("published analysis completed event",
		"topic", p.topic,
		"partition", partition,
		"offset", offset,
		"job_id", event.JobID)

	return nil
}

// Close closes the underlying producer connection.
func (p *Producer) Close() error {
	return p.producer.Close()
}
