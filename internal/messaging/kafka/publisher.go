// Package kafka publishes court change events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"court-register-go/internal/config"
	"court-register-go/internal/notify"
	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kgo"
)

const (
	headerEventType = "eventType"
	headerMessageID = "messageId"
)

type producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Ping(ctx context.Context) error
	Close()
}

// ChangePublisher writes one record per change event, keyed by court id so
// the events of a court stay ordered within a partition.
type ChangePublisher struct {
	client  producer
	topic   string
	timeout time.Duration
}

func NewChangePublisher(cfg config.KafkaConfig) (*ChangePublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka: no brokers configured")
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.ClientID(cfg.ClientID),
		kgo.DefaultProduceTopic(cfg.ChangeTopic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka: new client: %w", err)
	}

	return newChangePublisher(client, cfg.ChangeTopic, cfg.PublishTimeout), nil
}

func newChangePublisher(client producer, topic string, timeout time.Duration) *ChangePublisher {
	return &ChangePublisher{client: client, topic: topic, timeout: timeout}
}

func (p *ChangePublisher) PublishChange(ctx context.Context, event notify.ChangeEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: encode change event: %w", err)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(event.ID),
		Value: body,
		Headers: []kgo.RecordHeader{
			{Key: headerEventType, Value: []byte(event.EventType)},
			{Key: headerMessageID, Value: []byte(uuid.NewString())},
		},
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("kafka: produce to %s: %w", p.topic, err)
	}
	return nil
}

// Ping checks that at least one broker answers.
func (p *ChangePublisher) Ping(ctx context.Context) error {
	return p.client.Ping(ctx)
}

func (p *ChangePublisher) Close() {
	p.client.Close()
}
