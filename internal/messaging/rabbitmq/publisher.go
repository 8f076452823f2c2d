// Package rabbitmq publishes audit events to a durable RabbitMQ queue.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"court-register-go/internal/config"
	"court-register-go/internal/notify"
	"court-register-go/pkg/logger"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

var (
	ErrNacked     = errors.New("rabbitmq: broker nacked message")
	ErrUnroutable = errors.New("rabbitmq: message returned as unroutable")
)

type confirmation interface {
	WaitContext(ctx context.Context) (bool, error)
}

// channel is a confirm-mode channel publishing mandatory messages to the
// default exchange.
type channel interface {
	Publish(ctx context.Context, key string, msg amqp.Publishing) (confirmation, error)
	// Returned yields the next message the broker handed back, if any.
	Returned() (amqp.Return, bool)
	QueueDeclarePassive(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	Close() error
}

// QueueStats reports the audit queue depth for the health endpoint.
type QueueStats struct {
	Messages  int `json:"messagesOnQueue"`
	Consumers int `json:"consumers"`
}

// AuditPublisher keeps one confirm-mode channel open and reopens it after a
// failed publish. A publish succeeds only once the broker has acked it and
// has not returned it as unroutable.
type AuditPublisher struct {
	queue   string
	service string
	timeout time.Duration
	dial    func() (channel, error)
	log     logger.Logger

	mu sync.Mutex
	ch channel
}

func NewAuditPublisher(cfg config.RabbitMQConfig, service string, log logger.Logger) (*AuditPublisher, error) {
	if cfg.URL == "" {
		return nil, errors.New("rabbitmq: no url configured")
	}

	p := newAuditPublisher(cfg.AuditQueue, service, cfg.PublishTimeout, func() (channel, error) {
		return dial(cfg.URL, cfg.AuditQueue)
	}, log)

	if _, err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

func newAuditPublisher(queue, service string, timeout time.Duration, dial func() (channel, error), log logger.Logger) *AuditPublisher {
	return &AuditPublisher{queue: queue, service: service, timeout: timeout, dial: dial, log: log}
}

func (p *AuditPublisher) PublishAudit(ctx context.Context, event notify.AuditEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("rabbitmq: encode audit event: %w", err)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channelLocked()
	if err != nil {
		return err
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    event.When,
		Type:         event.What,
		AppId:        p.service,
		Body:         body,
	}
	confirm, err := ch.Publish(ctx, p.queue, msg)
	if err != nil {
		p.resetLocked()
		return fmt.Errorf("rabbitmq: publish to %s: %w", p.queue, err)
	}

	acked, err := confirm.WaitContext(ctx)
	if err != nil {
		p.resetLocked()
		return fmt.Errorf("rabbitmq: confirm from %s: %w", p.queue, err)
	}
	if !acked {
		return fmt.Errorf("%w: %s %s", ErrNacked, p.queue, msg.MessageId)
	}

	// the broker sends basic.return before the ack of a mandatory message
	for {
		returned, ok := ch.Returned()
		if !ok {
			return nil
		}
		if returned.MessageId == msg.MessageId {
			return fmt.Errorf("%w: %s %s: %s", ErrUnroutable, p.queue, msg.MessageId, returned.ReplyText)
		}
	}
}

// Stats inspects the audit queue without modifying it.
func (p *AuditPublisher) Stats(ctx context.Context) (QueueStats, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channelLocked()
	if err != nil {
		return QueueStats{}, err
	}

	queue, err := ch.QueueDeclarePassive(p.queue, true, false, false, false, nil)
	if err != nil {
		// a failed passive declare closes the channel
		p.resetLocked()
		return QueueStats{}, fmt.Errorf("rabbitmq: inspect %s: %w", p.queue, err)
	}
	return QueueStats{Messages: queue.Messages, Consumers: queue.Consumers}, nil
}

func (p *AuditPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch == nil {
		return nil
	}
	err := p.ch.Close()
	p.ch = nil
	return err
}

func (p *AuditPublisher) connect() (channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.channelLocked()
}

func (p *AuditPublisher) channelLocked() (channel, error) {
	if p.ch != nil {
		return p.ch, nil
	}
	ch, err := p.dial()
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: connect: %w", err)
	}
	p.ch = ch
	return ch, nil
}

func (p *AuditPublisher) resetLocked() {
	if p.ch == nil {
		return
	}
	if err := p.ch.Close(); err != nil {
		p.log.Warn("rabbitmq: close channel failed", "err", err)
	}
	p.ch = nil
}

// connChannel owns the connection behind its channel.
type connChannel struct {
	*amqp.Channel
	conn    *amqp.Connection
	returns chan amqp.Return
}

func (c connChannel) Publish(ctx context.Context, key string, msg amqp.Publishing) (confirmation, error) {
	confirm, err := c.PublishWithDeferredConfirmWithContext(ctx, "", key, true, false, msg)
	if err != nil {
		return nil, err
	}
	if confirm == nil {
		return nil, errors.New("rabbitmq: channel not in confirm mode")
	}
	return confirm, nil
}

func (c connChannel) Returned() (amqp.Return, bool) {
	select {
	case returned, ok := <-c.returns:
		return returned, ok
	default:
		return amqp.Return{}, false
	}
}

func (c connChannel) Close() error {
	return errors.Join(c.Channel.Close(), c.conn.Close())
}

func dial(url, queue string) (channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		_ = conn.Close()
		return nil, err
	}
	returns := ch.NotifyReturn(make(chan amqp.Return, 16))

	return connChannel{Channel: ch, conn: conn, returns: returns}, nil
}
