package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"court-register-go/internal/auth"
	courtdomain "court-register-go/internal/domain/court"
	"court-register-go/internal/metrics"
	"court-register-go/pkg/logger"
)

// Notifier publishes the change event and the audit record for a committed
// write. Both are attempted even when the first fails.
type Notifier struct {
	service string
	changes ChangePublisher
	audits  AuditPublisher
	metrics *metrics.Metrics
	log     logger.Logger
	now     func() time.Time
}

func NewNotifier(service string, changes ChangePublisher, audits AuditPublisher, m *metrics.Metrics, log logger.Logger) *Notifier {
	return &Notifier{
		service: service,
		changes: changes,
		audits:  audits,
		metrics: m,
		log:     log,
		now:     time.Now,
	}
}

func (n *Notifier) Notify(ctx context.Context, notification courtdomain.Notification) error {
	n.metrics.IncWrite(string(notification.Audit))

	changeErr := n.publishChange(ctx, ChangeEvent{
		EventType: string(notification.Event),
		ID:        notification.CourtID,
	})

	audit, err := n.auditEvent(ctx, notification)
	if err != nil {
		n.log.InternalError("notify: encode audit details failed", err, "audit", notification.Audit, "court_id", notification.CourtID)
		return errors.Join(changeErr, err)
	}
	auditErr := n.publishAudit(ctx, audit)

	return errors.Join(changeErr, auditErr)
}

func (n *Notifier) publishChange(ctx context.Context, event ChangeEvent) error {
	started := time.Now()
	err := n.changes.PublishChange(ctx, event)
	n.metrics.ObservePublish(metrics.ChannelChange, started, err)
	if err != nil {
		n.log.InternalError("notify: publish change event failed", err, "event_type", event.EventType, "court_id", event.ID)
		return fmt.Errorf("publish change event: %w", err)
	}
	return nil
}

func (n *Notifier) publishAudit(ctx context.Context, event AuditEvent) error {
	started := time.Now()
	err := n.audits.PublishAudit(ctx, event)
	n.metrics.ObservePublish(metrics.ChannelAudit, started, err)
	if err != nil {
		n.log.InternalError("notify: publish audit event failed", err, "what", event.What, "who", event.Who)
		return fmt.Errorf("publish audit event: %w", err)
	}
	return nil
}

func (n *Notifier) auditEvent(ctx context.Context, notification courtdomain.Notification) (AuditEvent, error) {
	event := AuditEvent{
		What:    string(notification.Audit),
		When:    n.now().UTC(),
		Who:     auth.PrincipalName(ctx),
		Service: n.service,
	}
	if notification.Details == nil {
		return event, nil
	}

	details, err := json.Marshal(notification.Details)
	if err != nil {
		return AuditEvent{}, err
	}
	event.Details = string(details)
	return event, nil
}
