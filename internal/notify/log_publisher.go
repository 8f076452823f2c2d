package notify

import (
	"context"

	"court-register-go/pkg/logger"
)

// LogPublisher writes events to the log. It stands in for a broker that is not
// configured, typically in local development.
type LogPublisher struct {
	log logger.Logger
}

func NewLogPublisher(log logger.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) PublishChange(ctx context.Context, event ChangeEvent) error {
	p.log.Info("notify: change event", "event_type", event.EventType, "court_id", event.ID)
	return nil
}

func (p *LogPublisher) PublishAudit(ctx context.Context, event AuditEvent) error {
	p.log.Info("notify: audit event", "what", event.What, "who", event.Who, "when", event.When, "details", event.Details)
	return nil
}
