package notify

import (
	"context"
	"time"
)

// ChangeEvent is published to the change topic after every committed write.
type ChangeEvent struct {
	EventType string `json:"eventType"`
	ID        string `json:"id"`
}

// AuditEvent is published to the audit queue. Details holds a JSON document.
type AuditEvent struct {
	What    string    `json:"what"`
	When    time.Time `json:"when"`
	Who     string    `json:"who"`
	Service string    `json:"service"`
	Details string    `json:"details,omitempty"`
}

type ChangePublisher interface {
	PublishChange(ctx context.Context, event ChangeEvent) error
}

type AuditPublisher interface {
	PublishAudit(ctx context.Context, event AuditEvent) error
}
