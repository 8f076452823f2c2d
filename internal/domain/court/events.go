package court

import "context"

type EventType string

const (
	EventCourtInsert EventType = "COURT_REGISTER_INSERT"
	EventCourtUpdate EventType = "COURT_REGISTER_UPDATE"
	EventCourtDelete EventType = "COURT_REGISTER_DELETE"
)

type AuditType string

const (
	AuditCourtInsert    AuditType = "COURT_REGISTER_INSERT"
	AuditCourtUpdate    AuditType = "COURT_REGISTER_UPDATE"
	AuditCourtDelete    AuditType = "COURT_REGISTER_DELETE"
	AuditBuildingInsert AuditType = "COURT_REGISTER_BUILDING_INSERT"
	AuditBuildingUpdate AuditType = "COURT_REGISTER_BUILDING_UPDATE"
	AuditBuildingDelete AuditType = "COURT_REGISTER_BUILDING_DELETE"
	AuditContactInsert  AuditType = "COURT_REGISTER_CONTACT_INSERT"
	AuditContactUpdate  AuditType = "COURT_REGISTER_CONTACT_UPDATE"
	AuditContactDelete  AuditType = "COURT_REGISTER_CONTACT_DELETE"
)

// Notification describes one committed write: the change event for the court
// and the audit record with its details.
type Notification struct {
	Event   EventType
	CourtID string
	Audit   AuditType
	Details any
}

// Notifier publishes notifications after the write has committed.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, Notification) error {
	return nil
}
