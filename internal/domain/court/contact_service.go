package court

import (
	"context"
	"fmt"
)

// ContactService maintains the contacts of a building.
type ContactService struct {
	repo Repository
	opts options
}

func NewContactService(repo Repository, opts ...Option) *ContactService {
	return &ContactService{repo: repo, opts: newOptions(opts)}
}

func ValidContactType(value string) bool {
	return value == ContactTypeTelephone || value == ContactTypeFax
}

// GetContact fails with ErrContactNotFound unless the contact belongs to the
// building and the building belongs to the court.
func (s *ContactService) GetContact(ctx context.Context, courtID string, buildingID, contactID int64) (*Contact, error) {
	return ownedContact(ctx, s.repo, courtID, buildingID, contactID)
}

func (s *ContactService) InsertContact(ctx context.Context, courtID string, buildingID int64, fields ContactFields) (*Contact, error) {
	if !ValidContactType(fields.Type) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidContactType, fields.Type)
	}

	var contact Contact
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := ownedBuilding(ctx, tx, courtID, buildingID); err != nil {
			return err
		}

		now := s.opts.timestamp()
		contact = Contact{
			BuildingID:  buildingID,
			Type:        fields.Type,
			Detail:      fields.Detail,
			Created:     now,
			LastUpdated: now,
		}
		return tx.CreateContact(ctx, &contact)
	})
	if err != nil {
		return nil, err
	}

	return &contact, s.opts.notify(ctx, Notification{
		Event:   EventCourtUpdate,
		CourtID: courtID,
		Audit:   AuditContactInsert,
		Details: contact,
	})
}

func (s *ContactService) UpdateContact(ctx context.Context, courtID string, buildingID, contactID int64, fields ContactFields) (*Contact, error) {
	if !ValidContactType(fields.Type) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidContactType, fields.Type)
	}

	var contact Contact
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		existing, err := ownedContact(ctx, tx, courtID, buildingID, contactID)
		if err != nil {
			return err
		}

		existing.Type = fields.Type
		existing.Detail = fields.Detail
		existing.LastUpdated = s.opts.touch(existing.LastUpdated)
		if err := tx.UpdateContact(ctx, existing); err != nil {
			return err
		}

		contact = *existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &contact, s.opts.notify(ctx, Notification{
		Event:   EventCourtUpdate,
		CourtID: courtID,
		Audit:   AuditContactUpdate,
		Details: contact,
	})
}

func (s *ContactService) DeleteContact(ctx context.Context, courtID string, buildingID, contactID int64) error {
	var contact Contact
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		existing, err := ownedContact(ctx, tx, courtID, buildingID, contactID)
		if err != nil {
			return err
		}
		if err := tx.DeleteContact(ctx, contactID); err != nil {
			return err
		}
		contact = *existing
		return nil
	})
	if err != nil {
		return err
	}

	return s.opts.notify(ctx, Notification{
		Event:   EventCourtUpdate,
		CourtID: courtID,
		Audit:   AuditContactDelete,
		Details: contact,
	})
}

func ownedContact(ctx context.Context, repo Repository, courtID string, buildingID, contactID int64) (*Contact, error) {
	contact, err := repo.GetContact(ctx, contactID)
	if err != nil {
		return nil, err
	}
	if contact.BuildingID != buildingID {
		return nil, fmt.Errorf("%w: contact %d in building %d", ErrContactNotFound, contactID, buildingID)
	}

	building, err := repo.GetBuilding(ctx, buildingID)
	if err != nil {
		return nil, err
	}
	if building.CourtID != courtID {
		return nil, fmt.Errorf("%w: contact %d in court %s", ErrContactNotFound, contactID, courtID)
	}
	return contact, nil
}
