package court

import (
	"context"
	"errors"
	"fmt"
)

// BuildingService maintains the buildings of a court.
type BuildingService struct {
	repo Repository
	opts options
}

func NewBuildingService(repo Repository, opts ...Option) *BuildingService {
	return &BuildingService{repo: repo, opts: newOptions(opts)}
}

// GetBuilding fails with ErrBuildingNotFound when the building belongs to
// another court.
func (s *BuildingService) GetBuilding(ctx context.Context, courtID string, buildingID int64) (*BuildingDetails, error) {
	building, err := ownedBuilding(ctx, s.repo, courtID, buildingID)
	if err != nil {
		return nil, err
	}
	return s.details(ctx, *building)
}

func (s *BuildingService) GetBuildingBySubCode(ctx context.Context, subCode string) (*BuildingDetails, error) {
	building, err := s.repo.GetBuildingBySubCode(ctx, subCode)
	if err != nil {
		return nil, err
	}
	return s.details(ctx, *building)
}

func (s *BuildingService) GetMainBuilding(ctx context.Context, courtID string) (*BuildingDetails, error) {
	building, err := s.repo.GetMainBuilding(ctx, courtID)
	if err != nil {
		return nil, err
	}
	return s.details(ctx, *building)
}

func (s *BuildingService) InsertBuilding(ctx context.Context, courtID string, fields BuildingFields) (*BuildingDetails, error) {
	var building Building
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		exists, err := tx.CourtExists(ctx, courtID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: %s", ErrCourtNotFound, courtID)
		}

		if err := checkBuildingKeys(ctx, tx, courtID, 0, fields.SubCode); err != nil {
			return err
		}

		now := s.opts.timestamp()
		building = Building{CourtID: courtID, Created: now, LastUpdated: now}
		applyBuildingFields(&building, fields)
		return tx.CreateBuilding(ctx, &building)
	})
	if err != nil {
		return nil, err
	}

	return &BuildingDetails{Building: building, Contacts: []Contact{}}, s.opts.notify(ctx, Notification{
		Event:   EventCourtUpdate,
		CourtID: courtID,
		Audit:   AuditBuildingInsert,
		Details: building,
	})
}

// UpdateBuilding overwrites every mutable field including the sub code.
func (s *BuildingService) UpdateBuilding(ctx context.Context, courtID string, buildingID int64, fields BuildingFields) (*BuildingDetails, error) {
	var building Building
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		existing, err := ownedBuilding(ctx, tx, courtID, buildingID)
		if err != nil {
			return err
		}

		if err := checkBuildingKeys(ctx, tx, courtID, buildingID, fields.SubCode); err != nil {
			return err
		}

		applyBuildingFields(existing, fields)
		existing.LastUpdated = s.opts.touch(existing.LastUpdated)
		if err := tx.UpdateBuilding(ctx, existing); err != nil {
			return err
		}

		building = *existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	notifyErr := s.opts.notify(ctx, Notification{
		Event:   EventCourtUpdate,
		CourtID: courtID,
		Audit:   AuditBuildingUpdate,
		Details: building,
	})

	details, err := s.details(ctx, building)
	if err != nil {
		return nil, errors.Join(err, notifyErr)
	}
	return details, notifyErr
}

// DeleteBuilding removes a building and its contacts.
func (s *BuildingService) DeleteBuilding(ctx context.Context, courtID string, buildingID int64) error {
	var building Building
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		existing, err := ownedBuilding(ctx, tx, courtID, buildingID)
		if err != nil {
			return err
		}
		if err := tx.DeleteContactsByBuilding(ctx, buildingID); err != nil {
			return err
		}
		if err := tx.DeleteBuilding(ctx, buildingID); err != nil {
			return err
		}
		building = *existing
		return nil
	})
	if err != nil {
		return err
	}

	return s.opts.notify(ctx, Notification{
		Event:   EventCourtUpdate,
		CourtID: courtID,
		Audit:   AuditBuildingDelete,
		Details: building,
	})
}

func (s *BuildingService) details(ctx context.Context, building Building) (*BuildingDetails, error) {
	details, err := attachContacts(ctx, s.repo, []Building{building})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

func ownedBuilding(ctx context.Context, repo Repository, courtID string, buildingID int64) (*Building, error) {
	building, err := repo.GetBuilding(ctx, buildingID)
	if err != nil {
		return nil, err
	}
	if building.CourtID != courtID {
		return nil, fmt.Errorf("%w: building %d in court %s", ErrBuildingNotFound, buildingID, courtID)
	}
	return building, nil
}

// checkBuildingKeys enforces a globally unique sub code and a single main
// building per court. excludeID is the building being updated, 0 on insert.
func checkBuildingKeys(ctx context.Context, repo Repository, courtID string, excludeID int64, subCode *string) error {
	if subCode != nil {
		count, err := repo.CountBuildingsBySubCode(ctx, *subCode, excludeID)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: %s", ErrSubCodeAlreadyExists, *subCode)
		}
		return nil
	}

	count, err := repo.CountMainBuildings(ctx, courtID, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %s", ErrMainBuildingExists, courtID)
	}
	return nil
}

func applyBuildingFields(building *Building, fields BuildingFields) {
	building.SubCode = fields.SubCode
	building.Name = fields.Name
	building.Street = fields.Street
	building.Locality = fields.Locality
	building.Town = fields.Town
	building.County = fields.County
	building.Postcode = fields.Postcode
	building.Country = fields.Country
	building.Active = fields.Active
}
