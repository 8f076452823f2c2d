package court

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"court-register-go/internal/paging"
)

// Service maintains courts and answers court queries.
type Service struct {
	repo Repository
	opts options
}

func NewService(repo Repository, opts ...Option) *Service {
	return &Service{repo: repo, opts: newOptions(opts)}
}

func (s *Service) GetCourt(ctx context.Context, id string) (*CourtDetails, error) {
	court, err := s.repo.GetCourt(ctx, id)
	if err != nil {
		return nil, err
	}

	details, err := assemble(ctx, s.repo, []Court{*court})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// ListCourts returns courts ordered by id. A nil active lists every court.
func (s *Service) ListCourts(ctx context.Context, active *bool) ([]CourtDetails, error) {
	courts, err := s.repo.ListCourts(ctx, active)
	if err != nil {
		return nil, err
	}
	return assemble(ctx, s.repo, courts)
}

func (s *Service) ListCourtPage(ctx context.Context, filter CourtFilter, req paging.Request) (paging.Page[CourtDetails], error) {
	for _, order := range req.Sort {
		if _, ok := SortColumns[order.Property]; !ok {
			return paging.Page[CourtDetails]{}, fmt.Errorf("%w: %s", ErrInvalidSort, order.Property)
		}
	}
	filter.TextSearch = strings.TrimSpace(filter.TextSearch)

	courts, total, err := s.repo.ListCourtPage(ctx, filter, req)
	if err != nil {
		return paging.Page[CourtDetails]{}, err
	}

	details, err := assemble(ctx, s.repo, courts)
	if err != nil {
		return paging.Page[CourtDetails]{}, err
	}
	return paging.NewPage(details, req, total), nil
}

func (s *Service) ListCourtTypes(ctx context.Context) ([]CourtType, error) {
	return s.repo.ListCourtTypes(ctx)
}

// InsertCourt creates a court. The returned error wraps ErrNotificationFailed
// when the court was stored but could not be announced.
func (s *Service) InsertCourt(ctx context.Context, input InsertCourtInput) (*CourtDetails, error) {
	var result CourtDetails
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		exists, err := tx.CourtExists(ctx, input.ID)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: %s", ErrCourtAlreadyExists, input.ID)
		}

		courtType, err := tx.GetCourtType(ctx, input.TypeID)
		if err != nil {
			return err
		}

		now := s.opts.timestamp()
		court := Court{
			ID:          input.ID,
			Name:        input.Name,
			Description: input.Description,
			TypeID:      courtType.ID,
			Active:      input.Active,
			Created:     now,
			LastUpdated: now,
		}
		if err := tx.CreateCourt(ctx, &court); err != nil {
			return err
		}

		result = CourtDetails{Court: court, Type: *courtType, Buildings: []BuildingDetails{}}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, s.opts.notify(ctx, Notification{
		Event:   EventCourtInsert,
		CourtID: result.ID,
		Audit:   AuditCourtInsert,
		Details: result.Court,
	})
}

// UpdateCourt overwrites the mutable fields of a court.
func (s *Service) UpdateCourt(ctx context.Context, id string, fields CourtFields) (*CourtDetails, error) {
	var court Court
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		existing, err := tx.GetCourt(ctx, id)
		if err != nil {
			return err
		}

		courtType, err := tx.GetCourtType(ctx, fields.TypeID)
		if err != nil {
			return err
		}

		existing.Name = fields.Name
		existing.Description = fields.Description
		existing.TypeID = courtType.ID
		existing.Active = fields.Active
		existing.LastUpdated = s.opts.touch(existing.LastUpdated)
		if err := tx.UpdateCourt(ctx, existing); err != nil {
			return err
		}

		court = *existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	notifyErr := s.opts.notify(ctx, Notification{
		Event:   EventCourtUpdate,
		CourtID: court.ID,
		Audit:   AuditCourtUpdate,
		Details: court,
	})

	details, err := assemble(ctx, s.repo, []Court{court})
	if err != nil {
		return nil, errors.Join(err, notifyErr)
	}
	return &details[0], notifyErr
}

// DeleteCourt removes a court with its buildings and their contacts.
func (s *Service) DeleteCourt(ctx context.Context, id string) error {
	var court Court
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		existing, err := tx.GetCourt(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.DeleteContactsByCourt(ctx, id); err != nil {
			return err
		}
		if err := tx.DeleteBuildingsByCourt(ctx, id); err != nil {
			return err
		}
		if err := tx.DeleteCourt(ctx, id); err != nil {
			return err
		}
		court = *existing
		return nil
	})
	if err != nil {
		return err
	}

	return s.opts.notify(ctx, Notification{
		Event:   EventCourtDelete,
		CourtID: court.ID,
		Audit:   AuditCourtDelete,
		Details: court,
	})
}
