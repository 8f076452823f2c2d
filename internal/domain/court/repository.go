package court

import (
	"context"

	"court-register-go/internal/paging"
)

// SortColumns maps the sortable court properties exposed by the API to
// their storage columns.
var SortColumns = map[string]string{
	"courtId":             "id",
	"courtName":           "court_name",
	"courtDescription":    "court_description",
	"courtType":           "type",
	"active":              "active",
	"createdDatetime":     "created_datetime",
	"lastUpdatedDatetime": "last_updated_datetime",
}

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	ListCourtTypes(ctx context.Context) ([]CourtType, error)
	GetCourtType(ctx context.Context, id string) (*CourtType, error)

	GetCourt(ctx context.Context, id string) (*Court, error)
	CourtExists(ctx context.Context, id string) (bool, error)
	ListCourts(ctx context.Context, active *bool) ([]Court, error)
	ListCourtPage(ctx context.Context, filter CourtFilter, req paging.Request) ([]Court, int64, error)
	CreateCourt(ctx context.Context, court *Court) error
	UpdateCourt(ctx context.Context, court *Court) error
	DeleteCourt(ctx context.Context, id string) error

	GetBuilding(ctx context.Context, id int64) (*Building, error)
	GetBuildingBySubCode(ctx context.Context, subCode string) (*Building, error)
	GetMainBuilding(ctx context.Context, courtID string) (*Building, error)
	ListBuildingsByCourtIDs(ctx context.Context, courtIDs []string) ([]Building, error)
	CountBuildingsBySubCode(ctx context.Context, subCode string, excludeID int64) (int64, error)
	CountMainBuildings(ctx context.Context, courtID string, excludeID int64) (int64, error)
	CreateBuilding(ctx context.Context, building *Building) error
	UpdateBuilding(ctx context.Context, building *Building) error
	DeleteBuilding(ctx context.Context, id int64) error
	DeleteBuildingsByCourt(ctx context.Context, courtID string) error

	GetContact(ctx context.Context, id int64) (*Contact, error)
	ListContactsByBuildingIDs(ctx context.Context, buildingIDs []int64) ([]Contact, error)
	CreateContact(ctx context.Context, contact *Contact) error
	UpdateContact(ctx context.Context, contact *Contact) error
	DeleteContact(ctx context.Context, id int64) error
	DeleteContactsByBuilding(ctx context.Context, buildingID int64) error
	DeleteContactsByCourt(ctx context.Context, courtID string) error
}
