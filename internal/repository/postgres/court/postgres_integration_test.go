//go:build integration

package court

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"court-register-go/internal/db"
	courtdomain "court-register-go/internal/domain/court"
	"court-register-go/internal/paging"
	"court-register-go/pkg/logger"
)

type PostgresIntegrationSuite struct {
	suite.Suite

	ctx       context.Context
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	repo      *PostgresRepository
	courts    *courtdomain.Service
	buildings *courtdomain.BuildingService
	contacts  *courtdomain.ContactService
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := tcpostgres.Run(s.ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("court_register"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	s.Require().NoError(err, "failed to start postgres container")
	s.container = container

	dsn, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.db, err = db.Open(dsn)
	s.Require().NoError(err)

	_, err = db.MigrateDir(s.db, "../../../../migrations", logger.Nop())
	s.Require().NoError(err)

	s.repo = NewPostgres(s.db)
	s.courts = courtdomain.NewService(s.repo)
	s.buildings = courtdomain.NewBuildingService(s.repo)
	s.contacts = courtdomain.NewContactService(s.repo)
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresIntegrationSuite) SetupTest() {
	s.Require().NoError(s.db.Exec("TRUNCATE contact, building, court_text_search, court RESTART IDENTITY CASCADE").Error)
}

func (s *PostgresIntegrationSuite) insertCourt(id, name, typeID string) {
	_, err := s.courts.InsertCourt(s.ctx, courtdomain.InsertCourtInput{
		ID:          id,
		CourtFields: courtdomain.CourtFields{Name: name, TypeID: typeID, Active: true},
	})
	s.Require().NoError(err)
}

func (s *PostgresIntegrationSuite) insertBuilding(courtID string, subCode *string, postcode string) *courtdomain.BuildingDetails {
	building, err := s.buildings.InsertBuilding(s.ctx, courtID, courtdomain.BuildingFields{
		SubCode:  subCode,
		Name:     strPtr("Main site"),
		Postcode: strPtr(postcode),
		Active:   true,
	})
	s.Require().NoError(err)
	return building
}

func (s *PostgresIntegrationSuite) TestRoundTrip() {
	s.insertCourt("ACCRYC", "Accrington Youth Court", "YTH")

	got, err := s.courts.GetCourt(s.ctx, "ACCRYC")
	s.Require().NoError(err)

	stored, err := s.repo.GetCourt(s.ctx, "ACCRYC")
	s.Require().NoError(err)
	s.Equal(stored.Name, got.Name)
	s.True(stored.Created.Equal(got.Created))
	s.Equal("Youth Court", got.Type.Description)
}

func (s *PostgresIntegrationSuite) TestPagingTotalsMatchAcrossPages() {
	for i := 0; i < 7; i++ {
		id := fmt.Sprintf("YTH%03d", i)
		s.insertCourt(id, "Youth Court "+id, "YTH")
		building := s.insertBuilding(id, nil, "BB5 2BH")
		for j := 0; j < 3; j++ {
			_, err := s.contacts.InsertContact(s.ctx, id, building.ID, courtdomain.ContactFields{Type: "TEL", Detail: strPtr("01254 123456")})
			s.Require().NoError(err)
		}
	}
	s.insertCourt("CRN001", "Crown Court", "CRN")

	filter := courtdomain.CourtFilter{TextSearch: "01254 123456", CourtTypeIDs: []string{"YTH"}}
	seen := map[string]bool{}
	for page := 0; page < 3; page++ {
		result, err := s.courts.ListCourtPage(s.ctx, filter, paging.Request{
			Page: page,
			Size: 3,
			Sort: []paging.Order{{Property: "courtName"}},
		})
		s.Require().NoError(err)
		s.Equal(int64(7), result.TotalElements)
		for _, court := range result.Content {
			s.False(seen[court.ID], "court %s returned twice", court.ID)
			seen[court.ID] = true
		}
	}
	s.Len(seen, 7)
}

func (s *PostgresIntegrationSuite) TestPostcodeSearchWithAndWithoutSpace() {
	s.insertCourt("ACCRYC", "Accrington Youth Court", "YTH")
	s.insertBuilding("ACCRYC", nil, "BB5 2BH")
	s.insertCourt("KIDDYC", "Kidderminster Youth Court", "YTH")
	s.insertBuilding("KIDDYC", nil, "DY10 1AA")

	for _, query := range []string{"BB5 2BH", "BB52BH"} {
		result, err := s.courts.ListCourtPage(s.ctx, courtdomain.CourtFilter{TextSearch: query}, paging.Request{Size: 10})
		s.Require().NoError(err, query)
		s.Require().Len(result.Content, 1, query)
		s.Equal("ACCRYC", result.Content[0].ID, query)
	}
}

func (s *PostgresIntegrationSuite) TestDeleteCourtCascades() {
	s.insertCourt("ACCRYC", "Accrington Youth Court", "YTH")
	building := s.insertBuilding("ACCRYC", nil, "BB5 2BH")
	contact, err := s.contacts.InsertContact(s.ctx, "ACCRYC", building.ID, courtdomain.ContactFields{Type: "TEL", Detail: strPtr("01254 123456")})
	s.Require().NoError(err)

	s.Require().NoError(s.courts.DeleteCourt(s.ctx, "ACCRYC"))

	_, err = s.repo.GetBuilding(s.ctx, building.ID)
	s.ErrorIs(err, courtdomain.ErrBuildingNotFound)
	_, err = s.repo.GetContact(s.ctx, contact.ID)
	s.ErrorIs(err, courtdomain.ErrContactNotFound)

	var remaining int64
	s.Require().NoError(s.db.Table("court_text_search").Count(&remaining).Error)
	s.Zero(remaining)
}

func (s *PostgresIntegrationSuite) TestSchemaRejectsSecondMainBuilding() {
	s.insertCourt("ACCRYC", "Accrington Youth Court", "YTH")
	s.insertBuilding("ACCRYC", nil, "BB5 2BH")

	now := time.Now().UTC()
	err := s.repo.CreateBuilding(s.ctx, &courtdomain.Building{CourtID: "ACCRYC", Active: true, Created: now, LastUpdated: now})
	s.ErrorIs(err, courtdomain.ErrConflict)
}

func (s *PostgresIntegrationSuite) TestSchemaRejectsUnknownContactType() {
	s.insertCourt("ACCRYC", "Accrington Youth Court", "YTH")
	building := s.insertBuilding("ACCRYC", nil, "BB5 2BH")

	now := time.Now().UTC()
	err := s.repo.CreateContact(s.ctx, &courtdomain.Contact{BuildingID: building.ID, Type: "EMAIL", Created: now, LastUpdated: now})
	s.ErrorIs(err, courtdomain.ErrConflict)
}

func (s *PostgresIntegrationSuite) TestSubCodeUpdateToOwnValue() {
	s.insertCourt("ACCRYC", "Accrington Youth Court", "YTH")
	building := s.insertBuilding("ACCRYC", strPtr("AB1"), "BB5 2BH")

	updated, err := s.buildings.UpdateBuilding(s.ctx, "ACCRYC", building.ID, courtdomain.BuildingFields{SubCode: strPtr("AB1"), Active: true})
	s.Require().NoError(err)
	s.True(updated.LastUpdated.After(building.LastUpdated))
	s.True(updated.Created.Equal(building.Created))
}

func strPtr(value string) *string {
	return &value
}
