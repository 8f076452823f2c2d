package court

import (
	"context"
	"errors"
	"fmt"

	courtdomain "court-register-go/internal/domain/court"
	"court-register-go/internal/paging"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const textSearchCondition = "EXISTS (SELECT 1 FROM court_text_search ts WHERE ts.id = court.id AND search_court_text(ts.text_search_vector, ?))"

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(courtdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) ListCourtTypes(ctx context.Context) ([]courtdomain.CourtType, error) {
	var types []courtdomain.CourtType
	if err := r.db.WithContext(ctx).Order("id asc").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (r *PostgresRepository) GetCourtType(ctx context.Context, id string) (*courtdomain.CourtType, error) {
	var courtType courtdomain.CourtType
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&courtType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", courtdomain.ErrCourtTypeNotFound, id)
		}
		return nil, err
	}
	return &courtType, nil
}

func (r *PostgresRepository) GetCourt(ctx context.Context, id string) (*courtdomain.Court, error) {
	var court courtdomain.Court
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&court).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", courtdomain.ErrCourtNotFound, id)
		}
		return nil, err
	}
	return &court, nil
}

func (r *PostgresRepository) CourtExists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&courtdomain.Court{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) ListCourts(ctx context.Context, active *bool) ([]courtdomain.Court, error) {
	query := r.db.WithContext(ctx)
	if active != nil {
		query = query.Where("active = ?", *active)
	}

	var courts []courtdomain.Court
	if err := query.Order("id asc").Find(&courts).Error; err != nil {
		return nil, err
	}
	return courts, nil
}

// ListCourtPage filters courts and pages them. The text search is an EXISTS
// predicate rather than a join, so every court appears at most once and the
// count and the page share the same rows.
func (r *PostgresRepository) ListCourtPage(ctx context.Context, filter courtdomain.CourtFilter, req paging.Request) ([]courtdomain.Court, int64, error) {
	query := r.db.WithContext(ctx).Model(&courtdomain.Court{})
	if filter.Active != nil {
		query = query.Where("court.active = ?", *filter.Active)
	}
	if len(filter.CourtTypeIDs) > 0 {
		query = query.Where("court.type IN ?", filter.CourtTypeIDs)
	}
	if filter.TextSearch != "" {
		query = query.Where(textSearchCondition, filter.TextSearch)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy, err := orderColumns(req.Sort)
	if err != nil {
		return nil, 0, err
	}
	query = query.Order(orderBy)
	if req.Size > 0 {
		query = query.Limit(req.Size).Offset(req.Offset())
	}

	var courts []courtdomain.Court
	if err := query.Find(&courts).Error; err != nil {
		return nil, 0, err
	}
	return courts, total, nil
}

func (r *PostgresRepository) CreateCourt(ctx context.Context, court *courtdomain.Court) error {
	return translate(r.db.WithContext(ctx).Create(court).Error)
}

func (r *PostgresRepository) UpdateCourt(ctx context.Context, court *courtdomain.Court) error {
	result := r.db.WithContext(ctx).
		Model(&courtdomain.Court{}).
		Where("id = ?", court.ID).
		Updates(map[string]interface{}{
			"court_name":            court.Name,
			"court_description":     court.Description,
			"type":                  court.TypeID,
			"active":                court.Active,
			"last_updated_datetime": court.LastUpdated,
		})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", courtdomain.ErrCourtNotFound, court.ID)
	}
	return nil
}

func (r *PostgresRepository) DeleteCourt(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&courtdomain.Court{}, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", courtdomain.ErrCourtNotFound, id)
	}
	return nil
}

func (r *PostgresRepository) GetBuilding(ctx context.Context, id int64) (*courtdomain.Building, error) {
	var building courtdomain.Building
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&building).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", courtdomain.ErrBuildingNotFound, id)
		}
		return nil, err
	}
	return &building, nil
}

func (r *PostgresRepository) GetBuildingBySubCode(ctx context.Context, subCode string) (*courtdomain.Building, error) {
	var building courtdomain.Building
	if err := r.db.WithContext(ctx).Where("sub_code = ?", subCode).First(&building).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: sub code %s", courtdomain.ErrBuildingNotFound, subCode)
		}
		return nil, err
	}
	return &building, nil
}

func (r *PostgresRepository) GetMainBuilding(ctx context.Context, courtID string) (*courtdomain.Building, error) {
	var building courtdomain.Building
	if err := r.db.WithContext(ctx).
		Where("court_code = ? AND sub_code IS NULL", courtID).
		Order("id asc").
		First(&building).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", courtdomain.ErrMainBuildingNotFound, courtID)
		}
		return nil, err
	}
	return &building, nil
}

func (r *PostgresRepository) ListBuildingsByCourtIDs(ctx context.Context, courtIDs []string) ([]courtdomain.Building, error) {
	if len(courtIDs) == 0 {
		return []courtdomain.Building{}, nil
	}

	var buildings []courtdomain.Building
	if err := r.db.WithContext(ctx).
		Where("court_code IN ?", courtIDs).
		Order("id asc").
		Find(&buildings).Error; err != nil {
		return nil, err
	}
	return buildings, nil
}

func (r *PostgresRepository) CountBuildingsBySubCode(ctx context.Context, subCode string, excludeID int64) (int64, error) {
	query := r.db.WithContext(ctx).Model(&courtdomain.Building{}).Where("sub_code = ?", subCode)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) CountMainBuildings(ctx context.Context, courtID string, excludeID int64) (int64, error) {
	query := r.db.WithContext(ctx).Model(&courtdomain.Building{}).Where("court_code = ? AND sub_code IS NULL", courtID)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) CreateBuilding(ctx context.Context, building *courtdomain.Building) error {
	return translate(r.db.WithContext(ctx).Create(building).Error)
}

func (r *PostgresRepository) UpdateBuilding(ctx context.Context, building *courtdomain.Building) error {
	result := r.db.WithContext(ctx).
		Model(&courtdomain.Building{}).
		Where("id = ?", building.ID).
		Updates(map[string]interface{}{
			"sub_code":              building.SubCode,
			"building_name":         building.Name,
			"street":                building.Street,
			"locality":              building.Locality,
			"town":                  building.Town,
			"county":                building.County,
			"postcode":              building.Postcode,
			"country":               building.Country,
			"active":                building.Active,
			"last_updated_datetime": building.LastUpdated,
		})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %d", courtdomain.ErrBuildingNotFound, building.ID)
	}
	return nil
}

func (r *PostgresRepository) DeleteBuilding(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&courtdomain.Building{}, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %d", courtdomain.ErrBuildingNotFound, id)
	}
	return nil
}

func (r *PostgresRepository) DeleteBuildingsByCourt(ctx context.Context, courtID string) error {
	return translate(r.db.WithContext(ctx).Delete(&courtdomain.Building{}, "court_code = ?", courtID).Error)
}

func (r *PostgresRepository) GetContact(ctx context.Context, id int64) (*courtdomain.Contact, error) {
	var contact courtdomain.Contact
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&contact).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", courtdomain.ErrContactNotFound, id)
		}
		return nil, err
	}
	return &contact, nil
}

func (r *PostgresRepository) ListContactsByBuildingIDs(ctx context.Context, buildingIDs []int64) ([]courtdomain.Contact, error) {
	if len(buildingIDs) == 0 {
		return []courtdomain.Contact{}, nil
	}

	var contacts []courtdomain.Contact
	if err := r.db.WithContext(ctx).
		Where("building_id IN ?", buildingIDs).
		Order("id asc").
		Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *PostgresRepository) CreateContact(ctx context.Context, contact *courtdomain.Contact) error {
	return translate(r.db.WithContext(ctx).Create(contact).Error)
}

func (r *PostgresRepository) UpdateContact(ctx context.Context, contact *courtdomain.Contact) error {
	result := r.db.WithContext(ctx).
		Model(&courtdomain.Contact{}).
		Where("id = ?", contact.ID).
		Updates(map[string]interface{}{
			"type":                  contact.Type,
			"detail":                contact.Detail,
			"last_updated_datetime": contact.LastUpdated,
		})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %d", courtdomain.ErrContactNotFound, contact.ID)
	}
	return nil
}

func (r *PostgresRepository) DeleteContact(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&courtdomain.Contact{}, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %d", courtdomain.ErrContactNotFound, id)
	}
	return nil
}

func (r *PostgresRepository) DeleteContactsByBuilding(ctx context.Context, buildingID int64) error {
	return translate(r.db.WithContext(ctx).Delete(&courtdomain.Contact{}, "building_id = ?", buildingID).Error)
}

func (r *PostgresRepository) DeleteContactsByCourt(ctx context.Context, courtID string) error {
	return translate(r.db.WithContext(ctx).
		Where("building_id IN (?)", r.db.Model(&courtdomain.Building{}).Select("id").Where("court_code = ?", courtID)).
		Delete(&courtdomain.Contact{}).Error)
}

// orderColumns maps API sort properties to columns and appends the court id
// so pages never overlap.
func orderColumns(orders []paging.Order) (clause.OrderBy, error) {
	columns := make([]clause.OrderByColumn, 0, len(orders)+1)
	for _, order := range orders {
		column, ok := courtdomain.SortColumns[order.Property]
		if !ok {
			return clause.OrderBy{}, fmt.Errorf("%w: %s", courtdomain.ErrInvalidSort, order.Property)
		}
		columns = append(columns, clause.OrderByColumn{
			Column: clause.Column{Table: "court", Name: column},
			Desc:   order.Direction == paging.Desc,
		})
	}
	columns = append(columns, clause.OrderByColumn{Column: clause.Column{Table: "court", Name: "id"}})
	return clause.OrderBy{Columns: columns}, nil
}

// translate maps key, foreign key and check violations to ErrConflict.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) || errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return fmt.Errorf("%w: %w", courtdomain.ErrConflict, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505", "23503", "23514":
			return fmt.Errorf("%w: %s", courtdomain.ErrConflict, pgErr.Message)
		}
	}
	return err
}
