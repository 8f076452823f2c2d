package inmemory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	courtdomain "court-register-go/internal/domain/court"
	"court-register-go/internal/paging"
)

// CourtRepository keeps the court register in process memory. It applies the
// same keys and foreign keys as the database schema and rolls back a failed
// transaction.
type CourtRepository struct {
	mu   *sync.RWMutex
	data *courtStore
	inTx bool
}

type courtStore struct {
	courtTypes   map[string]courtdomain.CourtType
	courts       map[string]courtdomain.Court
	buildings    map[int64]courtdomain.Building
	contacts     map[int64]courtdomain.Contact
	nextBuilding int64
	nextContact  int64
}

// DefaultCourtTypes mirrors the seeded court_type rows.
func DefaultCourtTypes() []courtdomain.CourtType {
	return []courtdomain.CourtType{
		{ID: "APP", Description: "Court of Appeal"},
		{ID: "COU", Description: "County Court"},
		{ID: "CRN", Description: "Crown Court"},
		{ID: "IMM", Description: "Immigration Court"},
		{ID: "MAG", Description: "Magistrates Court"},
		{ID: "OTH", Description: "Other Court"},
		{ID: "YTH", Description: "Youth Court"},
	}
}

func NewCourtRepository(types ...courtdomain.CourtType) *CourtRepository {
	data := &courtStore{
		courtTypes: make(map[string]courtdomain.CourtType, len(types)),
		courts:     make(map[string]courtdomain.Court),
		buildings:  make(map[int64]courtdomain.Building),
		contacts:   make(map[int64]courtdomain.Contact),
	}
	for _, courtType := range types {
		data.courtTypes[courtType.ID] = courtType
	}
	return &CourtRepository{mu: &sync.RWMutex{}, data: data}
}

func (r *CourtRepository) Transaction(ctx context.Context, fn func(courtdomain.Repository) error) error {
	if r.inTx {
		return fn(r)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := r.data.clone()
	if err := fn(&CourtRepository{mu: r.mu, data: r.data, inTx: true}); err != nil {
		*r.data = *snapshot
		return err
	}
	return nil
}

func (r *CourtRepository) read() func() {
	if r.inTx {
		return func() {}
	}
	r.mu.RLock()
	return r.mu.RUnlock
}

func (r *CourtRepository) write() func() {
	if r.inTx {
		return func() {}
	}
	r.mu.Lock()
	return r.mu.Unlock
}

func (r *CourtRepository) ListCourtTypes(ctx context.Context) ([]courtdomain.CourtType, error) {
	defer r.read()()

	result := make([]courtdomain.CourtType, 0, len(r.data.courtTypes))
	for _, courtType := range r.data.courtTypes {
		result = append(result, courtType)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *CourtRepository) GetCourtType(ctx context.Context, id string) (*courtdomain.CourtType, error) {
	defer r.read()()

	courtType, ok := r.data.courtTypes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", courtdomain.ErrCourtTypeNotFound, id)
	}
	return &courtType, nil
}

func (r *CourtRepository) GetCourt(ctx context.Context, id string) (*courtdomain.Court, error) {
	defer r.read()()

	court, ok := r.data.courts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", courtdomain.ErrCourtNotFound, id)
	}
	court = cloneCourt(court)
	return &court, nil
}

func (r *CourtRepository) CourtExists(ctx context.Context, id string) (bool, error) {
	defer r.read()()

	_, ok := r.data.courts[id]
	return ok, nil
}

func (r *CourtRepository) ListCourts(ctx context.Context, active *bool) ([]courtdomain.Court, error) {
	defer r.read()()

	result := make([]courtdomain.Court, 0, len(r.data.courts))
	for _, court := range r.data.courts {
		if active != nil && court.Active != *active {
			continue
		}
		result = append(result, cloneCourt(court))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *CourtRepository) ListCourtPage(ctx context.Context, filter courtdomain.CourtFilter, req paging.Request) ([]courtdomain.Court, int64, error) {
	defer r.read()()

	var typeIDs map[string]struct{}
	if len(filter.CourtTypeIDs) > 0 {
		typeIDs = make(map[string]struct{}, len(filter.CourtTypeIDs))
		for _, id := range filter.CourtTypeIDs {
			typeIDs[id] = struct{}{}
		}
	}

	matched := make([]courtdomain.Court, 0)
	for _, court := range r.data.courts {
		if filter.Active != nil && court.Active != *filter.Active {
			continue
		}
		if typeIDs != nil {
			if _, ok := typeIDs[court.TypeID]; !ok {
				continue
			}
		}
		if filter.TextSearch != "" && !matchesText(r.data.searchTokens(court), filter.TextSearch) {
			continue
		}
		matched = append(matched, court)
	}

	less, err := courtOrdering(req.Sort)
	if err != nil {
		return nil, 0, err
	}
	sort.SliceStable(matched, func(i, j int) bool { return less(matched[i], matched[j]) })

	total := int64(len(matched))
	start := req.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + req.Size
	if req.Size <= 0 || end > len(matched) {
		end = len(matched)
	}

	result := make([]courtdomain.Court, 0, end-start)
	for _, court := range matched[start:end] {
		result = append(result, cloneCourt(court))
	}
	return result, total, nil
}

func (r *CourtRepository) CreateCourt(ctx context.Context, court *courtdomain.Court) error {
	defer r.write()()

	if _, ok := r.data.courts[court.ID]; ok {
		return fmt.Errorf("%w: court %s", courtdomain.ErrConflict, court.ID)
	}
	if _, ok := r.data.courtTypes[court.TypeID]; !ok {
		return fmt.Errorf("%w: court type %s", courtdomain.ErrConflict, court.TypeID)
	}
	r.data.courts[court.ID] = cloneCourt(*court)
	return nil
}

func (r *CourtRepository) UpdateCourt(ctx context.Context, court *courtdomain.Court) error {
	defer r.write()()

	existing, ok := r.data.courts[court.ID]
	if !ok {
		return fmt.Errorf("%w: %s", courtdomain.ErrCourtNotFound, court.ID)
	}
	if _, ok := r.data.courtTypes[court.TypeID]; !ok {
		return fmt.Errorf("%w: court type %s", courtdomain.ErrConflict, court.TypeID)
	}
	updated := cloneCourt(*court)
	updated.Created = existing.Created
	r.data.courts[court.ID] = updated
	return nil
}

func (r *CourtRepository) DeleteCourt(ctx context.Context, id string) error {
	defer r.write()()

	if _, ok := r.data.courts[id]; !ok {
		return fmt.Errorf("%w: %s", courtdomain.ErrCourtNotFound, id)
	}
	for buildingID, building := range r.data.buildings {
		if building.CourtID == id {
			r.data.deleteBuilding(buildingID)
		}
	}
	delete(r.data.courts, id)
	return nil
}

func (r *CourtRepository) GetBuilding(ctx context.Context, id int64) (*courtdomain.Building, error) {
	defer r.read()()

	building, ok := r.data.buildings[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", courtdomain.ErrBuildingNotFound, id)
	}
	building = cloneBuilding(building)
	return &building, nil
}

func (r *CourtRepository) GetBuildingBySubCode(ctx context.Context, subCode string) (*courtdomain.Building, error) {
	defer r.read()()

	for _, building := range r.data.buildings {
		if building.SubCode != nil && *building.SubCode == subCode {
			building = cloneBuilding(building)
			return &building, nil
		}
	}
	return nil, fmt.Errorf("%w: sub code %s", courtdomain.ErrBuildingNotFound, subCode)
}

func (r *CourtRepository) GetMainBuilding(ctx context.Context, courtID string) (*courtdomain.Building, error) {
	defer r.read()()

	for _, building := range r.data.sortedBuildings() {
		if building.CourtID == courtID && building.SubCode == nil {
			building = cloneBuilding(building)
			return &building, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", courtdomain.ErrMainBuildingNotFound, courtID)
}

func (r *CourtRepository) ListBuildingsByCourtIDs(ctx context.Context, courtIDs []string) ([]courtdomain.Building, error) {
	defer r.read()()

	wanted := make(map[string]struct{}, len(courtIDs))
	for _, id := range courtIDs {
		wanted[id] = struct{}{}
	}

	result := make([]courtdomain.Building, 0)
	for _, building := range r.data.sortedBuildings() {
		if _, ok := wanted[building.CourtID]; ok {
			result = append(result, cloneBuilding(building))
		}
	}
	return result, nil
}

func (r *CourtRepository) CountBuildingsBySubCode(ctx context.Context, subCode string, excludeID int64) (int64, error) {
	defer r.read()()

	var count int64
	for _, building := range r.data.buildings {
		if building.ID != excludeID && building.SubCode != nil && *building.SubCode == subCode {
			count++
		}
	}
	return count, nil
}

func (r *CourtRepository) CountMainBuildings(ctx context.Context, courtID string, excludeID int64) (int64, error) {
	defer r.read()()

	var count int64
	for _, building := range r.data.buildings {
		if building.ID != excludeID && building.CourtID == courtID && building.SubCode == nil {
			count++
		}
	}
	return count, nil
}

func (r *CourtRepository) CreateBuilding(ctx context.Context, building *courtdomain.Building) error {
	defer r.write()()

	if _, ok := r.data.courts[building.CourtID]; !ok {
		return fmt.Errorf("%w: court %s", courtdomain.ErrConflict, building.CourtID)
	}
	r.data.nextBuilding++
	building.ID = r.data.nextBuilding
	if err := r.data.checkBuildingKeys(*building); err != nil {
		r.data.nextBuilding--
		return err
	}
	r.data.buildings[building.ID] = cloneBuilding(*building)
	return nil
}

func (r *CourtRepository) UpdateBuilding(ctx context.Context, building *courtdomain.Building) error {
	defer r.write()()

	existing, ok := r.data.buildings[building.ID]
	if !ok {
		return fmt.Errorf("%w: %d", courtdomain.ErrBuildingNotFound, building.ID)
	}
	if err := r.data.checkBuildingKeys(*building); err != nil {
		return err
	}
	updated := cloneBuilding(*building)
	updated.CourtID = existing.CourtID
	updated.Created = existing.Created
	r.data.buildings[building.ID] = updated
	return nil
}

func (r *CourtRepository) DeleteBuilding(ctx context.Context, id int64) error {
	defer r.write()()

	if _, ok := r.data.buildings[id]; !ok {
		return fmt.Errorf("%w: %d", courtdomain.ErrBuildingNotFound, id)
	}
	r.data.deleteBuilding(id)
	return nil
}

func (r *CourtRepository) DeleteBuildingsByCourt(ctx context.Context, courtID string) error {
	defer r.write()()

	for id, building := range r.data.buildings {
		if building.CourtID == courtID {
			r.data.deleteBuilding(id)
		}
	}
	return nil
}

func (r *CourtRepository) GetContact(ctx context.Context, id int64) (*courtdomain.Contact, error) {
	defer r.read()()

	contact, ok := r.data.contacts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", courtdomain.ErrContactNotFound, id)
	}
	contact = cloneContact(contact)
	return &contact, nil
}

func (r *CourtRepository) ListContactsByBuildingIDs(ctx context.Context, buildingIDs []int64) ([]courtdomain.Contact, error) {
	defer r.read()()

	wanted := make(map[int64]struct{}, len(buildingIDs))
	for _, id := range buildingIDs {
		wanted[id] = struct{}{}
	}

	result := make([]courtdomain.Contact, 0)
	for _, contact := range r.data.contacts {
		if _, ok := wanted[contact.BuildingID]; ok {
			result = append(result, cloneContact(contact))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *CourtRepository) CreateContact(ctx context.Context, contact *courtdomain.Contact) error {
	defer r.write()()

	if _, ok := r.data.buildings[contact.BuildingID]; !ok {
		return fmt.Errorf("%w: building %d", courtdomain.ErrConflict, contact.BuildingID)
	}
	if !courtdomain.ValidContactType(contact.Type) {
		return fmt.Errorf("%w: contact type %q", courtdomain.ErrConflict, contact.Type)
	}
	r.data.nextContact++
	contact.ID = r.data.nextContact
	r.data.contacts[contact.ID] = cloneContact(*contact)
	return nil
}

func (r *CourtRepository) UpdateContact(ctx context.Context, contact *courtdomain.Contact) error {
	defer r.write()()

	existing, ok := r.data.contacts[contact.ID]
	if !ok {
		return fmt.Errorf("%w: %d", courtdomain.ErrContactNotFound, contact.ID)
	}
	if !courtdomain.ValidContactType(contact.Type) {
		return fmt.Errorf("%w: contact type %q", courtdomain.ErrConflict, contact.Type)
	}
	updated := cloneContact(*contact)
	updated.BuildingID = existing.BuildingID
	updated.Created = existing.Created
	r.data.contacts[contact.ID] = updated
	return nil
}

func (r *CourtRepository) DeleteContact(ctx context.Context, id int64) error {
	defer r.write()()

	if _, ok := r.data.contacts[id]; !ok {
		return fmt.Errorf("%w: %d", courtdomain.ErrContactNotFound, id)
	}
	delete(r.data.contacts, id)
	return nil
}

func (r *CourtRepository) DeleteContactsByBuilding(ctx context.Context, buildingID int64) error {
	defer r.write()()

	for id, contact := range r.data.contacts {
		if contact.BuildingID == buildingID {
			delete(r.data.contacts, id)
		}
	}
	return nil
}

func (r *CourtRepository) DeleteContactsByCourt(ctx context.Context, courtID string) error {
	defer r.write()()

	for id, contact := range r.data.contacts {
		if building, ok := r.data.buildings[contact.BuildingID]; ok && building.CourtID == courtID {
			delete(r.data.contacts, id)
		}
	}
	return nil
}

func (s *courtStore) clone() *courtStore {
	cloned := &courtStore{
		courtTypes:   make(map[string]courtdomain.CourtType, len(s.courtTypes)),
		courts:       make(map[string]courtdomain.Court, len(s.courts)),
		buildings:    make(map[int64]courtdomain.Building, len(s.buildings)),
		contacts:     make(map[int64]courtdomain.Contact, len(s.contacts)),
		nextBuilding: s.nextBuilding,
		nextContact:  s.nextContact,
	}
	for id, courtType := range s.courtTypes {
		cloned.courtTypes[id] = courtType
	}
	for id, court := range s.courts {
		cloned.courts[id] = court
	}
	for id, building := range s.buildings {
		cloned.buildings[id] = building
	}
	for id, contact := range s.contacts {
		cloned.contacts[id] = contact
	}
	return cloned
}

func (s *courtStore) sortedBuildings() []courtdomain.Building {
	result := make([]courtdomain.Building, 0, len(s.buildings))
	for _, building := range s.buildings {
		result = append(result, building)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (s *courtStore) checkBuildingKeys(building courtdomain.Building) error {
	for _, other := range s.buildings {
		if other.ID == building.ID {
			continue
		}
		if building.SubCode != nil && other.SubCode != nil && *other.SubCode == *building.SubCode {
			return fmt.Errorf("%w: sub code %s", courtdomain.ErrConflict, *building.SubCode)
		}
		if building.SubCode == nil && other.SubCode == nil && other.CourtID == building.CourtID {
			return fmt.Errorf("%w: main building of %s", courtdomain.ErrConflict, building.CourtID)
		}
	}
	return nil
}

func (s *courtStore) deleteBuilding(id int64) {
	for contactID, contact := range s.contacts {
		if contact.BuildingID == id {
			delete(s.contacts, contactID)
		}
	}
	delete(s.buildings, id)
}

func cloneCourt(court courtdomain.Court) courtdomain.Court {
	court.Description = cloneString(court.Description)
	return court
}

func cloneBuilding(building courtdomain.Building) courtdomain.Building {
	building.SubCode = cloneString(building.SubCode)
	building.Name = cloneString(building.Name)
	building.Street = cloneString(building.Street)
	building.Locality = cloneString(building.Locality)
	building.Town = cloneString(building.Town)
	building.County = cloneString(building.County)
	building.Postcode = cloneString(building.Postcode)
	building.Country = cloneString(building.Country)
	return building
}

func cloneContact(contact courtdomain.Contact) courtdomain.Contact {
	contact.Detail = cloneString(contact.Detail)
	return contact
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}
