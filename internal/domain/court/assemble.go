package court

import "context"

// assemble resolves court types, buildings and contacts for courts with one
// query per level, keeping the input order.
func assemble(ctx context.Context, repo Repository, courts []Court) ([]CourtDetails, error) {
	result := make([]CourtDetails, 0, len(courts))
	if len(courts) == 0 {
		return result, nil
	}

	types, err := repo.ListCourtTypes(ctx)
	if err != nil {
		return nil, err
	}
	typeByID := make(map[string]CourtType, len(types))
	for _, courtType := range types {
		typeByID[courtType.ID] = courtType
	}

	courtIDs := make([]string, 0, len(courts))
	for _, court := range courts {
		courtIDs = append(courtIDs, court.ID)
	}

	buildings, err := repo.ListBuildingsByCourtIDs(ctx, courtIDs)
	if err != nil {
		return nil, err
	}
	details, err := attachContacts(ctx, repo, buildings)
	if err != nil {
		return nil, err
	}

	byCourt := make(map[string][]BuildingDetails, len(courts))
	for _, building := range details {
		byCourt[building.CourtID] = append(byCourt[building.CourtID], building)
	}

	for _, court := range courts {
		children := byCourt[court.ID]
		if children == nil {
			children = []BuildingDetails{}
		}
		courtType, ok := typeByID[court.TypeID]
		if !ok {
			courtType = CourtType{ID: court.TypeID}
		}
		result = append(result, CourtDetails{Court: court, Type: courtType, Buildings: children})
	}
	return result, nil
}

func attachContacts(ctx context.Context, repo Repository, buildings []Building) ([]BuildingDetails, error) {
	result := make([]BuildingDetails, 0, len(buildings))
	if len(buildings) == 0 {
		return result, nil
	}

	ids := make([]int64, 0, len(buildings))
	for _, building := range buildings {
		ids = append(ids, building.ID)
	}

	contacts, err := repo.ListContactsByBuildingIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byBuilding := make(map[int64][]Contact, len(buildings))
	for _, contact := range contacts {
		byBuilding[contact.BuildingID] = append(byBuilding[contact.BuildingID], contact)
	}

	for _, building := range buildings {
		children := byBuilding[building.ID]
		if children == nil {
			children = []Contact{}
		}
		result = append(result, BuildingDetails{Building: building, Contacts: children})
	}
	return result, nil
}
