package handler

import (
	"time"

	courtdomain "court-register-go/internal/domain/court"
	"court-register-go/internal/paging"
)

type courtTypeResponse struct {
	CourtType string `json:"courtType"`
	CourtName string `json:"courtName"`
}

type courtResponse struct {
	CourtID             string             `json:"courtId"`
	CourtName           string             `json:"courtName"`
	CourtDescription    *string            `json:"courtDescription,omitempty"`
	Type                courtTypeResponse  `json:"type"`
	Active              bool               `json:"active"`
	Buildings           []buildingResponse `json:"buildings"`
	CreatedDatetime     time.Time          `json:"createdDatetime"`
	LastUpdatedDatetime time.Time          `json:"lastUpdatedDatetime"`
}

type buildingResponse struct {
	ID           int64             `json:"id"`
	CourtID      string            `json:"courtId"`
	SubCode      *string           `json:"subCode,omitempty"`
	BuildingName *string           `json:"buildingName,omitempty"`
	Street       *string           `json:"street,omitempty"`
	Locality     *string           `json:"locality,omitempty"`
	Town         *string           `json:"town,omitempty"`
	County       *string           `json:"county,omitempty"`
	Postcode     *string           `json:"postcode,omitempty"`
	Country      *string           `json:"country,omitempty"`
	Active       bool              `json:"active"`
	Contacts     []contactResponse `json:"contacts"`
}

type contactResponse struct {
	ID         int64   `json:"id"`
	CourtID    string  `json:"courtId"`
	BuildingID int64   `json:"buildingId"`
	Type       string  `json:"type"`
	Detail     *string `json:"detail"`
}

type pageResponse[T any] struct {
	Content          []T   `json:"content"`
	Number           int   `json:"number"`
	Size             int   `json:"size"`
	TotalElements    int64 `json:"totalElements"`
	TotalPages       int   `json:"totalPages"`
	NumberOfElements int   `json:"numberOfElements"`
	First            bool  `json:"first"`
	Last             bool  `json:"last"`
	Empty            bool  `json:"empty"`
}

func toCourtTypeResponse(courtType courtdomain.CourtType) courtTypeResponse {
	return courtTypeResponse{CourtType: courtType.ID, CourtName: courtType.Description}
}

func toCourtResponse(court courtdomain.CourtDetails) courtResponse {
	buildings := make([]buildingResponse, 0, len(court.Buildings))
	for _, building := range court.Buildings {
		buildings = append(buildings, toBuildingResponse(building))
	}
	return courtResponse{
		CourtID:             court.ID,
		CourtName:           court.Name,
		CourtDescription:    court.Description,
		Type:                toCourtTypeResponse(court.Type),
		Active:              court.Active,
		Buildings:           buildings,
		CreatedDatetime:     court.Created.UTC(),
		LastUpdatedDatetime: court.LastUpdated.UTC(),
	}
}

func toCourtResponses(courts []courtdomain.CourtDetails) []courtResponse {
	response := make([]courtResponse, 0, len(courts))
	for _, court := range courts {
		response = append(response, toCourtResponse(court))
	}
	return response
}

func toBuildingResponse(building courtdomain.BuildingDetails) buildingResponse {
	contacts := make([]contactResponse, 0, len(building.Contacts))
	for _, contact := range building.Contacts {
		contacts = append(contacts, toContactResponse(building.CourtID, contact))
	}
	return buildingResponse{
		ID:           building.ID,
		CourtID:      building.CourtID,
		SubCode:      building.SubCode,
		BuildingName: building.Name,
		Street:       building.Street,
		Locality:     building.Locality,
		Town:         building.Town,
		County:       building.County,
		Postcode:     building.Postcode,
		Country:      building.Country,
		Active:       building.Active,
		Contacts:     contacts,
	}
}

func toContactResponse(courtID string, contact courtdomain.Contact) contactResponse {
	return contactResponse{
		ID:         contact.ID,
		CourtID:    courtID,
		BuildingID: contact.BuildingID,
		Type:       contact.Type,
		Detail:     contact.Detail,
	}
}

func toPageResponse[T, R any](page paging.Page[T], fn func(T) R) pageResponse[R] {
	mapped := paging.Map(page, fn)
	return pageResponse[R]{
		Content:          mapped.Content,
		Number:           mapped.Number,
		Size:             mapped.Size,
		TotalElements:    mapped.TotalElements,
		TotalPages:       mapped.TotalPages(),
		NumberOfElements: len(mapped.Content),
		First:            mapped.First(),
		Last:             mapped.Last(),
		Empty:            len(mapped.Content) == 0,
	}
}
