package handler

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	courtdomain "court-register-go/internal/domain/court"
)

var alphanumeric = regexp.MustCompile(`^[A-Za-z0-9]+$`)

type updateCourtRequest struct {
	CourtName        string  `json:"courtName"`
	CourtDescription *string `json:"courtDescription"`
	CourtType        string  `json:"courtType"`
	Active           bool    `json:"active"`
}

type insertCourtRequest struct {
	CourtID string `json:"courtId"`
	updateCourtRequest
}

type buildingRequest struct {
	SubCode      *string `json:"subCode"`
	BuildingName *string `json:"buildingName"`
	Street       *string `json:"street"`
	Locality     *string `json:"locality"`
	Town         *string `json:"town"`
	County       *string `json:"county"`
	Postcode     *string `json:"postcode"`
	Country      *string `json:"country"`
	Active       bool    `json:"active"`
}

type contactRequest struct {
	Type   string  `json:"type"`
	Detail *string `json:"detail"`
}

type validator struct {
	problems []string
}

func (v *validator) add(field, format string, args ...any) {
	v.problems = append(v.problems, field+": "+fmt.Sprintf(format, args...))
}

func (v *validator) length(field, value string, min, max int) {
	n := utf8.RuneCountInString(value)
	if n < min || n > max {
		if min == 0 {
			v.add(field, "must be at most %d characters", max)
			return
		}
		v.add(field, "must be between %d and %d characters", min, max)
	}
}

func (v *validator) optionalLength(field string, value *string, min, max int) {
	if value != nil {
		v.length(field, *value, min, max)
	}
}

func (v *validator) code(field, value string, min, max int) {
	v.length(field, value, min, max)
	if value != "" && !alphanumeric.MatchString(value) {
		v.add(field, "must be alphanumeric")
	}
}

func (req *updateCourtRequest) normalize() {
	req.CourtName = strings.TrimSpace(req.CourtName)
	req.CourtType = strings.TrimSpace(req.CourtType)
	req.CourtDescription = trimOptional(req.CourtDescription)
}

func (req *updateCourtRequest) validate(v *validator) {
	v.length("courtName", req.CourtName, 2, 80)
	v.optionalLength("courtDescription", req.CourtDescription, 2, 200)
	if req.CourtType == "" {
		v.add("courtType", "is required")
	}
}

func (req *updateCourtRequest) Validate() []string {
	req.normalize()
	var v validator
	req.validate(&v)
	return v.problems
}

func (req *insertCourtRequest) Validate() []string {
	req.CourtID = strings.TrimSpace(req.CourtID)
	req.normalize()
	var v validator
	v.code("courtId", req.CourtID, 2, 12)
	req.validate(&v)
	return v.problems
}

func (req updateCourtRequest) fields() courtdomain.CourtFields {
	return courtdomain.CourtFields{
		Name:        req.CourtName,
		Description: req.CourtDescription,
		TypeID:      req.CourtType,
		Active:      req.Active,
	}
}

func (req insertCourtRequest) input() courtdomain.InsertCourtInput {
	return courtdomain.InsertCourtInput{ID: req.CourtID, CourtFields: req.fields()}
}

func (req *buildingRequest) Validate() []string {
	req.SubCode = trimOptional(req.SubCode)
	req.BuildingName = trimOptional(req.BuildingName)
	req.Street = trimOptional(req.Street)
	req.Locality = trimOptional(req.Locality)
	req.Town = trimOptional(req.Town)
	req.County = trimOptional(req.County)
	req.Postcode = trimOptional(req.Postcode)
	req.Country = trimOptional(req.Country)

	var v validator
	if req.SubCode != nil {
		v.code("subCode", *req.SubCode, 2, 6)
	}
	v.optionalLength("buildingName", req.BuildingName, 0, 50)
	v.optionalLength("street", req.Street, 0, 80)
	v.optionalLength("locality", req.Locality, 0, 80)
	v.optionalLength("town", req.Town, 0, 80)
	v.optionalLength("county", req.County, 0, 80)
	v.optionalLength("postcode", req.Postcode, 0, 8)
	v.optionalLength("country", req.Country, 0, 16)
	return v.problems
}

func (req buildingRequest) fields() courtdomain.BuildingFields {
	return courtdomain.BuildingFields{
		SubCode:  req.SubCode,
		Name:     req.BuildingName,
		Street:   req.Street,
		Locality: req.Locality,
		Town:     req.Town,
		County:   req.County,
		Postcode: req.Postcode,
		Country:  req.Country,
		Active:   req.Active,
	}
}

func (req *contactRequest) Validate() []string {
	req.Type = strings.ToUpper(strings.TrimSpace(req.Type))
	req.Detail = trimOptional(req.Detail)

	var v validator
	if !courtdomain.ValidContactType(req.Type) {
		v.add("type", "must be one of %s, %s", courtdomain.ContactTypeTelephone, courtdomain.ContactTypeFax)
	}
	if req.Detail == nil {
		v.add("detail", "is required")
	} else {
		v.length("detail", *req.Detail, 1, 80)
	}
	return v.problems
}

func (req contactRequest) fields() courtdomain.ContactFields {
	return courtdomain.ContactFields{Type: req.Type, Detail: req.Detail}
}

// trimOptional trims value and treats a blank string as absent.
func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
