package court

import "time"

const (
	ContactTypeTelephone = "TEL"
	ContactTypeFax       = "FAX"
)

type CourtType struct {
	ID          string `gorm:"primaryKey;size:12" json:"id"`
	Description string `gorm:"size:80;not null" json:"description"`
}

func (CourtType) TableName() string { return "court_type" }

type Court struct {
	ID          string    `gorm:"primaryKey;size:12" json:"courtId"`
	Name        string    `gorm:"column:court_name;size:80;not null" json:"courtName"`
	Description *string   `gorm:"column:court_description;size:200" json:"courtDescription,omitempty"`
	TypeID      string    `gorm:"column:type;size:12;not null" json:"courtType"`
	Active      bool      `gorm:"not null" json:"active"`
	Created     time.Time `gorm:"column:created_datetime;not null" json:"createdDatetime"`
	LastUpdated time.Time `gorm:"column:last_updated_datetime;not null" json:"lastUpdatedDatetime"`
}

func (Court) TableName() string { return "court" }

// Building with a nil SubCode is the court's main building.
type Building struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	CourtID     string    `gorm:"column:court_code;size:12;not null" json:"courtId"`
	SubCode     *string   `gorm:"column:sub_code;size:6" json:"subCode,omitempty"`
	Name        *string   `gorm:"column:building_name;size:50" json:"buildingName,omitempty"`
	Street      *string   `gorm:"size:80" json:"street,omitempty"`
	Locality    *string   `gorm:"size:80" json:"locality,omitempty"`
	Town        *string   `gorm:"size:80" json:"town,omitempty"`
	County      *string   `gorm:"size:80" json:"county,omitempty"`
	Postcode    *string   `gorm:"size:8" json:"postcode,omitempty"`
	Country     *string   `gorm:"size:16" json:"country,omitempty"`
	Active      bool      `gorm:"not null" json:"active"`
	Created     time.Time `gorm:"column:created_datetime;not null" json:"createdDatetime"`
	LastUpdated time.Time `gorm:"column:last_updated_datetime;not null" json:"lastUpdatedDatetime"`
}

func (Building) TableName() string { return "building" }

func (b Building) IsMain() bool {
	return b.SubCode == nil
}

type Contact struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	BuildingID  int64     `gorm:"column:building_id;not null" json:"buildingId"`
	Type        string    `gorm:"size:5;not null" json:"type"`
	Detail      *string   `gorm:"size:80" json:"detail,omitempty"`
	Created     time.Time `gorm:"column:created_datetime;not null" json:"createdDatetime"`
	LastUpdated time.Time `gorm:"column:last_updated_datetime;not null" json:"lastUpdatedDatetime"`
}

func (Contact) TableName() string { return "contact" }

// CourtDetails is a court resolved with its type and children.
type CourtDetails struct {
	Court
	Type      CourtType
	Buildings []BuildingDetails
}

type BuildingDetails struct {
	Building
	Contacts []Contact
}

type CourtFields struct {
	Name        string
	Description *string
	TypeID      string
	Active      bool
}

type InsertCourtInput struct {
	ID string
	CourtFields
}

type BuildingFields struct {
	SubCode  *string
	Name     *string
	Street   *string
	Locality *string
	Town     *string
	County   *string
	Postcode *string
	Country  *string
	Active   bool
}

type ContactFields struct {
	Type   string
	Detail *string
}

// CourtFilter narrows a court page. Zero values disable each filter.
type CourtFilter struct {
	Active       *bool
	CourtTypeIDs []string
	TextSearch   string
}
