package handler

import (
	"net/url"
	"strings"
	"testing"

	"court-register-go/internal/config"
	"court-register-go/internal/paging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(value string) *string {
	return &value
}

func TestInsertCourtRequestValidate(t *testing.T) {
	tests := []struct {
		name     string
		req      insertCourtRequest
		problems []string
	}{
		{
			name: "valid",
			req: insertCourtRequest{CourtID: " ACCRYC ", updateCourtRequest: updateCourtRequest{
				CourtName: "Accrington Youth Court", CourtType: "YTH",
			}},
		},
		{
			name: "blank description is dropped",
			req: insertCourtRequest{CourtID: "ACCRYC", updateCourtRequest: updateCourtRequest{
				CourtName: "Accrington Youth Court", CourtType: "YTH", CourtDescription: ptr("  "),
			}},
		},
		{
			name: "id too long",
			req: insertCourtRequest{CourtID: "ABCDEFGHIJKLM", updateCourtRequest: updateCourtRequest{
				CourtName: "Accrington", CourtType: "YTH",
			}},
			problems: []string{"courtId: must be between 2 and 12 characters"},
		},
		{
			name: "id not alphanumeric",
			req: insertCourtRequest{CourtID: "ACC-YC", updateCourtRequest: updateCourtRequest{
				CourtName: "Accrington", CourtType: "YTH",
			}},
			problems: []string{"courtId: must be alphanumeric"},
		},
		{
			name: "short description and missing type",
			req: insertCourtRequest{CourtID: "ACCRYC", updateCourtRequest: updateCourtRequest{
				CourtName: "Accrington", CourtDescription: ptr("A"),
			}},
			problems: []string{
				"courtDescription: must be between 2 and 200 characters",
				"courtType: is required",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.problems, tt.req.Validate())
		})
	}
}

func TestInsertCourtRequestNormalizes(t *testing.T) {
	req := insertCourtRequest{CourtID: " ACCRYC ", updateCourtRequest: updateCourtRequest{
		CourtName: " Accrington Youth Court ", CourtType: " YTH ", CourtDescription: ptr(" "),
	}}
	require.Empty(t, req.Validate())

	input := req.input()
	assert.Equal(t, "ACCRYC", input.ID)
	assert.Equal(t, "Accrington Youth Court", input.Name)
	assert.Equal(t, "YTH", input.TypeID)
	assert.Nil(t, input.Description)
}

func TestBuildingRequestValidate(t *testing.T) {
	req := buildingRequest{
		SubCode:      ptr("A"),
		BuildingName: ptr(strings.Repeat("b", 51)),
		Postcode:     ptr("BB5 2BHXX"),
		Country:      ptr("United Kingdom of GB"),
	}
	assert.Equal(t, []string{
		"subCode: must be between 2 and 6 characters",
		"buildingName: must be at most 50 characters",
		"postcode: must be at most 8 characters",
		"country: must be at most 16 characters",
	}, req.Validate())

	ok := buildingRequest{SubCode: ptr("ACANX"), Postcode: ptr("BB5 2BH"), Town: ptr(" ")}
	assert.Empty(t, ok.Validate())
	assert.Nil(t, ok.Town)
}

func TestContactRequestValidate(t *testing.T) {
	req := contactRequest{Type: " fax ", Detail: ptr("01254 265000")}
	assert.Empty(t, req.Validate())
	assert.Equal(t, "FAX", req.Type)

	bad := contactRequest{Type: "EMAIL"}
	assert.Equal(t, []string{"type: must be one of TEL, FAX", "detail: is required"}, bad.Validate())

	long := contactRequest{Type: "TEL", Detail: ptr(strings.Repeat("1", 81))}
	assert.Equal(t, []string{"detail: must be between 1 and 80 characters"}, long.Validate())
}

func TestParsePageRequest(t *testing.T) {
	h := &Handlers{paging: config.PagingConfig{DefaultSize: 20, MaxSize: 100}}

	req, problems := h.parsePageRequest(url.Values{})
	assert.Empty(t, problems)
	assert.Equal(t, paging.Request{Page: 0, Size: 20}, req)

	req, problems = h.parsePageRequest(url.Values{
		"page": {"2"},
		"size": {"5"},
		"sort": {"courtType,desc", "courtName"},
	})
	assert.Empty(t, problems)
	assert.Equal(t, 10, req.Offset())
	assert.Equal(t, []paging.Order{
		{Property: "courtType", Direction: paging.Desc},
		{Property: "courtName", Direction: paging.Asc},
	}, req.Sort)

	_, problems = h.parsePageRequest(url.Values{"size": {"101"}, "sort": {"postcode"}})
	assert.Len(t, problems, 2)
}

func TestParseCourtFilter(t *testing.T) {
	filter, problems := parseCourtFilter(url.Values{
		"active":       {"true"},
		"courtTypeIds": {"YTH,CRN", "MAG", "YTH"},
		"textSearch":   {"  Accrington  "},
	})
	require.Empty(t, problems)
	require.NotNil(t, filter.Active)
	assert.True(t, *filter.Active)
	assert.Equal(t, []string{"YTH", "CRN", "MAG"}, filter.CourtTypeIDs)
	assert.Equal(t, "Accrington", filter.TextSearch)

	filter, problems = parseCourtFilter(url.Values{})
	assert.Empty(t, problems)
	assert.Nil(t, filter.Active)
	assert.Empty(t, filter.CourtTypeIDs)
}
