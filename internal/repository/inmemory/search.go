package inmemory

import (
	"fmt"
	"strings"
	"unicode"

	courtdomain "court-register-go/internal/domain/court"
	"court-register-go/internal/paging"
)

// searchTokens collects the lower-cased words of a court, its type, its
// buildings and their contacts. Postcodes and contact details also
// contribute their whitespace-free form.
func (s *courtStore) searchTokens(court courtdomain.Court) map[string]struct{} {
	tokens := make(map[string]struct{})
	add := func(value string) {
		for _, word := range words(value) {
			tokens[word] = struct{}{}
		}
	}
	addCompact := func(value *string) {
		if value == nil {
			return
		}
		add(*value)
		add(stripSpace(*value))
	}

	add(court.ID)
	add(court.Name)
	if court.Description != nil {
		add(*court.Description)
	}
	if courtType, ok := s.courtTypes[court.TypeID]; ok {
		add(courtType.Description)
	}

	buildings := make(map[int64]struct{})
	for _, building := range s.buildings {
		if building.CourtID != court.ID {
			continue
		}
		buildings[building.ID] = struct{}{}
		for _, value := range []*string{building.SubCode, building.Name, building.Street, building.Locality, building.Town, building.County, building.Country} {
			if value != nil {
				add(*value)
			}
		}
		addCompact(building.Postcode)
	}

	for _, contact := range s.contacts {
		if _, ok := buildings[contact.BuildingID]; ok {
			addCompact(contact.Detail)
		}
	}
	return tokens
}

// matchesText reports whether every word of query is a token, or the query
// with whitespace removed is a token.
func matchesText(tokens map[string]struct{}, query string) bool {
	if containsAll(tokens, words(query)) {
		return true
	}
	return containsAll(tokens, words(stripSpace(query)))
}

func containsAll(tokens map[string]struct{}, wanted []string) bool {
	if len(wanted) == 0 {
		return false
	}
	for _, word := range wanted {
		if _, ok := tokens[word]; !ok {
			return false
		}
	}
	return true
}

func words(value string) []string {
	return strings.FieldsFunc(strings.ToLower(value), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func stripSpace(value string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, value)
}

type courtLess func(a, b courtdomain.Court) bool

// courtOrdering builds a comparator for the requested sort, falling back to
// the court id for ties.
func courtOrdering(orders []paging.Order) (courtLess, error) {
	comparators := make([]func(a, b courtdomain.Court) int, 0, len(orders)+1)
	for _, order := range orders {
		compare, err := courtComparator(order.Property)
		if err != nil {
			return nil, err
		}
		if order.Direction == paging.Desc {
			asc := compare
			compare = func(a, b courtdomain.Court) int { return -asc(a, b) }
		}
		comparators = append(comparators, compare)
	}
	comparators = append(comparators, func(a, b courtdomain.Court) int { return strings.Compare(a.ID, b.ID) })

	return func(a, b courtdomain.Court) bool {
		for _, compare := range comparators {
			if c := compare(a, b); c != 0 {
				return c < 0
			}
		}
		return false
	}, nil
}

func courtComparator(property string) (func(a, b courtdomain.Court) int, error) {
	switch property {
	case "courtId":
		return func(a, b courtdomain.Court) int { return strings.Compare(a.ID, b.ID) }, nil
	case "courtName":
		return func(a, b courtdomain.Court) int { return strings.Compare(a.Name, b.Name) }, nil
	case "courtDescription":
		return func(a, b courtdomain.Court) int { return compareOptional(a.Description, b.Description) }, nil
	case "courtType":
		return func(a, b courtdomain.Court) int { return strings.Compare(a.TypeID, b.TypeID) }, nil
	case "active":
		return func(a, b courtdomain.Court) int { return compareBool(a.Active, b.Active) }, nil
	case "createdDatetime":
		return func(a, b courtdomain.Court) int { return a.Created.Compare(b.Created) }, nil
	case "lastUpdatedDatetime":
		return func(a, b courtdomain.Court) int { return a.LastUpdated.Compare(b.LastUpdated) }, nil
	default:
		return nil, fmt.Errorf("%w: %s", courtdomain.ErrInvalidSort, property)
	}
}

// compareOptional orders nil after any value, as PostgreSQL does for ascending sorts.
func compareOptional(a, b *string) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return strings.Compare(*a, *b)
	}
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}
