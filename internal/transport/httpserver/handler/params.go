package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	courtdomain "court-register-go/internal/domain/court"
	"court-register-go/internal/paging"
	"github.com/go-chi/chi/v5"
)

func parseCSV(values ...string) []string {
	seen := make(map[string]struct{})
	result := make([]string, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			item := strings.TrimSpace(part)
			if item == "" {
				continue
			}
			if _, ok := seen[item]; ok {
				continue
			}
			seen[item] = struct{}{}
			result = append(result, item)
		}
	}
	return result
}

func parseIntParam(value string, fallback int) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return 0, fmt.Errorf("invalid int")
	}
	return parsed, nil
}

func parseBoolParam(value string) (*bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	value := strings.TrimSpace(chi.URLParam(r, name))
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// parsePageRequest reads page, size and sort. Sort may repeat.
func (h *Handlers) parsePageRequest(query url.Values) (paging.Request, []string) {
	var problems []string

	page, err := parseIntParam(query.Get("page"), 0)
	if err != nil {
		problems = append(problems, "page: must be zero or greater")
	}

	size, err := parseIntParam(query.Get("size"), h.paging.DefaultSize)
	if err != nil || size < 1 || size > h.paging.MaxSize {
		problems = append(problems, fmt.Sprintf("size: must be between 1 and %d", h.paging.MaxSize))
	}

	var sort []paging.Order
	for _, value := range query["sort"] {
		if strings.TrimSpace(value) == "" {
			continue
		}
		order, err := paging.ParseOrder(value)
		if err != nil {
			problems = append(problems, "sort: "+err.Error())
			continue
		}
		if _, ok := courtdomain.SortColumns[order.Property]; !ok {
			problems = append(problems, fmt.Sprintf("sort: unknown property %q", order.Property))
			continue
		}
		sort = append(sort, order)
	}

	return paging.Request{Page: page, Size: size, Sort: sort}, problems
}

func parseCourtFilter(query url.Values) (courtdomain.CourtFilter, []string) {
	var problems []string

	active, err := parseBoolParam(query.Get("active"))
	if err != nil {
		problems = append(problems, "active: must be true or false")
	}

	return courtdomain.CourtFilter{
		Active:       active,
		CourtTypeIDs: parseCSV(query["courtTypeIds"]...),
		TextSearch:   strings.TrimSpace(query.Get("textSearch")),
	}, problems
}
