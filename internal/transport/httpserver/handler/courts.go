package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

func (h *Handlers) ListActiveCourts(w http.ResponseWriter, r *http.Request) {
	active := true
	courts, err := h.Courts.ListCourts(r.Context(), &active)
	if err != nil {
		h.writeServiceError(w, "courts.list_active", err)
		return
	}
	writeJSON(w, http.StatusOK, toCourtResponses(courts))
}

func (h *Handlers) ListAllCourts(w http.ResponseWriter, r *http.Request) {
	courts, err := h.Courts.ListCourts(r.Context(), nil)
	if err != nil {
		h.writeServiceError(w, "courts.list_all", err)
		return
	}
	writeJSON(w, http.StatusOK, toCourtResponses(courts))
}

// ListActiveCourtPage pages active courts only; an active parameter is ignored.
func (h *Handlers) ListActiveCourtPage(w http.ResponseWriter, r *http.Request) {
	h.listCourtPage(w, r, true)
}

func (h *Handlers) ListCourtPage(w http.ResponseWriter, r *http.Request) {
	h.listCourtPage(w, r, false)
}

func (h *Handlers) listCourtPage(w http.ResponseWriter, r *http.Request, activeOnly bool) {
	query := r.URL.Query()
	req, problems := h.parsePageRequest(query)
	filter, filterProblems := parseCourtFilter(query)
	problems = append(problems, filterProblems...)
	if len(problems) > 0 {
		writeValidationError(w, problems)
		return
	}
	if activeOnly {
		active := true
		filter.Active = &active
	}

	page, err := h.Courts.ListCourtPage(r.Context(), filter, req)
	if err != nil {
		h.writeServiceError(w, "courts.list_page", err, "page", req.Page, "size", req.Size)
		return
	}
	writeJSON(w, http.StatusOK, toPageResponse(page, toCourtResponse))
}

func (h *Handlers) ListCourtTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.Courts.ListCourtTypes(r.Context())
	if err != nil {
		h.writeServiceError(w, "courts.list_types", err)
		return
	}

	response := make([]courtTypeResponse, 0, len(types))
	for _, courtType := range types {
		response = append(response, toCourtTypeResponse(courtType))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetCourt(w http.ResponseWriter, r *http.Request) {
	courtID := strings.TrimSpace(chi.URLParam(r, "courtId"))

	court, err := h.Courts.GetCourt(r.Context(), courtID)
	if err != nil {
		h.writeServiceError(w, "courts.get", err, "court_id", courtID)
		return
	}
	writeJSON(w, http.StatusOK, toCourtResponse(*court))
}

func (h *Handlers) InsertCourt(w http.ResponseWriter, r *http.Request) {
	var req insertCourtRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if problems := req.Validate(); len(problems) > 0 {
		writeValidationError(w, problems)
		return
	}

	court, err := h.Courts.InsertCourt(r.Context(), req.input())
	if err != nil {
		h.writeServiceError(w, "courts.insert", err, "court_id", req.CourtID)
		return
	}
	writeJSON(w, http.StatusCreated, toCourtResponse(*court))
}

func (h *Handlers) UpdateCourt(w http.ResponseWriter, r *http.Request) {
	courtID := strings.TrimSpace(chi.URLParam(r, "courtId"))

	var req updateCourtRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if problems := req.Validate(); len(problems) > 0 {
		writeValidationError(w, problems)
		return
	}

	court, err := h.Courts.UpdateCourt(r.Context(), courtID, req.fields())
	if err != nil {
		h.writeServiceError(w, "courts.update", err, "court_id", courtID)
		return
	}
	writeJSON(w, http.StatusOK, toCourtResponse(*court))
}

func (h *Handlers) DeleteCourt(w http.ResponseWriter, r *http.Request) {
	courtID := strings.TrimSpace(chi.URLParam(r, "courtId"))

	if err := h.Courts.DeleteCourt(r.Context(), courtID); err != nil {
		h.writeServiceError(w, "courts.delete", err, "court_id", courtID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
