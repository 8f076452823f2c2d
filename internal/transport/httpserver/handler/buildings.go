package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

func (h *Handlers) GetBuilding(w http.ResponseWriter, r *http.Request) {
	courtID := strings.TrimSpace(chi.URLParam(r, "courtId"))
	buildingID, err := parseIDParam(r, "buildingId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	building, err := h.Buildings.GetBuilding(r.Context(), courtID, buildingID)
	if err != nil {
		h.writeServiceError(w, "buildings.get", err, "court_id", courtID, "building_id", buildingID)
		return
	}
	writeJSON(w, http.StatusOK, toBuildingResponse(*building))
}

func (h *Handlers) GetMainBuilding(w http.ResponseWriter, r *http.Request) {
	courtID := strings.TrimSpace(chi.URLParam(r, "courtId"))

	building, err := h.Buildings.GetMainBuilding(r.Context(), courtID)
	if err != nil {
		h.writeServiceError(w, "buildings.get_main", err, "court_id", courtID)
		return
	}
	writeJSON(w, http.StatusOK, toBuildingResponse(*building))
}

func (h *Handlers) GetBuildingBySubCode(w http.ResponseWriter, r *http.Request) {
	subCode := strings.TrimSpace(chi.URLParam(r, "subCode"))

	building, err := h.Buildings.GetBuildingBySubCode(r.Context(), subCode)
	if err != nil {
		h.writeServiceError(w, "buildings.get_by_sub_code", err, "sub_code", subCode)
		return
	}
	writeJSON(w, http.StatusOK, toBuildingResponse(*building))
}

func (h *Handlers) InsertBuilding(w http.ResponseWriter, r *http.Request) {
	courtID := strings.TrimSpace(chi.URLParam(r, "courtId"))

	var req buildingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if problems := req.Validate(); len(problems) > 0 {
		writeValidationError(w, problems)
		return
	}

	building, err := h.Buildings.InsertBuilding(r.Context(), courtID, req.fields())
	if err != nil {
		h.writeServiceError(w, "buildings.insert", err, "court_id", courtID)
		return
	}
	writeJSON(w, http.StatusCreated, toBuildingResponse(*building))
}

func (h *Handlers) UpdateBuilding(w http.ResponseWriter, r *http.Request) {
	courtID := strings.TrimSpace(chi.URLParam(r, "courtId"))
	buildingID, err := parseIDParam(r, "buildingId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var req buildingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if problems := req.Validate(); len(problems) > 0 {
		writeValidationError(w, problems)
		return
	}

	building, err := h.Buildings.UpdateBuilding(r.Context(), courtID, buildingID, req.fields())
	if err != nil {
		h.writeServiceError(w, "buildings.update", err, "court_id", courtID, "building_id", buildingID)
		return
	}
	writeJSON(w, http.StatusOK, toBuildingResponse(*building))
}

func (h *Handlers) DeleteBuilding(w http.ResponseWriter, r *http.Request) {
	courtID := strings.TrimSpace(chi.URLParam(r, "courtId"))
	buildingID, err := parseIDParam(r, "buildingId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if err := h.Buildings.DeleteBuilding(r.Context(), courtID, buildingID); err != nil {
		h.writeServiceError(w, "buildings.delete", err, "court_id", courtID, "building_id", buildingID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
