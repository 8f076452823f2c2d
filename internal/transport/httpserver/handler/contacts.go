package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

type contactPath struct {
	courtID    string
	buildingID int64
	contactID  int64
}

func parseContactPath(r *http.Request, withContact bool) (contactPath, error) {
	path := contactPath{courtID: strings.TrimSpace(chi.URLParam(r, "courtId"))}

	buildingID, err := parseIDParam(r, "buildingId")
	if err != nil {
		return contactPath{}, err
	}
	path.buildingID = buildingID

	if withContact {
		contactID, err := parseIDParam(r, "contactId")
		if err != nil {
			return contactPath{}, err
		}
		path.contactID = contactID
	}
	return path, nil
}

func (h *Handlers) GetContact(w http.ResponseWriter, r *http.Request) {
	path, err := parseContactPath(r, true)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	contact, err := h.Contacts.GetContact(r.Context(), path.courtID, path.buildingID, path.contactID)
	if err != nil {
		h.writeServiceError(w, "contacts.get", err, "court_id", path.courtID, "building_id", path.buildingID, "contact_id", path.contactID)
		return
	}
	writeJSON(w, http.StatusOK, toContactResponse(path.courtID, *contact))
}

func (h *Handlers) InsertContact(w http.ResponseWriter, r *http.Request) {
	path, err := parseContactPath(r, false)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var req contactRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if problems := req.Validate(); len(problems) > 0 {
		writeValidationError(w, problems)
		return
	}

	contact, err := h.Contacts.InsertContact(r.Context(), path.courtID, path.buildingID, req.fields())
	if err != nil {
		h.writeServiceError(w, "contacts.insert", err, "court_id", path.courtID, "building_id", path.buildingID)
		return
	}
	writeJSON(w, http.StatusCreated, toContactResponse(path.courtID, *contact))
}

func (h *Handlers) UpdateContact(w http.ResponseWriter, r *http.Request) {
	path, err := parseContactPath(r, true)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var req contactRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if problems := req.Validate(); len(problems) > 0 {
		writeValidationError(w, problems)
		return
	}

	contact, err := h.Contacts.UpdateContact(r.Context(), path.courtID, path.buildingID, path.contactID, req.fields())
	if err != nil {
		h.writeServiceError(w, "contacts.update", err, "court_id", path.courtID, "building_id", path.buildingID, "contact_id", path.contactID)
		return
	}
	writeJSON(w, http.StatusOK, toContactResponse(path.courtID, *contact))
}

func (h *Handlers) DeleteContact(w http.ResponseWriter, r *http.Request) {
	path, err := parseContactPath(r, true)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if err := h.Contacts.DeleteContact(r.Context(), path.courtID, path.buildingID, path.contactID); err != nil {
		h.writeServiceError(w, "contacts.delete", err, "court_id", path.courtID, "building_id", path.buildingID, "contact_id", path.contactID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
