package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	courtdomain "court-register-go/internal/domain/court"
)

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

var errorCodes = []struct {
	err  error
	code string
}{
	{courtdomain.ErrCourtNotFound, "court_not_found"},
	{courtdomain.ErrCourtTypeNotFound, "court_type_not_found"},
	{courtdomain.ErrBuildingNotFound, "building_not_found"},
	{courtdomain.ErrMainBuildingNotFound, "main_building_not_found"},
	{courtdomain.ErrContactNotFound, "contact_not_found"},
	{courtdomain.ErrCourtAlreadyExists, "court_already_exists"},
	{courtdomain.ErrSubCodeAlreadyExists, "sub_code_already_exists"},
	{courtdomain.ErrMainBuildingExists, "main_building_exists"},
	{courtdomain.ErrConflict, "conflict"},
	{courtdomain.ErrInvalidContactType, "invalid_contact_type"},
	{courtdomain.ErrInvalidSort, "invalid_sort"},
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

func writeValidationError(w http.ResponseWriter, problems []string) {
	writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: errorBody{
		Code:    "validation_failed",
		Message: "request validation failed",
		Errors:  problems,
	}})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeServiceError maps a court domain error onto a response and logs it
// under op.
func (h *Handlers) writeServiceError(w http.ResponseWriter, op string, err error, args ...any) {
	if errors.Is(err, courtdomain.ErrNotificationFailed) {
		h.log.InternalError(op+": change stored but notification failed", err, args...)
		writeError(w, http.StatusInternalServerError, "notification_failed", "change stored but notification failed")
		return
	}

	status := http.StatusInternalServerError
	switch {
	case courtdomain.IsNotFound(err):
		status = http.StatusNotFound
	case courtdomain.IsAlreadyExists(err):
		status = http.StatusConflict
	case courtdomain.IsInvalid(err):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		h.log.InternalError(op+": failed", err, args...)
		writeError(w, status, "internal_error", "internal error")
		return
	}

	h.log.BusinessError(op+": rejected", err, args...)
	for _, candidate := range errorCodes {
		if errors.Is(err, candidate.err) {
			writeError(w, status, candidate.code, candidate.err.Error())
			return
		}
	}
	writeError(w, status, "invalid_request", err.Error())
}
