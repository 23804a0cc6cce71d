package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/JibinB02/pehlahath/internal/entity"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeValid decodes the JSON body into dst and runs struct validation.
func decodeValid(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// writeTaskError maps the lifecycle error taxonomy onto HTTP statuses:
// absent task 404, forbidden caller 403, every rejected transition or
// precondition 400, anything else 500.
func writeTaskError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrTaskNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, entity.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, entity.ErrTaskUnavailable),
		errors.Is(err, entity.ErrTaskCompleted),
		errors.Is(err, entity.ErrTaskCancelled),
		errors.Is(err, entity.ErrAlreadyVolunteer),
		errors.Is(err, entity.ErrCapacityReached),
		errors.Is(err, entity.ErrInvalidTaskData):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
