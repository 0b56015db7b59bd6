package httpx

import (
	"errors"
	"net/http"
)

// Sentinel errors shared by the domain layer.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrConflict          = errors.New("already exists")
	ErrValidation        = errors.New("validation failed")
	ErrReference         = errors.New("referenced resource not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrHasDependents     = errors.New("cannot delete: dependent records exist")
)

// RespondError maps domain errors to the API's JSON error envelope.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrConflict),
		errors.Is(err, ErrValidation),
		errors.Is(err, ErrReference),
		errors.Is(err, ErrInsufficientStock),
		errors.Is(err, ErrHasDependents):
		Error(w, http.StatusBadRequest, err.Error())
	default:
		Error(w, http.StatusInternalServerError, "internal server error")
	}
}
