// Package render holds the JSON plumbing shared by the v1 handlers:
// request decoding with struct validation, responses, and the mapping of
// service errors onto status codes.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/go-playground/validator/v10"

	"github.com/letehaha/budget-tracker-be-sub001/internal/apperr"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

// Decode reads a JSON body into dst and validates it. On failure the error
// response is already written and false is returned.
func Decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		JSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			JSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return false
		}

		details := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			details[fe.Field()] = fmt.Sprintf("failed on the '%s' rule", fe.Tag())
		}

		JSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: "invalid request", Details: details})

		return false
	}

	return true
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error writes err with the status of its kind. Unclassified errors are
// logged and hidden from the client.
func Error(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		JSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperr.ErrNotFound):
		JSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperr.ErrConflict):
		JSON(w, http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		slog.Error("request failed", "error", err)
		JSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

// Date parses an optional YYYY-MM-DD query value.
func Date(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return nil, apperr.Validation("invalid date %q", value)
	}

	return &t, nil
}

// Display formats minor units of code for people, e.g. "$12.34".
func Display(amount int64, code string) string {
	return money.New(amount, code).Display()
}
