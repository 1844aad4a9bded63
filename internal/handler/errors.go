package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pkordes/when/internal/expr"
	"github.com/pkordes/when/internal/zone"
)

// ErrorResponse is the JSON body for every non-200 API response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine-readable code and a human-readable
// message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorCode classifies a conversion failure into a stable API error code.
// The boolean reports whether the error is a client-input failure (422
// territory); anything unclassified is a server-side problem.
func errorCode(err error) (string, bool) {
	var (
		grammar *expr.GrammarError
		garbage *expr.TrailingGarbageError
		rng     *expr.OutOfRangeError
		unknown *zone.UnknownZoneError
	)
	switch {
	case errors.As(err, &grammar):
		return "grammar_error", true
	case errors.As(err, &garbage):
		return "trailing_garbage", true
	case errors.As(err, &rng):
		return "out_of_range", true
	case errors.As(err, &unknown):
		return "unknown_zone", true
	}
	return "internal_error", false
}

// respondJSON writes v as the JSON response body with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondError writes the standard error body.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}
