package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[SERVER] failed to encode response: %v", err)
	}
}

// writeError maps an error to its HTTP status and writes a JSON error body.
func writeError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("[SERVER] internal error: %v", err)
		// Internal details stay in the logs
		writeJSON(w, status, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// decodeBody decodes a JSON request body into dst.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON"}
	}
	return nil
}

// firstValidationError converts a validator error into an ErrValidation for
// the first failing field.
func firstValidationError(err error) error {
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		return &ErrValidation{Field: verrs[0].Field(), Message: verrs[0].Tag()}
	}
	return &ErrValidation{Field: "request", Message: err.Error()}
}
