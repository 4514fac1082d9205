package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"medassist/pkg/apperror"
)

// Every response except /health and middleware auth rejections uses this
// envelope.
type apiResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

var validate = validator.New()

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func respondOK(w http.ResponseWriter, message string, data any) {
	respondJSON(w, http.StatusOK, apiResponse{Success: true, Message: message, Data: data})
}

func respondCreated(w http.ResponseWriter, message string, data any) {
	respondJSON(w, http.StatusCreated, apiResponse{Success: true, Message: message, Data: data})
}

// respondError maps the error kind to a transport status and wraps the detail
// in a failed envelope. Status-appropriate codes are a deliberate departure
// from the original surface, which reported most failures with a 200 body.
func respondError(w http.ResponseWriter, message string, err error) {
	respondJSON(w, apperror.Status(err), apiResponse{
		Success: false,
		Message: message,
		Errors:  []string{err.Error()},
	})
}
