package middleware

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the JSON body written by the middleware when it ends a request.
type ErrorBody struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteError writes an ErrorBody with the given status.
func WriteError(w http.ResponseWriter, status int, message string, details map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorBody{
		Status:  status,
		Message: message,
		Details: details,
	})
}
