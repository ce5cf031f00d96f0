// Package respond renders the JSON bodies shared by the feature modules.
package respond

import (
	"encoding/json"
	"net/http"
)

// JSON writes v as the response body with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes the module error body shape.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{
		"status":  "error",
		"message": message,
	})
}
