// Package response writes the JSON shapes the storefront client consumes:
// bare payloads on success, a {"message": ...} object on failure.
package response

import (
	"encoding/json"
	"net/http"
)

func write(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// JSON sends a 200 with v as the body.
func JSON(w http.ResponseWriter, v interface{}) {
	write(w, http.StatusOK, v)
}

// Created sends a 201 with v as the body.
func Created(w http.ResponseWriter, v interface{}) {
	write(w, http.StatusCreated, v)
}

// Message sends a 200 with a bare message object.
func Message(w http.ResponseWriter, message string) {
	write(w, http.StatusOK, map[string]string{"message": message})
}

// Error sends an error status with the message the client will surface.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, map[string]string{"message": message})
}

// ValidationError sends a 422 with the first field message as the headline
// plus the full field map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	message := "validation failed"
	for _, msg := range errs {
		message = msg
		break
	}
	write(w, http.StatusUnprocessableEntity, map[string]interface{}{
		"message": message,
		"errors":  errs,
	})
}

// Unauthorized sends the 401 the client maps to a login prompt.
func Unauthorized(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, "please login to continue")
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter) {
	Error(w, http.StatusNotFound, "not found")
}
