package utils

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body of every error answer: {"error": "..."}
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return nil
	}

	return json.NewEncoder(w).Encode(data)
}

// WriteRaw writes an already encoded body with the given headers and status
func WriteRaw(w http.ResponseWriter, status int, headers map[string]string, body string) error {
	for k, v := range headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(status)

	if body == "" {
		return nil
	}

	_, err := w.Write([]byte(body))
	return err
}

// WriteError writes an {"error": message} response with the given status
func WriteError(w http.ResponseWriter, status int, message string) error {
	if message == "" {
		message = http.StatusText(status)
	}
	return WriteJSON(w, status, ErrorResponse{Error: message})
}

// WriteNotFound writes a 404 Not Found response
func WriteNotFound(w http.ResponseWriter, message string) error {
	if message == "" {
		message = "endpoint not found"
	}
	return WriteError(w, http.StatusNotFound, message)
}

// WriteMethodNotAllowed writes a 405 Method Not Allowed response
func WriteMethodNotAllowed(w http.ResponseWriter) error {
	return WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
}
