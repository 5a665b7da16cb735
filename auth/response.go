package auth

import (
	"encoding/json"
	"net/http"
)

// ContentTypeJSON is the only content type the gateway answers with
const ContentTypeJSON = "application/json"

// Response is the HTTP-style answer returned for every request
type Response struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body"`
}

// NewResponse encodes body as JSON. An unencodable body becomes a 500.
func NewResponse(status int, body any) Response {
	encoded, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		encoded = []byte(`{"error":"failed to encode response"}`)
	}

	return Response{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": ContentTypeJSON},
		Body:       string(encoded),
	}
}
