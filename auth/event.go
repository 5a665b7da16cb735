package auth

import (
	"encoding/base64"
	"encoding/json"
)

// Event is an inbound invocation envelope as decoded from JSON. It may be an
// API Gateway HTTP API event, an HTTP request rendered in the same shape, or
// the payload itself for direct invocations.
type Event map[string]any

// Payload is the flat set of string fields a request carries
type Payload map[string]string

// Recognized payload keys
const (
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldCode     = "code"
	FieldAction   = "action"
)

// Get returns the value stored under key, or "" when absent
func (p Payload) Get(key string) string {
	return p[key]
}

// Normalize extracts the request payload from event.
//
// A string body is decoded as a JSON object; an undecodable body yields an
// empty payload rather than an error. A body that is already a mapping is used
// as is. Without a usable body the whole event is the payload. Only string
// values are kept, anything else behaves as a missing field.
func Normalize(event Event) Payload {
	return toPayload(payloadSource(event))
}

func payloadSource(event Event) map[string]any {
	body, ok := event["body"]
	if !ok {
		return event
	}

	switch b := body.(type) {
	case string:
		raw := []byte(b)
		if encoded, _ := event["isBase64Encoded"].(bool); encoded {
			decoded, err := base64.StdEncoding.DecodeString(b)
			if err != nil {
				return nil
			}
			raw = decoded
		}
		var parsed map[string]any
		if err := json.Unmarshal(raw, &parsed); err != nil {
			return nil
		}
		return parsed
	case map[string]any:
		return b
	case Event:
		return b
	}

	return event
}

func toPayload(source map[string]any) Payload {
	payload := make(Payload, len(source))
	for k, v := range source {
		if s, ok := v.(string); ok {
			payload[k] = s
		}
	}
	return payload
}

// requestPath reads requestContext.http.path, falling back to rawPath
func requestPath(event Event) string {
	if rc, ok := asMap(event["requestContext"]); ok {
		if httpCtx, ok := asMap(rc["http"]); ok {
			if path, ok := httpCtx["path"].(string); ok && path != "" {
				return path
			}
		}
	}
	if path, ok := event["rawPath"].(string); ok {
		return path
	}
	return ""
}

// asMap accepts both decoded JSON objects and Event values built in Go
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Event:
		return m, true
	}
	return nil, false
}
