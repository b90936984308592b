package api

import (
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// EnvelopeVersion is the wire format version clients pin against.
const EnvelopeVersion = 1

// Envelope is the uniform response wrapper. Success responses carry data,
// error responses carry the error body produced by RegisterErrorHandler.
type Envelope struct {
	V       int  `json:"v"`
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
	Error   any  `json:"error,omitempty"`
}

// EnvelopeTransformer wraps every response body in an Envelope. Registered
// as a huma transformer so handlers return plain bodies.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	if strings.HasPrefix(status, "2") {
		return &Envelope{V: EnvelopeVersion, Success: true, Data: v}, nil
	}

	if err, ok := v.(error); ok {
		if _, marshalable := v.(*APIError); !marshalable {
			// Plain errors carry no exported fields, keep the message.
			v = map[string]string{"message": err.Error()}
		}
	}
	return &Envelope{V: EnvelopeVersion, Success: false, Error: v}, nil
}
