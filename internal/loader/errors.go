package loader

import (
	"fmt"
)

// InvalidInputError is returned when the airport payload root is not a JSON array
type InvalidInputError struct {
	Got string // JSON kind found instead of an array
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("airports data must be an array, got %s", e.Got)
}

// JoinKeyNotFoundError is returned by a strict join when an SSID entry names an unknown airport
type JoinKeyNotFoundError struct {
	IATA string
}

func (e *JoinKeyNotFoundError) Error() string {
	return fmt.Sprintf("no airport with IATA code %q for SSID entry", e.IATA)
}

// TransportError covers failed fetches and non-success HTTP statuses
type TransportError struct {
	Location   string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: HTTP error status %d", e.Location, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.Location, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseError is returned when a payload body is not valid JSON for its resource
type ParseError struct {
	Resource string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Resource, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// jsonKind names the JSON type of a decoded value for error messages
func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
