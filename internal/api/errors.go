package api

import "fmt"

// TransportError reports a request that never produced a usable payload:
// a non-2xx status, a network failure or an undecodable body.
type TransportError struct {
	Op     string // "weather", "nutrition", "menu", "health"
	Status int    // 0 when no response was received
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("HTTP %d", e.Status)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "request failed"
}

func (e *TransportError) Unwrap() error { return e.Err }

// DomainError carries the backend's top-level "error" field from an otherwise
// successful response.
type DomainError struct {
	Op      string
	Message string
}

func (e *DomainError) Error() string { return e.Message }
