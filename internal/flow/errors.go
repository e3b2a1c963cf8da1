package flow

import "errors"

// ErrInFlight is returned by Trigger while the flow is already Loading.
var ErrInFlight = errors.New("request already in flight")

// ValidationError rejects input before any request is made. It always
// presents as a generic failure and is never classified.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Invalid returns a *ValidationError with msg.
func Invalid(msg string) error {
	return &ValidationError{Message: msg}
}
