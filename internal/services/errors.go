package services

import "fmt"

// ValidationError is returned for client input that is rejected before any
// upstream call is made. Message is safe to show to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// UpstreamError wraps a failure of the completion provider or the mail relay.
// Message is the localized text for the caller; Err is for the logs only.
type UpstreamError struct {
	Service string
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
