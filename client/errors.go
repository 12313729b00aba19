package client

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrSendActive is returned by Send while another send on the same
	// Client is still streaming. Sends are never queued; the caller retries
	// after the active stream finishes.
	ErrSendActive = errors.New("a send is already active")
	// ErrInvalidState is returned for an illegal send-state transition.
	ErrInvalidState = errors.New("invalid send state transition")
	// ErrUnsupportedFile is returned for an upload with an unsupported
	// extension.
	ErrUnsupportedFile = errors.New("unsupported file type")
	// ErrFileTooLarge is returned for an upload over the backend's size cap.
	ErrFileTooLarge = errors.New("file exceeds upload size limit")
)

// APIError is a non-success HTTP response from the backend.
type APIError struct {
	Detail     string
	StatusCode int
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("api error (status %d)", e.StatusCode)
}

// TransportError wraps a failure of the streaming read loop. The partial
// buffer state reached before the failure is preserved, not discarded.
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("stream transport error: %v", e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}
