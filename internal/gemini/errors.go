package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// TransportError reports that the model API could not be reached or answered
// with a server-side failure.
type TransportError struct {
	Status int // HTTP status code when known, 0 otherwise
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("model transport failed with status %d: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("model transport failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// AuthError reports a missing or rejected API credential.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string { return fmt.Sprintf("model credential rejected: %v", e.Err) }

func (e *AuthError) Unwrap() error { return e.Err }

// ParseError reports a completion that does not match the blueprint schema.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unusable completion: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("unusable completion: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// classify maps SDK and transport failures onto the client's error types.
// The SDK surfaces googleapi errors on the REST path and gRPC status errors
// on the default path, so both are handled.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &TransportError{Err: err}
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		if gerr.Code == http.StatusUnauthorized || gerr.Code == http.StatusForbidden {
			return &AuthError{Err: err}
		}
		return &TransportError{Status: gerr.Code, Err: err}
	}

	if st, ok := status.FromError(err); ok {
		if st.Code() == codes.Unauthenticated || st.Code() == codes.PermissionDenied {
			return &AuthError{Err: err}
		}
		return &TransportError{Err: err}
	}

	return &TransportError{Err: err}
}
