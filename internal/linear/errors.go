package linear

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ServiceError wraps a failed API operation with enough classification for
// the session to decide how to surface it. Transient failures (network
// trouble, rate limits, server errors) are worth retrying; permanent ones
// (validation, auth, not found) are not.
type ServiceError struct {
	Op        string // operation name, e.g. "UpdateIssue"
	Message   string // human-readable message for notifications
	Transient bool
	Err       error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// IsTransient reports whether err is a ServiceError marked transient.
func IsTransient(err error) bool {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Transient
	}
	return false
}

// UserMessage extracts a short message suitable for a notification.
func UserMessage(err error) string {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Message
	}
	return err.Error()
}

func newTransportError(op string, err error) *ServiceError {
	msg := "network error"
	if errors.Is(err, context.DeadlineExceeded) {
		msg = "request timed out"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		msg = "request timed out"
	}
	return &ServiceError{Op: op, Message: msg, Transient: true, Err: err}
}

func newStatusError(op string, status int) *ServiceError {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &ServiceError{Op: op, Message: "authentication failed, check LINEAR_API_KEY", Transient: false}
	case status == http.StatusTooManyRequests:
		return &ServiceError{Op: op, Message: "rate limited by Linear", Transient: true}
	case status >= 500:
		return &ServiceError{Op: op, Message: fmt.Sprintf("Linear returned HTTP %d", status), Transient: true}
	default:
		return &ServiceError{Op: op, Message: fmt.Sprintf("Linear returned HTTP %d", status), Transient: false}
	}
}

func newGraphQLError(op string, message string) *ServiceError {
	return &ServiceError{Op: op, Message: message, Transient: false}
}
