package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType classifies a gate or upstream failure. Callers branch on this
// value programmatically, so the set is fixed and closed.
type ErrorType string

const (
	ErrInvalidConfiguration ErrorType = "invalid_configuration"
	ErrPermissionDenied     ErrorType = "permission_denied"
	ErrRateLimited          ErrorType = "rate_limit_exceeded"
	ErrUnsupported          ErrorType = "unsupported_operation"
	ErrUpstream             ErrorType = "upstream_error"
)

// Error is the single error shape crossing the enforcement boundary.
// Status carries an HTTP-ish code for clients that want one.
type Error struct {
	Type    ErrorType      `json:"type"`
	Message string         `json:"message"`
	Status  int            `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// NewInvalidConfiguration reports bad profile/group/override input.
func NewInvalidConfiguration(format string, args ...any) *Error {
	return &Error{
		Type:    ErrInvalidConfiguration,
		Message: fmt.Sprintf(format, args...),
		Status:  400,
	}
}

// NewPermissionDenied reports an authorization failure for a tool under the
// active profile. Never retried automatically; not a bug.
func NewPermissionDenied(tool, profile string) *Error {
	return &Error{
		Type:    ErrPermissionDenied,
		Message: "tool is disabled by the current permission profile",
		Status:  403,
		Details: map[string]any{
			"tool":    tool,
			"profile": profile,
		},
	}
}

// NewRateLimited reports an exhausted local rate budget. RetryAfter is
// rounded up to whole seconds so a zero wait never masks a denial.
func NewRateLimited(category string, retryAfter time.Duration) *Error {
	secs := int((retryAfter + time.Second - 1) / time.Second)
	if secs < 0 {
		secs = 0
	}
	return &Error{
		Type:    ErrRateLimited,
		Message: "rate limit exceeded",
		Status:  429,
		Details: map[string]any{
			"category":            category,
			"retry_after_seconds": secs,
		},
	}
}

// NewUnsupported reports a capability the upstream platform does not expose
// programmatically. Permanent; never retried.
func NewUnsupported(tool string) *Error {
	return &Error{
		Type:    ErrUnsupported,
		Message: "operation is not supported by the upstream platform API",
		Status:  501,
		Details: map[string]any{"tool": tool},
	}
}

// NewUpstream wraps an opaque failure from the external collaborator.
func NewUpstream(status int, message string, details map[string]any) *Error {
	if status == 0 {
		status = 502
	}
	return &Error{
		Type:    ErrUpstream,
		Message: message,
		Status:  status,
		Details: details,
	}
}

// AsError coerces any error into the closed taxonomy. Errors that already
// carry a type pass through; everything else becomes an upstream error with
// the original text preserved in details.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return NewUpstream(502, "upstream call failed", map[string]any{"error": err.Error()})
}
