package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind classifies a failed API call.
type ErrorKind int

const (
	// KindTransport means the request never produced a response: connection
	// refused, timeout, or cancellation.
	KindTransport ErrorKind = iota + 1
	// KindRejected means the server refused the credentials or token (401/403).
	KindRejected
	// KindServer covers every other non-2xx response, including validation
	// failures reported by the server.
	KindServer
	// KindDecode means a 2xx response body could not be understood.
	KindDecode
	// KindInvalidInput means the call was refused locally before any I/O.
	KindInvalidInput
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindRejected:
		return "rejected"
	case KindServer:
		return "server"
	case KindDecode:
		return "decode"
	case KindInvalidInput:
		return "invalid_input"
	default:
		return "unknown"
	}
}

// Error is the error variant of a Result.
type Error struct {
	Kind   ErrorKind
	Status int    // HTTP status, 0 when no response was received
	Detail string // server-provided detail or a local description
	Err    error
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.String())
	if e.Status != 0 {
		fmt.Fprintf(&sb, " (HTTP %d)", e.Status)
	}
	if e.Detail != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Detail)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

func invalidInput(detail string) *Error {
	return &Error{Kind: KindInvalidInput, Detail: detail}
}

// transportError converts context errors to user-friendly messages.
func transportError(ctx context.Context, baseURL string, err error) *Error {
	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		return &Error{Kind: KindTransport, Detail: "request canceled", Err: err}
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return &Error{Kind: KindTransport, Detail: "request timed out", Err: err}
	}
	return &Error{Kind: KindTransport, Detail: "cannot connect to " + baseURL, Err: err}
}

// statusError builds the error for a non-2xx response. The server reports
// problems as {"detail": ...} where detail is a string or, for validation
// failures, a list of objects.
func statusError(status int, body []byte) *Error {
	kind := KindServer
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		kind = KindRejected
	}

	detail := http.StatusText(status)
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Detail) > 0 {
		var s string
		if json.Unmarshal(payload.Detail, &s) == nil {
			detail = s
		} else {
			detail = string(payload.Detail)
		}
	}
	return &Error{Kind: kind, Status: status, Detail: detail}
}
