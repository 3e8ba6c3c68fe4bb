package api

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// The client-side error taxonomy. A request follows exactly one of these
// paths when it fails:
//
//   - ValidationError  — rejected before any network I/O; user-correctable.
//   - ErrAuthRequired  — the action needs a session; surfaced as a login
//     prompt, not as a failure.
//   - RequestError     — the request could not even be constructed.
//   - NetworkError     — the request went out but no response came back.
//   - ServerError      — a response arrived with an error status.
//
// A stale cart-line reference is not an error at all: the cart engine treats
// it as a no-op.

// ErrAuthRequired is returned when an order-related call is attempted
// without a session.
var ErrAuthRequired = errors.New("please login to continue")

// ValidationError carries field-level messages from client-side checks.
// It never reaches the network layer.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, e.Fields[k])
	}
	return strings.Join(parts, "; ")
}

// NetworkError means no response reached the client.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("could not reach the server (%s)", e.Op)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError means the backend answered with an error status. Message is
// the server-supplied "message" field when present; UserMessage falls back
// to a status-coded generic.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string { return e.UserMessage() }

// UserMessage prefers the server's own wording over a generic.
func (e *ServerError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned HTTP %d", e.StatusCode)
}

// RequestError means the request could not be built (e.g. unmarshalable
// payload); nothing was sent.
type RequestError struct {
	Op  string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("could not prepare the request (%s)", e.Op)
}

func (e *RequestError) Unwrap() error { return e.Err }

// UserMessage turns any client error into a sentence fit for display.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAuthRequired):
		return "please login to continue"
	}
	var srvErr *ServerError
	if errors.As(err, &srvErr) {
		return srvErr.UserMessage()
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return "could not reach the server, please try again"
	}
	return err.Error()
}
