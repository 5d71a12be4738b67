// Package httperr maps failure kinds to HTTP statuses and renders the JSON
// error envelope shared by every 4xx/5xx response. The mapping lives in one
// table consulted at the outermost request boundary, so individual handlers
// only ever say what kind of failure they hit.
package httperr

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// Kind classifies a request failure.
type Kind int

const (
	// KindClient is a request the caller got wrong: unknown route, bad
	// method, malformed body, or a disabled debug endpoint.
	KindClient Kind = iota
	// KindHandler is an uncaught failure inside handler logic. The raw cause
	// is logged but never sent to the client.
	KindHandler
	// KindDegraded means process introspection failed and the service should
	// report itself unavailable.
	KindDegraded
)

// statusFor is the kind-to-status table. KindClient errors carry their own
// status since 403/404/405 all fall under it.
var statusFor = map[Kind]int{
	KindClient:   http.StatusBadRequest,
	KindHandler:  http.StatusInternalServerError,
	KindDegraded: http.StatusServiceUnavailable,
}

// Error is a classified request failure with a user-safe message. The
// underlying error, if any, is for logs only.
type Error struct {
	kind   Kind
	status int
	msg    string
	err    error
}

// New returns an Error of the given kind with a user-safe message.
func New(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// Wrap attaches an underlying cause to a user-safe message. The cause will
// never appear in the response body.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{kind: kind, msg: msg, err: err}
}

// WithStatus overrides the kind's default status. Only meaningful for
// KindClient, which spans several 4xx codes.
func (e *Error) WithStatus(status int) *Error {
	e.status = status
	return e
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

// Message is the user-safe text for the envelope.
func (e *Error) Message() string { return e.msg }

// Status resolves the HTTP status for this error via the kind table.
func (e *Error) Status() int {
	if e.status != 0 {
		return e.status
	}
	return statusFor[e.kind]
}

// StatusOf resolves any error to an HTTP status. Unclassified errors are
// treated as handler failures.
func StatusOf(err error) int {
	var he *Error
	if errors.As(err, &he) {
		return he.Status()
	}
	return statusFor[KindHandler]
}

// Envelope is the error body shape shared across 404, 500 and 503 responses.
type Envelope struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Write emits the envelope with an explicit status and title.
func Write(w http.ResponseWriter, status int, title, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Envelope{
		Error:     title,
		Message:   msg,
		Timestamp: time.Now().UTC(),
	})
}

// WriteError resolves err through the status table and emits the envelope.
// The envelope text comes from the error's user-safe message; the underlying
// cause stays out of the response.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusOf(err)
	msg := "something went wrong on our end"
	var he *Error
	if errors.As(err, &he) {
		msg = he.Message()
	}
	Write(w, status, http.StatusText(status), msg)
}
