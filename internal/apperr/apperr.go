// Package apperr classifies every failure a request can hit into a small
// taxonomy and maps it to the status/detail pair the client is allowed to see.
package apperr

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	// KindClientInput covers bad, missing or unsupported input.
	KindClientInput Kind = iota
	// KindNotReady means a scoring backend never finished initializing.
	KindNotReady
	// KindDecoding means the uploaded bytes are not representable as text.
	KindDecoding
	// KindParse means malformed tabular structure.
	KindParse
	// KindResourceMissing means a required language resource is absent.
	KindResourceMissing
	// KindExhausted means the server hit memory pressure mid-request.
	KindExhausted
	// KindInternal is the fallback for anything unclassified.
	KindInternal
)

// Error is the typed failure raised at any stage of request handling.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Detail, e.Err)
	}
	return e.Detail
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a typed error with a fixed detail message.
func New(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// Wrap attaches a cause to a typed error.
func Wrap(kind Kind, detail string, err error) *Error {
	return &Error{Kind: kind, Detail: detail, Err: err}
}

// Clientf builds a client-input error with a formatted detail.
func Clientf(format string, args ...any) *Error {
	return &Error{Kind: KindClientInput, Detail: fmt.Sprintf(format, args...)}
}

// HTTPStatus converts any failure into the (status, detail) pair returned to
// the client. This is the only place user-visible error text is decided.
func HTTPStatus(err error) (int, string) {
	var appErr *Error
	if errors.As(err, &appErr) {
		switch appErr.Kind {
		case KindClientInput:
			return http.StatusBadRequest, appErr.Detail
		case KindExhausted:
			return http.StatusInternalServerError, "Processing error: server ran out of memory."
		case KindNotReady:
			return http.StatusInternalServerError, "Server error: models failed to load."
		case KindDecoding:
			return http.StatusBadRequest, "File encoding error."
		case KindParse:
			return http.StatusBadRequest, "CSV parsing error: " + appErr.Detail
		case KindResourceMissing:
			return http.StatusInternalServerError, fmt.Sprintf("Server config error: stopword data missing (%s).", appErr.Detail)
		}
	}

	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return http.StatusBadRequest, fmt.Sprintf("CSV parsing error: %v", csvErr)
	}

	return http.StatusInternalServerError, fmt.Sprintf("Internal server error: %T.", err)
}
