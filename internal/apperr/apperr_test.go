package apperr

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestHTTPStatusMapping(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{
			"client input",
			New(KindClientInput, "No input provided."),
			http.StatusBadRequest,
			"No input provided.",
		},
		{
			"not ready",
			New(KindNotReady, "transformer model not loaded"),
			http.StatusInternalServerError,
			"Server error: models failed to load.",
		},
		{
			"decoding",
			New(KindDecoding, "bad bytes"),
			http.StatusBadRequest,
			"File encoding error.",
		},
		{
			"parse",
			New(KindParse, "record on line 3: wrong number of fields"),
			http.StatusBadRequest,
			"CSV parsing error: record on line 3: wrong number of fields",
		},
		{
			"exhausted",
			New(KindExhausted, "oom"),
			http.StatusInternalServerError,
			"Processing error: server ran out of memory.",
		},
	}

	for _, tc := range testCases {
		status, detail := HTTPStatus(tc.err)
		if status != tc.wantStatus {
			t.Errorf("%s: status %d, want %d", tc.name, status, tc.wantStatus)
		}
		if detail != tc.wantDetail {
			t.Errorf("%s: detail %q, want %q", tc.name, detail, tc.wantDetail)
		}
	}
}

func TestHTTPStatusWrappedError(t *testing.T) {
	err := fmt.Errorf("handling request: %w", New(KindResourceMissing, "english stopwords"))
	status, detail := HTTPStatus(err)
	if status != http.StatusInternalServerError {
		t.Errorf("status %d, want 500", status)
	}
	if !strings.Contains(detail, "stopword data missing") {
		t.Errorf("unexpected detail %q", detail)
	}
}

func TestHTTPStatusCSVParseError(t *testing.T) {
	parseErr := &csv.ParseError{StartLine: 1, Line: 2, Err: csv.ErrQuote}
	status, detail := HTTPStatus(parseErr)
	if status != http.StatusBadRequest {
		t.Errorf("status %d, want 400", status)
	}
	if !strings.HasPrefix(detail, "CSV parsing error:") {
		t.Errorf("unexpected detail %q", detail)
	}
}

func TestHTTPStatusFallback(t *testing.T) {
	status, detail := HTTPStatus(errors.New("something else entirely"))
	if status != http.StatusInternalServerError {
		t.Errorf("status %d, want 500", status)
	}
	if !strings.HasPrefix(detail, "Internal server error:") {
		t.Errorf("unexpected detail %q", detail)
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(KindDecoding, "file encoding error", cause)
	if !errors.Is(err, cause) {
		t.Error("Wrap must preserve the cause chain")
	}
}
