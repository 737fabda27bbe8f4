package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStatusForError(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{errMissingParameter, http.StatusBadRequest},
		{errInvalidURL, http.StatusBadRequest},
		{errNoSuitableFormat, http.StatusBadRequest},
		{errFetchTimeout, http.StatusRequestTimeout},
		{errUnavailable, http.StatusNotFound},
		{errUpstream, http.StatusInternalServerError},
		{errInternal, http.StatusInternalServerError},
		{errors.New("anything uncategorized"), http.StatusInternalServerError},
		{fmt.Errorf("%w: host not allowed", errInvalidURL), http.StatusBadRequest},
		{fmt.Errorf("%w: exceeded 10s", errFetchTimeout), http.StatusRequestTimeout},
	}
	for _, c := range cases {
		if got := statusForError(c.err); got != c.want {
			t.Errorf("statusForError(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestWriteErrorBody(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, fmt.Errorf("%w: itag 18 rejected by upstream", errUpstream))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var body APIError
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if body.Error != "Audio processing error" {
		t.Errorf("error = %q", body.Error)
	}
	if body.Details != "itag 18 rejected by upstream" {
		t.Errorf("details = %q", body.Details)
	}
}

func TestWriteErrorSentinelWrappedMidChain(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, fmt.Errorf("relay stage: %w", wrapUpstream(errors.New("connection reset"))))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var body APIError
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if body.Error != "Audio processing error" {
		t.Errorf("error = %q, want taxonomy message", body.Error)
	}
	if body.Details != "relay stage: connection reset" {
		t.Errorf("details = %q, want sentinel text spliced out", body.Details)
	}
}

func TestWriteErrorUncategorizedIsGeneric(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, errors.New("secret upstream internals"))

	var body APIError
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if body.Error != "Failed to process video" {
		t.Errorf("error = %q, want generic message", body.Error)
	}
}
