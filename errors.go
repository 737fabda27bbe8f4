package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
)

// Request failure taxonomy. Handlers wrap upstream errors with one of these
// sentinels; writeError maps each exactly once to a status code.
var (
	errMissingParameter = errors.New("URL parameter is required")
	errInvalidURL       = errors.New("Invalid YouTube URL")
	errNoSuitableFormat = errors.New("No suitable audio format found")
	errFetchTimeout     = errors.New("Request timeout - YouTube may be blocking the request")
	errUnavailable      = errors.New("Video unavailable or private")
	errUpstream         = errors.New("Audio processing error")
	errInternal         = errors.New("Failed to process video")
)

func wrapUpstream(err error) error {
	return fmt.Errorf("%w: %v", errUpstream, err)
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, errMissingParameter),
		errors.Is(err, errInvalidURL),
		errors.Is(err, errNoSuitableFormat):
		return http.StatusBadRequest
	case errors.Is(err, errFetchTimeout):
		return http.StatusRequestTimeout
	case errors.Is(err, errUnavailable):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// messageForError returns the human-readable taxonomy message for err, or the
// generic internal message when err carries no sentinel.
func messageForError(err error) string {
	for _, sentinel := range []error{
		errMissingParameter, errInvalidURL, errNoSuitableFormat,
		errFetchTimeout, errUnavailable, errUpstream,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return errInternal.Error()
}

// writeError sends the JSON error body. The underlying cause, when it adds
// anything beyond the taxonomy message, lands in the details field.
func writeError(w http.ResponseWriter, err error) {
	msg := messageForError(err)
	writeJSON(w, statusForError(err), APIError{
		Error:   msg,
		Details: detailFor(err, msg),
	})
}

// detailFor splices the taxonomy message out of the error chain, keeping the
// surrounding context. The sentinel may sit anywhere in the chain, not just
// at the front.
func detailFor(err error, msg string) string {
	full := err.Error()
	if full == msg {
		return ""
	}
	idx := strings.Index(full, msg)
	if idx < 0 {
		return full
	}
	detail := full[:idx] + strings.TrimPrefix(full[idx+len(msg):], ": ")
	detail = strings.TrimSpace(detail)
	return strings.TrimSuffix(detail, ":")
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to encode response body: %v", err)
	}
}
