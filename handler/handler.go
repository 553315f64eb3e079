package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"ewintr.nl/potongin/clip"
	"ewintr.nl/potongin/fetcher"
	"ewintr.nl/potongin/transcript"
)

const maxBodySize = 1 << 20

var ErrNotConfigured = errors.New("not configured")

func Index(w http.ResponseWriter) {
	Message(w, http.StatusOK, "Potongin Backend Running")
}

func Message(w http.ResponseWriter, status int, message string, details ...any) {
	response := struct {
		Message string `json:"message"`
		Details []any  `json:"details,omitempty"`
	}{
		Message: message,
		Details: details,
	}
	body, marshalErr := json.Marshal(response)
	if marshalErr != nil {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintf(w, `{"message": %q, "details":%q}`, message, marshalErr.Error())
		return
	}
	w.WriteHeader(status)
	w.Write(body)
}

func Error(w http.ResponseWriter, status int, message string, err error, details ...any) {
	response := struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Details []any  `json:"details,omitempty"`
	}{
		Message: message,
		Error:   err.Error(),
		Details: details,
	}
	body, marshalErr := json.Marshal(response)
	if marshalErr != nil {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintf(w, `{"message": %q, "error": %q, "details":%q}`, message, err.Error(), marshalErr.Error())
		return
	}
	w.WriteHeader(status)
	w.Write(body)
}

func JSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		Error(w, http.StatusInternalServerError, "could not marshal response", err)
		return
	}
	w.WriteHeader(status)
	w.Write(body)
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: could not decode request body: %v", transcript.ErrInvalidInput, err)
	}

	return nil
}

// statusFor maps domain errors onto the response status. Provider failures
// and anything unknown, like a failing store, are server errors.
func statusFor(err error) int {
	switch {
	case errors.Is(err, transcript.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, transcript.ErrNoTranscriptAvailable), errors.Is(err, fetcher.ErrVideoNotFound):
		return http.StatusNotFound
	case errors.Is(err, clip.ErrSearchDisabled), errors.Is(err, ErrNotConfigured):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
