// Package httputil writes JSON responses and maps errors to HTTP statuses.
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"countries/pkg/platform/sentinel"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

// Error codes written in the envelope.
const (
	CodeBadRequest  = "bad_request"
	CodeNotFound    = "not_found"
	CodeSuperseded  = "superseded"
	CodeUnavailable = "upstream_unavailable"
	CodeCanceled    = "canceled"
	CodeTimeout     = "upstream_timeout"
	CodeInternal    = "internal_error"
)

// StatusClientClosedRequest is the non-standard status for a caller that went away.
const StatusClientClosedRequest = 499

// WriteJSON writes v as a JSON body with status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps err to a status and error code. Internal errors never leak
// their message.
func WriteError(w http.ResponseWriter, err error) {
	status, code := Classify(err)
	resp := ErrorResponse{Error: code}
	if status != http.StatusInternalServerError {
		resp.Description = err.Error()
	}
	WriteJSON(w, status, resp)
}

// Classify returns the HTTP status and error code for err.
func Classify(err error) (int, string) {
	switch {
	case errors.Is(err, sentinel.ErrInvalidInput):
		return http.StatusBadRequest, CodeBadRequest
	case errors.Is(err, sentinel.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, sentinel.ErrSuperseded):
		return http.StatusConflict, CodeSuperseded
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest, CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, CodeTimeout
	case errors.Is(err, sentinel.ErrUnavailable):
		return http.StatusBadGateway, CodeUnavailable
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}
