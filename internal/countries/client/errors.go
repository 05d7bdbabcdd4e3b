package client

import (
	"errors"
	"fmt"
)

// Op names the remote query that was attempted.
type Op string

const (
	OpFetchAll      Op = "fetch_all"
	OpFetchByName   Op = "fetch_by_name"
	OpFetchByRegion Op = "fetch_by_region"
	OpFetchByCodes  Op = "fetch_by_codes"
)

// ErrorCategory is the normalized failure taxonomy of a fetch.
type ErrorCategory string

const (
	// CategoryTransport covers DNS, connection and read failures.
	CategoryTransport ErrorCategory = "transport"

	// CategoryStatus means the service answered with a non-success status.
	CategoryStatus ErrorCategory = "status"

	// CategoryDecode means the payload was not a JSON array of countries.
	CategoryDecode ErrorCategory = "decode"

	// CategoryCanceled means the caller abandoned the request.
	CategoryCanceled ErrorCategory = "canceled"

	// CategoryInvalidInput means the call was rejected before any request was made.
	CategoryInvalidInput ErrorCategory = "invalid_input"
)

// FetchError is the single failure type of the query client. A call that fails
// with a FetchError produced no records.
type FetchError struct {
	Op       Op
	Category ErrorCategory
	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int
	URL        string
	Underlying error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	msg := fmt.Sprintf("%s [%s]", e.Op, e.Category)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" status %d", e.StatusCode)
	}
	if e.Underlying != nil {
		msg += ": " + e.Underlying.Error()
	}
	return msg
}

// Unwrap supports error unwrapping
func (e *FetchError) Unwrap() error {
	return e.Underlying
}

func newFetchError(op Op, category ErrorCategory, status int, url string, underlying error) *FetchError {
	return &FetchError{
		Op:         op,
		Category:   category,
		StatusCode: status,
		URL:        url,
		Underlying: underlying,
	}
}

// AsFetchError extracts a FetchError from err.
func AsFetchError(err error) (*FetchError, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// CategoryOf returns the category of a FetchError, or "" for any other error.
func CategoryOf(err error) ErrorCategory {
	if fe, ok := AsFetchError(err); ok {
		return fe.Category
	}
	return ""
}

// IsCanceled reports whether err is a fetch abandoned by its caller.
func IsCanceled(err error) bool {
	return CategoryOf(err) == CategoryCanceled
}
