package api

import (
	"errors"
	"fmt"
)

// NetworkErrorMessage is reported when no HTTP response was received.
const NetworkErrorMessage = "Network error. Please check your connection."

// DecodeErrorMessage is reported when a successful response body cannot be read.
const DecodeErrorMessage = "Unexpected response from server."

// Error is the uniform failure shape of every API call.
// Status 0 means the request never got a response.
type Error struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

// StatusOf returns the HTTP status carried by err, or -1 when err is not an *Error.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return -1
}

// MessageOf returns the user-facing message for err, or fallback when err carries none.
func MessageOf(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if err != nil && fallback == "" {
		return err.Error()
	}
	return fallback
}
