package services

import "errors"

var (
	// ErrNotFound means the resource does not exist or is not owned by the
	// requesting user; controllers map it to a 404.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidDate means a date string was not valid YYYY-MM-DD. There is
	// deliberately no fallback to "today": a malformed date is always a
	// client error.
	ErrInvalidDate = errors.New("invalid date: expected YYYY-MM-DD")

	// ErrInvalidInput covers malformed or out-of-range request values.
	ErrInvalidInput = errors.New("invalid input")
)
