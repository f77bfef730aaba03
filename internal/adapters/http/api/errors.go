package api

import (
	"errors"
	"fmt"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
	ErrForbidden  = errors.New("forbidden")
	ErrUnauthed   = errors.New("authentication required")
)

// Kind tags a sentinel with the operation it surfaced from.
func Kind(op string, kind error) error {
	return fmt.Errorf("%s: %w", op, kind)
}

// Wrap tags an upstream error with the operation it surfaced from.
func Wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
