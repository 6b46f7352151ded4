package link

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidURL          = errors.New("invalid url")
	ErrInvalidAlias        = errors.New("invalid custom alias")
	ErrInvalidExpiry       = errors.New("expiry must be in the future")
	ErrInvalidClickLimit   = errors.New("click limit must not be negative")
	ErrAliasTaken          = errors.New("custom alias already in use")
	ErrAllocationExhausted = errors.New("could not allocate a unique code")
	ErrNotFound            = errors.New("link not found")
	ErrStorage             = errors.New("storage error")
)

func storageErr(op string, err error) error {
	if errors.Is(err, ErrStorage) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}

// IsUserError reports whether err was caused by the caller's input.
func IsUserError(err error) bool {
	return errors.Is(err, ErrInvalidURL) ||
		errors.Is(err, ErrInvalidAlias) ||
		errors.Is(err, ErrInvalidExpiry) ||
		errors.Is(err, ErrInvalidClickLimit) ||
		errors.Is(err, ErrAliasTaken)
}
