package validation

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyURL            = errors.New("url is required")
	ErrEmptyBatch          = errors.New("urls is required")
	ErrURLTooLong          = errors.New("url exceeds maximum length")
	ErrBatchTooLarge       = errors.New("batch size exceeds maximum")
	ErrInvalidURLFormat    = errors.New("invalid url format")
	ErrUnsafeProtocol      = errors.New("url protocol not allowed")
	ErrCredentialsInURL    = errors.New("url must not contain credentials")
	ErrSelfReference       = errors.New("url points to this service")
	ErrPrivateIPNotAllowed = errors.New("private ip addresses not allowed")
)

// IndexedError is a failure of one entry of a batch.
type IndexedError struct {
	Index int
	Err   error
}

func (e IndexedError) Unwrap() error { return e.Err }

type BatchValidationError struct {
	Errors []IndexedError
}

func (e *BatchValidationError) Error() string {
	return fmt.Sprintf("batch validation failed: %d invalid urls", len(e.Errors))
}
