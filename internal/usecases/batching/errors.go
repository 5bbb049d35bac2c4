package batching

import (
	"errors"
	"fmt"
)

var (
	ErrNothingSelected   = errors.New("no items selected")
	ErrInvalidOperation  = errors.New("invalid batch operation")
	ErrMissingExternalID = errors.New("missing external id")
	ErrItemNotFound      = errors.New("item not found")
)

// BatchError é um erro que impede o lote de começar
type BatchError struct {
	Err     error
	Code    string
	Details string
	Warning bool
}

func (e *BatchError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *BatchError) Unwrap() error {
	return e.Err
}
