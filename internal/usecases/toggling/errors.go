package toggling

import (
	"errors"
	"fmt"
)

var ErrToggleFailed = errors.New("failed to change status")

// ToggleError descreve por que uma alteração de status não foi aplicada.
// Warning indica falha de pré-condição, sem chamada à plataforma.
type ToggleError struct {
	Err     error
	Code    string
	RowID   string
	Details string
	Warning bool
}

func (e *ToggleError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ToggleError) Unwrap() error {
	return e.Err
}
