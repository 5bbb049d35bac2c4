package workspace

import (
	"errors"
	"fmt"
)

var (
	ErrWorkspaceNotFound = errors.New("workspace not found")
	ErrRowNotFound       = errors.New("row not found")
	ErrMissingExternalID = errors.New("missing external id")
	ErrRowBusy           = errors.New("row has an operation in progress")
	ErrBatchInProgress   = errors.New("a batch operation is already in progress")
	ErrAccountRequired   = errors.New("account ID is required")
)

// WorkspaceError é um erro com contexto adicional para sessões do painel
type WorkspaceError struct {
	Err         error
	Code        string
	WorkspaceID string
	Details     string
}

func (e *WorkspaceError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *WorkspaceError) Unwrap() error {
	return e.Err
}

func NewWorkspaceError(err error, code string, workspaceID string, details string) *WorkspaceError {
	return &WorkspaceError{
		Err:         err,
		Code:        code,
		WorkspaceID: workspaceID,
		Details:     details,
	}
}
