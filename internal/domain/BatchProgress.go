package domain

import (
	"time"
)

type BatchOperation string

const (
	BatchOperationDelete  BatchOperation = "delete"
	BatchOperationArchive BatchOperation = "archive"
)

func (o BatchOperation) IsValid() bool {
	return o == BatchOperationDelete || o == BatchOperationArchive
}

type BatchStatus string

const (
	BatchStatusLoading BatchStatus = "loading"
	BatchStatusSuccess BatchStatus = "success"
	BatchStatusPartial BatchStatus = "partial"
	BatchStatusError   BatchStatus = "error"
)

func (s BatchStatus) IsTerminal() bool {
	return s == BatchStatusSuccess || s == BatchStatusPartial || s == BatchStatusError
}

type BatchItemError struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// BatchProgress é o registro de progresso de uma operação em lote
type BatchProgress struct {
	Operation    BatchOperation   `json:"operation"`
	Tier         Tier             `json:"tier"`
	Status       BatchStatus      `json:"status"`
	Current      int              `json:"current"`
	Total        int              `json:"total"`
	Percentage   int              `json:"percentage"`
	SuccessCount int              `json:"success_count"`
	ErrorCount   int              `json:"error_count"`
	Errors       []BatchItemError `json:"errors"`
	Message      string           `json:"message"`
	StartedAt    time.Time        `json:"started_at"`
	FinishedAt   *time.Time       `json:"finished_at,omitempty"`
}

// Clone devolve uma cópia independente do registro
func (p BatchProgress) Clone() BatchProgress {
	out := p
	out.Errors = append([]BatchItemError(nil), p.Errors...)
	if p.FinishedAt != nil {
		finished := *p.FinishedAt
		out.FinishedAt = &finished
	}
	return out
}

type BatchResult struct {
	Progress  BatchProgress `json:"progress"`
	Succeeded []string      `json:"succeeded"`
}
