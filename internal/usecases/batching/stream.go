package batching

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/vfg2006/ads-manager-api/internal/domain"
	"github.com/vfg2006/ads-manager-api/pkg/utils"
)

// Item é um alvo do lote já resolvido contra as linhas locais
type Item struct {
	ID         string
	ExternalID string
	Found      bool
}

// Event é emitido depois de cada item processado
type Event struct {
	Progress  domain.BatchProgress
	ItemID    string
	Succeeded bool
}

func NewProgress(operation domain.BatchOperation, tier domain.Tier, total int, startedAt time.Time) domain.BatchProgress {
	return domain.BatchProgress{
		Operation: operation,
		Tier:      tier,
		Status:    domain.BatchStatusLoading,
		Total:     total,
		Errors:    []domain.BatchItemError{},
		Message:   progressMessage(0, total),
		StartedAt: startedAt,
	}
}

// Stream processa os itens estritamente em sequência. O próximo item só começa
// depois que o consumidor tratou o evento do anterior. Os eventos partem do registro
// inicial já publicado, mantendo o mesmo início.
func (s *Service) Stream(ctx context.Context, initial domain.BatchProgress, items []Item) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		progress := initial.Clone()
		progress.Total = len(items)
		operation, tier := progress.Operation, progress.Tier

		for _, item := range items {
			event := Event{ItemID: item.ID}

			if err := s.process(ctx, operation, tier, item); err != nil {
				progress.ErrorCount++
				progress.Errors = append(progress.Errors, domain.BatchItemError{ID: item.ID, Message: err.Error()})
			} else {
				progress.SuccessCount++
				event.Succeeded = true
			}

			progress.Current++
			progress.Percentage = utils.Percentage(progress.Current, progress.Total)
			progress.Message = progressMessage(progress.Current, progress.Total)

			if progress.Current == progress.Total {
				progress.Status = TerminalStatus(progress.SuccessCount, progress.ErrorCount)
				finishedAt := s.now()
				progress.FinishedAt = &finishedAt
			}

			event.Progress = progress.Clone()
			if !yield(event) {
				return
			}
		}
	}
}

func (s *Service) process(ctx context.Context, operation domain.BatchOperation, tier domain.Tier, item Item) error {
	if !item.Found {
		return ErrItemNotFound
	}

	switch operation {
	case domain.BatchOperationDelete:
		if item.ExternalID == "" {
			return ErrMissingExternalID
		}
		return s.gateway.Remove(ctx, tier, item.ExternalID)
	case domain.BatchOperationArchive:
		// sem contrato remoto de arquivamento: apenas aguarda e reporta sucesso
		return s.sleep(ctx, s.settings.ArchiveDelay)
	}

	return ErrInvalidOperation
}

// TerminalStatus agrega o resultado do lote
func TerminalStatus(successCount, errorCount int) domain.BatchStatus {
	switch {
	case errorCount == 0:
		return domain.BatchStatusSuccess
	case successCount == 0:
		return domain.BatchStatusError
	default:
		return domain.BatchStatusPartial
	}
}

func progressMessage(current, total int) string {
	return fmt.Sprintf("Processados %d de %d", current, total)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
