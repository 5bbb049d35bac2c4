package batching

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vfg2006/ads-manager-api/infrastructure/gateway"
	"github.com/vfg2006/ads-manager-api/internal/config"
	"github.com/vfg2006/ads-manager-api/internal/domain"
	"github.com/vfg2006/ads-manager-api/internal/usecases/workspace"
	"github.com/vfg2006/ads-manager-api/pkg/apiErrors"
	"github.com/vfg2006/ads-manager-api/pkg/log"
)

// Settings são os atrasos visíveis ao usuário nas operações em lote
type Settings struct {
	RefreshDelay    time.Duration
	CloseDelay      time.Duration
	ErrorCloseDelay time.Duration
	ArchiveDelay    time.Duration
}

func SettingsFromConfig(cfg config.Bulk) Settings {
	return Settings{
		RefreshDelay:    cfg.RefreshDelay,
		CloseDelay:      cfg.CloseDelay,
		ErrorCloseDelay: cfg.ErrorCloseDelay,
		ArchiveDelay:    cfg.ArchiveSimulatedDelay,
	}
}

// Refresher recarrega o nível depois de um lote com sucessos
type Refresher interface {
	Refresh(ctx context.Context, ws *workspace.Workspace, tier domain.Tier)
}

type Batcher interface {
	Run(ctx context.Context, ws *workspace.Workspace, operation domain.BatchOperation, tier domain.Tier, ids []string) (domain.BatchProgress, <-chan domain.BatchResult, error)
}

type Service struct {
	gateway   gateway.Gateway
	settings  Settings
	refresher Refresher

	now       func() time.Time
	sleep     func(context.Context, time.Duration) error
	afterFunc func(time.Duration, func())
}

func NewService(gw gateway.Gateway, settings Settings) *Service {
	return &Service{
		gateway:  gw,
		settings: settings,
		now:      time.Now,
		sleep:    sleepContext,
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
}

func (s *Service) SetRefresher(refresher Refresher) {
	s.refresher = refresher
}

// Run valida a seleção, publica o registro inicial e processa o lote em segundo plano.
// O lote não é cancelado quando a requisição termina.
func (s *Service) Run(
	ctx context.Context,
	ws *workspace.Workspace,
	operation domain.BatchOperation,
	tier domain.Tier,
	ids []string,
) (domain.BatchProgress, <-chan domain.BatchResult, error) {
	if !operation.IsValid() {
		return domain.BatchProgress{}, nil, &BatchError{Err: ErrInvalidOperation, Code: apiErrors.ErrInvalidRequest, Details: string(operation)}
	}

	ids = unique(ids)
	if len(ids) == 0 {
		return domain.BatchProgress{}, nil, &BatchError{Err: ErrNothingSelected, Code: apiErrors.ErrNothingSelected, Warning: true}
	}

	items := make([]Item, 0, len(ids))
	for _, id := range ids {
		row, found := ws.Row(tier, id)
		items = append(items, Item{ID: id, ExternalID: row.ExternalID, Found: found})
	}

	initial := NewProgress(operation, tier, len(items), s.now())
	if err := ws.StartBatch(initial); err != nil {
		if errors.Is(err, workspace.ErrBatchInProgress) {
			return domain.BatchProgress{}, nil, &BatchError{Err: err, Code: apiErrors.ErrBatchInProgress}
		}
		return domain.BatchProgress{}, nil, err
	}

	done := make(chan domain.BatchResult, 1)
	go s.execute(context.WithoutCancel(ctx), ws, initial, items, done)

	return initial, done, nil
}

func (s *Service) execute(
	ctx context.Context,
	ws *workspace.Workspace,
	initial domain.BatchProgress,
	items []Item,
	done chan<- domain.BatchResult,
) {
	defer close(done)

	tier := initial.Tier

	logger := log.ForContext(ctx).WithFields(log.Fields{
		"operation": initial.Operation,
		"tier":      tier,
		"total":     len(items),
	})
	logger.Info("Iniciando operação em lote")

	succeeded := make([]string, 0, len(items))
	var final domain.BatchProgress

	for event := range s.Stream(ctx, initial, items) {
		ws.PublishProgress(event.Progress)
		final = event.Progress

		if event.Succeeded {
			succeeded = append(succeeded, event.ItemID)
		}
	}

	ws.RemoveRows(tier, succeeded)
	ws.FinishBatch(final, s.closeDelay(final.Status))
	ws.SetNotice(NoticeFor(final))

	logger.WithFields(log.Fields{
		"status":        final.Status,
		"success_count": final.SuccessCount,
		"error_count":   final.ErrorCount,
	}).Info("Operação em lote concluída")

	if final.SuccessCount > 0 && s.refresher != nil {
		s.afterFunc(s.settings.RefreshDelay, func() {
			s.refresher.Refresh(ctx, ws, tier)
		})
	}

	done <- domain.BatchResult{Progress: final, Succeeded: succeeded}
}

func (s *Service) closeDelay(status domain.BatchStatus) time.Duration {
	if status == domain.BatchStatusError {
		return s.settings.ErrorCloseDelay
	}
	return s.settings.CloseDelay
}

// NoticeFor resume o lote para o usuário
func NoticeFor(progress domain.BatchProgress) domain.Notice {
	switch progress.Status {
	case domain.BatchStatusSuccess:
		return domain.Notice{
			Level:   domain.NoticeSuccess,
			Message: fmt.Sprintf("%d itens processados com sucesso", progress.SuccessCount),
		}
	case domain.BatchStatusPartial:
		return domain.Notice{
			Level:   domain.NoticeWarning,
			Message: fmt.Sprintf("%d de %d itens processados", progress.SuccessCount, progress.Total),
			Detail:  fmt.Sprintf("%d falhas", progress.ErrorCount),
		}
	default:
		return domain.Notice{
			Level:   domain.NoticeError,
			Message: "Nenhum item foi processado",
			Detail:  fmt.Sprintf("%d falhas", progress.ErrorCount),
		}
	}
}

func unique(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
