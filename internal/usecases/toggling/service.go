package toggling

import (
	"context"
	"errors"

	"github.com/vfg2006/ads-manager-api/infrastructure/gateway"
	"github.com/vfg2006/ads-manager-api/internal/domain"
	"github.com/vfg2006/ads-manager-api/internal/usecases/workspace"
	"github.com/vfg2006/ads-manager-api/pkg/apiErrors"
	"github.com/vfg2006/ads-manager-api/pkg/log"
)

type Toggler interface {
	Toggle(ctx context.Context, ws *workspace.Workspace, tier domain.Tier, rowID string) (*domain.Entity, error)
}

type Service struct {
	gateway gateway.Gateway
}

func NewService(gw gateway.Gateway) *Service {
	return &Service{gateway: gw}
}

// NextStatus é o status alvo de um toggle: ativo pausa, qualquer outro ativa
func NextStatus(row domain.Entity) domain.EntityStatus {
	if row.Enabled {
		return domain.EntityStatusPaused
	}
	return domain.EntityStatusActive
}

// Toggle aplica o novo status de forma otimista e desfaz se a plataforma recusar
func (s *Service) Toggle(ctx context.Context, ws *workspace.Workspace, tier domain.Tier, rowID string) (*domain.Entity, error) {
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"tier":   tier,
		"row_id": rowID,
	})

	mutation, err := ws.BeginMutation(tier, rowID, NextStatus)
	if err != nil {
		logger.WithError(err).Warn("Alteração de status recusada")
		return nil, preconditionError(err, rowID)
	}
	defer ws.Release(tier, rowID)

	externalID := mutation.Committed.ExternalID
	if err := s.gateway.SetStatus(ctx, tier, externalID, mutation.Pending); err != nil {
		ws.RollbackMutation(tier, rowID)
		logger.WithError(err).Error("Plataforma recusou a alteração de status, valor restaurado")
		return nil, &ToggleError{
			Err:     ErrToggleFailed,
			Code:    apiErrors.ErrToggleFailed,
			RowID:   rowID,
			Details: remoteDetail(err),
		}
	}

	ws.CommitMutation(tier, rowID)
	logger.WithField("status", mutation.Pending).Info("Status alterado")

	row, _ := ws.Row(tier, rowID)
	return &row, nil
}

func preconditionError(err error, rowID string) *ToggleError {
	code := apiErrors.ErrInvalidRequest
	switch {
	case errors.Is(err, workspace.ErrRowNotFound):
		code = apiErrors.ErrResourceNotFound
	case errors.Is(err, workspace.ErrMissingExternalID):
		code = apiErrors.ErrMissingExternalID
	case errors.Is(err, workspace.ErrRowBusy):
		code = apiErrors.ErrRowBusy
	}

	return &ToggleError{
		Err:     err,
		Code:    code,
		RowID:   rowID,
		Warning: true,
	}
}

// remoteDetail prefere a mensagem ao usuário devolvida pela plataforma
func remoteDetail(err error) string {
	var remote *gateway.RemoteError
	if errors.As(err, &remote) {
		if remote.Detail != "" {
			return remote.Detail
		}
		return remote.Message
	}
	return err.Error()
}
