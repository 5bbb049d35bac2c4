package gateway

import (
	"context"
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-manager-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ads-manager-api/infrastructure/repository"
	"github.com/vfg2006/ads-manager-api/internal/domain"
)

// Gateway é a fronteira com a plataforma de anúncios e o espelho local
type Gateway interface {
	List(ctx context.Context, tier domain.Tier, scope domain.Scope, page domain.Page) (*domain.ListResult, error)
	Metrics(ctx context.Context, tier domain.Tier, externalIDs []string) ([]domain.InsightRecord, error)
	Sync(ctx context.Context, tier domain.Tier, accountID string) error
	SetStatus(ctx context.Context, tier domain.Tier, externalID string, status domain.EntityStatus) error
	Remove(ctx context.Context, tier domain.Tier, externalID string) error
}

// Integrator é o subconjunto do integrador da Meta usado pelo gateway
type Integrator interface {
	ListEntities(ctx context.Context, tier domain.Tier, accountID string) ([]domain.RawEntity, error)
	GetInsights(ctx context.Context, externalIDs []string) ([]domain.InsightRecord, error)
	SetStatus(ctx context.Context, externalID string, status domain.EntityStatus) error
	Delete(ctx context.Context, externalID string) error
}

// RemoteError é um erro de aplicação reportado pela plataforma
type RemoteError struct {
	Message string
	Detail  string
}

func (e *RemoteError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

type gateway struct {
	integrator Integrator
	repo       repository.EntityRepository
}

func New(integrator Integrator, repo repository.EntityRepository) Gateway {
	return &gateway{
		integrator: integrator,
		repo:       repo,
	}
}

func (g *gateway) List(ctx context.Context, tier domain.Tier, scope domain.Scope, page domain.Page) (*domain.ListResult, error) {
	items, total, err := g.repo.List(ctx, tier, scope, page)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "listando %s", tier)
	}

	pages := 0
	if page.Size > 0 {
		pages = (total + page.Size - 1) / page.Size
	}

	return &domain.ListResult{
		Items: items,
		Total: total,
		Pages: pages,
	}, nil
}

func (g *gateway) Metrics(ctx context.Context, tier domain.Tier, externalIDs []string) ([]domain.InsightRecord, error) {
	if len(externalIDs) == 0 {
		return []domain.InsightRecord{}, nil
	}

	records, err := g.integrator.GetInsights(ctx, externalIDs)
	if err != nil {
		return nil, translate(err, fmt.Sprintf("métricas de %s", tier))
	}

	return records, nil
}

func (g *gateway) Sync(ctx context.Context, tier domain.Tier, accountID string) error {
	entities, err := g.integrator.ListEntities(ctx, tier, accountID)
	if err != nil {
		return translate(err, fmt.Sprintf("sincronizando %s", tier))
	}

	if err := g.repo.SaveOrUpdate(ctx, tier, entities); err != nil {
		return pkgerrors.Wrapf(err, "espelhando %s", tier)
	}

	return nil
}

func (g *gateway) SetStatus(ctx context.Context, tier domain.Tier, externalID string, status domain.EntityStatus) error {
	if err := g.integrator.SetStatus(ctx, externalID, status); err != nil {
		return translate(err, fmt.Sprintf("alterando status de %s", externalID))
	}

	g.mirrorStatus(ctx, tier, externalID, status)

	return nil
}

func (g *gateway) Remove(ctx context.Context, tier domain.Tier, externalID string) error {
	if err := g.integrator.Delete(ctx, externalID); err != nil {
		return translate(err, fmt.Sprintf("removendo %s", externalID))
	}

	g.mirrorStatus(ctx, tier, externalID, domain.EntityStatusDeleted)

	return nil
}

// mirrorStatus replica a mudança no espelho; a plataforma já confirmou, então falhas só são logadas
func (g *gateway) mirrorStatus(ctx context.Context, tier domain.Tier, externalID string, status domain.EntityStatus) {
	err := g.repo.UpdateStatus(ctx, tier, externalID, status)
	if err == nil || errors.Is(err, repository.ErrEntityNotFound) {
		return
	}

	logrus.WithFields(logrus.Fields{
		"tier":        tier,
		"external_id": externalID,
		"status":      status,
		"error":       err.Error(),
	}).Warn("Não foi possível atualizar o espelho local")
}

// translate converte erros de aplicação do Graph API em RemoteError e embrulha o resto
func translate(err error, action string) error {
	var apiErr *metaclient.APIError
	if errors.As(err, &apiErr) {
		return &RemoteError{
			Message: apiErr.Message,
			Detail:  apiErr.UserMsg,
		}
	}

	return pkgerrors.Wrap(err, action)
}
