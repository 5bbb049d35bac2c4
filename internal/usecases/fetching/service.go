package fetching

import (
	"context"

	"github.com/vfg2006/ads-manager-api/infrastructure/gateway"
	"github.com/vfg2006/ads-manager-api/internal/domain"
	"github.com/vfg2006/ads-manager-api/pkg/apiErrors"
	"github.com/vfg2006/ads-manager-api/pkg/log"
)

type Fetcher interface {
	FetchTier(ctx context.Context, tier domain.Tier, scope domain.Scope, page domain.Page) (*domain.PageResult, error)
}

type Service struct {
	gateway         gateway.Gateway
	defaultPageSize int
}

func NewService(gw gateway.Gateway, defaultPageSize int) *Service {
	if !domain.IsAllowedPageSize(defaultPageSize) {
		defaultPageSize = domain.AllowedPageSizes[0]
	}

	return &Service{
		gateway:         gw,
		defaultPageSize: defaultPageSize,
	}
}

// FetchTier lista uma página do nível, normaliza e enriquece com métricas numa única chamada
func (s *Service) FetchTier(ctx context.Context, tier domain.Tier, scope domain.Scope, page domain.Page) (*domain.PageResult, error) {
	page = s.normalizePage(page)
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"tier":       tier,
		"account_id": scope.AccountID,
	})

	listed, err := s.gateway.List(ctx, tier, scope, page)
	if err != nil {
		logger.WithError(err).Error("Falha ao listar entidades")
		return nil, &FetchError{Err: err, Code: apiErrors.ErrFetchFailed, Tier: tier}
	}

	rows := make([]domain.Entity, 0, len(listed.Items))
	externalIDs := make([]string, 0, len(listed.Items))
	for _, raw := range listed.Items {
		row := Normalize(tier, raw)
		rows = append(rows, row)
		if row.HasExternalID() {
			externalIDs = append(externalIDs, row.ExternalID)
		}
	}

	if len(externalIDs) > 0 {
		s.enrich(ctx, logger, tier, rows, externalIDs)
	}

	return &domain.PageResult{
		Rows:      rows,
		Total:     listed.Total,
		PageCount: listed.Pages,
		Page:      page,
	}, nil
}

// enrich mescla as métricas por id externo; falhas deixam os marcadores
func (s *Service) enrich(ctx context.Context, logger log.Logger, tier domain.Tier, rows []domain.Entity, externalIDs []string) {
	records, err := s.gateway.Metrics(ctx, tier, externalIDs)
	if err != nil {
		logger.WithError(err).Warn("Falha ao buscar métricas, exibindo marcadores")
		return
	}

	byID := make(map[string]*domain.RawInsight, len(records))
	for _, record := range records {
		byID[record.ID] = record.Insights
	}

	for i := range rows {
		if insight, ok := byID[rows[i].ExternalID]; ok {
			rows[i].Metrics = MetricsFrom(insight)
		}
	}
}

func (s *Service) normalizePage(page domain.Page) domain.Page {
	if page.Number < 1 {
		page.Number = 1
	}
	if !domain.IsAllowedPageSize(page.Size) {
		page.Size = s.defaultPageSize
	}
	return page
}
