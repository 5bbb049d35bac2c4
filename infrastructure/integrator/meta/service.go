package meta

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/ads-manager-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-manager-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ads-manager-api/internal/config"
	"github.com/vfg2006/ads-manager-api/internal/domain"
	"github.com/vfg2006/ads-manager-api/pkg/utils"
)

// formato de updated_time do Graph API
const metaTimeLayout = "2006-01-02T15:04:05-0700"

type MetaIntegrator struct {
	cfg    *config.Config
	Client metaclient.Client
}

func New(cfg *config.Config, client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

// ListEntities traz todas as entidades do nível para a conta, já no formato bruto do domínio
func (s *MetaIntegrator) ListEntities(ctx context.Context, tier domain.Tier, accountID string) ([]domain.RawEntity, error) {
	var (
		entities []domain.RawEntity
		err      error
	)

	switch tier {
	case domain.TierCampaign:
		var campaigns []metadomain.Campaign
		campaigns, err = s.Client.ListCampaigns(ctx, accountID)
		entities = make([]domain.RawEntity, 0, len(campaigns))
		for _, c := range campaigns {
			entities = append(entities, FactoryCampaign(accountID, c))
		}
	case domain.TierAdSet:
		var adSets []metadomain.AdSet
		adSets, err = s.Client.ListAdSets(ctx, accountID)
		entities = make([]domain.RawEntity, 0, len(adSets))
		for _, a := range adSets {
			entities = append(entities, FactoryAdSet(accountID, a))
		}
	case domain.TierAd:
		var ads []metadomain.Ad
		ads, err = s.Client.ListAds(ctx, accountID)
		entities = make([]domain.RawEntity, 0, len(ads))
		for _, a := range ads {
			entities = append(entities, FactoryAd(accountID, a))
		}
	default:
		return nil, fmt.Errorf("nível desconhecido: %s", tier)
	}

	if err != nil {
		logrus.WithFields(logrus.Fields{
			"tier":       tier,
			"account_id": accountID,
			"error":      err.Error(),
		}).Error("meta: failed to list entities from API")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"tier":       tier,
		"account_id": accountID,
		"total":      len(entities),
	}).Debug("meta: successfully listed entities")

	return entities, nil
}

// GetInsights busca as métricas em lote, preservando a ordem dos ids pedidos
func (s *MetaIntegrator) GetInsights(ctx context.Context, externalIDs []string) ([]domain.InsightRecord, error) {
	nodes, err := s.Client.GetInsightsByIDs(ctx, externalIDs)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"total": len(externalIDs),
			"error": err.Error(),
		}).Warn("meta: failed to get insights")
		return nil, err
	}

	records := make([]domain.InsightRecord, 0, len(nodes))
	for _, id := range externalIDs {
		node, ok := nodes[id]
		if !ok {
			continue
		}
		records = append(records, FactoryInsightRecord(id, node))
	}

	return records, nil
}

func (s *MetaIntegrator) SetStatus(ctx context.Context, externalID string, status domain.EntityStatus) error {
	return s.Client.UpdateStatus(ctx, externalID, string(status))
}

func (s *MetaIntegrator) Delete(ctx context.Context, externalID string) error {
	return s.Client.Delete(ctx, externalID)
}

func FactoryCampaign(accountID string, c metadomain.Campaign) domain.RawEntity {
	return domain.RawEntity{
		ExternalID:     c.ID,
		AccountID:      accountID,
		Name:           c.Name,
		Status:         domain.EntityStatus(c.Status),
		DailyBudget:    parseBudget(c.DailyBudget),
		LifetimeBudget: parseBudget(c.LifetimeBudget),
		UpdatedAt:      parseTime(c.UpdatedTime),
	}
}

func FactoryAdSet(accountID string, a metadomain.AdSet) domain.RawEntity {
	return domain.RawEntity{
		ExternalID:     a.ID,
		AccountID:      accountID,
		CampaignID:     a.CampaignID,
		Name:           a.Name,
		Status:         domain.EntityStatus(a.Status),
		DailyBudget:    parseBudget(a.DailyBudget),
		LifetimeBudget: parseBudget(a.LifetimeBudget),
		UpdatedAt:      parseTime(a.UpdatedTime),
	}
}

func FactoryAd(accountID string, a metadomain.Ad) domain.RawEntity {
	return domain.RawEntity{
		ExternalID: a.ID,
		AccountID:  accountID,
		CampaignID: a.CampaignID,
		AdSetID:    a.AdSetID,
		Name:       a.Name,
		Status:     domain.EntityStatus(a.Status),
		UpdatedAt:  parseTime(a.UpdatedTime),
	}
}

func FactoryInsightRecord(id string, node metadomain.InsightNode) domain.InsightRecord {
	record := domain.InsightRecord{ID: id}

	insight := node.First()
	if insight == nil {
		return record
	}

	actions := make([]domain.Action, 0, len(insight.Actions))
	for _, a := range insight.Actions {
		actions = append(actions, domain.Action{ActionType: a.ActionType, Value: a.Value})
	}

	record.Insights = &domain.RawInsight{
		Impressions:    insight.Impressions,
		Reach:          insight.Reach,
		Actions:        actions,
		QualityRanking: insight.QualityRanking,
	}

	return record
}

// parseBudget converte centavos em unidades da moeda; vazio vira nil
func parseBudget(cents string) *float64 {
	if cents == "" {
		return nil
	}

	value, err := strconv.ParseFloat(cents, 64)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"budget_value": cents,
			"error":        err.Error(),
		}).Warn("meta: error converting budget to float")
		return nil
	}

	budget := utils.RoundWithTwoDecimalPlace(value / 100)
	return &budget
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}

	t, err := time.Parse(metaTimeLayout, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
