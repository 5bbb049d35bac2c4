package fetching

import (
	"math"
	"strconv"

	"github.com/vfg2006/ads-manager-api/internal/domain"
)

// Normalize converte o registro bruto na linha canônica do nível
func Normalize(tier domain.Tier, raw domain.RawEntity) domain.Entity {
	entity := domain.Entity{
		ID:         firstNonEmpty(raw.DBID, raw.LocalID, raw.ExternalID),
		ExternalID: raw.ExternalID,
		AccountID:  raw.AccountID,
		CampaignID: raw.CampaignID,
		Tier:       tier,
		Name:       raw.Name,
		Budget:     budgetOf(raw),
		Metrics:    domain.PlaceholderMetrics(),
		Selected:   false,
		UpdatedAt:  raw.UpdatedAt,
	}
	entity.SetStatus(raw.Status)

	switch tier {
	case domain.TierAdSet:
		entity.ParentID = raw.CampaignID
	case domain.TierAd:
		entity.ParentID = raw.AdSetID
	}

	return entity
}

// MetricsFrom converte os insights brutos; ausência mantém os marcadores
func MetricsFrom(insight *domain.RawInsight) domain.Metrics {
	metrics := domain.PlaceholderMetrics()
	if insight == nil {
		return metrics
	}

	metrics.Impressions = atoi(insight.Impressions)
	metrics.Reach = atoi(insight.Reach)
	metrics.ResultsCount = SumActions(insight.Actions)
	if insight.QualityRanking != "" {
		metrics.QualityLabel = insight.QualityRanking
	}

	return metrics
}

// SumActions soma o valor numérico de todas as ações; valores não numéricos contam como zero.
// NaN e infinito também contam como zero, o codificador JSON recusa esses valores.
func SumActions(actions []domain.Action) float64 {
	var total float64
	for _, action := range actions {
		value, err := strconv.ParseFloat(action.Value, 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			continue
		}
		total += value
	}
	return total
}

func budgetOf(raw domain.RawEntity) float64 {
	if raw.DailyBudget != nil {
		return *raw.DailyBudget
	}
	if raw.LifetimeBudget != nil {
		return *raw.LifetimeBudget
	}
	return 0
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func atoi(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
