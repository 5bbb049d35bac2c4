package fetching

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-manager-api/internal/domain"
)

func floatPtr(v float64) *float64 { return &v }

func TestNormalizeFallbackDeID(t *testing.T) {
	tests := []struct {
		name   string
		raw    domain.RawEntity
		wantID string
	}{
		{name: "id do banco", raw: domain.RawEntity{DBID: "db", LocalID: "local", ExternalID: "ext"}, wantID: "db"},
		{name: "id local", raw: domain.RawEntity{LocalID: "local", ExternalID: "ext"}, wantID: "local"},
		{name: "id externo", raw: domain.RawEntity{ExternalID: "ext"}, wantID: "ext"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantID, Normalize(domain.TierCampaign, tt.raw).ID)
		})
	}
}

func TestNormalizeOrcamento(t *testing.T) {
	tests := []struct {
		name string
		raw  domain.RawEntity
		want float64
	}{
		{name: "diário tem prioridade", raw: domain.RawEntity{DailyBudget: floatPtr(20), LifetimeBudget: floatPtr(500)}, want: 20},
		{name: "diário zero ainda vence", raw: domain.RawEntity{DailyBudget: floatPtr(0), LifetimeBudget: floatPtr(500)}, want: 0},
		{name: "apenas vitalício", raw: domain.RawEntity{LifetimeBudget: floatPtr(500)}, want: 500},
		{name: "sem orçamento", raw: domain.RawEntity{}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(domain.TierAdSet, tt.raw).Budget)
		})
	}
}

func TestNormalizeStatusEPai(t *testing.T) {
	adSet := Normalize(domain.TierAdSet, domain.RawEntity{
		DBID:       "1",
		ExternalID: "s1",
		CampaignID: "c1",
		Status:     domain.EntityStatusActive,
	})
	assert.True(t, adSet.Enabled)
	assert.Equal(t, "c1", adSet.ParentID)
	assert.Equal(t, domain.PlaceholderMetrics(), adSet.Metrics)
	assert.False(t, adSet.Selected)

	ad := Normalize(domain.TierAd, domain.RawEntity{
		DBID:       "2",
		CampaignID: "c1",
		AdSetID:    "s1",
		Status:     domain.EntityStatusWithIssues,
	})
	assert.False(t, ad.Enabled)
	assert.Equal(t, "s1", ad.ParentID)
	assert.Equal(t, "c1", ad.CampaignID)

	campaign := Normalize(domain.TierCampaign, domain.RawEntity{DBID: "3", CampaignID: "ignorado"})
	assert.Empty(t, campaign.ParentID)
}

func TestSumActions(t *testing.T) {
	tests := []struct {
		name    string
		actions []domain.Action
		want    float64
	}{
		{
			name: "Ignora valores não numéricos",
			actions: []domain.Action{
				{ActionType: "link_click", Value: "10"},
				{ActionType: "lead", Value: "2.5"},
				{ActionType: "quebrado", Value: "abc"},
				{ActionType: "vazio", Value: ""},
			},
			want: 12.5,
		},
		{
			name:    "NaN conta como zero",
			actions: []domain.Action{{ActionType: "lead", Value: "NaN"}, {ActionType: "lead", Value: "3"}},
			want:    3,
		},
		{
			name:    "Infinito conta como zero",
			actions: []domain.Action{{ActionType: "lead", Value: "Inf"}, {ActionType: "lead", Value: "-infinity"}, {ActionType: "lead", Value: "3"}},
			want:    3,
		},
		{
			name:    "Fora do intervalo de float64",
			actions: []domain.Action{{ActionType: "lead", Value: "1e400"}, {ActionType: "lead", Value: "1"}},
			want:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SumActions(tt.actions))
		})
	}
}

func TestMetricsFromValoresEspeciaisContinuamSerializaveis(t *testing.T) {
	row := domain.Entity{ID: "1", Metrics: MetricsFrom(&domain.RawInsight{
		Actions: []domain.Action{{ActionType: "lead", Value: "NaN"}, {ActionType: "lead", Value: "+Inf"}},
	})}

	_, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(row)

	require.NoError(t, err)
	assert.Zero(t, row.Metrics.ResultsCount)
}

func TestMetricsFrom(t *testing.T) {
	assert.Equal(t, domain.PlaceholderMetrics(), MetricsFrom(nil))

	metrics := MetricsFrom(&domain.RawInsight{
		Impressions: "1500",
		Reach:       "n/a",
		Actions:     []domain.Action{{ActionType: "lead", Value: "3"}},
	})

	assert.Equal(t, 1500, metrics.Impressions)
	assert.Equal(t, 0, metrics.Reach)
	assert.Equal(t, 3.0, metrics.ResultsCount)
	assert.Equal(t, domain.PlaceholderQualityLabel, metrics.QualityLabel)
}
