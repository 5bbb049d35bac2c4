package domain

import (
	"time"
)

type Tier string

const (
	TierCampaign Tier = "campaign"
	TierAdSet    Tier = "adset"
	TierAd       Tier = "ad"
)

// Tiers lista os níveis na ordem da hierarquia
var Tiers = []Tier{TierCampaign, TierAdSet, TierAd}

func (t Tier) IsValid() bool {
	switch t {
	case TierCampaign, TierAdSet, TierAd:
		return true
	}
	return false
}

// Parent retorna o nível imediatamente acima (vazio para campanhas)
func (t Tier) Parent() Tier {
	switch t {
	case TierAdSet:
		return TierCampaign
	case TierAd:
		return TierAdSet
	}
	return ""
}

type EntityStatus string

const (
	EntityStatusActive     EntityStatus = "ACTIVE"
	EntityStatusPaused     EntityStatus = "PAUSED"
	EntityStatusDeleted    EntityStatus = "DELETED"
	EntityStatusArchived   EntityStatus = "ARCHIVED"
	EntityStatusInProcess  EntityStatus = "IN_PROCESS"
	EntityStatusWithIssues EntityStatus = "WITH_ISSUES"
)

// PlaceholderQualityLabel é exibido quando a plataforma não reporta qualidade
const PlaceholderQualityLabel = "-"

type Metrics struct {
	Impressions  int     `json:"impressions"`
	Reach        int     `json:"reach"`
	ResultsCount float64 `json:"results_count"`
	QualityLabel string  `json:"quality_label"`
}

func PlaceholderMetrics() Metrics {
	return Metrics{QualityLabel: PlaceholderQualityLabel}
}

// Entity é a linha canônica usada para campanhas, conjuntos de anúncios e anúncios
type Entity struct {
	ID         string       `json:"id"`
	ExternalID string       `json:"external_id,omitempty"`
	ParentID   string       `json:"parent_id,omitempty"`
	AccountID  string       `json:"account_id"`
	CampaignID string       `json:"campaign_id,omitempty"`
	Tier       Tier         `json:"tier"`
	Name       string       `json:"name"`
	Status     EntityStatus `json:"status"`
	Enabled    bool         `json:"enabled"`
	Budget     float64      `json:"budget"`
	Metrics    Metrics      `json:"metrics"`
	Selected   bool         `json:"selected"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// SetStatus altera o status mantendo Enabled consistente
func (e *Entity) SetStatus(status EntityStatus) {
	e.Status = status
	e.Enabled = status == EntityStatusActive
}

func (e *Entity) HasExternalID() bool {
	return e.ExternalID != ""
}

// RawEntity é o registro como devolvido pelo gateway, antes da normalização
type RawEntity struct {
	DBID           string       `json:"db_id"`
	LocalID        string       `json:"local_id"`
	ExternalID     string       `json:"external_id"`
	AccountID      string       `json:"account_id"`
	CampaignID     string       `json:"campaign_id"`
	AdSetID        string       `json:"adset_id"`
	Name           string       `json:"name"`
	Status         EntityStatus `json:"status"`
	DailyBudget    *float64     `json:"daily_budget"`
	LifetimeBudget *float64     `json:"lifetime_budget"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

type Scope struct {
	AccountID  string `json:"account_id"`
	CampaignID string `json:"campaign_id,omitempty"`
	AdSetID    string `json:"adset_id,omitempty"`
}

var AllowedPageSizes = []int{10, 20, 50, 100}

func IsAllowedPageSize(size int) bool {
	for _, allowed := range AllowedPageSizes {
		if size == allowed {
			return true
		}
	}
	return false
}

type Page struct {
	Number int `json:"page"`
	Size   int `json:"page_size"`
}

type ListResult struct {
	Items []RawEntity `json:"items"`
	Total int         `json:"total"`
	Pages int         `json:"pages"`
}

type PageResult struct {
	Rows      []Entity `json:"rows"`
	Total     int      `json:"total"`
	PageCount int      `json:"page_count"`
	Page      Page     `json:"page"`
}
