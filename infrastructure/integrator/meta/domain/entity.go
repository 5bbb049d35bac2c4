package metadomain

// Os orçamentos chegam em centavos da moeda da conta, como string
type Campaign struct {
	ID             string `json:"id"`
	AccountID      string `json:"account_id"`
	Name           string `json:"name"`
	Status         string `json:"status"`
	DailyBudget    string `json:"daily_budget,omitempty"`
	LifetimeBudget string `json:"lifetime_budget,omitempty"`
	UpdatedTime    string `json:"updated_time"`
}

type AdSet struct {
	ID             string `json:"id"`
	AccountID      string `json:"account_id"`
	CampaignID     string `json:"campaign_id"`
	Name           string `json:"name"`
	Status         string `json:"status"`
	DailyBudget    string `json:"daily_budget,omitempty"`
	LifetimeBudget string `json:"lifetime_budget,omitempty"`
	UpdatedTime    string `json:"updated_time"`
}

type Ad struct {
	ID          string `json:"id"`
	AccountID   string `json:"account_id"`
	CampaignID  string `json:"campaign_id"`
	AdSetID     string `json:"adset_id"`
	Name        string `json:"name"`
	Status      string `json:"status"`
	UpdatedTime string `json:"updated_time"`
}

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type Paging struct {
	Cursors Cursors `json:"cursors"`
	Next    string  `json:"next,omitempty"`
}

// Page é o envelope das listagens paginadas do Graph API
type Page[T any] struct {
	Data   []T    `json:"data"`
	Paging Paging `json:"paging"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}
