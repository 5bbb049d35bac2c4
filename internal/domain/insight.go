package domain

// Action é uma entrada de "actions" reportada pela plataforma; Value chega como texto
type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

type RawInsight struct {
	Impressions    string   `json:"impressions"`
	Reach          string   `json:"reach"`
	Actions        []Action `json:"actions"`
	QualityRanking string   `json:"quality_ranking"`
}

// InsightRecord associa o external id de uma entidade aos seus insights
type InsightRecord struct {
	ID       string      `json:"id"`
	Insights *RawInsight `json:"insights"`
}
