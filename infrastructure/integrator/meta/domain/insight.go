package metadomain

type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

type Insight struct {
	Impressions    string   `json:"impressions"`
	Reach          string   `json:"reach"`
	Actions        []Action `json:"actions"`
	QualityRanking string   `json:"quality_ranking,omitempty"`
	DateStart      string   `json:"date_start"`
	DateStop       string   `json:"date_stop"`
}

// InsightNode é o valor de cada chave na resposta de ?ids=a,b,c
type InsightNode struct {
	ID       string         `json:"id"`
	Insights *Page[Insight] `json:"insights,omitempty"`
}

// First devolve o primeiro bloco de métricas, se houver
func (n InsightNode) First() *Insight {
	if n.Insights == nil || len(n.Insights.Data) == 0 {
		return nil
	}
	insight := n.Insights.Data[0]
	return &insight
}
