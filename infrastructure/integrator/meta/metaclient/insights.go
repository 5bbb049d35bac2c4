package metaclient

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/ads-manager-api/infrastructure/integrator/meta/domain"
)

const insightFields = "insights{impressions,reach,actions,quality_ranking}"

// GetInsightsByIDs busca as métricas de vários objetos numa única chamada (?ids=)
func (c *MetaClient) GetInsightsByIDs(ctx context.Context, ids []string) (map[string]metadomain.InsightNode, error) {
	if len(ids) == 0 {
		return map[string]metadomain.InsightNode{}, nil
	}

	params := url.Values{}
	params.Add("ids", strings.Join(ids, ","))
	params.Add("fields", insightFields)

	body, err := c.do(ctx, http.MethodGet, "", params)
	if err != nil {
		return nil, err
	}

	response := make(map[string]metadomain.InsightNode, len(ids))
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON")
		return nil, err
	}

	return response, nil
}
