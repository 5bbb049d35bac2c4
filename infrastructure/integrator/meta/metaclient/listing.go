package metaclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/ads-manager-api/infrastructure/integrator/meta/domain"
)

const (
	campaignFields = "id,account_id,name,status,daily_budget,lifetime_budget,updated_time"
	adSetFields    = "id,account_id,campaign_id,name,status,daily_budget,lifetime_budget,updated_time"
	adFields       = "id,account_id,campaign_id,adset_id,name,status,updated_time"

	// limite de segurança para contas com históricos enormes
	maxPages = 200
)

func (c *MetaClient) ListCampaigns(ctx context.Context, accountID string) ([]metadomain.Campaign, error) {
	return listAll[metadomain.Campaign](ctx, c, fmt.Sprintf("act_%s/campaigns", accountID), campaignFields)
}

func (c *MetaClient) ListAdSets(ctx context.Context, accountID string) ([]metadomain.AdSet, error) {
	return listAll[metadomain.AdSet](ctx, c, fmt.Sprintf("act_%s/adsets", accountID), adSetFields)
}

func (c *MetaClient) ListAds(ctx context.Context, accountID string) ([]metadomain.Ad, error) {
	return listAll[metadomain.Ad](ctx, c, fmt.Sprintf("act_%s/ads", accountID), adFields)
}

// listAll percorre todas as páginas seguindo paging.next
func listAll[T any](ctx context.Context, c *MetaClient, path, fields string) ([]T, error) {
	params := url.Values{}
	params.Add("fields", fields)
	params.Add("limit", strconv.Itoa(c.Cfg.Meta.PageLimit))

	body, err := c.do(ctx, http.MethodGet, path, params)
	if err != nil {
		return nil, err
	}

	items := make([]T, 0)
	for page := 1; ; page++ {
		var response metadomain.Page[T]
		if err := json.Unmarshal(body, &response); err != nil {
			logrus.WithError(err).Error("Erro ao decodificar JSON")
			return nil, err
		}

		items = append(items, response.Data...)

		if response.Paging.Next == "" {
			break
		}

		if page >= maxPages {
			logrus.WithFields(logrus.Fields{
				"path":  path,
				"pages": page,
			}).Warn("Limite de páginas atingido, listagem truncada")
			break
		}

		body, err = c.getURL(ctx, response.Paging.Next)
		if err != nil {
			return nil, err
		}
	}

	logrus.WithFields(logrus.Fields{
		"path":  path,
		"total": len(items),
	}).Debug("Listagem do Meta concluída")

	return items, nil
}
