package metaclient

import (
	"context"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	metadomain "github.com/vfg2006/ads-manager-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-manager-api/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client interface {
	ListCampaigns(ctx context.Context, accountID string) ([]metadomain.Campaign, error)
	ListAdSets(ctx context.Context, accountID string) ([]metadomain.AdSet, error)
	ListAds(ctx context.Context, accountID string) ([]metadomain.Ad, error)
	GetInsightsByIDs(ctx context.Context, ids []string) (map[string]metadomain.InsightNode, error)
	UpdateStatus(ctx context.Context, objectID, status string) error
	Delete(ctx context.Context, objectID string) error
	RefreshToken(ctx context.Context) error
	EnsureValidToken(ctx context.Context) error
}

type MetaClient struct {
	Cfg          *config.Config
	TokenManager *TokenManager
	HTTPClient   *http.Client
}

func NewClient(cfg *config.Config, tokenManager *TokenManager) Client {
	timeout := cfg.Meta.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := &MetaClient{
		Cfg:          cfg,
		TokenManager: tokenManager,
		HTTPClient:   &http.Client{Timeout: timeout},
	}
	return client
}

// RefreshToken obtém um novo token de longa duração
func (c *MetaClient) RefreshToken(ctx context.Context) error {
	return c.TokenManager.RefreshToken(ctx)
}

// EnsureValidToken verifica se o token atual é válido e tenta renová-lo se necessário
func (c *MetaClient) EnsureValidToken(ctx context.Context) error {
	return c.TokenManager.EnsureValidToken(ctx)
}

// HandleResponse manipula a resposta HTTP e verifica erros de token expirado
func (c *MetaClient) HandleResponse(ctx context.Context, resp *http.Response) ([]byte, error) {
	return c.TokenManager.HandleResponse(ctx, resp)
}
