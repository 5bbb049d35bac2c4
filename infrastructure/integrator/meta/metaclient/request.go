package metaclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
)

// APIError é um erro de aplicação devolvido pelo Graph API
type APIError struct {
	StatusCode int
	Message    string
	UserMsg    string
	Code       int
	Subcode    int
}

func (e *APIError) Error() string {
	if e.UserMsg != "" {
		return fmt.Sprintf("meta api: %s (%s)", e.Message, e.UserMsg)
	}
	return fmt.Sprintf("meta api: %s", e.Message)
}

func (c *MetaClient) endpoint(path string) string {
	return fmt.Sprintf("%s/%s", strings.TrimRight(c.Cfg.Meta.URL, "/"), strings.TrimLeft(path, "/"))
}

// do executa a chamada garantindo o token e repete uma única vez quando o token acabou de ser renovado
func (c *MetaClient) do(ctx context.Context, method, path string, params url.Values) ([]byte, error) {
	body, err := c.doOnce(ctx, method, path, params)
	if errors.Is(err, ErrTokenRefreshed) {
		logrus.WithField("path", path).Info("Token renovado, repetindo requisição")
		return c.doOnce(ctx, method, path, params)
	}
	return body, err
}

func (c *MetaClient) doOnce(ctx context.Context, method, path string, params url.Values) ([]byte, error) {
	// Garantir que o token seja válido antes de fazer a requisição
	if err := c.EnsureValidToken(ctx); err != nil {
		return nil, fmt.Errorf("erro ao verificar validade do token: %w", err)
	}

	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("access_token", c.Cfg.Meta.AccessToken)

	var req *http.Request
	var err error
	if method == http.MethodPost {
		req, err = http.NewRequestWithContext(ctx, method, c.endpoint(path), strings.NewReader(query.Encode()))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.endpoint(path)+"?"+query.Encode(), nil)
	}
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição")
		return nil, err
	}

	return c.send(ctx, req)
}

// getURL segue um link absoluto (paging.next), que já carrega o token
func (c *MetaClient) getURL(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição")
		return nil, err
	}
	return c.send(ctx, req)
}

func (c *MetaClient) send(ctx context.Context, req *http.Request) ([]byte, error) {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		logrus.WithError(err).Error("Erro ao fazer a requisição")
		return nil, err
	}
	defer resp.Body.Close()

	return c.HandleResponse(ctx, resp)
}
