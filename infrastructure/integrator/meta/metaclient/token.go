package metaclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

// TokenResponse representa a resposta da API do Meta ao trocar um token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type debugTokenResponse struct {
	Data struct {
		IsValid   bool  `json:"is_valid"`
		ExpiresAt int64 `json:"expires_at"`
	} `json:"data"`
}

// getLongLivedToken troca o token atual por um token de longa duração
func (tm *TokenManager) getLongLivedToken(ctx context.Context, currentToken string) (*TokenResponse, error) {
	if currentToken == "" {
		return nil, fmt.Errorf("token de acesso não pode ser vazio")
	}

	endpoint := fmt.Sprintf("%s/%s/oauth/access_token", tm.cfg.Meta.BaseURL, tm.cfg.Meta.Version)

	params := url.Values{}
	params.Add("grant_type", "fb_exchange_token")
	params.Add("client_id", tm.cfg.Meta.AppID)
	params.Add("client_secret", tm.cfg.Meta.AppSecret)
	params.Add("fb_exchange_token", currentToken)

	body, status, err := tm.get(ctx, endpoint+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("erro ao obter token de longa duração: %w", err)
	}

	if status != http.StatusOK {
		logrus.Errorf("Erro obtendo token longa duração. Status: %d, Resposta: %s", status, string(body))
		return nil, fmt.Errorf("erro ao obter token de longa duração. Status: %d, Resposta: %s", status, body)
	}

	var tokenResp TokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta: %w", err)
	}

	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("token retornado pela API é vazio")
	}

	logrus.Infof("Token de longa duração obtido com sucesso. Expira em %s.", FormatDuration(tokenResp.ExpiresIn))

	return &tokenResp, nil
}

// debugToken consulta /debug_token para descobrir validade e expiração
func (tm *TokenManager) debugToken(ctx context.Context, token string) (*debugTokenResponse, error) {
	endpoint := fmt.Sprintf("%s/%s/debug_token", tm.cfg.Meta.BaseURL, tm.cfg.Meta.Version)

	params := url.Values{}
	params.Add("input_token", token)
	params.Add("access_token", tm.cfg.Meta.AppID+"|"+tm.cfg.Meta.AppSecret)

	body, status, err := tm.get(ctx, endpoint+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("erro ao obter informações de debug do token: %w", err)
	}

	if status != http.StatusOK {
		return nil, fmt.Errorf("erro ao obter informações de debug do token. Status: %d, Resposta: %s", status, string(body))
	}

	var response debugTokenResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta: %w", err)
	}

	return &response, nil
}

func (tm *TokenManager) get(ctx context.Context, requestURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, 0, err
	}

	resp, err := tm.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	return body, resp.StatusCode, nil
}

// FormatDuration formata a duração em segundos para um formato legível
func FormatDuration(seconds int64) string {
	duration := time.Duration(seconds) * time.Second
	days := duration / (24 * time.Hour)
	hours := (duration % (24 * time.Hour)) / time.Hour
	minutes := (duration % time.Hour) / time.Minute

	return fmt.Sprintf("%d dias, %d horas e %d minutos", days, hours, minutes)
}

// CalculateTokenExpiration calcula a data de expiração do token com base no tempo de expiração em segundos
func CalculateTokenExpiration(expiresIn int64) time.Time {
	// Subtraímos 1 dia para renovar antes da expiração real
	buffer := int64(24 * 60 * 60)
	safeExpiresIn := expiresIn - buffer

	if safeExpiresIn < 0 {
		safeExpiresIn = expiresIn / 2
	}

	return time.Now().Add(time.Duration(safeExpiresIn) * time.Second)
}
