package config

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const renderAPIURL = "https://api.render.com/v1"

// SecretStorage guarda segredos fora do processo (usado para persistir o token da Meta)
type SecretStorage interface {
	AddOrUpdateSecret(ctx context.Context, secretName, secretContent string) error
}

type addOrUpdateSecretRequest struct {
	Content string `json:"content"`
}

type RenderClient struct {
	APIKey     string
	ServiceID  string
	BaseURL    string
	HTTPClient *http.Client
}

func NewRenderClient(config *Config) *RenderClient {
	return &RenderClient{
		APIKey:     config.Render.APIKey,
		ServiceID:  config.Render.ServiceID,
		BaseURL:    renderAPIURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Enabled indica se há credenciais do Render configuradas
func (c *RenderClient) Enabled() bool {
	return c != nil && c.APIKey != "" && c.ServiceID != ""
}

func (c *RenderClient) AddOrUpdateSecret(ctx context.Context, secretName, secretContent string) error {
	if !c.Enabled() {
		return nil
	}

	url := fmt.Sprintf("%s/services/%s/secret-files/%s", c.BaseURL, c.ServiceID, secretName)

	jsonData, err := json.Marshal(addOrUpdateSecretRequest{Content: secretContent})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("config: error add or update secret: %s", body)
	}
	return nil
}
