package metaclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	metadomain "github.com/vfg2006/ads-manager-api/infrastructure/integrator/meta/domain"
)

func (c *MetaClient) UpdateStatus(ctx context.Context, objectID, status string) error {
	params := url.Values{}
	params.Add("status", status)

	body, err := c.do(ctx, http.MethodPost, objectID, params)
	if err != nil {
		return err
	}

	return checkSuccess(body, objectID)
}

func (c *MetaClient) Delete(ctx context.Context, objectID string) error {
	body, err := c.do(ctx, http.MethodDelete, objectID, nil)
	if err != nil {
		return err
	}

	return checkSuccess(body, objectID)
}

func checkSuccess(body []byte, objectID string) error {
	var response metadomain.SuccessResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return fmt.Errorf("erro ao decodificar resposta de %s: %w", objectID, err)
	}

	if !response.Success {
		return &APIError{
			StatusCode: http.StatusOK,
			Message:    fmt.Sprintf("operação não confirmada para %s", objectID),
		}
	}

	return nil
}
