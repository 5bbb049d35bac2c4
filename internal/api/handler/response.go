package handler

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-manager-api/internal/usecases/authenticating"
	"github.com/vfg2006/ads-manager-api/internal/usecases/batching"
	"github.com/vfg2006/ads-manager-api/internal/usecases/fetching"
	"github.com/vfg2006/ads-manager-api/internal/usecases/toggling"
	"github.com/vfg2006/ads-manager-api/internal/usecases/workspace"
	"github.com/vfg2006/ads-manager-api/pkg/apiErrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.WithError(err).Error("Erro ao codificar resposta")
	}
}

// writeEngineError traduz os erros tipados dos casos de uso para o envelope da API
func writeEngineError(w http.ResponseWriter, err error) {
	var (
		wsErr     *workspace.WorkspaceError
		toggleErr *toggling.ToggleError
		batchErr  *batching.BatchError
		fetchErr  *fetching.FetchError
		authErr   *authenticating.AuthError
	)

	switch {
	case errors.As(err, &toggleErr):
		apiErrors.WriteError(w, toggleErr.Code, toggleErr.Err.Error(), map[string]any{
			"row_id": toggleErr.RowID,
			"detail": toggleErr.Details,
		})
	case errors.As(err, &batchErr):
		apiErrors.WriteError(w, batchErr.Code, batchErr.Error(), nil)
	case errors.As(err, &fetchErr):
		apiErrors.WriteError(w, fetchErr.Code, "Falha ao carregar", map[string]any{
			"tier":   fetchErr.Tier,
			"detail": fetchErr.Err.Error(),
		})
	case errors.As(err, &wsErr):
		apiErrors.WriteError(w, wsErr.Code, wsErr.Error(), nil)
	case errors.As(err, &authErr):
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), nil)
	default:
		logrus.WithError(err).Error("Erro não mapeado")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno", nil)
	}
}
