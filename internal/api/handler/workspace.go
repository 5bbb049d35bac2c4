package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-manager-api/internal/domain"
	"github.com/vfg2006/ads-manager-api/internal/usecases/authenticating"
	"github.com/vfg2006/ads-manager-api/internal/usecases/managing"
	"github.com/vfg2006/ads-manager-api/internal/usecases/navigating"
	"github.com/vfg2006/ads-manager-api/internal/usecases/workspace"
	"github.com/vfg2006/ads-manager-api/pkg/apiErrors"
	"github.com/vfg2006/ads-manager-api/pkg/log"
	"github.com/vfg2006/ads-manager-api/pkg/middleware"
)

type openWorkspaceRequest struct {
	AccountID string `json:"account_id"`
}

type tierRequest struct {
	Tier domain.Tier `json:"tier"`
}

type campaignRequest struct {
	CampaignID *string `json:"campaign_id"`
}

type adSetRequest struct {
	AdSetID *string `json:"adset_id"`
}

type bulkRequest struct {
	Operation domain.BatchOperation `json:"operation"`
	IDs       []string              `json:"ids"`
	Confirmed bool                  `json:"confirmed"`
}

type rowsResponse struct {
	*domain.PageResult
	Navigation navigating.View `json:"navigation"`
}

type syncResponse struct {
	Synced bool `json:"synced"`
}

// WorkspaceHandlers agrupa os handlers das sessões do painel
type WorkspaceHandlers struct {
	manager   managing.Manager
	validator authenticating.Validator
}

func NewWorkspaceHandlers(manager managing.Manager, validator authenticating.Validator) *WorkspaceHandlers {
	return &WorkspaceHandlers{manager: manager, validator: validator}
}

// authorize resolve a sessão da rota e confere se o usuário pode operar a conta dela
func (h *WorkspaceHandlers) authorize(w http.ResponseWriter, r *http.Request) (*workspace.Workspace, bool) {
	id := httprouter.ParamsFromContext(r.Context()).ByName("id")
	if id == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da sessão é obrigatório", nil)
		return nil, false
	}

	ws, err := h.manager.Workspace(id)
	if err != nil {
		writeEngineError(w, err)
		return nil, false
	}

	claims, _ := middleware.ClaimsFromContext(r.Context())
	if err := h.validator.AuthorizeAccount(claims, ws.AccountID); err != nil {
		writeEngineError(w, err)
		return nil, false
	}

	return ws, true
}

func (h *WorkspaceHandlers) Open() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openWorkspaceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		if req.AccountID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "account_id é obrigatório", nil)
			return
		}

		claims, _ := middleware.ClaimsFromContext(r.Context())
		if err := h.validator.AuthorizeAccount(claims, req.AccountID); err != nil {
			writeEngineError(w, err)
			return
		}

		snapshot, err := h.manager.Open(r.Context(), req.AccountID, claims.UserID)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, snapshot)
	})
}

func (h *WorkspaceHandlers) Get() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, ok := h.authorize(w, r)
		if !ok {
			return
		}

		writeJSON(w, http.StatusOK, ws.Snapshot())
	})
}

func (h *WorkspaceHandlers) Close() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, ok := h.authorize(w, r)
		if !ok {
			return
		}

		if err := h.manager.Close(r.Context(), ws.ID); err != nil {
			writeEngineError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

func (h *WorkspaceHandlers) Sync() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, ok := h.authorize(w, r)
		if !ok {
			return
		}

		force, _ := strconv.ParseBool(r.URL.Query().Get("force"))
		ctx := log.WithWorkspaceID(r.Context(), ws.ID)

		synced, err := h.manager.Sync(ctx, ws.ID, force)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, syncResponse{Synced: synced})
	})
}

func (h *WorkspaceHandlers) Rows() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, ok := h.authorize(w, r)
		if !ok {
			return
		}

		number, err := optionalInt(r, "page")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "page inválido", nil)
			return
		}
		size, err := optionalInt(r, "page_size")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "page_size inválido", nil)
			return
		}

		ctx := log.WithWorkspaceID(r.Context(), ws.ID)
		result, err := h.manager.LoadRows(ctx, ws.ID, number, size)
		if err != nil {
			logrus.WithError(err).WithField("workspace_id", ws.ID).Warn("Falha ao carregar linhas")
			writeEngineError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, rowsResponse{PageResult: result, Navigation: ws.Navigation()})
	})
}

func (h *WorkspaceHandlers) SetTier() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, ok := h.authorize(w, r)
		if !ok {
			return
		}

		var req tierRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		view, err := h.manager.SetTier(ws.ID, req.Tier)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, view)
	})
}

func (h *WorkspaceHandlers) SelectCampaign() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, ok := h.authorize(w, r)
		if !ok {
			return
		}

		var req campaignRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		view, err := h.manager.SelectCampaign(ws.ID, valueOrEmpty(req.CampaignID))
		if err != nil {
			writeEngineError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, view)
	})
}

func (h *WorkspaceHandlers) SelectAdSet() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, ok := h.authorize(w, r)
		if !ok {
			return
		}

		var req adSetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		view, err := h.manager.SelectAdSet(ws.ID, valueOrEmpty(req.AdSetID))
		if err != nil {
			writeEngineError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, view)
	})
}

func (h *WorkspaceHandlers) ToggleRowSelection() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, ok := h.authorize(w, r)
		if !ok {
			return
		}

		rowID := httprouter.ParamsFromContext(r.Context()).ByName("row_id")
		view, err := h.manager.ToggleRowSelection(ws.ID, rowID)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, view)
	})
}

func (h *WorkspaceHandlers) ToggleAllSelection() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, ok := h.authorize(w, r)
		if !ok {
			return
		}

		view, err := h.manager.ToggleAllSelection(ws.ID)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, view)
	})
}

func (h *WorkspaceHandlers) ToggleStatus() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, ok := h.authorize(w, r)
		if !ok {
			return
		}

		rowID := httprouter.ParamsFromContext(r.Context()).ByName("row_id")
		row, err := h.manager.ToggleStatus(r.Context(), ws.ID, rowID)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, row)
	})
}

func (h *WorkspaceHandlers) Bulk() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, ok := h.authorize(w, r)
		if !ok {
			return
		}

		var req bulkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		if !req.Operation.IsValid() {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Operação inválida. Valores aceitos: delete, archive", nil)
			return
		}

		// operações destrutivas exigem confirmação explícita antes de chegar ao motor
		if !req.Confirmed {
			apiErrors.WriteError(w, apiErrors.ErrConfirmationRequired, "Confirme a operação em lote", nil)
			return
		}

		progress, err := h.manager.Bulk(r.Context(), ws.ID, req.Operation, req.IDs)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		writeJSON(w, http.StatusAccepted, progress)
	})
}

func (h *WorkspaceHandlers) Progress() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, ok := h.authorize(w, r)
		if !ok {
			return
		}

		progress, err := h.manager.Progress(ws.ID)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		if progress == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		writeJSON(w, http.StatusOK, progress)
	})
}

func (h *WorkspaceHandlers) DismissProgress() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, ok := h.authorize(w, r)
		if !ok {
			return
		}

		if err := h.manager.DismissProgress(ws.ID); err != nil {
			writeEngineError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

func optionalInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func valueOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
