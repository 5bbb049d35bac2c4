package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-manager-api/internal/api/handler/router"
	"github.com/vfg2006/ads-manager-api/internal/config"
	"github.com/vfg2006/ads-manager-api/internal/domain"
	"github.com/vfg2006/ads-manager-api/internal/usecases/authenticating"
	"github.com/vfg2006/ads-manager-api/internal/usecases/managing/mocks"
	"github.com/vfg2006/ads-manager-api/internal/usecases/navigating"
	"github.com/vfg2006/ads-manager-api/internal/usecases/toggling"
	"github.com/vfg2006/ads-manager-api/internal/usecases/workspace"
	"github.com/vfg2006/ads-manager-api/pkg/apiErrors"
	"github.com/vfg2006/ads-manager-api/pkg/middleware"
	"go.uber.org/mock/gomock"
)

type testServer struct {
	router  router.Router
	manager *mocks.MockManager
	ws      *workspace.Workspace
}

func newTestServer(t *testing.T) testServer {
	ctrl := gomock.NewController(t)
	manager := mocks.NewMockManager(ctrl)

	ws, err := workspace.NewRegistry(10).Open("act_1", 7)
	require.NoError(t, err)

	validator := authenticating.NewService(&config.Config{Auth: config.Auth{Secret: "segredo"}})
	rt := router.New(router.WithRoutes(Workspaces(NewWorkspaceHandlers(manager, validator))...))

	return testServer{router: rt, manager: manager, ws: ws}
}

func (s testServer) do(method, path, body string, claims *domain.Claims) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if claims != nil {
		req = req.WithContext(context.WithValue(req.Context(), middleware.ContextKeyUser, claims))
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s testServer) expectWorkspace() {
	s.manager.EXPECT().Workspace(s.ws.ID).Return(s.ws, nil)
}

func supervisor() *domain.Claims {
	return &domain.Claims{UserID: 7, UserRoleID: middleware.RoleSupervisor, UserAccounts: []string{"act_1"}}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()

	var apiErr apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr
}

func TestBulkSemConfirmacao(t *testing.T) {
	s := newTestServer(t)
	s.expectWorkspace()

	rec := s.do(http.MethodPost, "/v1/workspaces/"+s.ws.ID+"/bulk", `{"operation":"delete","ids":["1"]}`, supervisor())

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	apiErr := decodeError(t, rec)
	assert.Equal(t, apiErrors.ErrConfirmationRequired, apiErr.Code)
	assert.Equal(t, apiErrors.LevelWarning, apiErr.Level)
}

func TestBulkConfirmado(t *testing.T) {
	s := newTestServer(t)
	s.expectWorkspace()

	progress := domain.BatchProgress{Operation: domain.BatchOperationDelete, Status: domain.BatchStatusLoading, Total: 2, Errors: []domain.BatchItemError{}}
	s.manager.EXPECT().Bulk(gomock.Any(), s.ws.ID, domain.BatchOperationDelete, []string{"1", "2"}).Return(progress, nil)

	rec := s.do(http.MethodPost, "/v1/workspaces/"+s.ws.ID+"/bulk", `{"operation":"delete","ids":["1","2"],"confirmed":true}`, supervisor())

	assert.Equal(t, http.StatusAccepted, rec.Code)
	var got domain.BatchProgress
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, domain.BatchStatusLoading, got.Status)
	assert.Equal(t, 2, got.Total)
}

func TestBulkPerfilCliente(t *testing.T) {
	s := newTestServer(t)
	client := &domain.Claims{UserID: 9, UserRoleID: middleware.RoleClient, UserAccounts: []string{"act_1"}}

	rec := s.do(http.MethodPost, "/v1/workspaces/"+s.ws.ID+"/bulk", `{"operation":"delete","confirmed":true}`, client)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestContaNaoVinculada(t *testing.T) {
	s := newTestServer(t)
	s.expectWorkspace()

	other := &domain.Claims{UserID: 8, UserRoleID: middleware.RoleClient, UserAccounts: []string{"act_2"}}
	rec := s.do(http.MethodGet, "/v1/workspaces/"+s.ws.ID, "", other)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, apiErrors.ErrInsufficientPrivilege, decodeError(t, rec).Code)
}

func TestSessaoInexistente(t *testing.T) {
	s := newTestServer(t)
	s.manager.EXPECT().Workspace("nope").
		Return(nil, workspace.NewWorkspaceError(workspace.ErrWorkspaceNotFound, apiErrors.ErrResourceNotFound, "nope", ""))

	rec := s.do(http.MethodGet, "/v1/workspaces/nope/rows", "", supervisor())

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestToggleStatusFalhaNaPlataforma(t *testing.T) {
	s := newTestServer(t)
	s.expectWorkspace()
	s.manager.EXPECT().ToggleStatus(gomock.Any(), s.ws.ID, "row-1").Return(nil, &toggling.ToggleError{
		Err:     toggling.ErrToggleFailed,
		Code:    apiErrors.ErrToggleFailed,
		RowID:   "row-1",
		Details: "Anúncio rejeitado",
	})

	rec := s.do(http.MethodPost, "/v1/workspaces/"+s.ws.ID+"/rows/row-1/status", "", supervisor())

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	apiErr := decodeError(t, rec)
	assert.Equal(t, apiErrors.ErrToggleFailed, apiErr.Code)
	details, ok := apiErr.Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Anúncio rejeitado", details["detail"])
}

func TestToggleStatusSemIDExterno(t *testing.T) {
	s := newTestServer(t)
	s.expectWorkspace()
	s.manager.EXPECT().ToggleStatus(gomock.Any(), s.ws.ID, "row-2").Return(nil, &toggling.ToggleError{
		Err:     workspace.ErrMissingExternalID,
		Code:    apiErrors.ErrMissingExternalID,
		RowID:   "row-2",
		Warning: true,
	})

	rec := s.do(http.MethodPost, "/v1/workspaces/"+s.ws.ID+"/rows/row-2/status", "", supervisor())

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, apiErrors.LevelWarning, decodeError(t, rec).Level)
}

func TestRows(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		setup      func(s testServer)
		wantStatus int
	}{
		{
			name:  "Página e tamanho repassados",
			query: "?page=2&page_size=20",
			setup: func(s testServer) {
				s.manager.EXPECT().LoadRows(gomock.Any(), s.ws.ID, 2, 20).Return(&domain.PageResult{
					Rows:      []domain.Entity{{ID: "1", Name: "Campanha"}},
					Total:     21,
					PageCount: 2,
					Page:      domain.Page{Number: 2, Size: 20},
				}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:  "Sem paginação usa a atual",
			query: "",
			setup: func(s testServer) {
				s.manager.EXPECT().LoadRows(gomock.Any(), s.ws.ID, 0, 0).Return(&domain.PageResult{}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "Página inválida",
			query:      "?page=abc",
			setup:      func(testServer) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			s.expectWorkspace()
			tt.setup(s)

			rec := s.do(http.MethodGet, "/v1/workspaces/"+s.ws.ID+"/rows"+tt.query, "", supervisor())

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestSelectCampaignNuloVoltaParaCampanhas(t *testing.T) {
	s := newTestServer(t)
	s.expectWorkspace()
	s.manager.EXPECT().SelectCampaign(s.ws.ID, "").Return(navigating.View{ActiveTier: domain.TierCampaign}, nil)

	rec := s.do(http.MethodPut, "/v1/workspaces/"+s.ws.ID+"/campaign", `{"campaign_id":null}`, supervisor())

	assert.Equal(t, http.StatusOK, rec.Code)
	var view navigating.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, domain.TierCampaign, view.ActiveTier)
}

func TestProgressVazio(t *testing.T) {
	s := newTestServer(t)
	s.expectWorkspace()
	s.manager.EXPECT().Progress(s.ws.ID).Return(nil, nil)

	rec := s.do(http.MethodGet, "/v1/workspaces/"+s.ws.ID+"/progress", "", supervisor())

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestOpenWorkspace(t *testing.T) {
	s := newTestServer(t)
	s.manager.EXPECT().Open(gomock.Any(), "act_1", 7).Return(s.ws.Snapshot(), nil)

	rec := s.do(http.MethodPost, "/v1/workspaces", `{"account_id":"act_1"}`, supervisor())

	assert.Equal(t, http.StatusCreated, rec.Code)
	var snapshot workspace.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
	assert.Equal(t, s.ws.ID, snapshot.ID)
}

func TestOpenWorkspaceSemConta(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/v1/workspaces", `{}`, supervisor())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrMissingRequiredData, decodeError(t, rec).Code)
}
