package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-manager-api/internal/api/handler/router"
	"github.com/vfg2006/ads-manager-api/internal/domain"
	"github.com/vfg2006/ads-manager-api/pkg/middleware"
)

type fakeCronJob struct {
	triggered int
}

func (f *fakeCronJob) TriggerManualSync(context.Context) bool {
	f.triggered++
	return true
}

func (f *fakeCronJob) GetStatus() map[string]any {
	return map[string]any{"triggered": f.triggered}
}

func TestRunCronJob(t *testing.T) {
	admin := &domain.Claims{UserID: 1, UserRoleID: middleware.RoleAdmin}
	supervisor := &domain.Claims{UserID: 2, UserRoleID: middleware.RoleSupervisor}

	tests := []struct {
		name        string
		path        string
		claims      *domain.Claims
		wantStatus  int
		wantSync    int
		wantCleanup int
	}{
		{name: "Sincronização automática", path: "/v1/cron/auto-sync/run", claims: admin, wantStatus: http.StatusOK, wantSync: 1},
		{name: "Todas", path: "/v1/cron/all/run", claims: admin, wantStatus: http.StatusOK, wantSync: 1, wantCleanup: 1},
		{name: "Tipo inválido", path: "/v1/cron/meta/run", claims: admin, wantStatus: http.StatusBadRequest},
		{name: "Supervisor não executa", path: "/v1/cron/auto-sync/run", claims: supervisor, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			autoSync := &fakeCronJob{}
			cleanup := &fakeCronJob{}
			rt := router.New(router.WithRoutes(CronJobs(CronJobServices{AutoSyncService: autoSync, WorkspaceCleanupService: cleanup})...))

			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			req = req.WithContext(context.WithValue(req.Context(), middleware.ContextKeyUser, tt.claims))
			rec := httptest.NewRecorder()
			rt.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantSync, autoSync.triggered)
			assert.Equal(t, tt.wantCleanup, cleanup.triggered)
		})
	}
}

func TestGetCronStatus(t *testing.T) {
	rt := router.New(router.WithRoutes(CronJobs(CronJobServices{AutoSyncService: &fakeCronJob{}})...))

	req := httptest.NewRequest(http.MethodGet, "/v1/cron/status", nil)
	req = req.WithContext(context.WithValue(req.Context(), middleware.ContextKeyUser, &domain.Claims{UserRoleID: middleware.RoleAdmin}))
	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var status map[string]map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Contains(t, status, CronJobTypeAutoSync)
	assert.NotContains(t, status, CronJobTypeWorkspaceCleanup)
}
