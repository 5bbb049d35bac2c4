package handler

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-manager-api/pkg/apiErrors"
	"github.com/vfg2006/ads-manager-api/pkg/middleware"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeAutoSync         = "auto-sync"
	CronJobTypeWorkspaceCleanup = "workspace-cleanup"
	CronJobTypeAll              = "all"
)

// CronJob é um job agendado que também pode ser disparado manualmente
type CronJob interface {
	TriggerManualSync(ctx context.Context) bool
	GetStatus() map[string]any
}

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	AutoSyncService         CronJob
	WorkspaceCleanupService CronJob
}

func (s CronJobServices) byType() map[string]CronJob {
	jobs := map[string]CronJob{}
	if s.AutoSyncService != nil {
		jobs[CronJobTypeAutoSync] = s.AutoSyncService
	}
	if s.WorkspaceCleanupService != nil {
		jobs[CronJobTypeWorkspaceCleanup] = s.WorkspaceCleanupService
	}
	return jobs
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		// Verificar permissões - apenas administradores podem executar cron jobs
		userClaims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok || userClaims.UserRoleID != middleware.RoleAdmin {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem executar cron jobs", nil)
			return
		}

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		jobs := services.byType()
		started := map[string]bool{}

		if cronType == CronJobTypeAll {
			for name, job := range jobs {
				started[name] = job.TriggerManualSync(r.Context())
			}
		} else {
			job, exists := jobs[cronType]
			if !exists {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: auto-sync, workspace-cleanup, all", nil)
				return
			}
			started[cronType] = job.TriggerManualSync(r.Context())
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
			"started": started,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		userClaims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok || userClaims.UserRoleID != middleware.RoleAdmin {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem verificar status de cron jobs", nil)
			return
		}

		status := map[string]any{}
		for name, job := range services.byType() {
			status[name] = job.GetStatus()
		}

		writeJSON(w, http.StatusOK, status)
	}
}
