package handler

import (
	"net/http"

	"github.com/vfg2006/ads-manager-api/internal/api/handler/router"
	"github.com/vfg2006/ads-manager-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Workspaces(h *WorkspaceHandlers) []router.Route {
	allRoles := []func(http.Handler) http.Handler{middleware.AllRoles()}

	return []router.Route{
		{
			Path:        "/v1/workspaces",
			Method:      http.MethodPost,
			Handler:     h.Open(),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/workspaces/:id",
			Method:      http.MethodGet,
			Handler:     h.Get(),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/workspaces/:id",
			Method:      http.MethodDelete,
			Handler:     h.Close(),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/workspaces/:id/sync",
			Method:      http.MethodPost,
			Handler:     h.Sync(),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/workspaces/:id/rows",
			Method:      http.MethodGet,
			Handler:     h.Rows(),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/workspaces/:id/tier",
			Method:      http.MethodPut,
			Handler:     h.SetTier(),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/workspaces/:id/campaign",
			Method:      http.MethodPut,
			Handler:     h.SelectCampaign(),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/workspaces/:id/adset",
			Method:      http.MethodPut,
			Handler:     h.SelectAdSet(),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/workspaces/:id/selection/rows/:row_id",
			Method:      http.MethodPost,
			Handler:     h.ToggleRowSelection(),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/workspaces/:id/selection/all",
			Method:      http.MethodPost,
			Handler:     h.ToggleAllSelection(),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/workspaces/:id/rows/:row_id/status",
			Method:      http.MethodPost,
			Handler:     h.ToggleStatus(),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/workspaces/:id/bulk",
			Method:      http.MethodPost,
			Handler:     h.Bulk(),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/workspaces/:id/progress",
			Method:      http.MethodGet,
			Handler:     h.Progress(),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/workspaces/:id/progress",
			Method:      http.MethodDelete,
			Handler:     h.DismissProgress(),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/workspaces/:id/progress/stream",
			Method:      http.MethodGet,
			Handler:     h.ProgressStream(middleware.AllowedOriginHosts()),
			Middlewares: allRoles,
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
