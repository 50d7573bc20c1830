package handler

import (
	"net/http"

	"github.com/vfg2006/lead-tracker-api/infrastructure/integrator/ghl"
	"github.com/vfg2006/lead-tracker-api/internal/api/handler/router"
	"github.com/vfg2006/lead-tracker-api/internal/usecases/analytics"
	"github.com/vfg2006/lead-tracker-api/internal/usecases/authenticating"
	"github.com/vfg2006/lead-tracker-api/internal/usecases/tracking"
	"github.com/vfg2006/lead-tracker-api/pkg/metrics"
	"github.com/vfg2006/lead-tracker-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: metrics.Handler(),
		},
	}
}

func Webhooks(integrator ghl.GHLIntegrator, tracker tracking.Tracker) []router.Route {
	return []router.Route{
		{
			Path:    "/webhook",
			Method:  http.MethodPost,
			Handler: ReceiveWebhook(integrator, tracker),
		},
	}
}

func Events(tracker tracking.Tracker) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/events",
			Method:      http.MethodPost,
			Handler:     RecordEvent(tracker),
			Middlewares: []func(http.Handler) http.Handler{middleware.IngestAccess()},
		},
		{
			Path:        "/v1/journeys/:contact_id",
			Method:      http.MethodGet,
			Handler:     GetJourney(tracker),
			Middlewares: []func(http.Handler) http.Handler{middleware.ReadAccess()},
		},
		{
			Path:        "/v1/journeys/:contact_id/events",
			Method:      http.MethodGet,
			Handler:     ListJourneyEvents(tracker),
			Middlewares: []func(http.Handler) http.Handler{middleware.ReadAccess()},
		},
	}
}

func Analytics(service analytics.Analyzer, query AnalyticsQuery) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/stats",
			Method:      http.MethodGet,
			Handler:     GetStats(service, query),
			Middlewares: []func(http.Handler) http.Handler{middleware.ReadAccess()},
		},
		{
			Path:        "/v1/best-call-times",
			Method:      http.MethodGet,
			Handler:     GetBestCallTimes(service, query),
			Middlewares: []func(http.Handler) http.Handler{middleware.ReadAccess()},
		},
		{
			Path:        "/v1/daily-leads",
			Method:      http.MethodGet,
			Handler:     GetDailyLeads(service, query),
			Middlewares: []func(http.Handler) http.Handler{middleware.ReadAccess()},
		},
		{
			Path:        "/v1/dashboard",
			Method:      http.MethodGet,
			Handler:     GetDashboard(service, query),
			Middlewares: []func(http.Handler) http.Handler{middleware.ReadAccess()},
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/tokens",
			Method:      http.MethodPost,
			Handler:     IssueToken(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:    "/v1/me",
			Method:  http.MethodGet,
			Handler: GetMe(),
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
