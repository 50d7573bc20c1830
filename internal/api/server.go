package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/lead-tracker-api/infrastructure/integrator/ghl"
	"github.com/vfg2006/lead-tracker-api/internal/api/handler"
	"github.com/vfg2006/lead-tracker-api/internal/api/handler/router"
	"github.com/vfg2006/lead-tracker-api/internal/config"
	"github.com/vfg2006/lead-tracker-api/internal/usecases/analytics"
	"github.com/vfg2006/lead-tracker-api/internal/usecases/authenticating"
	"github.com/vfg2006/lead-tracker-api/internal/usecases/tracking"
	"github.com/vfg2006/lead-tracker-api/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	tracker tracking.Tracker,
	analyzer analytics.Analyzer,
	authenticator authenticating.Authenticator,
	integrator ghl.GHLIntegrator,
	cronServices handler.CronJobServices,
) (*Server, error) {
	query := handler.AnalyticsQuery{
		DefaultDays: config.Analytics.DefaultWindowDays,
		Location:    config.Analytics.Location,
	}

	httpHandler := NewHandler(config, tracker, analyzer, authenticator, integrator, cronServices, query)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           httpHandler,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

// NewHandler monta o router com a cadeia global de middlewares
func NewHandler(
	config *config.Config,
	tracker tracking.Tracker,
	analyzer analytics.Analyzer,
	authenticator authenticating.Authenticator,
	integrator ghl.GHLIntegrator,
	cronServices handler.CronJobServices,
	query handler.AnalyticsQuery,
) http.Handler {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Webhooks(integrator, tracker)...),
		router.WithRoutes(handler.Events(tracker)...),
		router.WithRoutes(handler.Analytics(analyzer, query)...),
		router.WithRoutes(handler.Authentication(authenticator)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Server.AllowedOrigins),
		middleware.AuthMiddleware(authenticator),
	}

	return alice.New(middlewares...).Then(rt)
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
