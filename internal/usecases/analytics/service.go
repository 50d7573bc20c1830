// Package analytics calcula as métricas do funil e o ranking de horários de ligação
package analytics

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/lead-tracker-api/infrastructure/repository"
	"github.com/vfg2006/lead-tracker-api/internal/config"
	"github.com/vfg2006/lead-tracker-api/internal/domain"
	"github.com/vfg2006/lead-tracker-api/pkg/apiErrors"
	"golang.org/x/sync/errgroup"
)

type Analyzer interface {
	ComputeStats(ctx context.Context, filter domain.AnalyticsFilter) (*domain.LeadStats, error)
	BestCallTimes(ctx context.Context, filter domain.AnalyticsFilter) ([]domain.BestCallTime, error)
	DailyLeads(ctx context.Context, filter domain.AnalyticsFilter) ([]domain.DailyLeadCount, error)
	Dashboard(ctx context.Context, filter domain.AnalyticsFilter) (*domain.Dashboard, error)
}

type Service struct {
	journeys repository.ContactJourneyRepository
	slots    repository.CallSlotRepository
	location *time.Location
	now      func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(repos *repository.Repositories, cfg *config.Config, opts ...Option) Analyzer {
	s := &Service{
		journeys: repos.Journeys,
		slots:    repos.Slots,
		location: cfg.Analytics.Location,
		now:      time.Now,
	}

	if s.location == nil {
		s.location = time.UTC
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) ComputeStats(ctx context.Context, filter domain.AnalyticsFilter) (*domain.LeadStats, error) {
	resolved, err := s.resolve(filter)
	if err != nil {
		return nil, err
	}
	return s.computeStats(ctx, resolved)
}

func (s *Service) BestCallTimes(ctx context.Context, filter domain.AnalyticsFilter) ([]domain.BestCallTime, error) {
	resolved, err := s.resolve(filter)
	if err != nil {
		return nil, err
	}
	return s.bestCallTimes(ctx, resolved)
}

func (s *Service) DailyLeads(ctx context.Context, filter domain.AnalyticsFilter) ([]domain.DailyLeadCount, error) {
	resolved, err := s.resolve(filter)
	if err != nil {
		return nil, err
	}
	return s.dailyLeads(ctx, resolved)
}

// Dashboard monta as três consultas em paralelo sobre a mesma janela resolvida
func (s *Service) Dashboard(ctx context.Context, filter domain.AnalyticsFilter) (*domain.Dashboard, error) {
	resolved, err := s.resolve(filter)
	if err != nil {
		return nil, err
	}

	dashboard := &domain.Dashboard{GeneratedAt: s.now().UTC()}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, err := s.computeStats(gctx, resolved)
		if err != nil {
			return err
		}
		dashboard.Stats = stats
		return nil
	})

	g.Go(func() error {
		bestTimes, err := s.bestCallTimes(gctx, resolved)
		if err != nil {
			return err
		}
		dashboard.BestCallTimes = bestTimes
		return nil
	})

	g.Go(func() error {
		daily, err := s.dailyLeads(gctx, resolved)
		if err != nil {
			return err
		}
		dashboard.DailyLeads = daily
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return dashboard, nil
}

// resolve fixa a janela móvel no início do dia do fuso de análise
func (s *Service) resolve(filter domain.AnalyticsFilter) (domain.ResolvedFilter, error) {
	if err := filter.Validate(); err != nil {
		return domain.ResolvedFilter{}, NewAnalyticsError(ErrInvalidFilter, apiErrors.ErrInvalidRequest, err.Error())
	}
	return filter.Resolve(s.now().In(s.location)), nil
}

func (s *Service) computeStats(ctx context.Context, filter domain.ResolvedFilter) (*domain.LeadStats, error) {
	journeys, err := s.journeys.List(ctx, filter)
	if err != nil {
		logrus.WithField("location_id", filter.Location.String()).WithField("error", err).Error("Erro ao listar jornadas")
		return nil, NewAnalyticsError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar jornadas")
	}

	return aggregateStats(journeys, filter), nil
}

func (s *Service) bestCallTimes(ctx context.Context, filter domain.ResolvedFilter) ([]domain.BestCallTime, error) {
	slots, err := s.slots.List(ctx, filter)
	if err != nil {
		logrus.WithField("location_id", filter.Location.String()).WithField("error", err).Error("Erro ao listar slots de ligação")
		return nil, NewAnalyticsError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar slots de ligação")
	}

	return rankCallTimes(slots), nil
}

func (s *Service) dailyLeads(ctx context.Context, filter domain.ResolvedFilter) ([]domain.DailyLeadCount, error) {
	journeys, err := s.journeys.List(ctx, filter)
	if err != nil {
		logrus.WithField("location_id", filter.Location.String()).WithField("error", err).Error("Erro ao listar jornadas")
		return nil, NewAnalyticsError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar jornadas")
	}

	return countDailyLeads(journeys, s.location), nil
}
