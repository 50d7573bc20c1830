package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/lead-tracker-api/infrastructure/repository"
	"github.com/vfg2006/lead-tracker-api/internal/config"
	"github.com/vfg2006/lead-tracker-api/pkg/metrics"
)

// CronJobTypeEventRetention identifica a rotina de retenção na API de cron
const CronJobTypeEventRetention = "event-retention"

// Job é uma rotina agendada que também pode ser disparada manualmente
type Job interface {
	TriggerManualSync()
	GetStatus() map[string]any
}

// EventRetentionConfig representa a configuração da limpeza do log bruto de eventos
type EventRetentionConfig struct {
	CronSchedule string
	Days         int
	Enabled      bool
}

// EventRetentionService remove periodicamente os eventos brutos antigos.
// Jornadas e slots de ligação nunca são afetados.
type EventRetentionService struct {
	scheduler *gocron.Scheduler
	config    EventRetentionConfig
	eventRepo repository.LeadEventRepository
	now       func() time.Time

	syncRunning        bool
	syncMutex          sync.Mutex
	lastRunStartedAt   time.Time
	lastRunCompletedAt time.Time
	lastDeleted        int64
	lastError          string
}

// NewEventRetentionService cria o serviço de retenção com base na configuração global
func NewEventRetentionService(eventRepo repository.LeadEventRepository, appConfig *config.Config) *EventRetentionService {
	retentionConfig := EventRetentionConfig{
		CronSchedule: appConfig.EventRetention.CronSchedule,
		Days:         appConfig.EventRetention.Days,
		Enabled:      appConfig.EventRetention.Enabled,
	}

	location := appConfig.Analytics.Location
	if location == nil {
		location = time.UTC
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":  retentionConfig.CronSchedule,
		"retention_days": retentionConfig.Days,
		"enabled":        retentionConfig.Enabled,
	}).Info("Configuração da retenção de eventos carregada")

	return &EventRetentionService{
		scheduler: gocron.NewScheduler(location),
		config:    retentionConfig,
		eventRepo: eventRepo,
		now:       time.Now,
	}
}

// Start inicia o agendador
func (s *EventRetentionService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Retenção de eventos desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de retenção de eventos")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runRetention(context.Background())
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar retenção de eventos: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de retenção de eventos")
		s.scheduler.Stop()
	}()

	return nil
}

// runRetention apaga os eventos recebidos antes do limite configurado
func (s *EventRetentionService) runRetention(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Retenção de eventos já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	startTime := s.now()
	s.lastRunStartedAt = startTime
	s.syncMutex.Unlock()

	deleted, err := s.deleteExpired(ctx, startTime)

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.syncRunning = false
	s.lastRunCompletedAt = s.now()
	s.lastDeleted = deleted
	s.lastError = ""
	if err != nil {
		s.lastError = err.Error()
	}
}

func (s *EventRetentionService) deleteExpired(ctx context.Context, now time.Time) (int64, error) {
	if s.config.Days <= 0 {
		logrus.WithField("retention_days", s.config.Days).Warn("Janela de retenção não positiva, nenhum evento removido")
		return 0, nil
	}

	cutoff := now.AddDate(0, 0, -s.config.Days).UTC()

	deleted, err := s.eventRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"job":    CronJobTypeEventRetention,
			"cutoff": cutoff.Format(time.RFC3339),
			"error":  err.Error(),
		}).Error("Erro ao remover eventos antigos")
		return 0, err
	}

	metrics.RetentionDeletedTotal.Add(float64(deleted))

	logrus.WithFields(logrus.Fields{
		"job":      CronJobTypeEventRetention,
		"cutoff":   cutoff.Format(time.RFC3339),
		"deleted":  deleted,
		"duration": s.now().Sub(now).String(),
	}).Info("Retenção de eventos concluída")

	return deleted, nil
}

// TriggerManualSync inicia manualmente uma execução da retenção
func (s *EventRetentionService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Retenção de eventos já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando retenção manual de eventos")
	go s.runRetention(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *EventRetentionService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"enabled":               s.config.Enabled,
		"cron":                  s.config.CronSchedule,
		"retention_days":        s.config.Days,
		"running":               s.syncRunning,
		"last_run_started_at":   s.lastRunStartedAt,
		"last_run_completed_at": s.lastRunCompletedAt,
		"last_deleted":          s.lastDeleted,
		"last_error":            s.lastError,
	}
}
