// Package tracking aplica os eventos de ciclo de vida do lead às jornadas e aos slots de ligação
package tracking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/lead-tracker-api/infrastructure/repository"
	"github.com/vfg2006/lead-tracker-api/internal/config"
	"github.com/vfg2006/lead-tracker-api/internal/domain"
	"github.com/vfg2006/lead-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/lead-tracker-api/pkg/metrics"
	"github.com/vfg2006/lead-tracker-api/pkg/utils"
)

type Tracker interface {
	RecordEvent(ctx context.Context, event *domain.LeadEvent) (*domain.ContactJourney, error)
	RecordEvents(ctx context.Context, events []*domain.LeadEvent) ([]*domain.ContactJourney, error)
	GetJourney(ctx context.Context, contactID string) (*domain.ContactJourney, error)
	ListEvents(ctx context.Context, contactID string) ([]*domain.LeadEvent, error)
}

type Service struct {
	repos          *repository.Repositories
	journeys       repository.ContactJourneyRepository
	events         repository.LeadEventRepository
	missingJourney string
	phoneRegion    string
	location       *time.Location
	now            func() time.Time

	contactLocks *keyedMutex
	slotLocks    *keyedMutex
}

type Option func(*Service)

// WithClock substitui o relógio usado para eventos sem timestamp
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(repos *repository.Repositories, cfg *config.Config, opts ...Option) Tracker {
	s := &Service{
		repos:          repos,
		journeys:       repos.Journeys,
		events:         repos.Events,
		missingJourney: cfg.Tracking.MissingJourneyPolicy,
		phoneRegion:    cfg.Tracking.DefaultPhoneRegion,
		location:       cfg.Analytics.Location,
		now:            time.Now,
		contactLocks:   newKeyedMutex(),
		slotLocks:      newKeyedMutex(),
	}

	if s.missingJourney == "" {
		s.missingJourney = config.MissingJourneyCreate
	}
	if s.location == nil {
		s.location = time.UTC
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// RecordEvent aplica um evento normalizado e retorna a jornada resultante
func (s *Service) RecordEvent(ctx context.Context, event *domain.LeadEvent) (*domain.ContactJourney, error) {
	journeys, err := s.RecordEvents(ctx, []*domain.LeadEvent{event})
	if err != nil {
		return nil, err
	}

	if journeys[0] == nil {
		return nil, NewTrackingError(ErrJourneyNotFound, apiErrors.ErrJourneyNotFound, event.ContactID, "")
	}

	return journeys[0], nil
}

// RecordEvents aplica os eventos em ordem numa única transação: se algum falhar nenhum é gravado.
// Eventos descartados pela política de jornada ausente têm jornada nil no resultado.
func (s *Service) RecordEvents(ctx context.Context, events []*domain.LeadEvent) ([]*domain.ContactJourney, error) {
	for _, event := range events {
		if err := s.prepare(event); err != nil {
			eventType := ""
			if event != nil {
				eventType = string(event.Type)
			}
			metrics.RecordEvent(eventType, metrics.OutcomeInvalid)
			logrus.WithField("event_type", eventType).Warn("Evento rejeitado: ", err)
			return nil, err
		}
	}

	if len(events) == 0 {
		return []*domain.ContactJourney{}, nil
	}

	contactIDs := make([]string, 0, len(events))
	slotKeys := make([]string, 0, len(events))
	for _, event := range events {
		contactIDs = append(contactIDs, event.ContactID)
		if event.Type.IsCall() {
			slotKeys = append(slotKeys, s.slotKey(event).String())
		}
	}

	// Contatos antes de slots; os slots ficam bloqueados até o commit
	unlockContacts := s.contactLocks.LockAll(contactIDs)
	defer unlockContacts()
	unlockSlots := s.slotLocks.LockAll(slotKeys)
	defer unlockSlots()

	var (
		results  []*domain.ContactJourney
		outcomes []string
	)

	err := s.repos.RunInTransaction(ctx, func(tx *repository.Repositories) error {
		results = make([]*domain.ContactJourney, len(events))
		outcomes = make([]string, len(events))
		current := make(map[string]*domain.ContactJourney)

		for i, event := range events {
			journey, outcome, err := s.apply(ctx, tx, current, event)
			if err != nil {
				return err
			}
			results[i], outcomes[i] = journey, outcome
		}
		return nil
	})
	if err != nil {
		for _, event := range events {
			metrics.RecordEvent(string(event.Type), metrics.OutcomeFailed)
		}

		var trackingErr *TrackingError
		if errors.As(err, &trackingErr) {
			return nil, trackingErr
		}

		logrus.WithFields(logrus.Fields{
			"contact_id": events[0].ContactID,
			"events":     len(events),
			"error":      err,
		}).Error("Erro ao confirmar transação dos eventos")
		return nil, NewTrackingError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, events[0].ContactID, "Falha ao gravar eventos do contato")
	}

	for i, event := range events {
		metrics.RecordEvent(string(event.Type), outcomes[i])
		if outcomes[i] != metrics.OutcomeDropped {
			s.appendEvent(ctx, eventLogger(event), event)
		}
	}

	return results, nil
}

func eventLogger(event *domain.LeadEvent) *logrus.Entry {
	return logrus.WithFields(logrus.Fields{
		"contact_id":  event.ContactID,
		"location_id": event.LocationID,
		"event_type":  event.Type,
	})
}

// apply atualiza jornada e slot dentro da transação. current guarda as jornadas já
// alteradas nesta chamada para que eventos seguintes do mesmo contato as enxerguem.
func (s *Service) apply(
	ctx context.Context,
	tx *repository.Repositories,
	current map[string]*domain.ContactJourney,
	event *domain.LeadEvent,
) (*domain.ContactJourney, string, error) {
	logger := eventLogger(event)

	journey, loaded := current[event.ContactID]
	if !loaded {
		var err error
		journey, err = tx.Journeys.GetByContactID(ctx, event.ContactID)
		if err != nil {
			logger.WithField("error", err).Error("Erro ao buscar jornada do contato")
			return nil, "", NewTrackingError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, event.ContactID, "Falha ao buscar jornada do contato")
		}
	}

	outcome := metrics.OutcomeApplied
	changed := true

	switch {
	case journey == nil && event.Type == domain.EventTypeLeadCreated:
		journey = domain.NewContactJourney(event.ContactID, event.LocationID, event.Timestamp)
		journey.Source = event.Source
		journey.ApplyProfile(profileFromMetadata(event.Metadata, s.phoneRegion))

	case journey == nil && s.missingJourney == config.MissingJourneyDrop:
		logger.Warn("Evento descartado: contato sem jornada")
		return nil, metrics.OutcomeDropped, nil

	case journey == nil:
		logger.Info("Criando jornada sintetizada para contato desconhecido")
		journey = domain.NewContactJourney(event.ContactID, event.LocationID, event.Timestamp)
		journey.Synthesized = true
		outcome = metrics.OutcomeSynthesized
		applyEvent(journey, event)

	case event.Type == domain.EventTypeLeadCreated && journey.Synthesized:
		// Jornada criada antes do evento de criação: completa só o perfil
		if journey.Source == "" {
			journey.Source = event.Source
		}
		journey.ApplyProfile(profileFromMetadata(event.Metadata, s.phoneRegion))

	case event.Type == domain.EventTypeLeadCreated:
		logger.Debug("Evento de criação repetido, jornada mantida")
		outcome = metrics.OutcomeDuplicate
		changed = false

	default:
		applyEvent(journey, event)
	}

	if changed {
		journey.UpdatedAt = s.now().UTC()
		if err := tx.Journeys.Save(ctx, journey); err != nil {
			logger.WithField("error", err).Error("Erro ao salvar jornada do contato")
			return nil, "", NewTrackingError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, event.ContactID, "Falha ao salvar jornada do contato")
		}
	}
	current[event.ContactID] = journey

	if event.Type.IsCall() {
		if err := s.updateSlot(ctx, tx.Slots, event); err != nil {
			logger.WithField("error", err).Error("Erro ao atualizar slot de ligações")
			return nil, "", NewTrackingError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, event.ContactID, "Falha ao atualizar slot de ligações")
		}
	}

	logger.Debugf("Evento aplicado, status atual: %s", journey.CurrentStatus)

	return journey.Clone(), outcome, nil
}

func (s *Service) GetJourney(ctx context.Context, contactID string) (*domain.ContactJourney, error) {
	contactID = strings.TrimSpace(contactID)
	if contactID == "" {
		return nil, NewTrackingError(ErrMissingContactID, apiErrors.ErrMissingRequiredData, "", "")
	}

	journey, err := s.journeys.GetByContactID(ctx, contactID)
	if err != nil {
		logrus.WithField("contact_id", contactID).WithField("error", err).Error("Erro ao buscar jornada")
		return nil, NewTrackingError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, contactID, "Falha ao buscar jornada do contato")
	}

	if journey == nil {
		return nil, NewTrackingError(ErrJourneyNotFound, apiErrors.ErrJourneyNotFound, contactID, "")
	}

	return journey, nil
}

// ListEvents retorna o log bruto de eventos do contato ainda não removido pela retenção
func (s *Service) ListEvents(ctx context.Context, contactID string) ([]*domain.LeadEvent, error) {
	contactID = strings.TrimSpace(contactID)
	if contactID == "" {
		return nil, NewTrackingError(ErrMissingContactID, apiErrors.ErrMissingRequiredData, "", "")
	}

	events, err := s.events.ListByContactID(ctx, contactID)
	if err != nil {
		logrus.WithField("contact_id", contactID).WithField("error", err).Error("Erro ao listar eventos")
		return nil, NewTrackingError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, contactID, "Falha ao listar eventos do contato")
	}

	return events, nil
}

// prepare valida o evento e completa os campos derivados
func (s *Service) prepare(event *domain.LeadEvent) error {
	if event == nil {
		return NewTrackingError(ErrMissingContactID, apiErrors.ErrMissingRequiredData, "", "evento vazio")
	}

	event.ContactID = strings.TrimSpace(event.ContactID)
	event.LocationID = strings.TrimSpace(event.LocationID)

	if event.ContactID == "" {
		return NewTrackingError(ErrMissingContactID, apiErrors.ErrMissingRequiredData, "", "")
	}
	if event.LocationID == "" {
		return NewTrackingError(ErrMissingLocationID, apiErrors.ErrMissingRequiredData, event.ContactID, "")
	}
	if !event.Type.IsValid() {
		return NewTrackingError(ErrInvalidEventType, apiErrors.ErrInvalidEventType, event.ContactID, string(event.Type))
	}

	now := s.now().UTC()
	if event.Timestamp.IsZero() {
		event.Timestamp = now
	}
	event.Timestamp = event.Timestamp.UTC()

	if event.ReceivedAt.IsZero() {
		event.ReceivedAt = now
	}

	local := event.Timestamp.In(s.location)
	event.DayOfWeek = domain.DayOfWeek(local)
	event.HourOfDay = local.Hour()

	return nil
}

func applyEvent(journey *domain.ContactJourney, event *domain.LeadEvent) {
	switch event.Type {
	case domain.EventTypeCallAttempted:
		journey.RecordCallAttempt(event.Timestamp)
	case domain.EventTypeCallConnected:
		journey.RecordCallConnected(event.Timestamp)
	case domain.EventTypeSessionBooked:
		journey.RecordSessionBooked(event.Timestamp)
	case domain.EventTypePurchase:
		journey.RecordPurchase(event.Timestamp)
	}
}

func (s *Service) slotKey(event *domain.LeadEvent) domain.SlotKey {
	return domain.NewSlotKey(event.LocationID, event.Timestamp, s.location)
}

// updateSlot espera o lock do slot já adquirido por RecordEvents
func (s *Service) updateSlot(ctx context.Context, slots repository.CallSlotRepository, event *domain.LeadEvent) error {
	key := s.slotKey(event)

	slot, err := slots.Get(ctx, key)
	if err != nil {
		return err
	}
	if slot == nil {
		slot = domain.NewCallPerformanceSlot(key)
	}

	switch event.Type {
	case domain.EventTypeCallAttempted:
		slot.RecordAttempt()
	case domain.EventTypeCallConnected:
		var duration float64
		if event.DurationMinutes != nil {
			duration = *event.DurationMinutes
		}
		slot.RecordConnection(duration)
	}

	slot.UpdatedAt = s.now().UTC()
	return slots.Save(ctx, slot)
}

// appendEvent grava o log bruto; falhas aqui não desfazem a jornada já salva
func (s *Service) appendEvent(ctx context.Context, logger *logrus.Entry, event *domain.LeadEvent) {
	if event.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			logger.WithField("error", NewTrackingError(ErrGenerateID, apiErrors.ErrInternalServer, event.ContactID, err.Error())).
				Error("Erro ao gerar ID do evento")
			return
		}
		event.ID = id
	}

	if err := s.events.Append(ctx, event); err != nil {
		logger.WithField("error", err).Error("Erro ao gravar evento no log bruto")
	}
}
