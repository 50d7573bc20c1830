package tracking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/lead-tracker-api/infrastructure/database/sqlite"
	"github.com/vfg2006/lead-tracker-api/infrastructure/migration"
	"github.com/vfg2006/lead-tracker-api/infrastructure/repository"
	"github.com/vfg2006/lead-tracker-api/infrastructure/repository/memory"
	"github.com/vfg2006/lead-tracker-api/infrastructure/repository/mocks"
	"github.com/vfg2006/lead-tracker-api/internal/config"
	"github.com/vfg2006/lead-tracker-api/internal/domain"
	"github.com/vfg2006/lead-tracker-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

var baseTime = time.Date(2024, 3, 4, 14, 0, 0, 0, time.UTC) // segunda-feira

func testConfig(policy string) *config.Config {
	return &config.Config{
		Tracking: config.Tracking{
			MissingJourneyPolicy: policy,
			DefaultPhoneRegion:   "US",
		},
		Analytics: config.Analytics{Location: time.UTC},
	}
}

func newTestService(repos *repository.Repositories, policy string) Tracker {
	return NewService(repos, testConfig(policy), WithClock(func() time.Time { return baseTime }))
}

func event(contactID string, eventType domain.EventType, at time.Time) *domain.LeadEvent {
	return &domain.LeadEvent{
		ContactID:  contactID,
		LocationID: "loc-1",
		Type:       eventType,
		Timestamp:  at,
	}
}

func minutes(v float64) *float64 {
	return &v
}

func TestRecordEventFunnel(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()
	svc := newTestService(repos, config.MissingJourneyCreate)

	created := event("c-1", domain.EventTypeLeadCreated, baseTime)
	created.Source = "facebook"
	created.Metadata = map[string]any{
		"first_name": "Ana",
		"last_name":  "Souza",
		"email":      " Ana@Example.com ",
		"phone":      "(415) 555-2671",
		"tags":       []any{"vip", "ads"},
	}

	journey, err := svc.RecordEvent(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, domain.LeadStatusNewLead, journey.CurrentStatus)
	assert.Equal(t, "Ana Souza", journey.Name)
	assert.Equal(t, "ana@example.com", journey.Email)
	assert.Equal(t, "+14155552671", journey.Phone)
	assert.Equal(t, "facebook", journey.Source)
	assert.Equal(t, []string{"vip", "ads"}, journey.Tags)
	assert.False(t, journey.Synthesized)

	journey, err = svc.RecordEvent(ctx, event("c-1", domain.EventTypeCallAttempted, baseTime.Add(10*time.Minute)))
	require.NoError(t, err)
	assert.Equal(t, domain.LeadStatusContacted, journey.CurrentStatus)
	require.NotNil(t, journey.MinutesToFirstCall)
	assert.Equal(t, int64(10), *journey.MinutesToFirstCall)

	journey, err = svc.RecordEvent(ctx, event("c-1", domain.EventTypeCallAttempted, baseTime.Add(25*time.Minute)))
	require.NoError(t, err)
	assert.Equal(t, int64(10), *journey.MinutesToFirstCall)
	assert.Equal(t, 2, journey.TotalCallsAttempted)

	connected := event("c-1", domain.EventTypeCallConnected, baseTime.Add(40*time.Minute))
	connected.DurationMinutes = minutes(4)
	journey, err = svc.RecordEvent(ctx, connected)
	require.NoError(t, err)
	assert.Equal(t, domain.LeadStatusConnected, journey.CurrentStatus)
	assert.Equal(t, int64(40), *journey.MinutesToFirstConnection)
	assert.Equal(t, 1, journey.TotalCallsConnected)

	// Uma nova tentativa não regride o status
	journey, err = svc.RecordEvent(ctx, event("c-1", domain.EventTypeCallAttempted, baseTime.Add(50*time.Minute)))
	require.NoError(t, err)
	assert.Equal(t, domain.LeadStatusConnected, journey.CurrentStatus)
	assert.Equal(t, 3, journey.TotalCallsAttempted)

	journey, err = svc.RecordEvent(ctx, event("c-1", domain.EventTypeSessionBooked, baseTime.Add(2*time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, int64(120), *journey.MinutesToFirstSession)

	journey, err = svc.RecordEvent(ctx, event("c-1", domain.EventTypePurchase, baseTime.Add(48*time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, domain.LeadStatusPurchased, journey.CurrentStatus)
	assert.Equal(t, int64(2880), *journey.MinutesToPurchase)

	stored, err := svc.GetJourney(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, journey.CurrentStatus, stored.CurrentStatus)
	assert.Equal(t, 3, stored.TotalCallsAttempted)

	events, err := svc.ListEvents(ctx, "c-1")
	require.NoError(t, err)
	require.Len(t, events, 7)
	for _, e := range events {
		assert.NotEmpty(t, e.ID)
		assert.Equal(t, baseTime, e.ReceivedAt)
	}
}

func TestRecordEventDuplicateCreation(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()
	svc := newTestService(repos, config.MissingJourneyCreate)

	_, err := svc.RecordEvent(ctx, event("c-1", domain.EventTypeLeadCreated, baseTime))
	require.NoError(t, err)

	again := event("c-1", domain.EventTypeLeadCreated, baseTime.Add(time.Hour))
	again.Metadata = map[string]any{"name": "Outro Nome"}

	journey, err := svc.RecordEvent(ctx, again)
	require.NoError(t, err)
	assert.Equal(t, baseTime, journey.CreatedAt)
	assert.Empty(t, journey.Name)
}

func TestRecordEventMissingJourneyPolicy(t *testing.T) {
	ctx := context.Background()

	t.Run("create sintetiza a jornada", func(t *testing.T) {
		repos := memory.NewRepositories()
		svc := newTestService(repos, config.MissingJourneyCreate)

		journey, err := svc.RecordEvent(ctx, event("c-9", domain.EventTypeCallAttempted, baseTime))
		require.NoError(t, err)
		assert.True(t, journey.Synthesized)
		assert.Equal(t, baseTime, journey.CreatedAt)
		assert.Equal(t, int64(0), *journey.MinutesToFirstCall)
		assert.Equal(t, domain.LeadStatusContacted, journey.CurrentStatus)

		// O evento de criação posterior só completa o perfil
		created := event("c-9", domain.EventTypeLeadCreated, baseTime.Add(time.Hour))
		created.Metadata = map[string]any{"name": "Bruno"}
		journey, err = svc.RecordEvent(ctx, created)
		require.NoError(t, err)
		assert.Equal(t, "Bruno", journey.Name)
		assert.Equal(t, baseTime, journey.CreatedAt)
		assert.Equal(t, domain.LeadStatusContacted, journey.CurrentStatus)
	})

	t.Run("drop descarta o evento", func(t *testing.T) {
		repos := memory.NewRepositories()
		svc := newTestService(repos, config.MissingJourneyDrop)

		journey, err := svc.RecordEvent(ctx, event("c-9", domain.EventTypeCallConnected, baseTime))
		assert.Nil(t, journey)
		assert.ErrorIs(t, err, ErrJourneyNotFound)

		var trackingErr *TrackingError
		require.ErrorAs(t, err, &trackingErr)
		assert.Equal(t, apiErrors.ErrJourneyNotFound, trackingErr.Code)

		stored, err := repos.Journeys.GetByContactID(ctx, "c-9")
		require.NoError(t, err)
		assert.Nil(t, stored)

		slots, err := repos.Slots.List(ctx, domain.ResolvedFilter{})
		require.NoError(t, err)
		assert.Empty(t, slots)

		events, err := repos.Events.ListByContactID(ctx, "c-9")
		require.NoError(t, err)
		assert.Empty(t, events)
	})
}

func TestRecordEventValidation(t *testing.T) {
	tests := []struct {
		name     string
		event    *domain.LeadEvent
		wantErr  error
		wantCode string
	}{
		{
			name:     "evento nulo",
			event:    nil,
			wantErr:  ErrMissingContactID,
			wantCode: apiErrors.ErrMissingRequiredData,
		},
		{
			name:     "sem contact_id",
			event:    &domain.LeadEvent{LocationID: "loc-1", Type: domain.EventTypeLeadCreated},
			wantErr:  ErrMissingContactID,
			wantCode: apiErrors.ErrMissingRequiredData,
		},
		{
			name:     "contact_id em branco",
			event:    &domain.LeadEvent{ContactID: "   ", LocationID: "loc-1", Type: domain.EventTypeLeadCreated},
			wantErr:  ErrMissingContactID,
			wantCode: apiErrors.ErrMissingRequiredData,
		},
		{
			name:     "sem location_id",
			event:    &domain.LeadEvent{ContactID: "c-1", Type: domain.EventTypeLeadCreated},
			wantErr:  ErrMissingLocationID,
			wantCode: apiErrors.ErrMissingRequiredData,
		},
		{
			name:     "tipo desconhecido",
			event:    &domain.LeadEvent{ContactID: "c-1", LocationID: "loc-1", Type: "email_opened"},
			wantErr:  ErrInvalidEventType,
			wantCode: apiErrors.ErrInvalidEventType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos := memory.NewRepositories()
			svc := newTestService(repos, config.MissingJourneyCreate)

			journey, err := svc.RecordEvent(context.Background(), tt.event)
			assert.Nil(t, journey)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsValidationError(err))

			var trackingErr *TrackingError
			require.ErrorAs(t, err, &trackingErr)
			assert.Equal(t, tt.wantCode, trackingErr.Code)
		})
	}
}

func TestRecordEventDefaultsTimestamp(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()
	svc := newTestService(repos, config.MissingJourneyCreate)

	journey, err := svc.RecordEvent(ctx, event("c-1", domain.EventTypeLeadCreated, time.Time{}))
	require.NoError(t, err)
	assert.Equal(t, baseTime, journey.CreatedAt)
}

func TestRecordEventUpdatesSlots(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()
	svc := newTestService(repos, config.MissingJourneyCreate)

	at := baseTime.Add(5 * time.Minute)
	_, err := svc.RecordEvent(ctx, event("c-1", domain.EventTypeCallAttempted, at))
	require.NoError(t, err)
	_, err = svc.RecordEvent(ctx, event("c-2", domain.EventTypeCallAttempted, at))
	require.NoError(t, err)

	first := event("c-1", domain.EventTypeCallConnected, at.Add(10*time.Minute))
	first.DurationMinutes = minutes(4)
	_, err = svc.RecordEvent(ctx, first)
	require.NoError(t, err)

	second := event("c-2", domain.EventTypeCallConnected, at.Add(20*time.Minute))
	second.DurationMinutes = minutes(6)
	_, err = svc.RecordEvent(ctx, second)
	require.NoError(t, err)

	slot, err := repos.Slots.Get(ctx, domain.NewSlotKey("loc-1", baseTime, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, slot)
	assert.Equal(t, 2, slot.TotalCalls)
	assert.Equal(t, 2, slot.SuccessfulCalls)
	assert.InDelta(t, 5.0, slot.AvgCallDuration, 0.0001)
	assert.InDelta(t, 100.0, slot.SuccessRate(), 0.0001)

	// Sem duração conta como zero minutos
	_, err = svc.RecordEvent(ctx, event("c-1", domain.EventTypeCallConnected, at.Add(30*time.Minute)))
	require.NoError(t, err)

	slot, err = repos.Slots.Get(ctx, domain.NewSlotKey("loc-1", baseTime, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 3, slot.SuccessfulCalls)
	assert.InDelta(t, 10.0/3.0, slot.AvgCallDuration, 0.0001)

	// Eventos que não são ligações não tocam os slots
	_, err = svc.RecordEvent(ctx, event("c-1", domain.EventTypeSessionBooked, at.Add(2*time.Hour)))
	require.NoError(t, err)

	slots, err := repos.Slots.List(ctx, domain.ResolvedFilter{})
	require.NoError(t, err)
	assert.Len(t, slots, 1)
}

func TestRecordEventSlotUsesAnalyticsTimezone(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()

	cfg := testConfig(config.MissingJourneyCreate)
	cfg.Analytics.Location = time.FixedZone("BRT", -3*60*60)
	svc := NewService(repos, cfg)

	// 01:30 UTC de terça equivale a 22:30 de segunda em BRT
	at := time.Date(2024, 3, 5, 1, 30, 0, 0, time.UTC)
	_, err := svc.RecordEvent(ctx, event("c-1", domain.EventTypeCallAttempted, at))
	require.NoError(t, err)

	slots, err := repos.Slots.List(ctx, domain.ResolvedFilter{})
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, 22, slots[0].Hour)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), slots[0].Date)
	assert.Equal(t, time.Date(2024, 3, 5, 1, 0, 0, 0, time.UTC), slots[0].StartsAt)

	events, err := svc.ListEvents(ctx, "c-1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 0, events[0].DayOfWeek)
	assert.Equal(t, 22, events[0].HourOfDay)
}

func TestRecordEventConcurrentContact(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()
	svc := newTestService(repos, config.MissingJourneyCreate)

	_, err := svc.RecordEvent(ctx, event("c-1", domain.EventTypeLeadCreated, baseTime))
	require.NoError(t, err)

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			contactID := "c-1"
			if i%2 == 1 {
				contactID = "c-2"
			}
			_, err := svc.RecordEvent(ctx, event(contactID, domain.EventTypeCallAttempted, baseTime.Add(time.Duration(i)*time.Minute)))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	first, err := svc.GetJourney(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, workers/2, first.TotalCallsAttempted)

	second, err := svc.GetJourney(ctx, "c-2")
	require.NoError(t, err)
	assert.Equal(t, workers/2, second.TotalCallsAttempted)

	slot, err := repos.Slots.Get(ctx, domain.NewSlotKey("loc-1", baseTime, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, workers, slot.TotalCalls)

	assert.Equal(t, 0, svc.(*Service).contactLocks.size())
	assert.Equal(t, 0, svc.(*Service).slotLocks.size())
}

func TestRecordEventRepositoryFailures(t *testing.T) {
	dbErr := errors.New("conexão perdida")

	tests := []struct {
		name      string
		setup     func(journeys *mocks.MockContactJourneyRepository, slots *mocks.MockCallSlotRepository, events *mocks.MockLeadEventRepository)
		eventType domain.EventType
		wantErr   bool
	}{
		{
			name: "erro ao buscar jornada",
			setup: func(journeys *mocks.MockContactJourneyRepository, _ *mocks.MockCallSlotRepository, _ *mocks.MockLeadEventRepository) {
				journeys.EXPECT().GetByContactID(gomock.Any(), "c-1").Return(nil, dbErr)
			},
			eventType: domain.EventTypeCallAttempted,
			wantErr:   true,
		},
		{
			name: "erro ao salvar jornada",
			setup: func(journeys *mocks.MockContactJourneyRepository, _ *mocks.MockCallSlotRepository, _ *mocks.MockLeadEventRepository) {
				journeys.EXPECT().GetByContactID(gomock.Any(), "c-1").Return(nil, nil)
				journeys.EXPECT().Save(gomock.Any(), gomock.Any()).Return(dbErr)
			},
			eventType: domain.EventTypeLeadCreated,
			wantErr:   true,
		},
		{
			name: "erro ao salvar slot",
			setup: func(journeys *mocks.MockContactJourneyRepository, slots *mocks.MockCallSlotRepository, _ *mocks.MockLeadEventRepository) {
				journeys.EXPECT().GetByContactID(gomock.Any(), "c-1").
					Return(domain.NewContactJourney("c-1", "loc-1", baseTime), nil)
				journeys.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
				slots.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, nil)
				slots.EXPECT().Save(gomock.Any(), gomock.Any()).Return(dbErr)
			},
			eventType: domain.EventTypeCallAttempted,
			wantErr:   true,
		},
		{
			name: "falha no log bruto não derruba o evento",
			setup: func(journeys *mocks.MockContactJourneyRepository, _ *mocks.MockCallSlotRepository, events *mocks.MockLeadEventRepository) {
				journeys.EXPECT().GetByContactID(gomock.Any(), "c-1").
					Return(domain.NewContactJourney("c-1", "loc-1", baseTime), nil)
				journeys.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
				events.EXPECT().Append(gomock.Any(), gomock.Any()).Return(dbErr)
			},
			eventType: domain.EventTypeSessionBooked,
			wantErr:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			journeys := mocks.NewMockContactJourneyRepository(ctrl)
			slots := mocks.NewMockCallSlotRepository(ctrl)
			events := mocks.NewMockLeadEventRepository(ctrl)
			tt.setup(journeys, slots, events)

			svc := newTestService(&repository.Repositories{Journeys: journeys, Slots: slots, Events: events}, config.MissingJourneyCreate)

			journey, err := svc.RecordEvent(context.Background(), event("c-1", tt.eventType, baseTime.Add(time.Minute)))
			if tt.wantErr {
				assert.Nil(t, journey)
				assert.ErrorIs(t, err, ErrDatabaseOperation)
				assert.False(t, IsValidationError(err))
				return
			}

			require.NoError(t, err)
			assert.NotNil(t, journey)
		})
	}
}

func TestRecordEventsAppliesBatchTogether(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()
	svc := newTestService(repos, config.MissingJourneyCreate)

	_, err := svc.RecordEvent(ctx, event("c-1", domain.EventTypeLeadCreated, baseTime))
	require.NoError(t, err)

	connected := event("c-1", domain.EventTypeCallConnected, baseTime.Add(5*time.Minute))
	connected.DurationMinutes = minutes(3)

	journeys, err := svc.RecordEvents(ctx, []*domain.LeadEvent{
		event("c-1", domain.EventTypeCallAttempted, baseTime.Add(5*time.Minute)),
		connected,
	})
	require.NoError(t, err)
	require.Len(t, journeys, 2)
	assert.Equal(t, domain.LeadStatusContacted, journeys[0].CurrentStatus)
	assert.Equal(t, domain.LeadStatusConnected, journeys[1].CurrentStatus)

	slot, err := repos.Slots.Get(ctx, domain.NewSlotKey("loc-1", baseTime, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, slot)
	assert.Equal(t, 1, slot.TotalCalls)
	assert.Equal(t, 1, slot.SuccessfulCalls)
	assert.Equal(t, 100.0, slot.SuccessRate())

	events, err := svc.ListEvents(ctx, "c-1")
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestRecordEventsDropPolicy(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()
	svc := newTestService(repos, config.MissingJourneyDrop)

	journeys, err := svc.RecordEvents(ctx, []*domain.LeadEvent{
		event("c-9", domain.EventTypeCallAttempted, baseTime),
		event("c-9", domain.EventTypeCallConnected, baseTime),
	})
	require.NoError(t, err)
	assert.Equal(t, []*domain.ContactJourney{nil, nil}, journeys)

	slots, err := repos.Slots.List(ctx, domain.ResolvedFilter{})
	require.NoError(t, err)
	assert.Empty(t, slots)

	events, err := svc.ListEvents(ctx, "c-9")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestRecordEventRetryAfterSlotFailureIsConsistent(t *testing.T) {
	ctx := context.Background()

	conn, err := sqlite.NewConnection(ctx, sqlite.InMemory)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	_, err = migration.Run(ctx, conn)
	require.NoError(t, err)

	repos := repository.NewSQLRepositories(conn)
	svc := newTestService(repos, config.MissingJourneyCreate)

	_, err = svc.RecordEvent(ctx, event("c-1", domain.EventTypeLeadCreated, baseTime))
	require.NoError(t, err)

	// Tabela de slots indisponível durante a primeira entrega
	_, err = conn.ExecContext(ctx, "ALTER TABLE call_performance_slots RENAME TO call_performance_slots_offline")
	require.NoError(t, err)

	attempt := event("c-1", domain.EventTypeCallAttempted, baseTime.Add(10*time.Minute))
	_, err = svc.RecordEvent(ctx, attempt)
	assert.ErrorIs(t, err, ErrDatabaseOperation)

	journey, err := svc.GetJourney(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, 0, journey.TotalCallsAttempted)
	assert.Nil(t, journey.FirstCallAttemptedAt)

	_, err = conn.ExecContext(ctx, "ALTER TABLE call_performance_slots_offline RENAME TO call_performance_slots")
	require.NoError(t, err)

	// Reentrega do mesmo evento
	_, err = svc.RecordEvent(ctx, event("c-1", domain.EventTypeCallAttempted, baseTime.Add(10*time.Minute)))
	require.NoError(t, err)

	journey, err = svc.GetJourney(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, 1, journey.TotalCallsAttempted)

	slot, err := repos.Slots.Get(ctx, domain.NewSlotKey("loc-1", baseTime, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, slot)
	assert.Equal(t, journey.TotalCallsAttempted, slot.TotalCalls)
}

func TestRecordEventCommitFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transactor := mocks.NewMockTransactor(ctrl)
	events := mocks.NewMockLeadEventRepository(ctrl)

	transactor.EXPECT().RunInTransaction(gomock.Any(), gomock.Any()).Return(errors.New("commit recusado"))
	events.EXPECT().Append(gomock.Any(), gomock.Any()).Times(0)

	svc := newTestService(&repository.Repositories{
		Journeys:   mocks.NewMockContactJourneyRepository(ctrl),
		Slots:      mocks.NewMockCallSlotRepository(ctrl),
		Events:     events,
		Transactor: transactor,
	}, config.MissingJourneyCreate)

	journey, err := svc.RecordEvent(context.Background(), event("c-1", domain.EventTypeCallAttempted, baseTime))
	assert.Nil(t, journey)
	assert.ErrorIs(t, err, ErrDatabaseOperation)

	var trackingErr *TrackingError
	require.ErrorAs(t, err, &trackingErr)
	assert.Equal(t, apiErrors.ErrDatabaseOperation, trackingErr.Code)
}

func TestKeyedMutexLockAll(t *testing.T) {
	locks := newKeyedMutex()

	unlock := locks.LockAll([]string{"b", "a", "b"})
	assert.Equal(t, 2, locks.size())

	done := make(chan struct{})
	go func() {
		release := locks.LockAll([]string{"a", "c"})
		release()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("LockAll não deveria adquirir uma chave já bloqueada")
	case <-time.After(20 * time.Millisecond):
	}

	unlock()
	<-done
	assert.Equal(t, 0, locks.size())
}

func TestGetJourney(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()
	svc := newTestService(repos, config.MissingJourneyCreate)

	_, err := svc.GetJourney(ctx, "")
	assert.ErrorIs(t, err, ErrMissingContactID)

	_, err = svc.GetJourney(ctx, "nao-existe")
	assert.ErrorIs(t, err, ErrJourneyNotFound)

	_, err = svc.RecordEvent(ctx, event("c-1", domain.EventTypeLeadCreated, baseTime))
	require.NoError(t, err)

	journey, err := svc.GetJourney(ctx, " c-1 ")
	require.NoError(t, err)
	assert.Equal(t, "c-1", journey.ContactID)
}

func TestKeyedMutexReleasesEntries(t *testing.T) {
	locks := newKeyedMutex()

	unlockA := locks.Lock("a")
	unlockB := locks.Lock("b")
	assert.Equal(t, 2, locks.size())

	done := make(chan struct{})
	go func() {
		unlock := locks.Lock("a")
		unlock()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("segundo Lock da mesma chave não deveria prosseguir")
	case <-time.After(20 * time.Millisecond):
	}

	unlockA()
	<-done
	unlockB()

	assert.Equal(t, 0, locks.size())
}

func TestProfileFromMetadata(t *testing.T) {
	tests := []struct {
		name     string
		metadata map[string]any
		expected domain.ContactProfile
	}{
		{
			name:     "sem metadata",
			metadata: nil,
			expected: domain.ContactProfile{},
		},
		{
			name: "campos diretos",
			metadata: map[string]any{
				"name":          "  Carla Dias ",
				"email":         "CARLA@EXAMPLE.COM",
				"phone":         "+55 11 98765-4321",
				"source":        "google",
				"custom_fields": map[string]any{"plano": "anual"},
			},
			expected: domain.ContactProfile{
				Name:         "Carla Dias",
				Email:        "carla@example.com",
				Phone:        "+5511987654321",
				Source:       "google",
				CustomFields: map[string]any{"plano": "anual"},
			},
		},
		{
			name: "nome composto e tipos fracos",
			metadata: map[string]any{
				"first_name": "Davi",
				"last_name":  "",
				"phone":      4155552671,
			},
			expected: domain.ContactProfile{
				Name:  "Davi",
				Phone: "+14155552671",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, profileFromMetadata(tt.metadata, "US"))
		})
	}
}
