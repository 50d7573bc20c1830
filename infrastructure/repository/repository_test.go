package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/lead-tracker-api/infrastructure/database/sqlite"
	"github.com/vfg2006/lead-tracker-api/infrastructure/migration"
	"github.com/vfg2006/lead-tracker-api/infrastructure/repository"
	"github.com/vfg2006/lead-tracker-api/infrastructure/repository/memory"
	"github.com/vfg2006/lead-tracker-api/internal/domain"
)

var baseTime = time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC)

func openSQLiteRepositories(t *testing.T) *repository.Repositories {
	t.Helper()

	ctx := context.Background()
	conn, err := sqlite.NewConnection(ctx, sqlite.InMemory)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	_, err = migration.Run(ctx, conn)
	require.NoError(t, err)

	return repository.NewSQLRepositories(conn)
}

func backends(t *testing.T) map[string]func(t *testing.T) *repository.Repositories {
	return map[string]func(t *testing.T) *repository.Repositories{
		"sqlite": openSQLiteRepositories,
		"memory": func(t *testing.T) *repository.Repositories { return memory.NewRepositories() },
	}
}

func int64Ptr(v int64) *int64 { return &v }

func TestContactJourneyRepository(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repos := open(t)

			missing, err := repos.Journeys.GetByContactID(ctx, "desconhecido")
			require.NoError(t, err)
			assert.Nil(t, missing)

			journey := domain.NewContactJourney("c-1", "loc-1", baseTime)
			journey.Name = "Ana Silva"
			journey.Phone = "+5511999998888"
			journey.Tags = []string{"vip", "facebook"}
			journey.CustomFields = map[string]any{"campanha": "maio"}
			journey.RecordCallAttempt(baseTime.Add(10 * time.Minute))
			require.NoError(t, repos.Journeys.Save(ctx, journey))

			stored, err := repos.Journeys.GetByContactID(ctx, "c-1")
			require.NoError(t, err)
			require.NotNil(t, stored)
			assert.Equal(t, "loc-1", stored.LocationID)
			assert.Equal(t, "Ana Silva", stored.Name)
			assert.Equal(t, []string{"vip", "facebook"}, stored.Tags)
			assert.Equal(t, "maio", stored.CustomFields["campanha"])
			assert.True(t, baseTime.Equal(stored.CreatedAt))
			require.NotNil(t, stored.FirstCallAttemptedAt)
			assert.True(t, baseTime.Add(10*time.Minute).Equal(*stored.FirstCallAttemptedAt))
			assert.Equal(t, int64Ptr(10), stored.MinutesToFirstCall)
			assert.Nil(t, stored.MinutesToFirstConnection)
			assert.Nil(t, stored.FirstPurchaseAt)
			assert.Equal(t, 1, stored.TotalCallsAttempted)
			assert.Equal(t, domain.LeadStatusContacted, stored.CurrentStatus)
			assert.False(t, stored.Synthesized)

			stored.RecordCallConnected(baseTime.Add(20 * time.Minute))
			stored.Synthesized = true
			require.NoError(t, repos.Journeys.Save(ctx, stored))

			updated, err := repos.Journeys.GetByContactID(ctx, "c-1")
			require.NoError(t, err)
			assert.Equal(t, domain.LeadStatusConnected, updated.CurrentStatus)
			assert.Equal(t, int64Ptr(20), updated.MinutesToFirstConnection)
			assert.Equal(t, 1, updated.TotalCallsConnected)
			assert.True(t, updated.Synthesized)
		})
	}
}

func TestContactJourneyRepository_List(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repos := open(t)

			seed := []*domain.ContactJourney{
				domain.NewContactJourney("c-3", "loc-1", baseTime.AddDate(0, 0, -1)),
				domain.NewContactJourney("c-1", "loc-1", baseTime.AddDate(0, 0, -3)),
				domain.NewContactJourney("c-2", "loc-2", baseTime.AddDate(0, 0, -2)),
				domain.NewContactJourney("c-4", "loc-1", baseTime.AddDate(0, 0, -40)),
			}
			for _, journey := range seed {
				require.NoError(t, repos.Journeys.Save(ctx, journey))
			}

			all, err := repos.Journeys.List(ctx, domain.AnalyticsFilter{
				Location: domain.AllLocations(),
				Window:   domain.RollingDays(30),
			}.Resolve(baseTime))
			require.NoError(t, err)
			assert.Equal(t, []string{"c-1", "c-2", "c-3"}, contactIDs(all))

			byLocation, err := repos.Journeys.List(ctx, domain.AnalyticsFilter{
				Location: domain.ForLocation("loc-1"),
				Window:   domain.RollingDays(30),
			}.Resolve(baseTime))
			require.NoError(t, err)
			assert.Equal(t, []string{"c-1", "c-3"}, contactIDs(byLocation))

			ranged, err := repos.Journeys.List(ctx, domain.AnalyticsFilter{
				Window: domain.Between(baseTime.AddDate(0, 0, -3), baseTime.AddDate(0, 0, -1)),
			}.Resolve(baseTime))
			require.NoError(t, err)
			assert.Equal(t, []string{"c-1", "c-2"}, contactIDs(ranged))

			injection, err := repos.Journeys.List(ctx, domain.AnalyticsFilter{
				Location: domain.ForLocation("loc-1' OR '1'='1"),
				Window:   domain.RollingDays(365),
			}.Resolve(baseTime))
			require.NoError(t, err)
			assert.Empty(t, injection)
		})
	}
}

func contactIDs(journeys []*domain.ContactJourney) []string {
	ids := make([]string, 0, len(journeys))
	for _, journey := range journeys {
		ids = append(ids, journey.ContactID)
	}
	return ids
}

func TestCallSlotRepository(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repos := open(t)

			key := domain.NewSlotKey("loc-1", baseTime.Add(30*time.Minute), time.UTC)

			missing, err := repos.Slots.Get(ctx, key)
			require.NoError(t, err)
			assert.Nil(t, missing)

			slot := domain.NewCallPerformanceSlot(key)
			slot.RecordAttempt()
			slot.RecordAttempt()
			slot.RecordConnection(4)
			require.NoError(t, repos.Slots.Save(ctx, slot))

			stored, err := repos.Slots.Get(ctx, key)
			require.NoError(t, err)
			require.NotNil(t, stored)
			assert.Equal(t, key, stored.Key())
			assert.Equal(t, 2, stored.TotalCalls)
			assert.Equal(t, 1, stored.SuccessfulCalls)
			assert.Equal(t, 4.0, stored.AvgCallDuration)

			stored.RecordConnection(6)
			require.NoError(t, repos.Slots.Save(ctx, stored))

			other := domain.NewCallPerformanceSlot(domain.NewSlotKey("loc-2", baseTime.AddDate(0, 0, -60), time.UTC))
			other.RecordAttempt()
			require.NoError(t, repos.Slots.Save(ctx, other))

			slots, err := repos.Slots.List(ctx, domain.AnalyticsFilter{Window: domain.RollingDays(30)}.Resolve(baseTime))
			require.NoError(t, err)
			require.Len(t, slots, 1)
			assert.Equal(t, 2, slots[0].SuccessfulCalls)
			assert.InDelta(t, 5.0, slots[0].AvgCallDuration, 1e-9)
			assert.Equal(t, 100.0, slots[0].SuccessRate())
		})
	}
}

func TestCallSlotRepository_ListInLocalTimezone(t *testing.T) {
	brt := time.FixedZone("BRT", -3*60*60)

	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repos := open(t)

			slot := domain.NewCallPerformanceSlot(domain.NewSlotKey("loc-1", time.Date(2024, 3, 4, 1, 30, 0, 0, brt), brt))
			slot.RecordAttempt()
			require.NoError(t, repos.Slots.Save(ctx, slot))

			sameDay := domain.AnalyticsFilter{
				Window: domain.Between(time.Date(2024, 3, 4, 0, 0, 0, 0, brt), time.Date(2024, 3, 5, 0, 0, 0, 0, brt)),
			}.Resolve(baseTime)
			slots, err := repos.Slots.List(ctx, sameDay)
			require.NoError(t, err)
			require.Len(t, slots, 1)
			assert.Equal(t, time.Date(2024, 3, 4, 4, 0, 0, 0, time.UTC), slots[0].StartsAt)
			assert.Equal(t, 1, slots[0].Hour)

			previousDay := domain.AnalyticsFilter{
				Window: domain.Between(time.Date(2024, 3, 3, 0, 0, 0, 0, brt), time.Date(2024, 3, 4, 0, 0, 0, 0, brt)),
			}.Resolve(baseTime)
			slots, err = repos.Slots.List(ctx, previousDay)
			require.NoError(t, err)
			assert.Empty(t, slots)
		})
	}
}

func TestLeadEventRepository(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repos := open(t)

			duration := 3.5
			events := []*domain.LeadEvent{
				{
					ID: "e-2", ContactID: "c-1", LocationID: "loc-1", Type: domain.EventTypeCallConnected,
					Timestamp: baseTime.Add(20 * time.Minute), DurationMinutes: &duration,
					Outcome: "answered", DayOfWeek: 6, HourOfDay: 23, ReceivedAt: baseTime,
				},
				{
					ID: "e-1", ContactID: "c-1", LocationID: "loc-1", Type: domain.EventTypeLeadCreated,
					Timestamp: baseTime, Source: "facebook", Metadata: map[string]any{"email": "ana@example.com"},
					ReceivedAt: baseTime.AddDate(0, 0, -100),
				},
				{
					ID: "e-3", ContactID: "c-2", LocationID: "loc-1", Type: domain.EventTypeLeadCreated,
					Timestamp: baseTime, ReceivedAt: baseTime,
				},
			}
			for _, event := range events {
				require.NoError(t, repos.Events.Append(ctx, event))
			}

			stored, err := repos.Events.ListByContactID(ctx, "c-1")
			require.NoError(t, err)
			require.Len(t, stored, 2)
			assert.Equal(t, "e-1", stored[0].ID)
			assert.Equal(t, "facebook", stored[0].Source)
			assert.Equal(t, "ana@example.com", stored[0].Metadata["email"])
			assert.Nil(t, stored[0].DurationMinutes)
			assert.Equal(t, "e-2", stored[1].ID)
			require.NotNil(t, stored[1].DurationMinutes)
			assert.Equal(t, 3.5, *stored[1].DurationMinutes)
			assert.Equal(t, 6, stored[1].DayOfWeek)
			assert.Equal(t, 23, stored[1].HourOfDay)

			deleted, err := repos.Events.DeleteOlderThan(ctx, baseTime.AddDate(0, 0, -90))
			require.NoError(t, err)
			assert.Equal(t, int64(1), deleted)

			remaining, err := repos.Events.ListByContactID(ctx, "c-1")
			require.NoError(t, err)
			require.Len(t, remaining, 1)
			assert.Equal(t, "e-2", remaining[0].ID)
		})
	}
}

func TestRepositories_RunInTransaction(t *testing.T) {
	errRollback := errors.New("falha no meio da transação")

	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repos := open(t)

			key := domain.NewSlotKey("loc-1", baseTime, time.UTC)

			err := repos.RunInTransaction(ctx, func(tx *repository.Repositories) error {
				require.NoError(t, tx.Journeys.Save(ctx, domain.NewContactJourney("c-1", "loc-1", baseTime)))

				slot := domain.NewCallPerformanceSlot(key)
				slot.RecordAttempt()
				require.NoError(t, tx.Slots.Save(ctx, slot))

				inside, err := tx.Journeys.GetByContactID(ctx, "c-1")
				require.NoError(t, err)
				require.NotNil(t, inside)

				return errRollback
			})
			assert.ErrorIs(t, err, errRollback)

			journey, err := repos.Journeys.GetByContactID(ctx, "c-1")
			require.NoError(t, err)
			assert.Nil(t, journey)

			slot, err := repos.Slots.Get(ctx, key)
			require.NoError(t, err)
			assert.Nil(t, slot)

			err = repos.RunInTransaction(ctx, func(tx *repository.Repositories) error {
				return tx.Journeys.Save(ctx, domain.NewContactJourney("c-1", "loc-1", baseTime))
			})
			require.NoError(t, err)

			journey, err = repos.Journeys.GetByContactID(ctx, "c-1")
			require.NoError(t, err)
			require.NotNil(t, journey)
		})
	}
}
