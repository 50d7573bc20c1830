package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocationScope(t *testing.T) {
	assert.True(t, ParseLocationScope("").IsAll())
	assert.True(t, ParseLocationScope("ALL").IsAll())
	assert.True(t, ForLocation("  ").IsAll())

	scope := ParseLocationScope(" loc-1 ")
	assert.False(t, scope.IsAll())
	assert.Equal(t, "loc-1", scope.LocationID())
	assert.True(t, scope.Matches("loc-1"))
	assert.False(t, scope.Matches("loc-2"))
	assert.True(t, AllLocations().Matches("loc-2"))
	assert.Equal(t, "all", AllLocations().String())
}

func TestTimeWindow_Resolve(t *testing.T) {
	now := time.Date(2024, 5, 10, 15, 45, 0, 0, time.UTC)

	rolling := RollingDays(30).Resolve(now)
	assert.Equal(t, time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC), rolling.Start)
	assert.Nil(t, rolling.End)
	assert.True(t, rolling.Contains(now.Add(24*time.Hour)))
	assert.False(t, rolling.Contains(rolling.Start.Add(-time.Nanosecond)))
	assert.True(t, rolling.Contains(rolling.Start))

	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	explicit := Between(start, end).Resolve(now)
	require.NotNil(t, explicit.End)
	assert.True(t, explicit.Contains(start))
	assert.False(t, explicit.Contains(end))
}

func TestTimeWindow_Validate(t *testing.T) {
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, RollingDays(0).Validate())
	assert.ErrorIs(t, RollingDays(-1).Validate(), ErrNegativeWindow)
	assert.NoError(t, Between(start, start.Add(time.Hour)).Validate())
	assert.ErrorIs(t, Between(start, start).Validate(), ErrInvalidRange)
}

func TestResolvedFilter_Matches(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	filter := AnalyticsFilter{Location: ForLocation("loc-1"), Window: RollingDays(7)}.Resolve(now)

	inside := NewContactJourney("c-1", "loc-1", now.AddDate(0, 0, -2))
	otherLocation := NewContactJourney("c-2", "loc-2", now.AddDate(0, 0, -2))
	tooOld := NewContactJourney("c-3", "loc-1", now.AddDate(0, 0, -8))

	assert.True(t, filter.MatchesJourney(inside))
	assert.False(t, filter.MatchesJourney(otherLocation))
	assert.False(t, filter.MatchesJourney(tooOld))

	slot := NewCallPerformanceSlot(NewSlotKey("loc-1", now.AddDate(0, 0, -1), time.UTC))
	oldSlot := NewCallPerformanceSlot(NewSlotKey("loc-1", now.AddDate(0, 0, -30), time.UTC))
	assert.True(t, filter.MatchesSlot(slot))
	assert.False(t, filter.MatchesSlot(oldSlot))
}
