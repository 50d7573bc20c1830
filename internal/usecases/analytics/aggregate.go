package analytics

import (
	"sort"
	"time"

	"github.com/vfg2006/lead-tracker-api/internal/domain"
	"github.com/vfg2006/lead-tracker-api/pkg/utils"
)

// intervalAverage acumula apenas as jornadas que já atingiram o marco
type intervalAverage struct {
	sum   int64
	count int
}

func (a *intervalAverage) add(minutes *int64) {
	if minutes == nil {
		return
	}
	a.sum += *minutes
	a.count++
}

func (a intervalAverage) minutes() float64 {
	return utils.RoundWithTwoDecimalPlace(utils.SafeDivide(float64(a.sum), a.count))
}

func (a intervalAverage) hours() float64 {
	return utils.RoundWithTwoDecimalPlace(utils.SafeDivide(float64(a.sum), a.count) / 60)
}

func aggregateStats(journeys []*domain.ContactJourney, filter domain.ResolvedFilter) *domain.LeadStats {
	stats := &domain.LeadStats{
		Location:        filter.Location.String(),
		WindowStart:     filter.Range.Start,
		WindowEnd:       filter.Range.End,
		StatusBreakdown: make(map[domain.LeadStatus]int, len(domain.LeadStatuses)),
	}

	for _, status := range domain.LeadStatuses {
		stats.StatusBreakdown[status] = 0
	}

	var toCall, toConnection, toSession, toPurchase intervalAverage

	for _, journey := range journeys {
		stats.TotalLeads++
		stats.StatusBreakdown[journey.CurrentStatus]++

		if journey.FirstCallAttemptedAt != nil {
			stats.LeadsCalled++
		}
		if journey.FirstCallConnectedAt != nil {
			stats.LeadsConnected++
		}
		if journey.FirstSessionBookedAt != nil {
			stats.LeadsToSession++
		}
		if journey.FirstPurchaseAt != nil {
			stats.LeadsToPurchase++
		}

		toCall.add(journey.MinutesToFirstCall)
		toConnection.add(journey.MinutesToFirstConnection)
		toSession.add(journey.MinutesToFirstSession)
		toPurchase.add(journey.MinutesToPurchase)
	}

	stats.AvgMinutesToFirstCall = toCall.minutes()
	stats.AvgHoursToFirstCall = toCall.hours()
	stats.AvgMinutesToFirstConnection = toConnection.minutes()
	stats.AvgHoursToFirstConnection = toConnection.hours()
	stats.AvgMinutesToFirstSession = toSession.minutes()
	stats.AvgHoursToFirstSession = toSession.hours()
	stats.AvgMinutesToPurchase = toPurchase.minutes()
	stats.AvgHoursToPurchase = toPurchase.hours()
	stats.AvgResponseTimeMinutes = stats.AvgMinutesToFirstCall

	stats.ConnectionRate = utils.Percentage(stats.LeadsConnected, stats.LeadsCalled)
	stats.SessionRate = utils.Percentage(stats.LeadsToSession, stats.TotalLeads)
	stats.ConversionRate = utils.Percentage(stats.LeadsToPurchase, stats.TotalLeads)

	return stats
}

type callTimeKey struct {
	dayOfWeek int
	hour      int
}

type callTimeGroup struct {
	totalCalls      int
	successfulCalls int
	rateSum         float64
	durationSum     float64
	slots           int
}

func rankCallTimes(slots []*domain.CallPerformanceSlot) []domain.BestCallTime {
	groups := make(map[callTimeKey]*callTimeGroup)

	for _, slot := range slots {
		key := callTimeKey{dayOfWeek: domain.DayOfWeek(slot.Date), hour: slot.Hour}
		group, ok := groups[key]
		if !ok {
			group = &callTimeGroup{}
			groups[key] = group
		}

		group.totalCalls += slot.TotalCalls
		group.successfulCalls += slot.SuccessfulCalls
		group.rateSum += slot.SuccessRate()
		group.durationSum += slot.AvgCallDuration
		group.slots++
	}

	ranking := make([]domain.BestCallTime, 0, len(groups))
	for key, group := range groups {
		if group.totalCalls == 0 {
			continue
		}

		ranking = append(ranking, domain.BestCallTime{
			Hour:            key.hour,
			DayName:         domain.DayName(key.dayOfWeek),
			DayOfWeek:       key.dayOfWeek,
			TotalCalls:      group.totalCalls,
			SuccessfulCalls: group.successfulCalls,
			SuccessRate:     utils.RoundWithTwoDecimalPlace(utils.SafeDivide(group.rateSum, group.slots)),
			AvgDuration:     utils.RoundWithTwoDecimalPlace(utils.SafeDivide(group.durationSum, group.slots)),
		})
	}

	sort.Slice(ranking, func(i, j int) bool {
		a, b := ranking[i], ranking[j]
		if a.SuccessRate != b.SuccessRate {
			return a.SuccessRate > b.SuccessRate
		}
		if a.TotalCalls != b.TotalCalls {
			return a.TotalCalls > b.TotalCalls
		}
		if a.DayOfWeek != b.DayOfWeek {
			return a.DayOfWeek < b.DayOfWeek
		}
		return a.Hour < b.Hour
	})

	return ranking
}

// countDailyLeads agrupa as jornadas pelo dia de criação no fuso de análise
func countDailyLeads(journeys []*domain.ContactJourney, loc *time.Location) []domain.DailyLeadCount {
	counts := make(map[string]int)
	for _, journey := range journeys {
		counts[journey.CreatedAt.In(loc).Format(time.DateOnly)]++
	}

	daily := make([]domain.DailyLeadCount, 0, len(counts))
	for date, count := range counts {
		daily = append(daily, domain.DailyLeadCount{Date: date, Count: count})
	}

	sort.Slice(daily, func(i, j int) bool {
		return daily[i].Date < daily[j].Date
	})

	return daily
}
