package domain

import (
	"fmt"
	"time"
)

// SlotKey identifica um bucket (local, data, hora). Date e Hour são o relógio
// local do fuso de análise; StartsAt é o instante real em que o slot começa.
type SlotKey struct {
	LocationID string
	Date       time.Time
	Hour       int
	StartsAt   time.Time
}

// NewSlotKey trunca o instante para a hora cheia no fuso informado
func NewSlotKey(locationID string, at time.Time, loc *time.Location) SlotKey {
	if loc == nil {
		loc = time.UTC
	}
	local := at.In(loc)
	return SlotKey{
		LocationID: locationID,
		Date:       time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC),
		Hour:       local.Hour(),
		StartsAt:   time.Date(local.Year(), local.Month(), local.Day(), local.Hour(), 0, 0, 0, loc).UTC(),
	}
}

func (k SlotKey) String() string {
	return fmt.Sprintf("%s|%s|%02d", k.LocationID, k.Date.Format(time.DateOnly), k.Hour)
}

type CallPerformanceSlot struct {
	LocationID      string    `json:"location_id"`
	Date            time.Time `json:"date"`
	Hour            int       `json:"hour"`
	StartsAt        time.Time `json:"starts_at"`
	TotalCalls      int       `json:"total_calls"`
	SuccessfulCalls int       `json:"successful_calls"`
	AvgCallDuration float64   `json:"avg_call_duration"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewCallPerformanceSlot(key SlotKey) *CallPerformanceSlot {
	return &CallPerformanceSlot{
		LocationID: key.LocationID,
		Date:       key.Date,
		Hour:       key.Hour,
		StartsAt:   key.StartsAt,
	}
}

func (s *CallPerformanceSlot) Key() SlotKey {
	return SlotKey{LocationID: s.LocationID, Date: s.Date, Hour: s.Hour, StartsAt: s.StartsAt}
}

func (s *CallPerformanceSlot) RecordAttempt() {
	s.TotalCalls++
}

// RecordConnection atualiza a média móvel de duração das ligações atendidas
func (s *CallPerformanceSlot) RecordConnection(durationMinutes float64) {
	if durationMinutes < 0 {
		durationMinutes = 0
	}
	s.SuccessfulCalls++
	s.AvgCallDuration += (durationMinutes - s.AvgCallDuration) / float64(s.SuccessfulCalls)
}

// SuccessRate é sempre derivada dos contadores
func (s *CallPerformanceSlot) SuccessRate() float64 {
	if s.TotalCalls == 0 {
		return 0
	}
	return float64(s.SuccessfulCalls) * 100 / float64(s.TotalCalls)
}
