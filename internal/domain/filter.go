package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/vfg2006/lead-tracker-api/pkg/utils"
)

const AllLocationsKeyword = "all"

var (
	ErrNegativeWindow = errors.New("janela de dias não pode ser negativa")
	ErrInvalidRange   = errors.New("data final deve ser posterior à data inicial")
)

// LocationScope é "todas as locations" (valor zero) ou uma location específica
type LocationScope struct {
	locationID string
}

func AllLocations() LocationScope {
	return LocationScope{}
}

func ForLocation(locationID string) LocationScope {
	return LocationScope{locationID: strings.TrimSpace(locationID)}
}

// ParseLocationScope interpreta "all" ou vazio como todas as locations
func ParseLocationScope(raw string) LocationScope {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, AllLocationsKeyword) {
		return AllLocations()
	}
	return ForLocation(raw)
}

func (s LocationScope) IsAll() bool {
	return s.locationID == ""
}

func (s LocationScope) LocationID() string {
	return s.locationID
}

func (s LocationScope) Matches(locationID string) bool {
	return s.IsAll() || s.locationID == locationID
}

func (s LocationScope) String() string {
	if s.IsAll() {
		return AllLocationsKeyword
	}
	return s.locationID
}

type windowKind int

const (
	windowRolling windowKind = iota
	windowRange
)

// TimeWindow é uma janela móvel em dias ou um intervalo explícito [start, end)
type TimeWindow struct {
	kind  windowKind
	days  int
	start time.Time
	end   time.Time
}

func RollingDays(days int) TimeWindow {
	return TimeWindow{kind: windowRolling, days: days}
}

func Between(start, end time.Time) TimeWindow {
	return TimeWindow{kind: windowRange, start: start, end: end}
}

func (w TimeWindow) IsRolling() bool {
	return w.kind == windowRolling
}

func (w TimeWindow) Days() int {
	return w.days
}

func (w TimeWindow) Validate() error {
	switch w.kind {
	case windowRolling:
		if w.days < 0 {
			return ErrNegativeWindow
		}
	case windowRange:
		if !w.end.After(w.start) {
			return ErrInvalidRange
		}
	}
	return nil
}

// Resolve converte a janela em limites absolutos usando o relógio informado.
// A janela móvel começa no início do dia de now menos days dias e não tem fim.
func (w TimeWindow) Resolve(now time.Time) TimeRange {
	if w.kind == windowRange {
		end := w.end.UTC()
		return TimeRange{Start: w.start.UTC(), End: &end}
	}

	days := w.days
	if days < 0 {
		days = 0
	}
	return TimeRange{Start: utils.StartOfDayDaysAgo(now, days).UTC()}
}

// TimeRange é o intervalo semiaberto [Start, End); End nulo significa sem limite
type TimeRange struct {
	Start time.Time
	End   *time.Time
}

func (r TimeRange) Contains(t time.Time) bool {
	if t.Before(r.Start) {
		return false
	}
	return r.End == nil || t.Before(*r.End)
}

type AnalyticsFilter struct {
	Location LocationScope
	Window   TimeWindow
}

func (f AnalyticsFilter) Validate() error {
	return f.Window.Validate()
}

// Resolve fixa a janela contra o relógio para que todas as consultas usem os mesmos limites
func (f AnalyticsFilter) Resolve(now time.Time) ResolvedFilter {
	return ResolvedFilter{
		Location: f.Location,
		Range:    f.Window.Resolve(now),
	}
}

type ResolvedFilter struct {
	Location LocationScope
	Range    TimeRange
}

func (f ResolvedFilter) MatchesJourney(j *ContactJourney) bool {
	return f.Location.Matches(j.LocationID) && f.Range.Contains(j.CreatedAt)
}

func (f ResolvedFilter) MatchesSlot(s *CallPerformanceSlot) bool {
	return f.Location.Matches(s.LocationID) && f.Range.Contains(s.StartsAt)
}
