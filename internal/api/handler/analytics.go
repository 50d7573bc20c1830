package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/vfg2006/lead-tracker-api/internal/domain"
	"github.com/vfg2006/lead-tracker-api/internal/usecases/analytics"
	"github.com/vfg2006/lead-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/lead-tracker-api/pkg/utils"
)

// AnalyticsQuery define como os parâmetros de consulta viram filtros
type AnalyticsQuery struct {
	DefaultDays int
	Location    *time.Location
}

// parseFilter lê location, days e start_date/end_date.
// end_date é inclusivo e vira o limite exclusivo do dia seguinte.
func (q AnalyticsQuery) parseFilter(r *http.Request) (domain.AnalyticsFilter, error) {
	query := r.URL.Query()

	filter := domain.AnalyticsFilter{
		Location: domain.ParseLocationScope(query.Get("location")),
		Window:   domain.RollingDays(q.DefaultDays),
	}

	startDate := strings.TrimSpace(query.Get("start_date"))
	endDate := strings.TrimSpace(query.Get("end_date"))

	if startDate != "" || endDate != "" {
		if startDate == "" || endDate == "" {
			return filter, fmt.Errorf("start_date e end_date devem ser informados juntos")
		}

		start, err := q.parseDay(startDate)
		if err != nil {
			return filter, fmt.Errorf("start_date inválido: %w", err)
		}
		end, err := q.parseDay(endDate)
		if err != nil {
			return filter, fmt.Errorf("end_date inválido: %w", err)
		}

		filter.Window = domain.Between(start, end.AddDate(0, 0, 1))
		return filter, nil
	}

	if rawDays := strings.TrimSpace(query.Get("days")); rawDays != "" {
		days, err := strconv.Atoi(rawDays)
		if err != nil {
			return filter, fmt.Errorf("days inválido: %s", rawDays)
		}
		filter.Window = domain.RollingDays(days)
	}

	return filter, nil
}

func (q AnalyticsQuery) parseDay(raw string) (time.Time, error) {
	date, err := utils.ParseDate(raw)
	if err != nil {
		return time.Time{}, err
	}

	location := q.Location
	if location == nil {
		location = time.UTC
	}
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, location), nil
}

func GetStats(service analytics.Analyzer, query AnalyticsQuery) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := query.parseFilter(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		stats, err := service.ComputeStats(r.Context(), filter)
		if err != nil {
			writeUsecaseError(w, err, "Erro ao calcular estatísticas")
			return
		}

		writeJSON(w, http.StatusOK, stats)
	}
}

func GetBestCallTimes(service analytics.Analyzer, query AnalyticsQuery) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := query.parseFilter(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		bestTimes, err := service.BestCallTimes(r.Context(), filter)
		if err != nil {
			writeUsecaseError(w, err, "Erro ao calcular melhores horários")
			return
		}

		if bestTimes == nil {
			bestTimes = []domain.BestCallTime{}
		}

		writeJSON(w, http.StatusOK, bestTimes)
	}
}

func GetDailyLeads(service analytics.Analyzer, query AnalyticsQuery) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := query.parseFilter(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		daily, err := service.DailyLeads(r.Context(), filter)
		if err != nil {
			writeUsecaseError(w, err, "Erro ao contar leads por dia")
			return
		}

		if daily == nil {
			daily = []domain.DailyLeadCount{}
		}

		writeJSON(w, http.StatusOK, daily)
	}
}

func GetDashboard(service analytics.Analyzer, query AnalyticsQuery) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := query.parseFilter(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		dashboard, err := service.Dashboard(r.Context(), filter)
		if err != nil {
			writeUsecaseError(w, err, "Erro ao montar dashboard")
			return
		}

		writeJSON(w, http.StatusOK, dashboard)
	}
}
