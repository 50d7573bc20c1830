package domain

import "time"

type LeadStats struct {
	Location    string     `json:"location"`
	WindowStart time.Time  `json:"window_start"`
	WindowEnd   *time.Time `json:"window_end"`

	TotalLeads      int `json:"total_leads"`
	LeadsCalled     int `json:"leads_called"`
	LeadsConnected  int `json:"leads_connected"`
	LeadsToSession  int `json:"leads_to_session"`
	LeadsToPurchase int `json:"leads_to_purchase"`

	AvgMinutesToFirstCall       float64 `json:"avg_minutes_to_first_call"`
	AvgHoursToFirstCall         float64 `json:"avg_hours_to_first_call"`
	AvgMinutesToFirstConnection float64 `json:"avg_minutes_to_first_connection"`
	AvgHoursToFirstConnection   float64 `json:"avg_hours_to_first_connection"`
	AvgMinutesToFirstSession    float64 `json:"avg_minutes_to_first_session"`
	AvgHoursToFirstSession      float64 `json:"avg_hours_to_first_session"`
	AvgMinutesToPurchase        float64 `json:"avg_minutes_to_purchase"`
	AvgHoursToPurchase          float64 `json:"avg_hours_to_purchase"`
	AvgResponseTimeMinutes      float64 `json:"avg_response_time_minutes"`

	StatusBreakdown map[LeadStatus]int `json:"status_breakdown"`

	ConnectionRate float64 `json:"connection_rate"`
	SessionRate    float64 `json:"session_rate"`
	ConversionRate float64 `json:"conversion_rate"`
}

type BestCallTime struct {
	Hour            int     `json:"hour"`
	DayName         string  `json:"day_name"`
	DayOfWeek       int     `json:"day_of_week"`
	TotalCalls      int     `json:"total_calls"`
	SuccessfulCalls int     `json:"successful_calls"`
	SuccessRate     float64 `json:"success_rate"`
	AvgDuration     float64 `json:"avg_duration"`
}

type DailyLeadCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type Dashboard struct {
	Stats         *LeadStats       `json:"stats"`
	BestCallTimes []BestCallTime   `json:"best_call_times"`
	DailyLeads    []DailyLeadCount `json:"daily_leads"`
	GeneratedAt   time.Time        `json:"generated_at"`
}
