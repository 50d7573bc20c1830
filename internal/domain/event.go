package domain

import "time"

type EventType string

const (
	EventTypeLeadCreated   EventType = "lead_created"
	EventTypeCallAttempted EventType = "call_attempted"
	EventTypeCallConnected EventType = "call_connected"
	EventTypeSessionBooked EventType = "session_booked"
	EventTypePurchase      EventType = "purchase"
)

var EventTypes = []EventType{
	EventTypeLeadCreated,
	EventTypeCallAttempted,
	EventTypeCallConnected,
	EventTypeSessionBooked,
	EventTypePurchase,
}

func (t EventType) IsValid() bool {
	for _, eventType := range EventTypes {
		if eventType == t {
			return true
		}
	}
	return false
}

// IsCall indica se o evento alimenta os slots de performance de ligação
func (t EventType) IsCall() bool {
	return t == EventTypeCallAttempted || t == EventTypeCallConnected
}

// LeadEvent é o registro normalizado consumido pelo rastreador
type LeadEvent struct {
	ID              string         `json:"id"`
	ContactID       string         `json:"contact_id"`
	LocationID      string         `json:"location_id"`
	Type            EventType      `json:"event_type"`
	Timestamp       time.Time      `json:"timestamp"`
	Source          string         `json:"source,omitempty"`
	DurationMinutes *float64       `json:"duration_minutes,omitempty"`
	Outcome         string         `json:"outcome,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`
	DayOfWeek       int            `json:"day_of_week"`
	HourOfDay       int            `json:"hour_of_day"`
	ReceivedAt      time.Time      `json:"received_at"`
}

// DayOfWeek segue a convenção segunda=0 ... domingo=6
func DayOfWeek(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

var dayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func DayName(dayOfWeek int) string {
	if dayOfWeek < 0 || dayOfWeek >= len(dayNames) {
		return ""
	}
	return dayNames[dayOfWeek]
}
