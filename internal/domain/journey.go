// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import (
	"math"
	"time"
)

type LeadStatus string

const (
	LeadStatusNewLead       LeadStatus = "new_lead"
	LeadStatusContacted     LeadStatus = "contacted"
	LeadStatusConnected     LeadStatus = "connected"
	LeadStatusSessionBooked LeadStatus = "session_booked"
	LeadStatusPurchased     LeadStatus = "purchased"
)

// LeadStatuses lista os status na ordem do funil
var LeadStatuses = []LeadStatus{
	LeadStatusNewLead,
	LeadStatusContacted,
	LeadStatusConnected,
	LeadStatusSessionBooked,
	LeadStatusPurchased,
}

// Rank retorna a posição do status no funil, -1 para valores desconhecidos
func (s LeadStatus) Rank() int {
	for i, status := range LeadStatuses {
		if status == s {
			return i
		}
	}
	return -1
}

func (s LeadStatus) IsValid() bool {
	return s.Rank() >= 0
}

type ContactJourney struct {
	ContactID  string `json:"contact_id"`
	LocationID string `json:"location_id"`

	Name         string         `json:"name,omitempty"`
	Email        string         `json:"email,omitempty"`
	Phone        string         `json:"phone,omitempty"`
	Source       string         `json:"source,omitempty"`
	Tags         []string       `json:"tags,omitempty"`
	CustomFields map[string]any `json:"custom_fields,omitempty"`

	CreatedAt            time.Time  `json:"created_at"`
	FirstCallAttemptedAt *time.Time `json:"first_call_attempted_at"`
	FirstCallConnectedAt *time.Time `json:"first_call_connected_at"`
	FirstSessionBookedAt *time.Time `json:"first_session_booked_at"`
	FirstPurchaseAt      *time.Time `json:"first_purchase_at"`

	MinutesToFirstCall       *int64 `json:"minutes_to_first_call"`
	MinutesToFirstConnection *int64 `json:"minutes_to_first_connection"`
	MinutesToFirstSession    *int64 `json:"minutes_to_first_session"`
	MinutesToPurchase        *int64 `json:"minutes_to_purchase"`

	TotalCallsAttempted int `json:"total_calls_attempted"`
	TotalCallsConnected int `json:"total_calls_connected"`

	CurrentStatus LeadStatus `json:"current_status"`
	Synthesized   bool       `json:"synthesized"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// NewContactJourney cria uma jornada no início do funil
func NewContactJourney(contactID, locationID string, createdAt time.Time) *ContactJourney {
	return &ContactJourney{
		ContactID:     contactID,
		LocationID:    locationID,
		CreatedAt:     createdAt.UTC(),
		CurrentStatus: LeadStatusNewLead,
	}
}

// AdvanceStatus move o status para frente; nunca regride
func (j *ContactJourney) AdvanceStatus(target LeadStatus) bool {
	if target.Rank() <= j.CurrentStatus.Rank() {
		return false
	}
	j.CurrentStatus = target
	return true
}

// RecordCallAttempt conta a tentativa e congela o primeiro marco
func (j *ContactJourney) RecordCallAttempt(at time.Time) {
	j.TotalCallsAttempted++
	j.markMilestone(&j.FirstCallAttemptedAt, &j.MinutesToFirstCall, at)
	j.AdvanceStatus(LeadStatusContacted)
}

func (j *ContactJourney) RecordCallConnected(at time.Time) {
	j.TotalCallsConnected++
	j.markMilestone(&j.FirstCallConnectedAt, &j.MinutesToFirstConnection, at)
	j.AdvanceStatus(LeadStatusConnected)
}

func (j *ContactJourney) RecordSessionBooked(at time.Time) {
	j.markMilestone(&j.FirstSessionBookedAt, &j.MinutesToFirstSession, at)
	j.AdvanceStatus(LeadStatusSessionBooked)
}

func (j *ContactJourney) RecordPurchase(at time.Time) {
	j.markMilestone(&j.FirstPurchaseAt, &j.MinutesToPurchase, at)
	j.AdvanceStatus(LeadStatusPurchased)
}

// markMilestone grava o timestamp e o intervalo apenas na primeira vez
func (j *ContactJourney) markMilestone(reachedAt **time.Time, minutes **int64, at time.Time) {
	if *reachedAt != nil {
		return
	}

	at = at.UTC()
	*reachedAt = &at

	interval := MinutesBetween(j.CreatedAt, at)
	*minutes = &interval
}

// MinutesBetween retorna os minutos inteiros entre from e to, com piso em 0
func MinutesBetween(from, to time.Time) int64 {
	minutes := int64(math.Floor(to.Sub(from).Minutes()))
	if minutes < 0 {
		return 0
	}
	return minutes
}

// ApplyProfile preenche os dados de contato vindos do evento de criação
func (j *ContactJourney) ApplyProfile(profile ContactProfile) {
	j.Name = profile.Name
	j.Email = profile.Email
	j.Phone = profile.Phone
	j.Tags = profile.Tags
	j.CustomFields = profile.CustomFields
	if profile.Source != "" {
		j.Source = profile.Source
	}
}

type ContactProfile struct {
	Name         string         `mapstructure:"name"`
	Email        string         `mapstructure:"email"`
	Phone        string         `mapstructure:"phone"`
	Source       string         `mapstructure:"source"`
	Tags         []string       `mapstructure:"tags"`
	CustomFields map[string]any `mapstructure:"custom_fields"`
}

// Clone devolve uma cópia independente da jornada
func (j *ContactJourney) Clone() *ContactJourney {
	clone := *j
	clone.FirstCallAttemptedAt = cloneTime(j.FirstCallAttemptedAt)
	clone.FirstCallConnectedAt = cloneTime(j.FirstCallConnectedAt)
	clone.FirstSessionBookedAt = cloneTime(j.FirstSessionBookedAt)
	clone.FirstPurchaseAt = cloneTime(j.FirstPurchaseAt)
	clone.MinutesToFirstCall = cloneInt64(j.MinutesToFirstCall)
	clone.MinutesToFirstConnection = cloneInt64(j.MinutesToFirstConnection)
	clone.MinutesToFirstSession = cloneInt64(j.MinutesToFirstSession)
	clone.MinutesToPurchase = cloneInt64(j.MinutesToPurchase)

	if j.Tags != nil {
		clone.Tags = append([]string(nil), j.Tags...)
	}
	if j.CustomFields != nil {
		clone.CustomFields = make(map[string]any, len(j.CustomFields))
		for k, v := range j.CustomFields {
			clone.CustomFields[k] = v
		}
	}

	return &clone
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneInt64(i *int64) *int64 {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}
