package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/lead-tracker-api/infrastructure/integrator/ghl"
	"github.com/vfg2006/lead-tracker-api/internal/domain"
	"github.com/vfg2006/lead-tracker-api/internal/usecases/tracking"
	"github.com/vfg2006/lead-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/lead-tracker-api/pkg/metrics"
)

const (
	WebhookStatusProcessed = "processed"
	WebhookStatusIgnored   = "ignored"
	WebhookStatusDropped   = "dropped"
)

type WebhookEventResult struct {
	EventType     domain.EventType  `json:"event_type"`
	ContactID     string            `json:"contact_id"`
	Status        string            `json:"status"`
	CurrentStatus domain.LeadStatus `json:"current_status,omitempty"`
}

type WebhookResponse struct {
	Status string               `json:"status"`
	Events []WebhookEventResult `json:"events,omitempty"`
}

// ReceiveWebhook normaliza o payload do CRM e aplica os eventos derivados de uma vez.
// Eventos de contatos sem jornada descartados pela política respondem como "dropped".
func ReceiveWebhook(integrator ghl.GHLIntegrator, tracker tracking.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		events, err := integrator.NormalizeWebhook(payload)
		if err != nil {
			if errors.Is(err, ghl.ErrUnsupportedType) {
				logrus.WithField("webhook_type", payload["type"]).Debug("Webhook ignorado")
				metrics.RecordEvent("webhook", metrics.OutcomeIgnored)
				writeJSON(w, http.StatusAccepted, WebhookResponse{Status: WebhookStatusIgnored})
				return
			}

			metrics.RecordEvent("webhook", metrics.OutcomeInvalid)
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		journeys, err := tracker.RecordEvents(r.Context(), events)
		if err != nil {
			writeUsecaseError(w, err, "Erro ao processar webhook")
			return
		}

		results := make([]WebhookEventResult, 0, len(events))
		for i, event := range events {
			result := WebhookEventResult{
				EventType: event.Type,
				ContactID: event.ContactID,
				Status:    WebhookStatusProcessed,
			}

			if journeys[i] == nil {
				result.Status = WebhookStatusDropped
			} else {
				result.CurrentStatus = journeys[i].CurrentStatus
			}

			results = append(results, result)
		}

		writeJSON(w, http.StatusOK, WebhookResponse{
			Status: WebhookStatusProcessed,
			Events: results,
		})
	}
}
