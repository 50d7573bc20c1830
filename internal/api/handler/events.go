package handler

import (
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/vfg2006/lead-tracker-api/internal/domain"
	"github.com/vfg2006/lead-tracker-api/internal/usecases/tracking"
	"github.com/vfg2006/lead-tracker-api/pkg/apiErrors"
)

var validate = newValidator()

// newValidator reporta os campos pelo nome usado no JSON
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// EventRequest é o evento já normalizado enviado por integradores
type EventRequest struct {
	ContactID       string         `json:"contact_id" validate:"required"`
	LocationID      string         `json:"location_id" validate:"required"`
	EventType       string         `json:"event_type" validate:"required"`
	Timestamp       *time.Time     `json:"timestamp"`
	Source          string         `json:"source"`
	DurationMinutes *float64       `json:"duration_minutes" validate:"omitempty,gte=0"`
	Outcome         string         `json:"outcome"`
	Metadata        map[string]any `json:"metadata"`
}

func (req EventRequest) toEvent() *domain.LeadEvent {
	event := &domain.LeadEvent{
		ContactID:       req.ContactID,
		LocationID:      req.LocationID,
		Type:            domain.EventType(req.EventType),
		Source:          req.Source,
		DurationMinutes: req.DurationMinutes,
		Outcome:         req.Outcome,
		Metadata:        req.Metadata,
	}
	if req.Timestamp != nil {
		event.Timestamp = *req.Timestamp
	}
	return event
}

func RecordEvent(tracker tracking.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req EventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if err := validate.Struct(req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Campos obrigatórios ausentes ou inválidos", validationDetails(err))
			return
		}

		journey, err := tracker.RecordEvent(r.Context(), req.toEvent())
		if err != nil {
			writeUsecaseError(w, err, "Erro ao registrar evento")
			return
		}

		writeJSON(w, http.StatusOK, journey)
	}
}

func GetJourney(tracker tracking.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contactID := httprouter.ParamsFromContext(r.Context()).ByName("contact_id")

		journey, err := tracker.GetJourney(r.Context(), contactID)
		if err != nil {
			writeUsecaseError(w, err, "Erro ao buscar jornada")
			return
		}

		writeJSON(w, http.StatusOK, journey)
	}
}

func ListJourneyEvents(tracker tracking.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contactID := httprouter.ParamsFromContext(r.Context()).ByName("contact_id")

		events, err := tracker.ListEvents(r.Context(), contactID)
		if err != nil {
			writeUsecaseError(w, err, "Erro ao listar eventos")
			return
		}

		if events == nil {
			events = []*domain.LeadEvent{}
		}

		writeJSON(w, http.StatusOK, events)
	}
}

// validationDetails lista os campos rejeitados pelo validator
func validationDetails(err error) []string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil
	}

	fields := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fields = append(fields, fieldErr.Field())
	}
	return fields
}
