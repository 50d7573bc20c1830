// Package ghl converte os webhooks do CRM em eventos normalizados de lead
package ghl

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	ghldomain "github.com/vfg2006/lead-tracker-api/infrastructure/integrator/ghl/domain"
	"github.com/vfg2006/lead-tracker-api/internal/domain"
)

var (
	ErrUnsupportedType = errors.New("tipo de webhook não suportado")
	ErrInvalidPayload  = errors.New("payload de webhook inválido")
)

const defaultSource = "unknown"

// Status de ligação que indicam que o lead atendeu
var connectedCallStatuses = map[string]bool{
	"completed": true,
	"answered":  true,
}

type GHLIntegrator interface {
	NormalizeWebhook(payload map[string]any) ([]*domain.LeadEvent, error)
}

type GHLService struct {
	validate *validator.Validate
}

func New() GHLIntegrator {
	return &GHLService{
		validate: validator.New(),
	}
}

// NormalizeWebhook devolve os eventos derivados do payload; uma ligação atendida gera tentativa e conexão
func (s *GHLService) NormalizeWebhook(payload map[string]any) ([]*domain.LeadEvent, error) {
	webhook, err := decodeWebhook(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	if err := s.validate.Struct(webhook); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	switch webhook.Type {
	case ghldomain.TypeContactCreate:
		return s.contactCreated(webhook)

	case ghldomain.TypeCallAttempted:
		return s.call(webhook, false)

	case ghldomain.TypeOutboundMessage:
		if !strings.EqualFold(webhook.MessageType, ghldomain.MessageTypeCall) {
			return nil, fmt.Errorf("%w: %s/%s", ErrUnsupportedType, webhook.Type, webhook.MessageType)
		}
		return s.call(webhook, connectedCallStatuses[strings.ToLower(webhook.CallStatus)])

	case ghldomain.TypeAppointmentCreate:
		return s.appointmentCreated(webhook)

	case ghldomain.TypeOrderCreate, ghldomain.TypeInvoicePaid:
		event, err := s.newEvent(webhook, webhook.ContactID, domain.EventTypePurchase, webhook.DateAdded, webhook.Timestamp)
		if err != nil {
			return nil, err
		}
		event.Outcome = strings.ToLower(webhook.Status)
		return []*domain.LeadEvent{event}, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, webhook.Type)
	}
}

func decodeWebhook(payload map[string]any) (*ghldomain.Webhook, error) {
	webhook := &ghldomain.Webhook{}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           webhook,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(payload); err != nil {
		return nil, err
	}

	return webhook, nil
}

func (s *GHLService) contactCreated(webhook *ghldomain.Webhook) ([]*domain.LeadEvent, error) {
	contact := webhook.Contact
	if contact == nil {
		contact = &ghldomain.Contact{
			ID:           webhook.ID,
			FirstName:    webhook.FirstName,
			LastName:     webhook.LastName,
			Name:         webhook.Name,
			Email:        webhook.Email,
			Phone:        webhook.Phone,
			Source:       webhook.Source,
			Tags:         webhook.Tags,
			CustomFields: webhook.CustomFields,
			DateAdded:    webhook.DateAdded,
		}
	}

	contactID := contact.ID
	if contactID == "" {
		contactID = webhook.ContactID
	}

	event, err := s.newEvent(webhook, contactID, domain.EventTypeLeadCreated, contact.DateAdded, webhook.DateAdded, webhook.Timestamp)
	if err != nil {
		return nil, err
	}

	if contact.Source != "" {
		event.Source = contact.Source
	}
	event.Metadata = contactMetadata(contact, event.Source)

	return []*domain.LeadEvent{event}, nil
}

func contactMetadata(contact *ghldomain.Contact, source string) map[string]any {
	metadata := map[string]any{"source": source}

	name := strings.TrimSpace(contact.FirstName + " " + contact.LastName)
	if name == "" {
		name = strings.TrimSpace(contact.Name)
	}
	if name != "" {
		metadata["name"] = name
	}
	if contact.Email != "" {
		metadata["email"] = contact.Email
	}
	if contact.Phone != "" {
		metadata["phone"] = contact.Phone
	}
	if len(contact.Tags) > 0 {
		metadata["tags"] = contact.Tags
	}

	if len(contact.CustomFields) > 0 {
		fields := make(map[string]any, len(contact.CustomFields))
		for _, field := range contact.CustomFields {
			key := field.Key
			if key == "" {
				key = field.ID
			}
			if key != "" {
				fields[key] = field.Value
			}
		}
		metadata["custom_fields"] = fields
	}

	return metadata
}

func (s *GHLService) call(webhook *ghldomain.Webhook, connected bool) ([]*domain.LeadEvent, error) {
	attempt, err := s.newEvent(webhook, webhook.ContactID, domain.EventTypeCallAttempted, webhook.DateAdded, webhook.Timestamp)
	if err != nil {
		return nil, err
	}
	attempt.Outcome = strings.ToLower(webhook.CallStatus)

	if !connected {
		return []*domain.LeadEvent{attempt}, nil
	}

	connection := *attempt
	connection.Type = domain.EventTypeCallConnected
	if webhook.CallDuration != nil {
		minutes := *webhook.CallDuration / 60
		connection.DurationMinutes = &minutes
	}

	return []*domain.LeadEvent{attempt, &connection}, nil
}

func (s *GHLService) appointmentCreated(webhook *ghldomain.Webhook) ([]*domain.LeadEvent, error) {
	contactID := webhook.ContactID
	dateAdded := webhook.DateAdded
	outcome := ""

	if webhook.Appointment != nil {
		if webhook.Appointment.ContactID != "" {
			contactID = webhook.Appointment.ContactID
		}
		if webhook.Appointment.DateAdded != "" {
			dateAdded = webhook.Appointment.DateAdded
		}
		outcome = strings.ToLower(webhook.Appointment.Status)
	}

	event, err := s.newEvent(webhook, contactID, domain.EventTypeSessionBooked, dateAdded, webhook.Timestamp)
	if err != nil {
		return nil, err
	}
	event.Outcome = outcome

	return []*domain.LeadEvent{event}, nil
}

// newEvent valida os identificadores e usa o primeiro timestamp interpretável
func (s *GHLService) newEvent(webhook *ghldomain.Webhook, contactID string, eventType domain.EventType, timestamps ...string) (*domain.LeadEvent, error) {
	lead := ghldomain.Lead{
		ContactID:  strings.TrimSpace(contactID),
		LocationID: strings.TrimSpace(webhook.LocationID),
	}

	if err := s.validate.Struct(lead); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	source := webhook.Source
	if source == "" {
		source = defaultSource
	}

	return &domain.LeadEvent{
		ContactID:  lead.ContactID,
		LocationID: lead.LocationID,
		Type:       eventType,
		Timestamp:  firstTimestamp(timestamps...),
		Source:     source,
	}, nil
}

func firstTimestamp(values ...string) time.Time {
	for _, value := range values {
		if t, ok := parseTimestamp(value); ok {
			return t
		}
	}
	return time.Time{}
}

// parseTimestamp aceita RFC3339 ou epoch em segundos/milissegundos
func parseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), true
	}

	epoch, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return time.Time{}, false
	}

	if epoch > 1e12 {
		return time.UnixMilli(epoch).UTC(), true
	}
	return time.Unix(epoch, 0).UTC(), true
}
