package domain

// Tipos de webhook recebidos do CRM
const (
	TypeContactCreate     = "ContactCreate"
	TypeCallAttempted     = "CallAttempted"
	TypeOutboundMessage   = "OutboundMessage"
	TypeAppointmentCreate = "AppointmentCreate"
	TypeOrderCreate       = "OrderCreate"
	TypeInvoicePaid       = "InvoicePaid"
)

const MessageTypeCall = "CALL"

// Webhook reúne os campos usados dos diferentes payloads do CRM
type Webhook struct {
	Type         string        `mapstructure:"type" validate:"required"`
	LocationID   string        `mapstructure:"locationId"`
	ID           string        `mapstructure:"id"`
	ContactID    string        `mapstructure:"contactId"`
	DateAdded    string        `mapstructure:"dateAdded"`
	Timestamp    string        `mapstructure:"timestamp"`
	Source       string        `mapstructure:"source"`
	FirstName    string        `mapstructure:"firstName"`
	LastName     string        `mapstructure:"lastName"`
	Name         string        `mapstructure:"name"`
	Email        string        `mapstructure:"email"`
	Phone        string        `mapstructure:"phone"`
	Tags         []string      `mapstructure:"tags"`
	CustomFields []CustomField `mapstructure:"customFields"`
	MessageType  string        `mapstructure:"messageType"`
	Direction    string        `mapstructure:"direction"`
	CallStatus   string        `mapstructure:"callStatus"`
	CallDuration *float64      `mapstructure:"callDuration"`
	Status       string        `mapstructure:"status"`
	Contact      *Contact      `mapstructure:"contact"`
	Appointment  *Appointment  `mapstructure:"appointment"`
}

type Contact struct {
	ID           string        `mapstructure:"id"`
	FirstName    string        `mapstructure:"firstName"`
	LastName     string        `mapstructure:"lastName"`
	Name         string        `mapstructure:"name"`
	Email        string        `mapstructure:"email"`
	Phone        string        `mapstructure:"phone"`
	Source       string        `mapstructure:"source"`
	Tags         []string      `mapstructure:"tags"`
	CustomFields []CustomField `mapstructure:"customFields"`
	DateAdded    string        `mapstructure:"dateAdded"`
}

type CustomField struct {
	ID    string `mapstructure:"id"`
	Key   string `mapstructure:"key"`
	Value any    `mapstructure:"value"`
}

type Appointment struct {
	ID        string `mapstructure:"id"`
	ContactID string `mapstructure:"contactId"`
	StartTime string `mapstructure:"startTime"`
	DateAdded string `mapstructure:"dateAdded"`
	Status    string `mapstructure:"appointmentStatus"`
}

// Lead é o recorte validado que vira evento normalizado
type Lead struct {
	ContactID  string `validate:"required"`
	LocationID string `validate:"required"`
}
