package tracking

import (
	"errors"
	"fmt"
)

// Erros específicos para o rastreamento de jornadas
var (
	// Erros de validação
	ErrMissingContactID  = errors.New("contact_id é obrigatório")
	ErrMissingLocationID = errors.New("location_id é obrigatório")
	ErrInvalidEventType  = errors.New("tipo de evento inválido")

	// Jornada inexistente para um evento que não é de criação
	ErrJourneyNotFound = errors.New("jornada do contato não encontrada")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
	ErrGenerateID        = errors.New("erro ao gerar ID do evento")
)

// TrackingError é um erro com contexto adicional para o rastreamento
type TrackingError struct {
	Err       error  // Erro base
	Code      string // Código de erro para API
	ContactID string // Contato envolvido (quando aplicável)
	Details   string // Detalhes adicionais
}

// Error implementa a interface error
func (e *TrackingError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *TrackingError) Unwrap() error {
	return e.Err
}

func NewTrackingError(err error, code string, contactID string, details string) *TrackingError {
	return &TrackingError{
		Err:       err,
		Code:      code,
		ContactID: contactID,
		Details:   details,
	}
}

// IsValidationError indica erros causados pelo conteúdo do evento
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingContactID) ||
		errors.Is(err, ErrMissingLocationID) ||
		errors.Is(err, ErrInvalidEventType)
}
