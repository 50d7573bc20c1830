package analytics

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidFilter     = errors.New("filtro de análise inválido")
	ErrDatabaseOperation = errors.New("erro ao consultar dados de análise")
)

// AnalyticsError carrega o código de API junto ao erro base
type AnalyticsError struct {
	Err     error
	Code    string
	Details string
}

func (e *AnalyticsError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *AnalyticsError) Unwrap() error {
	return e.Err
}

func NewAnalyticsError(err error, code string, details string) *AnalyticsError {
	return &AnalyticsError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
