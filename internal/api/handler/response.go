package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/lead-tracker-api/internal/usecases/analytics"
	"github.com/vfg2006/lead-tracker-api/internal/usecases/authenticating"
	"github.com/vfg2006/lead-tracker-api/internal/usecases/tracking"
	"github.com/vfg2006/lead-tracker-api/pkg/apiErrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.Error("Erro ao enviar resposta:", err)
	}
}

// writeUsecaseError traduz os erros tipados dos casos de uso para a resposta padronizada
func writeUsecaseError(w http.ResponseWriter, err error, fallbackMessage string) {
	var trackingErr *tracking.TrackingError
	if errors.As(err, &trackingErr) {
		var details any
		if trackingErr.ContactID != "" {
			details = map[string]string{"contact_id": trackingErr.ContactID}
		}
		apiErrors.WriteError(w, trackingErr.Code, trackingErr.Error(), details)
		return
	}

	var analyticsErr *analytics.AnalyticsError
	if errors.As(err, &analyticsErr) {
		apiErrors.WriteError(w, analyticsErr.Code, analyticsErr.Error(), nil)
		return
	}

	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) {
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), nil)
		return
	}

	logrus.WithError(err).Error(fallbackMessage)
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallbackMessage, nil)
}
