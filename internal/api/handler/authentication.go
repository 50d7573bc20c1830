package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/lead-tracker-api/internal/domain"
	"github.com/vfg2006/lead-tracker-api/internal/usecases/authenticating"
	"github.com/vfg2006/lead-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/lead-tracker-api/pkg/middleware"
)

type IssueTokenRequest struct {
	Name string `json:"name" validate:"required"`
	Role string `json:"role" validate:"required,oneof=admin viewer ingest"`
}

type IssueTokenResponse struct {
	Token     string     `json:"token"`
	Role      string     `json:"role"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// IssueToken gera um token para um integrador ou painel; restrito a administradores
func IssueToken(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req IssueTokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		req.Role = strings.ToLower(strings.TrimSpace(req.Role))
		if err := validate.Struct(req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Campos obrigatórios ausentes ou inválidos", validationDetails(err))
			return
		}

		token, expiresAt, err := service.IssueToken(req.Name, domain.RoleFromName(req.Role))
		if err != nil {
			writeUsecaseError(w, err, "Erro ao gerar token")
			return
		}

		if issuer, ok := middleware.ClaimsFromContext(r.Context()); ok {
			logrus.WithFields(logrus.Fields{
				"issued_by": issuer.Name,
				"subject":   req.Name,
				"role":      req.Role,
			}).Info("Token de API emitido")
		}

		response := IssueTokenResponse{Token: token, Role: req.Role}
		if !expiresAt.IsZero() {
			response.ExpiresAt = &expiresAt
		}

		writeJSON(w, http.StatusCreated, response)
	}
}

// GetMe retorna o portador do token usado na requisição
func GetMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Portador não autenticado", nil)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"name": claims.Name,
			"role": domain.RoleName(claims.RoleID),
		})
	}
}
