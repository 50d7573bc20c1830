package authenticating

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/lead-tracker-api/internal/config"
	"github.com/vfg2006/lead-tracker-api/internal/domain"
	"github.com/vfg2006/lead-tracker-api/pkg/apiErrors"
)

func newTestService(ttl time.Duration) *Service {
	cfg := &config.Config{
		SecretKey: "segredo-de-teste",
		Auth:      config.Auth{TokenTTL: ttl, Issuer: "lead-tracker-api"},
	}
	return NewService(cfg).(*Service)
}

func TestIssueAndValidateToken(t *testing.T) {
	svc := newTestService(time.Hour)

	token, expiresAt, err := svc.IssueToken("crm-webhook", domain.RoleIngest)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "crm-webhook", claims.Name)
	assert.Equal(t, domain.RoleIngest, claims.RoleID)
	assert.Equal(t, "lead-tracker-api", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestIssueTokenWithoutExpiration(t *testing.T) {
	svc := newTestService(0)

	token, expiresAt, err := svc.IssueToken("painel", domain.RoleViewer)
	require.NoError(t, err)
	assert.True(t, expiresAt.IsZero())

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Nil(t, claims.ExpiresAt)
}

func TestIssueTokenValidation(t *testing.T) {
	tests := []struct {
		name     string
		subject  string
		roleID   int
		secret   string
		wantErr  error
		wantCode string
	}{
		{name: "sem nome", subject: " ", roleID: domain.RoleAdmin, secret: "x", wantErr: ErrMissingSubject, wantCode: apiErrors.ErrMissingRequiredData},
		{name: "papel desconhecido", subject: "painel", roleID: 9, secret: "x", wantErr: ErrInvalidRole, wantCode: apiErrors.ErrInvalidRequest},
		{name: "sem chave secreta", subject: "painel", roleID: domain.RoleAdmin, secret: "", wantErr: ErrMissingSecret, wantCode: apiErrors.ErrInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(time.Hour)
			svc.secretKey = tt.secret

			_, _, err := svc.IssueToken(tt.subject, tt.roleID)
			assert.ErrorIs(t, err, tt.wantErr)

			var authErr *AuthError
			require.ErrorAs(t, err, &authErr)
			assert.Equal(t, tt.wantCode, authErr.Code)
		})
	}
}

func TestValidateTokenFailures(t *testing.T) {
	issuer := newTestService(time.Hour)
	valid, _, err := issuer.IssueToken("painel", domain.RoleViewer)
	require.NoError(t, err)

	expiredSvc := newTestService(time.Minute)
	expiredSvc.now = func() time.Time { return time.Now().Add(-time.Hour) }
	expired, _, err := expiredSvc.IssueToken("painel", domain.RoleViewer)
	require.NoError(t, err)

	otherIssuer := newTestService(time.Hour)
	otherIssuer.issuer = "outro"
	foreign, _, err := otherIssuer.IssueToken("painel", domain.RoleViewer)
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, domain.Claims{Name: "x", RoleID: domain.RoleAdmin}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name     string
		token    string
		secret   string
		wantErr  error
		wantCode string
	}{
		{name: "token malformado", token: "abc.def", secret: "segredo-de-teste", wantErr: ErrInvalidToken, wantCode: apiErrors.ErrInvalidToken},
		{name: "assinatura com outra chave", token: valid, secret: "outra-chave", wantErr: ErrInvalidToken, wantCode: apiErrors.ErrInvalidToken},
		{name: "token expirado", token: expired, secret: "segredo-de-teste", wantErr: ErrExpiredToken, wantCode: apiErrors.ErrExpiredToken},
		{name: "emissor diferente", token: foreign, secret: "segredo-de-teste", wantErr: ErrInvalidToken, wantCode: apiErrors.ErrInvalidToken},
		{name: "algoritmo none", token: noneToken, secret: "segredo-de-teste", wantErr: ErrInvalidToken, wantCode: apiErrors.ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(time.Hour)
			svc.secretKey = tt.secret

			claims, err := svc.ValidateToken(tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsAuthorizationError(err))

			var authErr *AuthError
			require.ErrorAs(t, err, &authErr)
			assert.Equal(t, tt.wantCode, authErr.Code)
		})
	}
}

func TestRoleNames(t *testing.T) {
	assert.Equal(t, domain.RoleAdmin, domain.RoleFromName("admin"))
	assert.Equal(t, domain.RoleIngest, domain.RoleFromName("ingest"))
	assert.Equal(t, 0, domain.RoleFromName("root"))
	assert.Equal(t, "viewer", domain.RoleName(domain.RoleViewer))
	assert.Empty(t, domain.RoleName(42))
}
