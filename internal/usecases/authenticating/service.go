package authenticating

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/lead-tracker-api/internal/config"
	"github.com/vfg2006/lead-tracker-api/internal/domain"
	"github.com/vfg2006/lead-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/lead-tracker-api/pkg/utils"
)

type Authenticator interface {
	IssueToken(name string, roleID int) (string, time.Time, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	secretKey string
	issuer    string
	ttl       time.Duration
	now       func() time.Time
}

func NewService(cfg *config.Config) Authenticator {
	return &Service{
		secretKey: cfg.SecretKey,
		issuer:    cfg.Auth.Issuer,
		ttl:       cfg.Auth.TokenTTL,
		now:       time.Now,
	}
}

// IssueToken gera um token de API para um integrador ou painel
func (s *Service) IssueToken(name string, roleID int) (string, time.Time, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", time.Time{}, NewAuthError(ErrMissingSubject, apiErrors.ErrMissingRequiredData, "")
	}

	if domain.RoleName(roleID) == "" {
		return "", time.Time{}, NewAuthError(ErrInvalidRole, apiErrors.ErrInvalidRequest, fmt.Sprintf("role_id %d", roleID))
	}

	if s.secretKey == "" {
		return "", time.Time{}, NewAuthError(ErrMissingSecret, apiErrors.ErrInternalServer, "")
	}

	tokenID, err := utils.GenerateID()
	if err != nil {
		return "", time.Time{}, NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar identificador do token")
	}

	issuedAt := s.now()
	claims := domain.Claims{
		Name:   name,
		RoleID: roleID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       tokenID,
			Issuer:   s.issuer,
			Subject:  name,
			IssuedAt: jwt.NewNumericDate(issuedAt),
		},
	}

	var expiresAt time.Time
	if s.ttl > 0 {
		expiresAt = issuedAt.Add(s.ttl)
		claims.ExpiresAt = jwt.NewNumericDate(expiresAt)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secretKey))
	if err != nil {
		return "", time.Time{}, NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao assinar token")
	}

	return signed, expiresAt, nil
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}

	if s.issuer != "" && claims.Issuer != s.issuer {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "emissor inesperado")
	}

	if domain.RoleName(claims.RoleID) == "" {
		return nil, NewAuthError(ErrInvalidRole, apiErrors.ErrInvalidToken, "")
	}

	return claims, nil
}
