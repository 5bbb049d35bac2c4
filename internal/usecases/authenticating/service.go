package authenticating

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/ads-manager-api/internal/config"
	"github.com/vfg2006/ads-manager-api/internal/domain"
	"github.com/vfg2006/ads-manager-api/pkg/apiErrors"
)

// Validator valida os tokens emitidos pelo serviço de login
type Validator interface {
	ValidateToken(tokenString string) (*domain.Claims, error)
	AuthorizeAccount(claims *domain.Claims, accountID string) error
}

type Service struct {
	cfg *config.Config
}

func NewService(cfg *config.Config) Validator {
	return &Service{cfg: cfg}
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	if tokenString == "" {
		return nil, NewAuthError(ErrMissingToken, apiErrors.ErrInvalidToken, "")
	}

	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Auth.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	if claims, ok := token.Claims.(*domain.Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
}

// AuthorizeAccount confere se o usuário pode operar a conta de anúncios
func (s *Service) AuthorizeAccount(claims *domain.Claims, accountID string) error {
	if claims == nil {
		return NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}

	if !claims.CanAccessAccount(accountID) {
		return NewUserAuthError(ErrAccountNotAllowed, apiErrors.ErrInsufficientPrivilege, claims.UserID, accountID)
	}
	return nil
}
