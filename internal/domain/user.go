package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserID       int
	UserName     string
	UserEmail    string
	UserRoleID   int
	UserAccounts []string
	jwt.RegisteredClaims
}

// CanAccessAccount indica se o usuário pode operar a conta informada
func (c *Claims) CanAccessAccount(accountID string) bool {
	// Administradores enxergam todas as contas
	if c.UserRoleID == 1 {
		return true
	}

	for _, acc := range c.UserAccounts {
		if acc == accountID {
			return true
		}
	}
	return false
}
