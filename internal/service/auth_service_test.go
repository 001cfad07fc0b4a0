package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/clubpulse/clubpulse-api/internal/dto"
)

func TestAuthServiceLoginIssuesAdminToken(t *testing.T) {
	svc := NewAuthService("club-secret", "signing-key", testValidator(), testLogger())

	response, err := svc.Login(context.Background(), dto.LoginRequest{Password: "club-secret"})
	require.NoError(t, err)
	require.NotEmpty(t, response.Token)

	token, err := jwt.Parse(response.Token, func(*jwt.Token) (interface{}, error) {
		return []byte("signing-key"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, "admin", claims["role"])
	require.NotEmpty(t, claims["exp"])
}

func TestAuthServiceLoginRejectsWrongPassword(t *testing.T) {
	svc := NewAuthService("club-secret", "signing-key", testValidator(), testLogger())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Password: "guess"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthServiceLoginRejectsWhenUnconfigured(t *testing.T) {
	svc := NewAuthService("", "signing-key", testValidator(), testLogger())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Password: "anything"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthServiceLoginRequiresPassword(t *testing.T) {
	svc := NewAuthService("club-secret", "signing-key", testValidator(), testLogger())

	_, err := svc.Login(context.Background(), dto.LoginRequest{})
	require.Error(t, err)
	require.True(t, isRejectedInput(err))
}
