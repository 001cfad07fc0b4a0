package service

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/clubpulse/clubpulse-api/internal/dto"
)

const adminTokenTTL = 12 * time.Hour

// AuthService exchanges the shared admin password for a signed bearer token.
type AuthService interface {
	Login(ctx context.Context, payload dto.LoginRequest) (dto.TokenResponse, error)
}

type authService struct {
	adminPassword string
	jwtSecret     string
	validator     *validator.Validate
	logger        zerolog.Logger
	now           func() time.Time
}

// NewAuthService builds a new auth service.
func NewAuthService(adminPassword, jwtSecret string, validate *validator.Validate, logger zerolog.Logger) AuthService {
	return &authService{
		adminPassword: adminPassword,
		jwtSecret:     jwtSecret,
		validator:     validate,
		logger:        logger.With().Str("component", "auth_service").Logger(),
		now:           time.Now,
	}
}

func (s *authService) Login(_ context.Context, payload dto.LoginRequest) (dto.TokenResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TokenResponse{}, err
	}

	if s.adminPassword == "" {
		s.logger.Error().Msg("admin password is not configured")
		return dto.TokenResponse{}, ErrInvalidCredentials
	}

	if subtle.ConstantTimeCompare([]byte(payload.Password), []byte(s.adminPassword)) != 1 {
		s.logger.Warn().Msg("admin login rejected")
		return dto.TokenResponse{}, ErrInvalidCredentials
	}

	issued := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "admin",
		"role": "admin",
		"iat":  issued.Unix(),
		"exp":  issued.Add(adminTokenTTL).Unix(),
	})

	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return dto.TokenResponse{}, err
	}

	s.logger.Info().Msg("admin logged in")

	return dto.TokenResponse{Token: signed}, nil
}
