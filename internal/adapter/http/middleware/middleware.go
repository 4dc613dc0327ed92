package middleware

import (
	"context"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"github.com/Temutjin2k/ride-hail-insights/pkg/logger"
)

type (
	AuthService interface {
		RoleCheck(ctx context.Context, token string) (*models.User, error)
	}

	Middleware struct {
		auth    AuthService
		service string
		log     logger.Logger
	}
)

func NewMiddleware(auth AuthService, service string, log logger.Logger) *Middleware {
	return &Middleware{
		auth:    auth,
		service: service,
		log:     log,
	}
}
